// Package tui provides the Bubble Tea reading interface.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"go.uber.org/zap"

	"github.com/verte-zerg/speedread/internal/input"
	"github.com/verte-zerg/speedread/internal/model"
)

var (
	wordStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	contextStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	currentWordStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	bannerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A"))
	footerStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

type frameMsg model.Frame

type statusMsg model.Status

type sessionDoneMsg struct{}

// Model implements the Bubble Tea playback view. It only displays what the
// scheduler sends and forwards key presses; it never changes playback state.
type Model struct {
	units    []model.Unit
	keyMap   input.KeyMap
	pauseKey string
	help     help.Model
	keys     chan<- tea.KeyMsg
	logger   *zap.SugaredLogger

	width  int
	height int

	status    model.Status
	current   int
	countdown int
}

// NewModel constructs a playback model. Key presses are forwarded to keys.
func NewModel(units []model.Unit, kb model.KeyBindings, wpm int, keys chan<- tea.KeyMsg, logger *zap.SugaredLogger) *Model {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	h := help.New()
	h.ShortSeparator = ", "
	return &Model{
		units:    units,
		keyMap:   input.NewKeyMap(kb),
		pauseKey: kb.Pause,
		help:     h,
		keys:     keys,
		logger:   logger,
		status:   model.Status{WPM: wpm, Total: len(units)},
		current:  -1,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil
	case tea.KeyMsg:
		m.forward(msg)
		return m, nil
	case frameMsg:
		m.current = msg.Index
		m.status = msg.Status
		m.countdown = 0
		return m, nil
	case statusMsg:
		m.status = model.Status(msg)
		m.countdown = msg.Countdown
		return m, nil
	case sessionDoneMsg:
		return m, tea.Quit
	default:
		return m, nil
	}
}

// forward hands the key to the listener without blocking the event loop.
func (m *Model) forward(msg tea.KeyMsg) {
	if m.keys == nil {
		return
	}
	select {
	case m.keys <- msg:
	default:
		m.logger.Warnw("key dropped, input queue full", "key", msg.String())
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	top := renderStatusLine(m.status, m.width)
	body := m.renderBody()
	footer := m.renderFooter()
	if m.width == 0 || m.height < 3 {
		return top + "\n\n" + body + "\n\n" + footer
	}
	content := lipgloss.Place(m.width, m.height-2, lipgloss.Center, lipgloss.Center, body)
	return top + "\n" + content + "\n" + footer
}

func (m *Model) renderBody() string {
	switch {
	case m.status.Mode == model.ModePaused:
		return m.renderPaused()
	case m.countdown > 0:
		return bannerStyle.Render("Starting in...") + "\n\n" + wordStyle.Render(fmt.Sprintf("%d", m.countdown))
	case m.current >= 0 && m.current < len(m.units):
		return wordStyle.Render(truncate(m.units[m.current].Text, m.width))
	default:
		return ""
	}
}

func (m *Model) renderPaused() string {
	banner := bannerStyle.Render(fmt.Sprintf("Paused. Press %q to resume...", input.KeyLabel(m.pauseKey)))
	window, idx := contextWindow(m.units, m.current, contextWords)
	if len(window) == 0 {
		return banner
	}
	contentWidth := int(float64(m.width) * 0.70)
	wrapped := wrapStyledRunes(buildStyledRunes(window, idx), contentWidth)
	if contentWidth > 0 {
		wrapped = lipgloss.NewStyle().Width(contentWidth).Render(wrapped)
	}
	return wrapped + "\n\n" + banner
}

func (m *Model) renderFooter() string {
	return footerStyle.Render("Controls: ") + m.help.ShortHelpView(m.keyMap.ShortHelp())
}

func renderStatusLine(status model.Status, width int) string {
	left := fmt.Sprintf("WPM: %d", status.WPM)
	right := fmt.Sprintf("Word %d / %d", status.Position, status.Total)
	gap := width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if gap < 1 {
		gap = 1
	}
	return footerStyle.Render(left + strings.Repeat(" ", gap) + right)
}

func truncate(s string, width int) string {
	if width <= 0 || runewidth.StringWidth(s) <= width {
		return s
	}
	return runewidth.Truncate(s, width, "…")
}
