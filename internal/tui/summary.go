package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
)

type summaryModel struct {
	area      textarea.Model
	submitted bool
}

func newSummaryModel() *summaryModel {
	area := textarea.New()
	area.Placeholder = "What was the text about?"
	area.ShowLineNumbers = false
	area.CharLimit = 0
	area.SetWidth(80)
	area.SetHeight(8)
	area.Focus()
	return &summaryModel{area: area}
}

func (m *summaryModel) Init() tea.Cmd {
	return textarea.Blink
}

func (m *summaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 4 {
			m.area.SetWidth(msg.Width - 2)
		}
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlD:
			m.submitted = true
			return m, tea.Quit
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.area, cmd = m.area.Update(msg)
	return m, cmd
}

func (m *summaryModel) View() string {
	if m.submitted {
		return ""
	}
	header := bannerStyle.Render("Enter a summary of what you read.")
	hint := footerStyle.Render("ctrl+d submit, esc skip")
	return header + "\n\n" + m.area.View() + "\n" + hint + "\n"
}

// summary returns the trimmed text, or "" when the prompt was cancelled.
func (m *summaryModel) summary() string {
	if !m.submitted {
		return ""
	}
	return strings.TrimSpace(m.area.Value())
}

// PromptSummary asks the reader for a free-text summary. An empty string means
// the reader skipped it or entered only whitespace.
func PromptSummary(opts ...tea.ProgramOption) (string, error) {
	final, err := tea.NewProgram(newSummaryModel(), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("run summary prompt: %w", err)
	}
	m, ok := final.(*summaryModel)
	if !ok {
		return "", fmt.Errorf("unexpected summary model %T", final)
	}
	return m.summary(), nil
}
