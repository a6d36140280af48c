package tui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/speedread/internal/evaluate"
)

type evaluationDoneMsg struct {
	verdict string
	err     error
}

type waitModel struct {
	spinner spinner.Model
	cancel  context.CancelFunc
	done    bool
	verdict string
	err     error
}

func newWaitModel(cancel context.CancelFunc) *waitModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = bannerStyle
	return &waitModel{spinner: s, cancel: cancel}
}

func (m *waitModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m *waitModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case evaluationDoneMsg:
		m.done = true
		m.verdict = msg.verdict
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancel()
			return m, tea.Quit
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		return m, nil
	}
}

func (m *waitModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " Evaluating your summary... " + footerStyle.Render("(esc to cancel)") + "\n"
}

// RunEvaluation calls client while showing a spinner. Pressing esc or ctrl+c
// cancels the request and returns context.Canceled.
func RunEvaluation(ctx context.Context, client evaluate.Client, req evaluate.Request, opts ...tea.ProgramOption) (string, error) {
	evalCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	program := tea.NewProgram(newWaitModel(cancel), opts...)
	go func() {
		verdict, err := client.Evaluate(evalCtx, req)
		program.Send(evaluationDoneMsg{verdict: verdict, err: err})
	}()

	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run evaluation spinner: %w", err)
	}
	m, ok := final.(*waitModel)
	if !ok {
		return "", fmt.Errorf("unexpected wait model %T", final)
	}
	if !m.done {
		return "", context.Canceled
	}
	return m.verdict, m.err
}
