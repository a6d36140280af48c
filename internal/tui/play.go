package tui

import (
	"context"
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/speedread/internal/input"
	"github.com/verte-zerg/speedread/internal/model"
	"github.com/verte-zerg/speedread/internal/rate"
	"github.com/verte-zerg/speedread/internal/scheduler"
)

// PlayOptions configures one playback session.
type PlayOptions struct {
	Units  []model.Unit
	Rate   *rate.Controller
	Keys   model.KeyBindings
	Engine *scheduler.Engine
	Logger *zap.SugaredLogger

	// Input and Output override the terminal; nil Input disables key reading.
	Input     io.Reader
	Output    io.Writer
	AltScreen bool
}

// Play runs the playback view, the key listener and the scheduler until the
// session ends. Cancelling ctx ends the session in Quit mode.
func Play(ctx context.Context, opts PlayOptions) (model.Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	engine := opts.Engine
	if engine == nil {
		engine = scheduler.New(scheduler.WithLogger(logger))
	}
	rc := opts.Rate
	if rc == nil {
		rc = rate.New(rate.DefaultWPM, rate.DefaultStep)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, gctx := errgroup.WithContext(runCtx)

	keyCh := make(chan tea.KeyMsg, input.DefaultBuffer)
	listener := input.NewListener(input.NewKeyMap(opts.Keys), input.DefaultBuffer)
	view := NewModel(opts.Units, opts.Keys, rc.WPM(), keyCh, logger)

	programOpts := []tea.ProgramOption{tea.WithContext(gctx)}
	if opts.AltScreen {
		programOpts = append(programOpts, tea.WithAltScreen())
	}
	if opts.Input != nil {
		programOpts = append(programOpts, tea.WithInput(opts.Input))
	} else if opts.Output != nil {
		programOpts = append(programOpts, tea.WithInput(nil))
	}
	if opts.Output != nil {
		programOpts = append(programOpts, tea.WithOutput(opts.Output))
	}
	program := tea.NewProgram(view, programOpts...)

	done := make(chan struct{})
	renderer := &programRenderer{p: program, done: done}

	g.Go(func() error {
		return listener.Run(gctx, keyCh)
	})
	g.Go(func() error {
		_, err := program.Run()
		cancel()
		close(done)
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("run playback view: %w", err)
		}
		return nil
	})

	var result model.Result
	g.Go(func() error {
		res, err := engine.Run(gctx, opts.Units, rc, listener.Commands(), renderer)
		result = res
		program.Send(sessionDoneMsg{})
		return sessionError(gctx, err)
	})

	if err := g.Wait(); err != nil {
		return result, err
	}
	logger.Infow("session ended", "mode", result.Mode.String(), "position", result.Position, "total", result.Total, "wpm", result.FinalWPM)
	return result, nil
}

// sessionError drops the render failure caused by the view shutting down
// after ctx was cancelled, e.g. on SIGTERM.
func sessionError(ctx context.Context, err error) error {
	if errors.Is(err, ErrRendererClosed) && ctx.Err() != nil {
		return nil
	}
	return err
}
