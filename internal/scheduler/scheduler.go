// Package scheduler drives paced playback: it owns the position, applies
// commands between and during ticks, and sleeps for the current rate's delay.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"

	"github.com/verte-zerg/speedread/internal/model"
	"github.com/verte-zerg/speedread/internal/playback"
	"github.com/verte-zerg/speedread/internal/rate"
)

// DefaultCountdown is the number of seconds shown before the first unit.
const DefaultCountdown = 3

// Renderer paints units and status updates. Errors are fatal to the session.
type Renderer interface {
	RenderUnit(frame model.Frame) error
	RenderStatus(status model.Status) error
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the real clock; tests pass a clockwork.FakeClock.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) {
		if c != nil {
			e.clock = c
		}
	}
}

// WithLogger sets the logger used for mode and rate transitions.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithCountdown sets the countdown length in steps; 0 disables it.
func WithCountdown(steps int) Option {
	return func(e *Engine) {
		if steps >= 0 {
			e.countdown = steps
		}
	}
}

// WithCountdownStep sets the duration of one countdown step.
func WithCountdownStep(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.countdownStep = d
		}
	}
}

// Engine runs playback sessions.
type Engine struct {
	clock         clockwork.Clock
	logger        *zap.SugaredLogger
	countdown     int
	countdownStep time.Duration
}

// New returns an Engine with the system clock and a 3 second countdown.
func New(opts ...Option) *Engine {
	e := &Engine{
		clock:         clockwork.NewRealClock(),
		logger:        zap.NewNop().Sugar(),
		countdown:     DefaultCountdown,
		countdownStep: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run plays units until they are exhausted, a Quit command arrives, or ctx is
// done. Commands are read only from cmds, which may be closed by the producer.
// Context cancellation ends the session in Quit mode without an error; a
// renderer error ends it in Quit mode and is returned.
func (e *Engine) Run(ctx context.Context, units []model.Unit, rc *rate.Controller, cmds <-chan model.Command, r Renderer) (model.Result, error) {
	s := &session{
		clock:     e.clock,
		logger:    e.logger,
		units:     units,
		state:     playback.New(len(units)),
		rate:      rc,
		cmds:      cmds,
		renderer:  r,
		countdown: e.countdown,
		step:      e.countdownStep,
	}
	err := s.run(ctx)
	return s.result(), err
}

type session struct {
	clock    clockwork.Clock
	logger   *zap.SugaredLogger
	units    []model.Unit
	state    *playback.State
	rate     *rate.Controller
	cmds     <-chan model.Command
	renderer Renderer

	countdown int
	showing   int
	step      time.Duration

	startedAt time.Time
	history   []int
}

func (s *session) run(ctx context.Context) error {
	if s.state.Exhausted() {
		s.finish()
		return nil
	}
	for {
		if ctx.Err() != nil {
			s.quit()
			return nil
		}
		if err := s.drain(); err != nil {
			return err
		}
		switch s.state.Mode() {
		case model.ModeQuit:
			return nil
		case model.ModePaused:
			if err := s.waitWhilePaused(ctx); err != nil {
				return err
			}
			continue
		}

		if s.countdown > 0 {
			s.showing = s.countdown
			if err := s.renderer.RenderStatus(s.status()); err != nil {
				s.quit()
				return fmt.Errorf("render countdown: %w", err)
			}
			s.countdown--
			if err := s.sleep(ctx, s.step); err != nil {
				return err
			}
			continue
		}

		if s.state.Exhausted() {
			s.finish()
			return nil
		}
		if err := s.show(); err != nil {
			s.quit()
			return err
		}
		if err := s.sleep(ctx, s.rate.Delay()); err != nil {
			return err
		}
	}
}

// drain applies every queued command without blocking.
func (s *session) drain() error {
	for s.cmds != nil {
		select {
		case cmd, ok := <-s.cmds:
			if !ok {
				s.inputClosed()
				return nil
			}
			if err := s.apply(cmd); err != nil {
				return err
			}
		default:
			return nil
		}
	}
	return nil
}

// waitWhilePaused blocks until a command or cancellation arrives.
func (s *session) waitWhilePaused(ctx context.Context) error {
	select {
	case <-ctx.Done():
		s.quit()
		return nil
	case cmd, ok := <-s.cmds:
		if !ok {
			s.inputClosed()
			return nil
		}
		return s.apply(cmd)
	}
}

// sleep waits for d while staying responsive to commands. Quit and Pause cut
// the wait short; rate changes only affect the next wait.
func (s *session) sleep(ctx context.Context, d time.Duration) error {
	t := s.clock.NewTimer(d)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			s.quit()
			return nil
		case <-t.Chan():
			return nil
		case cmd, ok := <-s.cmds:
			if !ok {
				s.inputClosed()
			} else if err := s.apply(cmd); err != nil {
				return err
			}
			if s.state.Mode() != model.ModeRunning {
				return nil
			}
		}
	}
}

func (s *session) apply(cmd model.Command) error {
	if s.state.Mode().Terminal() {
		return nil
	}
	switch cmd {
	case model.CommandIncreaseRate, model.CommandDecreaseRate:
		before := s.rate.WPM()
		if cmd == model.CommandIncreaseRate {
			s.rate.Increment()
		} else {
			s.rate.Decrement()
		}
		if s.rate.WPM() == before {
			return nil
		}
		s.logger.Debugw("rate changed", "from", before, "to", s.rate.WPM())
	default:
		from := s.state.Mode()
		if !s.state.Apply(cmd, s.clock.Now()) {
			return nil
		}
		s.logger.Debugw("mode changed", "from", from.String(), "to", s.state.Mode().String(), "position", s.state.Position())
		if s.state.Mode() == model.ModeQuit {
			return nil
		}
	}
	if err := s.renderer.RenderStatus(s.status()); err != nil {
		s.quit()
		return fmt.Errorf("render status: %w", err)
	}
	return nil
}

func (s *session) show() error {
	idx := s.state.Position()
	s.showing = 0
	if s.startedAt.IsZero() {
		s.startedAt = s.clock.Now()
	}
	status := s.status()
	status.Position = idx + 1
	frame := model.Frame{Unit: s.units[idx], Index: idx, Status: status}
	if err := s.renderer.RenderUnit(frame); err != nil {
		return fmt.Errorf("render unit %d: %w", idx, err)
	}
	s.history = append(s.history, s.rate.WPM())
	s.state.Advance()
	return nil
}

func (s *session) inputClosed() {
	s.cmds = nil
	if s.state.Mode() == model.ModePaused {
		s.logger.Debugw("input closed while paused")
		s.quit()
	}
}

func (s *session) quit() {
	s.state.Apply(model.CommandQuit, s.clock.Now())
}

func (s *session) finish() {
	if s.state.Finish() {
		s.logger.Debugw("mode changed", "to", s.state.Mode().String(), "position", s.state.Position())
	}
}

func (s *session) status() model.Status {
	return model.Status{
		Mode:      s.state.Mode(),
		WPM:       s.rate.WPM(),
		Position:  s.state.Position(),
		Total:     len(s.units),
		Countdown: s.showing,
	}
}

func (s *session) result() model.Result {
	now := s.clock.Now()
	started := s.startedAt
	if started.IsZero() {
		started = now
	}
	return model.Result{
		Mode:        s.state.Mode(),
		Position:    s.state.Position(),
		Total:       len(s.units),
		FinalWPM:    s.rate.WPM(),
		StartedAt:   started,
		EndedAt:     now,
		Paused:      s.state.PausedFor(now),
		Pauses:      s.state.Pauses(),
		RateHistory: s.history,
	}
}
