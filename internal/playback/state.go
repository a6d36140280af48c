// Package playback implements the run-mode state machine and playback position.
package playback

import (
	"time"

	"github.com/verte-zerg/speedread/internal/model"
)

// State is the single source of truth for run mode and position. It is not
// safe for concurrent use; only the scheduler touches it.
type State struct {
	mode     model.Mode
	position int
	length   int

	pauses      int
	pausedAt    time.Time
	pausedTotal time.Duration
}

// New returns a Running state over a session of the given length.
func New(length int) *State {
	if length < 0 {
		length = 0
	}
	return &State{mode: model.ModeRunning, length: length}
}

// Mode returns the current run mode.
func (s *State) Mode() model.Mode {
	return s.mode
}

// Position returns the index of the next unit to display.
func (s *State) Position() int {
	return s.position
}

// Length returns the number of units in the session.
func (s *State) Length() int {
	return s.length
}

// Exhausted reports whether every unit has been displayed.
func (s *State) Exhausted() bool {
	return s.position >= s.length
}

// Apply applies a control command at time now and reports whether the mode
// changed. Rate commands and commands after a terminal mode are no-ops.
func (s *State) Apply(cmd model.Command, now time.Time) bool {
	if s.mode.Terminal() {
		return false
	}
	switch cmd {
	case model.CommandQuit:
		s.settlePause(now)
		s.mode = model.ModeQuit
		return true
	case model.CommandPause:
		return s.pause(now)
	case model.CommandResume:
		return s.resume(now)
	case model.CommandTogglePause:
		if s.mode == model.ModePaused {
			return s.resume(now)
		}
		return s.pause(now)
	default:
		return false
	}
}

// Advance moves to the next unit. It only has an effect while Running.
func (s *State) Advance() bool {
	if s.mode != model.ModeRunning || s.position >= s.length {
		return false
	}
	s.position++
	return true
}

// Finish moves Running to Finished once the position reaches the end.
func (s *State) Finish() bool {
	if s.mode != model.ModeRunning || s.position < s.length {
		return false
	}
	s.mode = model.ModeFinished
	return true
}

// Pauses returns how many times playback entered Paused.
func (s *State) Pauses() int {
	return s.pauses
}

// PausedFor returns the accumulated paused time, counting an open pause up to now.
func (s *State) PausedFor(now time.Time) time.Duration {
	total := s.pausedTotal
	if s.mode == model.ModePaused && !s.pausedAt.IsZero() && now.After(s.pausedAt) {
		total += now.Sub(s.pausedAt)
	}
	return total
}

func (s *State) pause(now time.Time) bool {
	if s.mode != model.ModeRunning {
		return false
	}
	s.mode = model.ModePaused
	s.pauses++
	s.pausedAt = now
	return true
}

func (s *State) resume(now time.Time) bool {
	if s.mode != model.ModePaused {
		return false
	}
	s.settlePause(now)
	s.mode = model.ModeRunning
	return true
}

func (s *State) settlePause(now time.Time) {
	if s.mode != model.ModePaused || s.pausedAt.IsZero() {
		return
	}
	if now.After(s.pausedAt) {
		s.pausedTotal += now.Sub(s.pausedAt)
	}
	s.pausedAt = time.Time{}
}
