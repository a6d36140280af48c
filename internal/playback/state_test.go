package playback

import (
	"testing"
	"time"

	"github.com/verte-zerg/speedread/internal/model"
)

var epoch = time.Unix(1700000000, 0)

func TestInitialStateIsRunning(t *testing.T) {
	s := New(3)
	if s.Mode() != model.ModeRunning {
		t.Fatalf("expected running, got %v", s.Mode())
	}
	if s.Position() != 0 || s.Length() != 3 {
		t.Fatalf("unexpected position/length: %d/%d", s.Position(), s.Length())
	}
}

func TestPauseToggleRoundTrip(t *testing.T) {
	s := New(5)
	s.Advance()
	s.Advance()
	if !s.Apply(model.CommandTogglePause, epoch) {
		t.Fatalf("expected toggle to pause")
	}
	if s.Mode() != model.ModePaused {
		t.Fatalf("expected paused, got %v", s.Mode())
	}
	if s.Advance() {
		t.Fatalf("advance must not move while paused")
	}
	if !s.Apply(model.CommandTogglePause, epoch.Add(2*time.Second)) {
		t.Fatalf("expected toggle to resume")
	}
	if s.Mode() != model.ModeRunning || s.Position() != 2 {
		t.Fatalf("expected running at 2, got %v at %d", s.Mode(), s.Position())
	}
	if s.Pauses() != 1 || s.PausedFor(epoch.Add(time.Hour)) != 2*time.Second {
		t.Fatalf("unexpected pause accounting: %d pauses, %v", s.Pauses(), s.PausedFor(epoch))
	}
}

func TestExplicitPauseResumeAreIdempotent(t *testing.T) {
	s := New(2)
	if s.Apply(model.CommandResume, epoch) {
		t.Fatalf("resume while running must be a no-op")
	}
	if !s.Apply(model.CommandPause, epoch) {
		t.Fatalf("expected pause")
	}
	if s.Apply(model.CommandPause, epoch) {
		t.Fatalf("second pause must be a no-op")
	}
	if !s.Apply(model.CommandResume, epoch) {
		t.Fatalf("expected resume")
	}
}

func TestQuitFromRunningAndPaused(t *testing.T) {
	s := New(4)
	if !s.Apply(model.CommandQuit, epoch) || s.Mode() != model.ModeQuit {
		t.Fatalf("expected quit from running")
	}

	s = New(4)
	s.Apply(model.CommandPause, epoch)
	if !s.Apply(model.CommandQuit, epoch.Add(time.Second)) || s.Mode() != model.ModeQuit {
		t.Fatalf("expected quit from paused")
	}
	if s.PausedFor(epoch.Add(time.Minute)) != time.Second {
		t.Fatalf("quit should close the open pause, got %v", s.PausedFor(epoch))
	}
}

func TestTerminalModesIgnoreCommands(t *testing.T) {
	s := New(1)
	s.Apply(model.CommandQuit, epoch)
	for _, cmd := range []model.Command{model.CommandQuit, model.CommandTogglePause, model.CommandResume, model.CommandPause} {
		if s.Apply(cmd, epoch) {
			t.Fatalf("%v must be ignored after quit", cmd)
		}
	}
	if s.Mode() != model.ModeQuit {
		t.Fatalf("expected quit, got %v", s.Mode())
	}

	s = New(1)
	s.Advance()
	if !s.Finish() {
		t.Fatalf("expected finish at end")
	}
	if s.Apply(model.CommandQuit, epoch) || s.Mode() != model.ModeFinished {
		t.Fatalf("quit after finish must be ignored")
	}
	if s.Finish() {
		t.Fatalf("finish must happen only once")
	}
}

func TestFinishRequiresExhaustedPosition(t *testing.T) {
	s := New(2)
	s.Advance()
	if s.Finish() {
		t.Fatalf("finish must wait for the last unit")
	}
	s.Advance()
	if s.Advance() {
		t.Fatalf("advance past the end must fail")
	}
	if !s.Exhausted() || !s.Finish() {
		t.Fatalf("expected finish after last unit")
	}
}

func TestEmptySessionFinishesImmediately(t *testing.T) {
	s := New(0)
	if !s.Exhausted() || !s.Finish() || s.Mode() != model.ModeFinished {
		t.Fatalf("expected empty session to finish")
	}
}

func TestRateCommandsDoNotChangeMode(t *testing.T) {
	s := New(2)
	if s.Apply(model.CommandIncreaseRate, epoch) || s.Apply(model.CommandDecreaseRate, epoch) {
		t.Fatalf("rate commands must not change mode")
	}
}
