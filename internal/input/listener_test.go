package input

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/speedread/internal/model"
)

var defaultKeys = model.KeyBindings{Quit: "q", Pause: " ", IncreaseWPM: "+", DecreaseWPM: "-"}

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestTranslateDefaultBindings(t *testing.T) {
	l := NewListener(NewKeyMap(defaultKeys), 0)
	cases := []struct {
		msg  tea.KeyMsg
		want model.Command
	}{
		{runeKey("q"), model.CommandQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, model.CommandQuit},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, model.CommandTogglePause},
		{runeKey("+"), model.CommandIncreaseRate},
		{runeKey("-"), model.CommandDecreaseRate},
	}
	for _, tc := range cases {
		got, ok := l.Translate(tc.msg)
		if !ok || got != tc.want {
			t.Fatalf("key %q: expected %v, got %v (ok=%v)", tc.msg.String(), tc.want, got, ok)
		}
	}
}

func TestTranslateIgnoresUnknownKeys(t *testing.T) {
	l := NewListener(NewKeyMap(defaultKeys), 0)
	for _, msg := range []tea.KeyMsg{runeKey("x"), runeKey("Q"), {Type: tea.KeyEnter}} {
		if cmd, ok := l.Translate(msg); ok {
			t.Fatalf("key %q should be ignored, got %v", msg.String(), cmd)
		}
	}
}

func TestTranslateRemappedKeys(t *testing.T) {
	l := NewListener(NewKeyMap(model.KeyBindings{Quit: "x", Pause: "p", IncreaseWPM: "k", DecreaseWPM: "j"}), 0)
	if cmd, ok := l.Translate(runeKey("p")); !ok || cmd != model.CommandTogglePause {
		t.Fatalf("expected p to toggle pause, got %v", cmd)
	}
	if _, ok := l.Translate(runeKey("q")); ok {
		t.Fatalf("default quit key must not be bound after remap")
	}
	if cmd, ok := l.Translate(runeKey("x")); !ok || cmd != model.CommandQuit {
		t.Fatalf("expected x to quit, got %v", cmd)
	}
}

func TestRunPreservesOrderAndClosesOnKeysClosed(t *testing.T) {
	l := NewListener(NewKeyMap(defaultKeys), 16)
	keys := make(chan tea.KeyMsg, 8)
	keys <- runeKey("+")
	keys <- runeKey("z")
	keys <- runeKey("-")
	keys <- runeKey("q")
	close(keys)

	done := make(chan struct{})
	go func() {
		_ = l.Run(context.Background(), keys)
		close(done)
	}()

	var got []model.Command
	for cmd := range l.Commands() {
		got = append(got, cmd)
	}
	<-done
	want := []model.Command{model.CommandIncreaseRate, model.CommandDecreaseRate, model.CommandQuit}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestRunStopsOnContextCancel(t *testing.T) {
	l := NewListener(NewKeyMap(defaultKeys), 1)
	ctx, cancel := context.WithCancel(context.Background())
	keys := make(chan tea.KeyMsg)
	done := make(chan struct{})
	go func() {
		_ = l.Run(ctx, keys)
		close(done)
	}()
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatalf("listener did not stop after cancel")
	}
	if _, ok := <-l.Commands(); ok {
		t.Fatalf("expected command queue to be closed")
	}
}

func TestKeyLabel(t *testing.T) {
	if KeyLabel(" ") != "Spacebar" || KeyLabel("q") != "q" {
		t.Fatalf("unexpected labels: %q %q", KeyLabel(" "), KeyLabel("q"))
	}
}
