package input

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/speedread/internal/model"
)

// DefaultBuffer is large enough to absorb a burst of key presses between ticks.
const DefaultBuffer = 256

// Listener observes key events and enqueues commands. It never touches
// playback position; the scheduler is the only consumer of Commands.
type Listener struct {
	keys KeyMap
	out  chan model.Command
}

// NewListener returns a listener with a command queue of the given size.
func NewListener(keys KeyMap, buffer int) *Listener {
	if buffer < 1 {
		buffer = DefaultBuffer
	}
	return &Listener{keys: keys, out: make(chan model.Command, buffer)}
}

// Commands returns the queue the scheduler drains.
func (l *Listener) Commands() <-chan model.Command {
	return l.out
}

// Translate maps a key event to a command. Unrecognized keys report false.
func (l *Listener) Translate(msg tea.KeyMsg) (model.Command, bool) {
	switch {
	case key.Matches(msg, l.keys.Quit):
		return model.CommandQuit, true
	case key.Matches(msg, l.keys.Pause):
		return model.CommandTogglePause, true
	case key.Matches(msg, l.keys.Increase):
		return model.CommandIncreaseRate, true
	case key.Matches(msg, l.keys.Decrease):
		return model.CommandDecreaseRate, true
	default:
		return 0, false
	}
}

// Run translates events from keys until ctx is done or keys is closed, then
// closes the command queue. It always returns nil.
func (l *Listener) Run(ctx context.Context, keys <-chan tea.KeyMsg) error {
	defer close(l.out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-keys:
			if !ok {
				return nil
			}
			cmd, ok := l.Translate(msg)
			if !ok {
				continue
			}
			select {
			case l.out <- cmd:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
