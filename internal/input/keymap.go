// Package input translates raw key events into playback commands.
package input

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/verte-zerg/speedread/internal/model"
)

// KeyMap holds the bindings for one session. It satisfies help.KeyMap.
type KeyMap struct {
	Pause    key.Binding
	Quit     key.Binding
	Increase key.Binding
	Decrease key.Binding
}

// NewKeyMap builds bindings from the configured keys. ctrl+c always quits.
func NewKeyMap(kb model.KeyBindings) KeyMap {
	return KeyMap{
		Pause:    key.NewBinding(key.WithKeys(aliases(kb.Pause)...), key.WithHelp(KeyLabel(kb.Pause), "pause")),
		Quit:     key.NewBinding(key.WithKeys(append(aliases(kb.Quit), "ctrl+c")...), key.WithHelp(KeyLabel(kb.Quit), "quit")),
		Increase: key.NewBinding(key.WithKeys(aliases(kb.IncreaseWPM)...), key.WithHelp(KeyLabel(kb.IncreaseWPM), "faster")),
		Decrease: key.NewBinding(key.WithKeys(aliases(kb.DecreaseWPM)...), key.WithHelp(KeyLabel(kb.DecreaseWPM), "slower")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Quit, k.Increase, k.Decrease}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// KeyLabel returns a human readable name for a bound key.
func KeyLabel(k string) string {
	if k == " " {
		return "Spacebar"
	}
	return k
}

func aliases(k string) []string {
	if k == " " {
		return []string{" ", "space"}
	}
	return []string{k}
}
