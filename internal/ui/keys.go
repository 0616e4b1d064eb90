package ui

import (
	"github.com/charmbracelet/bubbles/key"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

type keyMap struct {
	Continue  key.Binding
	Next      key.Binding
	Step      key.Binding
	Return    key.Binding
	Stop      key.Binding
	NextPanel key.Binding
	PrevPanel key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Filter    key.Binding
	Quit      key.Binding
}

var keys = keyMap{
	Continue:  key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "continue")),
	Next:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next")),
	Step:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "step")),
	Return:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
	Stop:      key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "stop")),
	NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
	PrevPanel: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/up", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/down", "down")),
	PageUp:    key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
	PageDown:  key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdown", "page down")),
	Filter:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "filter variables")),
	Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Continue, k.Next, k.Step, k.Return, k.Stop, k.NextPanel, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Continue, k.Next, k.Step, k.Return, k.Stop},
		{k.NextPanel, k.PrevPanel, k.Up, k.Down, k.PageUp, k.PageDown},
		{k.Filter, k.Quit},
	}
}

// actionFor maps a key press to the debugger action it requests.
func (k keyMap) actionFor(ev event.Key) (string, bool) {
	switch {
	case key.Matches(ev, k.Continue):
		return protocol.ActionContinue, true
	case key.Matches(ev, k.Next):
		return protocol.ActionNext, true
	case key.Matches(ev, k.Step):
		return protocol.ActionStep, true
	case key.Matches(ev, k.Return):
		return protocol.ActionReturn, true
	case key.Matches(ev, k.Stop):
		return protocol.ActionStop, true
	default:
		return "", false
	}
}
