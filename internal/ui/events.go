package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
	"github.com/stefvonb/lazy-pdb/internal/state"
	"github.com/stefvonb/lazy-pdb/internal/ui/command"
)

type eventMsg struct {
	event event.Event
}

type muxClosedMsg struct{}

const (
	mouseLeft      = "left"
	mouseWheelUp   = "wheel up"
	mouseWheelDown = "wheel down"
	mousePress     = "press"
)

// Bubble Tea v1 keeps its mouse names unexported.
var mouseButtonNames = map[tea.MouseButton]string{
	tea.MouseButtonLeft:       mouseLeft,
	tea.MouseButtonMiddle:     "middle",
	tea.MouseButtonRight:      "right",
	tea.MouseButtonWheelUp:    mouseWheelUp,
	tea.MouseButtonWheelDown:  mouseWheelDown,
	tea.MouseButtonWheelLeft:  "wheel left",
	tea.MouseButtonWheelRight: "wheel right",
}

var mouseActionNames = map[tea.MouseAction]string{
	tea.MouseActionPress:   mousePress,
	tea.MouseActionRelease: "release",
	tea.MouseActionMotion:  "motion",
}

func waitForEvent(mux *event.Multiplexer) tea.Cmd {
	return func() tea.Msg {
		ev, err := mux.Next(context.Background())
		if err != nil {
			return muxClosedMsg{}
		}
		return eventMsg{event: ev}
	}
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	k := msg.(tea.KeyMsg)
	m.sender.Send(event.Key{Name: k.String(), Runes: k.Runes})
	return nil
}

func (m *Model) handleMouseMsg(msg tea.Msg) tea.Cmd {
	mouse := msg.(tea.MouseMsg)
	m.sender.Send(event.Mouse{X: mouse.X, Y: mouse.Y, Button: mouseButtonNames[mouse.Button], Action: mouseActionNames[mouse.Action]})
	return nil
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	size := msg.(tea.WindowSizeMsg)
	m.sender.Send(event.Resize{Width: size.Width, Height: size.Height})
	return nil
}

func (m *Model) handleEventMsg(msg tea.Msg) tea.Cmd {
	cmd := m.apply(msg.(eventMsg).event)
	if m.listen && !m.app.ShouldQuit {
		return tea.Batch(cmd, waitForEvent(m.mux))
	}
	return cmd
}

func (m *Model) handleMuxClosedMsg(tea.Msg) tea.Cmd {
	m.app.Quit()
	return tea.Quit
}

// apply is the single consumer step: one event, one state transition.
func (m *Model) apply(ev event.Event) tea.Cmd {
	before := m.app.Mode
	var cmd tea.Cmd
	switch ev := ev.(type) {
	case event.Key:
		cmd = m.applyKey(ev)
	case event.Mouse:
		m.applyMouse(ev)
	case event.Resize:
		m.resize(ev.Width, ev.Height)
	case event.ActionCompleted:
		if ev.Err != nil {
			events.Action.Error(ev.Err)
		}
		m.app.Apply(ev)
	default:
		m.app.Apply(ev)
	}
	if m.app.Mode != before {
		events.UI.Mode(before.String(), m.app.Mode.String())
	}
	m.sync()
	if m.app.ShouldQuit {
		return tea.Quit
	}
	return cmd
}

func (m *Model) applyKey(k event.Key) tea.Cmd {
	if m.filtering {
		m.applyFilterKey(k)
		return nil
	}
	switch {
	case key.Matches(k, keys.Quit):
		m.app.Quit()
	case key.Matches(k, keys.NextPanel):
		m.app.NextPanel()
		events.UI.Panel(m.app.Panel.String())
	case key.Matches(k, keys.PrevPanel):
		m.app.PrevPanel()
		events.UI.Panel(m.app.Panel.String())
	case key.Matches(k, keys.Up):
		m.scroll(-1)
	case key.Matches(k, keys.Down):
		m.scroll(1)
	case key.Matches(k, keys.PageUp):
		m.scroll(-m.pageSize())
	case key.Matches(k, keys.PageDown):
		m.scroll(m.pageSize())
	case key.Matches(k, keys.Filter):
		m.app.Panel = state.Variables
		m.filtering = true
	default:
		if name, ok := keys.actionFor(k); ok {
			return m.requestAction(name)
		}
	}
	return nil
}

func (m *Model) applyFilterKey(k event.Key) {
	switch k.Name {
	case "ctrl+c":
		m.app.Quit()
	case "esc":
		m.vars.ClearFilter()
		m.filtering = false
	case "enter":
		m.filtering = false
	case "backspace":
		m.vars.DeleteFilterRuneBackward()
	case "ctrl+w":
		m.vars.DeleteFilterWordBackward()
	case "ctrl+u":
		m.vars.ClearFilter()
	default:
		if len(k.Runes) > 0 {
			m.vars.InsertFilterText(string(k.Runes))
		}
	}
}

func (m *Model) requestAction(name string) tea.Cmd {
	action := protocol.NewAction(name)
	req := command.NewRequest(action)
	if !m.app.BeginAction(req.ID, action) {
		events.Action.Refused(name, m.app.Pending.Action.RequestedAction)
		return nil
	}
	return m.bus.Execute(req)
}

func (m *Model) scroll(delta int) {
	switch m.app.Panel {
	case state.CallStack:
		moved := false
		for ; delta < 0; delta++ {
			moved = m.app.FrameUp() || moved
		}
		for ; delta > 0; delta-- {
			moved = m.app.FrameDown() || moved
		}
		if moved {
			events.UI.Frame(m.app.SelectedFrame)
		}
	case state.Variables:
		m.vars.MoveCursorBy(delta)
	case state.Output:
		m.flushOutput()
		m.output.SetYOffset(m.output.YOffset + delta)
	}
}

func (m *Model) applyMouse(ev event.Mouse) {
	panel, ok := m.layout().panelAt(ev.X, ev.Y)
	if !ok {
		return
	}
	switch ev.Button {
	case mouseWheelUp:
		m.app.Panel = panel
		m.scroll(-1)
	case mouseWheelDown:
		m.app.Panel = panel
		m.scroll(1)
	case mouseLeft:
		if ev.Action == mousePress && m.app.Panel != panel {
			m.app.Panel = panel
			events.UI.Panel(panel.String())
		}
	}
}
