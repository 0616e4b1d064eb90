package command

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

// ErrNoController is reported when no control client is configured.
var ErrNoController = errors.New("command: no debugger connection")

// Controller delivers one action to the debuggee.
type Controller interface {
	Send(protocol.DebugAction) (protocol.DebugActionResult, error)
}

// Request encapsulates an action invocation.
type Request struct {
	ID     string
	Action protocol.DebugAction
}

// NewRequest assigns a fresh id to action.
func NewRequest(action protocol.DebugAction) Request {
	return Request{ID: uuid.NewString(), Action: action}
}

// Bus runs control requests off the update loop and reports their outcome
// as ActionCompleted events.
type Bus struct {
	controller Controller
	sender     event.Sender
}

// New initialises a command bus instance.
func New(controller Controller, sender event.Sender) *Bus {
	return &Bus{controller: controller, sender: sender}
}

// Execute wraps the request into a Bubble Tea command while emitting trace
// logs. The command yields no message; the outcome arrives through the
// multiplexer instead.
func (b *Bus) Execute(req Request) tea.Cmd {
	events.Command.Queue(req.ID, req.Action.RequestedAction)
	return func() tea.Msg {
		b.sender.Send(b.Run(req))
		return nil
	}
}

// Run performs the request synchronously.
func (b *Bus) Run(req Request) event.ActionCompleted {
	done := event.ActionCompleted{ID: req.ID, Action: req.Action}
	if b == nil || b.controller == nil {
		done.Err = ErrNoController
		events.Command.Error(req.ID, req.Action.RequestedAction, done.Err)
		return done
	}
	done.Result, done.Err = b.controller.Send(req.Action)
	if done.Err != nil {
		events.Command.Error(req.ID, req.Action.RequestedAction, done.Err)
		return done
	}
	events.Command.Result(req.ID, req.Action.RequestedAction, done.Result.Status)
	return done
}
