package state

import (
	"fmt"

	"github.com/stefvonb/lazy-pdb/internal/event"
)

// Apply performs the state transition for ev. Terminal input (Key, Mouse,
// Resize) depends on key bindings and layout, so it is left to the caller;
// Apply reports false for those.
func (a *App) Apply(ev event.Event) bool {
	switch ev := ev.(type) {
	case event.Tick:
		a.Tick(ev.At)
	case event.SnapshotReceived:
		a.ReceiveSnapshot(ev.Snapshot)
	case event.StdoutReceived:
		a.AppendOutput(event.Stdout, ev.Line)
	case event.StderrReceived:
		a.AppendOutput(event.Stderr, ev.Line)
	case event.ActionCompleted:
		a.CompleteAction(ev)
	case event.PayloadRejected:
		a.Fail(fmt.Sprintf("bad snapshot: %v", ev.Err))
	case event.DebuggeeExited:
		a.DebuggeeExited(ev.Code, ev.Err)
	case event.Key, event.Mouse, event.Resize:
		return false
	default:
		return false
	}
	return true
}
