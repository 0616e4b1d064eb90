// Package state holds the UI-facing debugger state. App has a single writer,
// the consumer of the event multiplexer, so it carries no locking.
package state

import (
	"fmt"
	"time"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

// Mode is the debugger's execution state as seen by the UI.
type Mode int

const (
	Idle Mode = iota
	RunningCode
	Breakpoint
	Error
)

func (m Mode) String() string {
	switch m {
	case RunningCode:
		return "Running code"
	case Breakpoint:
		return "Breakpoint"
	case Error:
		return "Error"
	default:
		return "Idle"
	}
}

// OutputLine is one captured line of debuggee output.
type OutputLine struct {
	Stream event.Stream
	Text   string
}

// PendingAction is a control request that has not completed yet.
type PendingAction struct {
	ID     string
	Action protocol.DebugAction
	Since  time.Time

	// snapshot count when the action started
	snapshots int
}

const noticeTTL = 4 * time.Second

// App is the application state mutated by the update loop.
type App struct {
	Mode          Mode
	ErrorMessage  string
	Panel         Panel
	SelectedFrame int
	Output        []OutputLine
	Snapshot      protocol.Snapshot
	ShouldQuit    bool

	Pending      *PendingAction
	Notice       string
	noticeExpire time.Time
	Ticks        int
	Snapshots    int // snapshots received so far
	now          func() time.Time
}

// New returns the initial state: Idle, call stack panel, nothing loaded.
func New() *App {
	return &App{Mode: Idle, Panel: CallStack, now: time.Now}
}

// Status is the text shown for the current mode.
func (a *App) Status() string {
	if a.Mode == Error && a.ErrorMessage != "" {
		return a.ErrorMessage
	}
	return a.Mode.String()
}

// Selected returns the selected frame, if the stack is non-empty.
func (a *App) Selected() (protocol.Frame, bool) {
	if a.SelectedFrame < 0 || a.SelectedFrame >= len(a.Snapshot.Stack) {
		return protocol.Frame{}, false
	}
	return a.Snapshot.Stack[a.SelectedFrame], true
}

// ReceiveSnapshot replaces the snapshot and selects the innermost frame.
func (a *App) ReceiveSnapshot(s protocol.Snapshot) {
	a.Snapshot = s
	a.Snapshots++
	a.setMode(Breakpoint, "")
	if n := len(s.Stack); n > 0 {
		a.SelectedFrame = n - 1
	} else {
		a.SelectedFrame = 0
	}
}

// AppendOutput records a line of debuggee output.
func (a *App) AppendOutput(stream event.Stream, text string) {
	a.Output = append(a.Output, OutputLine{Stream: stream, Text: text})
}

// FrameUp moves the selection towards index 0.
func (a *App) FrameUp() bool {
	if len(a.Snapshot.Stack) == 0 || a.SelectedFrame <= 0 {
		return false
	}
	a.SelectedFrame--
	return true
}

// FrameDown moves the selection towards the last frame.
func (a *App) FrameDown() bool {
	last := len(a.Snapshot.Stack) - 1
	if last < 0 || a.SelectedFrame >= last {
		return false
	}
	a.SelectedFrame++
	return true
}

// Quit asks the outer loop to shut down.
func (a *App) Quit() {
	a.ShouldQuit = true
}

// BeginAction registers action as pending. It refuses while another action
// is still in flight so commands reach the debuggee one at a time.
func (a *App) BeginAction(id string, action protocol.DebugAction) bool {
	if a.Pending != nil {
		a.SetNotice(fmt.Sprintf("%s ignored: %s still in progress", action.RequestedAction, a.Pending.Action.RequestedAction))
		return false
	}
	a.Pending = &PendingAction{ID: id, Action: action, Since: a.clock(), snapshots: a.Snapshots}
	return true
}

// CompleteAction applies the outcome of a control request. Failures leave the
// mode untouched, and so does a success reported after the debuggee already
// pushed a newer snapshot: the snapshot describes where it is paused now.
func (a *App) CompleteAction(done event.ActionCompleted) {
	superseded := false
	if p := a.Pending; p != nil && (done.ID == "" || p.ID == done.ID) {
		superseded = a.Snapshots > p.snapshots
		a.Pending = nil
	}
	name := done.Action.RequestedAction
	if done.Err != nil {
		a.SetNotice(fmt.Sprintf("%s failed: %v", name, done.Err))
		return
	}
	if next, ok := modeAfter(name); ok && !superseded {
		a.setMode(next, "")
	}
	a.clearNotice()
}

// Fail surfaces a non-fatal problem through the Error mode.
func (a *App) Fail(msg string) {
	a.setMode(Error, msg)
}

// DebuggeeExited records the end of the debuggee process.
func (a *App) DebuggeeExited(code int, err error) {
	a.Pending = nil
	switch {
	case err != nil && code == 0:
		a.Fail(fmt.Sprintf("debuggee: %v", err))
	case code != 0:
		a.Fail(fmt.Sprintf("debuggee exited with status %d", code))
	default:
		a.setMode(Idle, "")
		a.SetNotice("debuggee finished")
	}
}

// Tick advances the tick counter and expires the notice.
func (a *App) Tick(at time.Time) {
	a.Ticks++
	if a.Notice != "" && !a.noticeExpire.IsZero() && !at.Before(a.noticeExpire) {
		a.clearNotice()
	}
}

// SetNotice shows a transient message in the status row.
func (a *App) SetNotice(msg string) {
	a.Notice = msg
	a.noticeExpire = a.clock().Add(noticeTTL)
}

func (a *App) clearNotice() {
	a.Notice = ""
	a.noticeExpire = time.Time{}
}

func (a *App) setMode(m Mode, msg string) {
	a.Mode = m
	if m == Error {
		a.ErrorMessage = msg
	} else {
		a.ErrorMessage = ""
	}
}

func (a *App) clock() time.Time {
	if a.now == nil {
		return time.Now()
	}
	return a.now()
}

func modeAfter(action string) (Mode, bool) {
	switch action {
	case protocol.ActionContinue, protocol.ActionNext, protocol.ActionStep, protocol.ActionReturn:
		return RunningCode, true
	case protocol.ActionStop:
		return Idle, true
	default:
		return 0, false
	}
}
