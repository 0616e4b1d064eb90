// Package event merges the independent input sources of the debugger front
// end (terminal, tick, snapshot pushes, debuggee output, command outcomes)
// into one ordered queue drained by a single consumer.
package event

import (
	"time"

	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

// Event is implemented by every value carried through the Multiplexer.
// The set is closed; consumers switch over the concrete types.
type Event interface {
	isEvent()
}

// Stream identifies one of the debuggee's output streams.
type Stream int

const (
	Stdout Stream = iota
	Stderr
)

func (s Stream) String() string {
	if s == Stderr {
		return "stderr"
	}
	return "stdout"
}

// Tick is the fixed-rate refresh event.
type Tick struct {
	At time.Time
}

// Key is a key press. Name uses the terminal layer's naming ("up", "tab",
// "shift+tab", "ctrl+c", "q", ...).
type Key struct {
	Name  string
	Runes []rune
}

// String lets key bindings match against the event.
func (k Key) String() string { return k.Name }

// Mouse is a mouse action at a cell position.
type Mouse struct {
	X, Y   int
	Button string
	Action string
}

// Resize reports new terminal dimensions.
type Resize struct {
	Width, Height int
}

// SnapshotReceived carries a pushed debugger snapshot.
type SnapshotReceived struct {
	Snapshot protocol.Snapshot
}

// StdoutReceived is one line read from the debuggee's stdout.
type StdoutReceived struct {
	Line string
}

// StderrReceived is one line read from the debuggee's stderr.
type StderrReceived struct {
	Line string
}

// ActionCompleted reports the outcome of a control request.
type ActionCompleted struct {
	ID     string
	Action protocol.DebugAction
	Result protocol.DebugActionResult
	Err    error
}

// PayloadRejected reports an inbound push that could not be decoded.
type PayloadRejected struct {
	Err error
}

// DebuggeeExited reports that the debuggee process ended.
type DebuggeeExited struct {
	Code int
	Err  error
}

func (Tick) isEvent()             {}
func (Key) isEvent()              {}
func (Mouse) isEvent()            {}
func (Resize) isEvent()           {}
func (SnapshotReceived) isEvent() {}
func (StdoutReceived) isEvent()   {}
func (StderrReceived) isEvent()   {}
func (ActionCompleted) isEvent()  {}
func (PayloadRejected) isEvent()  {}
func (DebuggeeExited) isEvent()   {}

// Line wraps text read from stream in the matching event.
func Line(stream Stream, text string) Event {
	if stream == Stderr {
		return StderrReceived{Line: text}
	}
	return StdoutReceived{Line: text}
}
