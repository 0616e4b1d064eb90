// Package protocol describes the debugger state exchanged with the debuggee
// and the XML-RPC encoding used on both RPC surfaces.
package protocol

import "strings"

// Action names understood by the debuggee.
const (
	ActionContinue = "continue"
	ActionNext     = "next"
	ActionStep     = "step"
	ActionReturn   = "return"
	ActionStop     = "stop"
)

// Variable is one binding captured when the debuggee paused.
type Variable struct {
	Name         string
	Value        string
	DeclaredType string
}

// Frame is one activation record at pause time. LineNumber is 1-based.
type Frame struct {
	FileName        string
	LineNumber      uint32
	FunctionName    string
	LocalVariables  []Variable
	GlobalVariables []Variable
}

// Snapshot is the complete paused call stack. The last frame is the one the
// debuggee stopped in.
type Snapshot struct {
	Stack []Frame
}

// Current returns the innermost frame.
func (s Snapshot) Current() (Frame, bool) {
	if len(s.Stack) == 0 {
		return Frame{}, false
	}
	return s.Stack[len(s.Stack)-1], true
}

// DebugAction is a command request sent to the debuggee.
type DebugAction struct {
	RequestedAction string
	Arguments       []string
}

// NewAction builds an action with a non-nil argument list.
func NewAction(name string, args ...string) DebugAction {
	return DebugAction{RequestedAction: name, Arguments: append([]string{}, args...)}
}

// DebugActionResult is the debuggee's answer to a DebugAction.
type DebugActionResult struct {
	RequestedAction string
	Arguments       []string
	Status          string
	Message         string
}

// OK reports whether the debuggee accepted the action.
func (r DebugActionResult) OK() bool {
	switch strings.ToLower(strings.TrimSpace(r.Status)) {
	case "ok", "success":
		return true
	default:
		return false
	}
}
