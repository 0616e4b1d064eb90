package protocol

import "fmt"

// The wire structs mirror the member names the Python side uses. Line numbers
// travel as XML-RPC ints, so they are decoded as int and range checked.

type wireVariable struct {
	Name  string `xmlrpc:"name"`
	Value string `xmlrpc:"value"`
	Type  string `xmlrpc:"python_type"`
}

type wireFrame struct {
	FileName        string         `xmlrpc:"file_name"`
	LineNumber      int            `xmlrpc:"line_number"`
	FunctionName    string         `xmlrpc:"function_name"`
	LocalVariables  []wireVariable `xmlrpc:"local_variables"`
	GlobalVariables []wireVariable `xmlrpc:"global_variables"`
}

type wireSnapshot struct {
	Stack []wireFrame `xmlrpc:"stack"`
}

type wireAction struct {
	RequestedAction string   `xmlrpc:"requested_action"`
	Arguments       []string `xmlrpc:"arguments"`
}

type wireActionResult struct {
	RequestedAction string   `xmlrpc:"requested_action"`
	Arguments       []string `xmlrpc:"arguments"`
	Status          string   `xmlrpc:"status"`
	Message         string   `xmlrpc:"message"`
}

func (w wireSnapshot) snapshot() (Snapshot, error) {
	stack := make([]Frame, 0, len(w.Stack))
	for i, f := range w.Stack {
		if f.LineNumber < 0 {
			return Snapshot{}, fmt.Errorf("%w: frame %d has line number %d", ErrMalformed, i, f.LineNumber)
		}
		stack = append(stack, Frame{
			FileName:        f.FileName,
			LineNumber:      uint32(f.LineNumber),
			FunctionName:    f.FunctionName,
			LocalVariables:  variables(f.LocalVariables),
			GlobalVariables: variables(f.GlobalVariables),
		})
	}
	return Snapshot{Stack: stack}, nil
}

func variables(in []wireVariable) []Variable {
	if len(in) == 0 {
		return nil
	}
	out := make([]Variable, len(in))
	for i, v := range in {
		out[i] = Variable{Name: v.Name, Value: v.Value, DeclaredType: v.Type}
	}
	return out
}

func toWireSnapshot(s Snapshot) wireSnapshot {
	frames := make([]wireFrame, len(s.Stack))
	for i, f := range s.Stack {
		frames[i] = wireFrame{
			FileName:        f.FileName,
			LineNumber:      int(f.LineNumber),
			FunctionName:    f.FunctionName,
			LocalVariables:  toWireVariables(f.LocalVariables),
			GlobalVariables: toWireVariables(f.GlobalVariables),
		}
	}
	return wireSnapshot{Stack: frames}
}

func toWireVariables(in []Variable) []wireVariable {
	out := make([]wireVariable, len(in))
	for i, v := range in {
		out[i] = wireVariable{Name: v.Name, Value: v.Value, Type: v.DeclaredType}
	}
	return out
}

// WireAction returns the XML-RPC encodable form of the action.
func WireAction(a DebugAction) interface{} {
	args := a.Arguments
	if args == nil {
		args = []string{}
	}
	return wireAction{RequestedAction: a.RequestedAction, Arguments: args}
}

// ActionResultReply is the decode target for interact_with_debugger replies.
type ActionResultReply struct {
	wire wireActionResult
}

// Target returns the pointer handed to the XML-RPC decoder.
func (r *ActionResultReply) Target() interface{} {
	return &r.wire
}

// Result converts the decoded reply.
func (r *ActionResultReply) Result() DebugActionResult {
	return DebugActionResult{
		RequestedAction: r.wire.RequestedAction,
		Arguments:       append([]string(nil), r.wire.Arguments...),
		Status:          r.wire.Status,
		Message:         r.wire.Message,
	}
}
