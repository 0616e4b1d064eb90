package state

import (
	"errors"
	"testing"
	"time"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

func frames(names ...string) protocol.Snapshot {
	stack := make([]protocol.Frame, len(names))
	for i, name := range names {
		stack[i] = protocol.Frame{FileName: "main.py", LineNumber: uint32(i + 1), FunctionName: name}
	}
	return protocol.Snapshot{Stack: stack}
}

func TestInitialState(t *testing.T) {
	a := New()
	if a.Mode != Idle {
		t.Fatalf("expected Idle, got %v", a.Mode)
	}
	if a.Panel != CallStack {
		t.Fatalf("expected call stack panel, got %v", a.Panel)
	}
	if a.SelectedFrame != 0 {
		t.Fatalf("expected frame 0, got %d", a.SelectedFrame)
	}
	if len(a.Snapshot.Stack) != 0 || len(a.Output) != 0 {
		t.Fatalf("expected empty stack and output")
	}
	if _, ok := a.Selected(); ok {
		t.Fatalf("empty stack must not have a selection")
	}
}

func TestSnapshotSelectsLastFrame(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("FrameA", "FrameB")})
	if a.Mode != Breakpoint {
		t.Fatalf("expected Breakpoint, got %v", a.Mode)
	}
	if a.SelectedFrame != 1 {
		t.Fatalf("expected frame 1, got %d", a.SelectedFrame)
	}
	frame, ok := a.Selected()
	if !ok || frame.FunctionName != "FrameB" {
		t.Fatalf("expected FrameB selected, got %#v", frame)
	}
}

func TestEmptySnapshotHasNoSelection(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("A", "B", "C")})
	a.Apply(event.SnapshotReceived{Snapshot: protocol.Snapshot{}})
	if a.SelectedFrame != 0 {
		t.Fatalf("expected frame index reset to 0, got %d", a.SelectedFrame)
	}
	if _, ok := a.Selected(); ok {
		t.Fatalf("empty stack must not have a selection")
	}
	if a.FrameUp() || a.FrameDown() {
		t.Fatalf("frame navigation must be a no-op on an empty stack")
	}
}

func TestSnapshotReplacesWholeStack(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("A", "B", "C")})
	a.Apply(event.SnapshotReceived{Snapshot: frames("X")})
	if len(a.Snapshot.Stack) != 1 || a.Snapshot.Stack[0].FunctionName != "X" {
		t.Fatalf("expected stack replaced, got %#v", a.Snapshot.Stack)
	}
	if a.SelectedFrame != 0 {
		t.Fatalf("expected frame 0, got %d", a.SelectedFrame)
	}
}

func TestFrameNavigationClamps(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("FrameA", "FrameB")})

	if !a.FrameUp() || a.SelectedFrame != 0 {
		t.Fatalf("expected up to select 0, got %d", a.SelectedFrame)
	}
	if a.FrameUp() || a.SelectedFrame != 0 {
		t.Fatalf("expected up at 0 to stay at 0, got %d", a.SelectedFrame)
	}
	if !a.FrameDown() || a.SelectedFrame != 1 {
		t.Fatalf("expected down to select 1, got %d", a.SelectedFrame)
	}
	if a.FrameDown() || a.SelectedFrame != 1 {
		t.Fatalf("expected down at last to stay, got %d", a.SelectedFrame)
	}
}

func TestOutputAppendsWithoutModeChange(t *testing.T) {
	a := New()
	a.Mode = RunningCode
	a.Apply(event.StdoutReceived{Line: "hello"})
	a.Apply(event.StderrReceived{Line: "warn"})
	if a.Mode != RunningCode {
		t.Fatalf("output must not change mode, got %v", a.Mode)
	}
	want := []OutputLine{{Stream: event.Stdout, Text: "hello"}, {Stream: event.Stderr, Text: "warn"}}
	if len(a.Output) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(a.Output))
	}
	for i := range want {
		if a.Output[i] != want[i] {
			t.Fatalf("line %d: expected %#v, got %#v", i, want[i], a.Output[i])
		}
	}
}

func TestActionOutcomes(t *testing.T) {
	cases := []struct {
		action string
		err    error
		from   Mode
		want   Mode
	}{
		{protocol.ActionContinue, nil, Breakpoint, RunningCode},
		{protocol.ActionNext, nil, Breakpoint, RunningCode},
		{protocol.ActionStep, nil, Breakpoint, RunningCode},
		{protocol.ActionReturn, nil, Breakpoint, RunningCode},
		{protocol.ActionStop, nil, Breakpoint, Idle},
		{protocol.ActionStop, nil, Error, Idle},
		{protocol.ActionContinue, errors.New("connection refused"), Breakpoint, Breakpoint},
		{protocol.ActionStop, errors.New("connection refused"), RunningCode, RunningCode},
		{protocol.ActionNext, errors.New("timeout"), Idle, Idle},
	}
	for _, tc := range cases {
		a := New()
		a.Mode = tc.from
		action := protocol.NewAction(tc.action)
		if !a.BeginAction("id-1", action) {
			t.Fatalf("%s: expected action to start", tc.action)
		}
		a.Apply(event.ActionCompleted{ID: "id-1", Action: action, Err: tc.err})
		if a.Mode != tc.want {
			t.Fatalf("%s (err=%v) from %v: expected %v, got %v", tc.action, tc.err, tc.from, tc.want, a.Mode)
		}
		if a.Pending != nil {
			t.Fatalf("%s: pending action not cleared", tc.action)
		}
		if tc.err != nil && a.Notice == "" {
			t.Fatalf("%s: expected failure notice", tc.action)
		}
	}
}

func TestContinueThenSnapshot(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("FrameA", "FrameB")})
	action := protocol.NewAction(protocol.ActionContinue)
	a.BeginAction("c1", action)
	a.Apply(event.ActionCompleted{ID: "c1", Action: action, Result: protocol.DebugActionResult{Status: "ok"}})
	if a.Mode != RunningCode {
		t.Fatalf("expected RunningCode, got %v", a.Mode)
	}
	a.Apply(event.SnapshotReceived{Snapshot: frames("A", "B", "C")})
	if a.Mode != Breakpoint || a.SelectedFrame != 2 {
		t.Fatalf("expected Breakpoint at frame 2, got %v at %d", a.Mode, a.SelectedFrame)
	}
}

func TestLateCompletionAfterSnapshotKeepsBreakpoint(t *testing.T) {
	for _, name := range []string{protocol.ActionNext, protocol.ActionContinue, protocol.ActionStop} {
		a := New()
		a.Apply(event.SnapshotReceived{Snapshot: frames("A", "B")})
		action := protocol.NewAction(name)
		a.BeginAction("late", action)
		a.Apply(event.SnapshotReceived{Snapshot: frames("A")})
		a.Apply(event.ActionCompleted{ID: "late", Action: action, Result: protocol.DebugActionResult{Status: "ok"}})
		if a.Mode != Breakpoint {
			t.Fatalf("%s: expected Breakpoint after newer snapshot, got %v", name, a.Mode)
		}
		if a.Pending != nil {
			t.Fatalf("%s: pending action not cleared", name)
		}
		if len(a.Snapshot.Stack) != 1 || a.SelectedFrame != 0 {
			t.Fatalf("%s: expected newer one-frame stack selected, got %d frames at %d", name, len(a.Snapshot.Stack), a.SelectedFrame)
		}
	}
}

func TestSecondActionRefusedWhilePending(t *testing.T) {
	a := New()
	if !a.BeginAction("one", protocol.NewAction(protocol.ActionNext)) {
		t.Fatalf("expected first action to start")
	}
	if a.BeginAction("two", protocol.NewAction(protocol.ActionContinue)) {
		t.Fatalf("expected second action to be refused")
	}
	if a.Pending.ID != "one" {
		t.Fatalf("expected pending action one, got %s", a.Pending.ID)
	}
	if a.Notice == "" {
		t.Fatalf("expected a notice about the refused action")
	}
	a.Apply(event.ActionCompleted{ID: "one", Action: protocol.NewAction(protocol.ActionNext)})
	if !a.BeginAction("three", protocol.NewAction(protocol.ActionContinue)) {
		t.Fatalf("expected action after completion to start")
	}
}

func TestPayloadRejectedEntersError(t *testing.T) {
	a := New()
	a.Apply(event.SnapshotReceived{Snapshot: frames("A")})
	a.Apply(event.PayloadRejected{Err: errors.New("malformed payload")})
	if a.Mode != Error {
		t.Fatalf("expected Error, got %v", a.Mode)
	}
	if a.Status() != "bad snapshot: malformed payload" {
		t.Fatalf("unexpected status %q", a.Status())
	}
	a.Apply(event.SnapshotReceived{Snapshot: frames("A")})
	if a.Mode != Breakpoint || a.ErrorMessage != "" {
		t.Fatalf("expected recovery to Breakpoint, got %v %q", a.Mode, a.ErrorMessage)
	}
}

func TestDebuggeeExit(t *testing.T) {
	a := New()
	a.Mode = RunningCode
	a.Apply(event.DebuggeeExited{Code: 0})
	if a.Mode != Idle {
		t.Fatalf("expected Idle after clean exit, got %v", a.Mode)
	}

	a.Apply(event.DebuggeeExited{Code: 2})
	if a.Mode != Error || a.Status() != "debuggee exited with status 2" {
		t.Fatalf("expected error status, got %v %q", a.Mode, a.Status())
	}
}

func TestNoticeExpiresOnTick(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	a := New()
	a.now = func() time.Time { return now }
	a.SetNotice("hello")

	a.Apply(event.Tick{At: now.Add(time.Second)})
	if a.Notice != "hello" {
		t.Fatalf("notice expired too early")
	}
	a.Apply(event.Tick{At: now.Add(noticeTTL)})
	if a.Notice != "" {
		t.Fatalf("expected notice to expire, got %q", a.Notice)
	}
	if a.Ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", a.Ticks)
	}
}

func TestTerminalEventsAreNotApplied(t *testing.T) {
	a := New()
	for _, ev := range []event.Event{event.Key{Name: "q"}, event.Mouse{}, event.Resize{Width: 1, Height: 1}} {
		if a.Apply(ev) {
			t.Fatalf("%T should be left to the caller", ev)
		}
	}
	if a.ShouldQuit {
		t.Fatalf("Apply must not interpret keys")
	}
}
