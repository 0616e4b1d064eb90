//go:build !windows

package debuggee

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefvonb/lazy-pdb/internal/event"
)

func collectUntilExit(t *testing.T, mux *event.Multiplexer) ([]event.Event, event.DebuggeeExited) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	var seen []event.Event
	for {
		ev, err := mux.Next(ctx)
		require.NoError(t, err)
		if exit, ok := ev.(event.DebuggeeExited); ok {
			return seen, exit
		}
		seen = append(seen, ev)
	}
}

func TestPythonSpec(t *testing.T) {
	spec := PythonSpec("python3", "ldb", "prog.py", []string{"--flag", "x"}, "ldb.set_trace")
	assert.Equal(t, []string{"python3", "-m", "ldb", "prog.py", "--flag", "x"}, spec.Argv())
	assert.Equal(t, []string{"PYTHONBREAKPOINT=ldb.set_trace"}, spec.Env)

	bare := PythonSpec("python", "ldb", "prog.py", nil, "")
	assert.Empty(t, bare.Env)
}

func TestStartStreamsOutputBeforeExit(t *testing.T) {
	mux := event.New()
	defer mux.Close()

	p, err := Start(Spec{Program: "sh", Args: []string{"-c", "echo one; echo two; echo oops >&2"}}, mux.Sender())
	require.NoError(t, err)
	assert.NotZero(t, p.Pid())

	seen, exit := collectUntilExit(t, mux)
	assert.Equal(t, 0, exit.Code)
	assert.NoError(t, exit.Err)

	var stdout, stderr []string
	for _, ev := range seen {
		switch ev := ev.(type) {
		case event.StdoutReceived:
			stdout = append(stdout, ev.Line)
		case event.StderrReceived:
			stderr = append(stderr, ev.Line)
		}
	}
	assert.Equal(t, []string{"one", "two"}, stdout)
	assert.Equal(t, []string{"oops"}, stderr)

	select {
	case <-p.Done():
	case <-time.After(time.Second):
		t.Fatal("Done not closed after exit event")
	}
	code, _, ok := p.Exited()
	assert.True(t, ok)
	assert.Equal(t, 0, code)
}

func TestStartPassesEnvironment(t *testing.T) {
	mux := event.New()
	defer mux.Close()

	spec := Spec{Program: "sh", Args: []string{"-c", "echo $" + BreakpointEnv}, Env: []string{BreakpointEnv + "=ldb.set_trace"}}
	_, err := Start(spec, mux.Sender())
	require.NoError(t, err)

	seen, _ := collectUntilExit(t, mux)
	require.Len(t, seen, 1)
	assert.Equal(t, event.StdoutReceived{Line: "ldb.set_trace"}, seen[0])
}

func TestNonZeroExit(t *testing.T) {
	mux := event.New()
	defer mux.Close()

	_, err := Start(Spec{Program: "sh", Args: []string{"-c", "exit 3"}}, mux.Sender())
	require.NoError(t, err)

	_, exit := collectUntilExit(t, mux)
	assert.Equal(t, 3, exit.Code)
	assert.NoError(t, exit.Err)
}

func TestKillStopsProcessGroup(t *testing.T) {
	mux := event.New()
	defer mux.Close()

	p, err := Start(Spec{Program: "sh", Args: []string{"-c", "sleep 30 & sleep 30"}}, mux.Sender())
	require.NoError(t, err)
	require.NoError(t, p.Kill())

	_, exit := collectUntilExit(t, mux)
	assert.NotEqual(t, 0, exit.Code)
	assert.NoError(t, p.Kill(), "killing a reaped process is a no-op")
}

func TestStartMissingProgram(t *testing.T) {
	mux := event.New()
	defer mux.Close()

	_, err := Start(Spec{Program: "/nonexistent/lazy-pdb-python"}, mux.Sender())
	assert.Error(t, err)
	_, err = Start(Spec{}, mux.Sender())
	assert.Error(t, err)
	assert.Equal(t, 0, mux.Len())
}
