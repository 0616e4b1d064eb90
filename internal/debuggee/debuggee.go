// Package debuggee launches the Python program under the debugger and turns
// its output and exit into multiplexer events.
package debuggee

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"sync"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
)

// BreakpointEnv is the variable Python consults for breakpoint().
const BreakpointEnv = "PYTHONBREAKPOINT"

// Spec describes the process to launch.
type Spec struct {
	Program string
	Args    []string
	// Env entries are appended to the inherited environment.
	Env []string
}

// Argv returns the full command line.
func (s Spec) Argv() []string {
	return append([]string{s.Program}, s.Args...)
}

// PythonSpec builds "python -m module target args..." with breakpoint()
// routed to hook.
func PythonSpec(python, module, target string, args []string, hook string) Spec {
	argv := []string{"-m", module, target}
	argv = append(argv, args...)
	spec := Spec{Program: python, Args: argv}
	if hook != "" {
		spec.Env = []string{BreakpointEnv + "=" + hook}
	}
	return spec
}

// Process is a running debuggee.
type Process struct {
	cmd  *exec.Cmd
	done chan struct{}

	mu     sync.Mutex
	exited bool
	code   int
	err    error
}

// Start launches spec, streaming stdout and stderr line by line into sender.
// DebuggeeExited is sent once both streams hit EOF and the process is reaped.
func Start(spec Spec, sender event.Sender) (*Process, error) {
	if spec.Program == "" {
		return nil, errors.New("debuggee: no program")
	}
	cmd := exec.Command(spec.Program, spec.Args...)
	cmd.Env = append(os.Environ(), spec.Env...)
	setProcAttr(cmd)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("debuggee: stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return nil, fmt.Errorf("debuggee: stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("debuggee: start %s: %w", spec.Program, err)
	}
	events.Debuggee.Start(cmd.Process.Pid, spec.Argv())

	p := &Process{cmd: cmd, done: make(chan struct{})}
	var readers sync.WaitGroup
	readers.Add(2)
	go func() {
		defer readers.Done()
		event.ReadLines(stdout, sender, event.Stdout)
	}()
	go func() {
		defer readers.Done()
		event.ReadLines(stderr, sender, event.Stderr)
	}()
	go p.wait(&readers, sender)
	return p, nil
}

// wait reaps the process after the readers finish; Wait closes the pipes,
// so calling it first could drop buffered output.
func (p *Process) wait(readers *sync.WaitGroup, sender event.Sender) {
	readers.Wait()
	err := p.cmd.Wait()
	code := 0
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code = exitErr.ExitCode()
		err = nil
	}
	p.mu.Lock()
	p.exited, p.code, p.err = true, code, err
	p.mu.Unlock()
	close(p.done)

	events.Debuggee.Exit(p.Pid(), code, err)
	sender.Send(event.DebuggeeExited{Code: code, Err: err})
}

// Pid returns the process id.
func (p *Process) Pid() int {
	if p == nil || p.cmd.Process == nil {
		return 0
	}
	return p.cmd.Process.Pid
}

// Done is closed once the process has been reaped.
func (p *Process) Done() <-chan struct{} {
	return p.done
}

// Exited reports the exit status once the process has been reaped.
func (p *Process) Exited() (code int, err error, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.code, p.err, p.exited
}

// Kill terminates the debuggee and anything it spawned. Killing an already
// finished process is not an error.
func (p *Process) Kill() error {
	if p == nil {
		return nil
	}
	if _, _, ok := p.Exited(); ok {
		return nil
	}
	events.Debuggee.Kill(p.Pid())
	return killProcessGroup(p.Pid(), p.cmd)
}
