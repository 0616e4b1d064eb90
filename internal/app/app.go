package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/stefvonb/lazy-pdb/internal/control"
	"github.com/stefvonb/lazy-pdb/internal/debuggee"
	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/logging"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
	"github.com/stefvonb/lazy-pdb/internal/push"
	"github.com/stefvonb/lazy-pdb/internal/ui"
)

const (
	DefaultPython       = "python"
	DefaultModule       = "ldb"
	DefaultHook         = "ldb.set_trace"
	DefaultListenAddr   = "127.0.0.1:8080"
	DefaultDebuggerAddr = "127.0.0.1:8081"
	DefaultTickRate     = 250 * time.Millisecond
	DefaultRPCTimeout   = control.DefaultTimeout

	shutdownTimeout = 2 * time.Second
)

// Config describes user-provided application options.
type Config struct {
	Python       string
	Module       string
	Hook         string
	Target       string
	TargetArgs   []string
	ListenAddr   string
	DebuggerAddr string
	TickRate     time.Duration
	RPCTimeout   time.Duration
}

func (c Config) withDefaults() Config {
	if c.Python == "" {
		c.Python = DefaultPython
	}
	if c.Module == "" {
		c.Module = DefaultModule
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.DebuggerAddr == "" {
		c.DebuggerAddr = DefaultDebuggerAddr
	}
	if c.TickRate <= 0 {
		c.TickRate = DefaultTickRate
	}
	if c.RPCTimeout <= 0 {
		c.RPCTimeout = DefaultRPCTimeout
	}
	return c
}

// Spec returns the debuggee launch description.
func (c Config) Spec() debuggee.Spec {
	c = c.withDefaults()
	return debuggee.PythonSpec(c.Python, c.Module, c.Target, c.TargetArgs, c.Hook)
}

// Run binds the snapshot endpoint, launches the debuggee and executes the
// Bubble Tea program until the user quits.
func Run(cfg Config) error {
	cfg = cfg.withDefaults()
	mux := event.New()
	defer mux.Close()

	server := push.New(cfg.ListenAddr, mux.Sender())
	if err := server.Listen(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(server.Serve)
	group.Go(func() error {
		event.RunTicker(groupCtx, mux.Sender(), cfg.TickRate)
		return nil
	})

	proc, err := debuggee.Start(cfg.Spec(), mux.Sender())
	if err != nil {
		shutdownErr := shutdown(server, nil, cancel, mux, group)
		return errors.Join(err, shutdownErr)
	}

	model := ui.NewModel(ui.Options{
		Mux:        mux,
		Controller: control.New(cfg.DebuggerAddr, cfg.RPCTimeout),
		Listen:     true,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, runErr := program.Run()
	if errors.Is(runErr, tea.ErrProgramKilled) {
		runErr = nil
	}
	events.App.Shutdown("ui exited")
	return errors.Join(runErr, shutdown(server, proc, cancel, mux, group))
}

// shutdown kills the debuggee, stops the push server and the ticker, and
// closes the multiplexer. Output readers are not waited on.
func shutdown(server *push.Server, proc *debuggee.Process, cancel context.CancelFunc, mux *event.Multiplexer, group *errgroup.Group) error {
	var errs []error
	if err := proc.Kill(); err != nil {
		logging.Error(err)
		errs = append(errs, fmt.Errorf("kill debuggee: %w", err))
	}
	ctx, done := context.WithTimeout(context.Background(), shutdownTimeout)
	defer done()
	if err := server.Shutdown(ctx); err != nil {
		logging.Error(err)
		errs = append(errs, fmt.Errorf("stop snapshot server: %w", err))
	}
	cancel()
	mux.Close()
	if err := group.Wait(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}
