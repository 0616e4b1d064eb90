package config

import (
	"errors"
	"flag"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stefvonb/lazy-pdb/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPython     = "LAZY_PDB_PYTHON"
	envModule     = "LAZY_PDB_MODULE"
	envHook       = "LAZY_PDB_HOOK"
	envListen     = "LAZY_PDB_LISTEN"
	envDebugger   = "LAZY_PDB_DEBUGGER"
	envTick       = "LAZY_PDB_TICK"
	envRPCTimeout = "LAZY_PDB_RPC_TIMEOUT"
	envTrace      = "LAZY_PDB_TRACE"
	envLogFile    = "LAZY_PDB_LOG_FILE"
)

const usageLine = "usage: lazy-pdb [flags] <script.py> [script args...]"

// ErrNoTarget is returned when no script is given.
var ErrNoTarget = errors.New("no Python script given")

// UsageError is a flag parse failure. Usage holds what the flag package
// printed: the failure itself followed by the flag help.
type UsageError struct {
	Err   error
	Usage string
}

func (e *UsageError) Error() string {
	if e.Usage == "" {
		return e.Err.Error()
	}
	return e.Usage
}

func (e *UsageError) Unwrap() error { return e.Err }

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment. Flags end at
// the script path; everything after it belongs to the script.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("lazy-pdb", flag.ContinueOnError)
	usage := new(strings.Builder)
	fs.SetOutput(usage)
	fs.Usage = func() {
		fmt.Fprintln(usage, usageLine)
		fs.PrintDefaults()
	}

	python := fs.String("python", envOrDefault(env, envPython, app.DefaultPython), "Python interpreter used to run the script")
	module := fs.String("module", envOrDefault(env, envModule, app.DefaultModule), "debugger module launched with python -m")
	hook := fs.String("hook", envOrDefault(env, envHook, app.DefaultHook), "PYTHONBREAKPOINT hook for breakpoint() calls (empty leaves it unset)")
	listen := fs.String("listen", envOrDefault(env, envListen, app.DefaultListenAddr), "address for snapshot pushes from the debugger")
	debugger := fs.String("debugger", envOrDefault(env, envDebugger, app.DefaultDebuggerAddr), "address of the debugger's control endpoint")
	tick := fs.Duration("tick", envOrDuration(env, envTick, app.DefaultTickRate), "UI refresh interval")
	rpcTimeout := fs.Duration("rpc-timeout", envOrDuration(env, envRPCTimeout, app.DefaultRPCTimeout), "timeout for a single control request")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")

	if err := fs.Parse(args); err != nil {
		return Config{}, &UsageError{Err: err, Usage: strings.TrimRight(usage.String(), "\n")}
	}

	rest := fs.Args()
	cfg := Config{
		App: app.Config{
			Python:       *python,
			Module:       *module,
			Hook:         *hook,
			ListenAddr:   *listen,
			DebuggerAddr: *debugger,
			TickRate:     *tick,
			RPCTimeout:   *rpcTimeout,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"python":     *python,
			"module":     *module,
			"hook":       *hook,
			"listen":     *listen,
			"debugger":   *debugger,
			"tick":       tick.String(),
			"rpcTimeout": rpcTimeout.String(),
			"trace":      strconv.FormatBool(*trace),
			"logFile":    *logFile,
		},
		Args: append([]string(nil), args...),
	}
	if len(rest) > 0 {
		cfg.App.Target = rest[0]
		cfg.App.TargetArgs = append([]string(nil), rest[1:]...)
	}
	return cfg, nil
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrDuration(env map[string]string, key string, fallback time.Duration) time.Duration {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(strings.TrimSpace(v))
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if errors.Is(err, flag.ErrHelp) {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	a := cfg.App
	if strings.TrimSpace(a.Target) == "" {
		return fmt.Errorf("%w\n%s", ErrNoTarget, usageLine)
	}
	if a.Python == "" {
		return errors.New("python must not be empty")
	}
	if a.Module == "" {
		return errors.New("module must not be empty")
	}
	if a.TickRate <= 0 {
		return fmt.Errorf("tick must be > 0 (got %s)", a.TickRate)
	}
	if a.RPCTimeout <= 0 {
		return fmt.Errorf("rpc-timeout must be > 0 (got %s)", a.RPCTimeout)
	}
	if err := checkHostPort("listen", a.ListenAddr); err != nil {
		return err
	}
	return checkHostPort("debugger", a.DebuggerAddr)
}

func checkHostPort(name, addr string) error {
	hostport := addr
	if strings.Contains(addr, "://") {
		u, err := url.Parse(addr)
		if err != nil {
			return fmt.Errorf("%s address %q: %w", name, addr, err)
		}
		hostport = u.Host
	}
	if _, port, err := net.SplitHostPort(hostport); err != nil || port == "" {
		return fmt.Errorf("%s address %q must be host:port", name, addr)
	}
	return nil
}
