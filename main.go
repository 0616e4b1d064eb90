package main

import (
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/stefvonb/lazy-pdb/internal/app"
	"github.com/stefvonb/lazy-pdb/internal/config"
	"github.com/stefvonb/lazy-pdb/internal/logging"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
)

func main() {
	runtimeCfg := config.MustLoad()
	if err := config.Validate(runtimeCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "Error: lazy-pdb needs an interactive terminal")
		os.Exit(2)
	}
	logging.Configure(runtimeCfg.Logging.FilePath)
	logging.SetTraceEnabled(runtimeCfg.Logging.Trace)

	events.App.Start(startupTracePayload(runtimeCfg))

	err := app.Run(runtimeCfg.App)
	if err != nil {
		logging.Error(err)
	}
	logging.Close()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// terminalSize is the first standard descriptor that reports dimensions.
type terminalSize struct {
	Stream string `json:"stream"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

// startupTracePayload records how the session was launched: the resolved
// flags, the debuggee command line and the terminal it will draw on.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags)+2)
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath

	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"config":   cfg,
		"debuggee": cfg.App.Spec().Argv(),
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	}
	if size, ok := probeTerminal(); ok {
		payload["terminal"] = size
	}
	return payload
}

func probeTerminal() (terminalSize, bool) {
	for _, f := range []*os.File{os.Stdout, os.Stderr, os.Stdin} {
		fd := int(f.Fd())
		if !term.IsTerminal(fd) {
			continue
		}
		if w, h, err := term.GetSize(fd); err == nil {
			return terminalSize{Stream: f.Name(), Width: w, Height: h}, true
		}
	}
	return terminalSize{}, false
}
