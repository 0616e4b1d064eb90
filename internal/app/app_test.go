package app

import (
	"strings"
	"testing"
)

func TestSpecAppliesDefaults(t *testing.T) {
	spec := Config{Target: "prog.py", TargetArgs: []string{"a"}, Hook: DefaultHook}.Spec()
	if got := strings.Join(spec.Argv(), " "); got != "python -m ldb prog.py a" {
		t.Fatalf("unexpected argv %q", got)
	}
	if len(spec.Env) != 1 || spec.Env[0] != "PYTHONBREAKPOINT=ldb.set_trace" {
		t.Fatalf("unexpected env %v", spec.Env)
	}
}

func TestWithDefaultsKeepsOverrides(t *testing.T) {
	cfg := Config{Python: "python3", ListenAddr: "127.0.0.1:9000", TickRate: 1}.withDefaults()
	if cfg.Python != "python3" || cfg.ListenAddr != "127.0.0.1:9000" || cfg.TickRate != 1 {
		t.Fatalf("overrides lost: %#v", cfg)
	}
	if cfg.Module != DefaultModule || cfg.DebuggerAddr != DefaultDebuggerAddr || cfg.RPCTimeout != DefaultRPCTimeout {
		t.Fatalf("defaults not applied: %#v", cfg)
	}
}

func TestRunFailsWhenListenFails(t *testing.T) {
	if err := Run(Config{Target: "prog.py", ListenAddr: "256.0.0.1:1"}); err == nil {
		t.Fatalf("expected bind failure")
	}
}
