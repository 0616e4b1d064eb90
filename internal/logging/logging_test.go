package logging

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestTraceRespectsToggle(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))
	defer SetTraceEnabled(false)

	SetTraceEnabled(false)
	Trace("push.snapshot", map[string]interface{}{"frames": 2})
	if buf.Len() != 0 {
		t.Fatalf("expected no output with tracing disabled, got %q", buf.String())
	}

	SetTraceEnabled(true)
	Trace("push.snapshot", map[string]interface{}{"frames": 2})
	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("trace entry is not JSON: %v (%q)", err, buf.String())
	}
	if entry["event"] != "push.snapshot" {
		t.Fatalf("expected event push.snapshot, got %v", entry["event"])
	}
}

func TestErrorWritesEntry(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	defer SetOutput(new(bytes.Buffer))

	Error(nil)
	if buf.Len() != 0 {
		t.Fatalf("nil error should not be logged")
	}
	Error(errors.New("connection refused"))
	if !strings.Contains(buf.String(), "connection refused") {
		t.Fatalf("expected error text in log, got %q", buf.String())
	}
}

func TestConfigureCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "debug.log")
	Configure(path)
	defer Close()

	if Path() != path {
		t.Fatalf("expected log path %q, got %q", path, Path())
	}
	Error(errors.New("written to file"))
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("expected entry in log file, got %q", string(data))
	}
}
