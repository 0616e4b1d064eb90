package source

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

func TestLinesReadsAndCaches(t *testing.T) {
	path := writeFile(t, t.TempDir(), "main.py", "a = 1\r\nb = 2\nprint(a + b)\n")
	cache := NewCache()

	lines, err := cache.Lines(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"a = 1", "b = 2", "print(a + b)"}
	if len(lines) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(lines))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	// A rewrite with a new mtime is picked up.
	writeFile(t, filepath.Dir(path), "main.py", "x = 1\n")
	later := time.Now().Add(time.Minute)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	lines, err = cache.Lines(path)
	if err != nil || len(lines) != 1 || lines[0] != "x = 1" {
		t.Fatalf("expected reload, got %v (%v)", lines, err)
	}
}

func TestLinesMissingFile(t *testing.T) {
	lines, err := NewCache().Lines(filepath.Join(t.TempDir(), "gone.py"))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if len(lines) != 1 || lines[0] != Unreadable {
		t.Fatalf("expected placeholder, got %v", lines)
	}
}

func TestCenter(t *testing.T) {
	cases := []struct {
		total, target, height, want int
	}{
		{total: 5, target: 4, height: 10, want: 0},
		{total: 100, target: 0, height: 10, want: 0},
		{total: 100, target: 50, height: 10, want: 45},
		{total: 100, target: 99, height: 10, want: 90},
		{total: 100, target: 50, height: 0, want: 0},
	}
	for _, tc := range cases {
		if got := Center(tc.total, tc.target, tc.height); got != tc.want {
			t.Fatalf("Center(%d, %d, %d) = %d, want %d", tc.total, tc.target, tc.height, got, tc.want)
		}
	}
}

func TestWindow(t *testing.T) {
	body := ""
	for i := 1; i <= 20; i++ {
		body += "line\n"
	}
	path := writeFile(t, t.TempDir(), "long.py", body)
	lines, first, err := NewCache().Window(path, 10, 4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(lines) != 4 || first != 8 {
		t.Fatalf("expected 4 lines from line 8, got %d from %d", len(lines), first)
	}
}
