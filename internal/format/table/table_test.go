package table

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestFormatAlignsColumns(t *testing.T) {
	rows := [][]string{
		{"x", "int", "1"},
		{"name", "str", "'lazy'"},
	}
	got := Format(rows, []Alignment{AlignLeft, AlignLeft, AlignLeft})
	want := []string{
		"x     int  1",
		"name  str  'lazy'",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatRaggedAndRightAligned(t *testing.T) {
	rows := [][]string{
		{"1", "main"},
		{"12", "helper", "(global)"},
	}
	got := Format(rows, []Alignment{AlignRight})
	want := []string{
		" 1  main",
		"12  helper  (global)",
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("row %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestFormatIgnoresStyling(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Render("ab")
	got := Format([][]string{{styled, "x"}, {"abcd", "y"}}, nil)
	if got[0] != styled+"    x" {
		t.Fatalf("styled cell padded by byte length: %q", got[0])
	}
}

func TestFit(t *testing.T) {
	got := Fit([]string{"short", "much longer line"}, 8, "…")
	if got[0] != "short" {
		t.Fatalf("expected short line untouched, got %q", got[0])
	}
	if got[1] != "much lo…" {
		t.Fatalf("expected truncation, got %q", got[1])
	}
	if empty := Fit([]string{"abc"}, 0, ""); empty[0] != "" {
		t.Fatalf("expected empty at zero width, got %q", empty[0])
	}
}

func TestFormatEmpty(t *testing.T) {
	if Format(nil, nil) != nil {
		t.Fatalf("expected nil for no rows")
	}
}
