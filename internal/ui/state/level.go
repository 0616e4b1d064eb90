// Package state holds per-panel view state for the UI: list cursors,
// viewport offsets and the variable filter.
package state

// Row is one selectable entry in a list panel. Label is matched by the
// filter; Cells are rendered as table columns.
type Row struct {
	ID    string
	Label string
	Cells []string
}

// List tracks a scrollable, filterable set of rows.
type List struct {
	Items          []Row
	Full           []Row
	Filter         string
	FilterCursor   int
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List holding rows.
func NewList(rows []Row) *List {
	l := &List{LastCursor: -1}
	l.SetRows(rows)
	return l
}

// SetRows replaces the rows, re-applying the current filter. The cursor
// stays on the row with the same ID when it survives.
func (l *List) SetRows(rows []Row) {
	var keep string
	if row, ok := l.Current(); ok {
		keep = row.ID
	}
	l.Full = cloneRows(rows)
	l.applyFilter()
	if keep == "" {
		return
	}
	if idx := l.IndexOf(keep); idx >= 0 {
		l.Cursor = idx
	}
}

// Current returns the row under the cursor.
func (l *List) Current() (Row, bool) {
	if l == nil || l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Row{}, false
	}
	return l.Items[l.Cursor], true
}

// IndexOf returns the visible index of the row with the given ID.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, row := range l.Items {
		if row.ID == id {
			return i
		}
	}
	return -1
}

// Visible returns the rows inside the viewport.
func (l *List) Visible(maxVisible int) []Row {
	l.EnsureCursorVisible(maxVisible)
	if maxVisible <= 0 || len(l.Items) <= maxVisible {
		return l.Items
	}
	end := l.ViewportOffset + maxVisible
	if end > len(l.Items) {
		end = len(l.Items)
	}
	return l.Items[l.ViewportOffset:end]
}

func cloneRows(rows []Row) []Row {
	dup := make([]Row, len(rows))
	copy(dup, rows)
	return dup
}
