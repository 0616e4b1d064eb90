package state

// MoveCursorUp moves the cursor one row up.
func (l *List) MoveCursorUp() bool { return l.MoveCursorBy(-1) }

// MoveCursorDown moves the cursor one row down.
func (l *List) MoveCursorDown() bool { return l.MoveCursorBy(1) }

// MoveCursorHome jumps to the first row.
func (l *List) MoveCursorHome() bool { return l.moveCursorTo(0) }

// MoveCursorEnd jumps to the last row.
func (l *List) MoveCursorEnd() bool { return l.moveCursorTo(len(l.Items) - 1) }

// MoveCursorPageUp moves the cursor up by one page of maxVisible rows.
func (l *List) MoveCursorPageUp(maxVisible int) bool {
	return l.MoveCursorBy(-l.page(maxVisible))
}

// MoveCursorPageDown moves the cursor down by one page of maxVisible rows.
func (l *List) MoveCursorPageDown(maxVisible int) bool {
	return l.MoveCursorBy(l.page(maxVisible))
}

// MoveCursorBy moves the cursor delta rows and clamps it to the list. It
// reports whether the cursor changed.
func (l *List) MoveCursorBy(delta int) bool {
	return l.moveCursorTo(max(l.Cursor, 0) + delta)
}

func (l *List) moveCursorTo(idx int) bool {
	old := l.Cursor
	l.Cursor = clamp(idx, 0, len(l.Items)-1)
	return len(l.Items) > 0 && l.Cursor != old
}

func (l *List) page(maxVisible int) int {
	if maxVisible <= 0 || maxVisible > len(l.Items) {
		return max(len(l.Items), 1)
	}
	return maxVisible
}

// EnsureCursorVisible scrolls the viewport so the cursor row is inside a
// window of maxVisible rows.
func (l *List) EnsureCursorVisible(maxVisible int) {
	l.Cursor = clamp(l.Cursor, 0, len(l.Items)-1)
	if maxVisible <= 0 || len(l.Items) == 0 {
		l.ViewportOffset = 0
		return
	}
	offset := clamp(l.ViewportOffset, l.Cursor-maxVisible+1, l.Cursor)
	l.ViewportOffset = clamp(offset, 0, max(len(l.Items)-maxVisible, 0))
}

// clamp bounds v to [lo, hi]; an empty range (hi < lo) yields lo.
func clamp(v, lo, hi int) int {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
