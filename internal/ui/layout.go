package ui

import "github.com/stefvonb/lazy-pdb/internal/state"

const (
	leftColumnPercent = 30
	statusRows        = 1
	// border top and bottom plus the title row
	panelChromeRows = 3
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// bodyHeight is the number of content rows inside the panel.
func (r rect) bodyHeight() int {
	if h := r.h - panelChromeRows; h > 0 {
		return h
	}
	return 0
}

// innerWidth is the width inside the border.
func (r rect) innerWidth() int {
	if w := r.w - 2; w > 0 {
		return w
	}
	return 0
}

// layout splits the terminal into call stack and code on top, variables and
// output below, and a status row at the bottom.
type layout struct {
	stack, code, vars, output rect
	statusY                   int
}

func computeLayout(width, height int) layout {
	avail := height - statusRows
	if avail < 0 {
		avail = 0
	}
	topH := avail / 2
	bottomH := avail - topH
	leftW := width * leftColumnPercent / 100
	rightW := width - leftW
	return layout{
		stack:   rect{x: 0, y: 0, w: leftW, h: topH},
		code:    rect{x: leftW, y: 0, w: rightW, h: topH},
		vars:    rect{x: 0, y: topH, w: leftW, h: bottomH},
		output:  rect{x: leftW, y: topH, w: rightW, h: bottomH},
		statusY: avail,
	}
}

func (l layout) rectFor(p state.Panel) rect {
	switch p {
	case state.Code:
		return l.code
	case state.Variables:
		return l.vars
	case state.Output:
		return l.output
	default:
		return l.stack
	}
}

func (l layout) panelAt(x, y int) (state.Panel, bool) {
	for _, p := range state.Panels() {
		if l.rectFor(p).contains(x, y) {
			return p, true
		}
	}
	return state.CallStack, false
}

func (m *Model) layout() layout {
	return computeLayout(m.width, m.height)
}

func (m *Model) resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	m.width, m.height = width, height
	out := m.layout().output
	m.output.Width = out.innerWidth()
	m.output.Height = out.bodyHeight()
	m.help.Width = width
	m.syncOutput(true)
}

func (m *Model) pageSize() int {
	if h := m.layout().rectFor(m.app.Panel).bodyHeight(); h > 1 {
		return h - 1
	}
	return 1
}
