package state

// Panel identifies one of the four UI panels.
type Panel int

const (
	CallStack Panel = iota
	Code
	Variables
	Output
)

var panelOrder = []Panel{CallStack, Code, Variables, Output}

// Panels returns the fixed focus order.
func Panels() []Panel {
	return append([]Panel(nil), panelOrder...)
}

func (p Panel) String() string {
	switch p {
	case Code:
		return "code"
	case Variables:
		return "variables"
	case Output:
		return "output"
	default:
		return "call stack"
	}
}

func (p Panel) index() int {
	for i, candidate := range panelOrder {
		if candidate == p {
			return i
		}
	}
	return 0
}

// Next returns the panel after p, wrapping.
func (p Panel) Next() Panel {
	return panelOrder[(p.index()+1)%len(panelOrder)]
}

// Prev returns the panel before p, wrapping.
func (p Panel) Prev() Panel {
	return panelOrder[(p.index()+len(panelOrder)-1)%len(panelOrder)]
}

// NextPanel moves focus forward.
func (a *App) NextPanel() {
	a.Panel = a.Panel.Next()
}

// PrevPanel moves focus backward.
func (a *App) PrevPanel() {
	a.Panel = a.Panel.Prev()
}
