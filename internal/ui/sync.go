package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/format/table"
	"github.com/stefvonb/lazy-pdb/internal/state"
	uistate "github.com/stefvonb/lazy-pdb/internal/ui/state"
)

const globalMarker = "(global)"

// sync refreshes the view state derived from the application state.
func (m *Model) sync() {
	m.syncStack()
	m.syncVariables()
	m.syncOutput(false)
}

func (m *Model) syncStack() {
	frames := m.app.Snapshot.Stack
	rows := make([]uistate.Row, len(frames))
	for i, frame := range frames {
		rows[i] = uistate.Row{
			ID:    strconv.Itoa(i),
			Label: frame.FunctionName,
			Cells: []string{frame.FunctionName, fmt.Sprintf("%s:%d", frame.FileName, frame.LineNumber)},
		}
	}
	m.stack.SetRows(rows)
	m.stack.Cursor = m.app.SelectedFrame
}

// syncVariables lists the selected frame's locals followed by its globals.
func (m *Model) syncVariables() {
	frame, ok := m.app.Selected()
	if !ok {
		m.vars.SetRows(nil)
		return
	}
	rows := make([]uistate.Row, 0, len(frame.LocalVariables)+len(frame.GlobalVariables))
	for _, v := range frame.LocalVariables {
		rows = append(rows, uistate.Row{ID: "l:" + v.Name, Label: v.Name, Cells: []string{v.Name, v.DeclaredType, v.Value}})
	}
	for _, v := range frame.GlobalVariables {
		rows = append(rows, uistate.Row{ID: "g:" + v.Name, Label: v.Name, Cells: []string{v.Name, v.DeclaredType, v.Value, globalMarker}})
	}
	m.vars.SetRows(rows)
}

// syncOutput styles output lines that arrived since the last call, or all of
// them when force is set. The viewport is refreshed later by flushOutput.
func (m *Model) syncOutput(force bool) {
	if force || len(m.outputCache) > len(m.app.Output) {
		m.outputCache = m.outputCache[:0]
	}
	if len(m.outputCache) == len(m.app.Output) && !force {
		return
	}
	for _, line := range m.app.Output[len(m.outputCache):] {
		m.outputCache = append(m.outputCache, m.renderOutputLine(line))
	}
	m.outputDirty = true
}

func (m *Model) renderOutputLine(line state.OutputLine) string {
	text := strings.ReplaceAll(line.Text, "\t", "    ")
	if width := m.output.Width; width > 0 {
		text = truncateText(text, width)
	}
	style := styles.Stdout
	if line.Stream == event.Stderr {
		style = styles.Stderr
	}
	if style != nil {
		text = style.Render(text)
	}
	return text
}

// flushOutput loads the cached lines into the viewport. The view keeps
// following new output while scrolled to the bottom.
func (m *Model) flushOutput() {
	if !m.outputDirty {
		return
	}
	m.outputDirty = false
	follow := m.output.TotalLineCount() <= 1 || m.output.AtBottom()
	m.output.SetContent(strings.Join(m.outputCache, "\n"))
	if follow {
		m.output.GotoBottom()
	}
}

func formatRows(rows []uistate.Row) []string {
	cells := make([][]string, len(rows))
	for i, row := range rows {
		cells[i] = row.Cells
	}
	return table.Format(cells, nil)
}
