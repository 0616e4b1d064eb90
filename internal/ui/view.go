package ui

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/reflow/truncate"

	"github.com/stefvonb/lazy-pdb/internal/source"
	"github.com/stefvonb/lazy-pdb/internal/state"
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	raw   bool // pre-styled; no wrapping
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	m.flushOutput()
	l := m.layout()
	top := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPanel(state.CallStack, l.stack, "call stack", m.stackLines(l.stack)),
		m.renderPanel(state.Code, l.code, m.codeTitle(), m.codeLines(l.code)),
	)
	bottom := lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderPanel(state.Variables, l.vars, m.variablesTitle(), m.variableLines(l.vars)),
		m.renderPanel(state.Output, l.output, "output", m.outputLines()),
	)
	return lipgloss.JoinVertical(lipgloss.Left, top, bottom, m.statusLine())
}

// renderPanel draws a bordered box of exactly r.w by r.h cells.
func (m *Model) renderPanel(p state.Panel, r rect, title string, body []styledLine) string {
	if r.w < 2 || r.h < 2 {
		return ""
	}
	boxStyle, titleStyle := styles.Panel, styles.Title
	if m.app.Panel == p {
		boxStyle, titleStyle = styles.FocusedPanel, styles.FocusedTitle
	}
	lines := make([]styledLine, 0, r.bodyHeight()+1)
	lines = append(lines, styledLine{text: title, style: titleStyle})
	lines = append(lines, limitHeight(body, r.bodyHeight(), r.innerWidth())...)
	content := renderLines(applyWidth(lines, r.innerWidth()))
	return boxStyle.Width(r.innerWidth()).Height(r.h - 2).MaxHeight(r.h).Render(content)
}

func (m *Model) stackLines(r rect) []styledLine {
	if len(m.stack.Items) == 0 {
		return []styledLine{{text: "(no frames)", style: styles.Info}}
	}
	formatted := formatRows(m.stack.Items)
	height := r.bodyHeight()
	start := source.Center(len(formatted), m.app.SelectedFrame, height)
	end := start + height
	if end > len(formatted) {
		end = len(formatted)
	}
	lines := make([]styledLine, 0, end-start)
	for idx := start; idx < end; idx++ {
		style := styles.Item
		if idx == m.app.SelectedFrame {
			style = styles.SelectedItem
		}
		lines = append(lines, styledLine{text: padRight(formatted[idx], r.innerWidth()), style: style})
	}
	return lines
}

func (m *Model) codeTitle() string {
	frame, ok := m.app.Selected()
	if !ok {
		return "code"
	}
	return fmt.Sprintf("code (%s:%d)", filepath.Base(frame.FileName), frame.LineNumber)
}

func (m *Model) codeLines(r rect) []styledLine {
	frame, ok := m.app.Selected()
	if !ok {
		return []styledLine{{text: "(no frame)", style: styles.Info}}
	}
	text, first, err := m.sources.Window(frame.FileName, int(frame.LineNumber), r.bodyHeight())
	if err != nil {
		return []styledLine{{text: source.Unreadable, style: styles.Error}}
	}
	last := first + len(text) - 1
	numWidth := len(fmt.Sprint(last))
	lines := make([]styledLine, 0, len(text))
	for i, line := range text {
		num := first + i
		style := styles.Item
		if num == int(frame.LineNumber) {
			style = styles.CurrentLine
		}
		body := fmt.Sprintf("%*d  %s", numWidth, num, strings.ReplaceAll(line, "\t", "    "))
		if num == int(frame.LineNumber) {
			body = padRight(body, r.innerWidth())
		}
		lines = append(lines, styledLine{text: body, style: style})
	}
	return lines
}

func (m *Model) variablesTitle() string {
	if m.filtering || m.vars.Filter != "" {
		return "variables /" + m.vars.Filter
	}
	return "variables"
}

func (m *Model) variableLines(r rect) []styledLine {
	if len(m.vars.Items) == 0 {
		if m.vars.Filter != "" {
			return []styledLine{{text: fmt.Sprintf("No matches for %q", m.vars.Filter), style: styles.Info}}
		}
		return []styledLine{{text: "(no variables)", style: styles.Info}}
	}
	formatted := formatRows(m.vars.Items)
	visible := m.vars.Visible(r.bodyHeight())
	focused := m.app.Panel == state.Variables
	lines := make([]styledLine, 0, len(visible))
	for i := range visible {
		idx := m.vars.ViewportOffset + i
		style := styles.VariableValue
		if focused && idx == m.vars.Cursor {
			style = styles.SelectedItem
		}
		lines = append(lines, styledLine{text: padRight(formatted[idx], r.innerWidth()), style: style})
	}
	return lines
}

func (m *Model) outputLines() []styledLine {
	if len(m.app.Output) == 0 {
		return []styledLine{{text: "(no output)", style: styles.Info}}
	}
	view := strings.Split(m.output.View(), "\n")
	lines := make([]styledLine, len(view))
	for i, line := range view {
		lines[i] = styledLine{text: line, raw: true}
	}
	return lines
}

func (m *Model) statusLine() string {
	badge := modeStyle(m.app.Mode).Render(m.app.Mode.String())
	parts := []string{badge}
	if p := m.app.Pending; p != nil {
		frames := spinner.MiniDot.Frames
		frame := frames[m.app.Ticks%len(frames)]
		parts = append(parts, styles.Spinner.Render(fmt.Sprintf("%s %s…", frame, p.Action.RequestedAction)))
	}
	switch {
	case m.app.Notice != "":
		parts = append(parts, styles.Info.Render(m.app.Notice))
	case m.app.Mode == state.Error && m.app.ErrorMessage != "":
		parts = append(parts, styles.Error.Render(m.app.ErrorMessage))
	}
	left := strings.Join(parts, " ")
	right := m.help.ShortHelpView(keys.ShortHelp())
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return ansi.Truncate(left, m.width, "…")
	}
	return left + strings.Repeat(" ", gap) + right
}

func modeStyle(mode state.Mode) *lipgloss.Style {
	switch mode {
	case state.RunningCode:
		return styles.ModeRunning
	case state.Breakpoint:
		return styles.ModeBreak
	case state.Error:
		return styles.ModeError
	default:
		return styles.ModeIdle
	}
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 {
		return nil
	}
	if len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText("…", width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText("…", width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if line.raw {
			if lipgloss.Width(text) > width {
				text = truncate.StringWithTail(text, uint(width-1), "…")
			}
		} else {
			text = truncateText(text, width)
		}
		result[i] = styledLine{text: text, style: line.style, raw: line.raw}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if !line.raw && line.style != nil {
			out[i] = line.style.Render(line.text)
			continue
		}
		out[i] = line.text
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	if ansi.StringWidth(text) <= width {
		return text
	}
	if width == 1 {
		return ansi.Truncate(text, 1, "")
	}
	return ansi.Truncate(text, width, "…")
}

func padRight(text string, width int) string {
	if pad := width - ansi.StringWidth(text); pad > 0 {
		return text + strings.Repeat(" ", pad)
	}
	return text
}
