package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Panel         *lipgloss.Style
	FocusedPanel  *lipgloss.Style
	Title         *lipgloss.Style
	FocusedTitle  *lipgloss.Style
	Item          *lipgloss.Style
	SelectedItem  *lipgloss.Style
	LineNumber    *lipgloss.Style
	CurrentLine   *lipgloss.Style
	VariableName  *lipgloss.Style
	VariableType  *lipgloss.Style
	VariableValue *lipgloss.Style
	GlobalMarker  *lipgloss.Style
	Stdout        *lipgloss.Style
	Stderr        *lipgloss.Style
	Error         *lipgloss.Style
	Info          *lipgloss.Style
	Footer        *lipgloss.Style
	FilterPrompt  *lipgloss.Style
	Spinner       *lipgloss.Style
	ModeIdle      *lipgloss.Style
	ModeRunning   *lipgloss.Style
	ModeBreak     *lipgloss.Style
	ModeError     *lipgloss.Style
}

var defaultStyles = Styles{
	Panel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("238")),
	),
	FocusedPanel: ptr(
		lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("33")),
	),
	Title: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	FocusedTitle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true),
	),
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	SelectedItem: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("238")).Bold(true),
	),
	LineNumber: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	CurrentLine: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("220")),
	),
	VariableName: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("117")),
	),
	VariableType: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true),
	),
	VariableValue: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	GlobalMarker: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("172")),
	),
	Stdout: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
	),
	Stderr: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	Spinner: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
	),
	ModeIdle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("0")).Bold(true).Padding(0, 1),
	),
	ModeRunning: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("34")).Bold(true).Padding(0, 1),
	),
	ModeBreak: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("160")).Bold(true).Padding(0, 1),
	),
	ModeError: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("196")).Bold(true).Padding(0, 1),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
