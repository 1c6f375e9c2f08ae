package setup

import "github.com/charmbracelet/lipgloss"

var (
	accentColor    = lipgloss.Color("39")  // Blue
	successColor   = lipgloss.Color("35")  // Green
	dimColor       = lipgloss.Color("241") // Gray
	highlightColor = lipgloss.Color("212") // Light pink

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(successColor)

	DimStyle = lipgloss.NewStyle().
			Foreground(dimColor)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(highlightColor).
			Bold(true)

	NormalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	CursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	HelpStyle = lipgloss.NewStyle().
			Foreground(dimColor)
)
