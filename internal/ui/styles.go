// Package ui holds the shared lipgloss styles for CLI output.
package ui

import "github.com/charmbracelet/lipgloss"

var (
	ColorSuccess = lipgloss.Color("35")  // Green
	ColorWarning = lipgloss.Color("214") // Gold
	ColorError   = lipgloss.Color("196") // Red
	ColorDim     = lipgloss.Color("241") // Gray
	ColorAccent  = lipgloss.Color("39")  // Blue
)

const (
	SymbolCheck = "✓"
	SymbolCross = "✗"
	SymbolArrow = "▸"
)

var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(ColorSuccess)

	WarningStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorError)

	DimStyle = lipgloss.NewStyle().
			Foreground(ColorDim)

	AddressStyle = lipgloss.NewStyle().
			Foreground(ColorAccent)

	AmountStyle = lipgloss.NewStyle().
			Foreground(ColorWarning).
			Bold(true)
)
