package ui

import "github.com/charmbracelet/lipgloss"

// Semantic colors, as ANSI codes so they follow the terminal's theme.
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
	ColorMuted   lipgloss.Color = "8" // Gray (bright black)
)

// Status symbols.
const (
	SymbolSuccess = "✓"
	SymbolFail    = "✗"
	SymbolWarning = "!"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(ColorSuccess)
	failStyle    = lipgloss.NewStyle().Foreground(ColorError)
	warningStyle = lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
)

// Success renders "✓ msg".
func Success(msg string) string {
	return successStyle.Render(SymbolSuccess) + " " + msg
}

// Fail renders "✗ msg".
func Fail(msg string) string {
	return failStyle.Render(SymbolFail) + " " + msg
}

// Warning renders "! msg".
func Warning(msg string) string {
	return warningStyle.Render(SymbolWarning) + " " + msg
}

// Muted renders secondary text such as timings.
func Muted(msg string) string {
	return mutedStyle.Render(msg)
}
