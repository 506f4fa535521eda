package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Palette.
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph    = lipgloss.Color("#00FFFF")
	ColorGraphAlt = lipgloss.Color("#BF40FF")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StatusActiveStyle = lipgloss.NewStyle().
				Foreground(ColorHealthy).
				Bold(true)

	StatusInactiveStyle = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(ColorCritical)

	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorWarning)
)

// Status indicator glyphs.
const (
	StatusActiveGlyph   = "◉"
	StatusInactiveGlyph = "◌"
)

// MetricColor returns green below 70%, amber below 90% and red above.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a foreground style colored by MetricColor.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a segmented bar of width cells filled to percent.
func ProgressBar(width int, percent float64) string {
	width = max(width, 1)
	percent = min(max(percent, 0), 100)
	filled := min(int(percent/100*float64(width)), width)
	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return MetricStyle(percent).Render(bar)
}

// ThinProgressBar renders a line-style bar using ━ and ─.
func ThinProgressBar(width int, percent float64) string {
	width = max(width, 1)
	percent = min(max(percent, 0), 100)
	filled := min(int(percent/100*float64(width)), width)
	bar := strings.Repeat("━", filled) + strings.Repeat("─", width-filled)
	return MetricStyle(percent).Render(bar)
}

// SectionHeader renders ╭─ Title ──── Value ╮ spanning width cells.
func SectionHeader(title, value string, width int) string {
	width = max(width, 10)
	fill := max(width-(3+lipgloss.Width(title)+1)-(1+lipgloss.Width(value)+2), 1)

	border := lipgloss.NewStyle().Foreground(ColorBorder)
	titleStyle := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return border.Render("╭─ ") +
		titleStyle.Render(title) +
		border.Render(" "+strings.Repeat("─", fill)+" ") +
		valueStyle.Render(value) +
		border.Render(" ╮")
}

// SectionFooter renders ╰────╯ spanning width cells.
func SectionFooter(width int) string {
	width = max(width, 2)
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine renders │ content │ padded to width cells. Content wider
// than the box is cut.
func SectionContentLine(content string, width int) string {
	width = max(width, 4)
	inner := width - 4
	if lipgloss.Width(content) > inner {
		content = lipgloss.NewStyle().MaxWidth(inner).Render(content)
	}
	pad := max(inner-lipgloss.Width(content), 0)
	border := lipgloss.NewStyle().Foreground(ColorBorder).Render("│")
	return border + " " + content + strings.Repeat(" ", pad) + " " + border
}

// Section wraps lines in a titled box.
func Section(title, value string, lines []string, width int) string {
	out := make([]string, 0, len(lines)+2)
	out = append(out, SectionHeader(title, value, width))
	for _, l := range lines {
		out = append(out, SectionContentLine(l, width))
	}
	out = append(out, SectionFooter(width))
	return strings.Join(out, "\n")
}
