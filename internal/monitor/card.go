package monitor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
)

const waitingText = "waiting for data"

// renderTileCard renders a summary tile as a titled section with a headline,
// progress bar and detail lines.
func renderTileCard(title string, tile *Tile, extra string, width int) string {
	inner := width - 4
	if tile == nil {
		return Section(title, "", []string{MutedStyle.Render(waitingText)}, width)
	}

	value := tile.Value
	if tile.Unit != "" {
		value += " " + tile.Unit
	}

	var lines []string
	if tile.Title != "" {
		lines = append(lines, LabelStyle.Render(tile.Title))
	}
	if tile.Unit == "%" {
		lines = append(lines, ProgressBar(inner, tile.Percent))
	}
	for _, d := range tile.Details {
		lines = append(lines, ValueStyle.Render(d))
	}
	if extra != "" {
		lines = append(lines, extra)
	}
	return Section(title, value, lines, width)
}

// renderChartCard renders a chart widget with a braille plot per series.
func renderChartCard(title string, chart *Chart, scale func(*Chart) Scale, width, height int) string {
	inner := width - 4
	if chart == nil || len(chart.Labels) == 0 {
		return Section(title, "", []string{MutedStyle.Render(waitingText)}, width)
	}

	s := scale(chart)
	colors := []lipgloss.Color{ColorGraph, ColorGraphAlt}

	var lines, legend []string
	for i, series := range chart.Series {
		color := colors[i%len(colors)]
		plot := RenderBrailleChart(series.Values, inner, height, s, color)
		lines = append(lines, strings.Split(plot, "\n")...)

		latest := 0.0
		if n := len(series.Values); n > 0 {
			latest = series.Values[n-1]
		}
		legend = append(legend, lipgloss.NewStyle().Foreground(color).Render(
			fmt.Sprintf("%s %s", series.Name, strconv.FormatFloat(latest, 'f', 2, 64))))
	}

	first, last := chart.Labels[0], chart.Labels[len(chart.Labels)-1]
	axis := first + strings.Repeat(" ", max(inner-len(first)-len(last), 1)) + last
	lines = append(lines, MutedStyle.Render(axis), strings.Join(legend, "  "))

	return Section(title, fmt.Sprintf("%d pts", len(chart.Labels)), lines, width)
}

func percentScale(*Chart) Scale { return PercentScale }

func rateScale(c *Chart) Scale {
	series := make([][]float64, 0, len(c.Series))
	for _, s := range c.Series {
		series = append(series, s.Values)
	}
	return RateScale(1, series...)
}

// renderPartitions renders the disk list, one mountpoint per line with a bar.
func renderPartitions(rows []PartitionRow, width int) string {
	inner := width - 4
	if rows == nil {
		return Section("Disk", "", []string{MutedStyle.Render(waitingText)}, width)
	}
	if len(rows) == 0 {
		return Section("Disk", "0", []string{MutedStyle.Render("no partitions")}, width)
	}

	var lines []string
	for _, r := range rows {
		head := LabelStyle.Render(r.Mountpoint)
		usage := ValueStyle.Render(r.Usage)
		gap := max(inner-lipgloss.Width(head)-lipgloss.Width(usage), 1)
		lines = append(lines, head+strings.Repeat(" ", gap)+usage, ThinProgressBar(inner, r.Percent))
	}
	return Section("Disk", strconv.Itoa(len(rows)), lines, width)
}

// renderProcessTable renders the process rows with a bubbles table.
func renderProcessTable(rows []ProcessRow, width int) string {
	inner := width - 4
	nameWidth := max(inner-8-8-8-4, 10)
	cols := []table.Column{
		{Title: "PID", Width: 8},
		{Title: "Name", Width: nameWidth},
		{Title: "CPU", Width: 8},
		{Title: "Mem", Width: 8},
	}

	tableRows := make([]table.Row, 0, len(rows))
	for _, r := range rows {
		tableRows = append(tableRows, table.Row{strconv.Itoa(r.PID), r.Name, r.CPU, r.Memory})
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(tableRows),
		table.WithFocused(false),
		table.WithHeight(len(tableRows)+1),
	)
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorBorder).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorAccent)
	s.Cell = s.Cell.Foreground(ColorTextPrimary)
	s.Selected = s.Cell
	t.SetStyles(s)

	lines := strings.Split(t.View(), "\n")
	if len(rows) == 0 {
		lines = append(lines, MutedStyle.Render("no processes"))
	}
	return Section("Processes", strconv.Itoa(len(rows)), lines, width)
}

// renderSystemInfo renders the label/value pairs of the system panel.
func renderSystemInfo(rows []InfoRow, width int) string {
	if rows == nil {
		return Section("System", "", []string{MutedStyle.Render(waitingText)}, width)
	}
	labelWidth := 0
	for _, r := range rows {
		labelWidth = max(labelWidth, lipgloss.Width(r.Label))
	}
	lines := make([]string, 0, len(rows))
	for _, r := range rows {
		label := LabelStyle.Width(labelWidth + 2).Render(r.Label)
		lines = append(lines, label+ValueStyle.Render(r.Value))
	}
	return Section("System", "", lines, width)
}
