package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/sysdash/internal/errors"
)

const (
	defaultWidth = 100
	minCardWidth = 24
	chartHeight  = 3
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	if m.showHelp {
		return m.renderHelpOverlay()
	}

	width := m.width
	if width <= 0 {
		width = defaultWidth
	}

	sections := []string{
		m.renderHeader(width),
		m.renderTiles(width),
		m.renderCharts(width),
		m.renderLists(width),
		m.renderFooter(width),
	}
	return strings.Join(sections, "\n")
}

// renderHeader shows the host, session status, clock and stream health.
func (m Model) renderHeader(width int) string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("sysdash")
	host := m.board.Text(WidgetHostname)
	if host == "" {
		host = m.endpoint
	}

	parts := []string{title}
	if host != "" {
		parts = append(parts, ValueStyle.Render(host))
	}
	parts = append(parts, m.renderStatus())
	if clock := m.board.Text(WidgetClock); clock != "" {
		parts = append(parts, LabelStyle.Render(clock))
	}
	line := HeaderStyle.Render(strings.Join(parts, LabelStyle.Render(" | ")))

	var health []string
	for _, stream := range []Stream{StreamMetrics, StreamStatus} {
		h := m.scheduler.Health(stream)
		if h.Failures == 0 {
			continue
		}
		health = append(health, ErrorStyle.Render(fmt.Sprintf("%s: %d failed, last: %s",
			stream, h.Failures, errors.Summarize(h.LastError))))
	}
	if len(health) > 0 {
		line += "\n" + lipgloss.NewStyle().MaxWidth(width).Render(strings.Join(health, "  "))
	}
	return line
}

func (m Model) renderStatus() string {
	u, ok := m.board.Get(WidgetStatus)
	if !ok || u.Status == nil {
		return StatusInactiveStyle.Render(StatusInactiveGlyph + " " + StatusInactiveText)
	}
	s := u.Status
	if !s.Active {
		return StatusInactiveStyle.Render(StatusInactiveGlyph + " " + s.Text)
	}
	text := StatusActiveStyle.Render(StatusActiveGlyph+" "+s.Text) + " " + ValueStyle.Render(s.Elapsed)
	if s.DataPoints > 0 {
		text += MutedStyle.Render(fmt.Sprintf(" (%d pts)", s.DataPoints))
	}
	return text
}

// renderTiles lays out the CPU, memory, GPU and network cards in one row,
// wrapping to two rows on narrow terminals.
func (m Model) renderTiles(width int) string {
	perRow := 4
	if width < 4*(minCardWidth+1) {
		perRow = 2
	}
	cardWidth := max(width/perRow-1, minCardWidth)

	tempLine := ""
	if temp := m.board.Text(WidgetCPUTemp); temp != "" {
		tempLine = LabelStyle.Render("temp ") + ValueStyle.Render(temp)
	}

	cards := []string{
		renderTileCard("CPU", m.board.Tile(WidgetCPU), tempLine, cardWidth),
		renderTileCard("Memory", m.board.Tile(WidgetMemory), "", cardWidth),
		renderTileCard("GPU", m.board.Tile(WidgetGPU), "", cardWidth),
		renderTileCard("Network", m.board.Tile(WidgetNetwork), "", cardWidth),
	}
	return joinGrid(cards, perRow)
}

// renderCharts lays out the four trend charts two per row.
func (m Model) renderCharts(width int) string {
	cardWidth := max(width/2-1, minCardWidth)
	cards := []string{
		renderChartCard("CPU %", m.board.Chart(WidgetCPUChart), percentScale, cardWidth, chartHeight),
		renderChartCard("Memory %", m.board.Chart(WidgetMemoryChart), percentScale, cardWidth, chartHeight),
		renderChartCard("Network MB/s", m.board.Chart(WidgetNetworkChart), rateScale, cardWidth, chartHeight),
		renderChartCard("Disk MB/s", m.board.Chart(WidgetDiskChart), rateScale, cardWidth, chartHeight),
	}
	return joinGrid(cards, 2)
}

// renderLists shows partitions and system info beside the process table.
func (m Model) renderLists(width int) string {
	leftWidth := max(width/3, minCardWidth)
	rightWidth := max(width-leftWidth-1, minCardWidth)

	parts, seen := m.board.Get(WidgetPartitions)
	partRows := parts.Partitions
	if seen && partRows == nil {
		partRows = []PartitionRow{}
	}
	sys, _ := m.board.Get(WidgetSystem)
	procs, _ := m.board.Get(WidgetProcesses)

	left := lipgloss.JoinVertical(lipgloss.Left,
		renderPartitions(partRows, leftWidth),
		renderSystemInfo(sys.Info, leftWidth))
	right := renderProcessTable(procs.Processes, rightWidth)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderFooter renders the key hints and the latest report notice.
func (m Model) renderFooter(width int) string {
	hints := []string{"q quit", "r refresh", "p report", "s start/stop", "? help"}
	line := FooterStyle.Render(strings.Join(hints, " | "))

	switch notice, isErr := m.Notice(); {
	case m.busy.Busy():
		line += " " + m.spinner.View() + NoticeStyle.Render(" generating report...")
	case notice != "" && isErr:
		line += " " + ErrorStyle.Render(notice)
	case notice != "":
		line += " " + NoticeStyle.Render(notice)
	}

	if m.lastUpdate.IsZero() {
		return line
	}
	updated := MutedStyle.Render(fmt.Sprintf("updated %ds ago", m.SecondsSinceUpdate()))
	gap := max(width-lipgloss.Width(line)-lipgloss.Width(updated), 1)
	return line + strings.Repeat(" ", gap) + updated
}

// joinGrid arranges cards perRow at a time.
func joinGrid(cards []string, perRow int) string {
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		row := make([]string, 0, 2*(end-i))
		for j, c := range cards[i:end] {
			if j > 0 {
				row = append(row, " ")
			}
			row = append(row, c)
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, row...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}
