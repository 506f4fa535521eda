package monitor

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// Display limits and layouts.
const (
	DefaultProcessNameMax = 30
	DefaultGPUNameMax     = 20
	ClockFormat           = "2006. 01. 02. 15:04:05"

	StatusActiveText   = "모니터링 중"
	StatusInactiveText = "대기 중"
)

// Renderer projects history and snapshots into widget updates. It holds no
// state between calls, so the same input always yields the same output.
type Renderer struct {
	ProcessNameMax int
	GPUNameMax     int
}

// NewRenderer creates a renderer with the given truncation limits.
// Non-positive limits use the defaults.
func NewRenderer(processNameMax, gpuNameMax int) *Renderer {
	if processNameMax <= 0 {
		processNameMax = DefaultProcessNameMax
	}
	if gpuNameMax <= 0 {
		gpuNameMax = DefaultGPUNameMax
	}
	return &Renderer{ProcessNameMax: processNameMax, GPUNameMax: gpuNameMax}
}

// RenderMetrics returns updates for every metrics widget that snap has data
// for. Widgets whose optional source is absent get no update so they keep
// their previous content. Charts are always rendered from view.
func (r *Renderer) RenderMetrics(view HistoryView, snap *metrics.Snapshot) []WidgetUpdate {
	var updates []WidgetUpdate
	if snap != nil {
		if snap.CPU != nil {
			updates = append(updates, r.cpuTile(snap.CPU))
		}
		if temp, ok := snap.CPUTemperature(); ok {
			updates = append(updates, WidgetUpdate{Widget: WidgetCPUTemp, Text: formatCelsius(temp)})
		}
		if snap.Memory != nil {
			updates = append(updates, r.memoryTile(snap.Memory))
		}
		if gpu := snap.PrimaryGPU(); gpu != nil {
			updates = append(updates, r.gpuTile(gpu))
		}
		if snap.Network != nil {
			updates = append(updates, r.networkTile(snap.Network))
		}
	}

	updates = append(updates, r.charts(view)...)

	if snap == nil {
		return updates
	}
	if snap.Disk != nil {
		updates = append(updates, r.partitions(snap.Disk.Partitions))
	}
	if snap.Processes != nil {
		updates = append(updates, r.processes(snap.Processes))
	}
	if snap.System != nil {
		updates = append(updates,
			r.systemInfo(snap.System),
			WidgetUpdate{Widget: WidgetHostname, Text: snap.System.Hostname})
	}
	return updates
}

// RenderStatus projects the session status. An inactive session has no elapsed text.
func (r *Renderer) RenderStatus(status *metrics.SessionStatus) WidgetUpdate {
	view := &StatusView{Text: StatusInactiveText}
	if status != nil {
		view.DataPoints = status.DataPoints
		if status.Active {
			view.Active = true
			view.Text = StatusActiveText
			view.Elapsed = metrics.FormatTime(status.ElapsedSeconds) + " / " + metrics.FormatTime(status.TargetSeconds)
		}
	}
	return WidgetUpdate{Widget: WidgetStatus, Status: view}
}

// RenderClock projects the local wall clock.
func (r *Renderer) RenderClock(now time.Time) WidgetUpdate {
	return WidgetUpdate{Widget: WidgetClock, Text: now.Format(ClockFormat)}
}

func (r *Renderer) cpuTile(cpu *metrics.CPU) WidgetUpdate {
	details := []string{
		fmt.Sprintf("%d MHz", roundInt(cpu.FrequencyCurrent)),
		fmt.Sprintf("%dC / %dT", cpu.CoresPhysical, cpu.CoresLogical),
	}
	if len(cpu.PerCore) > 0 {
		busiest := 0.0
		for _, v := range cpu.PerCore {
			busiest = math.Max(busiest, v)
		}
		details = append(details, fmt.Sprintf("busiest core %s%%", metrics.FormatPercent(busiest)))
	}
	return WidgetUpdate{Widget: WidgetCPU, Tile: &Tile{
		Value:   metrics.FormatPercent(cpu.UsagePercent),
		Unit:    "%",
		Percent: metrics.ClampPercent(cpu.UsagePercent),
		Details: details,
	}}
}

func (r *Renderer) memoryTile(mem *metrics.Memory) WidgetUpdate {
	details := []string{
		"used " + metrics.FormatBytes(mem.Used),
		"total " + metrics.FormatBytes(mem.Total),
		"available " + metrics.FormatBytes(mem.Available),
	}
	if mem.SwapTotal > 0 {
		details = append(details, fmt.Sprintf("swap %s / %s",
			metrics.FormatBytes(mem.SwapUsed), metrics.FormatBytes(mem.SwapTotal)))
	}
	return WidgetUpdate{Widget: WidgetMemory, Tile: &Tile{
		Value:   metrics.FormatPercent(mem.Percent),
		Unit:    "%",
		Percent: metrics.ClampPercent(mem.Percent),
		Details: details,
	}}
}

func (r *Renderer) gpuTile(gpu *metrics.GPUDevice) WidgetUpdate {
	// Drivers without a readable sensor report 0.
	temp := "N/A"
	if gpu.Temperature != nil && *gpu.Temperature > 0 {
		temp = formatCelsius(*gpu.Temperature)
	}
	return WidgetUpdate{Widget: WidgetGPU, Tile: &Tile{
		Title:   metrics.Truncate(gpu.Name, r.GPUNameMax),
		Value:   metrics.FormatPercent(gpu.Load),
		Unit:    "%",
		Percent: metrics.ClampPercent(gpu.Load),
		Details: []string{
			fmt.Sprintf("%d / %d MB", roundInt(gpu.MemoryUsed), roundInt(gpu.MemoryTotal)),
			temp,
		},
	}}
}

func (r *Renderer) networkTile(net *metrics.Network) WidgetUpdate {
	return WidgetUpdate{Widget: WidgetNetwork, Tile: &Tile{
		Value: metrics.FormatRate(net.SpeedRecv),
		Unit:  "MB/s",
		Details: []string{
			"↑ " + metrics.FormatRate(net.SpeedSent) + " MB/s",
			"↓ " + metrics.FormatRate(net.SpeedRecv) + " MB/s",
			"sent " + metrics.FormatBytes(net.BytesSent),
			"recv " + metrics.FormatBytes(net.BytesRecv),
		},
	}}
}

func (r *Renderer) charts(view HistoryView) []WidgetUpdate {
	chart := func(id WidgetID, series ...Series) WidgetUpdate {
		return WidgetUpdate{Widget: id, Chart: &Chart{Labels: view.Labels, Series: series}}
	}
	return []WidgetUpdate{
		chart(WidgetCPUChart, Series{Name: "CPU %", Values: view.CPU}),
		chart(WidgetMemoryChart, Series{Name: "Memory %", Values: view.Memory}),
		chart(WidgetNetworkChart,
			Series{Name: "Sent MB/s", Values: view.NetSent},
			Series{Name: "Recv MB/s", Values: view.NetRecv}),
		chart(WidgetDiskChart,
			Series{Name: "Read MB/s", Values: view.DiskRead},
			Series{Name: "Write MB/s", Values: view.DiskWrite}),
	}
}

func (r *Renderer) partitions(parts []metrics.Partition) WidgetUpdate {
	rows := make([]PartitionRow, 0, len(parts))
	for _, p := range parts {
		rows = append(rows, PartitionRow{
			Mountpoint: p.Mountpoint,
			Usage:      metrics.FormatBytes(p.Used) + " / " + metrics.FormatBytes(p.Total),
			Percent:    metrics.ClampPercent(p.Percent),
		})
	}
	return WidgetUpdate{Widget: WidgetPartitions, Partitions: rows}
}

func (r *Renderer) processes(procs []metrics.Process) WidgetUpdate {
	rows := make([]ProcessRow, 0, len(procs))
	for _, p := range procs {
		rows = append(rows, ProcessRow{
			PID:    p.PID,
			Name:   metrics.Truncate(p.Name, r.ProcessNameMax),
			CPU:    metrics.FormatPercent(p.CPUPercent) + "%",
			Memory: metrics.FormatPercent(p.MemoryPercent) + "%",
		})
	}
	return WidgetUpdate{Widget: WidgetProcesses, Processes: rows}
}

func (r *Renderer) systemInfo(sys *metrics.System) WidgetUpdate {
	processor := sys.Processor
	if processor == "" {
		processor = "N/A"
	}
	return WidgetUpdate{Widget: WidgetSystem, Info: []InfoRow{
		{Label: "OS", Value: sys.Platform + " " + sys.PlatformRelease},
		{Label: "Processor", Value: processor},
		{Label: "Boot time", Value: sys.BootTime},
		{Label: "Uptime", Value: metrics.FormatUptime(sys.UptimeSeconds)},
		{Label: "Architecture", Value: sys.Architecture},
		{Label: "Processes", Value: humanize.Comma(int64(sys.ProcessCount))},
	}}
}

func formatCelsius(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64) + "°C"
}

func roundInt(v float64) int64 {
	return int64(math.Round(v))
}
