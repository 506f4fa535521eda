package monitor

import "encoding/json"

// WidgetID names one widget on the dashboard.
type WidgetID string

const (
	WidgetCPU          WidgetID = "cpu"
	WidgetCPUTemp      WidgetID = "cpu_temp"
	WidgetMemory       WidgetID = "memory"
	WidgetGPU          WidgetID = "gpu"
	WidgetNetwork      WidgetID = "network"
	WidgetCPUChart     WidgetID = "cpu_chart"
	WidgetMemoryChart  WidgetID = "memory_chart"
	WidgetNetworkChart WidgetID = "network_chart"
	WidgetDiskChart    WidgetID = "disk_chart"
	WidgetPartitions   WidgetID = "partitions"
	WidgetProcesses    WidgetID = "processes"
	WidgetSystem       WidgetID = "system"
	WidgetHostname     WidgetID = "hostname"
	WidgetStatus       WidgetID = "status"
	WidgetClock        WidgetID = "clock"
)

// MetricsWidgets lists the widgets owned by the metrics stream. The status and
// clock streams never write to any of them.
var MetricsWidgets = []WidgetID{
	WidgetCPU, WidgetCPUTemp, WidgetMemory, WidgetGPU, WidgetNetwork,
	WidgetCPUChart, WidgetMemoryChart, WidgetNetworkChart, WidgetDiskChart,
	WidgetPartitions, WidgetProcesses, WidgetSystem, WidgetHostname,
}

// WidgetUpdate is the new content for one widget. Exactly one payload field is
// set, matching the kind of widget named by Widget.
type WidgetUpdate struct {
	Widget     WidgetID       `json:"widget"`
	Tile       *Tile          `json:"tile,omitempty"`
	Chart      *Chart         `json:"chart,omitempty"`
	Partitions []PartitionRow `json:"partitions,omitempty"`
	Processes  []ProcessRow   `json:"processes,omitempty"`
	Info       []InfoRow      `json:"info,omitempty"`
	Status     *StatusView    `json:"status,omitempty"`
	Text       string         `json:"text,omitempty"`
}

// MarshalJSON always writes the row list of the partitions and processes
// widgets, as [] when empty, so an emptied table is explicit in the stream.
func (u WidgetUpdate) MarshalJSON() ([]byte, error) {
	type plain WidgetUpdate
	switch u.Widget {
	case WidgetPartitions:
		rows := u.Partitions
		if rows == nil {
			rows = []PartitionRow{}
		}
		return json.Marshal(struct {
			plain
			Partitions []PartitionRow `json:"partitions"`
		}{plain(u), rows})
	case WidgetProcesses:
		rows := u.Processes
		if rows == nil {
			rows = []ProcessRow{}
		}
		return json.Marshal(struct {
			plain
			Processes []ProcessRow `json:"processes"`
		}{plain(u), rows})
	}
	return json.Marshal(plain(u))
}

// Tile is a summary card: a headline value, a progress width and detail lines.
type Tile struct {
	Title   string   `json:"title,omitempty"`
	Value   string   `json:"value"`
	Unit    string   `json:"unit,omitempty"`
	Percent float64  `json:"percent"` // clamped to [0, 100]
	Details []string `json:"details,omitempty"`
}

// Chart is a line chart sharing one label axis across its series.
type Chart struct {
	Labels []string `json:"labels"`
	Series []Series `json:"series"`
}

// Series is one line of a chart.
type Series struct {
	Name   string    `json:"name"`
	Values []float64 `json:"values"`
}

// PartitionRow is one mounted filesystem in the disk list.
type PartitionRow struct {
	Mountpoint string  `json:"mountpoint"`
	Usage      string  `json:"usage"` // "used / total"
	Percent    float64 `json:"percent"`
}

// ProcessRow is one row of the process table.
type ProcessRow struct {
	PID    int    `json:"pid"`
	Name   string `json:"name"`
	CPU    string `json:"cpu"`
	Memory string `json:"memory"`
}

// InfoRow is a label/value pair in the system info panel.
type InfoRow struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// StatusView is the monitoring-session indicator.
type StatusView struct {
	Active     bool   `json:"active"`
	Text       string `json:"text"`
	Elapsed    string `json:"elapsed,omitempty"`
	DataPoints int    `json:"data_points,omitempty"`
}
