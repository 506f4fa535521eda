// Package metrics defines the wire types served by the telemetry endpoint and
// the pure formatters used to display them.
package metrics

// Snapshot is one point-in-time metrics payload from GET /api/data.
// Sub-records are pointers so a missing field can be told apart from a zero value.
type Snapshot struct {
	Timestamp   string       `json:"timestamp,omitempty"`
	CPU         *CPU         `json:"cpu" validate:"required"`
	Memory      *Memory      `json:"memory" validate:"required"`
	Temperature *Temperature `json:"temperature,omitempty"`
	GPU         *GPU         `json:"gpu,omitempty"`
	Network     *Network     `json:"network" validate:"required"`
	Disk        *Disk        `json:"disk" validate:"required"`
	Processes   []Process    `json:"processes" validate:"required"`
	System      *System      `json:"system" validate:"required"`
}

// CPU contains CPU usage information.
type CPU struct {
	UsagePercent     float64   `json:"usage_percent"`
	PerCore          []float64 `json:"per_core,omitempty"`
	FrequencyCurrent float64   `json:"frequency_current"`
	FrequencyMax     float64   `json:"frequency_max,omitempty"`
	CoresPhysical    int       `json:"cores_physical"`
	CoresLogical     int       `json:"cores_logical"`
}

// Memory contains RAM and swap usage. Byte counts are float64 because the
// producer doesn't promise integer encoding.
type Memory struct {
	Percent     float64 `json:"percent"`
	Used        float64 `json:"used"`
	Total       float64 `json:"total"`
	Available   float64 `json:"available"`
	SwapTotal   float64 `json:"swap_total,omitempty"`
	SwapUsed    float64 `json:"swap_used,omitempty"`
	SwapPercent float64 `json:"swap_percent,omitempty"`
}

// Temperature groups the optional sensor readings.
type Temperature struct {
	CPU *SensorReading `json:"cpu,omitempty"`
}

// SensorReading is a single temperature sensor in degrees Celsius.
type SensorReading struct {
	Available   bool     `json:"available"`
	Temperature *float64 `json:"temperature"`
}

// GPU describes the GPUs the host reported, if any.
type GPU struct {
	Available bool        `json:"available"`
	GPUs      []GPUDevice `json:"gpus"`
	Error     string      `json:"error,omitempty"`
}

// GPUDevice is a single GPU. Memory figures are in MB.
type GPUDevice struct {
	ID            int      `json:"id"`
	Name          string   `json:"name"`
	Load          float64  `json:"load"`
	MemoryUsed    float64  `json:"memory_used"`
	MemoryTotal   float64  `json:"memory_total"`
	MemoryPercent float64  `json:"memory_percent,omitempty"`
	Temperature   *float64 `json:"temperature,omitempty"`
}

// Network carries throughput (MB/s) and cumulative counters.
type Network struct {
	SpeedSent   float64 `json:"speed_sent"`
	SpeedRecv   float64 `json:"speed_recv"`
	BytesSent   float64 `json:"bytes_sent"`
	BytesRecv   float64 `json:"bytes_recv"`
	PacketsSent float64 `json:"packets_sent,omitempty"`
	PacketsRecv float64 `json:"packets_recv,omitempty"`
}

// Disk carries per-partition usage and optional cumulative I/O counters.
type Disk struct {
	Partitions []Partition `json:"partitions"`
	IO         *DiskIO     `json:"io,omitempty"`
}

// Partition is a mounted filesystem.
type Partition struct {
	Device     string  `json:"device,omitempty"`
	Mountpoint string  `json:"mountpoint"`
	Fstype     string  `json:"fstype,omitempty"`
	Used       float64 `json:"used"`
	Total      float64 `json:"total"`
	Free       float64 `json:"free,omitempty"`
	Percent    float64 `json:"percent"`
}

// DiskIO holds cumulative counters since boot.
type DiskIO struct {
	ReadBytes  float64 `json:"read_bytes"`
	WriteBytes float64 `json:"write_bytes"`
	ReadCount  float64 `json:"read_count,omitempty"`
	WriteCount float64 `json:"write_count,omitempty"`
}

// Process is one row of the top-processes list.
type Process struct {
	PID           int     `json:"pid"`
	Name          string  `json:"name"`
	CPUPercent    float64 `json:"cpu_percent"`
	MemoryPercent float64 `json:"memory_percent"`
	Status        string  `json:"status,omitempty"`
}

// System contains general host facts.
type System struct {
	Hostname        string  `json:"hostname"`
	Platform        string  `json:"platform"`
	PlatformRelease string  `json:"platform_release"`
	PlatformVersion string  `json:"platform_version,omitempty"`
	Processor       string  `json:"processor,omitempty"`
	BootTime        string  `json:"boot_time"`
	UptimeSeconds   float64 `json:"uptime_seconds"`
	Architecture    string  `json:"architecture"`
	ProcessCount    int     `json:"process_count"`
}

// SessionStatus is the payload of GET /api/status.
type SessionStatus struct {
	Active         bool    `json:"active"`
	ElapsedSeconds float64 `json:"elapsed_seconds"`
	TargetSeconds  float64 `json:"target_seconds"`
	DataPoints     int     `json:"data_points,omitempty"`
}

// PrimaryGPU returns the first reported GPU, or nil when none is usable.
func (s *Snapshot) PrimaryGPU() *GPUDevice {
	if s == nil || s.GPU == nil || !s.GPU.Available || len(s.GPU.GPUs) == 0 {
		return nil
	}
	return &s.GPU.GPUs[0]
}

// CPUTemperature returns the CPU temperature when the sensor is available.
func (s *Snapshot) CPUTemperature() (float64, bool) {
	if s == nil || s.Temperature == nil || s.Temperature.CPU == nil {
		return 0, false
	}
	reading := s.Temperature.CPU
	if !reading.Available || reading.Temperature == nil {
		return 0, false
	}
	return *reading.Temperature, true
}
