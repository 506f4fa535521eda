package monitor

import (
	"time"

	"github.com/rileyhilliard/sysdash/internal/metrics"
)

func floatPtr(v float64) *float64 { return &v }

// sampleSnapshot returns a fully populated snapshot that passes validation.
func sampleSnapshot() *metrics.Snapshot {
	return &metrics.Snapshot{
		CPU: &metrics.CPU{
			UsagePercent:     23.4,
			PerCore:          []float64{20, 30},
			FrequencyCurrent: 3600.4,
			CoresPhysical:    4,
			CoresLogical:     8,
		},
		Memory: &metrics.Memory{
			Percent:   50,
			Used:      8589934592,
			Total:     17179869184,
			Available: 8589934592,
		},
		Temperature: &metrics.Temperature{
			CPU: &metrics.SensorReading{Available: true, Temperature: floatPtr(55.5)},
		},
		GPU: &metrics.GPU{
			Available: true,
			GPUs: []metrics.GPUDevice{{
				Name:        "NVIDIA GeForce RTX 4090 Founders Edition",
				Load:        42,
				MemoryUsed:  8123.5,
				MemoryTotal: 24564,
				Temperature: floatPtr(61),
			}},
		},
		Network: &metrics.Network{
			SpeedSent: 0.25,
			SpeedRecv: 1.5,
			BytesSent: 1073741824,
			BytesRecv: 2147483648,
		},
		Disk: &metrics.Disk{
			Partitions: []metrics.Partition{
				{Mountpoint: "/", Used: 250 << 30, Total: 500 << 30, Percent: 50},
				{Mountpoint: "/data", Used: 900 << 30, Total: 1000 << 30, Percent: 90},
			},
			IO: &metrics.DiskIO{ReadBytes: 100 << 20, WriteBytes: 50 << 20},
		},
		Processes: []metrics.Process{
			{PID: 1234, Name: "python3", CPUPercent: 12.5, MemoryPercent: 3.5},
			{PID: 99, Name: "a-really-long-process-name-that-goes-on-and-on", CPUPercent: 2, MemoryPercent: 0.5},
		},
		System: &metrics.System{
			Hostname:        "workstation",
			Platform:        "Linux",
			PlatformRelease: "6.8.0",
			Processor:       "x86_64",
			BootTime:        "2026-10-18 13:29:04",
			UptimeSeconds:   90061,
			Architecture:    "x86_64",
			ProcessCount:    1412,
		},
	}
}

// fakeClock hands out times starting at start, advancing step per call.
type fakeClock struct {
	next time.Time
	step time.Duration
}

func newFakeClock(start time.Time, step time.Duration) *fakeClock {
	return &fakeClock{next: start, step: step}
}

func (c *fakeClock) Now() time.Time {
	t := c.next
	c.next = c.next.Add(c.step)
	return t
}
