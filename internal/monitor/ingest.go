package monitor

import (
	"time"

	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// LabelFormat is the chart label layout for each ingested sample.
const LabelFormat = "15:04:05"

// DiskRateMode selects how disk read/write rates are derived.
type DiskRateMode string

const (
	// DiskRatesDelta computes MB/s from the cumulative disk.io counters.
	DiskRatesDelta DiskRateMode = "delta"
	// DiskRatesZero always charts zero disk throughput.
	DiskRatesZero DiskRateMode = "zero"
)

const bytesPerMB = 1024 * 1024

// DisplayState is the outcome of one successful ingestion: the snapshot the
// renderer should project and the point that was appended for it.
type DisplayState struct {
	Snapshot *metrics.Snapshot
	Point    Point
	At       time.Time
}

// diskSample is the previous cumulative disk.io reading.
type diskSample struct {
	read  float64
	write float64
	at    time.Time
}

// Ingestor validates snapshots and turns them into History samples.
// It remembers the last disk counters so it can derive rates; it is not safe for
// concurrent use and is only driven from the update loop.
type Ingestor struct {
	mode DiskRateMode
	now  func() time.Time
	prev *diskSample
}

// NewIngestor creates an ingestor. An unknown mode falls back to DiskRatesDelta.
func NewIngestor(mode DiskRateMode) *Ingestor {
	if mode != DiskRatesZero {
		mode = DiskRatesDelta
	}
	return &Ingestor{mode: mode, now: time.Now}
}

// SetClock replaces the wall clock used for labels and rate intervals.
func (in *Ingestor) SetClock(now func() time.Time) {
	in.now = now
}

// Ingest validates snap and appends exactly one point to h. On error h is untouched.
func (in *Ingestor) Ingest(h *History, snap *metrics.Snapshot) (DisplayState, error) {
	if err := metrics.Validate(snap); err != nil {
		return DisplayState{}, err
	}

	now := in.now()
	read, write := in.diskRates(snap.Disk.IO, now)

	p := Point{
		Label:     now.Format(LabelFormat),
		CPU:       snap.CPU.UsagePercent,
		Memory:    snap.Memory.Percent,
		NetSent:   snap.Network.SpeedSent,
		NetRecv:   snap.Network.SpeedRecv,
		DiskRead:  read,
		DiskWrite: write,
	}
	h.Append(p)

	return DisplayState{Snapshot: snap, Point: p, At: now}, nil
}

// diskRates returns read/write MB/s since the previous ingestion. The first
// sample, a missing io record and a counter reset all yield zero.
func (in *Ingestor) diskRates(io *metrics.DiskIO, now time.Time) (read, write float64) {
	if in.mode == DiskRatesZero {
		return 0, 0
	}
	if io == nil {
		in.prev = nil
		return 0, 0
	}

	prev := in.prev
	in.prev = &diskSample{read: io.ReadBytes, write: io.WriteBytes, at: now}
	if prev == nil {
		return 0, 0
	}

	elapsed := now.Sub(prev.at).Seconds()
	if elapsed <= 0 || io.ReadBytes < prev.read || io.WriteBytes < prev.write {
		return 0, 0
	}

	read = (io.ReadBytes - prev.read) / elapsed / bytesPerMB
	write = (io.WriteBytes - prev.write) / elapsed / bytesPerMB
	return read, write
}
