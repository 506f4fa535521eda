package monitor

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rileyhilliard/sysdash/internal/metrics"
)

// DefaultInterval is the period shared by all three streams.
const DefaultInterval = time.Second

// Stream identifies one independent polling loop.
type Stream int

const (
	StreamMetrics Stream = iota
	StreamStatus
	StreamClock
	streamCount
)

// String returns the stream's name for logs and the header.
func (s Stream) String() string {
	switch s {
	case StreamMetrics:
		return "metrics"
	case StreamStatus:
		return "status"
	case StreamClock:
		return "clock"
	default:
		return "unknown"
	}
}

// Source fetches the endpoint's payloads. Implementations must be safe to
// call from several goroutines at once.
type Source interface {
	FetchSnapshot(ctx context.Context) (*metrics.Snapshot, error)
	FetchStatus(ctx context.Context) (*metrics.SessionStatus, error)
}

// tickMsg fires when a stream's timer elapses.
type tickMsg struct {
	stream Stream
	at     time.Time
}

// snapshotMsg carries a finished /api/data request.
type snapshotMsg struct {
	seq      uint64
	snapshot *metrics.Snapshot
	err      error
}

// statusMsg carries a finished /api/status request.
type statusMsg struct {
	seq    uint64
	status *metrics.SessionStatus
	err    error
}

// StreamHealth is the failure bookkeeping for one stream.
type StreamHealth struct {
	Failures  int // consecutive
	LastError error
	LastOK    time.Time
}

// Scheduler arms the stream timers and tags every fetch with a sequence
// number. A completion is applied only if it is newer than the last applied
// completion of its stream, so a slow response never overwrites a fresher one.
// All methods run on the update loop; only the returned commands run elsewhere.
type Scheduler struct {
	source   Source
	interval time.Duration
	timeout  time.Duration

	issued  [streamCount]uint64
	applied [streamCount]uint64
	health  [streamCount]StreamHealth
}

// NewScheduler creates a scheduler. timeout bounds each fetch; zero leaves it to
// the transport.
func NewScheduler(source Source, interval, timeout time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{source: source, interval: interval, timeout: timeout}
}

// Interval returns the tick period.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Start arms all three streams and issues an immediate first fetch.
func (s *Scheduler) Start() tea.Cmd {
	return tea.Batch(
		s.Tick(StreamMetrics),
		s.Tick(StreamStatus),
		s.Tick(StreamClock),
		s.FetchSnapshot(),
		s.FetchStatus(),
	)
}

// Tick returns a command that reports the stream's next tick after one interval.
func (s *Scheduler) Tick(stream Stream) tea.Cmd {
	return tea.Tick(s.interval, func(t time.Time) tea.Msg {
		return tickMsg{stream: stream, at: t}
	})
}

// FetchSnapshot issues a new tagged /api/data request.
func (s *Scheduler) FetchSnapshot() tea.Cmd {
	seq := s.next(StreamMetrics)
	source, timeout := s.source, s.timeout
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		snap, err := source.FetchSnapshot(ctx)
		return snapshotMsg{seq: seq, snapshot: snap, err: err}
	}
}

// FetchStatus issues a new tagged /api/status request.
func (s *Scheduler) FetchStatus() tea.Cmd {
	seq := s.next(StreamStatus)
	source, timeout := s.source, s.timeout
	return func() tea.Msg {
		ctx, cancel := fetchContext(timeout)
		defer cancel()
		status, err := source.FetchStatus(ctx)
		return statusMsg{seq: seq, status: status, err: err}
	}
}

// Stale reports whether a completion is older than, or the same as, the last one applied.
func (s *Scheduler) Stale(stream Stream, seq uint64) bool {
	return seq <= s.applied[stream]
}

// Succeeded marks seq as applied and clears the failure streak.
func (s *Scheduler) Succeeded(stream Stream, seq uint64, at time.Time) {
	if seq > s.applied[stream] {
		s.applied[stream] = seq
	}
	s.health[stream] = StreamHealth{LastOK: at}
}

// Failed records a failed tick. The applied sequence is left alone so an older
// in-flight success can still land.
func (s *Scheduler) Failed(stream Stream, err error) {
	h := &s.health[stream]
	h.Failures++
	h.LastError = err
}

// Health returns the stream's failure bookkeeping.
func (s *Scheduler) Health(stream Stream) StreamHealth {
	return s.health[stream]
}

// Issued returns the sequence number of the stream's most recent request.
func (s *Scheduler) Issued(stream Stream) uint64 {
	return s.issued[stream]
}

func (s *Scheduler) next(stream Stream) uint64 {
	s.issued[stream]++
	return s.issued[stream]
}

func fetchContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(context.Background())
	}
	return context.WithTimeout(context.Background(), timeout)
}
