package monitor

import "sync"

// DefaultHistorySize is the default number of samples kept in the sliding window.
const DefaultHistorySize = 60

// Point is one sample across every tracked series. Rates are MB/s.
type Point struct {
	Label     string
	CPU       float64
	Memory    float64
	NetSent   float64
	NetRecv   float64
	DiskRead  float64
	DiskWrite float64
}

// HistoryView is an ordered copy (oldest first) of every series. All slices
// have the same length and index i always describes the same sample.
type HistoryView struct {
	Labels    []string
	CPU       []float64
	Memory    []float64
	NetSent   []float64
	NetRecv   []float64
	DiskRead  []float64
	DiskWrite []float64
}

// Len returns the number of samples in the view.
func (v HistoryView) Len() int {
	return len(v.Labels)
}

// History is the sliding window behind the trend charts. Every series shares a
// single ring head, so an append writes all of them or none.
type History struct {
	mu    sync.RWMutex
	size  int
	head  int
	count int

	labels    []string
	cpu       []float64
	memory    []float64
	netSent   []float64
	netRecv   []float64
	diskRead  []float64
	diskWrite []float64
}

// NewHistory creates a window holding at most size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:      size,
		labels:    make([]string, size),
		cpu:       make([]float64, size),
		memory:    make([]float64, size),
		netSent:   make([]float64, size),
		netRecv:   make([]float64, size),
		diskRead:  make([]float64, size),
		diskWrite: make([]float64, size),
	}
}

// Append records one sample, evicting the oldest when the window is full.
func (h *History) Append(p Point) {
	h.mu.Lock()
	defer h.mu.Unlock()

	i := h.head
	h.labels[i] = p.Label
	h.cpu[i] = p.CPU
	h.memory[i] = p.Memory
	h.netSent[i] = p.NetSent
	h.netRecv[i] = p.NetRecv
	h.diskRead[i] = p.DiskRead
	h.diskWrite[i] = p.DiskWrite

	h.head = (h.head + 1) % h.size
	if h.count < h.size {
		h.count++
	}
}

// Snapshot returns a copy of the window, oldest sample first.
func (h *History) Snapshot() HistoryView {
	h.mu.RLock()
	defer h.mu.RUnlock()

	start := (h.head - h.count + h.size) % h.size
	return HistoryView{
		Labels:    ordered(h.labels, start, h.count),
		CPU:       ordered(h.cpu, start, h.count),
		Memory:    ordered(h.memory, start, h.count),
		NetSent:   ordered(h.netSent, start, h.count),
		NetRecv:   ordered(h.netRecv, start, h.count),
		DiskRead:  ordered(h.diskRead, start, h.count),
		DiskWrite: ordered(h.diskWrite, start, h.count),
	}
}

// Len returns the number of samples currently held.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.count
}

// Cap returns the fixed capacity.
func (h *History) Cap() int {
	return h.size
}

// ordered unrolls count ring entries starting at start into a fresh slice.
func ordered[T any](data []T, start, count int) []T {
	result := make([]T, count)
	size := len(data)
	for i := 0; i < count; i++ {
		result[i] = data[(start+i)%size]
	}
	return result
}
