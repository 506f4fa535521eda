package monitor

import (
	"encoding/json"
	"io"
	"sync"
)

// Sink consumes widget updates. The Board backs the terminal view; JSONSink
// backs headless mode.
type Sink interface {
	Apply(updates ...WidgetUpdate) error
}

// Board holds the latest update per widget. Applying an update replaces the
// widget's previous content entirely.
type Board struct {
	mu      sync.RWMutex
	widgets map[WidgetID]WidgetUpdate
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{widgets: make(map[WidgetID]WidgetUpdate)}
}

// Apply stores each update under its widget ID.
func (b *Board) Apply(updates ...WidgetUpdate) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, u := range updates {
		b.widgets[u.Widget] = u
	}
	return nil
}

// Get returns the current content of a widget and whether it was ever set.
func (b *Board) Get(id WidgetID) (WidgetUpdate, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	u, ok := b.widgets[id]
	return u, ok
}

// Tile returns a widget's tile, or nil.
func (b *Board) Tile(id WidgetID) *Tile {
	u, _ := b.Get(id)
	return u.Tile
}

// Chart returns a widget's chart, or nil.
func (b *Board) Chart(id WidgetID) *Chart {
	u, _ := b.Get(id)
	return u.Chart
}

// Text returns a widget's text, or "".
func (b *Board) Text(id WidgetID) string {
	u, _ := b.Get(id)
	return u.Text
}

// JSONSink writes every update as one JSON object per line.
type JSONSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONSink creates a sink writing newline-delimited JSON to w.
func NewJSONSink(w io.Writer) *JSONSink {
	return &JSONSink{enc: json.NewEncoder(w)}
}

// Apply encodes updates in order, stopping at the first write error.
func (s *JSONSink) Apply(updates ...WidgetUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range updates {
		if err := s.enc.Encode(u); err != nil {
			return err
		}
	}
	return nil
}

// MultiSink fans updates out to several sinks.
type MultiSink []Sink

// Apply forwards to every sink and returns the first error.
func (m MultiSink) Apply(updates ...WidgetUpdate) error {
	var first error
	for _, s := range m {
		if err := s.Apply(updates...); err != nil && first == nil {
			first = err
		}
	}
	return first
}
