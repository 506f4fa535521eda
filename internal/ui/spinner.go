package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// SpinnerState represents the current state of a spinner.
type SpinnerState int

const (
	SpinnerPending SpinnerState = iota
	SpinnerInProgress
	SpinnerSuccess
	SpinnerFailed
)

// Same frames as the dashboard's report indicator.
var spinnerFrames = []string{"◐", "◓", "◑", "◒"}

const frameInterval = 100 * time.Millisecond

// Spinner shows an animated label while a one-shot command waits on the
// endpoint, then a final ✓/✗ line with the elapsed time. On a writer that is
// not a terminal only the final line is written.
type Spinner struct {
	mu        sync.Mutex
	label     string
	out       io.Writer
	animated  bool
	state     SpinnerState
	frame     int
	startTime time.Time
	lastWidth int
	stop      chan struct{}
	done      chan struct{}
	now       func() time.Time
}

// NewSpinner creates a spinner writing to out.
func NewSpinner(label string, out io.Writer) *Spinner {
	return &Spinner{
		label:    label,
		out:      out,
		animated: isTerminal(out),
		now:      time.Now,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Start begins the animation. Calling Start twice is a no-op.
func (s *Spinner) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == SpinnerInProgress {
		return
	}
	s.state = SpinnerInProgress
	s.startTime = s.now()
	if !s.animated {
		return
	}

	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	s.renderLocked()
	go s.animate(s.stop, s.done)
}

// Success stops the spinner with a ✓ line.
func (s *Spinner) Success() {
	s.finish(SpinnerSuccess, "")
}

// Fail stops the spinner with a ✗ line. detail, if set, replaces the label.
func (s *Spinner) Fail(detail string) {
	s.finish(SpinnerFailed, detail)
}

// State returns the current spinner state.
func (s *Spinner) State() SpinnerState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Spinner) finish(state SpinnerState, detail string) {
	s.mu.Lock()
	stop, done := s.stop, s.done
	s.stop, s.done = nil, nil
	s.mu.Unlock()
	if stop != nil {
		close(stop)
		<-done
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != SpinnerInProgress {
		return
	}
	s.state = state

	label := s.label
	if detail != "" {
		label = detail
	}
	line := Success(label)
	if state == SpinnerFailed {
		line = Fail(label)
	}
	s.clearLocked()
	fmt.Fprintf(s.out, "%s %s\n", line, Muted(formatElapsed(s.now().Sub(s.startTime))))
}

func (s *Spinner) animate(stop <-chan struct{}, done chan<- struct{}) {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()
	defer close(done)

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			s.mu.Lock()
			s.frame = (s.frame + 1) % len(spinnerFrames)
			s.renderLocked()
			s.mu.Unlock()
		}
	}
}

func (s *Spinner) renderLocked() {
	frame := lipgloss.NewStyle().Foreground(ColorInfo).Render(spinnerFrames[s.frame])
	line := fmt.Sprintf("%s %s...", frame, s.label)
	s.clearLocked()
	fmt.Fprint(s.out, line)
	s.lastWidth = lipgloss.Width(line)
}

func (s *Spinner) clearLocked() {
	if s.lastWidth == 0 {
		return
	}
	fmt.Fprint(s.out, "\r"+strings.Repeat(" ", s.lastWidth)+"\r")
	s.lastWidth = 0
}

// formatElapsed formats a duration for display (e.g., "0.05s", "1.2s").
func formatElapsed(d time.Duration) string {
	secs := d.Seconds()
	if secs < 0.1 {
		return fmt.Sprintf("%.2fs", secs)
	}
	return fmt.Sprintf("%.1fs", secs)
}
