package ui

import (
	"bytes"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func fixedClock(start time.Time, steps ...time.Duration) func() time.Time {
	calls := 0
	return func() time.Time {
		t := start
		if calls > 0 && calls-1 < len(steps) {
			t = start.Add(steps[calls-1])
		}
		calls++
		return t
	}
}

func TestNewSpinner(t *testing.T) {
	s := NewSpinner("Testing", &bytes.Buffer{})
	assert.Equal(t, SpinnerPending, s.State())
	assert.False(t, s.animated, "buffers are not terminals")
}

func TestSpinnerSuccess(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Generating report", &buf)
	s.now = fixedClock(time.Unix(0, 0), 1200*time.Millisecond)

	s.Start()
	assert.Equal(t, SpinnerInProgress, s.State())
	assert.Empty(t, buf.String(), "no animation off a terminal")

	s.Success()
	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Equal(t, "✓ Generating report 1.2s\n", buf.String())
}

func TestSpinnerFail(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Checking endpoint", &buf)
	s.now = fixedClock(time.Unix(0, 0), 30*time.Millisecond)

	s.Start()
	s.Fail("Endpoint unreachable")
	assert.Equal(t, SpinnerFailed, s.State())
	assert.Equal(t, "✗ Endpoint unreachable 0.03s\n", buf.String())
}

func TestSpinnerFinishOnce(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("x", &buf)

	s.Success()
	assert.Empty(t, buf.String(), "finishing before Start prints nothing")

	s.Start()
	s.Start()
	s.Success()
	s.Fail("late")
	assert.Equal(t, SpinnerSuccess, s.State())
	assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("\n")))
}

func TestSpinnerAnimated(t *testing.T) {
	var buf bytes.Buffer
	s := NewSpinner("Waiting", &buf)
	s.animated = true

	s.Start()
	time.Sleep(3 * frameInterval)
	s.Success()

	out := buf.String()
	assert.Contains(t, out, "◐ Waiting...")
	assert.Contains(t, out, "\r")
	assert.Contains(t, out, "✓ Waiting")
}

func TestStatusLines(t *testing.T) {
	assert.Equal(t, "✓ saved", Success("saved"))
	assert.Equal(t, "✗ failed", Fail("failed"))
	assert.Equal(t, "! careful", Warning("careful"))
	assert.Equal(t, "0.1s", Muted("0.1s"))
}

func TestFormatElapsed(t *testing.T) {
	assert.Equal(t, "0.05s", formatElapsed(50*time.Millisecond))
	assert.Equal(t, "0.3s", formatElapsed(300*time.Millisecond))
	assert.Equal(t, "12.0s", formatElapsed(12*time.Second))
}
