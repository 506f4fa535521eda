package monitor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	// Force TrueColor output in tests so we can verify ANSI color codes
	lipgloss.SetColorProfile(termenv.TrueColor)
}

// stripped removes ANSI styling so the plotted runes can be inspected.
func stripped(s string) string {
	var b strings.Builder
	inEscape := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			inEscape = true
		case inEscape:
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
				inEscape = false
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func TestScaleNormalize(t *testing.T) {
	tests := []struct {
		name  string
		scale Scale
		value float64
		want  float64
	}{
		{"midpoint", PercentScale, 50, 0.5},
		{"below clamps", PercentScale, -10, 0},
		{"above clamps", PercentScale, 150, 1},
		{"degenerate", Scale{Min: 5, Max: 5}, 5, 0.5},
		{"rate", Scale{Min: 0, Max: 4}, 1, 0.25},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, tt.scale.normalize(tt.value), 1e-9)
		})
	}
}

func TestRateScale(t *testing.T) {
	assert.Equal(t, Scale{Min: 0, Max: 1}, RateScale(1, []float64{0.1, 0.2}))
	assert.Equal(t, Scale{Min: 0, Max: 7}, RateScale(1, []float64{0.1}, []float64{7, 3}))
	assert.Equal(t, Scale{Min: 0, Max: 1}, RateScale(1))
	assert.False(t, RateScale(1).Percent)
}

func TestClampInt(t *testing.T) {
	assert.Equal(t, 0, clampInt(-1, 5))
	assert.Equal(t, 3, clampInt(3, 5))
	assert.Equal(t, 5, clampInt(9, 5))
}

func TestResampleData(t *testing.T) {
	assert.Nil(t, resampleData(nil, 4))
	assert.Nil(t, resampleData([]float64{1}, 0))
	assert.Equal(t, []float64{1, 2, 3}, resampleData([]float64{1, 2, 3}, 3))
	assert.Equal(t, []float64{7, 7, 7}, resampleData([]float64{7}, 3))
}

func TestResampleData_DownsamplingPreservesPeaks(t *testing.T) {
	data := []float64{1, 99, 1, 1, 1, 1, 50, 1}
	out := resampleData(data, 4)
	require.Len(t, out, 4)
	assert.Equal(t, []float64{99, 1, 1, 50}, out)
}

func TestResampleData_UpsamplingInterpolates(t *testing.T) {
	out := resampleData([]float64{0, 10}, 3)
	require.Len(t, out, 3)
	assert.InDeltaSlice(t, []float64{0, 5, 10}, out, 1e-9)

	assert.Equal(t, []float64{10}, resampleData([]float64{0, 10}, 1))
}

func TestRenderBrailleChart_Empty(t *testing.T) {
	assert.Empty(t, RenderBrailleChart(nil, 10, 2, PercentScale, ColorGraph))
	assert.Empty(t, RenderBrailleChart([]float64{1}, 0, 2, PercentScale, ColorGraph))
	assert.Empty(t, RenderBrailleChart([]float64{1}, 10, 0, PercentScale, ColorGraph))
}

func TestRenderBrailleChart_Dimensions(t *testing.T) {
	out := RenderBrailleChart([]float64{10, 20, 30, 40}, 8, 3, PercentScale, ColorGraph)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	for _, line := range lines {
		assert.Equal(t, 8, lipgloss.Width(line))
	}
}

func TestRenderBrailleChart_RightAligned(t *testing.T) {
	out := stripped(RenderBrailleChart([]float64{100, 100}, 4, 1, PercentScale, ColorGraph))
	runes := []rune(out)
	require.Len(t, runes, 4)
	assert.Equal(t, brailleBase, runes[0])
	assert.Equal(t, brailleBase, runes[2])
	assert.Equal(t, '⣿', runes[3], "both sub-columns of the last cell are full")
}

func TestRenderBrailleChart_FullAndEmpty(t *testing.T) {
	full := stripped(RenderBrailleChart([]float64{100, 100, 100, 100}, 2, 2, PercentScale, ColorGraph))
	assert.Equal(t, "⣿⣿\n⣿⣿", full)

	empty := stripped(RenderBrailleChart([]float64{0, 0, 0, 0}, 2, 2, PercentScale, ColorGraph))
	assert.Equal(t, "⠀⠀\n⠀⠀", empty)
}

func TestRenderBrailleChart_PercentColorsByThreshold(t *testing.T) {
	hot := RenderBrailleChart([]float64{95, 95}, 1, 1, PercentScale, ColorGraph)
	assert.Contains(t, hot, "255;0;85", "critical red for values over 90")

	calm := RenderBrailleChart([]float64{10, 10}, 1, 1, PercentScale, ColorGraph)
	assert.Contains(t, calm, "57;255;20", "healthy green below 70")
}

func TestRenderBrailleChart_RateUsesSeriesColor(t *testing.T) {
	out := RenderBrailleChart([]float64{95, 95}, 1, 1, Scale{Min: 0, Max: 100}, ColorGraph)
	assert.Contains(t, out, "0;255;255")
}

func TestRenderSparkline(t *testing.T) {
	assert.Empty(t, RenderSparkline(nil, 5, PercentScale, ColorGraph))

	out := stripped(RenderSparkline([]float64{0, 100}, 2, PercentScale, ColorGraph))
	assert.Equal(t, "▁█", out)

	wide := stripped(RenderSparkline([]float64{50}, 4, PercentScale, ColorGraph))
	assert.Equal(t, 4, len([]rune(wide)))
}
