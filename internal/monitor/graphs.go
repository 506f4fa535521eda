package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille cells are 2 dots wide and 4 dots tall, so a chart of w x h cells
// plots 2w samples at 4h levels. U+2800 is the empty cell.
const brailleBase = '⠀'

// brailleBit maps [row][col] within a cell to its bit in the code point.
var brailleBit = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// sparkBlocks are the 8 levels of a single-row sparkline.
var sparkBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Scale maps sample values onto the vertical axis.
type Scale struct {
	Min, Max float64
	// Percent charts color each column by threshold instead of the series color.
	Percent bool
}

// PercentScale is the fixed 0-100 axis used by the CPU and memory charts.
var PercentScale = Scale{Min: 0, Max: 100, Percent: true}

// RateScale fits an axis from zero to the peak of every series, never below
// floor so idle links don't draw noise at full height.
func RateScale(floor float64, series ...[]float64) Scale {
	peak := floor
	for _, s := range series {
		for _, v := range s {
			if v > peak {
				peak = v
			}
		}
	}
	return Scale{Min: 0, Max: peak}
}

func (s Scale) normalize(v float64) float64 {
	if s.Max <= s.Min {
		return 0.5
	}
	n := (v - s.Min) / (s.Max - s.Min)
	switch {
	case n < 0:
		return 0
	case n > 1:
		return 1
	}
	return n
}

// RenderBrailleChart plots data as a braille area chart of width x height
// cells. Short series are right-aligned so the newest sample is always at
// the right edge; long ones are compressed keeping peaks.
func RenderBrailleChart(data []float64, width, height int, scale Scale, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	slots := width * 2
	levels := height * 4
	samples := data
	if len(samples) > slots {
		samples = resampleData(samples, slots)
	}
	offset := slots - len(samples)

	cells := make([][]rune, height)
	for r := range cells {
		cells[r] = []rune(strings.Repeat(string(brailleBase), width))
	}
	peaks := make([]float64, width)

	for i, v := range samples {
		slot := i + offset
		col, sub := slot/2, slot%2
		if v > peaks[col] {
			peaks[col] = v
		}
		dots := clampInt(int(scale.normalize(v)*float64(levels)), levels)
		for d := 0; d < dots; d++ {
			row := height - 1 - d/4
			cells[row][col] |= rune(1) << brailleBit[3-d%4][sub]
		}
	}

	lines := make([]string, height)
	for r, row := range cells {
		var b strings.Builder
		for c, ch := range row {
			fg := color
			if scale.Percent {
				fg = MetricColor(peaks[c])
			}
			b.WriteString(lipgloss.NewStyle().Foreground(fg).Render(string(ch)))
		}
		lines[r] = b.String()
	}
	return strings.Join(lines, "\n")
}

// RenderSparkline renders a one-row block sparkline of exactly width cells.
func RenderSparkline(data []float64, width int, scale Scale, color lipgloss.Color) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}
	top := len(sparkBlocks) - 1
	var b strings.Builder
	for _, v := range resampleData(data, width) {
		b.WriteRune(sparkBlocks[clampInt(int(scale.normalize(v)*float64(top)), top)])
	}
	return lipgloss.NewStyle().Foreground(color).Render(b.String())
}

func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// resampleData stretches or compresses data to n points. Compression keeps
// the max of each bucket so short spikes survive; stretching interpolates.
func resampleData(data []float64, n int) []float64 {
	if len(data) == 0 || n <= 0 {
		return nil
	}
	if len(data) == n {
		return data
	}

	out := make([]float64, n)
	if len(data) == 1 {
		for i := range out {
			out[i] = data[0]
		}
		return out
	}

	if len(data) > n {
		bucket := float64(len(data)) / float64(n)
		for i := range out {
			lo := int(float64(i) * bucket)
			hi := min(int(float64(i+1)*bucket), len(data))
			if lo >= hi {
				lo = hi - 1
			}
			peak := data[lo]
			for _, v := range data[lo+1 : hi] {
				peak = max(peak, v)
			}
			out[i] = peak
		}
		return out
	}

	if n == 1 {
		out[0] = data[len(data)-1]
		return out
	}
	step := float64(len(data)-1) / float64(n-1)
	for i := range out {
		pos := float64(i) * step
		idx := int(pos)
		if idx >= len(data)-1 {
			out[i] = data[len(data)-1]
			continue
		}
		frac := pos - float64(idx)
		out[i] = data[idx]*(1-frac) + data[idx+1]*frac
	}
	return out
}
