package metrics

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB"}

// FormatBytes formats a byte count with base-1024 units, rounded to 2 decimals
// with trailing zeros dropped: 0 -> "0 B", 1536 -> "1.5 KB", 1<<30 -> "1 GB".
// Values beyond TB stay in TB. Zero, negative and NaN inputs format as "0 B".
func FormatBytes(bytes float64) string {
	if bytes <= 0 || math.IsNaN(bytes) {
		return "0 B"
	}

	// Repeated division instead of log(bytes)/log(1024): exact on powers of two.
	value, unit := bytes, 0
	for value >= 1024 && unit < len(byteUnits)-1 {
		value /= 1024
		unit++
	}

	rounded := math.Round(value*100) / 100
	return strconv.FormatFloat(rounded, 'f', -1, 64) + " " + byteUnits[unit]
}

// FormatTime formats seconds as MM:SS. Minutes are not wrapped into hours.
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	mins := int64(math.Floor(seconds / 60))
	secs := int64(math.Floor(math.Mod(seconds, 60)))
	return fmt.Sprintf("%02d:%02d", mins, secs)
}

// FormatUptime formats seconds as "D일 H시간 M분". The day and hour segments are
// omitted when zero; minutes are always present.
func FormatUptime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	days := int64(math.Floor(seconds / 86400))
	hours := int64(math.Floor(math.Mod(seconds, 86400) / 3600))
	mins := int64(math.Floor(math.Mod(seconds, 3600) / 60))

	var parts []string
	if days > 0 {
		parts = append(parts, fmt.Sprintf("%d일", days))
	}
	if hours > 0 {
		parts = append(parts, fmt.Sprintf("%d시간", hours))
	}
	parts = append(parts, fmt.Sprintf("%d분", mins))
	return strings.Join(parts, " ")
}

// FormatPercent formats a percentage to one decimal place without the % sign.
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

// FormatRate formats a MB/s throughput to two decimal places.
func FormatRate(mbPerSec float64) string {
	return strconv.FormatFloat(mbPerSec, 'f', 2, 64)
}

// ClampPercent bounds a percentage to [0, 100] for progress widths.
func ClampPercent(v float64) float64 {
	switch {
	case math.IsNaN(v), v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}

// Truncate cuts s to at most maxRunes runes. No ellipsis is added.
func Truncate(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return string(runes[:maxRunes])
}
