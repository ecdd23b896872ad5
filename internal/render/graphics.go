package render

import (
	"fmt"
	"math"
	"strings"
)

const (
	cpuBaseBars = 3
	cpuIndent   = "         "
	maxSymbols  = 200

	// memory changes smaller than this are drawn as no change
	memoryEpsilon = 0.01
)

// CPUBar draws three base bars plus one per percentage point gained since
// prev (or one per point of curr on the first sample), then the value.
func CPUBar(curr, prev float64, first bool) string {
	extra := int(curr)
	if !first {
		extra = int(curr) - int(prev)
	}
	bars := clampCount(cpuBaseBars + extra)

	return fmt.Sprintf("%s%s %.2f%%", cpuIndent, strings.Repeat("|", bars), curr)
}

// MemoryGraphic draws the change in virtual memory usage since the previous
// sample: '#' per 0.01 GB gained ending in '*', ':' per 0.01 GB released
// ending in '@'. Small changes and the first sample draw "|o" or "|@".
func MemoryGraphic(diff, virtualUsed float64, first bool) string {
	if first || math.Abs(diff) < memoryEpsilon {
		mark := "o"
		if diff < 0 {
			mark = "@"
		}
		return fmt.Sprintf("|%s %.2f (%.2f)", mark, diff, virtualUsed)
	}

	symbol, end := "#", "*"
	if diff < 0 {
		symbol, end = ":", "@"
	}
	count := clampCount(int(math.Abs(diff) * 100))

	return fmt.Sprintf("|%s%s %.2f (%.2f)", strings.Repeat(symbol, count), end, diff, virtualUsed)
}

// Sparkline maps values in [0,100] onto block characters.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		v = math.Max(0, math.Min(100, v))
		idx := int(v / 100.0 * 7.0)
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}

var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Gauge draws a fixed-width bar for a percentage.
func Gauge(pct float64, width int) string {
	pct = math.Max(0, math.Min(100, pct))
	filled := int(pct / 100 * float64(width))
	if filled > width {
		filled = width
	}
	return fmt.Sprintf("[%s%s] %5.1f%%", strings.Repeat("█", filled), strings.Repeat("░", width-filled), pct)
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	if n > maxSymbols {
		return maxSymbols
	}
	return n
}
