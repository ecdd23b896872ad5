// Package memory converts raw memory counters into gigabyte figures and the
// one-line summary carried on the memory channel.
package memory

import (
	"fmt"

	"codeberg.org/mutker/sysmon/internal/errors"
	"codeberg.org/mutker/sysmon/internal/platform"
)

// GB is the divisor used for every gigabyte figure.
const GB = 1 << 30

// lineFormat is "physical used/total -- virtual used/total".
const (
	lineFormat = "%.2f GB / %.2f GB  -- %.2f GB / %.2f GB"
	scanFormat = "%f GB / %f GB -- %f GB / %f GB"
)

const ErrParseLine errors.ErrorCode = "memory_parse_line_failed"

type Snapshot struct {
	PhysTotalGB float64
	PhysUsedGB  float64
	SwapTotalGB float64
	SwapUsedGB  float64
}

// Summarize converts bytes to GB. Used values are total minus free, clamped
// to [0, total].
func Summarize(raw platform.MemoryInfo) Snapshot {
	return Snapshot{
		PhysTotalGB: float64(raw.TotalPhys) / GB,
		PhysUsedGB:  used(raw.TotalPhys, raw.FreePhys) / GB,
		SwapTotalGB: float64(raw.TotalSwap) / GB,
		SwapUsedGB:  used(raw.TotalSwap, raw.FreeSwap) / GB,
	}
}

func used(total, free uint64) float64 {
	if free >= total {
		return 0
	}
	return float64(total - free)
}

// VirtualUsedGB is physical plus swap usage.
func (s Snapshot) VirtualUsedGB() float64 {
	return s.PhysUsedGB + s.SwapUsedGB
}

// VirtualTotalGB is physical plus swap capacity.
func (s Snapshot) VirtualTotalGB() float64 {
	return s.PhysTotalGB + s.SwapTotalGB
}

// PhysPercent returns physical usage as a percentage of the total.
func (s Snapshot) PhysPercent() float64 {
	if s.PhysTotalGB == 0 {
		return 0
	}
	return s.PhysUsedGB / s.PhysTotalGB * 100
}

// SwapPercent returns swap usage as a percentage of the total.
func (s Snapshot) SwapPercent() float64 {
	if s.SwapTotalGB == 0 {
		return 0
	}
	return s.SwapUsedGB / s.SwapTotalGB * 100
}

// Format renders s as the memory channel payload.
func Format(s Snapshot) string {
	return fmt.Sprintf(lineFormat, s.PhysUsedGB, s.PhysTotalGB, s.VirtualUsedGB(), s.VirtualTotalGB())
}

// Parse reads a payload produced by Format. Swap figures are recovered as the
// difference between the virtual and physical values, so they carry the
// two-decimal rounding of the line.
func Parse(line string) (Snapshot, error) {
	var physUsed, physTotal, virtUsed, virtTotal float64
	n, err := fmt.Sscanf(line, scanFormat, &physUsed, &physTotal, &virtUsed, &virtTotal)
	if err != nil || n != 4 {
		return Snapshot{}, errors.New().Wrap(ErrParseLine, fmt.Errorf("%q: %w", line, err))
	}

	return Snapshot{
		PhysTotalGB: physTotal,
		PhysUsedGB:  physUsed,
		SwapTotalGB: nonNegative(virtTotal - physTotal),
		SwapUsedGB:  nonNegative(virtUsed - physUsed),
	}, nil
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
