// Package cpu turns raw CPU tick counters into a smoothed utilization percentage.
package cpu

import (
	"math"

	"codeberg.org/mutker/sysmon/internal/platform"
)

const (
	// Change magnitudes, in percentage points, selecting the smoothing weight.
	LargeChange  = 25.0
	MediumChange = 10.0

	// Weight given to the last emitted value for each tier.
	LargeWeight  = 0.85
	MediumWeight = 0.65
	SmallWeight  = 0.5

	// A result below FloorThreshold after a value above FloorPrevious is
	// treated as a sampling artifact and replaced by last*DecayFactor.
	FloorThreshold = 2.0
	FloorPrevious  = 5.0
	DecayFactor    = 0.7
)

// State is the whole memory of one estimator. It must have a single owner.
type State struct {
	Previous    platform.RawCPUSample
	Last        float64
	HasBaseline bool
}

// Estimate folds sample into state and returns the utilization in [0,100].
//
// The first call only records the baseline and returns the direct idle ratio
// of sample. Later calls use the clamped per-field deltas against the baseline,
// blend the result with the last emitted value and apply the decay floor.
func Estimate(state *State, sample platform.RawCPUSample) float64 {
	if !state.HasBaseline {
		pct := Direct(sample)
		state.Previous = sample
		state.Last = pct
		state.HasBaseline = true
		return pct
	}

	prev := state.Previous
	dUser := delta(sample.User, prev.User)
	dNice := delta(sample.Nice, prev.Nice)
	dSystem := delta(sample.System, prev.System)
	dIdle := delta(sample.Idle, prev.Idle)
	total := dUser + dNice + dSystem + dIdle

	var raw float64
	if total == 0 {
		raw = Direct(sample)
	} else {
		raw = clamp(100 * float64(total-dIdle) / float64(total))
	}

	pct := clamp(DecayFloor(Smooth(raw, state.Last), state.Last))

	state.Previous = sample
	state.Last = pct
	return pct
}

// Direct returns 100 - idle/(user+nice+system+idle)*100 on absolute counters,
// or 0 when they are all zero.
func Direct(s platform.RawCPUSample) float64 {
	sum := s.User + s.Nice + s.System + s.Idle
	if sum == 0 {
		return 0
	}
	return clamp(100 - float64(s.Idle)/float64(sum)*100)
}

// Smooth blends raw with last, damping harder the further raw is from last.
func Smooth(raw, last float64) float64 {
	diff := math.Abs(raw - last)
	switch {
	case diff > LargeChange:
		return LargeWeight*last + (1-LargeWeight)*raw
	case diff > MediumChange:
		return MediumWeight*last + (1-MediumWeight)*raw
	default:
		return SmallWeight*last + (1-SmallWeight)*raw
	}
}

// DecayFloor replaces a sudden near-zero reading by a decay of last.
func DecayFloor(smoothed, last float64) float64 {
	if smoothed < FloorThreshold && last > FloorPrevious {
		return last * DecayFactor
	}
	return smoothed
}

func delta(curr, prev uint64) uint64 {
	if curr < prev {
		return 0
	}
	return curr - prev
}

func clamp(pct float64) float64 {
	switch {
	case math.IsNaN(pct), pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return pct
	}
}

// Estimator owns a State and serves the two-snapshot CPU protocol, where each
// interval delivers the counters read before and after the sleep.
type Estimator struct {
	state State
}

func NewEstimator() *Estimator {
	return &Estimator{}
}

// Estimate folds a single sample into the estimator.
func (e *Estimator) Estimate(sample platform.RawCPUSample) float64 {
	return Estimate(&e.state, sample)
}

// EstimatePair rebases the estimator on prev and estimates curr against it.
// The first pair bootstraps on prev, so its result is already smoothed against
// the direct ratio of prev.
func (e *Estimator) EstimatePair(prev, curr platform.RawCPUSample) float64 {
	if !e.state.HasBaseline {
		Estimate(&e.state, prev)
	} else {
		e.state.Previous = prev
	}
	return Estimate(&e.state, curr)
}

// Last returns the last emitted percentage.
func (e *Estimator) Last() float64 {
	return e.state.Last
}

// State returns a copy of the current state.
func (e *Estimator) State() State {
	return e.state
}
