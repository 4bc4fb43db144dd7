package loop

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// remainingTimeAlpha is the exponential-smoothing factor for the closure-rate
// estimate (SPEC_FULL.md 4.12).
const remainingTimeAlpha = 0.1

// remainingTimeWindow is the smoothing window SPEC_FULL.md 4.12 refers to.
// Once the window is full, a non-positive smoothed rate falls back to the
// mean of the window's positive rates, so the estimate goes null only when
// every rate in the window is non-positive. Before the window is full the
// same fallback applies to the rates seen so far, so the estimate is null
// whenever none of them has been positive yet.
const remainingTimeWindow = 20

// remainingTimeEstimator tracks a rolling estimate of how fast the active
// job's worst-case goal distance is closing, and derives an advisory
// remaining-time figure from it. It never gates job status transitions
// (SPEC_FULL.md 4.12): those are governed solely by goal satisfaction.
type remainingTimeEstimator struct {
	have     bool
	lastGoal float64
	rate     float64

	recentRates []float64 // ring buffer of instantaneous rates, most recent last
}

// reset clears accumulated state, used whenever the active job changes.
func (e *remainingTimeEstimator) reset() {
	*e = remainingTimeEstimator{}
}

// update folds in the current tick's worst-case goal distance and returns an
// estimate, or nil when no estimate can yet be produced.
func (e *remainingTimeEstimator) update(maxDGoal, dt float64) *float64 {
	if dt <= 0 || math.IsInf(maxDGoal, 0) {
		return nil
	}
	if !e.have {
		e.have = true
		e.lastGoal = maxDGoal
		return nil
	}

	instRate := (e.lastGoal - maxDGoal) / dt
	e.rate = remainingTimeAlpha*instRate + (1-remainingTimeAlpha)*e.rate
	e.lastGoal = maxDGoal

	e.recentRates = append(e.recentRates, instRate)
	if len(e.recentRates) > remainingTimeWindow {
		e.recentRates = e.recentRates[len(e.recentRates)-remainingTimeWindow:]
	}
	if len(e.recentRates) == remainingTimeWindow && windowNonPositive(e.recentRates) {
		return nil
	}

	rate := e.rate
	if rate <= 0 {
		rate = positiveMean(e.recentRates)
		if rate <= 0 {
			return nil
		}
	}

	remaining := maxDGoal / rate
	if remaining < 0 {
		remaining = 0
	}
	return &remaining
}

// windowNonPositive reports whether every rate in the window is <= 0.
func windowNonPositive(rates []float64) bool {
	for _, r := range rates {
		if r > 0 {
			return false
		}
	}
	return true
}

// positiveMean averages the strictly-positive entries of rates, returning 0
// if there are none.
func positiveMean(rates []float64) float64 {
	sum, n := 0.0, 0
	for _, r := range rates {
		if r > 0 {
			sum += r
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func maxGoalDistance(positions []core.Vec2, target *core.Target) float64 {
	best := math.Inf(-1)
	for _, p := range positions {
		d := target.DistanceTo(p)
		if math.IsInf(d, -1) {
			continue
		}
		if d > best {
			best = d
		}
	}
	return best
}
