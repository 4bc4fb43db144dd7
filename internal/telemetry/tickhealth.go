package telemetry

import (
	"time"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/stat"
)

const (
	tickSampleSize = 20
	warnFloorHz    = 15.0 // default floor against a 20 Hz target (SPEC_FULL.md 7)
)

// TickHealth averages outer-tick durations over consecutive blocks of
// tickSampleSize ticks (the samples are cleared after each block) and logs a
// one-shot warning when a block's effective rate drops below floorHz,
// grounded on dm-vev-adamant's tickLoop TPS-sampling idiom (tpsSampleSize=20,
// warn-once-until-recovered).
type TickHealth struct {
	log     zerolog.Logger
	floorHz float64

	samples []float64 // seconds, the current block of at most tickSampleSize
	warned  bool
}

// NewTickHealth constructs a TickHealth that warns below floorHz.
func NewTickHealth(log zerolog.Logger, floorHz float64) *TickHealth {
	if floorHz <= 0 {
		floorHz = warnFloorHz
	}
	return &TickHealth{log: log, floorHz: floorHz, samples: make([]float64, 0, tickSampleSize)}
}

// Observe records one outer tick's wall-clock duration.
func (h *TickHealth) Observe(duration time.Duration) {
	if duration <= 0 {
		return
	}
	h.samples = append(h.samples, duration.Seconds())
	if len(h.samples) < tickSampleSize {
		return
	}

	avgSeconds := stat.Mean(h.samples, nil)
	h.samples = h.samples[:0]
	if avgSeconds <= 0 {
		return
	}

	hz := 1.0 / avgSeconds
	if hz < h.floorHz {
		if !h.warned {
			h.log.Warn().Float64("hz", hz).Float64("floor_hz", h.floorHz).Msg("outer tick rate dropped below floor")
			h.warned = true
		}
	} else {
		h.warned = false
	}
}
