// Package telemetry sets up structured logging and tick-health sampling for
// the loop driver (spec.md 7), grounded on smilemakc-mbflow's zerolog usage
// and the TPS rolling-average-and-warn idiom from dm-vev-adamant's ticker.
package telemetry

import (
	"os"

	"github.com/rs/zerolog"
)

// NewLogger constructs the process-wide zerolog.Logger. debug selects Debug
// vs Info as the minimum level, matching spec.md 7's split between
// debug-level numerical-safety events and warn-level contract violations.
func NewLogger(debug bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if debug {
		level = zerolog.DebugLevel
	}
	return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
}
