package core

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

// BoundaryMode selects how World enforces the world rectangle (spec.md 3, 4.7).
type BoundaryMode int

const (
	BoundaryNone BoundaryMode = iota
	BoundaryReflect
	BoundaryWrap
)

func (m BoundaryMode) String() string {
	switch m {
	case BoundaryNone:
		return "none"
	case BoundaryReflect:
		return "reflect"
	case BoundaryWrap:
		return "wrap"
	default:
		return "unknown"
	}
}

// WorldConfig is the immutable-per-run configuration of a World (spec.md 3).
type WorldConfig struct {
	// Geometry
	Ra    float64 // agent interaction radius
	Rs    float64 // controller sensing radius
	RAttr float64 // attraction/alignment cutoff
	KNN   int     // max neighbors used for attraction/alignment
	VMax  float64
	UMax  float64
	Dt    float64

	// Weights
	Wr      float64 // close-neighbor repulsion
	Wa      float64 // local-center attraction
	Ws      float64 // controller repulsion
	Wm      float64 // inertia
	WAlign  float64 // alignment
	WObs    float64 // obstacle avoidance normal weight
	WTan    float64 // obstacle avoidance tangent weight
	Sigma   float64 // noise
	GrazeP  float64 // grazing move probability

	// Obstacles
	Obstacles []geomkit.Polygon

	// Boundary
	Boundary    BoundaryMode
	Bounds      geomkit.Rect
	Restitution float64

	// Keep-out
	KeepOut      float64 // polygon keep-out band width
	WorldKeepOut float64 // rectangle keep-out band width

	// Reproducibility
	Seed int64
}

// DefaultWorldConfig returns a reasonable starting configuration, grounded in
// the constants original_source/simulation/world.py and
// original_source/server/main.py use for their default scenario.
func DefaultWorldConfig() WorldConfig {
	return WorldConfig{
		Ra:          2.0,
		Rs:          10.0,
		RAttr:       8.0,
		KNN:         8,
		VMax:        2.0,
		UMax:        6.0,
		Dt:          1.0 / 60.0,
		Wr:          2.0,
		Wa:          1.05,
		Ws:          3.0,
		Wm:          0.5,
		WAlign:      0.3,
		WObs:        1.5,
		WTan:        1.0,
		Sigma:       0.05,
		GrazeP:      0.1,
		Boundary:    BoundaryReflect,
		Bounds:      geomkit.Rect{XMin: -150, XMax: 150, YMin: -150, YMax: 150},
		Restitution: 0.5,
		KeepOut:     1.0,
		WorldKeepOut: 1.0,
		Seed:        42,
	}
}

// PolicyConfig configures a ShepherdPolicy (spec.md 4.8).
type PolicyConfig struct {
	FN                         float64 // cohesion radius target
	UMax                       float64
	TooClose                   float64 // safety stop threshold
	CollectStandoff            float64 // distance behind the target sheep
	ConditionallyApplyRepulsion bool
}

// DefaultPolicyConfigForFlock derives fN/too_close/collect_standoff from
// agent count N and interaction radius ra, following
// original_source/server/main.py's _create_policy_for_world defaults.
func DefaultPolicyConfigForFlock(n int, ra, umax float64) PolicyConfig {
	fN := 0.0
	if n > 0 {
		fN = math.Sqrt(0.5 * float64(n) * ra * ra)
	}
	return PolicyConfig{
		FN:                          fN,
		UMax:                        umax,
		TooClose:                    1.5 * ra,
		CollectStandoff:             1.0 * ra,
		ConditionallyApplyRepulsion: true,
	}
}
