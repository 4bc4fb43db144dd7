package core

import "github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"

// Snapshot is the full external read contract of the loop driver (spec.md 6).
// It is always a value copy taken under the driver's lock; mutating it has no
// effect on live simulation state.
type Snapshot struct {
	P                  []Vec2 // agent positions
	V                  []Vec2 // agent velocities
	D                  []Vec2 // controller positions
	ApplyRepulsion     []bool
	TargetSheepIndices []int // -1 sentinel for "unassigned", indexed by controller

	GCM    Vec2
	Radius float64 // fN

	Obstacles []geomkit.Polygon
	Jobs      []Job

	Paused bool
}
