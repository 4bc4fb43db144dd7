package sim

import (
	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

// NewWorldFromScenario builds a World from a Scenario bundle, centralizing
// the obstacle-ring-to-Polygon conversion and WorldConfig wiring a caller
// would otherwise have to repeat by hand (SPEC_FULL.md 3: "the constructor
// entry point that replaces ad hoc field-by-field World construction for
// anything beyond direct unit tests"). initialP/initialD are the caller's
// generated layouts (see internal/config.GenerateLayout).
func NewWorldFromScenario(scenario core.Scenario, initialP, initialD []core.Vec2) (*World, error) {
	cfg := scenario.WorldConfig
	cfg.Obstacles = make([]geomkit.Polygon, len(scenario.Obstacles))
	for i, ring := range scenario.Obstacles {
		verts := make([]geomkit.Vec2, len(ring))
		for j, v := range ring {
			verts[j] = geomkit.Vec2{X: v.X, Y: v.Y}
		}
		cfg.Obstacles[i] = geomkit.NewPolygon(verts)
	}

	return NewWorld(cfg, initialP, initialD)
}
