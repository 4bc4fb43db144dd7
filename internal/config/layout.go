package config

import (
	"math"
	"math/rand"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// GenerateLayout produces n initial positions for the named layout family
// around center (SPEC_FULL.md 4.11). spacing is family-specific: grid
// row/column spacing, ring radius, cluster jitter standard deviation, or the
// uniform half-width (points fill [center-spacing, center+spacing] in both
// axes). Any layout name other than grid, ring or cluster uses uniform.
func GenerateLayout(layout core.ScenarioLayout, n int, center core.Vec2, spacing float64, rng *rand.Rand) []core.Vec2 {
	switch layout {
	case core.LayoutGrid:
		return gridLayout(n, center, spacing)
	case core.LayoutRing:
		return ringLayout(n, center, spacing)
	case core.LayoutCluster:
		return clusterLayout(n, center, spacing, rng)
	default:
		return uniformLayout(n, center, spacing, rng)
	}
}

// gridLayout arranges n points in evenly spaced rows/columns centered on
// center, with spacing between adjacent points.
func gridLayout(n int, center core.Vec2, spacing float64) []core.Vec2 {
	pts := make([]core.Vec2, n)
	cols := int(math.Ceil(math.Sqrt(float64(n))))
	if cols == 0 {
		return pts
	}
	rows := int(math.Ceil(float64(n) / float64(cols)))
	offsetX := spacing * float64(cols-1) / 2
	offsetY := spacing * float64(rows-1) / 2
	for i := 0; i < n; i++ {
		row, col := i/cols, i%cols
		pts[i] = core.Vec2{
			X: center.X + float64(col)*spacing - offsetX,
			Y: center.Y + float64(row)*spacing - offsetY,
		}
	}
	return pts
}

// ringLayout arranges n points at uniform angular spacing around center at
// the given radius.
func ringLayout(n int, center core.Vec2, radius float64) []core.Vec2 {
	pts := make([]core.Vec2, n)
	if n == 0 {
		return pts
	}
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		pts[i] = core.Vec2{
			X: center.X + radius*math.Cos(theta),
			Y: center.Y + radius*math.Sin(theta),
		}
	}
	return pts
}

// clusterLayout scatters n points with Gaussian jitter (standard deviation
// sigma) around center.
func clusterLayout(n int, center core.Vec2, sigma float64, rng *rand.Rand) []core.Vec2 {
	pts := make([]core.Vec2, n)
	for i := range pts {
		pts[i] = core.Vec2{
			X: center.X + rng.NormFloat64()*sigma,
			Y: center.Y + rng.NormFloat64()*sigma,
		}
	}
	return pts
}

// uniformLayout scatters n points uniformly at random within [-halfWidth,
// halfWidth] of center on each axis.
func uniformLayout(n int, center core.Vec2, halfWidth float64, rng *rand.Rand) []core.Vec2 {
	pts := make([]core.Vec2, n)
	for i := range pts {
		pts[i] = core.Vec2{
			X: center.X + (rng.Float64()*2-1)*halfWidth,
			Y: center.Y + (rng.Float64()*2-1)*halfWidth,
		}
	}
	return pts
}
