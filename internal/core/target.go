package core

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

// TargetKind discriminates the Target tagged union.
type TargetKind int

const (
	TargetCircle TargetKind = iota
	TargetPolygon
)

func (k TargetKind) String() string {
	switch k {
	case TargetCircle:
		return "circle"
	case TargetPolygon:
		return "polygon"
	default:
		return "unknown"
	}
}

// Target is the discriminated union of goal-region shapes a Job can name.
// Exactly one of the Circle or Polygon fields is meaningful, selected by Kind.
type Target struct {
	Kind TargetKind

	// Circle fields. Radius == nil means "no radius configured": the goal
	// can never be satisfied (spec.md 4.9).
	Center Vec2
	Radius *float64

	// Polygon fields: a ring, not required to be closed.
	Vertices []Vec2

	polygon     geomkit.Polygon
	polygonBuilt bool
}

// NewCircleTarget builds a circular Target. Pass radius=nil to represent "no
// radius configured" (the target then never satisfies).
func NewCircleTarget(center Vec2, radius *float64) Target {
	return Target{Kind: TargetCircle, Center: center, Radius: radius}
}

// NewPolygonTarget builds a polygon Target, precomputing its edge geometry.
func NewPolygonTarget(vertices []Vec2) Target {
	t := Target{Kind: TargetPolygon, Vertices: vertices}
	t.polygon = geomkit.NewPolygon(vertices)
	t.polygonBuilt = true
	return t
}

func (t *Target) ensurePolygon() geomkit.Polygon {
	if !t.polygonBuilt {
		t.polygon = geomkit.NewPolygon(t.Vertices)
		t.polygonBuilt = true
	}
	return t.polygon
}

// ContainsPoint reports whether pt lies inside the target region.
func (t *Target) ContainsPoint(pt Vec2) bool {
	switch t.Kind {
	case TargetCircle:
		if t.Radius == nil {
			return false
		}
		return pt.Dist(t.Center) <= *t.Radius
	case TargetPolygon:
		return t.ensurePolygon().Contains(pt)
	default:
		return false
	}
}

// DistanceTo returns dGoal for a single agent position per spec.md 4.8 step 2:
// for a circle, Euclidean distance to center (or to the boundary if outside,
// which for a circle is simply distance-to-center minus radius when positive,
// distance-to-center otherwise per the literal spec wording "distance to
// center (or to boundary if the sheep is outside)"); for a polygon, distance
// to the nearest edge. Agents already inside the target return -Inf so they
// are excluded from candidate selection.
func (t *Target) DistanceTo(pt Vec2) float64 {
	if t.ContainsPoint(pt) {
		return math.Inf(-1)
	}
	switch t.Kind {
	case TargetCircle:
		if t.Radius == nil {
			return pt.Dist(t.Center)
		}
		d := pt.Dist(t.Center) - *t.Radius
		if d < 0 {
			d = pt.Dist(t.Center)
		}
		return d
	case TargetPolygon:
		_, _, signed := t.ensurePolygon().ClosestPoint(pt)
		return math.Abs(signed)
	default:
		return math.Inf(1)
	}
}

// Satisfied reports whether every position in positions lies inside the
// target region. An empty flock is trivially satisfied (spec.md 4.9).
func (t *Target) Satisfied(positions []Vec2) bool {
	if len(positions) == 0 {
		return true
	}
	for _, p := range positions {
		if !t.ContainsPoint(p) {
			return false
		}
	}
	return true
}
