// Package geomkit implements the pure, stateless geometric kernels the
// simulation and planning layers build on: 2D vector arithmetic, point-in-polygon,
// closest-point-on-polygon with signed distance, and rectangle signed distance.
package geomkit

import "math"

// Vec2 is a 2D Euclidean vector or point.
type Vec2 struct {
	X, Y float64
}

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float64) Vec2 { return Vec2{a.X * s, a.Y * s} }

// Dot returns the dot product of a and b.
func (a Vec2) Dot(b Vec2) float64 { return a.X*b.X + a.Y*b.Y }

// Len2 returns the squared Euclidean length.
func (a Vec2) Len2() float64 { return a.X*a.X + a.Y*a.Y }

// Len returns the Euclidean length.
func (a Vec2) Len() float64 { return math.Sqrt(a.Len2()) }

// Dist returns the Euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 { return a.Sub(b).Len() }

// Dist2 returns the squared Euclidean distance between a and b.
func (a Vec2) Dist2(b Vec2) float64 { return a.Sub(b).Len2() }

// IsFinite reports whether both components are finite.
func (a Vec2) IsFinite() bool {
	return !math.IsNaN(a.X) && !math.IsNaN(a.Y) && !math.IsInf(a.X, 0) && !math.IsInf(a.Y, 0)
}

// Normalized returns a unit vector in the direction of a, and the zero
// vector if a is (numerically) the zero vector.
func (a Vec2) Normalized() Vec2 {
	l := a.Len()
	if l < 1e-12 {
		return Vec2{}
	}
	return a.Scale(1 / l)
}

// Tangent rotates a normal by +90 degrees: (nx, ny) -> (-ny, nx).
func Tangent(n Vec2) Vec2 {
	return Vec2{-n.Y, n.X}
}

// Mean returns the centroid of pts, or the zero vector for an empty slice.
func Mean(pts []Vec2) Vec2 {
	if len(pts) == 0 {
		return Vec2{}
	}
	var sum Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(pts)))
}
