package geomkit

import "math"

// Rect is an axis-aligned rectangle used for the world boundary and the
// world keep-out band.
type Rect struct {
	XMin, XMax, YMin, YMax float64
}

// Width returns XMax - XMin.
func (r Rect) Width() float64 { return r.XMax - r.XMin }

// Height returns YMax - YMin.
func (r Rect) Height() float64 { return r.YMax - r.YMin }

// Center returns the rectangle's centroid.
func (r Rect) Center() Vec2 {
	return Vec2{(r.XMin + r.XMax) / 2, (r.YMin + r.YMax) / 2}
}

// Contains reports whether pt lies within the closed rectangle.
func (r Rect) Contains(pt Vec2) bool {
	return pt.X >= r.XMin && pt.X <= r.XMax && pt.Y >= r.YMin && pt.Y <= r.YMax
}

// NearestWallSignedDistance returns the distance to the nearest wall (the
// minimum of the four per-axis distances to the interior) and the
// inward-pointing axis-aligned unit normal of that wall. The distance is
// negative when pt lies outside the rectangle.
func (r Rect) NearestWallSignedDistance(pt Vec2) (dist float64, inwardNormal Vec2) {
	dLeft := pt.X - r.XMin
	dRight := r.XMax - pt.X
	dBottom := pt.Y - r.YMin
	dTop := r.YMax - pt.Y

	dist = dLeft
	inwardNormal = Vec2{1, 0}
	if dRight < dist {
		dist, inwardNormal = dRight, Vec2{-1, 0}
	}
	if dBottom < dist {
		dist, inwardNormal = dBottom, Vec2{0, 1}
	}
	if dTop < dist {
		dist, inwardNormal = dTop, Vec2{0, -1}
	}
	return dist, inwardNormal
}

// Clamp clamps pt into the closed rectangle, component-wise.
func (r Rect) Clamp(pt Vec2) Vec2 {
	return Vec2{
		X: math.Min(math.Max(pt.X, r.XMin), r.XMax),
		Y: math.Min(math.Max(pt.Y, r.YMin), r.YMax),
	}
}

// Wrap applies toroidal wraparound, mapping pt into [XMin,XMax) x [YMin,YMax).
func (r Rect) Wrap(pt Vec2) Vec2 {
	return Vec2{
		X: wrapAxis(pt.X, r.XMin, r.XMax),
		Y: wrapAxis(pt.Y, r.YMin, r.YMax),
	}
}

func wrapAxis(v, lo, hi float64) float64 {
	span := hi - lo
	if span <= 0 {
		return v
	}
	m := math.Mod(v-lo, span)
	if m < 0 {
		m += span
	}
	return lo + m
}
