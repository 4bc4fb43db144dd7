package geomkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square() Polygon {
	return NewPolygon([]Vec2{{X: 5, Y: -2}, {X: 10, Y: -2}, {X: 10, Y: 2}, {X: 5, Y: 2}})
}

func TestPolygonContains(t *testing.T) {
	sq := square()
	assert.True(t, sq.Contains(Vec2{X: 7, Y: 0}))
	assert.False(t, sq.Contains(Vec2{X: 0, Y: 0}))
	assert.False(t, sq.Contains(Vec2{X: 20, Y: 0}))
}

func TestPolygonClosestPointSign(t *testing.T) {
	sq := square()

	_, _, sOutside := sq.ClosestPoint(Vec2{X: 0, Y: 0})
	assert.Greater(t, sOutside, 0.0)

	_, _, sInside := sq.ClosestPoint(Vec2{X: 7, Y: 0})
	assert.Less(t, sInside, 0.0)
}

func TestPolygonClosestPointOutwardNormal(t *testing.T) {
	sq := square()
	_, n, _ := sq.ClosestPoint(Vec2{X: 0, Y: 0})
	// Closest edge is the left edge (x=5); outward normal should point in -x.
	require.InDelta(t, -1.0, n.X, 1e-9)
	require.InDelta(t, 0.0, n.Y, 1e-9)
}

func TestNearestPolygonPicksMinimumAbsoluteDistance(t *testing.T) {
	near := NewPolygon([]Vec2{{X: 1, Y: -1}, {X: 2, Y: -1}, {X: 2, Y: 1}, {X: 1, Y: 1}})
	far := NewPolygon([]Vec2{{X: 100, Y: -1}, {X: 101, Y: -1}, {X: 101, Y: 1}, {X: 100, Y: 1}})

	q, _, s, ok := NearestPolygon(Vec2{X: 0, Y: 0}, []Polygon{far, near})
	require.True(t, ok)
	assert.InDelta(t, 1.0, q.X, 1e-9)
	assert.Greater(t, s, 0.0)
}

func TestTangentRotatesNinetyDegrees(t *testing.T) {
	n := Vec2{X: 1, Y: 0}
	tangent := Tangent(n)
	assert.InDelta(t, 0.0, tangent.X, 1e-9)
	assert.InDelta(t, 1.0, tangent.Y, 1e-9)
}

func TestRectNearestWall(t *testing.T) {
	r := Rect{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	d, n := r.NearestWallSignedDistance(Vec2{X: 1, Y: 5})
	assert.InDelta(t, 1.0, d, 1e-9)
	assert.InDelta(t, 1.0, n.X, 1e-9)
}

func TestRectWrap(t *testing.T) {
	r := Rect{XMin: 0, XMax: 10, YMin: 0, YMax: 10}
	w := r.Wrap(Vec2{X: 10.5, Y: -0.5})
	assert.InDelta(t, 0.5, w.X, 1e-9)
	assert.InDelta(t, 9.5, w.Y, 1e-9)
}
