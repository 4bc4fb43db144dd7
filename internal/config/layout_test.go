package config

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

func TestRingLayoutRadius(t *testing.T) {
	pts := GenerateLayout(core.LayoutRing, 10, core.Vec2{}, 20, nil)
	assert.Len(t, pts, 10)
	for _, p := range pts {
		assert.InDelta(t, 20, p.Dist(core.Vec2{}), 1e-9)
	}
}

func TestGridLayoutCount(t *testing.T) {
	pts := GenerateLayout(core.LayoutGrid, 17, core.Vec2{}, 2, nil)
	assert.Len(t, pts, 17)
}

func TestClusterLayoutCentered(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	pts := GenerateLayout(core.LayoutCluster, 200, core.Vec2{X: 5, Y: 5}, 1, rng)
	var sum core.Vec2
	for _, p := range pts {
		sum = sum.Add(p)
	}
	mean := sum.Scale(1.0 / float64(len(pts)))
	assert.InDelta(t, 5, mean.X, 0.5)
	assert.InDelta(t, 5, mean.Y, 0.5)
}

func TestUniformLayoutBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	pts := GenerateLayout(core.LayoutUniform, 50, core.Vec2{}, 10, rng)
	for _, p := range pts {
		assert.LessOrEqual(t, p.X, 10.0)
		assert.GreaterOrEqual(t, p.X, -10.0)
	}
}
