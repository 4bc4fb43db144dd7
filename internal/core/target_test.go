package core

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircleTargetSatisfied(t *testing.T) {
	r := 5.0
	target := NewCircleTarget(Vec2{X: 0.5, Y: 0.5}, &r)

	positions := []Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}, {0.5, 0.5}}
	assert.True(t, target.Satisfied(positions))
}

func TestCircleTargetWithNilRadiusNeverSatisfied(t *testing.T) {
	target := NewCircleTarget(Vec2{X: 0, Y: 0}, nil)
	assert.False(t, target.Satisfied([]Vec2{{0, 0}}))
}

func TestEmptyFlockTriviallySatisfied(t *testing.T) {
	r := 1.0
	target := NewCircleTarget(Vec2{X: 0, Y: 0}, &r)
	assert.True(t, target.Satisfied(nil))
}

func TestCircleDistanceToIsNegInfInside(t *testing.T) {
	r := 5.0
	target := NewCircleTarget(Vec2{X: 0, Y: 0}, &r)
	d := target.DistanceTo(Vec2{X: 1, Y: 0})
	assert.True(t, math.IsInf(d, -1))
}

func TestPolygonTargetSatisfied(t *testing.T) {
	target := NewPolygonTarget([]Vec2{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	assert.True(t, target.Satisfied([]Vec2{{5, 5}}))
	assert.False(t, target.Satisfied([]Vec2{{5, 5}, {20, 20}}))
}
