package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

func newTestWorld(t *testing.T, n, m int) *World {
	t.Helper()
	cfg := core.DefaultWorldConfig()
	cfg.KNN = 3
	p := make([]core.Vec2, n)
	for i := range p {
		p[i] = core.Vec2{X: float64(i), Y: 0}
	}
	d := make([]core.Vec2, m)
	for j := range d {
		d[j] = core.Vec2{X: 100 + float64(j), Y: 100}
	}
	w, err := NewWorld(cfg, p, d)
	require.NoError(t, err)
	return w
}

func TestSpeedCapHolds(t *testing.T) {
	w := newTestWorld(t, 10, 1)
	plan := core.DoNothingPlan()
	for tick := 0; tick < 50; tick++ {
		w.Step(plan)
		for i, v := range w.V {
			assert.LessOrEqual(t, v.Len(), w.cfg.VMax+1e-6, "agent %d exceeded vmax at tick %d", i, tick)
		}
	}
}

func TestBoundaryConfinementReflect(t *testing.T) {
	w := newTestWorld(t, 5, 1)
	w.cfg.Boundary = core.BoundaryReflect
	w.cfg.Bounds = geomkit.Rect{XMin: -10, XMax: 10, YMin: -10, YMax: 10}

	plan := core.DoNothingPlan()
	for tick := 0; tick < 200; tick++ {
		w.Step(plan)
		for _, p := range w.P {
			assert.GreaterOrEqual(t, p.X, w.cfg.Bounds.XMin-1e-6)
			assert.LessOrEqual(t, p.X, w.cfg.Bounds.XMax+1e-6)
			assert.GreaterOrEqual(t, p.Y, w.cfg.Bounds.YMin-1e-6)
			assert.LessOrEqual(t, p.Y, w.cfg.Bounds.YMax+1e-6)
		}
	}
}

func TestMonotoneFlockBlend(t *testing.T) {
	w := newTestWorld(t, 8, 2)
	w.ApplyRepulsion[0] = true
	w.D[0] = w.P[0]

	plan := core.NewDronePositionsPlan(append([]core.Vec2(nil), w.D...), []bool{true, false}, []int{-1, -1}, core.PlanDebug{})
	maxRate := math.Max(rateUp, rateDown)
	for tick := 0; tick < 30; tick++ {
		before := append([]float64(nil), w.Flock...)
		w.Step(plan)
		for i := range w.Flock {
			delta := math.Abs(w.Flock[i] - before[i])
			assert.LessOrEqual(t, delta, maxRate*w.cfg.Dt+1e-9)
		}
	}
}

func TestKeepOutConvergence(t *testing.T) {
	cfg := core.DefaultWorldConfig()
	cfg.KNN = 0
	cfg.Obstacles = []geomkit.Polygon{geomkit.NewPolygon([]core.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1}, {X: -1, Y: 1}})}
	cfg.KeepOut = 0.5

	w, err := NewWorld(cfg, []core.Vec2{{X: 0, Y: 0}}, nil)
	require.NoError(t, err)

	plan := core.DoNothingPlan()
	exited := false
	for tick := 0; tick < 2000; tick++ {
		w.Step(plan)
		_, _, s := cfg.Obstacles[0].ClosestPoint(w.P[0])
		if cfg.KeepOut-s <= 0 {
			exited = true
			break
		}
	}
	assert.True(t, exited, "agent never exited the keep-out band")
}

func TestWrapContinuity(t *testing.T) {
	cfg := core.DefaultWorldConfig()
	cfg.Boundary = core.BoundaryWrap
	cfg.Bounds = geomkit.Rect{XMin: -10, XMax: 10, YMin: -10, YMax: 10}
	cfg.Dt = 0.2
	cfg.KNN = 0
	cfg.Sigma = 0
	cfg.GrazeP = 0 // force the decay (non-random) grazing branch

	w, err := NewWorld(cfg, []core.Vec2{{X: cfg.Bounds.XMax - 0.1, Y: 0}}, nil)
	require.NoError(t, err)
	w.V[0] = core.Vec2{X: cfg.VMax, Y: 0}

	w.Step(core.DoNothingPlan())

	// decay branch leaves v_far = decay*V, which after the (1-flock)-weighted
	// blend with an essentially-zero flock factor on tick one is the dominant
	// contribution; assert the wrap arithmetic itself rather than the exact
	// displacement, since decay damps the nominal vmax*dt overshoot.
	assert.GreaterOrEqual(t, w.P[0].X, cfg.Bounds.XMin-1e-9)
	assert.Less(t, w.P[0].X, cfg.Bounds.XMax)
}

func TestSetControllerCountGrowsAndShrinks(t *testing.T) {
	w := newTestWorld(t, 5, 1)
	w.SetControllerCount(3)
	assert.Len(t, w.D, 3)
	assert.Len(t, w.ApplyRepulsion, 3)

	w.SetControllerCount(1)
	assert.Len(t, w.D, 1)
	assert.Len(t, w.ApplyRepulsion, 1)
}

func TestObstacleDetourNeverExceedsCapPerTick(t *testing.T) {
	cfg := core.DefaultWorldConfig()
	cfg.Obstacles = []geomkit.Polygon{geomkit.NewPolygon([]core.Vec2{{X: 5, Y: -2}, {X: 10, Y: -2}, {X: 10, Y: 2}, {X: 5, Y: 2}})}
	cfg.KNN = 0

	w, err := NewWorld(cfg, []core.Vec2{{X: 0, Y: 0}}, []core.Vec2{{X: 20, Y: 0}})
	require.NoError(t, err)
	w.ApplyRepulsion[0] = true

	cap := 0.25 * w.cfg.VMax * w.cfg.Dt
	plan := core.NewDronePositionsPlan([]core.Vec2{{X: 20, Y: 0}}, []bool{true}, []int{-1}, core.PlanDebug{})
	for tick := 0; tick < 2000; tick++ {
		w.Step(plan)
		_, _, s := cfg.Obstacles[0].ClosestPoint(w.P[0])
		penetration := w.cfg.KeepOut - s
		if penetration > 0 {
			assert.LessOrEqual(t, penetration, 2*cap+1e-6)
		}
	}
}
