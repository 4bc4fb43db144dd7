package planning

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

func ringPositions(n int, radius float64) []core.Vec2 {
	p := make([]core.Vec2, n)
	for i := range p {
		theta := 2 * math.Pi * float64(i) / float64(n)
		p[i] = core.Vec2{X: radius * math.Cos(theta), Y: radius * math.Sin(theta)}
	}
	return p
}

func testPolicy() *Policy {
	return NewPolicy(core.DefaultPolicyConfigForFlock(10, 2.0, 6.0))
}

func TestAssignmentUniqueness(t *testing.T) {
	p := testPolicy()
	r := 2.0
	job := core.NewJob("j1", 2, ptrTarget(core.NewCircleTarget(core.Vec2{}, &r)))
	job.IsActive = true
	job.Status = core.JobRunning

	view := core.WorldView{
		P: ringPositions(10, 20),
		D: []core.Vec2{{X: 50, Y: 0}, {X: -50, Y: 0}},
	}

	plan := p.Plan(view, []core.Job{job}, 0.05)
	assert.Equal(t, core.PlanDronePositions, plan.Kind)

	seen := map[int]bool{}
	for _, idx := range plan.TargetSheepIndices {
		if idx < 0 {
			continue
		}
		assert.False(t, seen[idx], "sheep %d assigned to more than one drone", idx)
		seen[idx] = true
	}
}

func TestTwoControllerAssignmentDistinctSheep(t *testing.T) {
	p := testPolicy()
	r := 2.0
	job := core.NewJob("j1", 2, ptrTarget(core.NewCircleTarget(core.Vec2{}, &r)))
	job.IsActive = true
	job.Status = core.JobRunning

	view := core.WorldView{
		P: ringPositions(10, 20),
		D: []core.Vec2{{X: 50, Y: 0}, {X: -50, Y: 0}},
	}

	plan := p.Plan(view, []core.Job{job}, 0.05)
	assert.Equal(t, core.PlanDronePositions, plan.Kind)
	assert.Len(t, plan.TargetSheepIndices, 2)
	assert.NotEqual(t, -1, plan.TargetSheepIndices[0])
	assert.NotEqual(t, -1, plan.TargetSheepIndices[1])
	assert.NotEqual(t, plan.TargetSheepIndices[0], plan.TargetSheepIndices[1])
}

func TestSafetyStopHoldsPosition(t *testing.T) {
	cfg := core.DefaultPolicyConfigForFlock(1, 2.0, 6.0)
	p := NewPolicy(cfg)

	r := 1.0
	job := core.NewJob("j1", 1, ptrTarget(core.NewCircleTarget(core.Vec2{X: 100, Y: 0}, &r)))
	job.IsActive = true
	job.Status = core.JobRunning

	drone := core.Vec2{X: 0, Y: cfg.TooClose / 2}
	view := core.WorldView{
		P: []core.Vec2{{X: 0, Y: 0}},
		D: []core.Vec2{drone},
	}

	plan := p.Plan(view, []core.Job{job}, 0.05)
	assert.Equal(t, core.PlanDronePositions, plan.Kind)
	assert.Equal(t, drone, plan.Positions[0])
}

func TestFlyoverGating(t *testing.T) {
	cfg := core.DefaultPolicyConfigForFlock(50, 2.0, 6.0)
	p := NewPolicy(cfg)

	r := 1.0
	job := core.NewJob("j1", 1, ptrTarget(core.NewCircleTarget(core.Vec2{}, &r)))
	job.IsActive = true
	job.Status = core.JobRunning

	sheep := make([]core.Vec2, 50)
	for i := range sheep {
		sheep[i] = core.Vec2{X: float64(i%5) * 0.1, Y: float64(i/5) * 0.1}
	}
	sheep = append(sheep[:49], core.Vec2{X: 30, Y: 0})

	drone := core.Vec2{X: 200, Y: 200}
	view := core.WorldView{P: sheep, D: []core.Vec2{drone}}

	plan := p.Plan(view, []core.Job{job}, 0.05)
	assert.Equal(t, core.PlanDronePositions, plan.Kind)
	assert.False(t, plan.ApplyRepulsion[0], "drone far from its waypoint should not apply repulsion")

	// Walk the drone toward its waypoint and confirm repulsion eventually engages.
	for tick := 0; tick < 2000; tick++ {
		drone = plan.Positions[0]
		view.D[0] = drone
		plan = p.Plan(view, []core.Job{job}, 0.05)
		if plan.ApplyRepulsion[0] {
			return
		}
	}
	t.Fatal("repulsion never engaged as the drone approached its waypoint")
}

func TestControllerSpeedCapHolds(t *testing.T) {
	p := testPolicy()
	r := 2.0
	job := core.NewJob("j1", 1, ptrTarget(core.NewCircleTarget(core.Vec2{}, &r)))
	job.IsActive = true
	job.Status = core.JobRunning

	view := core.WorldView{
		P: ringPositions(10, 20),
		D: []core.Vec2{{X: 50, Y: 0}},
	}
	dt := 0.05

	plan := p.Plan(view, []core.Job{job}, dt)
	moved := plan.Positions[0].Dist(view.D[0])
	assert.LessOrEqual(t, moved, p.cfg.UMax*dt+1e-9)
}

func ptrTarget(t core.Target) *core.Target { return &t }
