// Package planning implements ShepherdPolicy.plan: a pure function from a
// world snapshot, the active job list, and dt to a Plan (spec.md 4.8).
package planning

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// Policy computes per-tick drone commands. It holds only configuration and
// is safe for concurrent use by multiple callers, since Plan never mutates
// shared state (spec.md 9: "the policy takes a world snapshot by value").
type Policy struct {
	cfg core.PolicyConfig
}

// NewPolicy constructs a Policy from cfg.
func NewPolicy(cfg core.PolicyConfig) *Policy {
	return &Policy{cfg: cfg}
}

// Config returns the policy's configuration.
func (p *Policy) Config() core.PolicyConfig { return p.cfg }

// lerpClamped is L(a,b;t1,t2;t) from spec.md 4.8.
func lerpClamped(a, b, t1, t2, t float64) float64 {
	span := t2 - t1
	var frac float64
	if span != 0 {
		frac = (t - t1) / span
	}
	if frac < 0 {
		frac = 0
	} else if frac > 1 {
		frac = 1
	}
	return a + (b-a)*frac
}

// Plan implements spec.md 4.8 in full: job selection, candidate scoring,
// masked-greedy drone<->sheep assignment, standoff waypoints, repulsion
// gating, and drone motion.
func (p *Policy) Plan(world core.WorldView, jobs []core.Job, dt float64) core.Plan {
	job := p.selectJob(world.P, jobs)
	if job == nil {
		return core.DoNothingPlan()
	}

	n := len(world.P)
	m := len(world.D)

	g := core.Mean(world.P)

	dG := make([]float64, n)
	dGoal := make([]float64, n)
	for i, pt := range world.P {
		dG[i] = pt.Dist(g)
		dGoal[i] = job.Target.DistanceTo(pt)
	}

	maxDG := maxFinite(dG)
	meanDG := meanFinite(dG)
	maxDGoal := maxFinite(dGoal)

	fN := p.cfg.FN
	cohesiveness := safeDiv(fN, maxDG)
	meanCohesiveness := safeDiv(fN, meanDG)
	goalDistanceRatio := safeDiv(maxDGoal, fN)

	wGCM := lerpClamped(0.8, 0.6, 0.3, 1.5, meanCohesiveness) * lerpClamped(0.5, 1, 1, 3, goalDistanceRatio)
	wGoal := lerpClamped(0.2, 0.4, 0.3, 1.5, meanCohesiveness)
	wCloseBase := lerpClamped(1, 0.2, 0.3, 1.5, meanCohesiveness) * lerpClamped(0.2, 1, 2, 4, goalDistanceRatio)

	intrinsic := make([]float64, n)
	for i := range intrinsic {
		intrinsic[i] = wGCM*dG[i] + wGoal*dGoal[i]
	}

	targetSheep := assign(world.P, world.D, intrinsic, wCloseBase, m)

	waypoints := make([]core.Vec2, m)
	for j, i := range targetSheep {
		if i < 0 {
			waypoints[j] = core.Vec2{X: math.NaN(), Y: math.NaN()}
			continue
		}
		dir := g.Sub(world.P[i]).Normalized()
		waypoints[j] = world.P[i].Sub(dir.Scale(p.cfg.CollectStandoff))
	}

	applyRepulsion := p.gateRepulsion(world.D, waypoints, cohesiveness)

	positions := p.moveDrones(world.P, world.D, waypoints, applyRepulsion, dt)

	return core.NewDronePositionsPlan(positions, applyRepulsion, targetSheep, core.PlanDebug{GCM: g, Radius: fN})
}

// selectJob implements spec.md 4.8 step 1.
func (p *Policy) selectJob(positions []core.Vec2, jobs []core.Job) *core.Job {
	for i := range jobs {
		j := &jobs[i]
		if !j.IsActive || j.Target == nil {
			continue
		}
		if !j.Target.Satisfied(positions) {
			return j
		}
	}
	return nil
}

func maxFinite(xs []float64) float64 {
	best := math.Inf(-1)
	for _, x := range xs {
		if math.IsInf(x, -1) {
			continue
		}
		if x > best {
			best = x
		}
	}
	if math.IsInf(best, -1) {
		return 0
	}
	return best
}

func meanFinite(xs []float64) float64 {
	sum, n := 0.0, 0
	for _, x := range xs {
		if math.IsInf(x, -1) {
			continue
		}
		sum += x
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}
