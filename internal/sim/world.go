// Package sim implements the flock dynamics: World owns agent and controller
// state and advances one tick per World.Step call (spec.md 4.3-4.7, 4.9).
package sim

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
	"github.com/JAVillarino/The-Drone-Rangers/internal/spatial"
)

const (
	rateUp   = 0.5           // flock-factor rise rate, s^-1
	rateDown = 1.0 / 60.0    // flock-factor decay rate, s^-1
	decay    = 0.80          // grazing velocity low-pass factor
	eps      = 1e-9
)

// PlanDroppedFunc is invoked when a DronePositions plan fails its contract
// check (spec.md 7: "fatal for the tick"). The tick proceeds with DoNothing
// semantics regardless.
type PlanDroppedFunc func(wantM, gotPositions, gotRepulsion int)

// NonFiniteAgentFunc is invoked when an agent's position becomes non-finite
// and is recovered by teleporting to the rectangle center (spec.md 7).
type NonFiniteAgentFunc func(agentIndex int)

// World owns the flock's positions, velocities, and per-agent flock factor,
// plus controller positions and repulsion flags. Construct with NewWorld;
// callers must serialize all access to World externally (the loop driver is
// the sole owner, under its single lock - see spec.md 5).
type World struct {
	cfg core.WorldConfig

	P     []core.Vec2
	V     []core.Vec2
	Flock []float64

	D              []core.Vec2
	ApplyRepulsion []bool

	idx *spatial.Index
	rng *rand.Rand

	// per-tick scratch, preallocated once (spec.md 9).
	dMinScratch []float64

	OnPlanDropped    PlanDroppedFunc
	OnNonFiniteAgent NonFiniteAgentFunc
}

// NewWorld validates cfg and the initial snapshot and constructs a World.
// Configuration errors (spec.md 7) are returned, never panicked.
func NewWorld(cfg core.WorldConfig, initialP, initialD []core.Vec2) (*World, error) {
	n := len(initialP)
	m := len(initialD)

	if cfg.KNN > n-1 {
		return nil, fmt.Errorf("sim: k_nn (%d) exceeds N-1 (%d)", cfg.KNN, n-1)
	}
	if cfg.Ra <= 0 || cfg.Rs <= 0 || cfg.RAttr <= 0 {
		return nil, fmt.Errorf("sim: interaction radii must be positive (ra=%g rs=%g r_attr=%g)", cfg.Ra, cfg.Rs, cfg.RAttr)
	}
	for _, poly := range cfg.Obstacles {
		if len(poly.Vertices) < 3 {
			return nil, fmt.Errorf("sim: obstacle polygon has fewer than 3 vertices")
		}
	}
	for i, p := range initialP {
		if !p.IsFinite() {
			return nil, fmt.Errorf("sim: initial agent position %d is non-finite", i)
		}
	}
	for j, p := range initialD {
		if !p.IsFinite() {
			return nil, fmt.Errorf("sim: initial controller position %d is non-finite", j)
		}
	}

	w := &World{
		cfg:            cfg,
		P:              append([]core.Vec2(nil), initialP...),
		V:              make([]core.Vec2, n),
		Flock:          make([]float64, n),
		D:              append([]core.Vec2(nil), initialD...),
		ApplyRepulsion: make([]bool, m),
		idx:            spatial.NewIndex(n),
		rng:            rand.New(rand.NewSource(cfg.Seed)),
		dMinScratch:    make([]float64, n),
	}

	w.sanitizeInitialPositions()

	return w, nil
}

// sanitizeInitialPositions implements spec.md 4.6: one-shot, uncapped
// projection of any agent that starts inside a polygon's keep-out band.
func (w *World) sanitizeInitialPositions() {
	if len(w.cfg.Obstacles) == 0 {
		return
	}
	for i, p := range w.P {
		q, n, s := geomkit.NearestPolygon(p, w.cfg.Obstacles)
		if s < -w.cfg.KeepOut {
			w.P[i] = q.Add(n.Scale(w.cfg.KeepOut + 1e-3))
		}
	}
}

// Step advances the simulation by one tick per spec.md 4.3.
func (w *World) Step(plan core.Plan) {
	w.applyPlan(plan)
	w.advanceAgents()
}

func (w *World) applyPlan(plan core.Plan) {
	m := len(w.D)
	switch plan.Kind {
	case core.PlanDoNothing:
		for j := range w.ApplyRepulsion {
			w.ApplyRepulsion[j] = false
		}
	case core.PlanDronePositions:
		if len(plan.Positions) != m || len(plan.ApplyRepulsion) != m {
			if w.OnPlanDropped != nil {
				w.OnPlanDropped(m, len(plan.Positions), len(plan.ApplyRepulsion))
			}
			for j := range w.ApplyRepulsion {
				w.ApplyRepulsion[j] = false
			}
			return
		}
		for j := 0; j < m; j++ {
			w.D[j] = w.clampControllerPosition(plan.Positions[j])
			w.ApplyRepulsion[j] = plan.ApplyRepulsion[j]
		}
	default:
		for j := range w.ApplyRepulsion {
			w.ApplyRepulsion[j] = false
		}
	}
}

func (w *World) advanceAgents() {
	n := len(w.P)
	if n == 0 {
		return
	}

	w.idx.Refresh(w.P, w.cfg.KNN, w.cfg.Ra)

	w.computePressure()

	vFar := make([]core.Vec2, n)
	vNear := make([]core.Vec2, n)
	for i := 0; i < n; i++ {
		delta := w.dMinScratch[i] - w.Flock[i]
		rate := rateDown
		if delta > 0 {
			rate = rateUp
		}
		w.Flock[i] = clip(w.Flock[i]+rate*delta*w.cfg.Dt, 0, 1)

		vFar[i] = w.grazingVelocity(i)
		vNear[i] = w.flockingVelocity(i)
	}

	for i := 0; i < n; i++ {
		vNew := vNear[i].Scale(w.Flock[i]).Add(vFar[i].Scale(1 - w.Flock[i]))
		w.P[i] = w.P[i].Add(vNew.Scale(w.cfg.Dt))
		w.V[i] = vNew
	}

	w.enforceKeepOut()
	w.enforceBoundary()
	w.sanitizeNonFinite()
}

// computePressure fills w.dMinScratch with p_i, the per-agent union-of-events
// controller pressure scalar from spec.md 4.3 steps 2-3 (despite its name the
// field holds p_i, not a distance; advanceAgents uses it as the flock-factor
// target).
func (w *World) computePressure() {
	for i, p := range w.P {
		prod := 1.0
		for j, d := range w.D {
			if !w.ApplyRepulsion[j] {
				continue
			}
			dist := p.Dist(d)
			prod *= 1 - smoothPush(dist, w.cfg.Rs)
		}
		w.dMinScratch[i] = 1 - prod
	}
}

func smoothPush(d, r float64) float64 {
	v := 1 - d/r
	if v < 0 {
		return 0
	}
	return v
}

func clip(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// closeRepulsion implements spec.md 4.4: sum of unit vectors from each
// close neighbor (strictly within ra, excluding i) to agent i. Always a
// brute scan, never the cached index, per spec.md 4.4's explicit rationale.
func (w *World) closeRepulsion(i int) core.Vec2 {
	var r core.Vec2
	ra2 := w.cfg.Ra * w.cfg.Ra
	pi := w.P[i]
	for j, pj := range w.P {
		if j == i {
			continue
		}
		d2 := pi.Dist2(pj)
		if d2 > 0 && d2 < ra2 {
			r = r.Add(pi.Sub(pj).Scale(1 / math.Sqrt(d2)))
		}
	}
	return r
}

// neighborSet returns up to k_nn cached-or-scanned nearest neighbors of i,
// further filtered to those within r_attr (spec.md 4.2, 4.3b).
func (w *World) neighborSet(i int) []int {
	cand := w.idx.KNN(w.P, i, w.cfg.KNN)
	out := cand[:0:0]
	pi := w.P[i]
	for _, j := range cand {
		if pi.Dist(w.P[j]) <= w.cfg.RAttr {
			out = append(out, j)
		}
	}
	return out
}

// nearestObstacle returns the avoidance normal, tangent, and signed distance
// used identically by the grazing and flocking rules (spec.md 4.3a, 4.3b).
// ok is false when there are no obstacles configured, in which case callers
// must skip obstacle steering entirely.
func (w *World) nearestObstacle(p core.Vec2) (n, t core.Vec2, s float64, ok bool) {
	if len(w.cfg.Obstacles) == 0 {
		return core.Vec2{}, core.Vec2{}, math.Inf(1), false
	}
	_, normal, signed, found := geomkit.NearestPolygon(p, w.cfg.Obstacles)
	if !found {
		return core.Vec2{}, core.Vec2{}, math.Inf(1), false
	}
	return normal, geomkit.Tangent(normal), signed, true
}

func (w *World) noise2D(scale float64) core.Vec2 {
	return core.Vec2{X: w.rng.NormFloat64() * scale, Y: w.rng.NormFloat64() * scale}
}

// grazingVelocity implements spec.md 4.3a.
func (w *World) grazingVelocity(i int) core.Vec2 {
	if w.rng.Float64() >= w.cfg.GrazeP {
		// Decay branch: taken with probability 1 - graze_p.
		return w.V[i].Scale(decay)
	}

	h := w.closeRepulsion(i).Scale(w.cfg.Wr).Add(w.noise2D(0.2))
	h = h.Normalized()

	if nObs, tObs, sObs, ok := w.nearestObstacle(w.P[i]); ok {
		if h.Dot(nObs) < 0 {
			h = h.Add(tObs.Scale(w.cfg.WTan))
		}
		h = h.Add(nObs.Scale(0.5 * w.cfg.WObs))
		if sObs <= w.cfg.KeepOut {
			nHat := nObs.Normalized()
			h = h.Sub(nHat.Scale(h.Dot(nHat)))
		}
	}
	h = h.Normalized()

	vDes := h.Scale(w.cfg.VMax)
	v := w.V[i].Scale(decay).Add(vDes.Scale(1 - decay))
	return clampSpeed(v, w.cfg.VMax)
}

// flockingVelocity implements spec.md 4.3b.
func (w *World) flockingVelocity(i int) core.Vec2 {
	neighbors := w.neighborSet(i)

	r := w.closeRepulsion(i)

	var a core.Vec2
	if len(neighbors) > 0 {
		var lcm core.Vec2
		for _, j := range neighbors {
			lcm = lcm.Add(w.P[j])
		}
		lcm = lcm.Scale(1 / float64(len(neighbors)))
		a = lcm.Sub(w.P[i])
	}

	var s core.Vec2
	for j, d := range w.D {
		if !w.ApplyRepulsion[j] {
			continue
		}
		dist := w.P[i].Dist(d)
		if dist < eps {
			continue
		}
		s = s.Add(w.P[i].Sub(d).Scale(smoothPush(dist, w.cfg.Rs) / dist))
	}

	var al core.Vec2
	if len(neighbors) > 0 {
		var meanV core.Vec2
		for _, j := range neighbors {
			meanV = meanV.Add(w.V[j])
		}
		al = meanV.Scale(1 / float64(len(neighbors))).Normalized()
	}

	prev := w.V[i].Normalized()

	h := r.Scale(w.cfg.Wr).
		Add(a.Scale(w.cfg.Wa)).
		Add(s.Scale(w.cfg.Ws)).
		Add(prev.Scale(w.cfg.Wm)).
		Add(al.Scale(w.cfg.WAlign))

	if nObs, tObs, _, ok := w.nearestObstacle(w.P[i]); ok {
		intoWall := h.Dot(nObs) < 0
		if intoWall {
			h = h.Add(tObs.Scale(w.cfg.WTan))
		}
		h = h.Add(nObs.Scale(w.cfg.WObs))
	}

	noiseScale := w.cfg.Sigma * math.Sqrt(w.cfg.Dt)
	if w.V[i].Len() > 0.3*w.cfg.VMax {
		noiseScale *= 0.5
	}
	h = h.Add(w.noise2D(noiseScale))

	h = h.Normalized()
	return h.Scale(w.cfg.VMax)
}

func clampSpeed(v core.Vec2, vmax float64) core.Vec2 {
	l := v.Len()
	if l <= vmax || l < eps {
		return v
	}
	return v.Scale(vmax / l)
}

// Snapshot returns a read-only copy of agent/controller state for the
// planning policy (spec.md 4.8).
func (w *World) Snapshot() core.WorldView {
	return core.WorldView{
		P: append([]core.Vec2(nil), w.P...),
		D: append([]core.Vec2(nil), w.D...),
	}
}
