// Package loop implements the outer simulation loop: job lifecycle
// management, the fixed-cadence simulation thread, and snapshot publication
// (spec.md 4.10, 5, 6), grounded on orange-dot-mapf-het/internal/sim.Simulator's
// mutex-protected Run/step/Metrics shape.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
	"github.com/JAVillarino/The-Drone-Rangers/internal/planning"
	"github.com/JAVillarino/The-Drone-Rangers/internal/sim"
	"github.com/JAVillarino/The-Drone-Rangers/internal/store"
	"github.com/JAVillarino/The-Drone-Rangers/internal/telemetry"
)

// Config tunes the outer loop's cadence (spec.md 5: "~20 Hz outer tick, 15
// inner microsteps").
type Config struct {
	OuterHz    float64
	InnerSteps int
}

// DefaultConfig returns the spec's nominal cadence.
func DefaultConfig() Config {
	return Config{OuterHz: 20, InnerSteps: 15}
}

// Driver owns World and the job cache behind a single exclusive lock
// (spec.md 5). It is the sole external-facing component: callers submit and
// cancel jobs, read snapshots, and start/stop the simulation thread.
type Driver struct {
	mu sync.Mutex

	world  *sim.World
	policy *planning.Policy
	syncer store.JobSyncer
	log    zerolog.Logger
	health *telemetry.TickHealth

	cfg    Config
	jobs   []core.Job
	dirty  map[string]struct{}
	paused bool

	remaining remainingTimeEstimator
}

// NewDriver wires a World, a Policy, and a persistence hook into a Driver.
// It also wires World's plan-contract-violation and non-finite-agent
// callbacks to d.log (spec.md 7: "the loop driver logs, drops the plan, and
// continues with DoNothing semantics"), so any caller gets that logging for
// free rather than having to wire it at the call site.
func NewDriver(world *sim.World, policy *planning.Policy, syncer store.JobSyncer, log zerolog.Logger, cfg Config) *Driver {
	if cfg.InnerSteps <= 0 {
		cfg = DefaultConfig()
	}
	d := &Driver{
		world:  world,
		policy: policy,
		syncer: syncer,
		log:    log,
		health: telemetry.NewTickHealth(log, 0.75*cfg.OuterHz),
		cfg:    cfg,
		dirty:  make(map[string]struct{}),
	}

	world.OnPlanDropped = func(wantM, gotPositions, gotRepulsion int) {
		d.log.Warn().Int("want_m", wantM).Int("got_positions", gotPositions).Int("got_repulsion", gotRepulsion).Msg("plan dropped")
	}
	world.OnNonFiniteAgent = func(agentIndex int) {
		d.log.Debug().Int("agent", agentIndex).Msg("agent position recovered from non-finite state")
	}

	return d
}

// SubmitJob adds job to the cache. Its initial status/is_active are taken
// as given by the caller (spec.md 6: "implementations persist and retrieve
// jobs by opaque ID; only status/field fidelity matters to the core"). A job
// whose target is neither circle nor polygon is rejected (spec.md 7: "Target
// type error").
func (d *Driver) SubmitJob(job core.Job) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if job.Target != nil && job.Target.Kind != core.TargetCircle && job.Target.Kind != core.TargetPolygon {
		d.log.Warn().Str("job", job.ID).Msg("job discarded: target is neither circle nor polygon")
		return
	}
	d.jobs = append(d.jobs, job)
	d.markDirty(job.ID)
}

// Jobs returns a copy of the job cache.
func (d *Driver) Jobs() []core.Job {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]core.Job(nil), d.jobs...)
}

// SetPaused toggles whether Tick advances the simulation.
func (d *Driver) SetPaused(paused bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.paused = paused
}

// Tick runs one outer tick of spec.md 4.10: job promotion, completion
// checking, controller-count sync, K inner World.Step microsteps, and
// persistence syncs for anything that changed. Persistence syncs are
// dispatched fire-and-forget after the lock is released (spec.md 5).
func (d *Driver) Tick() {
	tickStart := time.Now()

	d.mu.Lock()
	now := time.Now()

	if d.paused {
		d.mu.Unlock()
		return
	}

	d.promoteScheduled(now)
	d.completeSatisfied(now)
	d.syncActiveJobToWorld()

	dt := d.world.Config().Dt
	for i := 0; i < d.cfg.InnerSteps; i++ {
		view := d.world.Snapshot()
		plan := d.policy.Plan(view, d.jobs, dt)
		d.world.Step(plan)
	}
	d.updateRemainingTime(dt * float64(d.cfg.InnerSteps))

	toSync := d.drainDirtyLocked()
	d.mu.Unlock()

	for _, job := range toSync {
		go d.syncOne(job)
	}

	d.health.Observe(time.Since(tickStart))
}

func (d *Driver) syncOne(job core.Job) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := d.syncer.Sync(ctx, job); err != nil {
		d.log.Warn().Err(err).Str("job", job.ID).Msg("job sync failed")
	}
}

// drainDirtyLocked returns copies of every job touched since the last drain
// and clears the dirty set. Callers must hold d.mu.
func (d *Driver) drainDirtyLocked() []core.Job {
	if len(d.dirty) == 0 {
		return nil
	}
	out := make([]core.Job, 0, len(d.dirty))
	for i := range d.jobs {
		if _, ok := d.dirty[d.jobs[i].ID]; ok {
			out = append(out, d.jobs[i])
		}
	}
	d.dirty = make(map[string]struct{})
	return out
}

// Run drives Tick on the configured outer cadence until ctx is cancelled
// (spec.md 5: "Advances the loop driver on a fixed cadence").
func (d *Driver) Run(ctx context.Context) {
	interval := time.Duration(float64(time.Second) / d.cfg.OuterHz)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.Tick()
		}
	}
}

// Snapshot returns the full external read contract (spec.md 6), a value
// copy taken under the lock. The repulsion flags, target-sheep assignment,
// and cohesion debug fields come from a plan that Snapshot computes on the
// current world state at call time; World itself keeps no target-sheep
// assignment or debug fields.
func (d *Driver) Snapshot() core.Snapshot {
	d.mu.Lock()
	defer d.mu.Unlock()

	view := d.world.Snapshot()
	cfg := d.world.Config()
	plan := d.policy.Plan(view, d.jobs, cfg.Dt)

	snap := core.Snapshot{
		P:         append([]core.Vec2(nil), d.world.P...),
		V:         append([]core.Vec2(nil), d.world.V...),
		D:         append([]core.Vec2(nil), d.world.D...),
		Obstacles: append([]geomkit.Polygon(nil), cfg.Obstacles...),
		Jobs:      append([]core.Job(nil), d.jobs...),
		Paused:    d.paused,
	}

	if plan.Kind == core.PlanDronePositions {
		snap.ApplyRepulsion = append([]bool(nil), plan.ApplyRepulsion...)
		snap.TargetSheepIndices = append([]int(nil), plan.TargetSheepIndices...)
		snap.GCM = plan.Debug.GCM
		snap.Radius = plan.Debug.Radius
	} else {
		snap.ApplyRepulsion = make([]bool, len(d.world.D))
		snap.TargetSheepIndices = make([]int, len(d.world.D))
		for i := range snap.TargetSheepIndices {
			snap.TargetSheepIndices[i] = -1
		}
	}

	return snap
}
