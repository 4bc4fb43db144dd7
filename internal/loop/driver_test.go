package loop

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/planning"
	"github.com/JAVillarino/The-Drone-Rangers/internal/sim"
	"github.com/JAVillarino/The-Drone-Rangers/internal/store"
)

func newTestDriver(t *testing.T, n, m int) *Driver {
	t.Helper()
	cfg := core.DefaultWorldConfig()
	cfg.KNN = n - 1

	p := make([]core.Vec2, n)
	for i := range p {
		p[i] = core.Vec2{X: float64(i), Y: 0}
	}
	d := make([]core.Vec2, m)
	for j := range d {
		d[j] = core.Vec2{X: 0, Y: 30 + float64(j)}
	}

	world, err := sim.NewWorld(cfg, p, d)
	require.NoError(t, err)

	policy := planning.NewPolicy(core.DefaultPolicyConfigForFlock(n, cfg.Ra, cfg.UMax))
	syncer := store.NewMemorySyncer()
	log := zerolog.Nop()

	return NewDriver(world, policy, syncer, log, Config{OuterHz: 20, InnerSteps: 3})
}

func ptrF(f float64) *float64 { return &f }

// spec.md 8 "trivial converge": N agents already satisfying the goal at
// t=0 should never receive a DronePositions plan, and the job completes
// within one tick.
func TestTrivialConvergeCompletesImmediately(t *testing.T) {
	d := newTestDriver(t, 5, 1)

	target := core.NewCircleTarget(core.Vec2{X: 2, Y: 0}, ptrF(50))
	job := core.NewJob("job-1", 1, &target)
	job.Status = core.JobRunning
	job.IsActive = true
	d.SubmitJob(job)

	d.Tick()

	jobs := d.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, core.JobCompleted, jobs[0].Status)
	assert.False(t, jobs[0].IsActive)
	require.NotNil(t, jobs[0].RemainingTime)
	assert.Equal(t, 0.0, *jobs[0].RemainingTime)
}

// At most one job may be active at a time (spec.md 4.10 step 1).
func TestAtMostOneActiveJob(t *testing.T) {
	d := newTestDriver(t, 5, 1)

	far := core.NewCircleTarget(core.Vec2{X: 1000, Y: 1000}, ptrF(1))
	job1 := core.NewJob("job-1", 1, &far)
	job1.Status = core.JobRunning
	job1.IsActive = true
	d.SubmitJob(job1)

	past := time.Now().Add(-time.Second)
	job2 := core.NewJob("job-2", 1, &far)
	job2.Status = core.JobScheduled
	job2.StartAt = &past
	d.SubmitJob(job2)

	d.Tick()

	jobs := d.Jobs()
	activeCount := 0
	for _, j := range jobs {
		if j.IsActive {
			activeCount++
		}
	}
	assert.LessOrEqual(t, activeCount, 1)
}

// Cancel must not promote a scheduled-then-cancelled job on later ticks.
func TestCancelScheduledNeverPromotes(t *testing.T) {
	d := newTestDriver(t, 5, 1)

	far := core.NewCircleTarget(core.Vec2{X: 1000, Y: 1000}, ptrF(1))
	past := time.Now().Add(-time.Second)
	job := core.NewJob("job-1", 1, &far)
	job.Status = core.JobScheduled
	job.StartAt = &past
	d.SubmitJob(job)

	d.Cancel("job-1")
	d.Tick()

	jobs := d.Jobs()
	require.Len(t, jobs, 1)
	assert.Equal(t, core.JobCancelled, jobs[0].Status)
	assert.False(t, jobs[0].IsActive)
}

// Controller count tracks the active job's Drones field (spec.md 4.10 step 3).
func TestTickSyncsControllerCount(t *testing.T) {
	d := newTestDriver(t, 5, 1)

	far := core.NewCircleTarget(core.Vec2{X: 1000, Y: 1000}, ptrF(1))
	job := core.NewJob("job-1", 3, &far)
	job.Status = core.JobRunning
	job.IsActive = true
	d.SubmitJob(job)

	d.Tick()

	snap := d.Snapshot()
	assert.Len(t, snap.D, 3)
}

// Goal monotonicity (spec.md 8): once a job is marked completed, the world
// snapshot at that instant must actually satisfy its target.
func TestGoalMonotonicityOnCompletion(t *testing.T) {
	d := newTestDriver(t, 5, 1)

	target := core.NewCircleTarget(core.Vec2{X: 2, Y: 0}, ptrF(50))
	job := core.NewJob("job-1", 1, &target)
	job.Status = core.JobRunning
	job.IsActive = true
	d.SubmitJob(job)

	d.Tick()

	jobs := d.Jobs()
	require.Len(t, jobs, 1)
	require.Equal(t, core.JobCompleted, jobs[0].Status)

	snap := d.Snapshot()
	assert.True(t, target.Satisfied(snap.P))
}

// Snapshot returns value copies: mutating them must not affect the live state.
func TestSnapshotIsIndependentCopy(t *testing.T) {
	d := newTestDriver(t, 5, 1)
	snap := d.Snapshot()
	require.NotEmpty(t, snap.P)
	snap.P[0] = core.Vec2{X: 999, Y: 999}

	snap2 := d.Snapshot()
	assert.NotEqual(t, core.Vec2{X: 999, Y: 999}, snap2.P[0])
}
