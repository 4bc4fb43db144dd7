package loop

import (
	"time"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// promoteScheduled implements spec.md 4.10 step 1. Callers must hold d.mu.
func (d *Driver) promoteScheduled(now time.Time) {
	for i := range d.jobs {
		job := &d.jobs[i]
		if job.Status != core.JobScheduled || job.StartAt == nil || job.StartAt.After(now) {
			continue
		}
		for j := range d.jobs {
			if j != i {
				d.jobs[j].IsActive = false
			}
		}
		job.Status = core.JobRunning
		job.IsActive = true
		job.UpdatedAt = now
		d.markDirty(job.ID)
		d.remaining.reset()
	}
}

// completeSatisfied implements spec.md 4.10 step 2. Callers must hold d.mu.
func (d *Driver) completeSatisfied(now time.Time) {
	positions := d.world.Snapshot().P
	for i := range d.jobs {
		job := &d.jobs[i]
		if job.Status != core.JobRunning || !job.IsActive || job.Target == nil {
			continue
		}
		if job.Target.Satisfied(positions) {
			job.Status = core.JobCompleted
			job.IsActive = false
			job.CompletedAt = &now
			zero := 0.0
			job.RemainingTime = &zero
			job.UpdatedAt = now
			d.markDirty(job.ID)
			d.remaining.reset()
		}
	}
}

// activeJob returns a pointer into d.jobs for the unique active job, or nil.
// Callers must hold d.mu.
func (d *Driver) activeJob() *core.Job {
	for i := range d.jobs {
		if d.jobs[i].IsActive {
			return &d.jobs[i]
		}
	}
	return nil
}

// syncActiveJobToWorld implements spec.md 4.10 step 3. Callers must hold d.mu.
func (d *Driver) syncActiveJobToWorld() {
	job := d.activeJob()
	want := 0
	if job != nil {
		want = job.Drones
	}
	if want != len(d.world.Snapshot().D) {
		d.world.SetControllerCount(want)
	}
}

// updateRemainingTime folds the active job's current worst-case goal distance
// into the remaining-time estimator (SPEC_FULL.md 4.12) and marks the job for
// a persistence sync, so remaining_time is synced once per outer tick.
// Callers must hold d.mu.
func (d *Driver) updateRemainingTime(dt float64) {
	job := d.activeJob()
	if job == nil || job.Target == nil {
		return
	}
	maxDGoal := maxGoalDistance(d.world.Snapshot().P, job.Target)
	job.RemainingTime = d.remaining.update(maxDGoal, dt)
	d.markDirty(job.ID)
}

// markDirty records that job id changed this tick and needs a persistence
// sync (spec.md 5, 6).
func (d *Driver) markDirty(id string) {
	d.dirty[id] = struct{}{}
}

// Cancel transitions job id to cancelled (spec.md 5: "A job in status running
// transitions to cancelled on explicit user action... deactivates it"). A
// cancelled-while-scheduled job stays cancelled and is never promoted. No-op
// for jobs already completed or cancelled, or unknown IDs.
func (d *Driver) Cancel(id string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i := range d.jobs {
		job := &d.jobs[i]
		if job.ID != id {
			continue
		}
		if job.Status == core.JobCompleted || job.Status == core.JobCancelled {
			return
		}
		job.Status = core.JobCancelled
		job.IsActive = false
		job.UpdatedAt = time.Now()
		d.markDirty(id)
		d.remaining.reset()
		return
	}
}
