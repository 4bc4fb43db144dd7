package core

import "time"

// JobStatus is the status lifecycle a Job moves through (spec.md 3, 4.10).
type JobStatus int

const (
	JobPending JobStatus = iota
	JobScheduled
	JobRunning
	JobCompleted
	JobCancelled
)

func (s JobStatus) String() string {
	switch s {
	case JobPending:
		return "pending"
	case JobScheduled:
		return "scheduled"
	case JobRunning:
		return "running"
	case JobCompleted:
		return "completed"
	case JobCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MaintainUntilReached is the sentinel MaintainUntil value meaning "hold the
// job active until the target region is satisfied", as opposed to a fixed
// wall-clock timestamp.
const MaintainUntilReached = "target_is_reached"

// Job is a unit of shepherding work: drive the flock into Target and hold it
// there until MaintainUntil is reached. The zero value is not a valid Job;
// construct with NewJob.
type Job struct {
	ID       string
	Target   *Target // nil means "no target configured yet"
	IsActive bool
	Drones   int
	Status   JobStatus

	StartAt       *time.Time
	CompletedAt   *time.Time
	RemainingTime *float64 // seconds; nil when not estimable

	// MaintainUntil is either MaintainUntilReached or an absolute timestamp
	// encoded as RFC3339; the loop driver does not currently act on a fixed
	// timestamp variant beyond storing it (spec.md scopes only goal-satisfaction
	// driven completion into the core), but the field is preserved for fidelity
	// with the external job record contract (spec.md 3, 6).
	MaintainUntil string

	ScenarioID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewJob constructs a pending Job with the caller-supplied id (cmd/shepherd
// generates it with google/uuid).
func NewJob(id string, drones int, target *Target) Job {
	now := timeNow()
	return Job{
		ID:            id,
		Target:        target,
		IsActive:      false,
		Drones:        drones,
		Status:        JobPending,
		MaintainUntil: MaintainUntilReached,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// timeNow is a seam so tests can observe deterministic timestamps if needed;
// production code always uses the wall clock.
var timeNow = time.Now
