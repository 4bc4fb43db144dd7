package store

import (
	"encoding/json"
	"time"

	"github.com/uptrace/bun"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// jobRow is the bun-mapped row for a persisted Job, grounded on
// original_source/server/jobs_api.py's jobs table schema (target_x/y/radius,
// remaining_time, is_active, drones, status, start_at, completed_at,
// scenario_id, created_at, updated_at). target_vertices extends that schema
// with a JSON-encoded vertex ring so polygon targets round-trip too, which
// the original's circle-only schema never needed to support.
type jobRow struct {
	bun.BaseModel `bun:"table:shepherd_jobs,alias:j"`

	ID              string     `bun:"id,pk"`
	TargetKind      *string    `bun:"target_kind"`
	TargetX         *float64   `bun:"target_x"`
	TargetY         *float64   `bun:"target_y"`
	TargetRadius    *float64   `bun:"target_radius"`
	TargetVertices  *string    `bun:"target_vertices,type:jsonb"`
	RemainingTime   *float64   `bun:"remaining_time"`
	IsActive        bool       `bun:"is_active,notnull"`
	Drones          int        `bun:"drones,notnull"`
	Status          string     `bun:"status,notnull"`
	MaintainUntil   string     `bun:"maintain_until"`
	StartAt         *time.Time `bun:"start_at"`
	CompletedAt     *time.Time `bun:"completed_at"`
	ScenarioID      string     `bun:"scenario_id"`
	CreatedAt       time.Time  `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt       time.Time  `bun:"updated_at,notnull,default:current_timestamp"`
}

// externalStatus maps an internal JobStatus to the frontend-facing string,
// per original_source/server/jobs_api.py's _frontend_status_from_internal
// ("running" internal -> "active" external).
func externalStatus(s core.JobStatus) string {
	if s == core.JobRunning {
		return "active"
	}
	return s.String()
}

// internalStatus is the inverse of externalStatus.
func internalStatus(s string) core.JobStatus {
	if s == "active" {
		s = "running"
	}
	switch s {
	case "pending":
		return core.JobPending
	case "scheduled":
		return core.JobScheduled
	case "running":
		return core.JobRunning
	case "completed":
		return core.JobCompleted
	case "cancelled":
		return core.JobCancelled
	default:
		return core.JobPending
	}
}

func toRow(job core.Job) *jobRow {
	row := &jobRow{
		ID:            job.ID,
		RemainingTime: job.RemainingTime,
		IsActive:      job.IsActive,
		Drones:        job.Drones,
		Status:        externalStatus(job.Status),
		MaintainUntil: job.MaintainUntil,
		StartAt:       job.StartAt,
		CompletedAt:   job.CompletedAt,
		ScenarioID:    job.ScenarioID,
		CreatedAt:     job.CreatedAt,
		UpdatedAt:     job.UpdatedAt,
	}
	if job.Target != nil {
		kind := job.Target.Kind.String()
		row.TargetKind = &kind
		switch job.Target.Kind {
		case core.TargetCircle:
			x, y := job.Target.Center.X, job.Target.Center.Y
			row.TargetX, row.TargetY = &x, &y
			row.TargetRadius = job.Target.Radius
		case core.TargetPolygon:
			if encoded, err := json.Marshal(job.Target.Vertices); err == nil {
				s := string(encoded)
				row.TargetVertices = &s
			}
		}
	}
	return row
}

func fromRow(row *jobRow) core.Job {
	job := core.Job{
		ID:            row.ID,
		IsActive:      row.IsActive,
		Drones:        row.Drones,
		Status:        internalStatus(row.Status),
		MaintainUntil: row.MaintainUntil,
		RemainingTime: row.RemainingTime,
		StartAt:       row.StartAt,
		CompletedAt:   row.CompletedAt,
		ScenarioID:    row.ScenarioID,
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
	switch {
	case row.TargetKind != nil && *row.TargetKind == core.TargetCircle.String() && row.TargetX != nil && row.TargetY != nil:
		target := core.NewCircleTarget(core.Vec2{X: *row.TargetX, Y: *row.TargetY}, row.TargetRadius)
		job.Target = &target
	case row.TargetKind != nil && *row.TargetKind == core.TargetPolygon.String() && row.TargetVertices != nil:
		var verts []core.Vec2
		if err := json.Unmarshal([]byte(*row.TargetVertices), &verts); err == nil {
			target := core.NewPolygonTarget(verts)
			job.Target = &target
		}
	}
	return job
}
