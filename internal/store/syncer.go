// Package store provides the loop driver's persistence hook: a JobSyncer
// interface plus an in-memory adapter and a Postgres (bun) adapter, so
// simulation-tick job-status syncs stay fire-and-forget with respect to
// simulation timing (spec.md 5, 6).
package store

import (
	"context"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// JobSyncer is the persistence hook the loop driver invokes on job status
// transitions and periodically for remaining_time (spec.md 6:
// "sync_job_to_store(job)... fire-and-forget with respect to simulation
// timing").
type JobSyncer interface {
	Sync(ctx context.Context, job core.Job) error
}
