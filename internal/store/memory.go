package store

import (
	"context"
	"sync"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// MemorySyncer is an in-process JobSyncer keyed by job ID, maintaining both a
// map and an insertion-ordered list, grounded on original_source/server/main.py's
// JobCache (list+dict for O(1) lookup plus stable iteration order).
type MemorySyncer struct {
	mu   sync.Mutex
	ids  []string
	jobs map[string]core.Job
}

// NewMemorySyncer constructs an empty MemorySyncer.
func NewMemorySyncer() *MemorySyncer {
	return &MemorySyncer{jobs: make(map[string]core.Job)}
}

// Sync upserts job into the cache. It never errors.
func (s *MemorySyncer) Sync(ctx context.Context, job core.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.jobs[job.ID]; !exists {
		s.ids = append(s.ids, job.ID)
	}
	s.jobs[job.ID] = job
	return nil
}

// Get returns the cached job and whether it was found.
func (s *MemorySyncer) Get(id string) (core.Job, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	j, ok := s.jobs[id]
	return j, ok
}

// List returns all cached jobs in insertion order.
func (s *MemorySyncer) List() []core.Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Job, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, s.jobs[id])
	}
	return out
}

// Remove deletes the cached job by ID, if present.
func (s *MemorySyncer) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.jobs[id]; !ok {
		return
	}
	delete(s.jobs, id)
	for i, existing := range s.ids {
		if existing == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			break
		}
	}
}
