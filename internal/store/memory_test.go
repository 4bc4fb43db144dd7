package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

func TestMemorySyncerUpsertAndList(t *testing.T) {
	s := NewMemorySyncer()
	ctx := context.Background()

	job := core.NewJob("job-1", 1, nil)
	require.NoError(t, s.Sync(ctx, job))

	got, ok := s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, "job-1", got.ID)

	job.Status = core.JobRunning
	require.NoError(t, s.Sync(ctx, job))

	got, ok = s.Get("job-1")
	require.True(t, ok)
	assert.Equal(t, core.JobRunning, got.Status)
	assert.Len(t, s.List(), 1, "sync of an existing ID must not duplicate the list entry")
}

func TestMemorySyncerRemove(t *testing.T) {
	s := NewMemorySyncer()
	ctx := context.Background()

	require.NoError(t, s.Sync(ctx, core.NewJob("a", 1, nil)))
	require.NoError(t, s.Sync(ctx, core.NewJob("b", 1, nil)))

	s.Remove("a")

	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Len(t, s.List(), 1)
}
