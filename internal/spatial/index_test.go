package spatial

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

func TestBruteKNNExcludesSelfAndTieBreaksByIndex(t *testing.T) {
	positions := []geomkit.Vec2{{0, 0}, {1, 0}, {-1, 0}, {0, 1}}
	nn := bruteKNN(positions, 0, 2)
	require.Len(t, nn, 2)
	assert.Equal(t, 1, nn[0]) // (1,0) and (-1,0) tie at distance 1; lower index wins
	assert.Equal(t, 2, nn[1])
}

func TestWithinCapsToClosestK(t *testing.T) {
	positions := []geomkit.Vec2{{0, 0}, {1, 0}, {2, 0}, {3, 0}}
	got := Within(positions, 0, 100, 2)
	require.Len(t, got, 2)
	assert.ElementsMatch(t, []int{1, 2}, got)
}

func TestIndexCacheInactiveBelowThreshold(t *testing.T) {
	idx := NewIndex(10)
	assert.False(t, idx.cacheActive)
	positions := make([]geomkit.Vec2, 10)
	for i := range positions {
		positions[i] = geomkit.Vec2{X: float64(i)}
	}
	nn := idx.KNN(positions, 0, 3)
	assert.Len(t, nn, 3)
}

func TestIndexCacheRefreshesEveryAgentEventually(t *testing.T) {
	n := 600
	idx := NewIndex(n)
	require.True(t, idx.cacheActive)
	positions := make([]geomkit.Vec2, n)
	for i := range positions {
		positions[i] = geomkit.Vec2{X: float64(i)}
	}
	for tick := 0; tick < 20; tick++ {
		idx.Refresh(positions, 5, 1.0)
	}
	for i := 0; i < n; i++ {
		assert.True(t, idx.refreshed[i], "agent %d never refreshed", i)
	}
}
