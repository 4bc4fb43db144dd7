// Package spatial implements the flock's neighbor index: k-nearest-neighbor
// lookup (with an optional cached, round-robin refresh for large flocks) and
// radius-limited neighbor queries (spec.md 4.2).
package spatial

import (
	"math"
	"sort"

	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

// cacheThreshold is the flock size at or above which the round-robin
// neighbor cache activates (spec.md 4.2).
const cacheThreshold = 512

// Index maintains, for flocks large enough to benefit, a per-agent cached
// neighbor list refreshed on a movement-triggered-or-round-robin schedule.
// For small flocks it degrades to a brute-force scan on every query, which is
// both simpler and fast enough at that scale.
type Index struct {
	n           int
	cacheActive bool

	nbIdx     [][]int
	prevP     []geomkit.Vec2
	refreshed []bool
	cursor    int
}

// NewIndex constructs an Index sized for n agents.
func NewIndex(n int) *Index {
	return &Index{
		n:           n,
		cacheActive: n >= cacheThreshold,
		nbIdx:       make([][]int, n),
		prevP:       make([]geomkit.Vec2, n),
		refreshed:   make([]bool, n),
	}
}

// epsMove is the per-agent displacement threshold that forces a cache
// refresh for that agent (spec.md 4.2).
func epsMove(ra float64) float64 {
	return math.Max(1e-6, 0.4*ra)
}

// Refresh advances the cache by one tick: recomputes the neighbor list for
// every agent that moved more than epsMove since its last refresh, plus a
// round-robin slab of ~n/12 agents (or ~n/16 when few agents moved), so that
// every agent is refreshed at least every 12-16 ticks regardless of motion.
// A no-op when caching is not active for this flock size.
func (idx *Index) Refresh(positions []geomkit.Vec2, k int, ra float64) {
	if !idx.cacheActive {
		return
	}
	eps := epsMove(ra)

	toRefresh := make(map[int]struct{})
	for i := 0; i < idx.n; i++ {
		if !idx.refreshed[i] || positions[i].Dist(idx.prevP[i]) > eps {
			toRefresh[i] = struct{}{}
		}
	}
	moved := len(toRefresh)

	slab := idx.n / 12
	if slab < 1 {
		slab = 1
	}
	threshold := idx.n / 20
	if threshold < 2 {
		threshold = 2
	}
	if moved < threshold {
		slab = idx.n / 16
		if slab < 1 {
			slab = 1
		}
	}
	for c := 0; c < slab; c++ {
		toRefresh[(idx.cursor+c)%idx.n] = struct{}{}
	}
	idx.cursor = (idx.cursor + slab) % idx.n

	for i := range toRefresh {
		idx.nbIdx[i] = bruteKNN(positions, i, k)
		idx.prevP[i] = positions[i]
		idx.refreshed[i] = true
	}
}

// KNN returns up to k indices nearest to agent i, excluding i, tie-broken by
// index order. Uses the cache when active and populated for i, otherwise
// falls back to a full scan.
func (idx *Index) KNN(positions []geomkit.Vec2, i, k int) []int {
	if idx.cacheActive && idx.refreshed[i] {
		cached := idx.nbIdx[i]
		if len(cached) <= k {
			return cached
		}
		return cached[:k]
	}
	return bruteKNN(positions, i, k)
}

// bruteKNN is the full-scan fallback and the cache-refresh primitive.
func bruteKNN(positions []geomkit.Vec2, i, k int) []int {
	n := len(positions)
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, 0, n-1)
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		cands = append(cands, cand{j, positions[i].Dist2(positions[j])})
	}
	sort.Slice(cands, func(a, b int) bool {
		if cands[a].dist != cands[b].dist {
			return cands[a].dist < cands[b].dist
		}
		return cands[a].idx < cands[b].idx
	})
	if k > len(cands) {
		k = len(cands)
	}
	out := make([]int, k)
	for x := 0; x < k; x++ {
		out[x] = cands[x].idx
	}
	return out
}

// Within returns indices j != i with |P_i - P_j|^2 <= r2, capped to the
// capK closest when more than capK qualify. This query is always a brute
// scan and never uses the cache. (sim.World's close-neighbor repulsion does
// its own equivalent scan rather than calling Within.)
func Within(positions []geomkit.Vec2, i int, r2 float64, capK int) []int {
	n := len(positions)
	type cand struct {
		idx  int
		dist float64
	}
	var cands []cand
	for j := 0; j < n; j++ {
		if j == i {
			continue
		}
		d2 := positions[i].Dist2(positions[j])
		if d2 <= r2 {
			cands = append(cands, cand{j, d2})
		}
	}
	if capK <= 0 || len(cands) <= capK {
		out := make([]int, len(cands))
		for x, c := range cands {
			out[x] = c.idx
		}
		return out
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
	out := make([]int, capK)
	for x := 0; x < capK; x++ {
		out[x] = cands[x].idx
	}
	return out
}
