package planning

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

// assign implements spec.md 4.8 step 3: build the M×N score matrix and run
// greedy maximum-score matching. It returns, per drone, the index of its
// assigned sheep or -1 when unassigned.
func assign(sheep, drones []core.Vec2, intrinsic []float64, wCloseBase float64, m int) []int {
	targetSheep := make([]int, m)
	for j := range targetSheep {
		targetSheep[j] = -1
	}
	n := len(sheep)
	if m == 0 || n == 0 {
		return targetSheep
	}

	wClose := wCloseBase / float64(m)

	// dD[i][j] = |P_i - D_j|
	dD := make([][]float64, n)
	for i := range dD {
		dD[i] = make([]float64, m)
		for j := range dD[i] {
			dD[i][j] = sheep[i].Dist(drones[j])
		}
	}

	score := make([][]float64, n)
	for i := range score {
		score[i] = make([]float64, m)
		for j := range score[i] {
			closest := true
			for k := 0; k < m; k++ {
				if k != j && dD[i][k] < dD[i][j] {
					closest = false
					break
				}
			}
			bonus := 0.0
			if closest {
				bonus = 30
			}
			score[i][j] = intrinsic[i] - wClose*dD[i][j] + bonus
		}
	}

	rowMasked := make([]bool, n)
	colMasked := make([]bool, m)

	for assigned := 0; assigned < m; assigned++ {
		bestI, bestJ := -1, -1
		best := math.Inf(-1)
		for i := 0; i < n; i++ {
			if rowMasked[i] {
				continue
			}
			for j := 0; j < m; j++ {
				if colMasked[j] {
					continue
				}
				if math.IsInf(score[i][j], -1) {
					continue
				}
				if score[i][j] > best {
					best = score[i][j]
					bestI, bestJ = i, j
				}
			}
		}
		if bestI < 0 {
			break
		}
		targetSheep[bestJ] = bestI
		rowMasked[bestI] = true
		colMasked[bestJ] = true
	}

	return targetSheep
}

// gateRepulsion implements spec.md 4.8 step 5.
func (p *Policy) gateRepulsion(drones, waypoints []core.Vec2, cohesiveness float64) []bool {
	apply := make([]bool, len(drones))
	if !p.cfg.ConditionallyApplyRepulsion {
		for j := range apply {
			apply[j] = true
		}
		return apply
	}
	threshold := lerpClamped(2, 5, 0.8, 1.2, cohesiveness)
	for j := range apply {
		w := waypoints[j]
		if math.IsNaN(w.X) || math.IsNaN(w.Y) {
			continue
		}
		apply[j] = drones[j].Dist(w) < threshold
	}
	return apply
}

// moveDrones implements spec.md 4.8 step 6.
func (p *Policy) moveDrones(sheep, drones, waypoints []core.Vec2, applyRepulsion []bool, dt float64) []core.Vec2 {
	next := make([]core.Vec2, len(drones))
	for j, d := range drones {
		w := waypoints[j]
		valid := !math.IsNaN(w.X) && !math.IsNaN(w.Y)

		next[j] = d
		if !valid {
			continue
		}

		u := w.Sub(d).Normalized()
		candidate := d.Add(u.Scale(p.cfg.UMax * dt))

		if applyRepulsion[j] && nearestSheepDist(d, sheep) < p.cfg.TooClose {
			continue // safety stop: hold position
		}
		next[j] = candidate
	}
	return next
}

func nearestSheepDist(d core.Vec2, sheep []core.Vec2) float64 {
	best := math.Inf(1)
	for _, s := range sheep {
		if dist := d.Dist(s); dist < best {
			best = dist
		}
	}
	return best
}
