package sim

import "github.com/JAVillarino/The-Drone-Rangers/internal/core"

// SetControllerCount grows or shrinks the controller roster to match want,
// spawning new controllers near the world center and retiring from the end
// of the roster (spec.md 4.10 step 3: "possibly spawning/retiring controllers
// to match count").
func (w *World) SetControllerCount(want int) {
	have := len(w.D)
	switch {
	case want > have:
		center := w.cfg.Bounds.Center()
		for len(w.D) < want {
			jitter := core.Vec2{X: (w.rng.Float64() - 0.5) * 6, Y: (w.rng.Float64() - 0.5) * 6}
			w.D = append(w.D, center.Add(jitter))
			w.ApplyRepulsion = append(w.ApplyRepulsion, false)
		}
	case want < have:
		w.D = w.D[:want]
		w.ApplyRepulsion = w.ApplyRepulsion[:want]
	}
}
