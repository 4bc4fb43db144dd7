package sim

import (
	"math"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

// correction is an agent's position/velocity adjustment from one keep-out
// pass (spec.md 4.5).
type correction struct {
	active   bool
	normal   core.Vec2
	mag      float64
	posDelta core.Vec2
	velDelta core.Vec2
}

// enforceKeepOut implements spec.md 4.5's two correction passes plus the
// conflict-resolution step between them.
func (w *World) enforceKeepOut() {
	cap := 0.25 * w.cfg.VMax * w.cfg.Dt

	for i := range w.P {
		poly := w.polygonCorrection(i, cap)
		rect := w.rectCorrection(i, cap)

		if poly.active && rect.active && poly.normal.Dot(rect.normal) < -0.5 {
			if poly.mag < rect.mag {
				poly.posDelta = poly.posDelta.Scale(0.5)
				poly.velDelta = poly.velDelta.Scale(0.5)
			} else {
				rect.posDelta = rect.posDelta.Scale(0.5)
				rect.velDelta = rect.velDelta.Scale(0.5)
			}
		}
		if poly.active {
			w.P[i] = w.P[i].Add(poly.posDelta)
			w.V[i] = w.V[i].Add(poly.velDelta)
		}
		if rect.active {
			w.P[i] = w.P[i].Add(rect.posDelta)
			w.V[i] = w.V[i].Add(rect.velDelta)
		}
	}
}

func (w *World) polygonCorrection(i int, cap float64) correction {
	if len(w.cfg.Obstacles) == 0 {
		return correction{}
	}
	q, n, s := geomkit.NearestPolygon(w.P[i], w.cfg.Obstacles)
	_ = q
	penetration := w.cfg.KeepOut - s
	if penetration <= 0 {
		return correction{}
	}
	return w.buildCorrection(n, penetration, cap, w.V[i])
}

func (w *World) rectCorrection(i int, cap float64) correction {
	dist, inward := w.cfg.Bounds.NearestWallSignedDistance(w.P[i])
	penetration := w.cfg.WorldKeepOut - dist
	if penetration <= 0 {
		return correction{}
	}
	return w.buildCorrection(inward, penetration, cap, w.V[i])
}

// buildCorrection implements the shared position/velocity correction
// formula used by both keep-out passes (spec.md 4.5 item 1, reused by item
// 2 against the "identical policy").
func (w *World) buildCorrection(n core.Vec2, penetration, cap float64, v core.Vec2) correction {
	mag := math.Min(penetration, 2*cap)
	posDelta := n.Scale(mag)

	corrVel := n.Scale(mag / w.cfg.Dt)
	var velDelta core.Vec2
	normalComp := v.Dot(n)
	if normalComp < 0 {
		velDelta = n.Scale(-(1 + w.cfg.Restitution) * normalComp).Add(corrVel.Scale(0.5))
	} else {
		velDelta = corrVel.Scale(0.3)
	}

	return correction{active: true, normal: n, mag: mag, posDelta: posDelta, velDelta: velDelta}
}
