package sim

import "github.com/JAVillarino/The-Drone-Rangers/internal/core"

// clampControllerPosition applies the boundary rule to a single controller
// position. Controllers carry no velocity state, so only the position
// geometry of spec.md 4.7 applies.
func (w *World) clampControllerPosition(p core.Vec2) core.Vec2 {
	switch w.cfg.Boundary {
	case core.BoundaryWrap:
		return w.cfg.Bounds.Wrap(p)
	case core.BoundaryReflect:
		return w.cfg.Bounds.Clamp(p)
	default:
		return p
	}
}

// enforceBoundary implements spec.md 4.7 for agents, which (unlike
// controllers) carry velocity that must be updated consistently with the
// position change.
func (w *World) enforceBoundary() {
	switch w.cfg.Boundary {
	case core.BoundaryNone:
		return
	case core.BoundaryWrap:
		for i := range w.P {
			w.P[i] = w.cfg.Bounds.Wrap(w.P[i])
		}
	case core.BoundaryReflect:
		b := w.cfg.Bounds
		for i := range w.P {
			p, v := w.P[i], w.V[i]
			if p.X < b.XMin {
				p.X = 2*b.XMin - p.X
				v.X = -w.cfg.Restitution * v.X
				if v.X < 0 {
					v.X = -v.X
				}
			} else if p.X > b.XMax {
				p.X = 2*b.XMax - p.X
				v.X = -w.cfg.Restitution * v.X
				if v.X > 0 {
					v.X = -v.X
				}
			}
			if p.Y < b.YMin {
				p.Y = 2*b.YMin - p.Y
				v.Y = -w.cfg.Restitution * v.Y
				if v.Y < 0 {
					v.Y = -v.Y
				}
			} else if p.Y > b.YMax {
				p.Y = 2*b.YMax - p.Y
				v.Y = -w.cfg.Restitution * v.Y
				if v.Y > 0 {
					v.Y = -v.Y
				}
			}
			w.P[i], w.V[i] = p, v
		}
	}
}

func (w *World) sanitizeNonFinite() {
	center := w.cfg.Bounds.Center()
	for i := range w.P {
		if !w.P[i].IsFinite() || !w.V[i].IsFinite() {
			w.P[i] = center
			w.V[i] = core.Vec2{}
			if w.OnNonFiniteAgent != nil {
				w.OnNonFiniteAgent(i)
			}
		}
	}
}
