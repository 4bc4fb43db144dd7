package sim

import "github.com/JAVillarino/The-Drone-Rangers/internal/core"

// Config returns a copy of the World's configuration, for read-only
// consumers (the loop driver's snapshot publication, spec.md 6).
func (w *World) Config() core.WorldConfig { return w.cfg }
