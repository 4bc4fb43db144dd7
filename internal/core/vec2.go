// Package core defines the domain model of the shepherding engine: agent and
// controller state, the Target and Plan tagged unions, Job records, and the
// World/Policy configuration structs. It owns no behavior beyond what is
// intrinsic to these value types; World.step and ShepherdPolicy.plan live in
// internal/sim and internal/planning respectively.
package core

import "github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"

// Vec2 is the shepherding engine's 2D vector type, aliased to geomkit.Vec2 so
// positions flow between the domain model and the geometry kernels without
// conversion.
type Vec2 = geomkit.Vec2

// Mean returns the centroid of pts (spec.md 4.8: "G = mean(P)").
func Mean(pts []Vec2) Vec2 { return geomkit.Mean(pts) }
