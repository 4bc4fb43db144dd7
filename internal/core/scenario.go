package core

import "time"

// ScenarioLayout names a procedural initial-position generator family
// (spec.md 6 "scenario-type templates"; see internal/config for the
// generators themselves).
type ScenarioLayout string

const (
	LayoutGrid    ScenarioLayout = "grid"
	LayoutRing    ScenarioLayout = "ring"
	LayoutCluster ScenarioLayout = "cluster"
	LayoutUniform ScenarioLayout = "uniform"
)

// Scenario is a named, serializable bundle of everything World's constructor
// needs, plus a layout generator family, corresponding to the preset
// catalogs/scenario-type templates spec.md 6 names as static-data inputs.
type Scenario struct {
	ID           string
	Name         string
	AgentCount   int
	DroneCount   int
	Layout       ScenarioLayout
	WorldConfig  WorldConfig
	PolicyConfig PolicyConfig
	Obstacles    [][]Vec2 // raw vertex rings; World constructs geomkit.Polygon
	CreatedAt    time.Time
}

// PolicyPreset is a named ShepherdPolicy parameter bundle (spec.md 6).
type PolicyPreset struct {
	Name   string
	Config PolicyConfig
}
