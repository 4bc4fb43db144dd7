// Package config loads Scenario and PolicyPreset bundles from YAML
// (spec.md 6's "preset catalogs... static data") and provides the
// procedural initial-position generators named by Scenario.Layout
// (SPEC_FULL.md 4.11), grounded on pthm-soup/config's embed-defaults +
// yaml.v3 load pattern.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
	"github.com/JAVillarino/The-Drone-Rangers/internal/geomkit"
)

type vec2File struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type rectFile struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type worldConfigFile struct {
	Ra          float64  `yaml:"ra"`
	Rs          float64  `yaml:"rs"`
	RAttr       float64  `yaml:"r_attr"`
	KNN         int      `yaml:"k_nn"`
	VMax        float64  `yaml:"vmax"`
	UMax        float64  `yaml:"umax"`
	Dt          float64  `yaml:"dt"`
	Wr          float64  `yaml:"wr"`
	Wa          float64  `yaml:"wa"`
	Ws          float64  `yaml:"ws"`
	Wm          float64  `yaml:"wm"`
	WAlign      float64  `yaml:"w_align"`
	WObs        float64  `yaml:"w_obs"`
	WTan        float64  `yaml:"w_tan"`
	Sigma       float64  `yaml:"sigma"`
	GrazeP      float64  `yaml:"graze_p"`
	Boundary    string   `yaml:"boundary"`
	Bounds      rectFile `yaml:"bounds"`
	Restitution float64  `yaml:"restitution"`
	KeepOut      float64 `yaml:"keep_out"`
	WorldKeepOut float64 `yaml:"world_keep_out"`
	Seed         int64   `yaml:"seed"`
}

func (f worldConfigFile) toCore() core.WorldConfig {
	return core.WorldConfig{
		Ra: f.Ra, Rs: f.Rs, RAttr: f.RAttr, KNN: f.KNN, VMax: f.VMax, UMax: f.UMax, Dt: f.Dt,
		Wr: f.Wr, Wa: f.Wa, Ws: f.Ws, Wm: f.Wm, WAlign: f.WAlign, WObs: f.WObs, WTan: f.WTan,
		Sigma: f.Sigma, GrazeP: f.GrazeP,
		Boundary:    parseBoundary(f.Boundary),
		Bounds:      geomkit.Rect{XMin: f.Bounds.XMin, XMax: f.Bounds.XMax, YMin: f.Bounds.YMin, YMax: f.Bounds.YMax},
		Restitution: f.Restitution,
		KeepOut:      f.KeepOut,
		WorldKeepOut: f.WorldKeepOut,
		Seed:         f.Seed,
	}
}

func parseBoundary(s string) core.BoundaryMode {
	switch s {
	case "reflect":
		return core.BoundaryReflect
	case "wrap":
		return core.BoundaryWrap
	default:
		return core.BoundaryNone
	}
}

type policyConfigFile struct {
	FN                          float64 `yaml:"f_n"`
	UMax                        float64 `yaml:"umax"`
	TooClose                    float64 `yaml:"too_close"`
	CollectStandoff             float64 `yaml:"collect_standoff"`
	ConditionallyApplyRepulsion bool    `yaml:"conditionally_apply_repulsion"`
}

func (f policyConfigFile) toCore() core.PolicyConfig {
	return core.PolicyConfig{
		FN:                          f.FN,
		UMax:                        f.UMax,
		TooClose:                    f.TooClose,
		CollectStandoff:             f.CollectStandoff,
		ConditionallyApplyRepulsion: f.ConditionallyApplyRepulsion,
	}
}

type scenarioFile struct {
	ID           string           `yaml:"id"`
	Name         string           `yaml:"name"`
	AgentCount   int              `yaml:"agent_count"`
	DroneCount   int              `yaml:"drone_count"`
	Layout       string           `yaml:"layout"`
	World        worldConfigFile  `yaml:"world"`
	Policy       policyConfigFile `yaml:"policy"`
	Obstacles    [][]vec2File     `yaml:"obstacles"`
}

// LoadScenario reads a Scenario bundle from a YAML file.
func LoadScenario(path string) (core.Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return core.Scenario{}, fmt.Errorf("config: reading scenario file: %w", err)
	}
	var f scenarioFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return core.Scenario{}, fmt.Errorf("config: parsing scenario file: %w", err)
	}

	obstacles := make([][]core.Vec2, len(f.Obstacles))
	for i, ring := range f.Obstacles {
		verts := make([]core.Vec2, len(ring))
		for j, v := range ring {
			verts[j] = core.Vec2{X: v.X, Y: v.Y}
		}
		obstacles[i] = verts
	}

	return core.Scenario{
		ID:           f.ID,
		Name:         f.Name,
		AgentCount:   f.AgentCount,
		DroneCount:   f.DroneCount,
		Layout:       core.ScenarioLayout(f.Layout),
		WorldConfig:  f.World.toCore(),
		PolicyConfig: f.Policy.toCore(),
		Obstacles:    obstacles,
	}, nil
}

type policyPresetFile struct {
	Name   string           `yaml:"name"`
	Policy policyConfigFile `yaml:"policy"`
}

type presetCatalogFile struct {
	Presets []policyPresetFile `yaml:"presets"`
}

// LoadPolicyPresets reads a named-preset catalog from a YAML file (spec.md 6:
// "named policy configurations").
func LoadPolicyPresets(path string) ([]core.PolicyPreset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: reading preset catalog: %w", err)
	}
	var f presetCatalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("config: parsing preset catalog: %w", err)
	}
	presets := make([]core.PolicyPreset, len(f.Presets))
	for i, p := range f.Presets {
		presets[i] = core.PolicyPreset{Name: p.Name, Config: p.Policy.toCore()}
	}
	return presets, nil
}
