// Command genscenario writes a scenario YAML file for consumption by
// cmd/shepherd, with configurable agent/drone counts, layout family, square
// world half-width, and RNG seed. The remaining dynamics parameters are
// core.DefaultWorldConfig's, and the policy is derived from the agent count.
package main

import (
	"flag"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JAVillarino/The-Drone-Rangers/internal/core"
)

type vec2YAML struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type rectYAML struct {
	XMin float64 `yaml:"xmin"`
	XMax float64 `yaml:"xmax"`
	YMin float64 `yaml:"ymin"`
	YMax float64 `yaml:"ymax"`
}

type worldYAML struct {
	Ra           float64  `yaml:"ra"`
	Rs           float64  `yaml:"rs"`
	RAttr        float64  `yaml:"r_attr"`
	KNN          int      `yaml:"k_nn"`
	VMax         float64  `yaml:"vmax"`
	UMax         float64  `yaml:"umax"`
	Dt           float64  `yaml:"dt"`
	Wr           float64  `yaml:"wr"`
	Wa           float64  `yaml:"wa"`
	Ws           float64  `yaml:"ws"`
	Wm           float64  `yaml:"wm"`
	WAlign       float64  `yaml:"w_align"`
	WObs         float64  `yaml:"w_obs"`
	WTan         float64  `yaml:"w_tan"`
	Sigma        float64  `yaml:"sigma"`
	GrazeP       float64  `yaml:"graze_p"`
	Boundary     string   `yaml:"boundary"`
	Bounds       rectYAML `yaml:"bounds"`
	Restitution  float64  `yaml:"restitution"`
	KeepOut      float64  `yaml:"keep_out"`
	WorldKeepOut float64  `yaml:"world_keep_out"`
	Seed         int64    `yaml:"seed"`
}

type policyYAML struct {
	FN                          float64 `yaml:"f_n"`
	UMax                        float64 `yaml:"umax"`
	TooClose                    float64 `yaml:"too_close"`
	CollectStandoff             float64 `yaml:"collect_standoff"`
	ConditionallyApplyRepulsion bool    `yaml:"conditionally_apply_repulsion"`
}

type scenarioYAML struct {
	ID         string       `yaml:"id"`
	Name       string       `yaml:"name"`
	AgentCount int          `yaml:"agent_count"`
	DroneCount int          `yaml:"drone_count"`
	Layout     string       `yaml:"layout"`
	World      worldYAML    `yaml:"world"`
	Policy     policyYAML   `yaml:"policy"`
	Obstacles  [][]vec2YAML `yaml:"obstacles"`
}

func main() {
	id := flag.String("id", "generated", "Scenario ID")
	name := flag.String("name", "Generated scenario", "Scenario display name")
	agents := flag.Int("agents", 40, "Number of flock agents")
	drones := flag.Int("drones", 3, "Number of controller drones")
	layout := flag.String("layout", "cluster", "Initial layout: grid, ring, cluster, uniform")
	bound := flag.Float64("bound", 150, "Half-width of the square world boundary")
	seed := flag.Int64("seed", 42, "RNG seed")
	output := flag.String("output", "", "Output path (default: stdout)")

	flag.Parse()

	switch core.ScenarioLayout(*layout) {
	case core.LayoutGrid, core.LayoutRing, core.LayoutCluster, core.LayoutUniform:
	default:
		fmt.Fprintf(os.Stderr, "genscenario: unknown layout %q\n", *layout)
		os.Exit(1)
	}

	wc := core.DefaultWorldConfig()
	policy := core.DefaultPolicyConfigForFlock(*agents, wc.Ra, wc.UMax)

	doc := scenarioYAML{
		ID:         *id,
		Name:       *name,
		AgentCount: *agents,
		DroneCount: *drones,
		Layout:     *layout,
		World: worldYAML{
			Ra: wc.Ra, Rs: wc.Rs, RAttr: wc.RAttr, KNN: wc.KNN, VMax: wc.VMax, UMax: wc.UMax, Dt: wc.Dt,
			Wr: wc.Wr, Wa: wc.Wa, Ws: wc.Ws, Wm: wc.Wm, WAlign: wc.WAlign, WObs: wc.WObs, WTan: wc.WTan,
			Sigma: wc.Sigma, GrazeP: wc.GrazeP,
			Boundary:     wc.Boundary.String(),
			Bounds:       rectYAML{XMin: -*bound, XMax: *bound, YMin: -*bound, YMax: *bound},
			Restitution:  wc.Restitution,
			KeepOut:      wc.KeepOut,
			WorldKeepOut: wc.WorldKeepOut,
			Seed:         *seed,
		},
		Policy: policyYAML{
			FN:                          policy.FN,
			UMax:                        policy.UMax,
			TooClose:                    policy.TooClose,
			CollectStandoff:             policy.CollectStandoff,
			ConditionallyApplyRepulsion: policy.ConditionallyApplyRepulsion,
		},
	}

	out, err := yaml.Marshal(doc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "genscenario: marshaling scenario: %v\n", err)
		os.Exit(1)
	}

	if *output == "" {
		os.Stdout.Write(out)
		return
	}
	if err := os.WriteFile(*output, out, 0644); err != nil {
		fmt.Fprintf(os.Stderr, "genscenario: writing %s: %v\n", *output, err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *output)
}
