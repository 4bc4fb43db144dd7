package core

// PlanKind discriminates the Plan tagged union emitted by ShepherdPolicy.plan
// and consumed by World.step (spec.md 3, 4.3, 4.8).
type PlanKind int

const (
	PlanDoNothing PlanKind = iota
	PlanDronePositions
)

// PlanDebug carries the cohesion debug fields a DronePositions plan reports
// for visualization/telemetry (spec.md 4.8 step 6, 6).
type PlanDebug struct {
	GCM    Vec2
	Radius float64 // fN
}

// Plan is the tagged union World.step consumes each tick. Construct with
// DoNothingPlan or NewDronePositionsPlan; the zero value is a valid DoNothing
// plan (Kind defaults to PlanDoNothing).
type Plan struct {
	Kind PlanKind

	// DronePositions fields, meaningful iff Kind == PlanDronePositions.
	Positions          []Vec2
	ApplyRepulsion     []bool
	TargetSheepIndices []int // -1 sentinel for "unassigned"
	Debug              PlanDebug
}

// DoNothingPlan returns the DoNothing variant.
func DoNothingPlan() Plan {
	return Plan{Kind: PlanDoNothing}
}

// NewDronePositionsPlan returns the DronePositions variant.
func NewDronePositionsPlan(positions []Vec2, applyRepulsion []bool, targetSheepIndices []int, debug PlanDebug) Plan {
	return Plan{
		Kind:               PlanDronePositions,
		Positions:          positions,
		ApplyRepulsion:     applyRepulsion,
		TargetSheepIndices: targetSheepIndices,
		Debug:              debug,
	}
}
