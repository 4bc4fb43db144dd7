package core

// WorldView is the read-only world snapshot ShepherdPolicy.plan consumes
// (spec.md 4.8: "plan(world_snapshot, jobs, dt) -> Plan. Pure over its
// inputs"). It never aliases World's live slices across the package
// boundary; internal/sim hands out copies.
type WorldView struct {
	P []Vec2 // agent positions
	D []Vec2 // controller positions
}
