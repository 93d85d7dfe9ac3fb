// Package sim implements the day-stepper: agent/household/settlement
// state, initialization from a parsed DSL config, task execution,
// needs drift, role switching, and textual/JSON/ASCII reporting.
package sim

import (
	"log/slog"

	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/economy"
	"github.com/talgya/bronzesim/internal/world"
)

// Household groups agents under a shared parent for apprenticeship and
// role-switching exemption.
type Household struct {
	ID           int
	SettlementID int
	ParentID     int // index into Simulator.Agents, or -1
}

// Settlement anchors a world location and a subjective item valuation
// used by trade.
type Settlement struct {
	X, Y int32
	Val  economy.Valuation
}

// Agent is one simulated person: a fixed spawn location (movement is
// an abstraction that costs fatigue, never actually relocates the
// agent), a vocation assignment, needs, and an inventory.
type Agent struct {
	X, Y        int32
	VocationID  int // index into Simulator.Vocations, or -1
	Age         int
	HouseholdID int
	Inv         [world.NumItems]int
	Hunger      float64
	Fatigue     float64
	Health      float64
}

// Alive reports whether the agent still participates in the
// simulation.
func (a *Agent) Alive() bool {
	return a.Health > 0
}

// Simulator holds the complete deterministic state of one run: the
// world generator and chunk cache, the aggregate resource pool that
// drives gather economics, and the population. Pool and the chunk
// cache's per-cell densities are two independently regenerating
// resource models — see DESIGN.md.
type Simulator struct {
	Seed  uint32
	Gen   world.Gen
	Cache *world.Cache
	Rates world.Rates

	Settlements []Settlement
	Pool        [world.NumResources]int

	Households []Household
	Agents     []Agent
	Vocations  dsl.VocationTable

	Day             int
	SwitchEveryDays int

	Logger *slog.Logger
}
