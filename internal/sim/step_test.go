package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/world"
)

func TestEatPrefersFishThenGrain(t *testing.T) {
	a := &Agent{Hunger: 0.9}
	a.Inv[world.ItemFish] = 1
	a.Inv[world.ItemGrain] = 1
	eat(a)
	assert.Equal(t, 0, a.Inv[world.ItemFish])
	assert.InDelta(t, 0.55, a.Hunger, 1e-9) // 0.9 - 0.35, no longer > 0.7 so grain is kept
	assert.Equal(t, 1, a.Inv[world.ItemGrain])

	a2 := &Agent{Hunger: 0.9}
	a2.Inv[world.ItemFish] = 0
	a2.Inv[world.ItemGrain] = 1
	eat(a2)
	assert.Equal(t, 0, a2.Inv[world.ItemGrain])
	assert.InDelta(t, 0.60, a2.Hunger, 1e-9)
}

func TestEatNoopBelowThreshold(t *testing.T) {
	a := &Agent{Hunger: 0.5}
	a.Inv[world.ItemFish] = 3
	eat(a)
	assert.Equal(t, 3, a.Inv[world.ItemFish])
	assert.InDelta(t, 0.5, a.Hunger, 1e-9)
}

func oneVocationSim(taskOps []dsl.Op) *Simulator {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 1
	cfg.SettlementCount = 1
	cfg.CacheMax = 4
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{
		{
			Name:  "worker",
			Tasks: []dsl.Task{{Name: "t", Ops: taskOps}},
			Rules: []dsl.Rule{{Name: "r", TaskName: "t", Weight: 1}},
		},
	}}
	return New(&cfg, nil)
}

// TestStepDayStarvationReducesHealth pins hunger above the starvation
// threshold with no food available and confirms health drains.
func TestStepDayStarvationReducesHealth(t *testing.T) {
	s := oneVocationSim([]dsl.Op{{Kind: dsl.OpRest}})
	s.Agents[0].Hunger = 0.99
	s.StepDay()
	assert.Less(t, s.Agents[0].Health, 1.0)
}

func TestStepDayExhaustionForcesRestInsteadOfTask(t *testing.T) {
	s := oneVocationSim([]dsl.Op{{Kind: dsl.OpRoam, ArgI: 100}})
	s.Agents[0].Fatigue = 1.0
	before := s.Agents[0].Fatigue
	s.StepDay()
	// needs drift drops fatigue by 0.08 first (to 0.92), still >= 0.90,
	// so the exhaustion branch subtracts 0.20 (to 0.72) and the roam
	// task, which would add 0.10, never runs.
	_ = before
	assert.LessOrEqual(t, s.Agents[0].Fatigue, 0.90)
}

func TestStepDayGatherAddsToInventory(t *testing.T) {
	s := oneVocationSim([]dsl.Op{{Kind: dsl.OpGather, ArgI: 3, ArgJ: int(world.ResWood)}})
	s.Agents[0].Hunger = 0
	s.Agents[0].Fatigue = 0
	s.StepDay()
	require.True(t, s.Agents[0].Alive())
	assert.Equal(t, 3, s.Agents[0].Inv[world.ItemWood])
}

func TestStepDayAdvancesDayCounter(t *testing.T) {
	s := oneVocationSim([]dsl.Op{{Kind: dsl.OpRest}})
	s.StepDay()
	assert.Equal(t, 1, s.Day)
	s.StepDay()
	assert.Equal(t, 2, s.Day)
}

func TestStepDayDeterministicAcrossTwoRuns(t *testing.T) {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 30
	cfg.SettlementCount = 2
	cfg.CacheMax = 16
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{
		{
			Name: "farmer",
			Tasks: []dsl.Task{
				{Name: "work", Ops: []dsl.Op{{Kind: dsl.OpGather, ArgI: 2, ArgJ: int(world.ResGrain)}}},
			},
			Rules: []dsl.Rule{{Name: "r", TaskName: "work", Weight: 1}},
		},
	}}

	a := New(&cfg, nil)
	b := New(&cfg, nil)
	for i := 0; i < 20; i++ {
		a.StepDay()
		b.StepDay()
	}

	require.Equal(t, len(a.Agents), len(b.Agents))
	for i := range a.Agents {
		assert.Equal(t, a.Agents[i].Inv, b.Agents[i].Inv, "agent %d inventory diverged", i)
		assert.Equal(t, a.Agents[i].Hunger, b.Agents[i].Hunger)
		assert.Equal(t, a.Agents[i].Health, b.Agents[i].Health)
	}
	assert.Equal(t, a.Pool, b.Pool)
}
