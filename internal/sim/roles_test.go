package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/talgya/bronzesim/internal/dsl"
)

func TestRoleSwitchingNoopWhenNotScheduledDay(t *testing.T) {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 10
	cfg.SettlementCount = 1
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{
		{Name: "farmer"}, {Name: "fisher"},
	}}
	s := New(&cfg, nil)
	s.Day = 1 // not a multiple of SwitchEveryDays
	before := make([]int, len(s.Agents))
	for i := range s.Agents {
		before[i] = s.Agents[i].VocationID
	}
	s.roleSwitching()
	for i := range s.Agents {
		assert.Equal(t, before[i], s.Agents[i].VocationID)
	}
}

func TestRoleSwitchingNudgesTowardScarceStaple(t *testing.T) {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 200
	cfg.SettlementCount = 2
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{
		{Name: "farmer"}, {Name: "fisher"}, {Name: "smith"}, {Name: "potter"},
	}}
	s := New(&cfg, nil)
	s.Day = 30 // SwitchEveryDays default

	for i := range s.Agents {
		s.Agents[i].Age = 20 // all eligible adults
		s.Agents[i].VocationID = 0
	}
	// zero grain/fish/tool/pot across the population: every staple is scarce
	s.roleSwitching()

	smithID := s.Vocations.Find("smith")
	potterID := s.Vocations.Find("potter")
	switchedAway := 0
	for i := range s.Agents {
		if s.Agents[i].VocationID != 0 {
			switchedAway++
			assert.True(t, s.Agents[i].VocationID == smithID || s.Agents[i].VocationID == potterID,
				"potter's scarcity check runs last and should win any override")
		}
	}
	assert.Greater(t, switchedAway, 0, "with every staple scarce, some adults should be nudged")
}

func TestRoleSwitchingExemptsHouseholdParents(t *testing.T) {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 50
	cfg.SettlementCount = 1
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{{Name: "farmer"}, {Name: "potter"}}}
	s := New(&cfg, nil)
	s.Day = 30
	for i := range s.Agents {
		s.Agents[i].Age = 20
		s.Agents[i].VocationID = 0
	}
	for _, hh := range s.Households {
		if hh.ParentID >= 0 {
			s.Agents[hh.ParentID].VocationID = 0
		}
	}
	s.roleSwitching()
	for _, hh := range s.Households {
		if hh.ParentID < 0 {
			continue
		}
		assert.Equal(t, 0, s.Agents[hh.ParentID].VocationID, "a household parent should never be switched")
	}
}

func TestRoleSwitchingLimitsCountPerDay(t *testing.T) {
	cfg := dsl.DefaultConfig()
	cfg.AgentCount = 5000
	cfg.SettlementCount = 5
	cfg.Vocations = dsl.VocationTable{Vocations: []dsl.Vocation{{Name: "farmer"}, {Name: "potter"}}}
	s := New(&cfg, nil)
	s.Day = 30
	for i := range s.Agents {
		s.Agents[i].Age = 20
		s.Agents[i].VocationID = 0
	}

	s.roleSwitching()

	switched := 0
	for i := range s.Agents {
		if s.Agents[i].VocationID != 0 {
			switched++
		}
	}
	assert.LessOrEqual(t, switched, len(s.Agents)/50+1)
}
