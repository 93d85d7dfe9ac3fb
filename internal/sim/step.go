package sim

import (
	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/rng"
	"github.com/talgya/bronzesim/internal/world"
)

// eat() satisfies hunger from inventory: fish first, then grain, only
// while hunger exceeds 0.7.
func eat(a *Agent) {
	if a.Hunger <= 0.7 {
		return
	}
	if a.Inv[world.ItemFish] > 0 {
		a.Inv[world.ItemFish]--
		a.Hunger -= 0.35
	}
	if a.Hunger > 0.7 && a.Inv[world.ItemGrain] > 0 {
		a.Inv[world.ItemGrain]--
		a.Hunger -= 0.30
	}
	if a.Hunger < 0 {
		a.Hunger = 0
	}
}

// apprenticeship gives an age-10..16 agent whose household has a
// parent a small daily chance of adopting the parent's vocation.
func (s *Simulator) apprenticeship(a *Agent) {
	if a.Age < 10 || a.Age > 16 {
		return
	}
	hh := s.Households[a.HouseholdID]
	if hh.ParentID < 0 || hh.ParentID >= len(s.Agents) {
		return
	}
	parentVoc := s.Agents[hh.ParentID].VocationID
	r := rng.F01(s.Seed, uint32(a.X), uint32(a.Y), uint32(s.Day)^0xA22E11)
	if r < 0.10 {
		a.VocationID = parentVoc
	}
}

// regenPool applies one day's seasonal growth to the aggregate
// resource pool, independently of the chunk cache's per-cell
// regeneration.
func (s *Simulator) regenPool(season world.Season) {
	fishMul := world.FishRegenMultiplier(season)
	grainMul := world.GrainRegenMultiplier(season)
	scale := len(s.Agents) * 80
	if scale < 1000 {
		scale = 1000
	}
	for rk := 0; rk < int(world.NumResources); rk++ {
		mul := 1.0
		switch world.Resource(rk) {
		case world.ResFish:
			mul = fishMul
		case world.ResGrain:
			mul = grainMul
		}
		s.Pool[rk] += int(s.Rates[rk] * mul * 255.0 * float64(scale))
	}
}

// StepDay advances the simulation by one day: pool and per-cell chunk
// regeneration, then per-agent needs drift, eating, apprenticeship,
// starvation/exhaustion short-circuits, DSL-driven task selection and
// execution, and finally periodic role switching.
func (s *Simulator) StepDay() {
	s.Day++
	season := world.SeasonOf(s.Day)

	s.regenPool(season)
	s.Cache.RegenLoaded(s.Rates, season)

	for i := range s.Agents {
		a := &s.Agents[i]
		if !a.Alive() {
			continue
		}

		if s.Day%360 == 0 {
			a.Age++
		}

		a.Hunger += 0.18
		if a.Hunger > 1.0 {
			a.Hunger = 1.0
		}
		a.Fatigue -= 0.08
		if a.Fatigue < 0 {
			a.Fatigue = 0
		}

		eat(a)
		s.apprenticeship(a)

		if a.Hunger > 0.95 {
			a.Health -= 0.01
			if a.Health < 0 {
				a.Health = 0
			}
			continue
		}

		if a.Fatigue >= 0.90 {
			a.Fatigue -= 0.20
			if a.Fatigue < 0 {
				a.Fatigue = 0
			}
			continue
		}

		t := s.pickTask(a)
		if t == nil {
			a.Fatigue += 0.003
			if i%9 == 0 {
				s.trade(a)
			}
			continue
		}
		s.ExecTask(a, t)
	}

	s.roleSwitching()
}

// pickTask resolves a's vocation and runs the weighted rule draw for
// the current day; returns nil if a has no vocation or no rule
// applies.
func (s *Simulator) pickTask(a *Agent) *dsl.Task {
	voc, ok := s.Vocations.Get(a.VocationID)
	if !ok {
		return nil
	}
	season := world.SeasonOf(s.Day)
	return dsl.PickTask(voc, s.Seed, a.X, a.Y, s.Day, a.HouseholdID, a.Hunger, a.Fatigue, season, a.Inv)
}
