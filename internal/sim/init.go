package sim

import (
	"log/slog"

	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/economy"
	"github.com/talgya/bronzesim/internal/rng"
	"github.com/talgya/bronzesim/internal/world"
)

const switchEveryDaysDefault = 30

// New builds a Simulator from a parsed config: it places settlements,
// derives their valuations, assigns households and their parent, and
// spawns agents with a vocation drawn from a fixed-order preference
// roll. logger may be nil.
func New(cfg *dsl.Config, logger *slog.Logger) *Simulator {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Simulator{
		Seed:            cfg.Seed,
		Gen:             world.Gen{Seed: cfg.Seed},
		Rates:           cfg.Rates,
		Vocations:       cfg.Vocations,
		SwitchEveryDays: switchEveryDaysDefault,
		Logger:          logger,
	}
	s.Cache = world.NewCache(s.Gen, cfg.CacheMax)

	settlementCount := cfg.SettlementCount
	if settlementCount < 1 {
		settlementCount = 1
	}
	s.Settlements = make([]Settlement, settlementCount)
	for i := 0; i < settlementCount; i++ {
		x := int32(rng.HashU32(uint32(i), cfg.Seed, 0x5E77A11A) % uint32(world.WorldCellsX-2000))
		y := int32(rng.HashU32(uint32(i), cfg.Seed, 0x5E77B22B) % uint32(world.WorldCellsY-2000))
		x += 1000
		y += 1000
		r := float64(rng.HashU32(uint32(i), cfg.Seed, 0xC0DE)%100) / 100.0
		s.Settlements[i] = Settlement{X: x, Y: y, Val: economy.NewValuation(r)}
	}

	agentCount := cfg.AgentCount
	if agentCount < 1 {
		agentCount = 1
	}
	householdCount := (agentCount + 4) / 5
	if householdCount < 1 {
		householdCount = 1
	}
	s.Households = make([]Household, householdCount)
	for h := range s.Households {
		s.Households[h] = Household{ID: h, SettlementID: h % settlementCount, ParentID: -1}
	}

	s.Agents = make([]Agent, agentCount)
	for i := 0; i < agentCount; i++ {
		x, y := pickSpawn(cfg.Seed, i)
		age := 8 + int(rng.HashU32(uint32(i), cfg.Seed, 0xA9E)%35)
		vocationID := pickInitialVocation(&cfg.Vocations, cfg.Seed, i)
		householdID := i % householdCount

		s.Agents[i] = Agent{
			X: x, Y: y,
			VocationID:  vocationID,
			Age:         age,
			HouseholdID: householdID,
			Hunger:      0.10,
			Fatigue:     0.10,
			Health:      1.0,
		}
	}

	for h := range s.Households {
		oldest := -1
		for i := range s.Agents {
			if s.Agents[i].HouseholdID != h {
				continue
			}
			if oldest == -1 || s.Agents[i].Age > s.Agents[oldest].Age {
				oldest = i
			}
		}
		s.Households[h].ParentID = oldest
	}

	scale := agentCount * 80
	if scale < 1000 {
		scale = 1000
	}
	for r := 0; r < int(world.NumResources); r++ {
		s.Pool[r] = int(cfg.Rates[r] * 255.0 * 30.0 * float64(scale))
	}

	return s
}

// pickSpawn derives agent i's fixed spawn location: a pure function of
// (seed,i), never revisited once assigned.
func pickSpawn(seed uint32, i int) (int32, int32) {
	hx := rng.HashU32(uint32(i), seed, 0xABCDE123)
	hy := rng.HashU32(uint32(i), seed, 0xCDEF2345)
	x := int32(hx%uint32(world.WorldCellsX-200)) + 100
	y := int32(hy%uint32(world.WorldCellsY-200)) + 100
	return x, y
}

// pickInitialVocation draws agent i's starting vocation from a fixed
// preference ordering (farmer, fisher, potter, smith, else trader),
// skipping any preference whose vocation the DSL source never
// defined, and falling through to the next. The default, if no
// preference applies, is the table's first vocation (index 0) when
// any vocation exists, matching the elif chain's implicit baseline.
func pickInitialVocation(table *dsl.VocationTable, seed uint32, i int) int {
	defaultVoc := -1
	if len(table.Vocations) > 0 {
		defaultVoc = 0
	}

	farmerID := table.Find("farmer")
	fisherID := table.Find("fisher")
	potterID := table.Find("potter")
	smithID := table.Find("smith")
	traderID := table.Find("trader")

	rr := rng.HashU32(uint32(i), seed, 0xB00C) % 100
	vid := defaultVoc
	switch {
	case rr < 45 && farmerID >= 0:
		vid = farmerID
	case rr < 70 && fisherID >= 0:
		vid = fisherID
	case rr < 85 && potterID >= 0:
		vid = potterID
	case rr < 95 && smithID >= 0:
		vid = smithID
	default:
		if traderID >= 0 {
			vid = traderID
		}
	}
	return vid
}
