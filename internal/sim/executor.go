package sim

import (
	"github.com/talgya/bronzesim/internal/dsl"
	"github.com/talgya/bronzesim/internal/world"
)

// gather pulls from the aggregate resource pool rather than per-cell
// density: one inventory unit costs 20 pool points, so this is
// deliberately coarser than the chunk cache's per-cell regeneration.
func (s *Simulator) gather(rk world.Resource, wantUnits int) int {
	pool := s.Pool[rk]
	maxTake := pool / 20
	take := wantUnits
	if maxTake < take {
		take = maxTake
	}
	s.Pool[rk] = pool - take*20
	return take
}

func craftItem(a *Agent, item world.Item, amount int) {
	for n := 0; n < amount; n++ {
		switch item {
		case world.ItemPot:
			if a.Inv[world.ItemClay] >= 2 && a.Inv[world.ItemWood] >= 1 {
				a.Inv[world.ItemClay] -= 2
				a.Inv[world.ItemWood] -= 1
				a.Inv[world.ItemPot]++
				a.Fatigue += 0.01
			}
		case world.ItemBronze:
			if a.Inv[world.ItemCopper] >= 1 && a.Inv[world.ItemTin] >= 1 && a.Inv[world.ItemWood] >= 2 {
				a.Inv[world.ItemCopper] -= 1
				a.Inv[world.ItemTin] -= 1
				a.Inv[world.ItemWood] -= 2
				a.Inv[world.ItemBronze]++
				a.Fatigue += 0.02
			}
		case world.ItemTool:
			if a.Inv[world.ItemBronze] >= 1 {
				a.Inv[world.ItemBronze] -= 1
				a.Inv[world.ItemTool]++
				a.Fatigue += 0.02
			}
		default:
			// no other recipes
		}
	}
}

// trade attempts to top off each of grain/fish/tool/pot, in that
// order, by offering whichever other item the agent holds at least 6
// of and the settlement values highest, provided the settlement
// values the offer at least as much as the want.
func (s *Simulator) trade(a *Agent) {
	hh := s.Households[a.HouseholdID]
	st := s.Settlements[hh.SettlementID]

	wants := [4]world.Item{world.ItemGrain, world.ItemFish, world.ItemTool, world.ItemPot}
	for _, want := range wants {
		if a.Inv[want] >= 3 {
			continue
		}

		offer := world.ItemFish
		bestScore := -1.0
		for it := world.Item(0); it < world.NumItems; it++ {
			if it == want {
				continue
			}
			if a.Inv[it] < 6 {
				continue
			}
			score := st.Val[it]
			if score > bestScore {
				bestScore = score
				offer = it
			}
		}

		if a.Inv[offer] < 6 {
			continue
		}

		if st.Val[offer] >= st.Val[want] {
			a.Inv[offer] -= 2
			a.Inv[want]++
			a.Fatigue += 0.01
		}
	}
}

// ExecTask runs every op of t against a in order.
func (s *Simulator) ExecTask(a *Agent, t *dsl.Task) {
	for _, op := range t.Ops {
		switch op.Kind {
		case dsl.OpMoveTo:
			a.Fatigue += 0.002
		case dsl.OpGather:
			rk := world.Resource(op.ArgJ)
			got := s.gather(rk, op.ArgI)
			switch rk {
			case world.ResFish:
				a.Inv[world.ItemFish] += got
			case world.ResGrain:
				a.Inv[world.ItemGrain] += got
			case world.ResWood:
				a.Inv[world.ItemWood] += got
			case world.ResClay:
				a.Inv[world.ItemClay] += got
			case world.ResCopper:
				a.Inv[world.ItemCopper] += got
			case world.ResTin:
				a.Inv[world.ItemTin] += got
			}
		case dsl.OpCraft:
			craftItem(a, world.Item(op.ArgJ), op.ArgI)
		case dsl.OpTrade:
			s.trade(a)
		case dsl.OpRest:
			a.Fatigue -= 0.2
			if a.Fatigue < 0 {
				a.Fatigue = 0
			}
		case dsl.OpRoam:
			a.Fatigue += 0.001 * float64(op.ArgI)
		}
	}
}
