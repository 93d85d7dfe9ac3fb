package sim

import (
	"fmt"

	"github.com/talgya/bronzesim/internal/rng"
	"github.com/talgya/bronzesim/internal/world"
)

// roleSwitching runs every SwitchEveryDays and nudges a bounded number
// of adults toward whichever staple (grain, fish, tools, pots) is
// scarcest per living capita. Each of the four checks below runs
// unconditionally in sequence — a later check can override an earlier
// one's target, this is not a mutually-exclusive priority chain.
func (s *Simulator) roleSwitching() {
	if s.SwitchEveryDays == 0 {
		return
	}
	if s.Day%s.SwitchEveryDays != 0 {
		return
	}

	var totals [world.NumItems]int
	alive := 0
	for i := range s.Agents {
		a := &s.Agents[i]
		if !a.Alive() {
			continue
		}
		alive++
		for it := 0; it < int(world.NumItems); it++ {
			totals[it] += a.Inv[it]
		}
	}
	if alive <= 0 {
		return
	}

	pcGrain := float64(totals[world.ItemGrain]) / float64(alive)
	pcFish := float64(totals[world.ItemFish]) / float64(alive)
	pcTool := float64(totals[world.ItemTool]) / float64(alive)
	pcPot := float64(totals[world.ItemPot]) / float64(alive)

	farmerID := s.Vocations.Find("farmer")
	fisherID := s.Vocations.Find("fisher")
	smithID := s.Vocations.Find("smith")
	potterID := s.Vocations.Find("potter")

	targetVoc := -1
	if farmerID >= 0 && pcGrain < 3.0 {
		targetVoc = farmerID
	}
	if fisherID >= 0 && pcFish < 2.0 && (targetVoc < 0 || pcFish < pcGrain) {
		targetVoc = fisherID
	}
	if smithID >= 0 && pcTool < 0.6 {
		targetVoc = smithID
	}
	if potterID >= 0 && pcPot < 0.6 {
		targetVoc = potterID
	}
	if targetVoc < 0 {
		return
	}

	limit := alive/50 + 1
	switched := 0
	for i := range s.Agents {
		a := &s.Agents[i]
		if !a.Alive() {
			continue
		}
		if a.Age < 17 {
			continue
		}
		if a.VocationID == targetVoc {
			continue
		}
		hh := s.Households[a.HouseholdID]
		if hh.ParentID == i {
			continue
		}

		r := rng.F01(s.Seed, uint32(a.X), uint32(a.Y), uint32(s.Day)^0x5A17C9)
		if r < 0.05 {
			a.VocationID = targetVoc
			switched++
			if switched >= limit {
				break
			}
		}
	}

	if switched > 0 {
		name := "?"
		if v, ok := s.Vocations.Get(targetVoc); ok {
			name = v.Name
		}
		fmt.Printf("Day %d: role switching nudged %d adults into vocation '%s'\n", s.Day, switched, name)
	}
}
