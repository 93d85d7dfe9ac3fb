package dsl

import (
	"github.com/talgya/bronzesim/internal/rng"
	"github.com/talgya/bronzesim/internal/world"
)

// PickTask runs one day's weighted rule draw for an agent: rules whose
// condition passes contribute their weight to a total, then a single
// deterministic roll selects among them in declaration order. Returns
// nil if no rule's condition passes, or if every passing rule somehow
// resolves to a task the vocation doesn't define (should not happen
// after parse-time repair).
func PickTask(voc *Vocation, seed uint32, x, y int32, day int, householdID int, hunger, fatigue float64, season world.Season, inv [world.NumItems]int) *Task {
	condRoll := rng.F01(seed, uint32(x), uint32(y), uint32(day)^uint32(householdID*131))

	total := 0
	for i := range voc.Rules {
		if Eval(voc.Rules[i].Cond, hunger, fatigue, season, inv, condRoll) {
			total += voc.Rules[i].Weight
		}
	}
	if total <= 0 {
		return nil
	}

	pickRoll := rng.U32(seed, uint32(x), uint32(y), uint32(day)^0xC0FFEE)
	pick := int(pickRoll % uint32(total))

	for i := range voc.Rules {
		r := &voc.Rules[i]
		if !Eval(r.Cond, hunger, fatigue, season, inv, condRoll) {
			continue
		}
		pick -= r.Weight
		if pick < 0 {
			if t, ok := voc.FindTask(r.TaskName); ok {
				return t
			}
			return nil
		}
	}
	return nil
}
