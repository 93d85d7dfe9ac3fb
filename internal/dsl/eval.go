package dsl

import "github.com/talgya/bronzesim/internal/world"

// Eval reports whether cond's clauses all pass for the given agent
// state. An absent clause always passes; present clauses are ANDed
// together. roll is the pre-drawn probability-gate sample for the
// "prob" clause, if present.
func Eval(cond Condition, hunger, fatigue float64, season world.Season, inv [world.NumItems]int, roll float64) bool {
	if cond.HasHunger && !(hunger > cond.HungerThreshold) {
		return false
	}
	if cond.HasFatigue && !(fatigue < cond.FatigueThreshold) {
		return false
	}
	if cond.SeasonEq != world.SeasonAny && season != cond.SeasonEq {
		return false
	}
	for _, clause := range cond.Inv {
		v := inv[clause.Item]
		var ok bool
		switch clause.Cmp {
		case CmpGT:
			ok = v > clause.Value
		case CmpLT:
			ok = v < clause.Value
		case CmpGE:
			ok = v >= clause.Value
		case CmpLE:
			ok = v <= clause.Value
		default:
			ok = true
		}
		if !ok {
			return false
		}
	}
	if cond.HasProb && !(roll < cond.Prob) {
		return false
	}
	return true
}
