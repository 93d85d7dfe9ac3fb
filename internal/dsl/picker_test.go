package dsl

import (
	"testing"

	"github.com/talgya/bronzesim/internal/world"
)

func simpleVocation() Vocation {
	return Vocation{
		Name: "farmer",
		Tasks: []Task{
			{Name: "work", Ops: []Op{{Kind: OpRest}}},
			{Name: "idle", Ops: []Op{{Kind: OpRest}}},
		},
		Rules: []Rule{
			{Name: "r1", Cond: Condition{SeasonEq: world.SeasonAny}, TaskName: "work", Weight: 10},
		},
	}
}

func TestPickTaskReturnsNilWithNoEligibleRules(t *testing.T) {
	voc := Vocation{Name: "idler", Tasks: []Task{{Name: "t", Ops: []Op{{Kind: OpRest}}}}}
	var inv [world.NumItems]int
	got := PickTask(&voc, 1, 0, 0, 1, 0, 0.1, 0.1, world.SeasonSpring, inv)
	if got != nil {
		t.Error("a vocation with zero rules should never pick a task")
	}
}

func TestPickTaskHonorsConditions(t *testing.T) {
	voc := Vocation{
		Name:  "farmer",
		Tasks: []Task{{Name: "work", Ops: []Op{{Kind: OpRest}}}},
		Rules: []Rule{
			{Name: "r1", Cond: Condition{HasHunger: true, HungerThreshold: 0.9, SeasonEq: world.SeasonAny}, TaskName: "work", Weight: 10},
		},
	}
	var inv [world.NumItems]int
	got := PickTask(&voc, 1, 5, 5, 1, 0, 0.1, 0.1, world.SeasonSpring, inv)
	if got != nil {
		t.Error("hunger 0.1 should not satisfy 'hunger > 0.9'")
	}
}

func TestPickTaskIsDeterministic(t *testing.T) {
	voc := simpleVocation()
	var inv [world.NumItems]int
	a := PickTask(&voc, 7, 12, 34, 56, 0, 0.5, 0.5, world.SeasonAutumn, inv)
	b := PickTask(&voc, 7, 12, 34, 56, 0, 0.5, 0.5, world.SeasonAutumn, inv)
	if a == nil || b == nil || a.Name != b.Name {
		t.Fatal("PickTask should return the same task for identical inputs")
	}
}

func TestPickTaskDistributesAcrossWeightedRules(t *testing.T) {
	voc := Vocation{
		Name: "farmer",
		Tasks: []Task{
			{Name: "a", Ops: []Op{{Kind: OpRest}}},
			{Name: "b", Ops: []Op{{Kind: OpRest}}},
		},
		Rules: []Rule{
			{Name: "ra", Cond: Condition{SeasonEq: world.SeasonAny}, TaskName: "a", Weight: 1},
			{Name: "rb", Cond: Condition{SeasonEq: world.SeasonAny}, TaskName: "b", Weight: 1},
		},
	}
	var inv [world.NumItems]int
	seenA, seenB := false, false
	for day := 0; day < 500; day++ {
		t := PickTask(&voc, 99, int32(day*7), int32(day*13), day, day, 0.2, 0.2, world.SeasonSpring, inv)
		if t == nil {
			continue
		}
		if t.Name == "a" {
			seenA = true
		} else if t.Name == "b" {
			seenB = true
		}
	}
	if !seenA || !seenB {
		t.Error("500 distinct draws with two equal-weight rules should hit both tasks at least once")
	}
}
