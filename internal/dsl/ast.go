// Package dsl implements the BRONZESIM vocation/task/rule language: a
// tokenizer, a recursive-descent parser for the world/sim/agents/
// settlements/resources/vocations blocks, a condition evaluator, and
// a weighted task picker. There is no separate configuration-file
// format: the parsed world/sim blocks ARE the simulator's
// configuration surface.
package dsl

import "github.com/talgya/bronzesim/internal/world"

// OpKind is one of the six task operations the executor understands.
type OpKind int

const (
	OpMoveTo OpKind = iota
	OpGather
	OpCraft
	OpTrade
	OpRest
	OpRoam
)

// Op is one instruction in a task body. ArgI carries a numeric
// argument (an amount or step count); ArgJ carries a symbolic
// argument resolved at parse time to a Tag/Resource/Item ordinal.
type Op struct {
	Kind OpKind
	ArgI int
	ArgJ int
}

// Task is a named ordered sequence of ops.
type Task struct {
	Name string
	Ops  []Op
}

// Comparator is one of the four relational operators a condition's
// inventory clauses may use.
type Comparator int

const (
	CmpAny Comparator = iota
	CmpGT
	CmpLT
	CmpGE
	CmpLE
)

// InvClause gates a rule on the agent's count of one inventory item.
type InvClause struct {
	Item  world.Item
	Cmp   Comparator
	Value int
}

// Condition is a fixed-shape record of optional clauses: no open-ended
// predicate tree, matching the DSL's closed grammar. Up to four
// inventory clauses may be present.
type Condition struct {
	HasHunger        bool
	HungerThreshold  float64
	HasFatigue       bool
	FatigueThreshold float64
	SeasonEq         world.Season // world.SeasonAny if unset
	Inv              []InvClause
	HasProb          bool
	Prob             float64
}

// Rule is a (condition, task name, weight) triple participating in a
// per-day weighted draw.
type Rule struct {
	Name     string
	Cond     Condition
	TaskName string
	Weight   int
}

// Vocation is a named behavior program: an ordered list of tasks and
// an ordered list of weighted rules that select among them.
type Vocation struct {
	Name  string
	Tasks []Task
	Rules []Rule
}

// FindTask resolves a task by name within the vocation.
func (v *Vocation) FindTask(name string) (*Task, bool) {
	for i := range v.Tasks {
		if v.Tasks[i].Name == name {
			return &v.Tasks[i], true
		}
	}
	return nil, false
}

// VocationTable is the ordered list of vocations a parsed DSL program
// defines. Vocation id is its index in Vocations.
type VocationTable struct {
	Vocations []Vocation
}

// Find returns the index of the vocation named name, or -1.
func (t *VocationTable) Find(name string) int {
	for i := range t.Vocations {
		if t.Vocations[i].Name == name {
			return i
		}
	}
	return -1
}

// Get returns the vocation at id, reporting ok=false if id is out of
// range (including the "no vocation assigned" sentinel -1).
func (t *VocationTable) Get(id int) (*Vocation, bool) {
	if id < 0 || id >= len(t.Vocations) {
		return nil, false
	}
	return &t.Vocations[id], true
}

// Config is the full set of world/sim/agents/settlements/resources/
// vocations values a DSL source parses into. It is the simulator's
// entire configuration surface — there is no separate config format.
type Config struct {
	Seed              uint32
	Days              int
	AgentCount        int
	SettlementCount   int
	CacheMax          int
	Rates             world.Rates
	Vocations         VocationTable
	SnapshotEveryDays int
	MapEveryDays      int
}

// DefaultConfig returns the built-in defaults applied to any key a
// parsed source's world/sim blocks omit entirely.
func DefaultConfig() Config {
	return Config{
		Seed:              1337,
		Days:              120,
		AgentCount:        220,
		SettlementCount:   6,
		CacheMax:          2048,
		Rates:             world.DefaultRates(),
		SnapshotEveryDays: 30,
		MapEveryDays:      0,
	}
}
