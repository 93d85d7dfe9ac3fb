package dsl

import (
	"log/slog"
	"strconv"

	"github.com/talgya/bronzesim/internal/world"
)

var renewKeys = map[string]world.Resource{
	"fish_renew":        world.ResFish,
	"grain_renew":       world.ResGrain,
	"wood_renew":        world.ResWood,
	"clay_renew":        world.ResClay,
	"copper_renew":      world.ResCopper,
	"tin_renew":         world.ResTin,
	"fire_renew":        world.ResFire,
	"plant_fiber_renew": world.ResPlantFiber,
	"cattle_renew":      world.ResCattle,
	"sheep_renew":       world.ResSheep,
	"pig_renew":         world.ResPig,
	"charcoal_renew":    world.ResCharcoal,
	"religion_renew":    world.ResReligion,
	"tribalism_renew":   world.ResTribalism,
}

type parser struct {
	lx     *lexer
	logger *slog.Logger
}

// Parse parses a complete .bronze DSL source into a Config, starting
// from DefaultConfig() and overriding whatever keys the source sets.
// logger receives Warn-level notices for rule-reference repairs; it
// may be nil.
func Parse(src string, logger *slog.Logger) (*Config, error) {
	p := &parser{lx: newLexer(src), logger: logger}
	cfg := DefaultConfig()

	for {
		t := p.lx.next()
		if t.kind == tokEOF {
			break
		}
		if t.kind != tokWord {
			continue
		}

		var err error
		switch t.text {
		case "world":
			err = p.parseWorldBlock(&cfg)
		case "sim":
			err = p.parseSimBlock(&cfg)
		case "agents":
			err = p.parseAgentsBlock(&cfg)
		case "settlements":
			err = p.parseSettlementsBlock(&cfg)
		case "resources":
			err = p.parseResourcesBlock(&cfg)
		case "vocations":
			err = p.parseVocationsBlock(&cfg)
		default:
			err = p.skipUnknownBlock()
		}
		if err != nil {
			return nil, err
		}
	}

	return &cfg, nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	t := p.lx.next()
	if t.kind != kind {
		return t, parseErrorf(t.line, "unexpected token %q", t.text)
	}
	return t, nil
}

func toI32(t token) (int, error) {
	n, err := strconv.Atoi(t.text)
	if err != nil {
		return 0, parseErrorf(t.line, "expected integer, got %q", t.text)
	}
	return n, nil
}

func toU32(t token) (uint32, error) {
	n, err := strconv.ParseInt(t.text, 10, 64)
	if err != nil {
		return 0, parseErrorf(t.line, "expected integer, got %q", t.text)
	}
	if n < 0 {
		n = 0
	}
	return uint32(uint64(n) & 0xFFFFFFFF), nil
}

func toF32(t token) (float64, error) {
	f, err := strconv.ParseFloat(t.text, 64)
	if err != nil {
		return 0, parseErrorf(t.line, "expected number, got %q", t.text)
	}
	return f, nil
}

func parseCmp(s string) (Comparator, bool) {
	switch s {
	case ">":
		return CmpGT, true
	case "<":
		return CmpLT, true
	case ">=":
		return CmpGE, true
	case "<=":
		return CmpLE, true
	default:
		return CmpAny, false
	}
}

// skipUnknownBlock consumes an unrecognized top-level block name's
// body: if followed by '{', it skips to the matching '}'; otherwise
// the single token that followed the keyword is consumed and dropped.
func (p *parser) skipUnknownBlock() error {
	t := p.lx.next()
	if t.kind != tokLBrace {
		return nil
	}
	depth := 1
	for depth > 0 {
		x := p.lx.next()
		if x.kind == tokEOF {
			return nil
		}
		switch x.kind {
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
		}
	}
	return nil
}

// skipUnknownKV mirrors skipUnknownBlock for a single unrecognized
// key within a block body: an unknown key followed by '{' skips a
// nested block, otherwise it consumes the single value WORD that
// follows.
func (p *parser) skipUnknownKV() {
	t := p.lx.next()
	if t.kind != tokLBrace {
		return
	}
	depth := 1
	for depth > 0 {
		x := p.lx.next()
		if x.kind == tokEOF {
			return
		}
		switch x.kind {
		case tokLBrace:
			depth++
		case tokRBrace:
			depth--
		}
	}
}

func (p *parser) parseWorldBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		k := p.lx.next()
		if k.kind == tokRBrace {
			return nil
		}
		if k.kind != tokWord {
			return parseErrorf(k.line, "expected key in world block")
		}
		v, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		switch k.text {
		case "seed":
			n, err := toU32(v)
			if err != nil {
				return err
			}
			cfg.Seed = n
		case "days":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.Days = n
		case "cache_max":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 16 {
				n = 16
			}
			cfg.CacheMax = n
		case "snapshot_every":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.SnapshotEveryDays = n
		case "map_every":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.MapEveryDays = n
		case "agents":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 1 {
				n = 1
			}
			cfg.AgentCount = n
		case "settlements":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 1 {
				n = 1
			}
			cfg.SettlementCount = n
		}
	}
}

func (p *parser) parseSimBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		k := p.lx.next()
		if k.kind == tokRBrace {
			return nil
		}
		if k.kind != tokWord {
			return parseErrorf(k.line, "expected key in sim block")
		}
		v, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		switch k.text {
		case "days":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.Days = n
		case "cache_max":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 16 {
				n = 16
			}
			cfg.CacheMax = n
		case "snapshot_every":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.SnapshotEveryDays = n
		case "map_every":
			n, err := toI32(v)
			if err != nil {
				return err
			}
			cfg.MapEveryDays = n
		}
	}
}

func (p *parser) parseAgentsBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		k := p.lx.next()
		if k.kind == tokRBrace {
			return nil
		}
		if k.kind != tokWord {
			return parseErrorf(k.line, "expected key in agents block")
		}
		v, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		if k.text == "count" {
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 1 {
				n = 1
			}
			cfg.AgentCount = n
		}
	}
}

func (p *parser) parseSettlementsBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		k := p.lx.next()
		if k.kind == tokRBrace {
			return nil
		}
		if k.kind != tokWord {
			return parseErrorf(k.line, "expected key in settlements block")
		}
		v, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		if k.text == "count" {
			n, err := toI32(v)
			if err != nil {
				return err
			}
			if n < 1 {
				n = 1
			}
			cfg.SettlementCount = n
		}
	}
}

func (p *parser) parseResourcesBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		k := p.lx.next()
		if k.kind == tokRBrace {
			return nil
		}
		if k.kind != tokWord {
			return parseErrorf(k.line, "expected key in resources block")
		}
		v, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		f, err := toF32(v)
		if err != nil {
			return err
		}
		if r, ok := renewKeys[k.text]; ok {
			cfg.Rates[r] = f
		}
	}
}

func (p *parser) parseVocationsBlock(cfg *Config) error {
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		t := p.lx.next()
		if t.kind == tokRBrace {
			return nil
		}
		if t.kind != tokWord || t.text != "vocation" {
			return parseErrorf(t.line, "expected 'vocation' within vocations block")
		}

		nameTok, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		voc := Vocation{Name: nameTok.text}

		if _, err := p.expect(tokLBrace); err != nil {
			return err
		}
		for {
			k := p.lx.next()
			if k.kind == tokRBrace {
				break
			}
			if k.kind != tokWord {
				return parseErrorf(k.line, "expected keyword in vocation body")
			}
			switch k.text {
			case "task":
				if err := p.parseTask(&voc); err != nil {
					return err
				}
			case "rule":
				if err := p.parseRule(&voc); err != nil {
					return err
				}
			default:
				p.skipUnknownKV()
			}
		}

		p.repairRules(&voc)
		cfg.Vocations.Vocations = append(cfg.Vocations.Vocations, voc)
	}
}

func (p *parser) parseTask(voc *Vocation) error {
	nameTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	task := Task{Name: nameTok.text}

	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}
	for {
		op := p.lx.next()
		if op.kind == tokRBrace {
			break
		}
		if op.kind != tokWord {
			return parseErrorf(op.line, "expected op name in task %q", nameTok.text)
		}

		switch op.text {
		case "move_to":
			tagTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			tag, ok := world.TagByName(tagTok.text)
			if !ok {
				return parseErrorf(tagTok.line, "unknown tag %q in move_to", tagTok.text)
			}
			task.Ops = append(task.Ops, Op{Kind: OpMoveTo, ArgJ: int(tag)})
		case "gather":
			resTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			amtTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			amt, err := toI32(amtTok)
			if err != nil {
				return err
			}
			res, ok := world.ResourceByName(resTok.text)
			if !ok {
				return parseErrorf(resTok.line, "unknown resource %q in gather", resTok.text)
			}
			task.Ops = append(task.Ops, Op{Kind: OpGather, ArgI: amt, ArgJ: int(res)})
		case "craft":
			itemTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			amtTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			amt, err := toI32(amtTok)
			if err != nil {
				return err
			}
			item, ok := world.ItemByName(itemTok.text)
			if !ok {
				return parseErrorf(itemTok.line, "unknown item %q in craft", itemTok.text)
			}
			task.Ops = append(task.Ops, Op{Kind: OpCraft, ArgI: amt, ArgJ: int(item)})
		case "trade":
			task.Ops = append(task.Ops, Op{Kind: OpTrade})
		case "rest":
			task.Ops = append(task.Ops, Op{Kind: OpRest})
		case "roam":
			stepsTok, err := p.expect(tokWord)
			if err != nil {
				return err
			}
			steps, err := toI32(stepsTok)
			if err != nil {
				return err
			}
			task.Ops = append(task.Ops, Op{Kind: OpRoam, ArgI: steps})
		default:
			return parseErrorf(op.line, "unknown op %q in task %q", op.text, nameTok.text)
		}
	}

	voc.Tasks = append(voc.Tasks, task)
	return nil
}

// parseCondition parses the clauses of a `when … do` header, stopping
// at and consuming the `do` keyword.
func (p *parser) parseCondition() (Condition, error) {
	cond := Condition{SeasonEq: world.SeasonAny}

	for {
		a, err := p.expect(tokWord)
		if err != nil {
			return cond, parseErrorf(a.line, "expected condition clause")
		}

		switch a.text {
		case "hunger":
			opTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			vTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			if opTok.text != ">" {
				return cond, parseErrorf(opTok.line, "only 'hunger > x' is supported, got %q", opTok.text)
			}
			v, err := toF32(vTok)
			if err != nil {
				return cond, err
			}
			cond.HasHunger = true
			cond.HungerThreshold = v
		case "fatigue":
			opTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			vTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			if opTok.text != "<" {
				return cond, parseErrorf(opTok.line, "only 'fatigue < x' is supported, got %q", opTok.text)
			}
			v, err := toF32(vTok)
			if err != nil {
				return cond, err
			}
			cond.HasFatigue = true
			cond.FatigueThreshold = v
		case "season":
			opTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			vTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			if opTok.text != "==" {
				return cond, parseErrorf(opTok.line, "only 'season == <name>' is supported, got %q", opTok.text)
			}
			s, ok := world.SeasonByName(vTok.text)
			if !ok {
				s = world.SeasonAny
			}
			cond.SeasonEq = s
		case "inv":
			itemTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			opTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			vTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			item, ok := world.ItemByName(itemTok.text)
			if !ok {
				return cond, parseErrorf(itemTok.line, "unknown item %q in inv clause", itemTok.text)
			}
			cmp, ok := parseCmp(opTok.text)
			if !ok {
				return cond, parseErrorf(opTok.line, "unknown comparison %q in inv clause", opTok.text)
			}
			v, err := toI32(vTok)
			if err != nil {
				return cond, err
			}
			if len(cond.Inv) >= 4 {
				return cond, parseErrorf(vTok.line, "too many inv clauses (max 4)")
			}
			cond.Inv = append(cond.Inv, InvClause{Item: item, Cmp: cmp, Value: v})
		case "prob":
			vTok, err := p.expect(tokWord)
			if err != nil {
				return cond, err
			}
			v, err := toF32(vTok)
			if err != nil {
				return cond, err
			}
			if v < 0 {
				v = 0
			}
			if v > 1 {
				v = 1
			}
			cond.HasProb = true
			cond.Prob = v
		default:
			return cond, parseErrorf(a.line, "unknown condition clause %q", a.text)
		}

		next := p.lx.next()
		if next.kind == tokWord && next.text == "and" {
			continue
		}
		if next.kind == tokWord && next.text == "do" {
			return cond, nil
		}
		return cond, parseErrorf(next.line, "expected 'do' after condition, got %q", next.text)
	}
}

func (p *parser) parseRule(voc *Vocation) error {
	nameTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	if _, err := p.expect(tokLBrace); err != nil {
		return err
	}

	whenTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	if whenTok.text != "when" {
		return parseErrorf(whenTok.line, "rule must start with 'when'")
	}

	cond, err := p.parseCondition()
	if err != nil {
		return err
	}

	taskTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}

	weightKw, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	if weightKw.text != "weight" {
		return parseErrorf(weightKw.line, "expected 'weight'")
	}

	weightTok, err := p.expect(tokWord)
	if err != nil {
		return err
	}
	weight, err := toI32(weightTok)
	if err != nil {
		return err
	}

	maybe := p.lx.next()
	if maybe.kind == tokWord && maybe.text == "prob" {
		pvTok, err := p.expect(tokWord)
		if err != nil {
			return err
		}
		pv, err := toF32(pvTok)
		if err != nil {
			return err
		}
		if pv < 0 {
			pv = 0
		}
		if pv > 1 {
			pv = 1
		}
		cond.HasProb = true
		cond.Prob = pv
		maybe = p.lx.next()
	}

	if maybe.kind != tokRBrace {
		return parseErrorf(maybe.line, "expected '}' to end rule block")
	}

	voc.Rules = append(voc.Rules, Rule{Name: nameTok.text, Cond: cond, TaskName: taskTok.text, Weight: weight})
	return nil
}

// repairRules rewrites a rule referencing a non-existent task to the
// vocation's first task, synthesizing a single-op `idle { rest }`
// task if the vocation defines no tasks at all.
func (p *parser) repairRules(voc *Vocation) {
	if len(voc.Rules) == 0 {
		return
	}
	known := make(map[string]bool, len(voc.Tasks))
	for _, t := range voc.Tasks {
		known[t.Name] = true
	}

	for i := range voc.Rules {
		r := &voc.Rules[i]
		if known[r.TaskName] {
			continue
		}
		if len(voc.Tasks) > 0 {
			if p.logger != nil {
				p.logger.Warn("rule references unknown task, rewriting to vocation's first task",
					"vocation", voc.Name, "rule", r.Name, "task", r.TaskName, "rewritten_to", voc.Tasks[0].Name)
			}
			r.TaskName = voc.Tasks[0].Name
		} else {
			if p.logger != nil {
				p.logger.Warn("vocation has no tasks, synthesizing idle task",
					"vocation", voc.Name, "rule", r.Name)
			}
			voc.Tasks = append(voc.Tasks, Task{Name: "idle", Ops: []Op{{Kind: OpRest}}})
			known["idle"] = true
			r.TaskName = "idle"
		}
	}
}
