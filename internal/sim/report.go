package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/talgya/bronzesim/internal/world"
)

// Snapshot is the JSON-serializable state written by WriteSnapshot.
type Snapshot struct {
	Day       int            `json:"day"`
	Season    string         `json:"season"`
	Alive     int            `json:"alive"`
	Inventory InventoryTotal `json:"inventory"`
	Vocations map[string]int `json:"vocations"`
}

// InventoryTotal is the population-wide sum of carried items.
type InventoryTotal struct {
	Fish   int `json:"fish"`
	Grain  int `json:"grain"`
	Wood   int `json:"wood"`
	Clay   int `json:"clay"`
	Copper int `json:"copper"`
	Tin    int `json:"tin"`
	Bronze int `json:"bronze"`
	Tool   int `json:"tool"`
	Pot    int `json:"pot"`
}

// aggregate sums inventory and vocation counts across living agents.
func (s *Simulator) aggregate() (inv [world.NumItems]int, vocCounts []int, alive int) {
	vocCounts = make([]int, len(s.Vocations.Vocations))
	for i := range s.Agents {
		a := &s.Agents[i]
		if !a.Alive() {
			continue
		}
		alive++
		for it := 0; it < int(world.NumItems); it++ {
			inv[it] += a.Inv[it]
		}
		if a.VocationID >= 0 && a.VocationID < len(vocCounts) {
			vocCounts[a.VocationID]++
		}
	}
	return
}

// Report writes the one-line population summary followed by a
// vocation-count line to stdout. The "cache_chunks=0" field is a
// literal carried from the reporting format's original definition,
// not a live cache statistic, and grain is intentionally omitted from
// the inventory tally.
func (s *Simulator) Report() {
	inv, vocCounts, alive := s.aggregate()
	season := world.SeasonOf(s.Day)

	fmt.Printf(
		"Day %d season=%s alive=%d cache_chunks=0 | fish=%d...wood=%d clay=%d cu=%d tin=%d bronze=%d tool=%d pot=%d\n",
		s.Day, season, alive,
		inv[world.ItemFish], inv[world.ItemWood], inv[world.ItemClay], inv[world.ItemCopper],
		inv[world.ItemTin], inv[world.ItemBronze], inv[world.ItemTool], inv[world.ItemPot],
	)

	var b strings.Builder
	b.WriteString("  vocations:")
	for i, v := range s.Vocations.Vocations {
		fmt.Fprintf(&b, " %s=%d", v.Name, vocCounts[i])
	}
	b.WriteByte('\n')
	fmt.Print(b.String())
}

// WriteSnapshot writes the current population state as indented JSON
// to path.
func (s *Simulator) WriteSnapshot(path string) error {
	inv, vocCounts, alive := s.aggregate()
	season := world.SeasonOf(s.Day)

	snap := Snapshot{
		Day:    s.Day,
		Season: season.String(),
		Alive:  alive,
		Inventory: InventoryTotal{
			Fish:   inv[world.ItemFish],
			Grain:  inv[world.ItemGrain],
			Wood:   inv[world.ItemWood],
			Clay:   inv[world.ItemClay],
			Copper: inv[world.ItemCopper],
			Tin:    inv[world.ItemTin],
			Bronze: inv[world.ItemBronze],
			Tool:   inv[world.ItemTool],
			Pot:    inv[world.ItemPot],
		},
		Vocations: make(map[string]int, len(s.Vocations.Vocations)),
	}
	for i, v := range s.Vocations.Vocations {
		snap.Vocations[v.Name] = vocCounts[i]
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// cellChar renders one map cell by terrain-tag priority: settlement,
// coast, river, marsh, hill, forest, field, beach, else blank.
func cellChar(tags world.Tag) byte {
	switch {
	case tags.Has(world.TagSettle):
		return 'S'
	case tags.Has(world.TagCoast):
		return '~'
	case tags.Has(world.TagRiver):
		return 'r'
	case tags.Has(world.TagMarsh):
		return 'm'
	case tags.Has(world.TagHill):
		return '^'
	case tags.Has(world.TagForest):
		return 'f'
	case tags.Has(world.TagField):
		return '.'
	case tags.Has(world.TagBeach):
		return 'b'
	default:
		return ' '
	}
}

// WriteMap writes a w-by-h ASCII terrain overview centered on the
// world midpoint to path, one row per line.
func (s *Simulator) WriteMap(path string, w, h int) error {
	cx := world.WorldCellsX / 2
	cy := world.WorldCellsY / 2
	sx := cx - w/2
	sy := cy - h/2

	var b strings.Builder
	row := make([]byte, w)
	for yy := sy; yy < sy+h; yy++ {
		for xx := sx; xx < sx+w; xx++ {
			if xx < 0 || yy < 0 || xx >= world.WorldCellsX || yy >= world.WorldCellsY {
				row[xx-sx] = ' '
				continue
			}
			ch, idx := s.Cache.GetCell(int32(xx), int32(yy))
			row[xx-sx] = cellChar(ch.Terrain[idx])
		}
		b.Write(row)
		b.WriteByte('\n')
	}
	return os.WriteFile(path, []byte(b.String()), 0o644)
}
