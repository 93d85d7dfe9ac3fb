// Package economy holds the per-settlement subjective item valuations
// that drive trade decisions.
package economy

import "github.com/talgya/bronzesim/internal/world"

// Valuation is a settlement's per-item subjective worth, consulted by
// trade to decide which offered item is most valuable and whether an
// exchange improves the trader's holdings.
type Valuation [world.NumItems]float64

// NewValuation derives a settlement's valuations from its resource
// ratio r (a stable per-settlement draw in [0,1)): coastal-leaning
// settlements (high r) value fish, pottery, tools, and bronze more;
// inland-leaning settlements (low r) value grain more. Items without
// an explicit rule default to 1.0.
func NewValuation(r float64) Valuation {
	var v Valuation
	for i := range v {
		v[i] = 1.0
	}
	v[world.ItemFish] = 1.0 + 0.5*r
	v[world.ItemGrain] = 1.0 + 0.5*(1-r)
	v[world.ItemPot] = 1.0 + 0.4*r
	v[world.ItemTool] = 1.2 + 0.6*r
	v[world.ItemBronze] = 1.3 + 0.7*r
	return v
}
