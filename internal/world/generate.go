package world

import "github.com/talgya/bronzesim/internal/rng"

// Gen is a pure, stateless generator bound to a single world seed. All
// of its methods are pure functions of (seed, x, y, ...); calling them
// repeatedly with the same arguments always returns identical results.
type Gen struct {
	Seed uint32
}

// NewGen returns a generator bound to seed.
func NewGen(seed uint32) Gen {
	return Gen{Seed: seed}
}

// noise01 returns an 8-bit noise sample for (x,y) under salt.
func (g Gen) noise01(x, y int32, salt uint32) uint32 {
	return rng.HashU32(uint32(x), uint32(y), g.Seed^salt) & 0xFF
}

// IsCoastCell reports whether (x,y) lies within 2 cells of the world
// boundary.
func IsCoastCell(x, y int32) bool {
	return x < 2 || y < 2 || x >= WorldCellsX-2 || y >= WorldCellsY-2
}

// CellTags computes the terrain tag bitfield for cell (x,y).
func (g Gen) CellTags(x, y int32) Tag {
	var tags Tag
	if IsCoastCell(x, y) {
		tags |= TagCoast
	}

	if !tags.Has(TagCoast) {
		if x < 3 || y < 3 || x > WorldCellsX-4 || y > WorldCellsY-4 {
			if g.noise01(x, y, 0xBEEF1234) < 140 {
				tags |= TagBeach
			}
		}
	}

	n1 := g.noise01(x, y, 0x1111A11A)
	n2 := g.noise01(x, y, 0x2222B22B)
	n3 := g.noise01(x, y, 0x3333C33C)
	if n1 > 150 {
		tags |= TagForest
	}
	if n2 > 200 {
		tags |= TagHill
	}
	if n3 > 215 {
		tags |= TagMarsh
	}

	rv := g.noise01(x/8, y/8, 0x52A17B3D)
	if rv > 245 {
		tags |= TagRiver
	}

	sx := (x/2000)*2000 + 1000
	sy := (y/2000)*2000 + 1000
	sc := g.noise01(sx, sy, 0x5E771EAD)

	dx := x - sx
	dy := y - sy
	d2 := dx*dx + dy*dy

	if sc > 240 && d2 < 70*70 {
		tags |= TagSettle
	}
	if sc > 240 && d2 < 250*250 {
		tags |= TagField
	}

	return tags
}

func clampU8(v int32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// CellResourceDensity computes the initial 8-bit density of resource r
// at cell (x,y) given its already-computed tags.
func (g Gen) CellResourceDensity(x, y int32, r Resource, tags Tag) uint8 {
	base := int32(g.noise01(x, y, 0x9999DDDD))
	switch r {
	case ResFish:
		if tags.Has(TagCoast) {
			return clampU8(120 + base/2)
		}
	case ResGrain:
		if tags.Has(TagField) {
			return clampU8(80 + base/3)
		}
	case ResWood:
		if tags.Has(TagForest) {
			return clampU8(90 + base/3)
		}
	case ResClay:
		if tags.Has(TagRiver) || tags.Has(TagMarsh) {
			return clampU8(60 + base/4)
		}
	case ResCopper:
		if tags.Has(TagHill) {
			if base > 240 {
				return 40
			}
			return 5
		}
	case ResTin:
		if tags.Has(TagHill) {
			if base > 250 {
				return 25
			}
			return 0
		}
	case ResFire:
		if tags.Has(TagSettle) {
			return clampU8(180 + base/4)
		}
	case ResPlantFiber:
		if tags.Has(TagMarsh) || tags.Has(TagField) {
			return clampU8(70 + base/3)
		}
	case ResCattle:
		if tags.Has(TagField) {
			return clampU8(40 + base/4)
		}
	case ResSheep:
		if tags.Has(TagField) {
			return clampU8(35 + base/4)
		}
	case ResPig:
		if tags.Has(TagField) {
			return clampU8(30 + base/4)
		}
	case ResCharcoal:
		if tags.Has(TagForest) {
			return clampU8(25 + base/5)
		}
	case ResReligion:
		if tags.Has(TagSettle) {
			return clampU8(60 + base/5)
		}
	case ResTribalism:
		if tags.Has(TagSettle) {
			return clampU8(20 + base/8)
		}
	}
	return 0
}
