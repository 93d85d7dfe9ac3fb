package world

// Chunk is a materialized 64x64 square of cells: one terrain-tag byte
// per cell and 14 parallel resource-density planes.
type Chunk struct {
	CX, CY  int32
	Terrain [CellsPerChunk]Tag
	Res     [NumResources][CellsPerChunk]uint8
}

func clampU8Int(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// GenerateChunk materializes the full chunk at (cx,cy): terrain tags
// and all 14 resource planes, computed from a single shared noise
// sample per cell the way the reference implementation reuses one
// `base` value across every tag-conditional resource formula.
func (g Gen) GenerateChunk(cx, cy int32) *Chunk {
	ch := &Chunk{CX: cx, CY: cy}
	baseX := cx * ChunkSize
	baseY := cy * ChunkSize

	for iy := int32(0); iy < ChunkSize; iy++ {
		wy := baseY + iy
		rowOff := iy * ChunkSize
		for ix := int32(0); ix < ChunkSize; ix++ {
			wx := baseX + ix
			idx := rowOff + ix

			tags := g.CellTags(wx, wy)
			ch.Terrain[idx] = tags

			base := int(g.noise01(wx, wy, 0x9999DDDD))

			if tags.Has(TagCoast) {
				ch.Res[ResFish][idx] = clampU8Int(120 + base/2)
			}
			if tags.Has(TagField) {
				ch.Res[ResGrain][idx] = clampU8Int(80 + base/3)
				ch.Res[ResPlantFiber][idx] = clampU8Int(70 + base/3)
				ch.Res[ResCattle][idx] = clampU8Int(40 + base/4)
				ch.Res[ResSheep][idx] = clampU8Int(35 + base/4)
				ch.Res[ResPig][idx] = clampU8Int(30 + base/4)
			}
			if tags.Has(TagForest) {
				ch.Res[ResWood][idx] = clampU8Int(90 + base/3)
				ch.Res[ResCharcoal][idx] = clampU8Int(25 + base/5)
			}
			if tags.Has(TagRiver) || tags.Has(TagMarsh) {
				ch.Res[ResClay][idx] = clampU8Int(60 + base/4)
				if tags.Has(TagMarsh) && ch.Res[ResPlantFiber][idx] == 0 {
					ch.Res[ResPlantFiber][idx] = clampU8Int(70 + base/3)
				}
			}
			if tags.Has(TagHill) {
				if base > 240 {
					ch.Res[ResCopper][idx] = 40
				} else {
					ch.Res[ResCopper][idx] = 5
				}
				if base > 250 {
					ch.Res[ResTin][idx] = 25
				} else {
					ch.Res[ResTin][idx] = 0
				}
			}
			if tags.Has(TagSettle) {
				ch.Res[ResFire][idx] = clampU8Int(180 + base/4)
				ch.Res[ResReligion][idx] = clampU8Int(60 + base/5)
				ch.Res[ResTribalism][idx] = clampU8Int(20 + base/8)
			}
		}
	}
	return ch
}
