package world

import "golang.org/x/exp/slices"

type chunkKey struct {
	CX, CY int32
}

// Cache is a fixed-capacity LRU of materialized chunks, keyed by
// (cx,cy). A miss materializes the chunk from Gen; a hit moves the
// chunk to the MRU end. Eviction is strictly least-recently-used.
// Chunk contents are pure functions of (seed,cx,cy), so an eviction
// followed by a re-fetch reproduces identical bytes.
type Cache struct {
	gen      Gen
	capacity int
	chunks   map[chunkKey]*Chunk
	order    []chunkKey // order[0] is LRU, order[len-1] is MRU
}

// NewCache builds a chunk cache bound to gen that holds at most
// capacity chunks; capacity is floored at 1.
func NewCache(gen Gen, capacity int) *Cache {
	if capacity < 1 {
		capacity = 1
	}
	return &Cache{
		gen:      gen,
		capacity: capacity,
		chunks:   make(map[chunkKey]*Chunk, capacity),
		order:    make([]chunkKey, 0, capacity),
	}
}

// Len reports the number of chunks currently resident.
func (c *Cache) Len() int {
	return len(c.chunks)
}

// touch moves key to the MRU end of the order slice.
func (c *Cache) touch(key chunkKey) {
	if i := slices.Index(c.order, key); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	c.order = append(c.order, key)
}

// GetChunk returns the chunk at (cx,cy), materializing and caching it
// on a miss and evicting the least-recently-used chunk if the cache is
// then over capacity.
func (c *Cache) GetChunk(cx, cy int32) *Chunk {
	key := chunkKey{cx, cy}
	if ch, ok := c.chunks[key]; ok {
		c.touch(key)
		return ch
	}

	ch := c.gen.GenerateChunk(cx, cy)
	c.chunks[key] = ch
	c.touch(key)

	for len(c.order) > c.capacity {
		lru := c.order[0]
		c.order = c.order[1:]
		delete(c.chunks, lru)
	}
	return ch
}

// GetCell resolves world-cell (x,y) to its resident chunk and the
// cell's flat index within it.
func (c *Cache) GetCell(x, y int32) (*Chunk, int32) {
	cx := x / ChunkSize
	cy := y / ChunkSize
	ch := c.GetChunk(cx, cy)
	idx := (y%ChunkSize)*ChunkSize + (x % ChunkSize)
	return ch, idx
}

// RegenLoaded applies one day's seasonal per-cell regeneration to
// every currently resident chunk, per the resource renewal rates and
// the season's fish/grain multipliers. It runs unconditionally every
// day regardless of whether the aggregate resource pool is the model
// actually driving that day's gather economics.
func (c *Cache) RegenLoaded(rates Rates, season Season) {
	fishMul := FishRegenMultiplier(season)
	grainMul := GrainRegenMultiplier(season)

	for _, key := range c.order {
		ch := c.chunks[key]
		for i := 0; i < CellsPerChunk; i++ {
			tags := ch.Terrain[i]

			if tags.Has(TagSettle) {
				ch.Res[ResFire][i] = addU8(ch.Res[ResFire][i], rates[ResFire]*255.0)
				ch.Res[ResReligion][i] = addU8(ch.Res[ResReligion][i], rates[ResReligion]*255.0)
				ch.Res[ResTribalism][i] = addU8(ch.Res[ResTribalism][i], rates[ResTribalism]*255.0)
			}
			if tags.Has(TagCoast) {
				ch.Res[ResFish][i] = addU8(ch.Res[ResFish][i], rates[ResFish]*fishMul*255.0)
			}
			if tags.Has(TagField) {
				ch.Res[ResGrain][i] = addU8(ch.Res[ResGrain][i], rates[ResGrain]*grainMul*255.0)
				ch.Res[ResPlantFiber][i] = addU8(ch.Res[ResPlantFiber][i], rates[ResPlantFiber]*255.0)
				ch.Res[ResCattle][i] = addU8(ch.Res[ResCattle][i], rates[ResCattle]*255.0)
				ch.Res[ResSheep][i] = addU8(ch.Res[ResSheep][i], rates[ResSheep]*255.0)
				ch.Res[ResPig][i] = addU8(ch.Res[ResPig][i], rates[ResPig]*255.0)
			}
			if tags.Has(TagForest) {
				ch.Res[ResWood][i] = addU8(ch.Res[ResWood][i], rates[ResWood]*255.0)
				ch.Res[ResCharcoal][i] = addU8(ch.Res[ResCharcoal][i], rates[ResCharcoal]*255.0)
			}
			if tags.Has(TagRiver) || tags.Has(TagMarsh) {
				ch.Res[ResClay][i] = addU8(ch.Res[ResClay][i], rates[ResClay]*255.0)
			}
			if tags.Has(TagHill) {
				ch.Res[ResCopper][i] = addU8(ch.Res[ResCopper][i], rates[ResCopper]*255.0)
				ch.Res[ResTin][i] = addU8(ch.Res[ResTin][i], rates[ResTin]*255.0)
			}
		}
	}
}

func addU8(v uint8, delta float64) uint8 {
	return clampU8Int(int(v) + int(delta))
}
