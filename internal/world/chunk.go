package world

import (
	"sync"

	"github.com/rs/zerolog/log"
)

// Chunk stores a box of block columns and serves it as a Grid.
type Chunk struct {
	Bounds    Bounds
	mu        sync.RWMutex
	store     ColumnStorage
	dimension Dimensions
	skyLight  int
}

var _ Grid = (*Chunk)(nil)

// NewChunk allocates empty in-memory columns for bounds. Sky light starts
// at full brightness.
func NewChunk(bounds Bounds) *Chunk {
	dim := bounds.Size()
	return &Chunk{
		Bounds:    bounds,
		store:     newMemoryColumns(),
		dimension: dim,
		skyLight:  MaxLightLevel,
	}
}

func (c *Chunk) columnIndex(localX, localY int) int {
	return localY*c.dimension.Width + localX
}

func trimColumn(column []Block) []Block {
	end := len(column)
	for end > 0 && blockIsAir(column[end-1]) {
		end--
	}
	return column[:end]
}

func (c *Chunk) GlobalToLocal(coord BlockCoord) (int, int, int, bool) {
	if !c.Bounds.Contains(coord) {
		return 0, 0, 0, false
	}
	return coord.X - c.Bounds.Min.X,
		coord.Y - c.Bounds.Min.Y,
		coord.Z - c.Bounds.Min.Z, true
}

func (c *Chunk) inLocalBounds(localX, localY, localZ int) bool {
	return localX >= 0 && localY >= 0 && localZ >= 0 &&
		localX < c.dimension.Width && localY < c.dimension.Depth && localZ < c.dimension.Height
}

func (c *Chunk) loadColumn(localX, localY int) ([]Block, bool) {
	idx := c.columnIndex(localX, localY)
	c.mu.RLock()
	store := c.store
	c.mu.RUnlock()
	if store == nil {
		return nil, false
	}
	column, ok, err := store.LoadColumn(idx)
	if err != nil {
		log.Error().Err(err).Int("column", idx).Msg("chunk load column")
		return nil, false
	}
	return column, ok
}

func (c *Chunk) LocalBlock(localX, localY, localZ int) (Block, bool) {
	if !c.inLocalBounds(localX, localY, localZ) {
		return Block{}, false
	}
	column, ok := c.loadColumn(localX, localY)
	if !ok || localZ >= len(column) || blockIsAir(column[localZ]) {
		return Air, true
	}
	return column[localZ], true
}

func (c *Chunk) SetLocalBlock(localX, localY, localZ int, block Block) bool {
	if !c.inLocalBounds(localX, localY, localZ) {
		return false
	}
	idx := c.columnIndex(localX, localY)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return false
	}
	column, ok, err := c.store.LoadColumn(idx)
	if err != nil {
		log.Error().Err(err).Int("column", idx).Msg("chunk load column")
		return false
	}
	if !ok {
		column = make([]Block, localZ+1)
	} else if localZ >= len(column) {
		expanded := make([]Block, localZ+1)
		copy(expanded, column)
		column = expanded
	}
	if blockIsAir(block) {
		column[localZ] = Block{}
	} else {
		column[localZ] = block
	}
	column = trimColumn(column)
	if len(column) == 0 {
		err = c.store.Delete(idx)
	} else {
		err = c.store.SaveColumn(idx, column)
	}
	if err != nil {
		log.Error().Err(err).Int("column", idx).Msg("chunk persist column")
		return false
	}
	return true
}

// Block returns the content at coord; coordinates outside the chunk read as void.
func (c *Chunk) Block(coord BlockCoord) Block {
	localX, localY, localZ, ok := c.GlobalToLocal(coord)
	if !ok {
		return Block{Type: BlockVoid}
	}
	block, _ := c.LocalBlock(localX, localY, localZ)
	return block
}

// SetBlock writes block at coord. Writes outside the chunk are dropped.
func (c *Chunk) SetBlock(coord BlockCoord, block Block) {
	localX, localY, localZ, ok := c.GlobalToLocal(coord)
	if !ok {
		return
	}
	c.SetLocalBlock(localX, localY, localZ, block)
}

// ForEachBlock iterates over non-air blocks, invoking fn with global coordinates.
func (c *Chunk) ForEachBlock(fn func(global BlockCoord, block Block) bool) {
	c.mu.RLock()
	store := c.store
	bounds := c.Bounds
	dim := c.dimension
	c.mu.RUnlock()
	if store == nil {
		return
	}

	if err := store.ForEach(func(idx int, column []Block) bool {
		localX := idx % dim.Width
		localY := idx / dim.Width
		for localZ, block := range column {
			if blockIsAir(block) {
				continue
			}
			global := BlockCoord{
				X: bounds.Min.X + localX,
				Y: bounds.Min.Y + localY,
				Z: bounds.Min.Z + localZ,
			}
			if !fn(global, block) {
				return false
			}
		}
		return true
	}); err != nil {
		log.Error().Err(err).Msg("chunk iterate blocks")
	}
}

func (c *Chunk) Dimensions() Dimensions {
	return c.dimension
}

// SetColumnBlocks replaces the entire vertical column at the given local coordinates.
func (c *Chunk) SetColumnBlocks(localX, localY int, blocks []Block) bool {
	if localX < 0 || localY < 0 || localX >= c.dimension.Width || localY >= c.dimension.Depth {
		return false
	}
	idx := c.columnIndex(localX, localY)
	column := trimColumn(append([]Block(nil), blocks...))
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.store == nil {
		return false
	}
	var err error
	if len(column) == 0 {
		err = c.store.Delete(idx)
	} else {
		err = c.store.SaveColumn(idx, column)
	}
	if err != nil {
		log.Error().Err(err).Int("column", idx).Msg("chunk persist column")
		return false
	}
	return true
}
