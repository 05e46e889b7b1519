package mangrove

import (
	"testing"

	"mangrovesim/internal/world"
)

type gridWrite struct {
	coord  world.BlockCoord
	before world.Block
	after  world.Block
}

// mapGrid is a sparse Grid: unset cells are air lit at full brightness.
type mapGrid struct {
	blocks map[world.BlockCoord]world.Block
	light  map[world.BlockCoord]int
	writes []gridWrite
	onSet  func(g *mapGrid, coord world.BlockCoord, block world.Block)
}

func newMapGrid() *mapGrid {
	return &mapGrid{
		blocks: make(map[world.BlockCoord]world.Block),
		light:  make(map[world.BlockCoord]int),
	}
}

func (g *mapGrid) Block(coord world.BlockCoord) world.Block {
	if block, ok := g.blocks[coord]; ok {
		return block
	}
	return world.Air
}

func (g *mapGrid) SetBlock(coord world.BlockCoord, block world.Block) {
	if g.onSet != nil {
		g.onSet(g, coord, block)
	}
	g.writes = append(g.writes, gridWrite{coord: coord, before: g.Block(coord), after: block})
	g.blocks[coord] = block
}

func (g *mapGrid) LightLevel(coord world.BlockCoord) int {
	if level, ok := g.light[coord]; ok {
		return level
	}
	return world.MaxLightLevel
}

// put seeds content without recording a write.
func (g *mapGrid) put(coord world.BlockCoord, block world.Block) {
	g.blocks[coord] = block
}

func (g *mapGrid) fill(b world.Bounds, block world.Block) {
	scan(b, func(c world.BlockCoord) {
		g.put(c, block)
	})
}

func (g *mapGrid) snapshot() map[world.BlockCoord]world.Block {
	out := make(map[world.BlockCoord]world.Block, len(g.blocks))
	for k, v := range g.blocks {
		out[k] = v
	}
	return out
}

// fixedSource answers every Intn(n) with the configured value for n, else 0.
type fixedSource map[int]int

func (f fixedSource) Intn(n int) int {
	return f[n]
}

// oneSource mirrors a stub returning 1 for the 1-in-3/4/10/12 rolls.
var oneSource = fixedSource{3: 1, 4: 1, 10: 1, 12: 1}

// strictSource fails the test on any draw.
type strictSource struct {
	t *testing.T
}

func (s strictSource) Intn(n int) int {
	s.t.Helper()
	s.t.Fatalf("unexpected Intn(%d) draw", n)
	return 0
}

// countingSource records how often each bound was drawn.
type countingSource struct {
	inner Source
	calls map[int]int
}

func newCountingSource(inner Source) *countingSource {
	return &countingSource{inner: inner, calls: make(map[int]int)}
}

func (c *countingSource) Intn(n int) int {
	c.calls[n]++
	return c.inner.Intn(n)
}

var origin = world.BlockCoord{}

// soilFloor lays dirt under the generation region of origin.
func soilFloor(g *mapGrid) {
	g.fill(world.Bounds{
		Min: world.BlockCoord{X: -regionRadius - 1, Y: -regionRadius - 1, Z: -regionBelow - 1},
		Max: world.BlockCoord{X: regionRadius + 1, Y: regionRadius + 1, Z: -1},
	}, world.Block{Type: world.BlockDirt})
}
