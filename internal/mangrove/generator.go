package mangrove

import (
	"github.com/rs/zerolog"

	"mangrovesim/internal/world"
)

const (
	regionRadius = 4
	regionBelow  = 2
	regionAbove  = 10

	trunkHeight  = 6
	heightJitter = 3
)

// Region returns the 9x9x13 box a tree grown at pos may touch.
func Region(pos world.BlockCoord) world.Bounds {
	return world.BoundsAround(pos,
		world.BlockCoord{X: -regionRadius, Y: -regionRadius, Z: -regionBelow},
		world.BlockCoord{X: regionRadius, Y: regionRadius, Z: regionAbove},
	)
}

// scan visits every cell of b with X outermost and Z innermost, ascending.
func scan(b world.Bounds, fn func(world.BlockCoord)) {
	for x := b.Min.X; x <= b.Max.X; x++ {
		for y := b.Min.Y; y <= b.Max.Y; y++ {
			for z := b.Min.Z; z <= b.Max.Z; z++ {
				fn(world.BlockCoord{X: x, Y: y, Z: z})
			}
		}
	}
}

// Result describes one Generate call.
type Result struct {
	Grown        bool
	Variant      Variant
	WaterContext WaterContext
	// Height is the trunk top above the seed.
	Height int
	Writes int
}

// Generator grows a full tree from a grounded propagule.
type Generator struct {
	logger zerolog.Logger
}

type Option func(*Generator)

func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// reasonTagger is implemented by grids that label their writes, such as
// world.RecordingGrid.
type reasonTagger interface {
	SetReason(reason world.ChangeReason)
}

func tagWrites(grid world.Grid, reason world.ChangeReason) {
	if tagger, ok := grid.(reasonTagger); ok {
		tagger.SetReason(reason)
	}
}

// treeShape holds the per-call geometry shared by both passes.
type treeShape struct {
	trunk   world.BlockCoord
	variant Variant
	water   WaterContext
	minLogZ int
	maxLogZ int
}

// rel expresses c relative to the trunk top.
func (s treeShape) rel(c world.BlockCoord) world.BlockCoord {
	return world.BlockCoord{X: c.X - s.trunk.X, Y: c.Y - s.trunk.Y, Z: c.Z - s.maxLogZ}
}

func (s treeShape) onTrunkColumn(c world.BlockCoord) bool {
	return c.X == s.trunk.X && c.Y == s.trunk.Y && c.Z <= s.maxLogZ
}

// Generate grows the tree rooted at pos. Nothing is written when the
// column above pos is blocked.
func (g *Generator) Generate(grid world.Grid, pos world.BlockCoord, rng Source) Result {
	variant := Variant(rng.Intn(int(variantCount)))
	randHeight := rng.Intn(heightJitter)
	shape := treeShape{
		trunk:   pos,
		variant: variant,
		minLogZ: pos.Z + 1 + randHeight,
		maxLogZ: pos.Z + trunkHeight + randHeight,
	}
	shape.water = HowMuchWater(grid, pos)

	result := Result{
		Variant:      variant,
		WaterContext: shape.water,
		Height:       trunkHeight + randHeight,
	}
	if shape.water == WaterBlocked {
		g.logger.Debug().Stringer("pos", pos).Msg("propagule growth blocked")
		return result
	}

	region := Region(pos)
	set := func(c world.BlockCoord, block world.Block) {
		grid.SetBlock(c, block)
		result.Writes++
	}

	tagWrites(grid, world.ReasonStructure)
	var carry waterCarry
	scan(region, func(c world.BlockCoord) {
		current := grid.Block(c)
		if !Replaceable(current) {
			return
		}
		waterlogged := carry.observe(current)
		if block, ok := shape.structure(c, waterlogged, rng); ok {
			set(c, block)
		}
	})

	tagWrites(grid, world.ReasonDecoration)
	scan(region, func(c world.BlockCoord) {
		current := grid.Block(c)
		if !Replaceable(current) {
			return
		}
		waterlogged := current.Type == world.BlockWater
		if block, ok := shape.decoration(grid, c, waterlogged, rng); ok {
			set(c, block)
		}
	})

	result.Grown = true
	g.logger.Debug().
		Stringer("pos", pos).
		Stringer("variant", variant).
		Stringer("water", shape.water).
		Int("height", result.Height).
		Int("writes", result.Writes).
		Msg("mangrove grown")
	return result
}

// waterCarry is the waterlogged flag threaded through the structural pass.
// It only changes on the cells it observes, so a dry propagule inherits
// whatever the previously scanned cell left behind.
type waterCarry struct {
	waterlogged bool
}

func (w *waterCarry) observe(block world.Block) bool {
	switch {
	case block.Type == world.BlockWater:
		w.waterlogged = true
	case block.Type == world.BlockMangrovePropagule:
		if block.Waterlogged {
			w.waterlogged = true
		}
	default:
		w.waterlogged = false
	}
	return w.waterlogged
}

// structure picks the trunk, root or leaf block for c in the first pass.
func (s treeShape) structure(c world.BlockCoord, waterlogged bool, rng Source) (world.Block, bool) {
	if s.water == WaterNone {
		if s.onTrunkColumn(c) {
			return logBlock, true
		}
		if s.variant.Canopy(s.rel(c), rng) {
			return leavesBlock, true
		}
		return world.Block{}, false
	}

	if s.onTrunkColumn(c) {
		if c.Z >= s.minLogZ {
			return logBlock, true
		}
		return rootsBlock(waterlogged), true
	}
	if c.Z < s.minLogZ {
		if s.stiltRoot(c) {
			return rootsBlock(waterlogged), true
		}
		return world.Block{}, false
	}
	if s.variant.Canopy(s.rel(c), rng) {
		return leavesBlock, true
	}
	return world.Block{}, false
}

// stiltRoot reports the stepped cross under the trunk: one cell out on the
// layer just below the trunk base, two cells out on every layer beneath.
func (s treeShape) stiltRoot(c world.BlockCoord) bool {
	reach := 2
	if c.Z == s.minLogZ-1 {
		reach = 1
	}
	dx, dy := c.X-s.trunk.X, c.Y-s.trunk.Y
	return (absInt(dx) == reach && dy == 0) || (absInt(dy) == reach && dx == 0)
}

// decoration picks a hanging pod or a vine for c in the second pass.
func (s treeShape) decoration(grid world.Grid, c world.BlockCoord, waterlogged bool, rng Source) (world.Block, bool) {
	rel := s.rel(c)
	if grid.Block(c.Neighbor(world.Up)) == leavesBlock && s.variant.PropaguleSite(rel, rng) {
		return world.Block{
			Type:        world.BlockMangrovePropagule,
			Hanging:     true,
			Mature:      podMatureChance.roll(rng),
			Waterlogged: waterlogged,
		}, true
	}
	if !vineChance.roll(rng) || !s.variant.VineEnvelope(rel) {
		return world.Block{}, false
	}
	return AssembleVine(grid, c)
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
