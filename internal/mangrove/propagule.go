package mangrove

import (
	"github.com/rs/zerolog"

	"mangrovesim/internal/world"
)

// minGrowLight is the light needed above a propagule for it to grow.
const minGrowLight = 9

// Outcome reports what a growth attempt did.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeGrown
	OutcomeMatured
)

func (o Outcome) String() string {
	switch o {
	case OutcomeGrown:
		return "grown"
	case OutcomeMatured:
		return "matured"
	default:
		return "none"
	}
}

// MovementBehavior tells mechanisms what happens when they push a block.
type MovementBehavior int

const (
	MovementNormal MovementBehavior = iota
	MovementDestroy
	MovementBlock
)

// NeighborResult answers a neighbour-change notification.
type NeighborResult struct {
	Destroy           bool
	ScheduleFluidTick bool
}

// SupportValidator is the contract hosts use to re-check attached blocks.
type SupportValidator interface {
	Validate(grid world.Grid, pos world.BlockCoord, state world.Block) bool
}

// Propagule is the mangrove seed: it hangs under leaves or stands on soil,
// and grows into a tree or matures depending on which.
type Propagule struct {
	generator *Generator
	logger    zerolog.Logger
}

var _ SupportValidator = (*Propagule)(nil)

func NewPropagule(generator *Generator, logger zerolog.Logger) *Propagule {
	if generator == nil {
		generator = NewGenerator(WithLogger(logger))
	}
	return &Propagule{generator: generator, logger: logger}
}

// NewState returns a fresh, immature propagule block.
func NewState(hanging, waterlogged bool) world.Block {
	return world.Block{
		Type:        world.BlockMangrovePropagule,
		Hanging:     hanging,
		Waterlogged: waterlogged,
	}
}

// supportSide is the neighbour a propagule rests on.
func supportSide(state world.Block) world.Direction {
	if state.Hanging {
		return world.Up
	}
	return world.Down
}

// CanPlaceAt reports whether state would be supported at pos: hanging
// propagules need foliage above, grounded ones need soil below.
func (p *Propagule) CanPlaceAt(grid world.Grid, pos world.BlockCoord, state world.Block) bool {
	support := grid.Block(pos.Neighbor(supportSide(state)))
	if state.Hanging {
		return support.IsFoliage()
	}
	return support.IsSoil()
}

func (p *Propagule) Validate(grid world.Grid, pos world.BlockCoord, state world.Block) bool {
	return p.CanPlaceAt(grid, pos, state)
}

// Place resolves a placement at pos from the placer's candidate directions.
// Only vertical candidates are considered; Up yields a hanging propagule.
// The first supported candidate wins. It returns false when none is.
func (p *Propagule) Place(grid world.Grid, pos world.BlockCoord, candidates []world.Direction) (world.Block, bool) {
	fluid := grid.Block(pos).Fluid()
	for _, dir := range candidates {
		if !dir.Vertical() {
			continue
		}
		state := NewState(dir == world.Up, false)
		if p.CanPlaceAt(grid, pos, state) {
			state.Waterlogged = fluid == world.BlockWater
			return state, true
		}
	}
	return world.Block{}, false
}

// CanGrow reports whether the cell above pos is bright enough.
func (p *Propagule) CanGrow(grid world.Grid, pos world.BlockCoord) bool {
	return grid.LightLevel(pos.Neighbor(world.Up)) >= minGrowLight
}

// RandomTick is the host's periodic nudge.
func (p *Propagule) RandomTick(grid world.Grid, pos world.BlockCoord, state world.Block, rng Source) Outcome {
	if !p.CanGrow(grid, pos) {
		return OutcomeNone
	}
	return p.Grow(grid, pos, state, rng)
}

// Fertilize applies bone meal. Propagules are always fertilizable.
func (p *Propagule) Fertilize(grid world.Grid, pos world.BlockCoord, state world.Block, rng Source) Outcome {
	return p.RandomTick(grid, pos, state, rng)
}

// Grow succeeds one time in three. A grounded propagule turns into a tree;
// a hanging immature one then matures one time in three.
func (p *Propagule) Grow(grid world.Grid, pos world.BlockCoord, state world.Block, rng Source) Outcome {
	if !growChance.roll(rng) {
		return OutcomeNone
	}
	if !state.Hanging {
		if p.generator.Generate(grid, pos, rng).Grown {
			return OutcomeGrown
		}
		return OutcomeNone
	}
	if state.Mature || !matureChance.roll(rng) {
		return OutcomeNone
	}
	state.Mature = true
	grid.SetBlock(pos, state)
	p.logger.Debug().Stringer("pos", pos).Msg("propagule matured")
	return OutcomeMatured
}

// NeighborChanged re-validates support after an adjacent change and clears
// the cell when it is gone. Waterlogged propagules ask for a fluid tick.
func (p *Propagule) NeighborChanged(grid world.Grid, pos world.BlockCoord, state world.Block, from world.Direction) NeighborResult {
	result := NeighborResult{ScheduleFluidTick: state.Waterlogged}
	if !p.Validate(grid, pos, state) {
		grid.SetBlock(pos, world.Air)
		result.Destroy = true
		p.logger.Debug().Stringer("pos", pos).Stringer("from", from).Msg("propagule lost support")
	}
	return result
}

// MovementBehavior: pistons and similar mechanisms break propagules.
func (p *Propagule) MovementBehavior() MovementBehavior {
	return MovementDestroy
}

// Pathable: path-finding agents never walk through a propagule.
func (p *Propagule) Pathable() bool {
	return false
}

func (p *Propagule) Fertilizable() bool {
	return true
}
