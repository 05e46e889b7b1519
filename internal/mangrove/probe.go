package mangrove

import "mangrovesim/internal/world"

// WaterContext classifies the column above a seed.
type WaterContext int

const (
	WaterNone WaterContext = iota
	WaterPartial
	WaterBlocked
)

func (w WaterContext) String() string {
	switch w {
	case WaterNone:
		return "none"
	case WaterPartial:
		return "partial"
	case WaterBlocked:
		return "blocked"
	default:
		return "unknown"
	}
}

const (
	probeDepth    = 5
	maxWaterAbove = 4
)

// HowMuchWater samples the five cells above pos. Any non-replaceable cell,
// or more than four water cells, blocks growth.
func HowMuchWater(grid world.Grid, pos world.BlockCoord) WaterContext {
	waterBlocks, nonReplaceable := 0, 0
	for i := 1; i <= probeDepth; i++ {
		block := grid.Block(pos.Offset(world.Up, i))
		switch {
		case block.Type == world.BlockWater:
			waterBlocks++
		case !Replaceable(block):
			nonReplaceable++
		}
	}
	switch {
	case waterBlocks > maxWaterAbove || nonReplaceable > 0:
		return WaterBlocked
	case waterBlocks > 0:
		return WaterPartial
	default:
		return WaterNone
	}
}
