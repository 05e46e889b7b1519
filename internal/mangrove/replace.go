package mangrove

import "mangrovesim/internal/world"

// Replaceable reports whether the generator may overwrite block.
func Replaceable(block world.Block) bool {
	switch block.Type {
	case "", world.BlockAir, world.BlockWater, world.BlockSnow, world.BlockTallGrass,
		world.BlockVine, world.BlockLeaves, world.BlockMangroveLeaves,
		world.BlockMangroveRoots, world.BlockMangrovePropagule:
		return true
	}
	return false
}

var (
	logBlock    = world.Block{Type: world.BlockMangroveLog}
	leavesBlock = world.Block{Type: world.BlockMangroveLeaves}
)

func rootsBlock(waterlogged bool) world.Block {
	return world.Block{Type: world.BlockMangroveRoots, Waterlogged: waterlogged}
}

// anchorsVine reports blocks a generated vine may cling to.
func anchorsVine(block world.Block) bool {
	return block.Type == world.BlockMangroveLeaves || block.Type == world.BlockMangroveLog
}
