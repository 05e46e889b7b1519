package mangrove

import "mangrovesim/internal/world"

var vineSides = []world.Direction{world.North, world.South, world.East, world.West, world.Up}

// AssembleVine builds a vine clinging to every leaf or log next to pos. It
// returns false when nothing anchors it. Down is never considered.
func AssembleVine(grid world.Grid, pos world.BlockCoord) (world.Block, bool) {
	var faces world.Faces
	for _, dir := range vineSides {
		if anchorsVine(grid.Block(pos.Neighbor(dir))) {
			faces |= world.FaceFor(dir)
		}
	}
	if faces == 0 {
		return world.Block{}, false
	}
	return world.Block{Type: world.BlockVine, Faces: faces}, true
}
