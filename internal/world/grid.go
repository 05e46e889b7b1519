package world

// Grid is read/write access to block content by global coordinate. Writes
// take effect immediately and are visible to the next read.
type Grid interface {
	Block(coord BlockCoord) Block
	SetBlock(coord BlockCoord, block Block)
	LightLevel(coord BlockCoord) int
}

// MaxLightLevel is the brightest light a cell can receive.
const MaxLightLevel = 15
