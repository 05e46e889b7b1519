package world

// BlockType enumerates known world block categories.
type BlockType string

const (
	BlockAir               BlockType = "air"
	BlockWater             BlockType = "water"
	BlockSnow              BlockType = "snow"
	BlockTallGrass         BlockType = "tall_grass"
	BlockVine              BlockType = "vine"
	BlockLeaves            BlockType = "leaves"
	BlockMangroveLeaves    BlockType = "mangrove_leaves"
	BlockMangroveLog       BlockType = "mangrove_log"
	BlockMangroveRoots     BlockType = "mangrove_roots"
	BlockMangrovePropagule BlockType = "mangrove_propagule"
	BlockDirt              BlockType = "dirt"
	BlockGrass             BlockType = "grass_block"
	BlockMud               BlockType = "mud"
	BlockSand              BlockType = "sand"
	BlockStone             BlockType = "stone"
	// BlockVoid is reported for coordinates outside a grid.
	BlockVoid BlockType = "void"
)

// Faces is a bitset of the sides a vine clings to.
type Faces uint8

const (
	FaceNorth Faces = 1 << iota
	FaceSouth
	FaceEast
	FaceWest
	FaceUp
)

// FaceFor maps a direction onto its face bit. Down has no face.
func FaceFor(dir Direction) Faces {
	switch dir {
	case North:
		return FaceNorth
	case South:
		return FaceSouth
	case East:
		return FaceEast
	case West:
		return FaceWest
	case Up:
		return FaceUp
	default:
		return 0
	}
}

// Block is the content of a single cell. It is a plain value and may be
// compared with ==.
type Block struct {
	Type        BlockType
	Material    string
	Waterlogged bool
	Hanging     bool
	Mature      bool
	Faces       Faces
}

// Air is the empty block.
var Air = Block{Type: BlockAir}

func blockIsAir(block Block) bool {
	return block.Type == "" || block.Type == BlockAir
}

func (b Block) IsAir() bool {
	return blockIsAir(b)
}

// IsFoliage reports leaf-material blocks of any species.
func (b Block) IsFoliage() bool {
	return b.Type == BlockLeaves || b.Type == BlockMangroveLeaves
}

// IsSoil reports blocks plants can root into.
func (b Block) IsSoil() bool {
	switch b.Type {
	case BlockDirt, BlockGrass, BlockMud:
		return true
	}
	return false
}

// Fluid returns the fluid occupying the cell: water blocks and waterlogged
// blocks report BlockWater, everything else BlockAir.
func (b Block) Fluid() BlockType {
	if b.Type == BlockWater || b.Waterlogged {
		return BlockWater
	}
	return BlockAir
}

// Opaque reports whether the block stops sky light entirely.
func (b Block) Opaque() bool {
	switch b.Type {
	case "", BlockAir, BlockWater, BlockSnow, BlockTallGrass, BlockVine,
		BlockLeaves, BlockMangroveLeaves, BlockMangrovePropagule, BlockMangroveRoots:
		return false
	}
	return true
}
