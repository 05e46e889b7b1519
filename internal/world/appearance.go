package world

// BlockAppearance captures visual styling for a block type.
type BlockAppearance struct {
	Color string
	// Emission brightens every face in previews, 0..1.
	Emission float64
}

// DefaultAppearances enumerates the built-in block visuals.
var DefaultAppearances = map[BlockType]BlockAppearance{
	BlockWater:             {Color: "#3f76e4"},
	BlockSnow:              {Color: "#f4f8fb"},
	BlockTallGrass:         {Color: "#6fa64a"},
	BlockVine:              {Color: "#3c7a2a"},
	BlockLeaves:            {Color: "#4a9d58"},
	BlockMangroveLeaves:    {Color: "#6b9e2f"},
	BlockMangroveLog:       {Color: "#6d3a2c"},
	BlockMangroveRoots:     {Color: "#4e3a28"},
	BlockMangrovePropagule: {Color: "#9ccc55", Emission: 0.2},
	BlockDirt:              {Color: "#8b5a2b"},
	BlockGrass:             {Color: "#5d9b3d"},
	BlockMud:               {Color: "#3c3837"},
	BlockSand:              {Color: "#c2b280"},
	BlockStone:             {Color: "#7d7d7d"},
}

// AppearanceFor returns the preset for the block's type, falling back to grey.
func AppearanceFor(block Block) BlockAppearance {
	if preset, ok := DefaultAppearances[block.Type]; ok {
		return preset
	}
	return BlockAppearance{Color: "#808080"}
}

// SetAppearance overrides the preset for one block type.
func SetAppearance(blockType BlockType, appearance BlockAppearance) {
	DefaultAppearances[blockType] = appearance
}
