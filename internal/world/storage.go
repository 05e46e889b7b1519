package world

// ColumnStorage keeps the vertical block stacks of a chunk. Columns are
// keyed by localY*width+localX and hold blocks from the chunk floor up to
// the highest non-air cell; a missing column reads as all air.
type ColumnStorage interface {
	LoadColumn(index int) ([]Block, bool, error)
	SaveColumn(index int, blocks []Block) error
	Delete(index int) error
	// ForEach stops early when fn returns false.
	ForEach(fn func(index int, blocks []Block) bool) error
}
