package world

import "sort"

type ChangeReason string

const (
	ReasonStructure  ChangeReason = "structure"
	ReasonDecoration ChangeReason = "decoration"
	ReasonGrowth     ChangeReason = "growth"
	ReasonPlace      ChangeReason = "place"
	ReasonDestroy    ChangeReason = "destroy"
)

// BlockChange captures the before/after state of a block mutation.
type BlockChange struct {
	Coord  BlockCoord
	Before Block
	After  Block
	Reason ChangeReason
}

// ChangeSet accumulates block mutations. Repeated writes to one coordinate
// keep the first Before and the latest After.
type ChangeSet struct {
	changes map[BlockCoord]BlockChange
	writes  int
}

func NewChangeSet() *ChangeSet {
	return &ChangeSet{changes: make(map[BlockCoord]BlockChange)}
}

func (s *ChangeSet) AddChange(change BlockChange) {
	if s.changes == nil {
		s.changes = make(map[BlockCoord]BlockChange)
	}
	s.writes++
	if existing, ok := s.changes[change.Coord]; ok {
		change.Before = existing.Before
	}
	s.changes[change.Coord] = change
}

// Writes counts every recorded write, including repeats.
func (s *ChangeSet) Writes() int {
	return s.writes
}

func (s *ChangeSet) Len() int {
	return len(s.changes)
}

func (s *ChangeSet) Change(coord BlockCoord) (BlockChange, bool) {
	change, ok := s.changes[coord]
	return change, ok
}

// Changes returns the net changes ordered by X, then Y, then Z.
func (s *ChangeSet) Changes() []BlockChange {
	if len(s.changes) == 0 {
		return nil
	}
	out := make([]BlockChange, 0, len(s.changes))
	for _, change := range s.changes {
		out = append(out, change)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i].Coord, out[j].Coord
		if a.X != b.X {
			return a.X < b.X
		}
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		return a.Z < b.Z
	})
	return out
}

// CountByType tallies net changes by the type written.
func (s *ChangeSet) CountByType() map[BlockType]int {
	counts := make(map[BlockType]int)
	for _, change := range s.changes {
		counts[change.After.Type]++
	}
	return counts
}

func (s *ChangeSet) Merge(other *ChangeSet) {
	if other == nil {
		return
	}
	for _, change := range other.Changes() {
		s.AddChange(change)
	}
	s.writes += other.writes - len(other.changes)
}

// RecordingGrid forwards to an inner Grid and records every write.
type RecordingGrid struct {
	Grid
	Reason  ChangeReason
	changes *ChangeSet
}

func NewRecordingGrid(inner Grid, reason ChangeReason) *RecordingGrid {
	return &RecordingGrid{Grid: inner, Reason: reason, changes: NewChangeSet()}
}

func (g *RecordingGrid) SetBlock(coord BlockCoord, block Block) {
	before := g.Grid.Block(coord)
	g.Grid.SetBlock(coord, block)
	g.changes.AddChange(BlockChange{Coord: coord, Before: before, After: block, Reason: g.Reason})
}

// SetReason changes the reason recorded for subsequent writes.
func (g *RecordingGrid) SetReason(reason ChangeReason) {
	g.Reason = reason
}

func (g *RecordingGrid) Changes() *ChangeSet {
	return g.changes
}
