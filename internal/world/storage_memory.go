package world

import "sync"

// memoryColumns is the in-process column store behind every chunk. Loads
// and iteration hand out copies so callers can edit a column before
// saving it back.
type memoryColumns struct {
	mu      sync.RWMutex
	columns map[int][]Block
}

var _ ColumnStorage = (*memoryColumns)(nil)

func newMemoryColumns() *memoryColumns {
	return &memoryColumns{columns: make(map[int][]Block)}
}

func (m *memoryColumns) LoadColumn(index int) ([]Block, bool, error) {
	m.mu.RLock()
	column, ok := m.columns[index]
	m.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	return append([]Block(nil), column...), true, nil
}

func (m *memoryColumns) SaveColumn(index int, blocks []Block) error {
	stored := append([]Block(nil), blocks...)
	m.mu.Lock()
	m.columns[index] = stored
	m.mu.Unlock()
	return nil
}

func (m *memoryColumns) Delete(index int) error {
	m.mu.Lock()
	delete(m.columns, index)
	m.mu.Unlock()
	return nil
}

func (m *memoryColumns) ForEach(fn func(index int, blocks []Block) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for idx, column := range m.columns {
		if !fn(idx, append([]Block(nil), column...)) {
			break
		}
	}
	return nil
}
