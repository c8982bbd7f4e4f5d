package reactive

import "sync"

// cellMap is a concurrent mapping from property name to Cell. Keys are
// unique; each cell is exclusively owned by its instance's mapping. No
// ordering guarantee.
type cellMap struct {
	mu    sync.RWMutex
	cells map[string]Cell
}

func newCellMap() *cellMap {
	return &cellMap{cells: make(map[string]Cell)}
}

func (m *cellMap) load(name string) (Cell, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.cells[name]
	return c, ok
}

// loadOrStore inserts the cell produced by mk under name unless a cell is
// already present. Returns the resident cell and whether it was already
// there (first-writer-wins).
func (m *cellMap) loadOrStore(name string, mk func() Cell) (Cell, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c, ok := m.cells[name]; ok {
		return c, true
	}
	c := mk()
	m.cells[name] = c
	return c, false
}

// each calls fn for every cell. fn runs outside the lock against a copied
// slice, so it may mutate the map or call back into cells.
func (m *cellMap) each(fn func(Cell)) {
	m.mu.RLock()
	cells := make([]Cell, 0, len(m.cells))
	for _, c := range m.cells {
		cells = append(cells, c)
	}
	m.mu.RUnlock()
	for _, c := range cells {
		fn(c)
	}
}

func (m *cellMap) len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.cells)
}

// nameSet is a concurrent set of names (applied components or behaviours).
// Add is idempotent; Remove of an absent name is a no-op.
type nameSet struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func newNameSet() *nameSet {
	return &nameSet{names: make(map[string]struct{})}
}

func (s *nameSet) add(name string) {
	s.mu.Lock()
	s.names[name] = struct{}{}
	s.mu.Unlock()
}

func (s *nameSet) remove(name string) {
	s.mu.Lock()
	delete(s.names, name)
	s.mu.Unlock()
}

func (s *nameSet) has(name string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.names[name]
	return ok
}

func (s *nameSet) all() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := make([]string, 0, len(s.names))
	for name := range s.names {
		names = append(names, name)
	}
	return names
}
