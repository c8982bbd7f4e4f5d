package testutil

import (
	"sync"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
)

// RecorderCell is a reactive cell double that records propagation calls.
//
// Set and Tick are propagating operations; SetNoPropagate is not. Tests
// attach a RecorderCell to an instance and assert which operations fired,
// e.g. that SetNoPropagate changed the observable value without triggering
// any dependent recomputation.
//
// Thread-safety: all methods are safe for concurrent use via internal
// mutex, matching the contract of the cell it doubles for.
type RecorderCell struct {
	id   uuid.UUID
	name string

	mu         sync.Mutex
	value      graph.Value
	sets       []graph.Value
	silentSets []graph.Value
	ticks      int
}

// NewRecorderCell creates a recorder cell with a fresh identity and the
// given initial value.
func NewRecorderCell(name string, value graph.Value) *RecorderCell {
	if value == nil {
		value = graph.Null{}
	}
	return &RecorderCell{
		id:    uuid.New(),
		name:  name,
		value: value,
	}
}

// ID returns the cell identity.
func (c *RecorderCell) ID() uuid.UUID {
	return c.id
}

// Name returns the property name the cell is keyed by.
func (c *RecorderCell) Name() string {
	return c.name
}

// Get returns the current cached value.
func (c *RecorderCell) Get() graph.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Set records a propagating write and updates the cached value.
func (c *RecorderCell) Set(value graph.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.sets = append(c.sets, value)
}

// SetNoPropagate records a silent write and updates the cached value.
func (c *RecorderCell) SetNoPropagate(value graph.Value) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
	c.silentSets = append(c.silentSets, value)
}

// Tick records a re-evaluation.
func (c *RecorderCell) Tick() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ticks++
}

// SetCalls returns the values written by propagating Set calls, in order.
func (c *RecorderCell) SetCalls() []graph.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]graph.Value(nil), c.sets...)
}

// SilentSetCalls returns the values written by SetNoPropagate, in order.
func (c *RecorderCell) SilentSetCalls() []graph.Value {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]graph.Value(nil), c.silentSets...)
}

// TickCalls returns how many times Tick ran.
func (c *RecorderCell) TickCalls() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ticks
}

// Propagations returns the total number of propagating operations
// (Set plus Tick) recorded.
func (c *RecorderCell) Propagations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sets) + c.ticks
}
