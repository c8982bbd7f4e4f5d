package reactive

import (
	"sync"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
)

// Cell is the reactive property container capability: a named,
// identity-bearing cell wrapping a value, supporting reads, writes with
// and without downstream propagation, and periodic re-evaluation.
//
// Cell is deliberately an interface, not a concrete type: any stream or
// combinator implementation can satisfy it. Property is the default
// implementation; tests substitute doubles that record propagation calls.
type Cell interface {
	// ID returns the unique identity of the cell.
	ID() uuid.UUID

	// Name returns the property name the cell is keyed by.
	Name() string

	// Get returns the current cached value.
	Get() graph.Value

	// Set updates the cached value and propagates it to subscribers.
	Set(value graph.Value)

	// SetNoPropagate updates the cached value without propagation.
	// Used to avoid feedback loops when seeding or restoring state.
	SetNoPropagate(value graph.Value)

	// Tick re-evaluates the cell: the current value is re-emitted to
	// subscribers. Repeated ticks have no cumulative side effects beyond
	// whatever the subscribers themselves produce.
	Tick()
}

// Property is the default Cell implementation: a mutex-guarded value with
// a subscriber list. Set and Tick emit the value to every subscriber;
// subscriber callbacks run outside the lock, so a callback may read or
// write other cells freely.
type Property struct {
	id   uuid.UUID
	name string

	mu      sync.RWMutex
	value   graph.Value
	subs    map[int]func(graph.Value)
	nextSub int
}

// NewProperty mints a property cell with a freshly generated identity.
func NewProperty(name string, value graph.Value) *Property {
	if value == nil {
		value = graph.Null{}
	}
	return &Property{
		id:    uuid.New(),
		name:  name,
		value: value,
		subs:  make(map[int]func(graph.Value)),
	}
}

// ID returns the unique identity of the cell.
func (p *Property) ID() uuid.UUID {
	return p.id
}

// Name returns the property name.
func (p *Property) Name() string {
	return p.name
}

// Get returns the current cached value.
func (p *Property) Get() graph.Value {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.value
}

// Set updates the cached value and propagates it to all subscribers.
func (p *Property) Set(value graph.Value) {
	p.mu.Lock()
	p.value = value
	subs := p.snapshotSubs()
	p.mu.Unlock()
	for _, fn := range subs {
		fn(value)
	}
}

// SetNoPropagate updates the cached value without notifying subscribers.
func (p *Property) SetNoPropagate(value graph.Value) {
	p.mu.Lock()
	p.value = value
	p.mu.Unlock()
}

// Tick re-emits the current value to all subscribers.
func (p *Property) Tick() {
	p.mu.RLock()
	value := p.value
	subs := p.snapshotSubs()
	p.mu.RUnlock()
	for _, fn := range subs {
		fn(value)
	}
}

// Subscribe registers fn to receive every propagated value. The returned
// cancel function removes the subscription; calling it more than once is a
// no-op.
func (p *Property) Subscribe(fn func(graph.Value)) (cancel func()) {
	p.mu.Lock()
	key := p.nextSub
	p.nextSub++
	p.subs[key] = fn
	p.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, key)
			p.mu.Unlock()
		})
	}
}

// snapshotSubs copies the subscriber list. Callers must hold p.mu.
func (p *Property) snapshotSubs() []func(graph.Value) {
	subs := make([]func(graph.Value), 0, len(p.subs))
	for _, fn := range p.subs {
		subs = append(subs, fn)
	}
	return subs
}
