package reactive

import (
	"fmt"

	"github.com/voidcase/reagraph/internal/graph"
)

// instanceCore carries the state every reactive instance owns: the
// concurrent property mapping plus the applied component and behaviour
// sets. Entity and Relation embed it and promote its methods.
//
// Components and behaviours are independent dimensions of composition: a
// component is a type-level grouping, a behaviour a runtime-attached
// capability. They are never conflated.
type instanceCore struct {
	properties *cellMap
	components *nameSet
	behaviours *nameSet
}

// newInstanceCore wraps every property value in a freshly minted cell.
// Component and behaviour sets start empty; callers populate them after
// construction.
func newInstanceCore(properties graph.Object) instanceCore {
	core := instanceCore{
		properties: newCellMap(),
		components: newNameSet(),
		behaviours: newNameSet(),
	}
	for name, value := range properties {
		core.AddProperty(name, value)
	}
	return core
}

func coreFromProps(props []graph.NamedProperty) instanceCore {
	core := instanceCore{
		properties: newCellMap(),
		components: newNameSet(),
		behaviours: newNameSet(),
	}
	for _, p := range props {
		core.AddProperty(p.Name, p.Value)
	}
	return core
}

// Tick walks every property cell and invokes its re-evaluation step.
// Ordering across properties is unspecified; dependency resolution, if
// any, lives inside the cells' own stream graphs. Safe to call repeatedly
// and concurrently with reads and writes on other instances.
func (c *instanceCore) Tick() {
	c.properties.each(func(cell Cell) {
		cell.Tick()
	})
}

// AddProperty inserts a new cell with a freshly generated identity.
// No-op if a property of that name already exists (first-writer-wins).
func (c *instanceCore) AddProperty(name string, value graph.Value) {
	c.properties.loadOrStore(name, func() Cell {
		return NewProperty(name, value)
	})
}

// AttachCell inserts an externally built cell, keyed by its name.
// First-writer-wins like AddProperty. Reports whether the cell was
// attached. Used to wire derived-property computations and test doubles.
func (c *instanceCore) AttachCell(cell Cell) bool {
	_, loaded := c.properties.loadOrStore(cell.Name(), func() Cell {
		return cell
	})
	return !loaded
}

// Cell returns the named property cell, for subscribing derived
// computations to it. Absent name yields an absent result.
func (c *instanceCore) Cell(name string) (Cell, bool) {
	return c.properties.load(name)
}

// PropertyCount returns the number of properties on the instance.
func (c *instanceCore) PropertyCount() int {
	return c.properties.len()
}

// AddComponent applies the named component. Idempotent.
func (c *instanceCore) AddComponent(component string) {
	c.components.add(component)
}

// RemoveComponent removes the named component. Removing an absent
// component is a no-op.
func (c *instanceCore) RemoveComponent(component string) {
	c.components.remove(component)
}

// IsA reports whether the instance is composed with the given component.
func (c *instanceCore) IsA(component string) bool {
	return c.components.has(component)
}

// Components returns the applied component names, in no particular order.
func (c *instanceCore) Components() []string {
	return c.components.all()
}

// AddBehaviour applies the named behaviour. Idempotent.
func (c *instanceCore) AddBehaviour(behaviour string) {
	c.behaviours.add(behaviour)
}

// RemoveBehaviour removes the named behaviour. Removing an absent
// behaviour is a no-op.
func (c *instanceCore) RemoveBehaviour(behaviour string) {
	c.behaviours.remove(behaviour)
}

// BehavesAs reports whether the instance behaves as the given behaviour.
func (c *instanceCore) BehavesAs(behaviour string) bool {
	return c.behaviours.has(behaviour)
}

// Behaviours returns the applied behaviour names, in no particular order.
func (c *instanceCore) Behaviours() []string {
	return c.behaviours.all()
}

// Get returns the named cell's current cached value.
func (c *instanceCore) Get(name string) (graph.Value, bool) {
	cell, ok := c.properties.load(name)
	if !ok {
		return nil, false
	}
	return cell.Get(), true
}

// AsBool returns the named property coerced to bool.
func (c *instanceCore) AsBool(name string) (bool, bool) {
	v, ok := c.Get(name)
	if !ok {
		return false, false
	}
	return graph.AsBool(v)
}

// AsU64 returns the named property coerced to uint64.
func (c *instanceCore) AsU64(name string) (uint64, bool) {
	v, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return graph.AsU64(v)
}

// AsI64 returns the named property coerced to int64.
func (c *instanceCore) AsI64(name string) (int64, bool) {
	v, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return graph.AsI64(v)
}

// AsF64 returns the named property coerced to float64.
func (c *instanceCore) AsF64(name string) (float64, bool) {
	v, ok := c.Get(name)
	if !ok {
		return 0, false
	}
	return graph.AsF64(v)
}

// AsString returns the named property coerced to string.
func (c *instanceCore) AsString(name string) (string, bool) {
	v, ok := c.Get(name)
	if !ok {
		return "", false
	}
	return graph.AsString(v)
}

// AsArray returns the named property coerced to an array.
func (c *instanceCore) AsArray(name string) (graph.Array, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return graph.AsArray(v)
}

// AsObject returns the named property coerced to an object.
func (c *instanceCore) AsObject(name string) (graph.Object, bool) {
	v, ok := c.Get(name)
	if !ok {
		return nil, false
	}
	return graph.AsObject(v)
}

// Set writes the named cell and propagates to dependents.
// Returns ErrNoSuchProperty if the instance does not carry the property.
func (c *instanceCore) Set(name string, value graph.Value) error {
	cell, ok := c.properties.load(name)
	if !ok {
		return fmt.Errorf("%w: %q", graph.ErrNoSuchProperty, name)
	}
	cell.Set(value)
	return nil
}

// SetNoPropagate writes the named cell without triggering propagation.
// Returns ErrNoSuchProperty if the instance does not carry the property.
func (c *instanceCore) SetNoPropagate(name string, value graph.Value) error {
	cell, ok := c.properties.load(name)
	if !ok {
		return fmt.Errorf("%w: %q", graph.ErrNoSuchProperty, name)
	}
	cell.SetNoPropagate(value)
	return nil
}

// propertyValues reads each cell's current cached value into a property
// mapping. Point-in-time: no lock is held across cells, so concurrent
// mutation may yield values from different logical instants.
func (c *instanceCore) propertyValues() graph.Object {
	values := make(graph.Object, c.properties.len())
	c.properties.each(func(cell Cell) {
		values[cell.Name()] = cell.Get()
	})
	return values
}
