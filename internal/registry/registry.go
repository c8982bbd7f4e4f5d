package registry

import (
	"sync"

	"github.com/voidcase/reagraph/internal/graph"
)

// Component is a reusable grouping of property declarations. Entity and
// relation types name the components they are composed with; instances can
// additionally have components applied at runtime.
type Component struct {
	// Name of the component.
	Name string

	// Description of the component.
	Description string

	// Properties the component contributes.
	Properties []graph.PropertyType
}

// Registry holds type descriptors by name. Safe for concurrent use.
//
// Registration replaces any previous descriptor under the same name;
// lookups of unknown names yield an absent result.
type Registry struct {
	mu            sync.RWMutex
	components    map[string]*Component
	entityTypes   map[string]*graph.EntityType
	relationTypes map[string]*graph.RelationType
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		components:    make(map[string]*Component),
		entityTypes:   make(map[string]*graph.EntityType),
		relationTypes: make(map[string]*graph.RelationType),
	}
}

// RegisterComponent adds or replaces a component definition.
func (r *Registry) RegisterComponent(c *Component) {
	r.mu.Lock()
	r.components[c.Name] = c
	r.mu.Unlock()
}

// RegisterEntityType adds or replaces an entity type descriptor.
func (r *Registry) RegisterEntityType(t *graph.EntityType) {
	r.mu.Lock()
	r.entityTypes[t.Name] = t
	r.mu.Unlock()
}

// RegisterRelationType adds or replaces a relation type descriptor.
func (r *Registry) RegisterRelationType(t *graph.RelationType) {
	r.mu.Lock()
	r.relationTypes[t.Name] = t
	r.mu.Unlock()
}

// Component returns the named component definition.
func (r *Registry) Component(name string) (*Component, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// EntityType returns the named entity type descriptor.
func (r *Registry) EntityType(name string) (*graph.EntityType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entityTypes[name]
	return t, ok
}

// RelationType returns the named relation type descriptor.
func (r *Registry) RelationType(name string) (*graph.RelationType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.relationTypes[name]
	return t, ok
}

// RelationTypeBetween returns the relation type descriptor with the given
// composite identity: outbound entity type, relation name, inbound entity
// type. A descriptor registered under the name but with different endpoint
// types is an absent result.
func (r *Registry) RelationTypeBetween(outboundType, name, inboundType string) (*graph.RelationType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.relationTypes[name]
	if !ok || t.OutboundType != outboundType || t.InboundType != inboundType {
		return nil, false
	}
	return t, true
}

// Components returns every registered component, in no particular order.
func (r *Registry) Components() []*Component {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*Component, 0, len(r.components))
	for _, c := range r.components {
		all = append(all, c)
	}
	return all
}

// EntityTypes returns every registered entity type, in no particular order.
func (r *Registry) EntityTypes() []*graph.EntityType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*graph.EntityType, 0, len(r.entityTypes))
	for _, t := range r.entityTypes {
		all = append(all, t)
	}
	return all
}

// RelationTypes returns every registered relation type, in no particular
// order.
func (r *Registry) RelationTypes() []*graph.RelationType {
	r.mu.RLock()
	defer r.mu.RUnlock()
	all := make([]*graph.RelationType, 0, len(r.relationTypes))
	for _, t := range r.relationTypes {
		all = append(all, t)
	}
	return all
}

// EntityTypeProperties unions the properties an entity type carries: its
// own declarations plus those contributed by its registered components.
// Own declarations win on name collision. Unknown component names are
// skipped; validating component references is a load-time concern.
func (r *Registry) EntityTypeProperties(name string) ([]graph.PropertyType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.entityTypes[name]
	if !ok {
		return nil, false
	}
	return r.unionProperties(t.Properties, t.Components), true
}

// RelationTypeProperties is the relation analogue of EntityTypeProperties.
func (r *Registry) RelationTypeProperties(name string) ([]graph.PropertyType, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.relationTypes[name]
	if !ok {
		return nil, false
	}
	return r.unionProperties(t.Properties, t.Components), true
}

// unionProperties merges own properties with component contributions.
// Callers must hold r.mu.
func (r *Registry) unionProperties(own []graph.PropertyType, components []string) []graph.PropertyType {
	merged := make([]graph.PropertyType, 0, len(own))
	seen := make(map[string]struct{}, len(own))
	for _, p := range own {
		merged = append(merged, p)
		seen[p.Name] = struct{}{}
	}
	for _, name := range components {
		c, ok := r.components[name]
		if !ok {
			continue
		}
		for _, p := range c.Properties {
			if _, dup := seen[p.Name]; dup {
				continue
			}
			merged = append(merged, p)
			seen[p.Name] = struct{}{}
		}
	}
	return merged
}
