package reactive

import (
	"github.com/voidcase/reagraph/internal/graph"
)

// Relation is the reactive instance of an edge in the directed property
// graph, pointing from the outbound entity to the inbound entity.
//
// One example is a connector, which propagates changes on a property of
// the outbound entity to a property of the inbound entity. Relations can
// also be purely semantic: Player--(CurrentCamera)-->Camera.
//
// A relation does not own its endpoints exclusively: endpoints are shared
// with every other relation connecting to them, and relation→entity is the
// only strong reference direction. In practice endpoints are expected to
// outlive the relations referencing them.
type Relation struct {
	// Outbound endpoint entity. Shared, never nil.
	Outbound *Entity

	// TypeName names the relation type. Immutable after construction.
	TypeName string

	// Inbound endpoint entity. Shared, never nil.
	Inbound *Entity

	// Description of the relation instance.
	Description string

	instanceCore
}

// NewRelation creates a reactive relation from a raw name/value mapping,
// with an empty description. Every property value is wrapped in a newly
// minted cell.
func NewRelation(outbound *Entity, typeName string, inbound *Entity, properties graph.Object) *Relation {
	return &Relation{
		Outbound:     outbound,
		TypeName:     typeName,
		Inbound:      inbound,
		instanceCore: newInstanceCore(properties),
	}
}

// NewRelationFromProperties hydrates a reactive relation from a persisted
// edge's properties. Type name and description are taken from the stored
// edge row.
func NewRelationFromProperties(outbound, inbound *Entity, ep graph.EdgeProperties) *Relation {
	return &Relation{
		Outbound:     outbound,
		TypeName:     ep.Key.Type.String(),
		Inbound:      inbound,
		Description:  ep.Description,
		instanceCore: coreFromProps(ep.Props),
	}
}

// NewRelationFromInstance hydrates a reactive relation from a snapshot.
// Type name, description, and properties are taken verbatim.
func NewRelationFromInstance(outbound, inbound *Entity, instance *graph.RelationInstance) *Relation {
	return &Relation{
		Outbound:     outbound,
		TypeName:     instance.TypeName,
		Inbound:      inbound,
		Description:  instance.Description,
		instanceCore: newInstanceCore(instance.Properties),
	}
}

// Key derives the edge key from the current type name and the endpoint
// identities. Absent when the type name cannot be encoded as a graph
// identifier; callers treat "no key derivable" as routine.
func (r *Relation) Key() (graph.EdgeKey, bool) {
	t, err := graph.ParseIdentifier(r.TypeName)
	if err != nil {
		return graph.EdgeKey{}, false
	}
	return graph.EdgeKey{
		OutboundID: r.Outbound.ID,
		Type:       t,
		InboundID:  r.Inbound.ID,
	}, true
}

// Snapshot converts the live relation back to its snapshot form, reading
// each cell's current cached value without re-evaluating. Weakly
// consistent under concurrent mutation; see the package comment.
func (r *Relation) Snapshot() *graph.RelationInstance {
	return &graph.RelationInstance{
		OutboundID:  r.Outbound.ID,
		TypeName:    r.TypeName,
		InboundID:   r.Inbound.ID,
		Description: r.Description,
		Properties:  r.propertyValues(),
	}
}
