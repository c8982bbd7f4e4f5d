package reactive

import (
	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
)

// Entity is the reactive instance of a node in the directed property
// graph. Its properties are reactive cells; connectors between entities
// subscribe to those cells.
//
// Entities are shared: every relation touching an entity holds the same
// *Entity. Mutating an entity property is independent of, and not
// serialized against, mutations of relations referencing it.
type Entity struct {
	// ID of the entity instance. Immutable.
	ID uuid.UUID

	// TypeName names the entity type. Immutable after construction.
	TypeName string

	// Description of the entity instance.
	Description string

	instanceCore
}

// NewEntity creates a reactive entity from a raw name/value mapping, with
// an empty description. Every property value is wrapped in a newly minted
// cell.
func NewEntity(id uuid.UUID, typeName string, properties graph.Object) *Entity {
	return &Entity{
		ID:           id,
		TypeName:     typeName,
		instanceCore: newInstanceCore(properties),
	}
}

// NewEntityFromProperties hydrates a reactive entity from a persisted
// vertex's properties. Type name and description are taken from the stored
// vertex row.
func NewEntityFromProperties(vp graph.VertexProperties) *Entity {
	return &Entity{
		ID:           vp.Vertex.ID,
		TypeName:     vp.Vertex.Type.String(),
		Description:  vp.Description,
		instanceCore: coreFromProps(vp.Props),
	}
}

// NewEntityFromInstance hydrates a reactive entity from a snapshot. Type
// name, description, and properties are taken verbatim from the snapshot.
func NewEntityFromInstance(instance *graph.EntityInstance) *Entity {
	return &Entity{
		ID:           instance.ID,
		TypeName:     instance.TypeName,
		Description:  instance.Description,
		instanceCore: newInstanceCore(instance.Properties),
	}
}

// Key derives the vertex key from the current type name. Absent when the
// type name cannot be encoded as a graph identifier.
func (e *Entity) Key() (graph.Vertex, bool) {
	t, err := graph.ParseIdentifier(e.TypeName)
	if err != nil {
		return graph.Vertex{}, false
	}
	return graph.Vertex{ID: e.ID, Type: t}, true
}

// Snapshot converts the live entity back to its snapshot form, reading
// each cell's current cached value without re-evaluating. Weakly
// consistent under concurrent mutation; see the package comment.
func (e *Entity) Snapshot() *graph.EntityInstance {
	return &graph.EntityInstance{
		ID:          e.ID,
		TypeName:    e.TypeName,
		Description: e.Description,
		Properties:  e.propertyValues(),
	}
}
