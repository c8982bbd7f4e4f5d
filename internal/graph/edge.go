package graph

import (
	"fmt"

	"github.com/google/uuid"
)

// Vertex identifies a typed node in the persisted graph.
type Vertex struct {
	ID   uuid.UUID
	Type Identifier
}

// EdgeKey uniquely identifies an edge in the persisted graph: the outbound
// vertex id, the edge type identifier, and the inbound vertex id.
type EdgeKey struct {
	OutboundID uuid.UUID
	Type       Identifier
	InboundID  uuid.UUID
}

// String renders the edge key as outbound--(type)-->inbound.
func (k EdgeKey) String() string {
	return fmt.Sprintf("%s--(%s)-->%s", k.OutboundID, k.Type, k.InboundID)
}

// NamedProperty pairs a property name with its stored value.
type NamedProperty struct {
	Name  string
	Value Value
}

// VertexProperties is the hydration shape the storage collaborator supplies
// for a vertex: its identity, its description, and the stored named
// property values.
type VertexProperties struct {
	Vertex      Vertex
	Description string
	Props       []NamedProperty
}

// EdgeProperties is the hydration shape the storage collaborator supplies
// for an edge: its key, its description, and the stored named property
// values.
type EdgeProperties struct {
	Key         EdgeKey
	Description string
	Props       []NamedProperty
}
