package graph

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// EntityInstance is the serializable snapshot of an entity: a node of the
// persisted directed property graph. In contrast to the entity type, the
// instance stores values in its properties.
//
// This is the wire/storage format. Its external JSON representation is a
// single self-describing unit, suitable for exposure as one opaque scalar
// at a query boundary.
type EntityInstance struct {
	// ID of the vertex.
	ID uuid.UUID

	// TypeName names the entity type.
	TypeName string

	// Description of the entity instance.
	Description string

	// Properties maps property name to value.
	Properties Object
}

// NewEntityInstance creates a snapshot with an empty description.
func NewEntityInstance(id uuid.UUID, typeName string, properties Object) *EntityInstance {
	if properties == nil {
		properties = Object{}
	}
	return &EntityInstance{
		ID:         id,
		TypeName:   typeName,
		Properties: properties,
	}
}

// EntityInstanceFromProperties converts a persisted vertex's properties
// into a snapshot. Every stored named property becomes a map entry
// verbatim; nothing is filtered.
func EntityInstanceFromProperties(vp VertexProperties) *EntityInstance {
	properties := make(Object, len(vp.Props))
	for _, p := range vp.Props {
		properties[p.Name] = p.Value
	}
	return &EntityInstance{
		ID:          vp.Vertex.ID,
		TypeName:    vp.Vertex.Type.String(),
		Description: vp.Description,
		Properties:  properties,
	}
}

// Key derives the vertex key from the current type name. The second result
// is false when the type name cannot be encoded as a graph identifier; the
// key is advisory, so this is an absent result rather than an error.
func (e *EntityInstance) Key() (Vertex, bool) {
	t, err := ParseIdentifier(e.TypeName)
	if err != nil {
		return Vertex{}, false
	}
	return Vertex{ID: e.ID, Type: t}, true
}

// Get returns the named property value. Absent name yields an absent result.
func (e *EntityInstance) Get(name string) (Value, bool) {
	v, ok := e.Properties[name]
	return v, ok
}

// AsBool returns the named property coerced to bool.
// An absent name and a failed coercion both yield an absent result.
func (e *EntityInstance) AsBool(name string) (bool, bool) {
	v, ok := e.Properties[name]
	if !ok {
		return false, false
	}
	return AsBool(v)
}

// AsU64 returns the named property coerced to uint64.
func (e *EntityInstance) AsU64(name string) (uint64, bool) {
	v, ok := e.Properties[name]
	if !ok {
		return 0, false
	}
	return AsU64(v)
}

// AsI64 returns the named property coerced to int64.
func (e *EntityInstance) AsI64(name string) (int64, bool) {
	v, ok := e.Properties[name]
	if !ok {
		return 0, false
	}
	return AsI64(v)
}

// AsF64 returns the named property coerced to float64.
func (e *EntityInstance) AsF64(name string) (float64, bool) {
	v, ok := e.Properties[name]
	if !ok {
		return 0, false
	}
	return AsF64(v)
}

// AsString returns the named property coerced to string.
func (e *EntityInstance) AsString(name string) (string, bool) {
	v, ok := e.Properties[name]
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Set updates an existing property. Returns ErrNoSuchProperty if the
// instance does not carry the named property.
func (e *EntityInstance) Set(name string, value Value) error {
	if _, ok := e.Properties[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	e.Properties[name] = value
	return nil
}

// MarshalJSON implements json.Marshaler for EntityInstance.
func (e *EntityInstance) MarshalJSON() ([]byte, error) {
	properties := e.Properties
	if properties == nil {
		properties = Object{}
	}
	return json.Marshal(struct {
		ID          uuid.UUID `json:"id"`
		TypeName    string    `json:"type_name"`
		Description string    `json:"description"`
		Properties  Object    `json:"properties"`
	}{e.ID, e.TypeName, e.Description, properties})
}

// UnmarshalJSON implements json.Unmarshaler for EntityInstance.
// The type-name field accepts either "type" or "type_name" as input key;
// description defaults to empty and properties to an empty mapping.
func (e *EntityInstance) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID          uuid.UUID `json:"id"`
		TypeName    string    `json:"type_name"`
		Type        string    `json:"type"`
		Description string    `json:"description"`
		Properties  Object    `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	typeName := raw.TypeName
	if typeName == "" {
		typeName = raw.Type
	}
	properties := raw.Properties
	if properties == nil {
		properties = Object{}
	}
	*e = EntityInstance{
		ID:          raw.ID,
		TypeName:    typeName,
		Description: raw.Description,
		Properties:  properties,
	}
	return nil
}
