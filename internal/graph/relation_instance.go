package graph

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
)

// RelationInstance is the serializable snapshot of a relation: an edge from
// an outbound entity instance to an inbound entity instance.
//
// The relation instance is of a relation type, which defines the entity
// types of the endpoints and the declared properties. In contrast to the
// relation type, the instance stores values in its properties.
//
// This is the wire/storage format; the reactive layer hydrates from it and
// serializes back into it. Like EntityInstance, the JSON representation is
// a single self-describing unit.
type RelationInstance struct {
	// OutboundID is the id of the outbound vertex.
	OutboundID uuid.UUID

	// TypeName names the relation type.
	TypeName string

	// InboundID is the id of the inbound vertex.
	InboundID uuid.UUID

	// Description of the relation instance.
	Description string

	// Properties maps property name to value. Values are dynamically
	// typed: boolean, number, string, array, object, or null.
	Properties Object
}

// NewRelationInstance creates a snapshot with an empty description.
func NewRelationInstance(outboundID uuid.UUID, typeName string, inboundID uuid.UUID, properties Object) *RelationInstance {
	if properties == nil {
		properties = Object{}
	}
	return &RelationInstance{
		OutboundID: outboundID,
		TypeName:   typeName,
		InboundID:  inboundID,
		Properties: properties,
	}
}

// RelationInstanceFromProperties converts a persisted edge's properties
// into a snapshot. The conversion is total: every stored named property
// becomes a map entry verbatim, unknown properties included.
func RelationInstanceFromProperties(ep EdgeProperties) *RelationInstance {
	properties := make(Object, len(ep.Props))
	for _, p := range ep.Props {
		properties[p.Name] = p.Value
	}
	return &RelationInstance{
		OutboundID:  ep.Key.OutboundID,
		TypeName:    ep.Key.Type.String(),
		InboundID:   ep.Key.InboundID,
		Description: ep.Description,
		Properties:  properties,
	}
}

// Key derives the edge key (outbound id, type identifier, inbound id) from
// the current type name. The second result is false when the type name
// cannot be encoded as a graph identifier: the key is advisory/derived, not
// authoritative storage, so failure is an absent result rather than an
// error.
func (r *RelationInstance) Key() (EdgeKey, bool) {
	t, err := ParseIdentifier(r.TypeName)
	if err != nil {
		return EdgeKey{}, false
	}
	return EdgeKey{OutboundID: r.OutboundID, Type: t, InboundID: r.InboundID}, true
}

// Get returns the named property value. Absent name yields an absent result.
func (r *RelationInstance) Get(name string) (Value, bool) {
	v, ok := r.Properties[name]
	return v, ok
}

// AsBool returns the named property coerced to bool.
// An absent name and a failed coercion both yield an absent result;
// callers cannot distinguish the two through this interface.
func (r *RelationInstance) AsBool(name string) (bool, bool) {
	v, ok := r.Properties[name]
	if !ok {
		return false, false
	}
	return AsBool(v)
}

// AsU64 returns the named property coerced to uint64.
func (r *RelationInstance) AsU64(name string) (uint64, bool) {
	v, ok := r.Properties[name]
	if !ok {
		return 0, false
	}
	return AsU64(v)
}

// AsI64 returns the named property coerced to int64.
func (r *RelationInstance) AsI64(name string) (int64, bool) {
	v, ok := r.Properties[name]
	if !ok {
		return 0, false
	}
	return AsI64(v)
}

// AsF64 returns the named property coerced to float64.
func (r *RelationInstance) AsF64(name string) (float64, bool) {
	v, ok := r.Properties[name]
	if !ok {
		return 0, false
	}
	return AsF64(v)
}

// AsString returns the named property coerced to string.
func (r *RelationInstance) AsString(name string) (string, bool) {
	v, ok := r.Properties[name]
	if !ok {
		return "", false
	}
	return AsString(v)
}

// Set updates an existing property. Returns ErrNoSuchProperty if the
// instance does not carry the named property.
func (r *RelationInstance) Set(name string, value Value) error {
	if _, ok := r.Properties[name]; !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchProperty, name)
	}
	r.Properties[name] = value
	return nil
}

// MarshalJSON implements json.Marshaler for RelationInstance.
func (r *RelationInstance) MarshalJSON() ([]byte, error) {
	properties := r.Properties
	if properties == nil {
		properties = Object{}
	}
	return json.Marshal(struct {
		OutboundID  uuid.UUID `json:"outbound_id"`
		TypeName    string    `json:"type_name"`
		InboundID   uuid.UUID `json:"inbound_id"`
		Description string    `json:"description"`
		Properties  Object    `json:"properties"`
	}{r.OutboundID, r.TypeName, r.InboundID, r.Description, properties})
}

// UnmarshalJSON implements json.Unmarshaler for RelationInstance.
// The type-name field accepts either "type" or "type_name" as input key;
// description defaults to empty and properties to an empty mapping.
func (r *RelationInstance) UnmarshalJSON(data []byte) error {
	var raw struct {
		OutboundID  uuid.UUID `json:"outbound_id"`
		TypeName    string    `json:"type_name"`
		Type        string    `json:"type"`
		InboundID   uuid.UUID `json:"inbound_id"`
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
	*r = RelationInstance{
		OutboundID:  raw.OutboundID,
		TypeName:    typeName,
		InboundID:   raw.InboundID,
		Description: raw.Description,
		Properties:  properties,
	}
	return nil
}
