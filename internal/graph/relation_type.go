package graph

import "encoding/json"

// RelationType defines the type of a relation instance.
//
// The relation type names the entity types of the outbound and inbound
// endpoints; together with the relation name they form the composite
// identity of the relation type. Like EntityType, values are immutable
// after construction.
type RelationType struct {
	// OutboundType is the name of the outbound entity type.
	OutboundType string `json:"outbound_type"`

	// Name of the relation type.
	Name string `json:"type_name"`

	// InboundType is the name of the inbound entity type.
	InboundType string `json:"inbound_type"`

	// Group the relation type belongs to.
	Group string `json:"group"`

	// Description of the relation type.
	Description string `json:"description"`

	// Components lists the names of the components of the relation type.
	Components []string `json:"components"`

	// Properties declared directly by the relation type.
	Properties []PropertyType `json:"properties"`

	// Extensions specific to the relation type.
	Extensions []Extension `json:"extensions"`

	t Identifier
}

// NewRelationType builds a relation type descriptor.
// Panics if name cannot be encoded as a graph identifier, for the same
// reason NewEntityType does.
func NewRelationType(outboundType, name, inboundType, group, description string, components []string, properties []PropertyType, extensions []Extension) *RelationType {
	return &RelationType{
		OutboundType: outboundType,
		Name:         name,
		InboundType:  inboundType,
		Group:        group,
		Description:  description,
		Components:   components,
		Properties:   properties,
		Extensions:   extensions,
		t:            MustIdentifier(name),
	}
}

// Identifier returns the graph identifier token derived from the type name.
func (t *RelationType) Identifier() Identifier {
	return t.t
}

// IsA reports whether the relation type is composed with the named component.
func (t *RelationType) IsA(componentName string) bool {
	for _, c := range t.Components {
		if c == componentName {
			return true
		}
	}
	return false
}

// HasOwnProperty reports whether the relation type declares a property with
// the given name directly. Doesn't resolve properties from components.
func (t *RelationType) HasOwnProperty(name string) bool {
	for _, p := range t.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasOwnExtension reports whether the relation type carries an extension
// with the given name.
func (t *RelationType) HasOwnExtension(name string) bool {
	for _, e := range t.Extensions {
		if e.Name == name {
			return true
		}
	}
	return false
}

// UnmarshalJSON implements json.Unmarshaler for RelationType.
// The type-name field accepts either "type_name" or "name" as input key.
// Absent optional fields decode to explicit defaults, and the identifier
// token is recomputed from the decoded name.
func (t *RelationType) UnmarshalJSON(data []byte) error {
	type plain struct {
		OutboundType string         `json:"outbound_type"`
		TypeName     string         `json:"type_name"`
		Name         string         `json:"name"`
		InboundType  string         `json:"inbound_type"`
		Group        string         `json:"group"`
		Description  string         `json:"description"`
		Components   []string       `json:"components"`
		Properties   []PropertyType `json:"properties"`
		Extensions   []Extension    `json:"extensions"`
	}
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	name := raw.TypeName
	if name == "" {
		name = raw.Name
	}
	id, err := ParseIdentifier(name)
	if err != nil {
		return err
	}
	*t = RelationType{
		OutboundType: raw.OutboundType,
		Name:         name,
		InboundType:  raw.InboundType,
		Group:        raw.Group,
		Description:  raw.Description,
		Components:   defaultSlice(raw.Components),
		Properties:   defaultSlice(raw.Properties),
		Extensions:   defaultSlice(raw.Extensions),
		t:            id,
	}
	return nil
}
