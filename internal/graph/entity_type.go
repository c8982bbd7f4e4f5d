package graph

import "encoding/json"

// EntityType defines the type of an entity instance.
//
// The name is the unique key for entity types. EntityType values are
// treated as immutable after construction: the derived identifier token is
// computed once from the name and stays in sync with it.
type EntityType struct {
	// Name of the entity type.
	Name string `json:"name"`

	// Group the entity type belongs to.
	Group string `json:"group"`

	// Description of the entity type.
	Description string `json:"description"`

	// Components lists the names of the components of the entity type.
	Components []string `json:"components"`

	// Properties declared directly by the entity type.
	Properties []PropertyType `json:"properties"`

	// Extensions specific to the entity type.
	Extensions []Extension `json:"extensions"`

	t Identifier
}

// NewEntityType builds an entity type descriptor.
// Panics if name cannot be encoded as a graph identifier: type names are
// expected to be validated at definition time, so an unencodable name is a
// programmer error rather than a runtime condition.
func NewEntityType(name, group, description string, components []string, properties []PropertyType, extensions []Extension) *EntityType {
	return &EntityType{
		Name:        name,
		Group:       group,
		Description: description,
		Components:  components,
		Properties:  properties,
		Extensions:  extensions,
		t:           MustIdentifier(name),
	}
}

// Identifier returns the graph identifier token derived from the type name.
func (t *EntityType) Identifier() Identifier {
	return t.t
}

// IsA reports whether the entity type is composed with the named component.
// Exact string match; no wildcard or hierarchy.
func (t *EntityType) IsA(componentName string) bool {
	for _, c := range t.Components {
		if c == componentName {
			return true
		}
	}
	return false
}

// HasOwnProperty reports whether the entity type declares a property with
// the given name directly. Properties contributed by components are not
// resolved here; that is the type registry's concern.
func (t *EntityType) HasOwnProperty(name string) bool {
	for _, p := range t.Properties {
		if p.Name == name {
			return true
		}
	}
	return false
}

// HasOwnExtension reports whether the entity type carries an extension with
// the given name.
func (t *EntityType) HasOwnExtension(name string) bool {
	for _, e := range t.Extensions {
		if e.Name == name {
			return true
		}
	}
	return false
}

// UnmarshalJSON implements json.Unmarshaler for EntityType.
// Absent fields decode to explicit defaults (empty group and description,
// empty component/property/extension lists), and the identifier token is
// recomputed from the decoded name. Unlike NewEntityType, decoding a bad
// name returns an error: serialized input is runtime data, not code.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	type plain struct {
		Name        string         `json:"name"`
		Group       string         `json:"group"`
		Description string         `json:"description"`
		Components  []string       `json:"components"`
		Properties  []PropertyType `json:"properties"`
		Extensions  []Extension    `json:"extensions"`
	}
	var raw plain
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	id, err := ParseIdentifier(raw.Name)
	if err != nil {
		return err
	}
	*t = EntityType{
		Name:        raw.Name,
		Group:       raw.Group,
		Description: raw.Description,
		Components:  defaultSlice(raw.Components),
		Properties:  defaultSlice(raw.Properties),
		Extensions:  defaultSlice(raw.Extensions),
		t:           id,
	}
	return nil
}

// defaultSlice replaces a nil slice with an empty one, so decoded
// descriptors always carry concrete (if empty) lists.
func defaultSlice[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
