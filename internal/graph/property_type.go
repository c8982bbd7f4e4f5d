package graph

import "encoding/json"

// DataType declares the expected value shape of a property.
type DataType string

// Declared property data types. Any accepts every value shape.
const (
	DataTypeNull   DataType = "null"
	DataTypeBool   DataType = "bool"
	DataTypeNumber DataType = "number"
	DataTypeString DataType = "string"
	DataTypeArray  DataType = "array"
	DataTypeObject DataType = "object"
	DataTypeAny    DataType = "any"
)

// SocketType declares how a property participates in derived-property
// computation graphs: as an input socket, an output socket, or not at all.
type SocketType string

const (
	SocketTypeNone   SocketType = "none"
	SocketTypeInput  SocketType = "input"
	SocketTypeOutput SocketType = "output"
)

// PropertyType declares a named property on an entity or relation type.
type PropertyType struct {
	// Name of the declared property.
	Name string `json:"name" yaml:"name"`

	// DataType of the property value.
	DataType DataType `json:"data_type" yaml:"data_type"`

	// SocketType of the property. Defaults to SocketTypeNone.
	SocketType SocketType `json:"socket_type,omitempty" yaml:"socket_type,omitempty"`
}

// NewPropertyType creates a property declaration with no socket.
func NewPropertyType(name string, dataType DataType) PropertyType {
	return PropertyType{Name: name, DataType: dataType, SocketType: SocketTypeNone}
}

// Extension attaches named, schema-free metadata to a type descriptor.
type Extension struct {
	// Name of the extension.
	Name string `json:"name"`

	// Extension carries the extension content as a dynamic value.
	Extension Value `json:"extension,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler for Extension.
// An absent extension body defaults to Null.
func (e *Extension) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name      string          `json:"name"`
		Extension json.RawMessage `json:"extension"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.Name = raw.Name
	if raw.Extension == nil {
		e.Extension = Null{}
		return nil
	}
	v, err := DecodeValue(raw.Extension)
	if err != nil {
		return err
	}
	e.Extension = v
	return nil
}
