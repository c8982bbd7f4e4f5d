package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
)

// Value is a sealed interface representing a dynamically typed property
// value. Only Null, Bool, Int, Float, String, Array, and Object implement
// it, mirroring the JSON data model: properties can hold booleans, numbers,
// strings, arrays, objects, or null.
//
// Integers and floats are kept distinct so that integer-valued properties
// survive a store round trip exactly (no float64 precision loss for values
// beyond 2^53).
type Value interface {
	value() // Sealed - only these types implement it
}

// Null represents a JSON null value.
// Using an explicit type ensures all Values satisfy the sealed interface.
type Null struct{}

func (Null) value() {}

// MarshalJSON implements json.Marshaler for Null.
func (Null) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// Bool represents a boolean value.
type Bool bool

func (Bool) value() {}

// Int represents an integer number value. Always int64.
type Int int64

func (Int) value() {}

// Float represents a floating point number value.
type Float float64

func (Float) value() {}

// String represents a string value.
type String string

func (String) value() {}

// Array represents an array of Value elements.
type Array []Value

func (Array) value() {}

// Object represents a map of string keys to Value elements.
// Property mappings are Objects. JSON encoding of an Object is
// deterministic: keys are emitted in sorted order.
type Object map[string]Value

func (Object) value() {}

// UnmarshalJSON implements json.Unmarshaler for Object.
// Numbers are decoded via json.Number so integers stay exact.
func (o *Object) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	obj := make(Object, len(raw))
	for name, v := range raw {
		val, err := FromAny(v)
		if err != nil {
			return fmt.Errorf("property %q: %w", name, err)
		}
		obj[name] = val
	}
	*o = obj
	return nil
}

// UnmarshalJSON implements json.Unmarshaler for Array.
func (a *Array) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw []any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	arr, err := arrayFromAny(raw)
	if err != nil {
		return err
	}
	*a = arr
	return nil
}

// DecodeValue parses JSON text into a Value.
func DecodeValue(data []byte) (Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromAny(raw)
}

// EncodeValue serializes a Value to JSON text.
// Object keys are emitted in sorted order (Go's encoding/json sorts map
// keys), so encoding is deterministic.
func EncodeValue(v Value) ([]byte, error) {
	if v == nil {
		v = Null{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encoder adds a trailing newline, remove it
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FromAny converts a decoded JSON or YAML value (bool, string, numbers,
// json.Number, nil, []any, map[string]any) into a Value.
func FromAny(v any) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case bool:
		return Bool(val), nil
	case string:
		return String(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case uint64:
		if val > 1<<63-1 {
			return Float(val), nil
		}
		return Int(val), nil
	case float64:
		return Float(val), nil
	case json.Number:
		return numberValue(val)
	case []any:
		return arrayFromAny(val)
	case map[string]any:
		obj := make(Object, len(val))
		for name, elem := range val {
			converted, err := FromAny(elem)
			if err != nil {
				return nil, fmt.Errorf("key %q: %w", name, err)
			}
			obj[name] = converted
		}
		return obj, nil
	default:
		return nil, fmt.Errorf("unsupported value type %T", v)
	}
}

func arrayFromAny(raw []any) (Array, error) {
	arr := make(Array, len(raw))
	for i, elem := range raw {
		converted, err := FromAny(elem)
		if err != nil {
			return nil, fmt.Errorf("index %d: %w", i, err)
		}
		arr[i] = converted
	}
	return arr, nil
}

func numberValue(n json.Number) (Value, error) {
	if !strings.ContainsAny(n.String(), ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i), nil
		}
	}
	f, err := n.Float64()
	if err != nil {
		return nil, fmt.Errorf("invalid number %q: %w", n.String(), err)
	}
	return Float(f), nil
}

// AsBool reports the boolean content of v, if v is a Bool.
func AsBool(v Value) (bool, bool) {
	b, ok := v.(Bool)
	return bool(b), ok
}

// AsU64 reports the unsigned integer content of v, if v is a non-negative Int.
func AsU64(v Value) (uint64, bool) {
	i, ok := v.(Int)
	if !ok || i < 0 {
		return 0, false
	}
	return uint64(i), true
}

// AsI64 reports the integer content of v, if v is an Int.
func AsI64(v Value) (int64, bool) {
	i, ok := v.(Int)
	return int64(i), ok
}

// AsF64 reports the numeric content of v. Both Int and Float coerce.
func AsF64(v Value) (float64, bool) {
	switch n := v.(type) {
	case Int:
		return float64(n), true
	case Float:
		return float64(n), true
	default:
		return 0, false
	}
}

// AsString reports the string content of v, if v is a String.
func AsString(v Value) (string, bool) {
	s, ok := v.(String)
	return string(s), ok
}

// AsArray reports the array content of v, if v is an Array.
func AsArray(v Value) (Array, bool) {
	a, ok := v.(Array)
	return a, ok
}

// AsObject reports the object content of v, if v is an Object.
func AsObject(v Value) (Object, bool) {
	o, ok := v.(Object)
	return o, ok
}

// Clone returns a deep copy of an Object. The copy shares no containers
// with the original; scalar values are immutable and copied by value.
func (o Object) Clone() Object {
	clone := make(Object, len(o))
	for name, v := range o {
		clone[name] = cloneValue(v)
	}
	return clone
}

func cloneValue(v Value) Value {
	switch val := v.(type) {
	case Array:
		arr := make(Array, len(val))
		for i, elem := range val {
			arr[i] = cloneValue(elem)
		}
		return arr
	case Object:
		return val.Clone()
	default:
		return v
	}
}
