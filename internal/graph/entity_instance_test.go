package graph

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestEntityInstance_Key(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name     string
		typeName string
		wantKey  bool
	}{
		{name: "valid type name", typeName: "camera", wantKey: true},
		{name: "empty type name", typeName: "", wantKey: false},
		{name: "rejected characters", typeName: "bad/name", wantKey: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEntityInstance(id, tt.typeName, nil)
			key, ok := e.Key()
			if ok != tt.wantKey {
				t.Fatalf("Key() ok = %v, want %v", ok, tt.wantKey)
			}
			if tt.wantKey && (key.ID != id || key.Type != Identifier(tt.typeName)) {
				t.Errorf("key = %+v, want id %s type %q", key, id, tt.typeName)
			}
		})
	}
}

func TestEntityInstanceFromProperties_Total(t *testing.T) {
	id := uuid.New()
	vp := VertexProperties{
		Vertex:      Vertex{ID: id, Type: Identifier("camera")},
		Description: "entry camera",
		Props: []NamedProperty{
			{Name: "fov", Value: Float(90)},
			{Name: "undeclared", Value: Array{Int(1), Int(2)}},
		},
	}

	e := EntityInstanceFromProperties(vp)

	if e.ID != id || e.TypeName != "camera" {
		t.Errorf("identity = %s/%q, want %s/camera", e.ID, e.TypeName, id)
	}
	if e.Description != "entry camera" {
		t.Errorf("Description = %q, want stored description", e.Description)
	}
	if _, ok := e.Get("undeclared"); !ok {
		t.Error("undeclared property was filtered out")
	}
}

func TestEntityInstance_SetAbsent(t *testing.T) {
	e := NewEntityInstance(uuid.New(), "camera", Object{"fov": Float(90)})

	if err := e.Set("fov", Float(120)); err != nil {
		t.Fatalf("Set(fov) failed: %v", err)
	}
	if f, _ := e.AsF64("fov"); f != 120 {
		t.Errorf("fov = %v, want 120", f)
	}

	err := e.Set("zoom", Int(2))
	if !errors.Is(err, ErrNoSuchProperty) {
		t.Errorf("Set(zoom) error = %v, want ErrNoSuchProperty", err)
	}
	if _, ok := e.Get("zoom"); ok {
		t.Error("failed Set inserted the property")
	}
}

func TestEntityInstance_Getters(t *testing.T) {
	e := NewEntityInstance(uuid.New(), "camera", Object{
		"active": Bool(true),
		"frames": Int(-4),
		"name":   String("front door"),
	})

	if b, ok := e.AsBool("active"); !ok || !b {
		t.Errorf("AsBool(active) = %v, %v", b, ok)
	}
	if i, ok := e.AsI64("frames"); !ok || i != -4 {
		t.Errorf("AsI64(frames) = %v, %v", i, ok)
	}
	// Negative ints do not coerce to unsigned.
	if _, ok := e.AsU64("frames"); ok {
		t.Error("AsU64(frames) = ok, want absent")
	}
	if s, ok := e.AsString("name"); !ok || s != "front door" {
		t.Errorf("AsString(name) = %v, %v", s, ok)
	}
}

func TestEntityInstance_UnmarshalJSON(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name  string
		input string
		want  EntityInstance
	}{
		{
			name:  "full",
			input: `{"id": "` + id.String() + `", "type_name": "camera", "description": "d", "properties": {"fov": 90.0}}`,
			want: EntityInstance{
				ID: id, TypeName: "camera", Description: "d",
				Properties: Object{"fov": Float(90)},
			},
		},
		{
			name:  "type alias and defaults",
			input: `{"id": "` + id.String() + `", "type": "camera"}`,
			want:  EntityInstance{ID: id, TypeName: "camera", Properties: Object{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e EntityInstance
			if err := json.Unmarshal([]byte(tt.input), &e); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(e, tt.want) {
				t.Errorf("decoded = %+v, want %+v", e, tt.want)
			}
		})
	}
}

func TestEntityInstance_JSONRoundTrip(t *testing.T) {
	original := NewEntityInstance(uuid.New(), "camera", Object{
		"fov":    Float(92.5),
		"serial": Int(9007199254740993),
		"tags":   Array{String("indoor")},
		"extra":  Object{"nested": Bool(false)},
	})
	original.Description = "front door camera"

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded EntityInstance
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(&decoded, original) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}
