package graph

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/sebdah/goldie/v2"
)

func TestRelationInstance_Key(t *testing.T) {
	outID := uuid.New()
	inID := uuid.New()

	tests := []struct {
		name     string
		typeName string
		wantKey  bool
	}{
		{name: "valid type name", typeName: "connector", wantKey: true},
		{name: "empty type name", typeName: "", wantKey: false},
		{name: "rejected characters", typeName: "no spaces allowed", wantKey: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRelationInstance(outID, tt.typeName, inID, nil)
			key, ok := r.Key()
			if ok != tt.wantKey {
				t.Fatalf("Key() ok = %v, want %v", ok, tt.wantKey)
			}
			if !tt.wantKey {
				return
			}
			if key.OutboundID != outID || key.InboundID != inID {
				t.Errorf("key endpoints = %s/%s, want %s/%s", key.OutboundID, key.InboundID, outID, inID)
			}
			if key.Type != Identifier(tt.typeName) {
				t.Errorf("key type = %q, want %q", key.Type, tt.typeName)
			}
		})
	}
}

func TestRelationInstanceFromProperties_Total(t *testing.T) {
	key := EdgeKey{
		OutboundID: uuid.New(),
		Type:       Identifier("connector"),
		InboundID:  uuid.New(),
	}
	ep := EdgeProperties{
		Key:         key,
		Description: "main feed",
		Props: []NamedProperty{
			{Name: "weight", Value: Float(1.5)},
			{Name: "unknown_extra", Value: String("preserved, not filtered")},
		},
	}

	r := RelationInstanceFromProperties(ep)

	if r.OutboundID != key.OutboundID || r.InboundID != key.InboundID {
		t.Error("endpoint ids not preserved")
	}
	if r.TypeName != "connector" {
		t.Errorf("TypeName = %q, want connector", r.TypeName)
	}
	if r.Description != "main feed" {
		t.Errorf("Description = %q, want stored description", r.Description)
	}
	if v, ok := r.Get("unknown_extra"); !ok || v != String("preserved, not filtered") {
		t.Error("extra property was filtered or altered")
	}
	if f, ok := r.AsF64("weight"); !ok || f != 1.5 {
		t.Errorf("AsF64(weight) = %v, %v", f, ok)
	}
}

func TestRelationInstance_Getters(t *testing.T) {
	r := NewRelationInstance(uuid.New(), "connector", uuid.New(), Object{
		"enabled": Bool(true),
		"count":   Int(3),
		"weight":  Float(1.5),
		"label":   String("main"),
	})

	if b, ok := r.AsBool("enabled"); !ok || !b {
		t.Errorf("AsBool(enabled) = %v, %v", b, ok)
	}
	if u, ok := r.AsU64("count"); !ok || u != 3 {
		t.Errorf("AsU64(count) = %v, %v", u, ok)
	}
	if i, ok := r.AsI64("count"); !ok || i != 3 {
		t.Errorf("AsI64(count) = %v, %v", i, ok)
	}
	if f, ok := r.AsF64("weight"); !ok || f != 1.5 {
		t.Errorf("AsF64(weight) = %v, %v", f, ok)
	}
	if s, ok := r.AsString("label"); !ok || s != "main" {
		t.Errorf("AsString(label) = %v, %v", s, ok)
	}

	// Absent key and failed coercion are indistinguishable absences.
	if _, ok := r.Get("missing"); ok {
		t.Error("Get(missing) = ok, want absent")
	}
	if _, ok := r.AsBool("weight"); ok {
		t.Error("AsBool(weight) = ok, want absent")
	}
}

func TestRelationInstance_SetAbsent(t *testing.T) {
	r := NewRelationInstance(uuid.New(), "connector", uuid.New(), Object{"weight": Float(1.5)})

	if err := r.Set("weight", Float(2.0)); err != nil {
		t.Fatalf("Set(weight) failed: %v", err)
	}
	if f, _ := r.AsF64("weight"); f != 2.0 {
		t.Errorf("weight = %v, want 2.0", f)
	}

	err := r.Set("undeclared", Int(1))
	if !errors.Is(err, ErrNoSuchProperty) {
		t.Errorf("Set(undeclared) error = %v, want ErrNoSuchProperty", err)
	}
	if _, ok := r.Get("undeclared"); ok {
		t.Error("failed Set inserted the property")
	}
}

func TestRelationInstance_UnmarshalJSON(t *testing.T) {
	outID := uuid.New()
	inID := uuid.New()

	tests := []struct {
		name  string
		input string
		want  RelationInstance
	}{
		{
			name:  "type_name key",
			input: `{"outbound_id": "` + outID.String() + `", "type_name": "connector", "inbound_id": "` + inID.String() + `", "description": "d", "properties": {"weight": 1.5}}`,
			want: RelationInstance{
				OutboundID: outID, TypeName: "connector", InboundID: inID,
				Description: "d", Properties: Object{"weight": Float(1.5)},
			},
		},
		{
			name:  "type alias",
			input: `{"outbound_id": "` + outID.String() + `", "type": "connector", "inbound_id": "` + inID.String() + `"}`,
			want: RelationInstance{
				OutboundID: outID, TypeName: "connector", InboundID: inID,
				Properties: Object{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var r RelationInstance
			if err := json.Unmarshal([]byte(tt.input), &r); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if !reflect.DeepEqual(r, tt.want) {
				t.Errorf("decoded = %+v, want %+v", r, tt.want)
			}
		})
	}
}

func TestRelationInstance_MarshalJSON_Golden(t *testing.T) {
	r := &RelationInstance{
		OutboundID:  uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		TypeName:    "connector",
		InboundID:   uuid.MustParse("22222222-2222-2222-2222-222222222222"),
		Description: "propagates weight",
		Properties: Object{
			"enabled": Bool(true),
			"label":   String("main"),
			"note":    Null{},
			"offsets": Array{Int(1), Float(2.5)},
			"weight":  Float(1.5),
		},
	}

	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		t.Fatalf("MarshalIndent failed: %v", err)
	}

	g := goldie.New(t)
	g.Assert(t, "relation_instance", data)
}

func TestRelationInstance_JSONRoundTrip(t *testing.T) {
	original := NewRelationInstance(uuid.New(), "connector", uuid.New(), Object{
		"weight": Float(1.5),
		"count":  Int(9007199254740993),
	})
	original.Description = "a connector"

	data, err := json.Marshal(original)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var decoded RelationInstance
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !reflect.DeepEqual(&decoded, original) {
		t.Errorf("round trip = %+v, want %+v", decoded, original)
	}
}
