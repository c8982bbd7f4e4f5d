package graph

import (
	"encoding/json"
	"testing"
)

func TestNewRelationType(t *testing.T) {
	rt := NewRelationType("player", "current_camera", "camera", "gameplay", "the player's active camera",
		nil,
		[]PropertyType{NewPropertyType("priority", DataTypeNumber)},
		nil,
	)

	if rt.Name != "current_camera" {
		t.Errorf("Name = %q, want %q", rt.Name, "current_camera")
	}
	if rt.Identifier() != Identifier("current_camera") {
		t.Errorf("Identifier() = %q, want %q", rt.Identifier(), "current_camera")
	}
	if rt.OutboundType != "player" || rt.InboundType != "camera" {
		t.Errorf("endpoint types = %q/%q, want player/camera", rt.OutboundType, rt.InboundType)
	}
	if !rt.HasOwnProperty("priority") {
		t.Error("HasOwnProperty(priority) = false, want true")
	}
}

func TestNewRelationType_PanicsOnInvalidName(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("NewRelationType did not panic on invalid name")
		}
	}()
	NewRelationType("a", "bad name", "b", "", "", nil, nil, nil)
}

func TestRelationType_UnmarshalJSON_NameAlias(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "type_name key", input: `{"outbound_type": "a", "type_name": "connector", "inbound_type": "b"}`},
		{name: "name alias", input: `{"outbound_type": "a", "name": "connector", "inbound_type": "b"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var rt RelationType
			if err := json.Unmarshal([]byte(tt.input), &rt); err != nil {
				t.Fatalf("Unmarshal failed: %v", err)
			}
			if rt.Name != "connector" {
				t.Errorf("Name = %q, want %q", rt.Name, "connector")
			}
			if rt.Identifier() != Identifier("connector") {
				t.Errorf("Identifier() = %q, want %q", rt.Identifier(), "connector")
			}
			if rt.Components == nil || rt.Properties == nil || rt.Extensions == nil {
				t.Error("list fields should default to empty slices")
			}
		})
	}
}

func TestRelationType_IsA(t *testing.T) {
	rt := NewRelationType("a", "connector", "b", "", "", []string{"propagating"}, nil, nil)

	if !rt.IsA("propagating") {
		t.Error("IsA(propagating) = false, want true")
	}
	if rt.IsA("buffered") {
		t.Error("IsA(buffered) = true, want false")
	}
}
