package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidcase/reagraph/internal/graph"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := New()

	r.RegisterComponent(&Component{Name: "positionable"})
	r.RegisterEntityType(graph.NewEntityType("camera", "", "", nil, nil, nil))
	r.RegisterRelationType(graph.NewRelationType("player", "looks_at", "camera", "", "", nil, nil, nil))

	c, ok := r.Component("positionable")
	require.True(t, ok)
	assert.Equal(t, "positionable", c.Name)

	et, ok := r.EntityType("camera")
	require.True(t, ok)
	assert.Equal(t, "camera", et.Name)

	rt, ok := r.RelationType("looks_at")
	require.True(t, ok)
	assert.Equal(t, "player", rt.OutboundType)
	assert.Equal(t, "camera", rt.InboundType)

	_, ok = r.Component("unknown")
	assert.False(t, ok)
	_, ok = r.EntityType("unknown")
	assert.False(t, ok)
	_, ok = r.RelationType("unknown")
	assert.False(t, ok)
}

func TestRegistry_RelationTypeBetween(t *testing.T) {
	r := New()
	r.RegisterRelationType(graph.NewRelationType("player", "looks_at", "camera", "", "", nil, nil, nil))

	rt, ok := r.RelationTypeBetween("player", "looks_at", "camera")
	require.True(t, ok)
	assert.Equal(t, "looks_at", rt.Name)

	tests := []struct {
		name     string
		outbound string
		relation string
		inbound  string
	}{
		{name: "wrong outbound", outbound: "camera", relation: "looks_at", inbound: "camera"},
		{name: "wrong inbound", outbound: "player", relation: "looks_at", inbound: "player"},
		{name: "unknown name", outbound: "player", relation: "watches", inbound: "camera"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := r.RelationTypeBetween(tt.outbound, tt.relation, tt.inbound)
			assert.False(t, ok)
		})
	}
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	r := New()

	r.RegisterComponent(&Component{Name: "positionable", Description: "first"})
	r.RegisterComponent(&Component{Name: "positionable", Description: "second"})

	c, ok := r.Component("positionable")
	require.True(t, ok)
	assert.Equal(t, "second", c.Description)
	assert.Len(t, r.Components(), 1)
}

func TestRegistry_EntityTypeProperties(t *testing.T) {
	r := New()

	r.RegisterComponent(&Component{
		Name: "positionable",
		Properties: []graph.PropertyType{
			graph.NewPropertyType("x", graph.DataTypeNumber),
			graph.NewPropertyType("fov", graph.DataTypeString),
		},
	})
	r.RegisterEntityType(graph.NewEntityType(
		"camera", "", "",
		[]string{"positionable", "unregistered"},
		[]graph.PropertyType{graph.NewPropertyType("fov", graph.DataTypeNumber)},
		nil,
	))

	props, ok := r.EntityTypeProperties("camera")
	require.True(t, ok)

	byName := make(map[string]graph.PropertyType, len(props))
	for _, p := range props {
		byName[p.Name] = p
	}
	require.Len(t, byName, 2)
	assert.Equal(t, graph.DataTypeNumber, byName["fov"].DataType,
		"the type's own declaration wins over the component's")
	assert.Equal(t, graph.DataTypeNumber, byName["x"].DataType)

	_, ok = r.EntityTypeProperties("unknown")
	assert.False(t, ok)
}

func TestRegistry_RelationTypeProperties(t *testing.T) {
	r := New()

	r.RegisterComponent(&Component{
		Name:       "weighted",
		Properties: []graph.PropertyType{graph.NewPropertyType("weight", graph.DataTypeNumber)},
	})
	r.RegisterRelationType(graph.NewRelationType(
		"source", "connector", "sink", "", "",
		[]string{"weighted"}, nil, nil,
	))

	props, ok := r.RelationTypeProperties("connector")
	require.True(t, ok)
	require.Len(t, props, 1)
	assert.Equal(t, "weight", props[0].Name)
}
