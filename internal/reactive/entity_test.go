package reactive

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidcase/reagraph/internal/graph"
)

// recordingCell is a Cell double that counts propagation calls.
type recordingCell struct {
	id         uuid.UUID
	name       string
	value      graph.Value
	sets       int
	silentSets int
	ticks      int
}

func newRecordingCell(name string, value graph.Value) *recordingCell {
	return &recordingCell{id: uuid.New(), name: name, value: value}
}

func (c *recordingCell) ID() uuid.UUID     { return c.id }
func (c *recordingCell) Name() string      { return c.name }
func (c *recordingCell) Get() graph.Value  { return c.value }
func (c *recordingCell) Tick()             { c.ticks++ }
func (c *recordingCell) Set(v graph.Value) { c.value = v; c.sets++ }
func (c *recordingCell) SetNoPropagate(v graph.Value) {
	c.value = v
	c.silentSets++
}

func TestNewEntity(t *testing.T) {
	id := uuid.New()
	e := NewEntity(id, "camera", graph.Object{
		"fov":  graph.Float(90),
		"name": graph.String("front door"),
	})

	assert.Equal(t, id, e.ID)
	assert.Equal(t, "camera", e.TypeName)
	assert.Empty(t, e.Description)
	assert.Equal(t, 2, e.PropertyCount())

	v, ok := e.Get("fov")
	require.True(t, ok)
	assert.Equal(t, graph.Float(90), v)
}

func TestNewEntityFromProperties(t *testing.T) {
	id := uuid.New()
	vp := graph.VertexProperties{
		Vertex:      graph.Vertex{ID: id, Type: graph.Identifier("camera")},
		Description: "entry camera",
		Props: []graph.NamedProperty{
			{Name: "fov", Value: graph.Float(90)},
		},
	}

	e := NewEntityFromProperties(vp)

	assert.Equal(t, id, e.ID)
	assert.Equal(t, "camera", e.TypeName)
	assert.Equal(t, "entry camera", e.Description)
	f, ok := e.AsF64("fov")
	require.True(t, ok)
	assert.Equal(t, 90.0, f)
}

func TestEntity_ConstructorsConverge(t *testing.T) {
	// All three construction paths yield the same observable state.
	id := uuid.New()
	props := graph.Object{"fov": graph.Float(90)}

	fromRaw := NewEntity(id, "camera", props)
	fromInstance := NewEntityFromInstance(graph.NewEntityInstance(id, "camera", props.Clone()))
	fromStore := NewEntityFromProperties(graph.VertexProperties{
		Vertex: graph.Vertex{ID: id, Type: graph.Identifier("camera")},
		Props:  []graph.NamedProperty{{Name: "fov", Value: graph.Float(90)}},
	})

	for _, e := range []*Entity{fromRaw, fromInstance, fromStore} {
		assert.Equal(t, id, e.ID)
		assert.Equal(t, "camera", e.TypeName)
		f, ok := e.AsF64("fov")
		require.True(t, ok)
		assert.Equal(t, 90.0, f)
	}
}

func TestEntity_AddPropertyFirstWriterWins(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", graph.Object{"fov": graph.Float(90)})
	cell, _ := e.Cell("fov")

	e.AddProperty("fov", graph.Float(120))

	after, _ := e.Cell("fov")
	assert.Equal(t, cell.ID(), after.ID(), "existing cell must survive a duplicate add")
	f, _ := e.AsF64("fov")
	assert.Equal(t, 90.0, f)
}

func TestEntity_AttachCell(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", nil)
	rec := newRecordingCell("zoom", graph.Int(1))

	require.True(t, e.AttachCell(rec))
	assert.False(t, e.AttachCell(newRecordingCell("zoom", graph.Int(2))),
		"second attach under the same name loses")

	require.NoError(t, e.Set("zoom", graph.Int(3)))
	require.NoError(t, e.SetNoPropagate("zoom", graph.Int(4)))
	e.Tick()

	assert.Equal(t, 1, rec.sets)
	assert.Equal(t, 1, rec.silentSets)
	assert.Equal(t, 1, rec.ticks)
	assert.Equal(t, graph.Int(4), rec.value)
}

func TestEntity_SetAbsentProperty(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", graph.Object{"fov": graph.Float(90)})

	err := e.Set("zoom", graph.Int(2))
	require.ErrorIs(t, err, graph.ErrNoSuchProperty)

	err = e.SetNoPropagate("zoom", graph.Int(2))
	require.ErrorIs(t, err, graph.ErrNoSuchProperty)

	_, ok := e.Get("zoom")
	assert.False(t, ok, "failed writes must not insert the property")
}

func TestEntity_ContainerGetters(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", graph.Object{
		"tags":  graph.Array{graph.String("indoor"), graph.Int(1)},
		"shape": graph.Object{"width": graph.Int(2)},
		"fov":   graph.Float(90),
	})

	arr, ok := e.AsArray("tags")
	require.True(t, ok)
	assert.Equal(t, graph.Array{graph.String("indoor"), graph.Int(1)}, arr)

	obj, ok := e.AsObject("shape")
	require.True(t, ok)
	assert.Equal(t, graph.Object{"width": graph.Int(2)}, obj)

	_, ok = e.AsArray("fov")
	assert.False(t, ok)
	_, ok = e.AsObject("fov")
	assert.False(t, ok)
	_, ok = e.AsArray("missing")
	assert.False(t, ok)
}

func TestEntity_ComponentsAndBehaviours(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", nil)

	e.AddComponent("positionable")
	e.AddComponent("positionable") // idempotent
	assert.True(t, e.IsA("positionable"))
	assert.Len(t, e.Components(), 1)

	e.RemoveComponent("positionable")
	e.RemoveComponent("positionable") // removing absent is a no-op
	assert.False(t, e.IsA("positionable"))

	e.AddBehaviour("follow")
	assert.True(t, e.BehavesAs("follow"))
	assert.False(t, e.IsA("follow"), "behaviours never leak into components")
	e.RemoveBehaviour("follow")
	assert.Empty(t, e.Behaviours())
}

func TestEntity_Key(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", nil)
	key, ok := e.Key()
	require.True(t, ok)
	assert.Equal(t, graph.Identifier("camera"), key.Type)

	e.TypeName = "not a valid name"
	_, ok = e.Key()
	assert.False(t, ok)
}

func TestEntity_SnapshotRoundTrip(t *testing.T) {
	id := uuid.New()
	inst := graph.NewEntityInstance(id, "camera", graph.Object{
		"fov":  graph.Float(92.5),
		"name": graph.String("front door"),
	})
	inst.Description = "entry camera"

	live := NewEntityFromInstance(inst)
	require.NoError(t, live.Set("fov", graph.Float(110.5)))

	snap := live.Snapshot()
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, "camera", snap.TypeName)
	assert.Equal(t, "entry camera", snap.Description)
	assert.Equal(t, graph.Object{
		"fov":  graph.Float(110.5),
		"name": graph.String("front door"),
	}, snap.Properties)

	// The snapshot is detached: further live writes do not touch it.
	require.NoError(t, live.Set("fov", graph.Float(50.5)))
	assert.Equal(t, graph.Float(110.5), snap.Properties["fov"])
}

func TestEntity_SetInvalidNameError(t *testing.T) {
	e := NewEntity(uuid.New(), "camera", nil)
	err := e.Set("missing", graph.Int(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, graph.ErrNoSuchProperty))
	assert.Contains(t, err.Error(), "missing")
}
