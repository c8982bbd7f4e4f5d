package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
	"github.com/voidcase/reagraph/internal/store"
)

// TempStore opens a store in a test temp directory and closes it on
// cleanup. Returns the database path for commands that reopen it.
func TempStore(t *testing.T) (string, *store.Store) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "graph.db")
	s, err := store.Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return path, s
}

// SeededEdge describes the small graph SeedGraph writes: two vertices and
// one connector edge between them.
type SeededEdge struct {
	OutboundID uuid.UUID
	InboundID  uuid.UUID
	Key        graph.EdgeKey
}

// SeedGraph writes a minimal graph into the store: an outbound vertex, an
// inbound vertex, and a "connector" edge carrying a weight property. All
// three rows carry descriptions.
func SeedGraph(t *testing.T, s *store.Store) SeededEdge {
	t.Helper()
	ctx := context.Background()

	outbound := graph.NewEntityInstance(uuid.New(), "source", graph.Object{"value": graph.Float(1.5)})
	outbound.Description = "signal source"
	inbound := graph.NewEntityInstance(uuid.New(), "sink", graph.Object{"value": graph.Float(0)})
	inbound.Description = "signal sink"
	if err := s.WriteVertex(ctx, outbound); err != nil {
		t.Fatalf("WriteVertex(outbound) failed: %v", err)
	}
	if err := s.WriteVertex(ctx, inbound); err != nil {
		t.Fatalf("WriteVertex(inbound) failed: %v", err)
	}

	relation := graph.NewRelationInstance(outbound.ID, "connector", inbound.ID, graph.Object{
		"weight": graph.Float(1.5),
	})
	relation.Description = "main feed"
	if err := s.WriteEdge(ctx, relation); err != nil {
		t.Fatalf("WriteEdge() failed: %v", err)
	}

	key, ok := relation.Key()
	if !ok {
		t.Fatal("seeded relation has no derivable key")
	}
	return SeededEdge{
		OutboundID: outbound.ID,
		InboundID:  inbound.ID,
		Key:        key,
	}
}
