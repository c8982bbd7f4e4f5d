package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
)

// WriteVertex stores an entity snapshot: the vertex row plus every
// property, replacing whatever was stored before. The snapshot's type name
// must be encodable as a graph identifier.
func (s *Store) WriteVertex(ctx context.Context, instance *graph.EntityInstance) error {
	key, ok := instance.Key()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTypeName, instance.TypeName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write vertex: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO vertices (id, type, description) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET type = excluded.type, description = excluded.description
	`, key.ID.String(), key.Type.String(), instance.Description)
	if err != nil {
		return fmt.Errorf("write vertex %s: %w", key.ID, err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM vertex_properties WHERE vertex_id = ?`, key.ID.String())
	if err != nil {
		return fmt.Errorf("clear vertex properties %s: %w", key.ID, err)
	}

	for _, name := range sortedNames(instance.Properties) {
		text, err := marshalValue(instance.Properties[name])
		if err != nil {
			return fmt.Errorf("vertex %s property %q: %w", key.ID, name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO vertex_properties (vertex_id, name, value) VALUES (?, ?, ?)
		`, key.ID.String(), name, text)
		if err != nil {
			return fmt.Errorf("write vertex %s property %q: %w", key.ID, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write vertex: %w", err)
	}
	return nil
}

// WriteEdge stores a relation snapshot: the edge row plus every property,
// replacing whatever was stored before. The edge key is derived from the
// snapshot; both endpoint vertices must already exist.
func (s *Store) WriteEdge(ctx context.Context, instance *graph.RelationInstance) error {
	key, ok := instance.Key()
	if !ok {
		return fmt.Errorf("%w: %q", ErrInvalidTypeName, instance.TypeName)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin write edge: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO edges (outbound_id, type, inbound_id, description) VALUES (?, ?, ?, ?)
		ON CONFLICT(outbound_id, type, inbound_id) DO UPDATE SET description = excluded.description
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String(), instance.Description)
	if err != nil {
		return fmt.Errorf("write edge %s: %w", key, err)
	}

	_, err = tx.ExecContext(ctx, `
		DELETE FROM edge_properties WHERE outbound_id = ? AND type = ? AND inbound_id = ?
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String())
	if err != nil {
		return fmt.Errorf("clear edge properties %s: %w", key, err)
	}

	for _, name := range sortedNames(instance.Properties) {
		text, err := marshalValue(instance.Properties[name])
		if err != nil {
			return fmt.Errorf("edge %s property %q: %w", key, name, err)
		}
		_, err = tx.ExecContext(ctx, `
			INSERT INTO edge_properties (outbound_id, type, inbound_id, name, value) VALUES (?, ?, ?, ?, ?)
		`, key.OutboundID.String(), key.Type.String(), key.InboundID.String(), name, text)
		if err != nil {
			return fmt.Errorf("write edge %s property %q: %w", key, name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit write edge: %w", err)
	}
	return nil
}

// UpsertVertexProperty writes a single property on an existing vertex,
// inserting or replacing the stored value. Other properties and the vertex
// row are untouched. Returns ErrNotFound if the vertex does not exist.
func (s *Store) UpsertVertexProperty(ctx context.Context, id uuid.UUID, name string, value graph.Value) error {
	text, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("vertex %s property %q: %w", id, name, err)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `SELECT 1 FROM vertices WHERE id = ?`, id.String()).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: vertex %s", ErrNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("read vertex %s: %w", id, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO vertex_properties (vertex_id, name, value) VALUES (?, ?, ?)
		ON CONFLICT(vertex_id, name) DO UPDATE SET value = excluded.value
	`, id.String(), name, text)
	if err != nil {
		return fmt.Errorf("upsert vertex %s property %q: %w", id, name, err)
	}
	return nil
}

// UpsertEdgeProperty writes a single property on an existing edge,
// inserting or replacing the stored value. Returns ErrNotFound if the edge
// does not exist.
func (s *Store) UpsertEdgeProperty(ctx context.Context, key graph.EdgeKey, name string, value graph.Value) error {
	text, err := marshalValue(value)
	if err != nil {
		return fmt.Errorf("edge %s property %q: %w", key, name, err)
	}

	var exists int
	err = s.db.QueryRowContext(ctx, `
		SELECT 1 FROM edges WHERE outbound_id = ? AND type = ? AND inbound_id = ?
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String()).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: edge %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("read edge %s: %w", key, err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO edge_properties (outbound_id, type, inbound_id, name, value) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(outbound_id, type, inbound_id, name) DO UPDATE SET value = excluded.value
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String(), name, text)
	if err != nil {
		return fmt.Errorf("upsert edge %s property %q: %w", key, name, err)
	}
	return nil
}

// DeleteVertex removes a vertex, its properties, and every edge touching
// it (foreign keys cascade). Returns ErrNotFound if the vertex does not
// exist.
func (s *Store) DeleteVertex(ctx context.Context, id uuid.UUID) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM vertices WHERE id = ?`, id.String())
	if err != nil {
		return fmt.Errorf("delete vertex %s: %w", id, err)
	}
	return requireAffected(res, fmt.Sprintf("vertex %s", id))
}

// DeleteEdge removes an edge and its properties.
// Returns ErrNotFound if the edge does not exist.
func (s *Store) DeleteEdge(ctx context.Context, key graph.EdgeKey) error {
	res, err := s.db.ExecContext(ctx, `
		DELETE FROM edges WHERE outbound_id = ? AND type = ? AND inbound_id = ?
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String())
	if err != nil {
		return fmt.Errorf("delete edge %s: %w", key, err)
	}
	return requireAffected(res, fmt.Sprintf("edge %s", key))
}

func sortedNames(properties graph.Object) []string {
	names := make([]string, 0, len(properties))
	for name := range properties {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func requireAffected(res interface{ RowsAffected() (int64, error) }, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", what, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, what)
	}
	return nil
}
