package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
)

// VertexProperties reads the hydration shape for a single vertex: its
// identity, description, and all stored properties, ordered by name.
// Returns ErrNotFound if the vertex does not exist.
func (s *Store) VertexProperties(ctx context.Context, id uuid.UUID) (graph.VertexProperties, error) {
	var typeName, description string
	err := s.db.QueryRowContext(ctx, `SELECT type, description FROM vertices WHERE id = ?`, id.String()).Scan(&typeName, &description)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.VertexProperties{}, fmt.Errorf("%w: vertex %s", ErrNotFound, id)
	}
	if err != nil {
		return graph.VertexProperties{}, fmt.Errorf("read vertex %s: %w", id, err)
	}

	t, err := graph.ParseIdentifier(typeName)
	if err != nil {
		return graph.VertexProperties{}, fmt.Errorf("stored vertex %s: %w", id, err)
	}

	props, err := s.readProps(ctx, `
		SELECT name, value FROM vertex_properties WHERE vertex_id = ? ORDER BY name
	`, id.String())
	if err != nil {
		return graph.VertexProperties{}, fmt.Errorf("read vertex %s properties: %w", id, err)
	}

	return graph.VertexProperties{
		Vertex:      graph.Vertex{ID: id, Type: t},
		Description: description,
		Props:       props,
	}, nil
}

// EdgeProperties reads the hydration shape for a single edge: its key,
// description, and all stored properties, ordered by name.
// Returns ErrNotFound if the edge does not exist.
func (s *Store) EdgeProperties(ctx context.Context, key graph.EdgeKey) (graph.EdgeProperties, error) {
	var description string
	err := s.db.QueryRowContext(ctx, `
		SELECT description FROM edges WHERE outbound_id = ? AND type = ? AND inbound_id = ?
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String()).Scan(&description)
	if errors.Is(err, sql.ErrNoRows) {
		return graph.EdgeProperties{}, fmt.Errorf("%w: edge %s", ErrNotFound, key)
	}
	if err != nil {
		return graph.EdgeProperties{}, fmt.Errorf("read edge %s: %w", key, err)
	}

	props, err := s.readProps(ctx, `
		SELECT name, value FROM edge_properties
		WHERE outbound_id = ? AND type = ? AND inbound_id = ?
		ORDER BY name
	`, key.OutboundID.String(), key.Type.String(), key.InboundID.String())
	if err != nil {
		return graph.EdgeProperties{}, fmt.Errorf("read edge %s properties: %w", key, err)
	}

	return graph.EdgeProperties{Key: key, Description: description, Props: props}, nil
}

// AllVertices reads the hydration shapes for every stored vertex, ordered
// by id for reproducible hydration.
func (s *Store) AllVertices(ctx context.Context) ([]graph.VertexProperties, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM vertices ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list vertices: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan vertex id: %w", err)
		}
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("stored vertex id %q: %w", raw, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list vertices: %w", err)
	}

	all := make([]graph.VertexProperties, 0, len(ids))
	for _, id := range ids {
		vp, err := s.VertexProperties(ctx, id)
		if err != nil {
			return nil, err
		}
		all = append(all, vp)
	}
	return all, nil
}

// AllEdges reads the hydration shapes for every stored edge, ordered by
// key for reproducible hydration.
func (s *Store) AllEdges(ctx context.Context) ([]graph.EdgeProperties, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT outbound_id, type, inbound_id FROM edges
		ORDER BY outbound_id, type, inbound_id
	`)
	if err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}
	defer rows.Close()

	var keys []graph.EdgeKey
	for rows.Next() {
		var rawOut, rawType, rawIn string
		if err := rows.Scan(&rawOut, &rawType, &rawIn); err != nil {
			return nil, fmt.Errorf("scan edge key: %w", err)
		}
		key, err := parseEdgeKey(rawOut, rawType, rawIn)
		if err != nil {
			return nil, err
		}
		keys = append(keys, key)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list edges: %w", err)
	}

	all := make([]graph.EdgeProperties, 0, len(keys))
	for _, key := range keys {
		ep, err := s.EdgeProperties(ctx, key)
		if err != nil {
			return nil, err
		}
		all = append(all, ep)
	}
	return all, nil
}

func (s *Store) readProps(ctx context.Context, query string, args ...any) ([]graph.NamedProperty, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var props []graph.NamedProperty
	for rows.Next() {
		var name, text string
		if err := rows.Scan(&name, &text); err != nil {
			return nil, err
		}
		value, err := unmarshalValue(text)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		props = append(props, graph.NamedProperty{Name: name, Value: value})
	}
	return props, rows.Err()
}

func parseEdgeKey(rawOut, rawType, rawIn string) (graph.EdgeKey, error) {
	outID, err := uuid.Parse(rawOut)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("stored outbound id %q: %w", rawOut, err)
	}
	inID, err := uuid.Parse(rawIn)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("stored inbound id %q: %w", rawIn, err)
	}
	t, err := graph.ParseIdentifier(rawType)
	if err != nil {
		return graph.EdgeKey{}, fmt.Errorf("stored edge type %q: %w", rawType, err)
	}
	return graph.EdgeKey{OutboundID: outID, Type: t, InboundID: inID}, nil
}
