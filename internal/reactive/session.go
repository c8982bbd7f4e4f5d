package reactive

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/voidcase/reagraph/internal/graph"
	"github.com/voidcase/reagraph/internal/store"
)

// Session owns the live instance graph: every hydrated entity and
// relation, keyed by identity. It is the external driver the reactive
// layer assumes - it hydrates instances from the persisted store, ticks
// them at the caller's cadence, and commits point-in-time snapshots back.
//
// Discarding an instance (Detach) releases the session's reference; no
// finalization side effects occur beyond releasing cell ownership.
//
// Thread-safety: the session's own maps are guarded by a mutex; instance
// mutation goes through the instances' own concurrent containers.
type Session struct {
	store *store.Store
	clock *Clock

	mu        sync.RWMutex
	entities  map[uuid.UUID]*Entity
	relations map[graph.EdgeKey]*Relation
}

// NewSession creates an empty session over the given store.
func NewSession(st *store.Store) *Session {
	return &Session{
		store:     st,
		clock:     NewClock(),
		entities:  make(map[uuid.UUID]*Entity),
		relations: make(map[graph.EdgeKey]*Relation),
	}
}

// Hydrate loads every stored vertex and edge into live instances.
// Relations share the session's entity instances as endpoints; an edge
// whose endpoint is missing from the store is an error (the store's
// foreign keys should make this impossible).
func (s *Session) Hydrate(ctx context.Context) error {
	vertices, err := s.store.AllVertices(ctx)
	if err != nil {
		return fmt.Errorf("hydrate vertices: %w", err)
	}
	edges, err := s.store.AllEdges(ctx)
	if err != nil {
		return fmt.Errorf("hydrate edges: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, vp := range vertices {
		entity := NewEntityFromProperties(vp)
		s.entities[entity.ID] = entity
	}
	for _, ep := range edges {
		outbound, ok := s.entities[ep.Key.OutboundID]
		if !ok {
			return fmt.Errorf("hydrate edge %s: outbound entity not loaded", ep.Key)
		}
		inbound, ok := s.entities[ep.Key.InboundID]
		if !ok {
			return fmt.Errorf("hydrate edge %s: inbound entity not loaded", ep.Key)
		}
		s.relations[ep.Key] = NewRelationFromProperties(outbound, inbound, ep)
	}

	slog.Info("session hydrated", "entities", len(s.entities), "relations", len(s.relations))
	return nil
}

// AddEntity registers a live entity with the session.
// First-writer-wins: an entity already registered under the id stays.
// Returns the resident instance.
func (s *Session) AddEntity(entity *Entity) *Entity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if resident, ok := s.entities[entity.ID]; ok {
		return resident
	}
	s.entities[entity.ID] = entity
	return entity
}

// AddRelation registers a live relation with the session, keyed by its
// derived edge key. Fails when no key is derivable from the relation's
// current type name. First-writer-wins like AddEntity.
func (s *Session) AddRelation(relation *Relation) (*Relation, error) {
	key, ok := relation.Key()
	if !ok {
		return nil, fmt.Errorf("add relation: %w: %q", graph.ErrInvalidIdentifier, relation.TypeName)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if resident, ok := s.relations[key]; ok {
		return resident, nil
	}
	s.relations[key] = relation
	return relation, nil
}

// Entity returns the live entity with the given id.
func (s *Session) Entity(id uuid.UUID) (*Entity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.entities[id]
	return e, ok
}

// Relation returns the live relation with the given key.
func (s *Session) Relation(key graph.EdgeKey) (*Relation, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.relations[key]
	return r, ok
}

// Entities returns every live entity, in no particular order.
func (s *Session) Entities() []*Entity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*Entity, 0, len(s.entities))
	for _, e := range s.entities {
		all = append(all, e)
	}
	return all
}

// Relations returns every live relation, in no particular order.
func (s *Session) Relations() []*Relation {
	s.mu.RLock()
	defer s.mu.RUnlock()
	all := make([]*Relation, 0, len(s.relations))
	for _, r := range s.relations {
		all = append(all, r)
	}
	return all
}

// Detach releases the session's reference to the entity with the given
// id. Relations still holding the entity keep it alive; detaching an
// unknown id is a no-op.
func (s *Session) Detach(id uuid.UUID) {
	s.mu.Lock()
	delete(s.entities, id)
	s.mu.Unlock()
}

// DetachRelation releases the session's reference to the relation with
// the given key. Detaching an unknown key is a no-op.
func (s *Session) DetachRelation(key graph.EdgeKey) {
	s.mu.Lock()
	delete(s.relations, key)
	s.mu.Unlock()
}

// Tick runs one graph tick: every live instance's cells re-evaluate.
// Ordering across instances and across properties within an instance is
// unspecified. Returns the tick's logical sequence number.
func (s *Session) Tick() int64 {
	seq := s.clock.Next()
	for _, entity := range s.Entities() {
		entity.Tick()
	}
	for _, relation := range s.Relations() {
		relation.Tick()
	}
	slog.Debug("graph tick", "seq", seq)
	return seq
}

// Ticks returns the number of ticks run so far.
func (s *Session) Ticks() int64 {
	return s.clock.Current()
}

// Commit writes a point-in-time snapshot of every live instance back to
// the store: entities first, then relations, so edge foreign keys hold.
// Instances whose type name yields no storable key are skipped with a
// warning; a temporarily invalid type name is routine, not fatal.
func (s *Session) Commit(ctx context.Context) error {
	for _, entity := range s.Entities() {
		if _, ok := entity.Key(); !ok {
			slog.Warn("skipping entity with no derivable key", "id", entity.ID, "type_name", entity.TypeName)
			continue
		}
		if err := s.store.WriteVertex(ctx, entity.Snapshot()); err != nil {
			return fmt.Errorf("commit entity %s: %w", entity.ID, err)
		}
	}
	for _, relation := range s.Relations() {
		key, ok := relation.Key()
		if !ok {
			slog.Warn("skipping relation with no derivable key", "type_name", relation.TypeName)
			continue
		}
		if err := s.store.WriteEdge(ctx, relation.Snapshot()); err != nil {
			return fmt.Errorf("commit relation %s: %w", key, err)
		}
	}
	return nil
}
