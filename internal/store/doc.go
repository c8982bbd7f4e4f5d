// Package store provides SQLite-backed storage for the persisted directed
// property graph.
//
// The store holds:
//   - Vertices: typed nodes, keyed by uuid
//   - Vertex properties: named dynamic values per vertex
//   - Edges: directed typed edges, keyed by (outbound, type, inbound)
//   - Edge properties: named dynamic values per edge
//
// The write path consumes snapshot instances (graph.EntityInstance,
// graph.RelationInstance); the read path produces the hydration shapes
// (graph.VertexProperties, graph.EdgeProperties) the reactive layer wraps
// into live instances. Property values are stored as JSON text.
//
// Reads return properties ordered by name so hydration is reproducible.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: edges cannot dangle; deleting a vertex cascades
package store
