// Package reactive implements the live instance layer of the directed
// property graph.
//
// Entities (nodes) and relations (edges) are hydrated from persisted
// snapshots into reactive instances whose properties are independent
// reactive cells: each can be read, written, recomputed, and propagated to
// dependents on its own. Connectors and transformers subscribe to cells to
// build derived-property computation graphs; this package only provides
// the contract for attaching them, not their authoring.
//
// Scheduling is cooperative and caller-driven: an external driver invokes
// Tick at whatever cadence it chooses. No operation blocks or performs
// I/O, except Session hydration and commit, which talk to the store.
//
// Thread-safety model:
//   - Property mappings and component/behaviour sets are independently
//     safe for concurrent use; operations on different keys do not
//     interfere, and concurrent writes to the same property are
//     last-writer-wins
//   - No transactional atomicity across properties: converting a live
//     instance to a snapshot reads cells without a global lock and may mix
//     values from different logical instants
//   - Endpoint entities are shared across every relation referencing them;
//     relation→entity is the only strong reference direction
package reactive
