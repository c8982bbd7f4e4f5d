// Package graph provides the foundational types for the reactive directed
// property graph: the dynamic value model, graph identifiers, immutable
// entity/relation type descriptors, and the serializable snapshot instances
// used for storage and transport.
//
// This package contains type definitions and pure functions only. All other
// internal packages import graph; graph imports nothing internal. This
// ensures it remains the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - Type descriptors are immutable after construction; their derived
//     identifier token is always in sync with the name
//   - Snapshot instances are plain values with no reactive machinery
//   - All JSON tags use snake_case
//   - Derived keys are advisory: key derivation failure is an absent
//     result, never an error
package graph
