package store

import "errors"

// ErrNotFound is returned when a vertex or edge addressed by key does not
// exist in the store.
var ErrNotFound = errors.New("not found in store")

// ErrInvalidTypeName is returned when a snapshot's type name cannot be
// encoded as a graph identifier, so no storage key can be derived for it.
var ErrInvalidTypeName = errors.New("type name is not a valid graph identifier")
