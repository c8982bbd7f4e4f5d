package graph

import "errors"

// ErrNoSuchProperty is returned when a setter addresses a property name the
// instance does not carry. Writing an undeclared property is a recoverable
// condition: the caller decides whether to add the property first or treat
// the miss as a defect.
var ErrNoSuchProperty = errors.New("no such property")
