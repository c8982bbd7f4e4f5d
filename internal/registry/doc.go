// Package registry implements the type registry collaborator: it holds
// EntityType and RelationType descriptors (and the component definitions
// they compose) keyed by name, and loads definitions from YAML files.
//
// Definition files are validated against an embedded CUE schema before
// decoding, so structural errors surface with the constraint that failed
// rather than as a half-built descriptor. In particular, type names are
// constrained to the graph identifier alphabet at load time - which is
// what lets descriptor construction treat an unencodable name as a
// programmer error.
//
// The reactive layer does not validate instances against their declared
// types at runtime; that validation, where wanted, happens here or at
// instance-creation call sites.
package registry
