// Package asset defines the asset model shared by the variant engine and the
// store backends.
//
// An asset is identified by its store path and carries a Kind discriminant.
// The engine never interprets asset bytes; it works on Documents (the editable
// contents of composites, data assets and scenes) and on ImportSettings.
//
// # Documents
//
// A Document is a tree of Nodes. A Node whose Source is set is an instance of
// another composite (the instance-origin relation). Components hold
// Properties; a Property with a non-nil Ref is a reference slot.
//
// # Store
//
// Store is the capability boundary every host must provide: identity lookup,
// duplication, editable contents, instantiation, import settings and commit.
// Implementations live under core/store.
package asset
