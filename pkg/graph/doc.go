// Package graph defines the node/link data model shared by every graphdesk
// component, and the normalization from Backend Gateway records to it.
//
// # Core Types
//
//   - [Node]: a labeled entity with a display name, a position and properties
//   - [Link]: a typed, directed relationship between two nodes
//   - [Snapshot]: the atomic, immutable result of one export fetch
//   - [Export], [NodeRecord], [RelationRecord]: the wire shapes of the export
//     endpoint, field names preserved exactly
//
// # Normalization
//
// [Normalize] maps a raw export into a [Snapshot]. Display name, position and
// description are read from the generic properties bag:
//
//	name  display name (defaults to the node id)
//	x, y  position (defaults to the origin)
//	desc  description shown while hovering
//
// Relations whose endpoints are not part of the same export are dropped, so a
// normalized snapshot never holds a dangling link. Duplicate node ids keep
// their first occurrence.
//
// # Defaults
//
//	graph.DefaultLabel     // "Custom"
//	graph.DefaultLinkType  // "RELATED_TO"
//
// # Concurrency
//
// Snapshots are values: they are never mutated after [Normalize] returns, and
// [Snapshot.WithNodePosition] returns a new snapshot. They are safe to share.
package graph
