// Package interact is the editor's interaction state machine: the node
// context menu, the pending edge composed through it, hover tracking and
// drag-to-reposition.
//
// Every transition is a method on the [State] value that returns the next
// state; nothing here performs I/O. Transitions that need the backend
// return a request value ([LinkRequest], [PositionUpdate], [NodeForm]) that
// the caller hands to the graph store.
//
// # Pending Edge
//
// A relationship is composed in three steps: right-click a node and choose
// "Set as source", right-click another and choose "Set as target", then
// submit. The menu closes after each choice. Closing the menu by clicking
// elsewhere leaves the pending edge untouched. Submitting with either
// endpoint missing fails validation; the pending edge is cleared only once
// the backend confirms the relation with [State.EdgeSubmitted].
package interact
