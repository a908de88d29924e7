package interact

import (
	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Endpoint is a node chosen as one end of the pending edge.
type Endpoint struct {
	ID   string
	Name string
}

// IsSet reports whether a node has been chosen.
func (e Endpoint) IsSet() bool { return e.ID != "" }

// PendingEdge is the relationship being composed.
type PendingEdge struct {
	Source Endpoint
	Target Endpoint
	Type   string
}

// Menu is an open node context menu anchored at a screen position.
type Menu struct {
	NodeID   string
	NodeName string
	X, Y     float64
}

// Hover holds the hovered node id and link key; empty means none.
// It converts directly to render.Hover.
type Hover struct {
	Node string
	Link string
}

// Drag tracks a node being dragged.
type Drag struct {
	NodeID string
	Origin graph.Position
	At     graph.Position
}

// State is the complete interaction state. The zero value has no menu, no
// pending edge, no hover and no drag.
type State struct {
	Menu    *Menu
	Pending PendingEdge
	Hover   Hover
	Drag    *Drag
}

// LinkRequest is a validated relationship to create.
type LinkRequest struct {
	SourceID string
	TargetID string
	Type     string
}

// PositionUpdate is a node position to persist.
type PositionUpdate struct {
	NodeID string
	X, Y   float64
}

// NodeForm is validated node form input.
type NodeForm struct {
	Name        string
	Labels      string
	Description string
}

// =============================================================================
// Context Menu
// =============================================================================

// RightClick opens the context menu for node at x, y, replacing any menu
// already open.
func (s State) RightClick(node graph.Node, x, y float64) State {
	s.Menu = &Menu{NodeID: node.ID, NodeName: node.DisplayName, X: x, Y: y}
	return s
}

// ClickOutside closes the menu. The pending edge is kept.
func (s State) ClickOutside() State {
	s.Menu = nil
	return s
}

// SetSource makes the menu's node the pending edge source and closes the
// menu. Without an open menu the state is unchanged.
func (s State) SetSource() State {
	if s.Menu == nil {
		return s
	}
	s.Pending.Source = Endpoint{ID: s.Menu.NodeID, Name: s.Menu.NodeName}
	s.Menu = nil
	return s
}

// SetTarget makes the menu's node the pending edge target and closes the
// menu. Without an open menu the state is unchanged.
func (s State) SetTarget() State {
	if s.Menu == nil {
		return s
	}
	s.Pending.Target = Endpoint{ID: s.Menu.NodeID, Name: s.Menu.NodeName}
	s.Menu = nil
	return s
}

// =============================================================================
// Pending Edge
// =============================================================================

// SetEdgeType sets the relationship type of the pending edge.
func (s State) SetEdgeType(typ string) State {
	s.Pending.Type = typ
	return s
}

// ClearPending discards the pending edge and its type.
func (s State) ClearPending() State {
	s.Pending = PendingEdge{}
	return s
}

// SubmitEdge validates the pending edge and returns the request to send.
// The state is not changed; call [State.EdgeSubmitted] once the backend
// accepts it.
func (s State) SubmitEdge() (LinkRequest, error) {
	if err := errors.ValidateEndpoints(s.Pending.Source.ID, s.Pending.Target.ID); err != nil {
		return LinkRequest{}, err
	}
	if err := errors.ValidateRelationshipType(s.Pending.Type); err != nil {
		return LinkRequest{}, err
	}
	return LinkRequest{
		SourceID: s.Pending.Source.ID,
		TargetID: s.Pending.Target.ID,
		Type:     graph.NormalizeLinkType(s.Pending.Type),
	}, nil
}

// EdgeSubmitted clears the pending edge after a successful create.
func (s State) EdgeSubmitted() State {
	return s.ClearPending()
}

// =============================================================================
// Hover
// =============================================================================

// HoverNode sets the hovered node; "" clears it.
func (s State) HoverNode(id string) State {
	s.Hover.Node = id
	return s
}

// HoverLink sets the hovered link; "" clears it.
func (s State) HoverLink(key string) State {
	s.Hover.Link = key
	return s
}

// =============================================================================
// Drag
// =============================================================================

// DragStart begins dragging the node with id from pos.
func (s State) DragStart(id string, pos graph.Position) State {
	s.Drag = &Drag{NodeID: id, Origin: pos, At: pos}
	return s
}

// DragMove moves the dragged node to pos. It reports false when no drag is
// in progress.
func (s State) DragMove(pos graph.Position) (State, bool) {
	if s.Drag == nil {
		return s, false
	}
	d := *s.Drag
	d.At = pos
	s.Drag = &d
	return s, true
}

// DragEnd finishes dragging node id at x, y and returns the position to
// persist. The caller keeps the node at that position locally whether or
// not the update succeeds.
func (s State) DragEnd(id string, x, y float64) (State, PositionUpdate) {
	s.Drag = nil
	return s, PositionUpdate{NodeID: id, X: x, Y: y}
}

// Dragging reports whether a drag is in progress.
func (s State) Dragging() bool { return s.Drag != nil }

// =============================================================================
// Node Form
// =============================================================================

// ValidateNodeForm checks the node form before any request is made. Only
// the name is required; labels and description pass through unchanged.
func ValidateNodeForm(name, labels, description string) (NodeForm, error) {
	if err := errors.ValidateNodeName(name); err != nil {
		return NodeForm{}, err
	}
	return NodeForm{Name: name, Labels: labels, Description: description}, nil
}
