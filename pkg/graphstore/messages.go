package graphstore

import "github.com/matzehuels/graphdesk/pkg/graph"

// FetchedMsg reports the result of [Store.Fetch].
type FetchedMsg struct {
	Criteria graph.Criteria
	Snapshot graph.Snapshot
	Err      error
}

// NodeCreatedMsg reports the result of [Store.CreateNode].
type NodeCreatedMsg struct {
	Record graph.NodeRecord
	Err    error
}

// LinkCreatedMsg reports the result of [Store.CreateLink].
type LinkCreatedMsg struct {
	Record graph.RelationRecord
	Err    error
}

// PositionSavedMsg reports the result of [Store.UpdateNodePosition].
type PositionSavedMsg struct {
	ID   string
	X, Y float64
	Err  error
}

// LabelsMsg reports the node labels known to the backend.
type LabelsMsg struct {
	Labels []string
	Err    error
}

// TypesMsg reports the relationship types known to the backend.
type TypesMsg struct {
	Types []string
	Err   error
}
