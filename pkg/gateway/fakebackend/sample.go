package fakebackend

import "github.com/matzehuels/graphdesk/pkg/graph"

// Sample returns a small graph used to seed the mock backend.
func Sample() graph.Export {
	node := func(id, name, desc string, x, y float64, labels ...string) graph.NodeRecord {
		return graph.NodeRecord{
			ID:     id,
			Labels: labels,
			Properties: map[string]any{
				graph.PropName: name,
				graph.PropDesc: desc,
				graph.PropX:    x,
				graph.PropY:    y,
			},
		}
	}
	rel := func(id, typ, from, to string) graph.RelationRecord {
		return graph.RelationRecord{ID: id, Type: typ, StartNode: from, EndNode: to, Properties: map[string]any{}}
	}
	return graph.Export{
		Nodes: []graph.NodeRecord{
			node("alice", "Alice", "Platform engineer", -120, -60, "Person"),
			node("bob", "Bob", "Data scientist", 120, -60, "Person"),
			node("acme", "Acme Corp", "Widget manufacturer", 0, 90, "Company"),
			node("graphs", "Graph Theory", "", 0, -180, "Topic"),
		},
		Relations: []graph.RelationRecord{
			rel("r1", "KNOWS", "alice", "bob"),
			rel("r2", "WORKS_AT", "alice", "acme"),
			rel("r3", "WORKS_AT", "bob", "acme"),
			rel("r4", "INTERESTED_IN", "bob", "graphs"),
		},
	}
}
