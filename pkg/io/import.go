package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphdesk/pkg/errors"
	"github.com/matzehuels/graphdesk/pkg/graph"
)

// file is the union of both accepted layouts.
type file struct {
	Nodes     []graph.NodeRecord     `json:"nodes"`
	Relations []graph.RelationRecord `json:"relations"`
	Edges     []edge                 `json:"edges"`
}

type edge struct {
	From string `json:"from"`
	To   string `json:"to"`
	Type string `json:"type,omitempty"`
}

// ReadJSON decodes a graph from r.
//
// The input must be a JSON object with a "nodes" array and either a
// "relations" array (export format) or an "edges" array (edge list).
// Missing names, labels and types are filled in with defaults. Relations
// without an id are numbered in file order.
//
// ReadJSON returns an INVALID_FORMAT error for malformed JSON and an
// INVALID_INPUT error for duplicate or missing node ids and dangling
// relations.
func ReadJSON(r io.Reader) (graph.Export, error) {
	var data file
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return graph.Export{}, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode graph")
	}
	if data.Nodes == nil {
		return graph.Export{}, errors.New(errors.ErrCodeInvalidFormat, "missing nodes array")
	}
	if len(data.Relations) > 0 && len(data.Edges) > 0 {
		return graph.Export{}, errors.New(errors.ErrCodeInvalidFormat, "use either relations or edges, not both")
	}

	out := graph.Export{Nodes: make([]graph.NodeRecord, 0, len(data.Nodes))}
	seen := make(map[string]bool, len(data.Nodes))
	for i, n := range data.Nodes {
		if n.ID == "" {
			return graph.Export{}, errors.New(errors.ErrCodeInvalidInput, "node %d: missing id", i)
		}
		if seen[n.ID] {
			return graph.Export{}, errors.New(errors.ErrCodeInvalidInput, "node %s: duplicate id", n.ID)
		}
		seen[n.ID] = true
		out.Nodes = append(out.Nodes, withDefaults(n))
	}

	rels := data.Relations
	for _, e := range data.Edges {
		rels = append(rels, graph.RelationRecord{Type: e.Type, StartNode: e.From, EndNode: e.To})
	}
	out.Relations = make([]graph.RelationRecord, 0, len(rels))
	for i, rel := range rels {
		if !seen[rel.StartNode] || !seen[rel.EndNode] {
			return graph.Export{}, errors.New(errors.ErrCodeInvalidInput, "relation %s->%s: unknown node", rel.StartNode, rel.EndNode)
		}
		if rel.ID == "" {
			rel.ID = fmt.Sprintf("r%d", i+1)
		}
		rel.Type = graph.NormalizeLinkType(rel.Type)
		out.Relations = append(out.Relations, rel)
	}
	return out, nil
}

func withDefaults(n graph.NodeRecord) graph.NodeRecord {
	props := make(map[string]any, len(n.Properties)+1)
	for k, v := range n.Properties {
		props[k] = v
	}
	if _, ok := props[graph.PropName]; !ok {
		props[graph.PropName] = n.ID
	}
	n.Properties = props
	n.Labels = graph.NormalizeLabels(n.Labels)
	return n
}

// ImportJSON reads a JSON file at path and returns the decoded graph.
// It returns the same validation errors as [ReadJSON], wrapped with the
// file path.
func ImportJSON(path string) (graph.Export, error) {
	f, err := os.Open(path)
	if err != nil {
		return graph.Export{}, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
	}
	defer f.Close()
	exp, err := ReadJSON(f)
	if err != nil {
		return graph.Export{}, errors.Wrap(errors.GetCode(err), err, "%s", path)
	}
	return exp, nil
}
