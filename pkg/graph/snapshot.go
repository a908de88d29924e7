package graph

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Snapshot is the normalized result of one export fetch.
// Nodes and Links keep the order in which the backend returned them.
type Snapshot struct {
	Nodes []Node `json:"nodes"`
	Links []Link `json:"links"`

	index map[string]int
}

// Stats summarizes a snapshot.
type Stats struct {
	Nodes int
	Links int
}

// NewSnapshot builds a snapshot from already shaped nodes and links.
// Duplicate node ids keep their first occurrence. Links are kept as given;
// use [Snapshot.Resolve] to check their endpoints.
func NewSnapshot(nodes []Node, links []Link) Snapshot {
	s := Snapshot{
		Nodes: make([]Node, 0, len(nodes)),
		Links: slices.Clone(links),
		index: make(map[string]int, len(nodes)),
	}
	for _, n := range nodes {
		if _, dup := s.index[n.ID]; dup {
			continue
		}
		s.index[n.ID] = len(s.Nodes)
		s.Nodes = append(s.Nodes, n)
	}
	return s
}

// Normalize maps a raw export into a snapshot. Relations referencing a node
// missing from the export are dropped.
func Normalize(raw Export) Snapshot {
	nodes := make([]Node, 0, len(raw.Nodes))
	for _, rec := range raw.Nodes {
		if rec.ID == "" {
			continue
		}
		nodes = append(nodes, nodeFromRecord(rec))
	}
	s := NewSnapshot(nodes, nil)

	s.Links = make([]Link, 0, len(raw.Relations))
	for _, rec := range raw.Relations {
		l := linkFromRecord(rec)
		if _, _, ok := s.Resolve(l); !ok {
			continue
		}
		s.Links = append(s.Links, l)
	}
	return s
}

// Node looks up a node by id.
func (s Snapshot) Node(id string) (*Node, bool) {
	i, ok := s.lookup(id)
	if !ok {
		return nil, false
	}
	return &s.Nodes[i], true
}

// Resolve returns both endpoints of l, or ok=false when either is missing
// from this snapshot.
func (s Snapshot) Resolve(l Link) (source, target *Node, ok bool) {
	source, ok = s.Node(l.SourceID)
	if !ok {
		return nil, nil, false
	}
	target, ok = s.Node(l.TargetID)
	if !ok {
		return nil, nil, false
	}
	return source, target, true
}

// Stats returns node and link counts.
func (s Snapshot) Stats() Stats {
	return Stats{Nodes: len(s.Nodes), Links: len(s.Links)}
}

// IsEmpty reports whether the snapshot holds no nodes.
func (s Snapshot) IsEmpty() bool { return len(s.Nodes) == 0 }

// WithNodePosition returns a copy of s in which node id sits at pos.
// The receiver is left untouched. Unknown ids return s unchanged.
func (s Snapshot) WithNodePosition(id string, pos Position) Snapshot {
	i, ok := s.lookup(id)
	if !ok {
		return s
	}
	out := Snapshot{
		Nodes: slices.Clone(s.Nodes),
		Links: s.Links,
		index: s.index,
	}
	n := out.Nodes[i]
	n.Position = pos
	n.Properties = maps.Clone(n.Properties)
	if n.Properties == nil {
		n.Properties = make(map[string]any, 2)
	}
	n.Properties[PropX] = pos.X
	n.Properties[PropY] = pos.Y
	out.Nodes[i] = n
	return out
}

func (s Snapshot) lookup(id string) (int, bool) {
	if s.index == nil {
		// Built from a literal; fall back to a scan.
		for i := range s.Nodes {
			if s.Nodes[i].ID == id {
				return i, true
			}
		}
		return 0, false
	}
	i, ok := s.index[id]
	return i, ok
}

// =============================================================================
// Record Conversion
// =============================================================================

func nodeFromRecord(rec NodeRecord) Node {
	props := maps.Clone(rec.Properties)
	if props == nil {
		props = map[string]any{}
	}
	n := Node{
		ID:          rec.ID,
		DisplayName: rec.ID,
		Labels:      recordLabels(rec),
		Properties:  props,
	}
	if name, ok := props[PropName].(string); ok && strings.TrimSpace(name) != "" {
		n.DisplayName = name
	}
	n.Position.X = coordinate(props[PropX])
	n.Position.Y = coordinate(props[PropY])
	return n
}

func linkFromRecord(rec RelationRecord) Link {
	return Link{
		ID:         rec.ID,
		SourceID:   rec.StartNode,
		TargetID:   rec.EndNode,
		Type:       NormalizeLinkType(rec.Type),
		Properties: maps.Clone(rec.Properties),
	}
}

// recordLabels prefers the record's labels, then a "labels" list stored in
// the properties bag, then the default label.
func recordLabels(rec NodeRecord) []string {
	if len(rec.Labels) > 0 {
		return NormalizeLabels(rec.Labels)
	}
	if raw, ok := rec.Properties["labels"].([]any); ok {
		labels := make([]string, 0, len(raw))
		for _, v := range raw {
			if s, ok := v.(string); ok {
				labels = append(labels, s)
			}
		}
		return NormalizeLabels(labels)
	}
	return []string{DefaultLabel}
}

// coordinate converts a position property, defaulting to 0 for missing,
// non-numeric or non-finite values.
func coordinate(v any) float64 {
	f, ok := toFloat(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
