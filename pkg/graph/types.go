package graph

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Defaults applied when the user supplies nothing.
const (
	DefaultLabel    = "Custom"
	DefaultLinkType = "RELATED_TO"
)

// Property keys the client reads from and writes to the properties bag.
const (
	PropName = "name"
	PropDesc = "desc"
	PropX    = "x"
	PropY    = "y"
)

// =============================================================================
// Node / Link
// =============================================================================

// Position is a point in graph (world) coordinates.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Node is a labeled entity of the graph.
type Node struct {
	ID          string         `json:"id"`
	DisplayName string         `json:"name"`
	Position    Position       `json:"position"`
	Labels      []string       `json:"labels"`
	Properties  map[string]any `json:"properties,omitempty"`
}

// Description returns the node's description property, falling back to the
// display name when the property is absent or blank.
func (n *Node) Description() string {
	if s, ok := n.Properties[PropDesc].(string); ok && strings.TrimSpace(s) != "" {
		return s
	}
	return n.DisplayName
}

// Link is a typed, directed relationship between two nodes.
type Link struct {
	ID         string         `json:"id,omitempty"`
	SourceID   string         `json:"source"`
	TargetID   string         `json:"target"`
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties,omitempty"`
}

// Key identifies a link within a snapshot. Links fetched from the backend
// carry an id; links without one are keyed by endpoints, type and position.
func (l *Link) Key() string {
	if l.ID != "" {
		return l.ID
	}
	return l.SourceID + "->" + l.TargetID + ":" + l.Type
}

// =============================================================================
// Wire Records
// =============================================================================

// Export is the response body of GET /utils/export.
type Export struct {
	Nodes     []NodeRecord     `json:"nodes"`
	Relations []RelationRecord `json:"relations"`
}

// NodeRecord is a node as returned by the Backend Gateway.
type NodeRecord struct {
	ID         string         `json:"id"`
	Labels     []string       `json:"labels,omitempty"`
	Properties map[string]any `json:"properties"`
}

// RelationRecord is a relation as returned by the Backend Gateway.
type RelationRecord struct {
	ID         string         `json:"id,omitempty"`
	Type       string         `json:"type"`
	StartNode  string         `json:"startNode"`
	EndNode    string         `json:"endNode"`
	Properties map[string]any `json:"properties,omitempty"`
}

// =============================================================================
// Input Helpers
// =============================================================================

// ParseLabels splits a comma-separated label input, trimming whitespace and
// dropping empty and repeated entries. An input with no labels yields
// [DefaultLabel].
func ParseLabels(input string) []string {
	var labels []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(input, ",") {
		label := strings.TrimSpace(part)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		labels = append(labels, label)
	}
	if len(labels) == 0 {
		return []string{DefaultLabel}
	}
	return labels
}

// NormalizeLabels applies [ParseLabels] semantics to an already split list.
func NormalizeLabels(labels []string) []string {
	return ParseLabels(strings.Join(labels, ","))
}

// NormalizeLinkType trims typ and substitutes [DefaultLinkType] when blank.
func NormalizeLinkType(typ string) string {
	if t := strings.TrimSpace(typ); t != "" {
		return t
	}
	return DefaultLinkType
}

// toFloat converts a decoded JSON value to a float64. Numbers, json.Number
// and numeric strings convert; everything else reports ok=false.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
