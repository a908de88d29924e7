package graph

import "strings"

// Criteria holds the optional substring filters of an export fetch.
// An empty field means "no restriction". JSON field names are those of the
// persisted client state blob.
type Criteria struct {
	Name  string `json:"nodeNameFilter"`
	Label string `json:"nodeLabelFilter"`
	Type  string `json:"edgeTypeFilter"`
}

// Trimmed returns c with surrounding whitespace removed from every field.
func (c Criteria) Trimmed() Criteria {
	return Criteria{
		Name:  strings.TrimSpace(c.Name),
		Label: strings.TrimSpace(c.Label),
		Type:  strings.TrimSpace(c.Type),
	}
}

// IsEmpty reports whether no filter is set.
func (c Criteria) IsEmpty() bool {
	return c.Trimmed() == Criteria{}
}

// Map returns the set filters keyed by their export query parameter names.
func (c Criteria) Map() map[string]string {
	c = c.Trimmed()
	m := make(map[string]string, 3)
	if c.Name != "" {
		m["name_filter"] = c.Name
	}
	if c.Label != "" {
		m["label_filter"] = c.Label
	}
	if c.Type != "" {
		m["type_filter"] = c.Type
	}
	return m
}
