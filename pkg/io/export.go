package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// WriteJSON encodes exp in export format and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(exp graph.Export, w io.Writer) error {
	if exp.Nodes == nil {
		exp.Nodes = []graph.NodeRecord{}
	}
	if exp.Relations == nil {
		exp.Relations = []graph.RelationRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(exp); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes exp to a JSON file at path.
// This is a convenience wrapper around [WriteJSON] for file-based output.
func ExportJSON(exp graph.Export, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteJSON(exp, f)
}
