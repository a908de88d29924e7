// Package io provides JSON import and export of whole graphs.
//
// # Overview
//
// Files use the export format of the Backend Gateway, so a file written by
// [WriteJSON] can seed the mock backend and a saved GET /utils/export
// response can be read back directly:
//
//	{
//	  "nodes": [
//	    {"id": "alice", "labels": ["Person"], "properties": {"name": "Alice", "x": -120, "y": -60}},
//	    {"id": "acme", "labels": ["Company"], "properties": {"name": "Acme Corp"}}
//	  ],
//	  "relations": [
//	    {"id": "r1", "type": "WORKS_AT", "startNode": "alice", "endNode": "acme"}
//	  ]
//	}
//
// # Simple Edge Lists
//
// [ReadJSON] also accepts a plain edge list, convenient for hand-written
// seed files:
//
//	{
//	  "nodes": [{"id": "app"}, {"id": "lib"}],
//	  "edges": [{"from": "app", "to": "lib", "type": "DEPENDS_ON"}]
//	}
//
// Nodes without a name property are named after their id. Nodes without
// labels get the default label, and edges without a type get the default
// relationship type.
//
// # Validation
//
// Both forms are checked on import: node ids must be present and unique, and
// every relation must reference existing nodes. Errors name the offending
// node or relation.
//
// # Export
//
// Use [ExportJSON] to write a graph to a file, or [WriteJSON] to write to any
// io.Writer:
//
//	err := io.ExportJSON(exp, "graph.json")
package io
