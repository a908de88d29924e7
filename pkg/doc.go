// Package pkg provides the libraries behind graphdesk, a client for viewing
// and editing a property graph stored in a remote backend.
//
// # Overview
//
// The pkg directory is organized into four areas:
//
//  1. [graph] - Domain types (nodes, links, snapshots, filter criteria)
//  2. [gateway] - The HTTP client of the graph backend, plus an in-memory fake
//  3. Client state: [graphstore] (current snapshot and mutations), [filter]
//     (persisted criteria) and [interact] (menu, pending edge, hover, drag)
//  4. [render] - Draw commands and their SVG, DOT and terminal encoders
//
// Supporting packages: [kv] (client state storage), [config], [errors],
// [httputil] (retry), [observability] (hooks), [io] (graph files) and
// [buildinfo].
//
// # Architecture
//
// The data flow of the editor:
//
//	Backend (HTTP)
//	     ↓
//	[gateway] fetch/mutate
//	     ↓
//	[graphstore] snapshot (replaced on every fetch)
//	     ↓
//	[render] Frame(snapshot, hover, zoom) → draw commands
//	     ↓
//	[render/term] | [render/svg] | [render/dot]
//
// User input flows the other way: [interact] turns clicks and drags into
// requests, [graphstore] issues them, and a successful create triggers a
// fresh fetch. Filters applied through [filter] are persisted to [kv] and
// restored at the next start.
//
// # Quick Start
//
// Fetch and render a filtered graph:
//
//	client, _ := gateway.NewClient("http://localhost:8000")
//	raw, _ := client.Export(ctx, graph.Criteria{Label: "Person"})
//	snap := graph.Normalize(raw)
//	cmds := render.Frame(snap, render.Hover{}, 1, render.DefaultStyle())
//	svgBytes := svg.Render(cmds)
//
// # Concurrency
//
// Network calls run as bubbletea commands off the event loop; their results
// come back as messages and are applied by [graphstore.Store.Update] on the
// loop. There is no request sequencing: when several fetches overlap, the
// last response to arrive wins.
//
// [graph]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graph
// [gateway]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/gateway
// [graphstore]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graphstore
// [graphstore.Store.Update]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/graphstore#Store.Update
// [filter]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/filter
// [interact]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/interact
// [render]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/render
// [kv]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/kv
// [config]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/config
// [errors]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/errors
// [httputil]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/observability
// [io]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/io
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/buildinfo
//
// [render/term]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/render/term
// [render/svg]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/render/svg
// [render/dot]: https://pkg.go.dev/github.com/matzehuels/graphdesk/pkg/render/dot
package pkg
