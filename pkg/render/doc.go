// Package render turns a graph snapshot into an ordered list of draw
// commands.
//
// # Overview
//
// [Frame] is a pure function of the snapshot, the hover state and the zoom
// factor. It never touches a drawing surface; adapters execute the commands:
//
//   - [svg]: a standalone SVG document, used by the export and serve commands
//   - [term]: a character cell grid, used by the interactive editor
//   - [dot]: Graphviz DOT with pinned positions, rendered through go-graphviz
//
// # Coordinates
//
// Commands are in world units, the coordinate space of node positions.
// Marker radius, curve offset and arrowhead length are fixed world sizes.
// Font sizes and line widths are divided by the zoom factor so they keep a
// constant size on screen.
//
// # Links
//
// A link is drawn as a quadratic curve between the circumferences of its
// endpoint markers, bowed to one side of the straight segment so that links
// in opposite directions do not overlap. Links with an unresolved endpoint or
// coincident endpoints produce no commands.
//
//	cmds := render.Frame(snap, render.Hover{Node: "a"}, 1.5, render.DefaultStyle())
//	doc := svg.Render(cmds)
package render
