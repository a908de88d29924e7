// Package dot exports a graph snapshot as Graphviz DOT and renders it with
// the embedded Graphviz engine.
//
// Node positions are pinned (pos="x,y!") and laid out with neato, so
// Graphviz draws the graph exactly where the editor placed it. World y
// grows downwards while Graphviz y grows upwards; ToDOT flips it.
package dot

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Options configures DOT output.
type Options struct {
	// Detailed adds labels and description to each node label.
	// When false, only the display name is shown.
	Detailed bool

	// Scale multiplies world coordinates. Zero means 1.
	Scale float64
}

// ToDOT converts a snapshot to Graphviz DOT. Links with an unresolved
// endpoint are omitted.
func ToDOT(snap graph.Snapshot, opts Options) string {
	scale := opts.Scale
	if scale == 0 {
		scale = 1
	}

	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  layout=neato;\n")
	buf.WriteString("  inputscale=72;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, width=0.08, fixedsize=true, label=\"\", color=\"#00008B\", xlabel=\"\"];\n")
	buf.WriteString("  edge [color=\"#999999\", arrowsize=0.5, fontsize=9];\n")
	buf.WriteString("\n")

	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		attrs := []string{
			fmt.Sprintf("pos=\"%s,%s!\"", num(n.Position.X*scale), num(-n.Position.Y*scale)),
			fmt.Sprintf("xlabel=%q", fmtLabel(n, opts.Detailed)),
		}
		if desc := n.Description(); desc != n.DisplayName {
			attrs = append(attrs, fmt.Sprintf("tooltip=%q", desc))
		}
		fmt.Fprintf(&buf, "  %q [%s];\n", n.ID, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	for _, l := range snap.Links {
		if _, _, ok := snap.Resolve(l); !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %q -> %q [tooltip=%q];\n", l.SourceID, l.TargetID, l.Type)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(n *graph.Node, detailed bool) string {
	if !detailed {
		return n.DisplayName
	}
	parts := []string{n.DisplayName, strings.Join(n.Labels, ", ")}
	if desc := n.Description(); desc != n.DisplayName {
		parts = append(parts, desc)
	}
	return strings.Join(parts, "\n")
}

func num(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RenderSVG renders a DOT graph to SVG using Graphviz's neato engine.
func RenderSVG(dot string) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's pt-sized svg element with one sized
// in user units.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
