package render

import (
	"github.com/matzehuels/graphdesk/pkg/graph"
)

// Frame produces the draw commands for snap. Links are emitted before nodes
// so markers and names paint over curves. A non-positive zoom is treated
// as 1.
func Frame(snap graph.Snapshot, hover Hover, zoom float64, s Style) []Command {
	if zoom <= 0 {
		zoom = 1
	}
	cmds := make([]Command, 0, 4*len(snap.Links)+3*len(snap.Nodes))
	for _, l := range snap.Links {
		cmds = appendLink(cmds, snap, l, hover.Link == l.Key(), zoom, s)
	}
	for i := range snap.Nodes {
		n := &snap.Nodes[i]
		cmds = appendNode(cmds, n, hover.Node == n.ID, zoom, s)
	}
	return cmds
}

func appendNode(cmds []Command, n *graph.Node, hovered bool, zoom float64, s Style) []Command {
	c := Point{n.Position.X, n.Position.Y}
	cmds = append(cmds,
		Circle{
			Center:    c,
			Radius:    s.NodeRadius,
			LineWidth: s.NodeLineWidth / zoom,
			Stroke:    s.MarkerColor,
			NodeID:    n.ID,
		},
		Text{
			At:      Point{c.X, c.Y + s.NameOffset},
			Content: n.DisplayName,
			Size:    s.FontSize / zoom,
			Bold:    true,
			Fill:    s.NameColor,
		},
	)
	if hovered {
		cmds = append(cmds, Text{
			At:      Point{c.X, c.Y + s.DescOffset},
			Content: n.Description(),
			Size:    s.FontSize / zoom,
			Fill:    s.DescColor,
		})
	}
	return cmds
}

func appendLink(cmds []Command, snap graph.Snapshot, l graph.Link, hovered bool, zoom float64, s Style) []Command {
	src, dst, ok := snap.Resolve(l)
	if !ok {
		return cmds
	}
	p, ok := Route(Point{src.Position.X, src.Position.Y}, Point{dst.Position.X, dst.Position.Y}, s)
	if !ok {
		return cmds
	}
	width := s.LinkLineWidth / zoom
	cmds = append(cmds,
		Curve{From: p.Start, Control: p.Control, To: p.End, LineWidth: width, Stroke: s.LinkColor, LinkKey: l.Key()},
		Line{From: p.End, To: p.ArrowLeft, LineWidth: width, Stroke: s.LinkColor},
		Line{From: p.End, To: p.ArrowRight, LineWidth: width, Stroke: s.LinkColor},
	)
	if hovered {
		mid := p.Midpoint()
		cmds = append(cmds, Text{
			At:      Point{mid.X, mid.Y - s.LinkLabelOffset},
			Content: l.Type,
			Size:    s.FontSize / zoom,
			Fill:    s.NameColor,
		})
	}
	return cmds
}
