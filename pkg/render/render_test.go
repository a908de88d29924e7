package render

import (
	"math"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

const tol = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < tol }

func nearPoint(a, b Point) bool { return near(a.X, b.X) && near(a.Y, b.Y) }

func snapshot(nodes map[string]graph.Position, links ...graph.Link) graph.Snapshot {
	var ns []graph.Node
	for _, id := range []string{"a", "b", "c"} {
		if pos, ok := nodes[id]; ok {
			ns = append(ns, graph.Node{ID: id, DisplayName: "node " + id, Position: pos})
		}
	}
	return graph.NewSnapshot(ns, links)
}

func count[T Command](cmds []Command) int {
	n := 0
	for _, c := range cmds {
		if _, ok := c.(T); ok {
			n++
		}
	}
	return n
}

func TestRouteControlPoint(t *testing.T) {
	s := DefaultStyle()
	p, ok := Route(Point{0, 0}, Point{100, 0}, s)
	if !ok {
		t.Fatal("Route() reported coincident endpoints")
	}
	if !nearPoint(p.Start, Point{3, 0}) || !nearPoint(p.End, Point{97, 0}) {
		t.Errorf("endpoints = %v, %v", p.Start, p.End)
	}
	if !nearPoint(p.Control, Point{50, 20}) {
		t.Errorf("control = %v, want {50 20}", p.Control)
	}

	again, _ := Route(Point{0, 0}, Point{100, 0}, s)
	if again != p {
		t.Error("Route() is not deterministic")
	}

	reverse, _ := Route(Point{100, 0}, Point{0, 0}, s)
	if !nearPoint(reverse.Control, Point{50, -20}) {
		t.Errorf("reverse control = %v, want {50 -20}", reverse.Control)
	}
}

func TestRouteShortensByRadius(t *testing.T) {
	s := DefaultStyle()
	src, dst := Point{10, 10}, Point{40, 50}
	p, _ := Route(src, dst, s)
	if d := math.Hypot(p.Start.X-src.X, p.Start.Y-src.Y); !near(d, s.NodeRadius) {
		t.Errorf("start distance = %v", d)
	}
	if d := math.Hypot(p.End.X-dst.X, p.End.Y-dst.Y); !near(d, s.NodeRadius) {
		t.Errorf("end distance = %v", d)
	}
}

func TestRouteCoincident(t *testing.T) {
	if _, ok := Route(Point{5, 5}, Point{5, 5}, DefaultStyle()); ok {
		t.Error("Route() accepted coincident endpoints")
	}
}

func TestRouteTouchingMarkers(t *testing.T) {
	s := DefaultStyle()
	p, ok := Route(Point{0, 0}, Point{6, 0}, s)
	if !ok {
		t.Fatal("Route() rejected touching markers")
	}
	for _, v := range []float64{p.Control.X, p.Control.Y, p.ArrowLeft.X, p.ArrowRight.Y} {
		if math.IsNaN(v) {
			t.Fatalf("NaN in path %+v", p)
		}
	}
	if !nearPoint(p.Control, Point{3, 20}) {
		t.Errorf("control = %v, want {3 20}", p.Control)
	}
}

func TestArrowhead(t *testing.T) {
	s := DefaultStyle()
	p, _ := Route(Point{0, 0}, Point{100, 0}, s)

	for _, tip := range []Point{p.ArrowLeft, p.ArrowRight} {
		if d := math.Hypot(tip.X-p.End.X, tip.Y-p.End.Y); !near(d, s.ArrowLength) {
			t.Errorf("arrow segment length = %v, want %v", d, s.ArrowLength)
		}
	}

	tangent := math.Atan2(p.End.Y-p.Control.Y, p.End.X-p.Control.X)
	angleOf := func(tip Point) float64 {
		return math.Atan2(p.End.Y-tip.Y, p.End.X-tip.X) - tangent
	}
	l, r := angleOf(p.ArrowLeft), angleOf(p.ArrowRight)
	if !near(l, -s.ArrowAngle) || !near(r, s.ArrowAngle) {
		t.Errorf("arrow angles = %v, %v, want ±%v", l, r, s.ArrowAngle)
	}
}

func TestMidpoint(t *testing.T) {
	p, _ := Route(Point{0, 0}, Point{100, 0}, DefaultStyle())
	if !nearPoint(p.Midpoint(), Point{50, 10}) {
		t.Errorf("Midpoint() = %v, want {50 10}", p.Midpoint())
	}
	if !nearPoint(p.At(0), p.Start) || !nearPoint(p.At(1), p.End) {
		t.Error("At() endpoints do not match the path")
	}
}

func TestFrameNode(t *testing.T) {
	snap := graph.Normalize(graph.Export{Nodes: []graph.NodeRecord{{ID: "a", Properties: map[string]any{"name": "Alice"}}}})
	cmds := Frame(snap, Hover{}, 1, DefaultStyle())

	if len(cmds) != 2 {
		t.Fatalf("commands = %d, want 2", len(cmds))
	}
	c := cmds[0].(Circle)
	if c.Center != (Point{0, 0}) || c.Radius != 3 || c.Stroke != "#00008B" || c.LineWidth != 1 {
		t.Errorf("circle = %+v", c)
	}
	txt := cmds[1].(Text)
	if txt.Content != "Alice" || !txt.Bold || txt.At != (Point{0, 10}) || txt.Size != 12 {
		t.Errorf("name = %+v", txt)
	}
}

func TestFrameZoom(t *testing.T) {
	snap := snapshot(map[string]graph.Position{"a": {}, "b": {X: 50}}, graph.Link{SourceID: "a", TargetID: "b"})
	cmds := Frame(snap, Hover{}, 2, DefaultStyle())
	for _, c := range cmds {
		switch c := c.(type) {
		case Circle:
			if c.Radius != 3 || c.LineWidth != 0.5 {
				t.Errorf("circle at zoom 2 = %+v", c)
			}
		case Text:
			if c.Size != 6 {
				t.Errorf("font size at zoom 2 = %v", c.Size)
			}
		case Curve:
			if c.LineWidth != 0.25 {
				t.Errorf("curve width at zoom 2 = %v", c.LineWidth)
			}
		}
	}
}

func TestFrameInvalidZoom(t *testing.T) {
	snap := snapshot(map[string]graph.Position{"a": {}})
	for _, z := range []float64{0, -1} {
		c := Frame(snap, Hover{}, z, DefaultStyle())[0].(Circle)
		if c.LineWidth != 1 {
			t.Errorf("zoom %v: line width = %v", z, c.LineWidth)
		}
	}
}

func TestFrameHoverNode(t *testing.T) {
	snap := graph.NewSnapshot([]graph.Node{
		{ID: "a", DisplayName: "A", Properties: map[string]any{"desc": "first"}},
		{ID: "b", DisplayName: "B", Position: graph.Position{X: 30}},
	}, nil)

	cmds := Frame(snap, Hover{Node: "a"}, 1, DefaultStyle())
	if count[Text](cmds) != 3 {
		t.Fatalf("texts = %d, want 3", count[Text](cmds))
	}
	desc := cmds[2].(Text)
	if desc.Content != "first" || desc.Bold || desc.Fill != "gray" || desc.At != (Point{0, 25}) {
		t.Errorf("description = %+v", desc)
	}

	cmds = Frame(snap, Hover{Node: "b"}, 1, DefaultStyle())
	if got := cmds[len(cmds)-1].(Text).Content; got != "B" {
		t.Errorf("description fallback = %q, want display name", got)
	}
}

func TestFrameLink(t *testing.T) {
	snap := snapshot(map[string]graph.Position{"a": {}, "b": {X: 100}},
		graph.Link{ID: "r", SourceID: "a", TargetID: "b", Type: "KNOWS"})

	cmds := Frame(snap, Hover{}, 1, DefaultStyle())
	if count[Curve](cmds) != 1 || count[Line](cmds) != 2 {
		t.Fatalf("curves=%d lines=%d", count[Curve](cmds), count[Line](cmds))
	}
	if _, ok := cmds[0].(Curve); !ok {
		t.Error("links must be drawn before nodes")
	}

	cmds = Frame(snap, Hover{Link: "r"}, 1, DefaultStyle())
	var label *Text
	for _, c := range cmds {
		if txt, ok := c.(Text); ok && txt.Content == "KNOWS" {
			label = &txt
		}
	}
	if label == nil {
		t.Fatal("hovered link label missing")
	}
	if !nearPoint(label.At, Point{50, 5}) {
		t.Errorf("label at %v, want {50 5}", label.At)
	}
}

func TestFrameSkipsLinks(t *testing.T) {
	tests := []struct {
		name string
		snap graph.Snapshot
	}{
		{"unresolved target", snapshot(map[string]graph.Position{"a": {}}, graph.Link{SourceID: "a", TargetID: "zzz"})},
		{"unresolved source", snapshot(map[string]graph.Position{"a": {}}, graph.Link{SourceID: "zzz", TargetID: "a"})},
		{"coincident", snapshot(map[string]graph.Position{"a": {X: 7, Y: 7}, "b": {X: 7, Y: 7}}, graph.Link{SourceID: "a", TargetID: "b"})},
		{"self link", snapshot(map[string]graph.Position{"a": {}}, graph.Link{SourceID: "a", TargetID: "a"})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmds := Frame(tt.snap, Hover{}, 1, DefaultStyle())
			if count[Curve](cmds)+count[Line](cmds) != 0 {
				t.Errorf("link commands emitted: %+v", cmds)
			}
			if count[Circle](cmds) != len(tt.snap.Nodes) {
				t.Errorf("circles = %d, want %d", count[Circle](cmds), len(tt.snap.Nodes))
			}
		})
	}
}

func TestFrameEmpty(t *testing.T) {
	if cmds := Frame(graph.Snapshot{}, Hover{}, 1, DefaultStyle()); len(cmds) != 0 {
		t.Errorf("commands = %d", len(cmds))
	}
}

func TestHitNode(t *testing.T) {
	s := DefaultStyle()
	snap := snapshot(map[string]graph.Position{"a": {}, "b": {X: 2}})

	if id, ok := HitNode(snap, Point{2.5, 0}, 0, s); !ok || id != "b" {
		t.Errorf("overlapping hit = %q, %v; want last drawn", id, ok)
	}
	if _, ok := HitNode(snap, Point{20, 20}, 1, s); ok {
		t.Error("miss reported as hit")
	}
	if id, ok := HitNode(snap, Point{-5, 0}, 2, s); !ok || id != "a" {
		t.Errorf("tolerance hit = %q, %v", id, ok)
	}
}

func TestHitLink(t *testing.T) {
	s := DefaultStyle()
	snap := snapshot(map[string]graph.Position{"a": {}, "b": {X: 100}},
		graph.Link{ID: "ab", SourceID: "a", TargetID: "b"},
		graph.Link{ID: "ba", SourceID: "b", TargetID: "a"})

	if key, ok := HitLink(snap, Point{50, 10}, 1, s); !ok || key != "ab" {
		t.Errorf("HitLink(below) = %q, %v", key, ok)
	}
	if key, ok := HitLink(snap, Point{50, -10}, 1, s); !ok || key != "ba" {
		t.Errorf("HitLink(above) = %q, %v", key, ok)
	}
	if _, ok := HitLink(snap, Point{50, 60}, 1, s); ok {
		t.Error("far point reported as hit")
	}
}

func TestBounds(t *testing.T) {
	if !Bounds(nil).Empty() {
		t.Error("Bounds(nil) not empty")
	}
	r := Bounds([]Command{
		Circle{Center: Point{10, 10}, Radius: 3},
		Line{From: Point{-5, 0}, To: Point{0, 40}},
	})
	if r.Min != (Point{-5, 0}) || r.Max != (Point{13, 40}) {
		t.Errorf("Bounds() = %+v", r)
	}
	if r.Width() != 18 || r.Height() != 40 {
		t.Errorf("size = %vx%v", r.Width(), r.Height())
	}
}
