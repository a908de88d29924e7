package render

import "math"

// epsilon is the distance below which two points are treated as coincident.
const epsilon = 1e-9

// LinkPath is the resolved geometry of one link.
type LinkPath struct {
	Start   Point // on the source marker's circumference
	Control Point
	End     Point // on the target marker's circumference

	// Arrowhead segment endpoints; both segments start at End.
	ArrowLeft  Point
	ArrowRight Point
}

// At evaluates the curve at t in [0, 1].
func (p LinkPath) At(t float64) Point {
	a := p.Start.lerp(p.Control, t)
	b := p.Control.lerp(p.End, t)
	return a.lerp(b, t)
}

// Midpoint is the curve point at t = 0.5.
func (p LinkPath) Midpoint() Point { return p.At(0.5) }

// Route computes the path of a link from src to dst (node centers). It
// reports false when the centers coincide.
func Route(src, dst Point, s Style) (LinkPath, bool) {
	d := dst.sub(src)
	dist := math.Hypot(d.X, d.Y)
	if dist < epsilon {
		return LinkPath{}, false
	}
	dir := d.scale(1 / dist)

	var p LinkPath
	p.Start = src.add(dir.scale(s.NodeRadius))
	p.End = dst.sub(dir.scale(s.NodeRadius))

	// Perpendicular of the shortened segment. When the markers touch the
	// shortened segment has no length; use the center direction instead.
	seg := p.End.sub(p.Start)
	segLen := math.Hypot(seg.X, seg.Y)
	u := dir
	if segLen >= epsilon {
		u = seg.scale(1 / segLen)
	}
	perp := Point{-u.Y, u.X}
	p.Control = p.Start.lerp(p.End, 0.5).add(perp.scale(s.CurveOffset))

	tangent := math.Atan2(p.End.Y-p.Control.Y, p.End.X-p.Control.X)
	p.ArrowLeft = arrowTip(p.End, tangent-s.ArrowAngle, s.ArrowLength)
	p.ArrowRight = arrowTip(p.End, tangent+s.ArrowAngle, s.ArrowLength)
	return p, true
}

func arrowTip(end Point, angle, length float64) Point {
	return Point{end.X - length*math.Cos(angle), end.Y - length*math.Sin(angle)}
}

// distToSegment is the distance from p to the segment ab.
func distToSegment(p, a, b Point) float64 {
	ab := b.sub(a)
	l2 := ab.X*ab.X + ab.Y*ab.Y
	if l2 < epsilon {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	t := ((p.X-a.X)*ab.X + (p.Y-a.Y)*ab.Y) / l2
	t = max(0, min(1, t))
	q := a.lerp(b, t)
	return math.Hypot(p.X-q.X, p.Y-q.Y)
}
