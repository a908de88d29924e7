package render

import "math"

// glyphAspect approximates the advance width of a glyph relative to its
// font size.
const glyphAspect = 0.6

// Rect is an axis-aligned rectangle.
type Rect struct {
	Min, Max Point
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

// Empty reports whether r covers nothing.
func (r Rect) Empty() bool { return r.Max.X < r.Min.X || r.Max.Y < r.Min.Y }

// Center returns the midpoint of r.
func (r Rect) Center() Point { return r.Min.lerp(r.Max, 0.5) }

// Pad grows r by m on every side.
func (r Rect) Pad(m float64) Rect {
	return Rect{Point{r.Min.X - m, r.Min.Y - m}, Point{r.Max.X + m, r.Max.Y + m}}
}

func (r Rect) extend(p Point) Rect {
	return Rect{
		Min: Point{math.Min(r.Min.X, p.X), math.Min(r.Min.Y, p.Y)},
		Max: Point{math.Max(r.Max.X, p.X), math.Max(r.Max.Y, p.Y)},
	}
}

// Bounds returns the extent of cmds, approximating text by its glyph
// count. An empty command list yields an empty Rect.
func Bounds(cmds []Command) Rect {
	r := Rect{
		Min: Point{math.Inf(1), math.Inf(1)},
		Max: Point{math.Inf(-1), math.Inf(-1)},
	}
	for _, c := range cmds {
		switch c := c.(type) {
		case Circle:
			r = r.extend(Point{c.Center.X - c.Radius, c.Center.Y - c.Radius})
			r = r.extend(Point{c.Center.X + c.Radius, c.Center.Y + c.Radius})
		case Text:
			half := float64(len([]rune(c.Content))) * c.Size * glyphAspect / 2
			r = r.extend(Point{c.At.X - half, c.At.Y - c.Size})
			r = r.extend(Point{c.At.X + half, c.At.Y})
		case Curve:
			// The hull of the control polygon contains the curve.
			r = r.extend(c.From).extend(c.Control).extend(c.To)
		case Line:
			r = r.extend(c.From).extend(c.To)
		}
	}
	return r
}
