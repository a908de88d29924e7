package render

import "math"

// Style holds the fixed visual parameters of a frame.
type Style struct {
	NodeRadius    float64 // marker radius, world units
	NodeLineWidth float64 // marker outline at zoom 1
	LinkLineWidth float64 // curve and arrowhead at zoom 1
	FontSize      float64 // at zoom 1

	NameOffset      float64 // name baseline below the node center
	DescOffset      float64 // description baseline below the node center
	LinkLabelOffset float64 // type label above the curve midpoint

	CurveOffset float64 // control point distance from the segment midpoint
	ArrowLength float64
	ArrowAngle  float64 // radians from the end tangent

	MarkerColor string
	NameColor   string
	DescColor   string
	LinkColor   string
}

// DefaultStyle returns the editor's standard look.
func DefaultStyle() Style {
	return Style{
		NodeRadius:      3,
		NodeLineWidth:   1,
		LinkLineWidth:   0.5,
		FontSize:        12,
		NameOffset:      10,
		DescOffset:      25,
		LinkLabelOffset: 5,
		CurveOffset:     20,
		ArrowLength:     5,
		ArrowAngle:      math.Pi / 6,
		MarkerColor:     "#00008B",
		NameColor:       "black",
		DescColor:       "gray",
		LinkColor:       "#999999",
	}
}
