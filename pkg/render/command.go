package render

// Point is a position in world units.
type Point struct {
	X, Y float64
}

func (p Point) add(q Point) Point             { return Point{p.X + q.X, p.Y + q.Y} }
func (p Point) sub(q Point) Point             { return Point{p.X - q.X, p.Y - q.Y} }
func (p Point) scale(f float64) Point         { return Point{p.X * f, p.Y * f} }
func (p Point) lerp(q Point, t float64) Point { return p.add(q.sub(p).scale(t)) }

// Command is a single draw operation. The concrete types are [Circle],
// [Text], [Curve] and [Line].
type Command interface {
	isCommand()
}

// Circle is an outlined, unfilled circle.
type Circle struct {
	Center    Point
	Radius    float64
	LineWidth float64
	Stroke    string
	NodeID    string
}

// Text is a single line of text centered horizontally on At.
type Text struct {
	At      Point
	Content string
	Size    float64
	Bold    bool
	Fill    string
}

// Curve is a quadratic Bézier curve.
type Curve struct {
	From      Point
	Control   Point
	To        Point
	LineWidth float64
	Stroke    string
	LinkKey   string
}

// Line is a straight segment.
type Line struct {
	From      Point
	To        Point
	LineWidth float64
	Stroke    string
}

func (Circle) isCommand() {}
func (Text) isCommand()   {}
func (Curve) isCommand()  {}
func (Line) isCommand()   {}

// Hover identifies the hovered node and link. Empty fields mean nothing is
// hovered.
type Hover struct {
	Node string
	Link string
}
