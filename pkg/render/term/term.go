// Package term rasterizes render commands onto a grid of terminal cells.
//
// Terminal cells are roughly twice as tall as they are wide, so a
// [Viewport] maps one world unit to Scale columns but Scale/[CellAspect]
// rows. Text keeps its glyphs one per cell regardless of font size.
package term

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/graphdesk/pkg/render"
)

// CellAspect is the height-to-width ratio of a terminal cell.
const CellAspect = 2.0

// maxTraceSteps caps sampling of curves that extend far off screen.
const maxTraceSteps = 4096

// Kind classifies what occupies a cell.
type Kind uint8

const (
	KindEmpty Kind = iota
	KindLink
	KindArrow
	KindNode
	KindName
	KindDesc
	KindLabel
)

// Cell is one character position.
type Cell struct {
	Rune rune
	Kind Kind
}

// Viewport maps world coordinates onto the grid.
type Viewport struct {
	Center render.Point // world point shown at the grid center
	Scale  float64      // columns per world unit
}

// Fit returns a viewport showing r inside a cols×rows grid.
func Fit(r render.Rect, cols, rows int) Viewport {
	if r.Empty() || cols <= 0 || rows <= 0 {
		return Viewport{Scale: 1}
	}
	sx := float64(cols) / math.Max(r.Width(), 1)
	sy := float64(rows) * CellAspect / math.Max(r.Height(), 1)
	return Viewport{Center: r.Center(), Scale: math.Min(sx, sy)}
}

// Grid is a rasterized frame.
type Grid struct {
	Cols, Rows int
	View       Viewport
	cells      []Cell
}

// NewGrid creates an empty grid.
func NewGrid(cols, rows int, view Viewport) *Grid {
	cols, rows = max(cols, 0), max(rows, 0)
	if view.Scale <= 0 {
		view.Scale = 1
	}
	return &Grid{Cols: cols, Rows: rows, View: view, cells: make([]Cell, cols*rows)}
}

// ToCell maps a world point to a column and row. The result may lie
// outside the grid.
func (g *Grid) ToCell(p render.Point) (col, row int) {
	x := (p.X-g.View.Center.X)*g.View.Scale + float64(g.Cols)/2
	y := (p.Y-g.View.Center.Y)*g.View.Scale/CellAspect + float64(g.Rows)/2
	return int(math.Floor(x)), int(math.Floor(y))
}

// ToWorld maps the center of a cell back to world coordinates.
func (g *Grid) ToWorld(col, row int) render.Point {
	return render.Point{
		X: (float64(col)+0.5-float64(g.Cols)/2)/g.View.Scale + g.View.Center.X,
		Y: (float64(row)+0.5-float64(g.Rows)/2)*CellAspect/g.View.Scale + g.View.Center.Y,
	}
}

// At returns the cell at col, row. Out of range positions are empty.
func (g *Grid) At(col, row int) Cell {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return Cell{}
	}
	return g.cells[row*g.Cols+col]
}

// set writes a cell unless a higher priority kind already occupies it.
func (g *Grid) set(col, row int, r rune, k Kind) {
	if col < 0 || row < 0 || col >= g.Cols || row >= g.Rows {
		return
	}
	i := row*g.Cols + col
	if g.cells[i].Kind > k {
		return
	}
	g.cells[i] = Cell{Rune: r, Kind: k}
}

// Rasterize draws cmds onto a new grid.
func Rasterize(cmds []render.Command, cols, rows int, view Viewport) *Grid {
	g := NewGrid(cols, rows, view)
	for _, c := range cmds {
		switch c := c.(type) {
		case render.Curve:
			g.trace(func(t float64) render.Point { return quad(c.From, c.Control, c.To, t) }, '·', KindLink)
		case render.Line:
			g.trace(func(t float64) render.Point { return lerp(c.From, c.To, t) }, '•', KindArrow)
		case render.Circle:
			col, row := g.ToCell(c.Center)
			g.set(col, row, '◯', KindNode)
		case render.Text:
			g.text(c)
		}
	}
	return g
}

func (g *Grid) trace(at func(float64) render.Point, r rune, k Kind) {
	c0, r0 := g.ToCell(at(0))
	c1, r1 := g.ToCell(at(1))
	steps := min(2*(abs(c1-c0)+abs(r1-r0)+2), maxTraceSteps)
	for i := 0; i <= steps; i++ {
		col, row := g.ToCell(at(float64(i) / float64(steps)))
		g.set(col, row, r, k)
	}
}

func (g *Grid) text(t render.Text) {
	col, row := g.ToCell(t.At)
	kind := KindLabel
	switch {
	case t.Bold:
		kind = KindName
	case t.Fill == render.DefaultStyle().DescColor:
		kind = KindDesc
	}
	runes := []rune(t.Content)
	start := col - len(runes)/2
	for i, r := range runes {
		g.set(start+i, row, r, kind)
	}
}

// Styles colors each cell kind.
type Styles map[Kind]lipgloss.Style

// DefaultStyles mirrors the colors of the default render style.
func DefaultStyles() Styles {
	return Styles{
		KindLink:  lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
		KindArrow: lipgloss.NewStyle().Foreground(lipgloss.Color("250")),
		KindNode:  lipgloss.NewStyle().Foreground(lipgloss.Color("#5F87FF")).Bold(true),
		KindName:  lipgloss.NewStyle().Bold(true),
		KindDesc:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		KindLabel: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
	}
}

// String renders the grid as plain text, one line per row.
func (g *Grid) String() string { return g.Render(nil) }

// Render renders the grid, styling runs of same-kind cells with styles.
func (g *Grid) Render(styles Styles) string {
	var b strings.Builder
	for row := range g.Rows {
		if row > 0 {
			b.WriteByte('\n')
		}
		var run []rune
		kind := KindEmpty
		flush := func() {
			if len(run) == 0 {
				return
			}
			if st, ok := styles[kind]; ok {
				b.WriteString(st.Render(string(run)))
			} else {
				b.WriteString(string(run))
			}
			run = run[:0]
		}
		for col := range g.Cols {
			c := g.At(col, row)
			if c.Kind != kind {
				flush()
				kind = c.Kind
			}
			if c.Rune == 0 {
				run = append(run, ' ')
			} else {
				run = append(run, c.Rune)
			}
		}
		flush()
	}
	return b.String()
}

func quad(a, c, b render.Point, t float64) render.Point {
	return lerp(lerp(a, c, t), lerp(c, b, t), t)
}

func lerp(a, b render.Point, t float64) render.Point {
	return render.Point{X: a.X + (b.X-a.X)*t, Y: a.Y + (b.Y-a.Y)*t}
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
