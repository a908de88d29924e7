// Package svg writes render commands as a standalone SVG document.
package svg

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"math"

	"github.com/matzehuels/graphdesk/pkg/render"
)

const fontFamily = "Sans-Serif"

// Option configures SVG output.
type Option func(*renderer)

type renderer struct {
	padding    float64
	background string
	titles     map[string]string
}

// WithPadding sets the margin around the drawing, in world units.
func WithPadding(p float64) Option { return func(r *renderer) { r.padding = p } }

// WithBackground fills the canvas with color.
func WithBackground(color string) Option { return func(r *renderer) { r.background = color } }

// WithLinkTitles attaches a tooltip to each curve, keyed by link key.
func WithLinkTitles(titles map[string]string) Option {
	return func(r *renderer) { r.titles = titles }
}

// Render returns an SVG document drawing cmds. The view box is fitted to
// the commands' bounds.
func Render(cmds []render.Command, opts ...Option) []byte {
	r := renderer{padding: 20}
	for _, opt := range opts {
		opt(&r)
	}

	box := render.Bounds(cmds)
	if box.Empty() {
		box = render.Rect{}
	}
	box = box.Pad(r.padding)
	w, h := math.Max(box.Width(), 1), math.Max(box.Height(), 1)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="%.2f %.2f %.2f %.2f" width="%.0f" height="%.0f">`+"\n",
		box.Min.X, box.Min.Y, w, h, w, h)
	if r.background != "" {
		fmt.Fprintf(&buf, `  <rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" fill="%s"/>`+"\n",
			box.Min.X, box.Min.Y, w, h, escape(r.background))
	}
	for _, c := range cmds {
		r.write(&buf, c)
	}
	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r *renderer) write(buf *bytes.Buffer, c render.Command) {
	switch c := c.(type) {
	case render.Circle:
		fmt.Fprintf(buf, `  <circle class="node" data-node="%s" cx="%.2f" cy="%.2f" r="%.2f" fill="none" stroke="%s" stroke-width="%.3f"/>`+"\n",
			escape(c.NodeID), c.Center.X, c.Center.Y, c.Radius, escape(c.Stroke), c.LineWidth)
	case render.Curve:
		fmt.Fprintf(buf, `  <path class="link" data-link="%s" d="M %.2f %.2f Q %.2f %.2f %.2f %.2f" fill="none" stroke="%s" stroke-width="%.3f"`,
			escape(c.LinkKey), c.From.X, c.From.Y, c.Control.X, c.Control.Y, c.To.X, c.To.Y, escape(c.Stroke), c.LineWidth)
		if title, ok := r.titles[c.LinkKey]; ok {
			fmt.Fprintf(buf, "><title>%s</title></path>\n", escape(title))
		} else {
			buf.WriteString("/>\n")
		}
	case render.Line:
		fmt.Fprintf(buf, `  <line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="%.3f"/>`+"\n",
			c.From.X, c.From.Y, c.To.X, c.To.Y, escape(c.Stroke), c.LineWidth)
	case render.Text:
		weight := "normal"
		if c.Bold {
			weight = "bold"
		}
		fmt.Fprintf(buf, `  <text x="%.2f" y="%.2f" text-anchor="middle" font-family="%s" font-size="%.2f" font-weight="%s" fill="%s">%s</text>`+"\n",
			c.At.X, c.At.Y, fontFamily, c.Size, weight, escape(c.Fill), escape(c.Content))
	}
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
