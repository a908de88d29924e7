package svg

import (
	"encoding/xml"
	"io"
	"strings"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/render"
)

func TestRenderWellFormed(t *testing.T) {
	cmds := []render.Command{
		render.Curve{From: render.Point{X: 3}, Control: render.Point{X: 50, Y: 20}, To: render.Point{X: 97}, LineWidth: 0.5, Stroke: "#999999", LinkKey: "r1"},
		render.Line{From: render.Point{X: 97}, To: render.Point{X: 92, Y: 2}, LineWidth: 0.5, Stroke: "#999999"},
		render.Circle{Center: render.Point{}, Radius: 3, LineWidth: 1, Stroke: "#00008B", NodeID: "a"},
		render.Text{At: render.Point{Y: 10}, Content: "Tom & <Jerry>", Size: 12, Bold: true, Fill: "black"},
	}
	out := Render(cmds, WithBackground("white"), WithLinkTitles(map[string]string{"r1": "KNOWS"}))

	dec := xml.NewDecoder(strings.NewReader(string(out)))
	for {
		if _, err := dec.Token(); err != nil {
			if err == io.EOF {
				break
			}
			t.Fatalf("invalid XML: %v\n%s", err, out)
		}
	}

	s := string(out)
	for _, want := range []string{
		`data-node="a"`,
		`Q 50.00 20.00 97.00 0.00`,
		`<title>KNOWS</title>`,
		`font-weight="bold"`,
		`Tom &amp; &lt;Jerry&gt;`,
		`fill="white"`,
	} {
		if !strings.Contains(s, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestRenderEmpty(t *testing.T) {
	out := string(Render(nil))
	if !strings.HasPrefix(out, "<svg") || !strings.Contains(out, "</svg>") {
		t.Errorf("Render(nil) = %q", out)
	}
	if strings.Contains(out, "Inf") || strings.Contains(out, "NaN") {
		t.Errorf("non-finite view box: %q", out)
	}
}
