package dot

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

func sample() graph.Snapshot {
	return graph.Normalize(graph.Export{
		Nodes: []graph.NodeRecord{
			{ID: "a", Labels: []string{"Person"}, Properties: map[string]any{"name": "Alice", "x": 10.5, "y": 20, "desc": "engineer"}},
			{ID: "b", Properties: map[string]any{"name": `Bob "B"`}},
		},
		Relations: []graph.RelationRecord{
			{ID: "r", Type: "KNOWS", StartNode: "a", EndNode: "b"},
		},
	})
}

func TestToDOT(t *testing.T) {
	out := ToDOT(sample(), Options{})
	for _, want := range []string{
		"digraph G {",
		"layout=neato;",
		`"a" [pos="10.5,-20!", xlabel="Alice", tooltip="engineer"];`,
		`"b" [pos="0,0!", xlabel="Bob \"B\""];`,
		`"a" -> "b" [tooltip="KNOWS"];`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("ToDOT() missing %q:\n%s", want, out)
		}
	}
}

func TestToDOTDetailedAndScaled(t *testing.T) {
	out := ToDOT(sample(), Options{Detailed: true, Scale: 2})
	if !strings.Contains(out, `pos="21,-40!"`) {
		t.Errorf("scaled position missing:\n%s", out)
	}
	if !strings.Contains(out, `xlabel="Alice\nPerson\nengineer"`) {
		t.Errorf("detailed label missing:\n%s", out)
	}
}

func TestToDOTSkipsUnresolved(t *testing.T) {
	snap := graph.NewSnapshot([]graph.Node{{ID: "a", DisplayName: "A"}},
		[]graph.Link{{SourceID: "a", TargetID: "ghost", Type: "X"}})
	if out := ToDOT(snap, Options{}); strings.Contains(out, "ghost") {
		t.Errorf("unresolved link emitted:\n%s", out)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="100pt" height="50pt" viewBox="0.00 0.00 100.00 50.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	out := string(normalizeViewBox(in))
	if !strings.Contains(out, `width="100" height="50"`) {
		t.Errorf("normalizeViewBox() = %s", out)
	}
	if got := normalizeViewBox([]byte("<svg/>")); string(got) != "<svg/>" {
		t.Errorf("no viewBox: %s", got)
	}
}
