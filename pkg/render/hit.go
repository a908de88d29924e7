package render

import (
	"math"

	"github.com/matzehuels/graphdesk/pkg/graph"
)

// curveSamples is the number of segments a curve is split into for hit
// testing.
const curveSamples = 16

// HitNode returns the id of the node whose marker lies within tolerance of
// p. When markers overlap, the last drawn one wins.
func HitNode(snap graph.Snapshot, p Point, tolerance float64, s Style) (string, bool) {
	for i := len(snap.Nodes) - 1; i >= 0; i-- {
		n := &snap.Nodes[i]
		if math.Hypot(p.X-n.Position.X, p.Y-n.Position.Y) <= s.NodeRadius+tolerance {
			return n.ID, true
		}
	}
	return "", false
}

// HitLink returns the key of the link whose curve passes closest to p, if
// that distance is within tolerance.
func HitLink(snap graph.Snapshot, p Point, tolerance float64, s Style) (string, bool) {
	best, bestDist := "", math.Inf(1)
	for _, l := range snap.Links {
		src, dst, ok := snap.Resolve(l)
		if !ok {
			continue
		}
		path, ok := Route(Point{src.Position.X, src.Position.Y}, Point{dst.Position.X, dst.Position.Y}, s)
		if !ok {
			continue
		}
		if d := distToPath(p, path); d < bestDist {
			best, bestDist = l.Key(), d
		}
	}
	if bestDist <= tolerance {
		return best, true
	}
	return "", false
}

func distToPath(p Point, path LinkPath) float64 {
	d := math.Inf(1)
	prev := path.Start
	for i := 1; i <= curveSamples; i++ {
		next := path.At(float64(i) / curveSamples)
		d = min(d, distToSegment(p, prev, next))
		prev = next
	}
	return d
}
