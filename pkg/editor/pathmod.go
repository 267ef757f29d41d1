package editor

import (
	"fmt"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// ArcSelection describes one of the two arcs between two ring vertices
type ArcSelection struct {
	Indices []int   // Vertex indices along the arc, both anchors included
	Start   int     // First anchor; the arc runs forward from here
	End     int     // Second anchor
	Length  float64 // Cumulative edge length of the arc
}

// forwardArc collects the vertex indices from start to end walking the
// ring in increasing index order with wraparound, both anchors included
func forwardArc(n, start, end int) []int {
	indices := []int{start}
	for i := (start + 1) % n; ; i = (i + 1) % n {
		indices = append(indices, i)
		if i == end {
			break
		}
	}
	return indices
}

func arcLength(ring []geometry.Point, indices []int) float64 {
	path := make([]geometry.Point, len(indices))
	for i, idx := range indices {
		path[i] = ring[idx]
	}
	return geometry.PathLength(path)
}

// FindOptimalPath returns the shorter of the two arcs between startIndex
// and endIndex, measured by cumulative edge length. The returned Start
// and End are oriented so the shorter arc runs forward from Start to End,
// which is the arc ModifyPolygonPath will replace. Ties keep the
// startIndex-to-endIndex orientation.
func FindOptimalPath(poly segmentation.Polygon, startIndex, endIndex int) ArcSelection {
	n := len(poly.Points)

	forward := forwardArc(n, startIndex, endIndex)
	backward := forwardArc(n, endIndex, startIndex)

	forwardLen := arcLength(poly.Points, forward)
	backwardLen := arcLength(poly.Points, backward)

	if backwardLen < forwardLen {
		return ArcSelection{Indices: backward, Start: endIndex, End: startIndex, Length: backwardLen}
	}
	return ArcSelection{Indices: forward, Start: startIndex, End: endIndex, Length: forwardLen}
}

// ModifyPolygonPath replaces the sub-arc of the ring between startIndex
// and endIndex with newPoints. Of the two possible arcs around the ring
// the shorter one (by cumulative edge length) is replaced, which keeps
// the edit visually local instead of ballooning around the long way. The
// anchor vertices stay; newPoints are spliced between them in
// start-to-end order. Rejected on equal indices, a missing polygon, or a
// result that self-intersects or drops below 3 points.
func (e *Engine) ModifyPolygonPath(polygonID string, startIndex, endIndex int, newPoints []geometry.Point) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	poly := e.result.Polygons[idx]
	n := len(poly.Points)
	if startIndex < 0 || startIndex >= n || endIndex < 0 || endIndex >= n {
		return rejected("vertex index out of range")
	}
	if startIndex == endIndex {
		return rejected("start and end vertex are the same")
	}

	arc := FindOptimalPath(poly, startIndex, endIndex)

	// Orient the replacement path the way the replaced arc runs
	path := newPoints
	if arc.Start != startIndex {
		path = make([]geometry.Point, len(newPoints))
		for i, p := range newPoints {
			path[len(newPoints)-1-i] = p
		}
	}

	newRing := spliceArc(poly.Points, arc.Start, arc.End, path)
	if len(newRing) < 3 {
		return rejected("path modification would leave fewer than 3 points")
	}
	if geometry.IsSelfIntersecting(newRing) {
		return rejected("path modification would make the polygon self-intersect")
	}

	return e.commitRing(idx, newRing)
}

// spliceArc builds a new ring where the forward arc from start to end is
// replaced by path. The anchors are kept; the interior vertices of the
// replaced arc are dropped and the kept arc survives unchanged.
func spliceArc(ring []geometry.Point, start, end int, path []geometry.Point) []geometry.Point {
	n := len(ring)

	newRing := make([]geometry.Point, 0, n+len(path))
	newRing = append(newRing, ring[start])
	newRing = append(newRing, path...)
	newRing = append(newRing, ring[end])

	// Kept arc interior: forward from end to start, exclusive of both
	for i := (end + 1) % n; i != start; i = (i + 1) % n {
		newRing = append(newRing, ring[i])
	}
	return newRing
}
