package editor

import (
	"fmt"

	"github.com/michalprusek/segedit/pkg/geometry"
)

// SegmentHit describes the edge of a ring closest to a query point
type SegmentHit struct {
	Index     int            // Index of the edge (from ring[Index] to ring[Index+1])
	Distance  float64        // Distance from the query point to the edge
	Projected geometry.Point // Closest point on the edge
}

// FindClosestSegment returns the ring edge nearest to the query point, or
// nil when no edge lies within threshold image units. Small rings are
// scanned edge by edge; rings above bruteForceLimit points go through a
// spatial grid so only nearby edges are tested.
func FindClosestSegment(p geometry.Point, ring []geometry.Point, threshold float64) *SegmentHit {
	n := len(ring)
	if n < 2 {
		return nil
	}

	var candidates []int
	if n <= bruteForceLimit {
		candidates = make([]int, n)
		for i := range candidates {
			candidates[i] = i
		}
	} else {
		candidates = newSpatialGrid(ring).candidateSegments(p, threshold*2)
	}

	var best *SegmentHit
	for _, i := range candidates {
		a := ring[i]
		b := ring[(i+1)%n]

		proj := geometry.ProjectPointOnSegment(a, b, p)
		dist := p.Distance(proj.Point)
		if dist > threshold {
			continue
		}
		if best == nil || dist < best.Distance {
			best = &SegmentHit{Index: i, Distance: dist, Projected: proj.Point}
		}
	}
	return best
}

// AddPoint inserts a point into the ring immediately after the given
// segment index. Rejected when the resulting ring would self-intersect.
func (e *Engine) AddPoint(polygonID string, segmentIndex int, p geometry.Point) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	ring := e.result.Polygons[idx].Points
	if segmentIndex < 0 || segmentIndex >= len(ring) {
		return rejected(fmt.Sprintf("segment index %d out of range", segmentIndex))
	}

	newRing := make([]geometry.Point, 0, len(ring)+1)
	newRing = append(newRing, ring[:segmentIndex+1]...)
	newRing = append(newRing, p)
	newRing = append(newRing, ring[segmentIndex+1:]...)

	if geometry.IsSelfIntersecting(newRing) {
		return rejected("adding this point would make the polygon self-intersect")
	}

	return e.commitRing(idx, newRing)
}

// RemovePoint deletes the vertex at pointIndex. Rejected when the ring
// would drop below 3 points or become self-intersecting.
func (e *Engine) RemovePoint(polygonID string, pointIndex int) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	ring := e.result.Polygons[idx].Points
	if pointIndex < 0 || pointIndex >= len(ring) {
		return rejected(fmt.Sprintf("point index %d out of range", pointIndex))
	}
	if len(ring) <= 3 {
		return rejected("polygon needs at least 3 points")
	}

	newRing := make([]geometry.Point, 0, len(ring)-1)
	newRing = append(newRing, ring[:pointIndex]...)
	newRing = append(newRing, ring[pointIndex+1:]...)

	if geometry.IsSelfIntersecting(newRing) {
		return rejected("removing this point would make the polygon self-intersect")
	}

	return e.commitRing(idx, newRing)
}

// DuplicatePoint inserts a copy of the vertex at pointIndex, offset by a
// small fixed delta, immediately after the original
func (e *Engine) DuplicatePoint(polygonID string, pointIndex int) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	ring := e.result.Polygons[idx].Points
	if pointIndex < 0 || pointIndex >= len(ring) {
		return rejected(fmt.Sprintf("point index %d out of range", pointIndex))
	}

	copied := ring[pointIndex].Add(geometry.NewPoint(DuplicateOffset, DuplicateOffset))

	newRing := make([]geometry.Point, 0, len(ring)+1)
	newRing = append(newRing, ring[:pointIndex+1]...)
	newRing = append(newRing, copied)
	newRing = append(newRing, ring[pointIndex+1:]...)

	return e.commitRing(idx, newRing)
}

// MovePoint updates the coordinates of a single vertex. Used for live
// vertex dragging, so it deliberately skips the self-intersection check;
// the drag handler validates and reverts when the drag ends.
func (e *Engine) MovePoint(polygonID string, pointIndex int, p geometry.Point) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	ring := e.result.Polygons[idx].Points
	if pointIndex < 0 || pointIndex >= len(ring) {
		return rejected(fmt.Sprintf("point index %d out of range", pointIndex))
	}

	newRing := make([]geometry.Point, len(ring))
	copy(newRing, ring)
	newRing[pointIndex] = p

	return e.commitRing(idx, newRing)
}

// SimplifyPolygon reduces the polygon's point count with
// Ramer-Douglas-Peucker at the given tolerance. Endpoints of the open
// path are fixed. Rejected when the simplified ring has fewer than 3
// points.
func (e *Engine) SimplifyPolygon(polygonID string, tolerance float64) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}
	if tolerance <= 0 {
		tolerance = DefaultSimplifyTolerance
	}

	ring := e.result.Polygons[idx].Points
	simplified := geometry.SimplifyPath(ring, tolerance)
	if len(simplified) < 3 {
		return rejected("simplification would leave fewer than 3 points")
	}
	if geometry.IsSelfIntersecting(simplified) {
		return rejected("simplification would make the polygon self-intersect")
	}

	outcome := e.commitRing(idx, simplified)
	if outcome.OK {
		return acceptedMsg(fmt.Sprintf("simplified from %d to %d points", len(ring), len(simplified)))
	}
	return outcome
}

// commitRing swaps in a new result with the polygon's ring replaced.
// Any derived area carried from inference is dropped, it no longer
// matches the edited ring.
func (e *Engine) commitRing(polygonIndex int, ring []geometry.Point) Outcome {
	next := e.result.Clone()
	next.Polygons[polygonIndex].Points = ring
	next.Polygons[polygonIndex].Area = 0
	e.result = next
	return accepted()
}
