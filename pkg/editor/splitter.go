package editor

import (
	"fmt"
	"math"
	"sort"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// Weights for scoring which region survives a keep-one split
const (
	splitAreaWeight      = 0.7
	splitPerimeterWeight = 0.3
)

// RingIntersection is a crossing between a cut line and one ring edge
type RingIntersection struct {
	Point     geometry.Point // Where the cut line crosses the edge
	EdgeIndex int            // Index of the crossed edge
	T         float64        // Parametric position along that edge
}

// SliceValidation is the result of checking a cut line against a ring
type SliceValidation struct {
	Valid         bool
	Intersections []RingIntersection
	Message       string
}

// CalculateIntersections returns every crossing between the cut line
// p1-p2 and the ring's edges, including the closing edge
func CalculateIntersections(ring []geometry.Point, p1, p2 geometry.Point) []RingIntersection {
	n := len(ring)
	var hits []RingIntersection
	for i := 0; i < n; i++ {
		a := ring[i]
		b := ring[(i+1)%n]

		if isect := geometry.SegmentsIntersect(p1, p2, a, b); isect != nil {
			hits = append(hits, RingIntersection{
				Point:     isect.Point,
				EdgeIndex: i,
				T:         isect.T,
			})
		}
	}
	return hits
}

// ValidateSliceLine checks that the cut line crosses the ring boundary in
// exactly two places and is long enough to be intentional. The message
// distinguishes the failure causes so the UI can explain the rejection.
func ValidateSliceLine(ring []geometry.Point, p1, p2 geometry.Point) SliceValidation {
	if p1.Distance(p2) < MinSliceLength {
		return SliceValidation{Message: "slice line is too short"}
	}

	hits := CalculateIntersections(ring, p1, p2)
	switch len(hits) {
	case 0:
		return SliceValidation{Intersections: hits, Message: "slice line does not cross the polygon boundary"}
	case 1:
		return SliceValidation{Intersections: hits, Message: "slice line must cross the boundary twice, it crosses only once"}
	case 2:
		return SliceValidation{Valid: true, Intersections: hits}
	default:
		return SliceValidation{
			Intersections: hits,
			Message:       fmt.Sprintf("slice line crosses the boundary %d times, need exactly 2", len(hits)),
		}
	}
}

// deriveRings builds the two candidate rings produced by cutting the ring
// at the two intersections, each closed by the chord between them
func deriveRings(ring []geometry.Point, hits []RingIntersection) ([]geometry.Point, []geometry.Point) {
	n := len(ring)

	// Order the hits by position along the ring
	ordered := make([]RingIntersection, len(hits))
	copy(ordered, hits)
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].EdgeIndex != ordered[j].EdgeIndex {
			return ordered[i].EdgeIndex < ordered[j].EdgeIndex
		}
		return ordered[i].T < ordered[j].T
	})
	first, second := ordered[0], ordered[1]

	// Ring A: first crossing, then the vertices between the crossings,
	// then the second crossing; closed by the chord back to the first
	ringA := []geometry.Point{first.Point}
	for i := first.EdgeIndex + 1; i <= second.EdgeIndex; i++ {
		ringA = append(ringA, ring[i%n])
	}
	ringA = append(ringA, second.Point)

	// Ring B: the complementary side
	ringB := []geometry.Point{second.Point}
	for i := second.EdgeIndex + 1; ; i++ {
		idx := i % n
		ringB = append(ringB, ring[idx])
		if idx == first.EdgeIndex {
			break
		}
	}
	ringB = append(ringB, first.Point)

	return ringA, ringB
}

// scoreRing combines enclosed area and perimeter, each normalized against
// the larger candidate, into a single keep-this-region score
func scoreRing(ring []geometry.Point, maxArea, maxPerimeter float64) float64 {
	score := 0.0
	if maxArea > 0 {
		score += splitAreaWeight * geometry.Area(ring) / maxArea
	}
	if maxPerimeter > 0 {
		score += splitPerimeterWeight * geometry.Perimeter(ring) / maxPerimeter
	}
	return score
}

// SplitPolygon cuts the polygon along the line from start to end and
// keeps only the higher-scoring region (weighted area and perimeter).
// The other region is discarded.
func (e *Engine) SplitPolygon(polygonID string, start, end geometry.Point) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	ring := e.result.Polygons[idx].Points
	validation := ValidateSliceLine(ring, start, end)
	if !validation.Valid {
		return rejected(validation.Message)
	}

	ringA, ringB := deriveRings(ring, validation.Intersections)
	if len(ringA) < 3 || len(ringB) < 3 {
		return rejected("slice would produce a degenerate region")
	}

	maxArea := math.Max(geometry.Area(ringA), geometry.Area(ringB))
	maxPerimeter := math.Max(geometry.Perimeter(ringA), geometry.Perimeter(ringB))

	kept := ringA
	if scoreRing(ringB, maxArea, maxPerimeter) > scoreRing(ringA, maxArea, maxPerimeter) {
		kept = ringB
	}

	if geometry.IsSelfIntersecting(kept) {
		return rejected("slice would make the polygon self-intersect")
	}

	return e.commitRing(idx, kept)
}

// SplitIntoTwoPolygons cuts the polygon along the line from start to end
// and keeps both regions: the original id keeps one ring, the other ring
// becomes a new polygon of the same type with a freshly minted id.
func (e *Engine) SplitIntoTwoPolygons(polygonID string, start, end geometry.Point) Outcome {
	idx := e.result.FindPolygon(polygonID)
	if idx < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	poly := e.result.Polygons[idx]
	validation := ValidateSliceLine(poly.Points, start, end)
	if !validation.Valid {
		return rejected(validation.Message)
	}

	ringA, ringB := deriveRings(poly.Points, validation.Intersections)
	if len(ringA) < 3 || len(ringB) < 3 {
		return rejected("slice would produce a polygon with fewer than 3 points")
	}
	if geometry.IsSelfIntersecting(ringA) || geometry.IsSelfIntersecting(ringB) {
		return rejected("slice would produce a self-intersecting polygon")
	}

	next := e.result.Clone()
	next.Polygons[idx].Points = ringA
	next.Polygons[idx].Area = 0
	next.Polygons = append(next.Polygons, segmentation.NewPolygon(ringB, poly.Type))
	e.result = next

	return acceptedMsg("polygon split into two")
}
