package editor

import (
	"fmt"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// AddPolygon commits a brand-new polygon built from a free-drawn ring.
// Returns the minted polygon id on success.
func (e *Engine) AddPolygon(points []geometry.Point, polyType segmentation.PolygonType) (Outcome, string) {
	if len(points) < 3 {
		return rejected("polygon needs at least 3 points"), ""
	}
	if geometry.IsSelfIntersecting(points) {
		return rejected("polygon outline self-intersects"), ""
	}

	ring := make([]geometry.Point, len(points))
	copy(ring, points)

	poly := segmentation.NewPolygon(ring, polyType)

	next := e.result.Clone()
	next.Polygons = append(next.Polygons, poly)
	e.result = next

	return acceptedMsg("polygon added"), poly.ID
}

// DeletePolygon removes a polygon entirely
func (e *Engine) DeletePolygon(polygonID string) Outcome {
	if e.result.FindPolygon(polygonID) < 0 {
		return rejected(fmt.Sprintf("polygon %s no longer exists", polygonID))
	}

	next := e.result.Clone()
	next.RemovePolygon(polygonID)
	e.result = next

	return acceptedMsg("polygon deleted")
}
