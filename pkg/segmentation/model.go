package segmentation

import (
	"github.com/google/uuid"
	"github.com/michalprusek/segedit/pkg/geometry"
)

// PolygonType distinguishes outer cell boundaries from holes within them
type PolygonType string

const (
	// External marks a polygon tracing the outer boundary of a cell
	External PolygonType = "external"
	// Internal marks a polygon tracing a hole inside a cell
	Internal PolygonType = "internal"
)

// Polygon is a closed ring of points outlining a segmented region.
// The ring is implicitly closed: the last point connects back to the first.
// A valid polygon has at least 3 points and does not self-intersect.
type Polygon struct {
	ID     string           `json:"id"`
	Type   PolygonType      `json:"type"`
	Points []geometry.Point `json:"points"`

	// Carried through from the ML inference result; zero when user-created
	Area       float64 `json:"area,omitempty"`
	Confidence float64 `json:"confidence,omitempty"`
}

// NewPolygon creates a polygon with a freshly minted id
func NewPolygon(points []geometry.Point, polyType PolygonType) Polygon {
	return Polygon{
		ID:     uuid.NewString(),
		Type:   polyType,
		Points: points,
	}
}

// Clone returns a deep copy of the polygon
func (p Polygon) Clone() Polygon {
	points := make([]geometry.Point, len(p.Points))
	copy(points, p.Points)
	clone := p
	clone.Points = points
	return clone
}

// Result holds a complete segmentation of one image
type Result struct {
	ImageSrc    string    `json:"imageSrc"`
	ImageWidth  int       `json:"imageWidth"`
	ImageHeight int       `json:"imageHeight"`
	Polygons    []Polygon `json:"polygons"`
}

// FindPolygon returns the index of the polygon with the given id, or -1
func (r *Result) FindPolygon(id string) int {
	for i := range r.Polygons {
		if r.Polygons[i].ID == id {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of the result, so edits can be prepared
// without touching the caller's value
func (r *Result) Clone() *Result {
	clone := &Result{
		ImageSrc:    r.ImageSrc,
		ImageWidth:  r.ImageWidth,
		ImageHeight: r.ImageHeight,
		Polygons:    make([]Polygon, len(r.Polygons)),
	}
	for i := range r.Polygons {
		clone.Polygons[i] = r.Polygons[i].Clone()
	}
	return clone
}

// RemovePolygon deletes the polygon with the given id.
// Returns false if no polygon with that id exists.
func (r *Result) RemovePolygon(id string) bool {
	idx := r.FindPolygon(id)
	if idx < 0 {
		return false
	}
	r.Polygons = append(r.Polygons[:idx], r.Polygons[idx+1:]...)
	return true
}
