package analysis

import (
	"math"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// ShapeMetrics is the morphometric suite computed per polygon.
// Circularity is clamped to [0,1]; compactness is its reciprocal
// following the ImageJ definition, so a circle scores 1 and complex
// shapes score higher. Feret diameters come from the minimum-area
// oriented bounding rectangle.
type ShapeMetrics struct {
	EquivalentDiameter float64
	Circularity        float64
	Compactness        float64
	Convexity          float64
	Solidity           float64
	Sphericity         float64
	Extent             float64
	FeretMax           float64
	FeretMin           float64
	FeretAspectRatio   float64
}

// ComputeShapeMetrics derives the metric suite from a ring.
// holePerimeter is the summed perimeter of holes inside the polygon;
// circularity and convexity include it so rough hole boundaries count
// against the shape.
func ComputeShapeMetrics(ring []geometry.Point, holePerimeter float64) ShapeMetrics {
	area := geometry.Area(ring)
	perimeter := geometry.Perimeter(ring)
	perimeterWithHoles := perimeter + holePerimeter

	hull := geometry.ConvexHull(ring)
	hullPerimeter := geometry.Perimeter(hull)
	hullArea := geometry.Area(hull)

	bounds := geometry.BoundsOf(ring)
	bboxArea := (bounds.Max.X - bounds.Min.X) * (bounds.Max.Y - bounds.Min.Y)

	feretMax, feretMin := geometry.MinAreaRect(ring)
	if feretMin > feretMax {
		feretMax, feretMin = feretMin, feretMax
	}

	m := ShapeMetrics{
		FeretMax: feretMax,
		FeretMin: feretMin,
	}

	if area > 0 {
		m.EquivalentDiameter = math.Sqrt(4 * area / math.Pi)
		m.Compactness = perimeter * perimeter / (4 * math.Pi * area)
	}
	if perimeterWithHoles > 0 {
		m.Circularity = math.Min(1, 4*math.Pi*area/(perimeterWithHoles*perimeterWithHoles))
		m.Convexity = hullPerimeter / perimeterWithHoles
	}
	if hullArea > 0 {
		m.Solidity = area / hullArea
	}
	if perimeter > 0 {
		m.Sphericity = math.Pi * m.EquivalentDiameter / perimeter
	}
	if bboxArea > 0 {
		m.Extent = area / bboxArea
	}
	if feretMin > 0 {
		m.FeretAspectRatio = feretMax / feretMin
	}

	return m
}

// holePerimeter sums the perimeters of internal polygons lying inside
// the given ring. Containment is decided by the hole's centroid.
func holePerimeter(result *segmentation.Result, ring []geometry.Point) float64 {
	total := 0.0
	for i := range result.Polygons {
		hole := &result.Polygons[i]
		if hole.Type != segmentation.Internal || len(hole.Points) < 3 {
			continue
		}
		if geometry.ContainsPoint(ring, geometry.Centroid(hole.Points)) {
			total += geometry.Perimeter(hole.Points)
		}
	}
	return total
}
