package segmentation

import (
	"github.com/michalprusek/segedit/pkg/geometry"
)

// FilterPolygons drops polygons below the given area or confidence.
// A zero threshold disables that filter. Area is computed from the ring
// when the inference result did not carry one.
func FilterPolygons(polygons []Polygon, minArea, minConfidence float64) []Polygon {
	filtered := make([]Polygon, 0, len(polygons))
	for _, poly := range polygons {
		area := poly.Area
		if area == 0 {
			area = geometry.Area(poly.Points)
		}

		if minArea > 0 && area < minArea {
			continue
		}
		if minConfidence > 0 && poly.Confidence < minConfidence {
			continue
		}
		filtered = append(filtered, poly)
	}
	return filtered
}

// CleanPolygons removes duplicate consecutive points from each ring and
// drops polygons that degenerate below 3 points. The ML contour extractor
// occasionally emits repeated vertices and an explicit closing point;
// rings here are implicitly closed, so both are stripped.
func CleanPolygons(polygons []Polygon) []Polygon {
	cleaned := make([]Polygon, 0, len(polygons))
	for _, poly := range polygons {
		points := dedupeRing(poly.Points)
		if len(points) < 3 {
			continue
		}

		poly.Points = points
		cleaned = append(cleaned, poly)
	}
	return cleaned
}

func dedupeRing(points []geometry.Point) []geometry.Point {
	if len(points) == 0 {
		return nil
	}

	result := make([]geometry.Point, 0, len(points))
	for i, p := range points {
		if i == 0 || p != points[i-1] {
			result = append(result, p)
		}
	}

	// Strip an explicit closing point duplicating the first
	if len(result) > 1 && result[0] == result[len(result)-1] {
		result = result[:len(result)-1]
	}
	return result
}
