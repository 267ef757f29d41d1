package analysis

import (
	"fmt"
	"math"
	"sort"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

// PolygonInfo contains derived measurements for a single polygon
type PolygonInfo struct {
	ID          string
	Type        segmentation.PolygonType
	PointCount  int
	Area        float64
	Perimeter   float64
	Centroid    geometry.Point
	BoundingBox geometry.BoundingBox
	Confidence  float64
	Metrics     ShapeMetrics
}

// MeasurementResult contains various measurements of a segmentation
type MeasurementResult struct {
	ImageSrc      string
	ImageWidth    int
	ImageHeight   int
	PolygonCount  int
	ExternalCount int
	InternalCount int
	TotalArea     float64
	MinArea       float64
	MaxArea       float64
	AvgArea       float64
	AvgPoints     float64
	AllPolygons   []PolygonInfo
}

// AnalyzeResult computes per-polygon and aggregate measurements for a
// segmentation result. Areas are recomputed from the rings rather than
// trusted from the document.
func AnalyzeResult(result *segmentation.Result) *MeasurementResult {
	out := &MeasurementResult{
		ImageSrc:    result.ImageSrc,
		ImageWidth:  result.ImageWidth,
		ImageHeight: result.ImageHeight,
		AllPolygons: make([]PolygonInfo, 0, len(result.Polygons)),
	}

	minArea := math.MaxFloat64
	maxArea := 0.0
	totalArea := 0.0
	totalPoints := 0

	for _, poly := range result.Polygons {
		// Holes lengthen the effective boundary of their parent, which
		// feeds the circularity and convexity metrics
		holeP := 0.0
		if poly.Type != segmentation.Internal {
			holeP = holePerimeter(result, poly.Points)
		}

		info := PolygonInfo{
			ID:          poly.ID,
			Type:        poly.Type,
			PointCount:  len(poly.Points),
			Area:        geometry.Area(poly.Points),
			Perimeter:   geometry.Perimeter(poly.Points),
			Centroid:    geometry.Centroid(poly.Points),
			BoundingBox: geometry.BoundsOf(poly.Points),
			Confidence:  poly.Confidence,
			Metrics:     ComputeShapeMetrics(poly.Points, holeP),
		}
		out.AllPolygons = append(out.AllPolygons, info)

		switch poly.Type {
		case segmentation.Internal:
			out.InternalCount++
		default:
			out.ExternalCount++
		}

		totalArea += info.Area
		totalPoints += info.PointCount
		if info.Area < minArea {
			minArea = info.Area
		}
		if info.Area > maxArea {
			maxArea = info.Area
		}
	}

	out.PolygonCount = len(out.AllPolygons)
	out.TotalArea = totalArea
	out.MaxArea = maxArea
	if out.PolygonCount > 0 {
		out.MinArea = minArea
		out.AvgArea = totalArea / float64(out.PolygonCount)
		out.AvgPoints = float64(totalPoints) / float64(out.PolygonCount)
	}

	return out
}

// FindPolygonsByArea finds all polygons within an area range
func FindPolygonsByArea(result *MeasurementResult, minArea, maxArea float64) []PolygonInfo {
	var polygons []PolygonInfo
	for _, info := range result.AllPolygons {
		if info.Area >= minArea && info.Area <= maxArea {
			polygons = append(polygons, info)
		}
	}
	return polygons
}

// FindLargestPolygons returns the N largest polygons by area
func FindLargestPolygons(result *MeasurementResult, count int) []PolygonInfo {
	polygons := make([]PolygonInfo, len(result.AllPolygons))
	copy(polygons, result.AllPolygons)

	sort.Slice(polygons, func(i, j int) bool {
		return polygons[i].Area > polygons[j].Area
	})

	if count > len(polygons) {
		count = len(polygons)
	}

	return polygons[:count]
}

// FindSmallestPolygons returns the N smallest polygons by area
func FindSmallestPolygons(result *MeasurementResult, count int) []PolygonInfo {
	polygons := make([]PolygonInfo, len(result.AllPolygons))
	copy(polygons, result.AllPolygons)

	sort.Slice(polygons, func(i, j int) bool {
		return polygons[i].Area < polygons[j].Area
	})

	if count > len(polygons) {
		count = len(polygons)
	}

	return polygons[:count]
}

// FindNearestPolygon finds the polygon whose centroid is nearest to a
// given point
func FindNearestPolygon(result *MeasurementResult, point geometry.Point) (PolygonInfo, float64) {
	var nearest PolygonInfo
	minDistance := math.MaxFloat64

	for _, info := range result.AllPolygons {
		distance := point.Distance(info.Centroid)
		if distance < minDistance {
			minDistance = distance
			nearest = info
		}
	}

	return nearest, minDistance
}

// FormatMeasurement formats a measurement with appropriate units
func FormatMeasurement(value float64, unit string) string {
	if unit == "" {
		unit = "px"
	}
	return fmt.Sprintf("%.2f %s", value, unit)
}

// FormatPoint formats a 2D point
func FormatPoint(p geometry.Point) string {
	return fmt.Sprintf("(%.2f, %.2f)", p.X, p.Y)
}
