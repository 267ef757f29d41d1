package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

func TestCalculateIntersectionsAcrossSquare(t *testing.T) {
	// A horizontal line through the middle crosses the left and right
	// edges
	hits := CalculateIntersections(squareRing(), geometry.NewPoint(-5, 5), geometry.NewPoint(15, 5))

	require.Len(t, hits, 2)
	for _, hit := range hits {
		assert.InDelta(t, 5.0, hit.Point.Y, 1e-9)
	}
}

func TestValidateSliceLineOutside(t *testing.T) {
	v := ValidateSliceLine(squareRing(), geometry.NewPoint(20, 20), geometry.NewPoint(40, 40))

	assert.False(t, v.Valid)
	assert.Empty(t, v.Intersections)
	assert.Contains(t, v.Message, "does not cross")
}

func TestValidateSliceLineSingleCrossing(t *testing.T) {
	// Starts inside, ends outside: one boundary hit
	v := ValidateSliceLine(squareRing(), geometry.NewPoint(5, 5), geometry.NewPoint(25, 5))

	assert.False(t, v.Valid)
	assert.Len(t, v.Intersections, 1)
	assert.Contains(t, v.Message, "once")
}

func TestValidateSliceLineTooShort(t *testing.T) {
	v := ValidateSliceLine(squareRing(), geometry.NewPoint(5, 5), geometry.NewPoint(6, 5))

	assert.False(t, v.Valid)
	assert.Contains(t, v.Message, "too short")
}

func TestValidateSliceLineTooManyCrossings(t *testing.T) {
	// A W-shaped ring crossed horizontally: the zigzag contributes four
	// hits and the outer sides two more
	ring := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 20),
		geometry.NewPoint(20, 0),
		geometry.NewPoint(30, 20),
		geometry.NewPoint(40, 0),
		geometry.NewPoint(40, 30),
		geometry.NewPoint(0, 30),
	}
	require.False(t, geometry.IsSelfIntersecting(ring))

	v := ValidateSliceLine(ring, geometry.NewPoint(-5, 10), geometry.NewPoint(45, 10))

	assert.False(t, v.Valid)
	assert.Len(t, v.Intersections, 6)
	assert.Contains(t, v.Message, "6 times")
}

func TestValidateSliceLineValid(t *testing.T) {
	v := ValidateSliceLine(squareRing(), geometry.NewPoint(-5, 5), geometry.NewPoint(15, 5))

	assert.True(t, v.Valid)
	assert.Len(t, v.Intersections, 2)
	assert.Empty(t, v.Message)
}

func TestSplitIntoTwoPolygonsMidline(t *testing.T) {
	engine, id := newSquareEngine(t)

	outcome := engine.SplitIntoTwoPolygons(id, geometry.NewPoint(-5, 5), geometry.NewPoint(15, 5))
	require.True(t, outcome.OK, outcome.Message)

	result := engine.Result()
	require.Len(t, result.Polygons, 2)

	a, b := result.Polygons[0], result.Polygons[1]
	assert.Equal(t, id, a.ID, "original id keeps one ring")
	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, a.Type, b.Type)

	for _, poly := range result.Polygons {
		assert.GreaterOrEqual(t, len(poly.Points), 3)
		assert.False(t, geometry.IsSelfIntersecting(poly.Points))
		assert.InDelta(t, 50.0, geometry.Area(poly.Points), 1e-6, "midline split halves the square")
	}
}

func TestSplitIntoTwoPolygonsRejectsInvalidCut(t *testing.T) {
	engine, id := newSquareEngine(t)
	before := ringOf(t, engine, id)

	outcome := engine.SplitIntoTwoPolygons(id, geometry.NewPoint(20, 20), geometry.NewPoint(40, 40))

	assert.False(t, outcome.OK)
	assert.Len(t, engine.Result().Polygons, 1)
	assert.Equal(t, before, ringOf(t, engine, id))
}

func TestSplitPolygonKeepsLargerRegion(t *testing.T) {
	engine, id := newSquareEngine(t)

	// Cut off a thin sliver near the bottom; the big region survives
	outcome := engine.SplitPolygon(id, geometry.NewPoint(-5, 1), geometry.NewPoint(15, 1))
	require.True(t, outcome.OK, outcome.Message)

	result := engine.Result()
	require.Len(t, result.Polygons, 1)

	ring := ringOf(t, engine, id)
	assert.InDelta(t, 90.0, geometry.Area(ring), 1e-6, "the 10x9 region is kept, the 10x1 sliver dropped")
}

func TestSplitPolygonRejectsMissingPolygon(t *testing.T) {
	engine, _ := newSquareEngine(t)
	assert.False(t, engine.SplitPolygon("missing", geometry.NewPoint(0, 0), geometry.NewPoint(1, 1)).OK)
	assert.False(t, engine.SplitIntoTwoPolygons("missing", geometry.NewPoint(0, 0), geometry.NewPoint(1, 1)).OK)
}

func TestSplitPreservesOtherPolygons(t *testing.T) {
	square := segmentation.NewPolygon(squareRing(), segmentation.External)
	bystander := segmentation.NewPolygon([]geometry.Point{
		geometry.NewPoint(50, 50),
		geometry.NewPoint(60, 50),
		geometry.NewPoint(55, 60),
	}, segmentation.Internal)

	engine := NewEngine(&segmentation.Result{
		Polygons: []segmentation.Polygon{square, bystander},
	})

	require.True(t, engine.SplitIntoTwoPolygons(square.ID, geometry.NewPoint(-5, 5), geometry.NewPoint(15, 5)).OK)

	require.Len(t, engine.Result().Polygons, 3)
	idx := engine.Result().FindPolygon(bystander.ID)
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, bystander.Points, engine.Result().Polygons[idx].Points)
}
