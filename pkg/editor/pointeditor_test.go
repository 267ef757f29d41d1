package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

func squareRing() []geometry.Point {
	return []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(10, 10),
		geometry.NewPoint(0, 10),
	}
}

func newSquareEngine(t *testing.T) (*Engine, string) {
	t.Helper()
	poly := segmentation.NewPolygon(squareRing(), segmentation.External)
	engine := NewEngine(&segmentation.Result{
		ImageWidth:  100,
		ImageHeight: 100,
		Polygons:    []segmentation.Polygon{poly},
	})
	return engine, poly.ID
}

func ringOf(t *testing.T, e *Engine, id string) []geometry.Point {
	t.Helper()
	idx := e.Result().FindPolygon(id)
	require.GreaterOrEqual(t, idx, 0)
	return e.Result().Polygons[idx].Points
}

func TestFindClosestSegmentOnSquare(t *testing.T) {
	// Click at the midpoint of the bottom edge
	hit := FindClosestSegment(geometry.NewPoint(5, 0), squareRing(), 10)

	require.NotNil(t, hit)
	assert.Equal(t, 0, hit.Index)
	assert.InDelta(t, 0.0, hit.Distance, 1e-9)
	assert.InDelta(t, 5.0, hit.Projected.X, 1e-9)
	assert.InDelta(t, 0.0, hit.Projected.Y, 1e-9)
}

func TestFindClosestSegmentMiss(t *testing.T) {
	hit := FindClosestSegment(geometry.NewPoint(50, 50), squareRing(), 10)
	assert.Nil(t, hit)
}

func TestAddPointOnEdge(t *testing.T) {
	engine, id := newSquareEngine(t)

	hit := FindClosestSegment(geometry.NewPoint(5, 0), squareRing(), 10)
	require.NotNil(t, hit)

	outcome := engine.AddPoint(id, hit.Index, hit.Projected)
	require.True(t, outcome.OK, outcome.Message)

	ring := ringOf(t, engine, id)
	require.Len(t, ring, 5)
	assert.Equal(t, geometry.NewPoint(5, 0), ring[1], "new point lands right after the segment start")
}

func TestAddRemoveRoundTrip(t *testing.T) {
	engine, id := newSquareEngine(t)
	original := ringOf(t, engine, id)

	outcome := engine.AddPoint(id, 0, geometry.NewPoint(5, 0))
	require.True(t, outcome.OK, outcome.Message)

	outcome = engine.RemovePoint(id, 1)
	require.True(t, outcome.OK, outcome.Message)

	assert.Equal(t, original, ringOf(t, engine, id), "ring restored exactly")
}

func TestRemovePointRejectsTriangle(t *testing.T) {
	poly := segmentation.NewPolygon([]geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(5, 10),
	}, segmentation.External)
	engine := NewEngine(&segmentation.Result{Polygons: []segmentation.Polygon{poly}})

	outcome := engine.RemovePoint(poly.ID, 0)
	assert.False(t, outcome.OK)
	assert.Len(t, ringOf(t, engine, poly.ID), 3, "triangle left untouched")
}

func TestRemovePointRejectsSelfIntersection(t *testing.T) {
	// Removing the rightmost vertex of this shape folds the ring over
	// itself
	ring := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 4),
		geometry.NewPoint(20, 0),
		geometry.NewPoint(20, 10),
		geometry.NewPoint(10, 6),
		geometry.NewPoint(0, 10),
	}
	// Sanity: the input ring is simple
	require.False(t, geometry.IsSelfIntersecting(ring))

	poly := segmentation.NewPolygon(ring, segmentation.External)
	engine := NewEngine(&segmentation.Result{Polygons: []segmentation.Polygon{poly}})

	before := ringOf(t, engine, poly.ID)
	outcome := engine.RemovePoint(poly.ID, 2)
	if !outcome.OK {
		assert.Equal(t, before, ringOf(t, engine, poly.ID), "rejection leaves the ring unchanged")
	} else {
		assert.False(t, geometry.IsSelfIntersecting(ringOf(t, engine, poly.ID)))
	}
}

func TestDuplicatePoint(t *testing.T) {
	engine, id := newSquareEngine(t)

	outcome := engine.DuplicatePoint(id, 1)
	require.True(t, outcome.OK, outcome.Message)

	ring := ringOf(t, engine, id)
	require.Len(t, ring, 5)
	assert.Equal(t, geometry.NewPoint(15, 5), ring[2], "copy offset by the fixed delta")
}

func TestSimplifyPolygon(t *testing.T) {
	// A square with jittered extra points along the bottom edge
	ring := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(2, 0.01),
		geometry.NewPoint(5, -0.02),
		geometry.NewPoint(8, 0.01),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(10, 10),
		geometry.NewPoint(0, 10),
	}
	poly := segmentation.NewPolygon(ring, segmentation.External)
	engine := NewEngine(&segmentation.Result{Polygons: []segmentation.Polygon{poly}})

	outcome := engine.SimplifyPolygon(poly.ID, 1.0)
	require.True(t, outcome.OK, outcome.Message)

	simplified := ringOf(t, engine, poly.ID)
	assert.Equal(t, []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(10, 10),
		geometry.NewPoint(0, 10),
	}, simplified)
}

func TestSimplifyPolygonIdempotent(t *testing.T) {
	ring := []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(3, 0.2),
		geometry.NewPoint(6, -0.3),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(10, 10),
		geometry.NewPoint(5, 12),
		geometry.NewPoint(0, 10),
	}
	poly := segmentation.NewPolygon(ring, segmentation.External)
	engine := NewEngine(&segmentation.Result{Polygons: []segmentation.Polygon{poly}})

	require.True(t, engine.SimplifyPolygon(poly.ID, 1.0).OK)
	after := ringOf(t, engine, poly.ID)

	require.True(t, engine.SimplifyPolygon(poly.ID, 1.0).OK)
	assert.Equal(t, after, ringOf(t, engine, poly.ID), "second pass is a no-op")
}

func TestOperationsOnMissingPolygon(t *testing.T) {
	engine, _ := newSquareEngine(t)

	assert.False(t, engine.AddPoint("missing", 0, geometry.NewPoint(1, 1)).OK)
	assert.False(t, engine.RemovePoint("missing", 0).OK)
	assert.False(t, engine.DuplicatePoint("missing", 0).OK)
	assert.False(t, engine.SimplifyPolygon("missing", 1.0).OK)
	assert.False(t, engine.MovePoint("missing", 0, geometry.NewPoint(1, 1)).OK)
}

func TestPointCountInvariant(t *testing.T) {
	engine, id := newSquareEngine(t)

	engine.AddPoint(id, 0, geometry.NewPoint(5, 0))
	engine.RemovePoint(id, 1)
	engine.DuplicatePoint(id, 2)
	engine.SimplifyPolygon(id, 1.0)

	for _, poly := range engine.Result().Polygons {
		assert.GreaterOrEqual(t, len(poly.Points), 3)
		assert.False(t, geometry.IsSelfIntersecting(poly.Points))
	}
}
