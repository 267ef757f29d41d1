package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalprusek/segedit/pkg/geometry"
	"github.com/michalprusek/segedit/pkg/segmentation"
)

func square(x, y, size float64) []geometry.Point {
	return []geometry.Point{
		geometry.NewPoint(x, y),
		geometry.NewPoint(x+size, y),
		geometry.NewPoint(x+size, y+size),
		geometry.NewPoint(x, y+size),
	}
}

func sampleResult() *segmentation.Result {
	big := segmentation.NewPolygon(square(0, 0, 20), segmentation.External)
	small := segmentation.NewPolygon(square(50, 50, 5), segmentation.External)
	hole := segmentation.NewPolygon(square(5, 5, 2), segmentation.Internal)

	return &segmentation.Result{
		ImageSrc:    "cells.tiff",
		ImageWidth:  100,
		ImageHeight: 100,
		Polygons:    []segmentation.Polygon{big, small, hole},
	}
}

func TestAnalyzeResult(t *testing.T) {
	r := AnalyzeResult(sampleResult())

	assert.Equal(t, 3, r.PolygonCount)
	assert.Equal(t, 2, r.ExternalCount)
	assert.Equal(t, 1, r.InternalCount)

	assert.InDelta(t, 400.0, r.MaxArea, 1e-9)
	assert.InDelta(t, 4.0, r.MinArea, 1e-9)
	assert.InDelta(t, 429.0, r.TotalArea, 1e-9)
	assert.InDelta(t, 143.0, r.AvgArea, 1e-9)
	assert.InDelta(t, 4.0, r.AvgPoints, 1e-9)

	require.Len(t, r.AllPolygons, 3)
	assert.InDelta(t, 80.0, r.AllPolygons[0].Perimeter, 1e-9)
	assert.InDelta(t, 10.0, r.AllPolygons[0].Centroid.X, 1e-9)
	assert.InDelta(t, 10.0, r.AllPolygons[0].Centroid.Y, 1e-9)
}

func TestAnalyzeEmptyResult(t *testing.T) {
	r := AnalyzeResult(&segmentation.Result{})

	assert.Equal(t, 0, r.PolygonCount)
	assert.Zero(t, r.MinArea)
	assert.Zero(t, r.AvgArea)
}

func TestFindLargestPolygons(t *testing.T) {
	r := AnalyzeResult(sampleResult())

	top := FindLargestPolygons(r, 2)
	require.Len(t, top, 2)
	assert.InDelta(t, 400.0, top[0].Area, 1e-9)
	assert.InDelta(t, 25.0, top[1].Area, 1e-9)

	// Asking for more than available caps at the population
	all := FindLargestPolygons(r, 10)
	assert.Len(t, all, 3)
}

func TestFindPolygonsByArea(t *testing.T) {
	r := AnalyzeResult(sampleResult())

	mid := FindPolygonsByArea(r, 10, 100)
	require.Len(t, mid, 1)
	assert.InDelta(t, 25.0, mid[0].Area, 1e-9)
}

func TestFindNearestPolygon(t *testing.T) {
	r := AnalyzeResult(sampleResult())

	info, dist := FindNearestPolygon(r, geometry.NewPoint(52, 52))
	assert.InDelta(t, 25.0, info.Area, 1e-9)
	assert.InDelta(t, 0.70710678, dist, 1e-6)
}
