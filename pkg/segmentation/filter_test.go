package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/michalprusek/segedit/pkg/geometry"
)

func TestFilterPolygonsByArea(t *testing.T) {
	small := NewPolygon([]geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(2, 0),
		geometry.NewPoint(1, 2),
	}, External) // area 2

	big := squarePolygon() // area 100

	filtered := FilterPolygons([]Polygon{small, big}, 50, 0)
	require.Len(t, filtered, 1)
	assert.Equal(t, big.ID, filtered[0].ID)
}

func TestFilterPolygonsByConfidence(t *testing.T) {
	low := squarePolygon()
	low.Confidence = 0.3
	high := squarePolygon()
	high.Confidence = 0.9

	filtered := FilterPolygons([]Polygon{low, high}, 0, 0.5)
	require.Len(t, filtered, 1)
	assert.Equal(t, high.ID, filtered[0].ID)
}

func TestFilterPolygonsZeroThresholdsKeepAll(t *testing.T) {
	polys := []Polygon{squarePolygon(), squarePolygon()}
	assert.Len(t, FilterPolygons(polys, 0, 0), 2)
}

func TestCleanPolygonsDedupes(t *testing.T) {
	poly := Polygon{
		ID:   "a",
		Type: External,
		Points: []geometry.Point{
			geometry.NewPoint(0, 0),
			geometry.NewPoint(0, 0), // duplicate
			geometry.NewPoint(10, 0),
			geometry.NewPoint(5, 10),
			geometry.NewPoint(0, 0), // explicit closing point
		},
	}

	cleaned := CleanPolygons([]Polygon{poly})
	require.Len(t, cleaned, 1)
	assert.Equal(t, []geometry.Point{
		geometry.NewPoint(0, 0),
		geometry.NewPoint(10, 0),
		geometry.NewPoint(5, 10),
	}, cleaned[0].Points)
}

func TestCleanPolygonsDropsDegenerate(t *testing.T) {
	poly := Polygon{
		ID:   "a",
		Type: External,
		Points: []geometry.Point{
			geometry.NewPoint(0, 0),
			geometry.NewPoint(0, 0),
			geometry.NewPoint(10, 0),
		},
	}

	assert.Empty(t, CleanPolygons([]Polygon{poly}))
}
