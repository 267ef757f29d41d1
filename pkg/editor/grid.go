package editor

import (
	"math"

	"github.com/michalprusek/segedit/pkg/geometry"
)

// bruteForceLimit is the ring size above which segment searches switch
// from a linear edge scan to the spatial grid
const bruteForceLimit = 100

// spatialGridCellSize is the grid cell edge length in image units
const spatialGridCellSize = 50.0

type gridCell struct {
	x, y int
}

// spatialGrid buckets ring vertices into uniform cells so segment
// hit-testing on large rings only has to look at nearby edges. Each
// vertex registers the two segments it participates in.
type spatialGrid struct {
	cells map[gridCell][]int
	ring  []geometry.Point
}

func newSpatialGrid(ring []geometry.Point) *spatialGrid {
	g := &spatialGrid{
		cells: make(map[gridCell][]int),
		ring:  ring,
	}

	n := len(ring)
	for i, p := range ring {
		cell := cellOf(p)
		// Vertex i belongs to the segment starting at i and the one
		// starting at its predecessor
		g.cells[cell] = append(g.cells[cell], i, (i-1+n)%n)
	}
	return g
}

func cellOf(p geometry.Point) gridCell {
	return gridCell{
		x: int(math.Floor(p.X / spatialGridCellSize)),
		y: int(math.Floor(p.Y / spatialGridCellSize)),
	}
}

// candidateSegments returns deduplicated segment indices whose endpoints
// fall in cells within radius of the query point
func (g *spatialGrid) candidateSegments(p geometry.Point, radius float64) []int {
	reach := int(math.Ceil(radius/spatialGridCellSize)) + 1
	center := cellOf(p)

	seen := make(map[int]bool)
	var candidates []int
	for dx := -reach; dx <= reach; dx++ {
		for dy := -reach; dy <= reach; dy++ {
			cell := gridCell{x: center.x + dx, y: center.y + dy}
			for _, idx := range g.cells[cell] {
				if !seen[idx] {
					seen[idx] = true
					candidates = append(candidates, idx)
				}
			}
		}
	}
	return candidates
}
