package geometry

import (
	"math"
	"sort"
)

// ConvexHull returns the convex hull of the points in counter-clockwise
// order using Andrew's monotone chain. Collinear boundary points are
// dropped. Fewer than 3 distinct points come back as-is.
func ConvexHull(points []Point) []Point {
	pts := make([]Point, len(points))
	copy(pts, points)
	sort.Slice(pts, func(i, j int) bool {
		if pts[i].X != pts[j].X {
			return pts[i].X < pts[j].X
		}
		return pts[i].Y < pts[j].Y
	})

	distinct := make([]Point, 0, len(pts))
	for _, p := range pts {
		if len(distinct) == 0 || p != distinct[len(distinct)-1] {
			distinct = append(distinct, p)
		}
	}

	n := len(distinct)
	if n < 3 {
		return distinct
	}

	hull := make([]Point, 0, 2*n)
	for _, p := range distinct {
		for len(hull) >= 2 && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := distinct[i]
		for len(hull) >= lower && turn(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}

	return hull[:len(hull)-1]
}

// turn is positive when o->a->b makes a left turn
func turn(o, a, b Point) float64 {
	return a.Sub(o).Cross(b.Sub(o))
}

// MinAreaRect returns the width and height of the minimum-area oriented
// rectangle enclosing the points, found by rotating calipers over the
// convex hull edges. Collinear input gives a zero-height rectangle
// spanning the longest extent.
func MinAreaRect(points []Point) (width, height float64) {
	hull := ConvexHull(points)
	n := len(hull)
	if n < 2 {
		return 0, 0
	}
	if n == 2 {
		return hull[0].Distance(hull[1]), 0
	}

	best := math.MaxFloat64
	for i := 0; i < n; i++ {
		dir := hull[(i+1)%n].Sub(hull[i]).Normalize()
		normal := NewPoint(-dir.Y, dir.X)

		minU, maxU := math.MaxFloat64, -math.MaxFloat64
		minV, maxV := math.MaxFloat64, -math.MaxFloat64
		for _, p := range hull {
			u := p.Dot(dir)
			v := p.Dot(normal)
			minU = math.Min(minU, u)
			maxU = math.Max(maxU, u)
			minV = math.Min(minV, v)
			maxV = math.Max(maxV, v)
		}

		w := maxU - minU
		h := maxV - minV
		if w*h < best {
			best = w * h
			width, height = w, h
		}
	}

	return width, height
}
