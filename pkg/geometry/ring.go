package geometry

import "math"

// A ring is an ordered sequence of points forming a polygon boundary.
// The ring is implicitly closed: the last point connects back to the first.

// PathLength returns the cumulative edge length of an open path
func PathLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].Distance(points[i])
	}
	return total
}

// Perimeter returns the total boundary length of a ring, including the
// closing edge from the last point back to the first
func Perimeter(ring []Point) float64 {
	if len(ring) < 2 {
		return 0
	}
	return PathLength(ring) + ring[len(ring)-1].Distance(ring[0])
}

// Area returns the enclosed area of a ring using the shoelace formula.
// The result is always non-negative regardless of winding order.
func Area(ring []Point) float64 {
	if len(ring) < 3 {
		return 0
	}

	sum := 0.0
	for i := range ring {
		j := (i + 1) % len(ring)
		sum += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return math.Abs(sum) / 2
}

// Centroid returns the arithmetic mean of the ring's vertices
func Centroid(ring []Point) Point {
	if len(ring) == 0 {
		return Point{}
	}

	var sum Point
	for _, p := range ring {
		sum = sum.Add(p)
	}
	return sum.Mul(1.0 / float64(len(ring)))
}

// ContainsPoint reports whether p lies inside the ring using the
// ray-casting algorithm. Points exactly on the boundary may report
// either way.
func ContainsPoint(ring []Point, p Point) bool {
	if len(ring) < 3 {
		return false
	}

	inside := false
	j := len(ring) - 1
	for i := 0; i < len(ring); i++ {
		a, b := ring[i], ring[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

// IsSelfIntersecting reports whether any two non-adjacent edges of the ring
// cross each other. Runs in O(n²), which is fine for the ring sizes this
// editor works with (tens to low hundreds of points).
func IsSelfIntersecting(ring []Point) bool {
	n := len(ring)
	if n < 4 {
		return false
	}

	for i := 0; i < n; i++ {
		a1 := ring[i]
		a2 := ring[(i+1)%n]

		for j := i + 2; j < n; j++ {
			// Skip the closing edge's adjacency with the first edge
			if i == 0 && j == n-1 {
				continue
			}

			b1 := ring[j]
			b2 := ring[(j+1)%n]

			if segmentsCross(a1, a2, b1, b2) {
				return true
			}
		}
	}
	return false
}

// segmentsCross reports a proper crossing between two segments without the
// endpoint exclusion applied by SegmentsIntersect. Shared vertices of
// adjacent edges are already skipped by the caller.
func segmentsCross(p1, p2, p3, p4 Point) bool {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	det := d1.Cross(d2)
	if det < intersectionEpsilon && det > -intersectionEpsilon {
		return false
	}

	diff := p3.Sub(p1)
	t := diff.Cross(d2) / det
	u := diff.Cross(d1) / det

	return t > 0 && t < 1 && u > 0 && u < 1
}
