package geometry

// epsilon below which a determinant is treated as parallel and an
// intersection as coinciding with a segment endpoint
const intersectionEpsilon = 1e-4

// Projection is the result of projecting a point onto a segment
type Projection struct {
	Point Point   // Closest point on the segment
	T     float64 // Parametric position along the segment, clamped to [0,1]
}

// ProjectPointOnSegment returns the closest point to p lying on segment a-b.
// The parametric position is clamped so the result never leaves the segment.
func ProjectPointOnSegment(a, b, p Point) Projection {
	ab := b.Sub(a)
	lengthSq := ab.Dot(ab)
	if lengthSq == 0 {
		// Degenerate segment, both endpoints coincide
		return Projection{Point: a, T: 0}
	}

	t := p.Sub(a).Dot(ab) / lengthSq
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	return Projection{Point: a.Add(ab.Mul(t)), T: t}
}

// PerpendicularDistance returns the distance from p to the infinite line
// through lineStart and lineEnd
func PerpendicularDistance(p, lineStart, lineEnd Point) float64 {
	dir := lineEnd.Sub(lineStart)
	length := dir.Length()
	if length == 0 {
		return p.Distance(lineStart)
	}

	// Area of the parallelogram divided by the base length
	cross := dir.Cross(p.Sub(lineStart))
	if cross < 0 {
		cross = -cross
	}
	return cross / length
}

// Intersection describes where two line segments cross
type Intersection struct {
	Point Point   // Intersection point
	T     float64 // Parametric position along the second segment
}

// SegmentsIntersect computes the intersection of segments p1-p2 and p3-p4
// using the parametric determinant method. Returns nil when the segments are
// parallel (near-zero determinant), do not cross within both segments, or
// the crossing coincides with an endpoint of the second segment. The last
// case is excluded so cuts through existing vertices do not produce
// degenerate splits.
func SegmentsIntersect(p1, p2, p3, p4 Point) *Intersection {
	d1 := p2.Sub(p1)
	d2 := p4.Sub(p3)

	det := d1.Cross(d2)
	if det < intersectionEpsilon && det > -intersectionEpsilon {
		return nil
	}

	diff := p3.Sub(p1)
	t := diff.Cross(d2) / det // position along first segment
	u := diff.Cross(d1) / det // position along second segment

	if t < 0 || t > 1 || u < 0 || u > 1 {
		return nil
	}

	// Skip hits at the second segment's endpoints
	if u < intersectionEpsilon || u > 1-intersectionEpsilon {
		return nil
	}

	return &Intersection{
		Point: p1.Add(d1.Mul(t)),
		T:     u,
	}
}
