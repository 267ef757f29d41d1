package geometry

// SimplifyPath reduces the point count of an open path using the
// Ramer-Douglas-Peucker algorithm. The first and last points are always
// kept. A larger tolerance discards more points.
func SimplifyPath(points []Point, tolerance float64) []Point {
	if len(points) <= 2 {
		result := make([]Point, len(points))
		copy(result, points)
		return result
	}

	// Find the point with maximum perpendicular distance from the chord
	// connecting the endpoints
	end := len(points) - 1
	maxDist := 0.0
	maxIndex := 0
	for i := 1; i < end; i++ {
		d := PerpendicularDistance(points[i], points[0], points[end])
		if d > maxDist {
			maxDist = d
			maxIndex = i
		}
	}

	if maxDist > tolerance {
		// Recurse on both halves, dropping the duplicated junction point
		left := SimplifyPath(points[:maxIndex+1], tolerance)
		right := SimplifyPath(points[maxIndex:], tolerance)

		result := make([]Point, 0, len(left)+len(right)-1)
		result = append(result, left[:len(left)-1]...)
		result = append(result, right...)
		return result
	}

	// Everything between the endpoints is within tolerance of the chord
	return []Point{points[0], points[end]}
}
