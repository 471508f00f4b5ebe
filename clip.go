package gosie3d

// clipPolygonAgainstNearPlane keeps the part of a camera space polygon with
// z >= near.
func clipPolygonAgainstNearPlane(points [][]float64, near float64) [][]float64 {
	return clipPolygonAxis(points, 2, near, true)
}

// clipPolygonAxis clips a convex polygon against the plane points[axis] ==
// value, keeping the side above it (or below when keepAbove is false). The
// input is returned unchanged when nothing is cut off.
func clipPolygonAxis(points [][]float64, axis int, value float64, keepAbove bool) [][]float64 {
	inside := func(p []float64) bool {
		if keepAbove {
			return p[axis] >= value
		}
		return p[axis] <= value
	}

	allIn := true
	for _, p := range points {
		if !inside(p) {
			allIn = false
			break
		}
	}
	if allIn {
		return points
	}

	out := make([][]float64, 0, len(points)+2)
	for i := range points {
		cur := points[i]
		prev := points[(i+len(points)-1)%len(points)]
		curIn, prevIn := inside(cur), inside(prev)

		if curIn != prevIn {
			out = append(out, intersectAxis(prev, cur, axis, value))
		}
		if curIn {
			out = append(out, cur)
		}
	}
	return out
}

func intersectAxis(a, b []float64, axis int, value float64) []float64 {
	t := (value - a[axis]) / (b[axis] - a[axis])
	return []float64{
		a[0] + (b[0]-a[0])*t,
		a[1] + (b[1]-a[1])*t,
		a[2] + (b[2]-a[2])*t,
		1,
	}
}

// clipLineAgainstNearPlane trims a camera space segment to z >= near. ok is
// false when the whole segment is behind the plane.
func clipLineAgainstNearPlane(a, b []float64, near float64) ([]float64, []float64, bool) {
	aIn, bIn := a[2] >= near, b[2] >= near
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return nil, nil, false
	case aIn:
		return a, intersectAxis(a, b, 2, near), true
	default:
		return intersectAxis(a, b, 2, near), b, true
	}
}
