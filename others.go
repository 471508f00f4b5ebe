package gosie3d

// Subtract returns a new Vector3 that is the difference of v1 and v2.
func Subtract(v1, v2 *Vector3) *Vector3 {
	return NewVector3(
		v1.X-v2.X,
		v1.Y-v2.Y,
		v1.Z-v2.Z,
	)
}

// Cross computes the cross product of two vectors.
func Cross(v1, v2 *Vector3) *Vector3 {
	return NewVector3(
		v1.Y*v2.Z-v1.Z*v2.Y,
		v1.Z*v2.X-v1.X*v2.Z,
		v1.X*v2.Y-v1.Y*v2.X,
	)
}

// Dot computes the dot product of two vectors.
func Dot(v1, v2 *Vector3) float64 {
	return v1.X*v2.X + v1.Y*v2.Y + v1.Z*v2.Z
}

func dot3(a, b []float64) float64 {
	return a[0]*b[0] + a[1]*b[1] + a[2]*b[2]
}

// NewLookAtMatrix builds the world to camera matrix for an eye looking at
// target. Camera space has +X to the right, +Y up and +Z forward.
func NewLookAtMatrix(eye, target, up *Vector3) *Matrix {
	zAxisVec := Subtract(target, eye)
	zAxisVec.Normalize()

	xAxisVec := Cross(zAxisVec, up)
	if xAxisVec.Length() == 0 {
		// looking straight along up; pick any perpendicular
		xAxisVec = Cross(zAxisVec, NewVector3(0, 0, -1))
	}
	xAxisVec.Normalize()

	yAxisVec := Cross(xAxisVec, zAxisVec)

	viewMatrix := IdentMatrix()
	m := viewMatrix.ThisMatrix

	// basis vectors are the rows of the rotation part (ThisMatrix is [col][row])
	m[0][0], m[1][0], m[2][0] = xAxisVec.X, xAxisVec.Y, xAxisVec.Z
	m[0][1], m[1][1], m[2][1] = yAxisVec.X, yAxisVec.Y, yAxisVec.Z
	m[0][2], m[1][2], m[2][2] = zAxisVec.X, zAxisVec.Y, zAxisVec.Z

	m[3][0] = -Dot(xAxisVec, eye)
	m[3][1] = -Dot(yAxisVec, eye)
	m[3][2] = -Dot(zAxisVec, eye)
	m[3][3] = 1.0

	return viewMatrix
}
