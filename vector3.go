package gosie3d

import "math"

type Vector3 struct {
	X float64
	Y float64
	Z float64
	W float64
}

func (v *Vector3) Add(x, y, z float64) {
	v.X += x
	v.Y += y
	v.Z += z
}

func NewVector3(x, y, z float64) *Vector3 {
	return &Vector3{
		X: x,
		Y: y,
		Z: z,
		W: 1.0,
	}
}

func NewVector3dFromArray(normal []float64) *Vector3 {
	return NewVector3(normal[0], normal[1], normal[2])
}

func (v *Vector3) Normalize() {
	length := v.Length()
	if length == 0 {
		return
	}
	v.X /= length
	v.Y /= length
	v.Z /= length
}

func (v *Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Scale returns a new vector multiplied by s.
func (v *Vector3) Scale(s float64) *Vector3 {
	return NewVector3(v.X*s, v.Y*s, v.Z*s)
}

func (v *Vector3) Copy() *Vector3 {
	return &Vector3{
		X: v.X,
		Y: v.Y,
		Z: v.Z,
		W: v.W,
	}
}

func (v *Vector3) DistanceTo(other *Vector3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// Slice returns x, y, z as a row suitable for a normal mesh.
func (v *Vector3) Slice() []float64 {
	return []float64{v.X, v.Y, v.Z, 0}
}
