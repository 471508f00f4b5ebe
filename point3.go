package gosie3d

type Point3d struct {
	X float64
	Y float64
	Z float64
}

func NewPoint3d(x, y, z float64) *Point3d {
	return &Point3d{
		X: x,
		Y: y,
		Z: z,
	}
}

func (p *Point3d) GetX() float64 { return p.X }
func (p *Point3d) GetY() float64 { return p.Y }
func (p *Point3d) GetZ() float64 { return p.Z }

// Vector returns the point as a direction from the origin.
func (p *Point3d) Vector() *Vector3 {
	return NewVector3(p.X, p.Y, p.Z)
}
