package gosie3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Camera is a perspective camera. Its matrix takes world space to camera
// space, where the camera sits at the origin looking down +Z.
type Camera struct {
	camMatrixRev   *Matrix
	cameraPosition *Point3d
	lookAt         *Vector3
	up             *Vector3

	Fov    float64 // vertical field of view in degrees
	Aspect float64
	Near   float64
	Far    float64
}

func NewPerspectiveCamera(fov, aspect, near, far float64) *Camera {
	c := &Camera{
		cameraPosition: NewPoint3d(0, 0, 0),
		lookAt:         NewVector3(0, 0, -1),
		up:             NewVector3(0, 1, 0),
		Fov:            fov,
		Aspect:         aspect,
		Near:           near,
		Far:            far,
	}
	c.updateMatrix()
	return c
}

func (c *Camera) updateMatrix() {
	c.camMatrixRev = NewLookAtMatrix(c.cameraPosition.Vector(), c.lookAt, c.up)
}

func (c *Camera) GetMatrix() *Matrix {
	return c.camMatrixRev
}

func (c *Camera) GetPosition() *Point3d {
	return c.cameraPosition
}

// GetTarget returns the point the camera looks at.
func (c *Camera) GetTarget() *Vector3 {
	return c.lookAt.Copy()
}

func (c *Camera) SetCameraPosition(x, y, z float64) {
	c.cameraPosition = NewPoint3d(x, y, z)
	c.updateMatrix()
}

func (c *Camera) LookAt(x, y, z float64) {
	c.lookAt = NewVector3(x, y, z)
	c.updateMatrix()
}

// SetUp changes the up direction used to orient the view.
func (c *Camera) SetUp(up mgl64.Vec3) {
	up = up.Normalize()
	c.up = NewVector3(up[0], up[1], up[2])
	c.updateMatrix()
}

// FocalLength returns the projection scale in pixels for a screen of the
// given height.
func (c *Camera) FocalLength(screenHeight float64) float64 {
	return (screenHeight / 2) / math.Tan(degreesToRadians(c.Fov)/2)
}

// ToCamera transforms a world point into camera space.
func (c *Camera) ToCamera(x, y, z float64) (float64, float64, float64) {
	return c.camMatrixRev.TransformPoint(x, y, z)
}

// ConvertToScreen projects a camera space point. z must be positive.
func ConvertToScreen(focal, cx, cy, x, y, z float64) (float32, float32) {
	return float32(cx + focal*x/z), float32(cy - focal*y/z)
}

// ConvertFromScreen is the inverse of ConvertToScreen at depth z.
func ConvertFromScreen(focal, cx, cy float64, sx, sy float32, z float64) (float64, float64) {
	return (float64(sx) - cx) * z / focal, (cy - float64(sy)) * z / focal
}

func degreesToRadians(degrees float64) float64 {
	return degrees * (math.Pi / 180)
}
