package gosie3d

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const minPolarAngle = 1e-4

// OrbitControls rotates a camera around a target with the mouse and zooms
// with the wheel.
type OrbitControls struct {
	camera *Camera
	Target mgl64.Vec3

	radius float64
	theta  float64 // azimuth around +Y, measured from +Z
	phi    float64 // polar angle from +Y

	RotateSpeed float64
	ZoomSpeed   float64
	MinDistance float64
	MaxDistance float64
	Enabled     bool

	dragging     bool
	lastX, lastY int
}

func NewOrbitControls(camera *Camera) *OrbitControls {
	o := &OrbitControls{
		camera:      camera,
		RotateSpeed: 1.0,
		ZoomSpeed:   1.0,
		MinDistance: 0,
		MaxDistance: math.Inf(1),
		Enabled:     true,
	}
	t := camera.GetTarget()
	o.Target = mgl64.Vec3{t.X, t.Y, t.Z}
	o.syncFromCamera()
	return o
}

// SetTarget moves the orbit centre, keeping the camera where it is.
func (o *OrbitControls) SetTarget(x, y, z float64) {
	o.Target = mgl64.Vec3{x, y, z}
	o.syncFromCamera()
}

func (o *OrbitControls) syncFromCamera() {
	p := o.camera.GetPosition()
	offset := mgl64.Vec3{p.X, p.Y, p.Z}.Sub(o.Target)
	o.radius = offset.Len()
	if o.radius == 0 {
		o.theta, o.phi = 0, math.Pi/2
		return
	}
	o.theta = math.Atan2(offset.X(), offset.Z())
	o.phi = math.Acos(clampFloat(offset.Y()/o.radius, -1, 1))
}

// Distance returns the camera's distance from the target.
func (o *OrbitControls) Distance() float64 {
	return o.radius
}

// Angles returns the azimuth and polar angles in radians.
func (o *OrbitControls) Angles() (theta, phi float64) {
	return o.theta, o.phi
}

// Rotate orbits by a mouse movement of dx, dy pixels on a screen of the given
// height. A full screen height drag is a full turn.
func (o *OrbitControls) Rotate(dx, dy, screenHeight float64) {
	if screenHeight <= 0 {
		return
	}
	o.theta -= 2 * math.Pi * dx / screenHeight * o.RotateSpeed
	o.phi -= 2 * math.Pi * dy / screenHeight * o.RotateSpeed
	o.phi = clampFloat(o.phi, minPolarAngle, math.Pi-minPolarAngle)
}

// Zoom scales the distance to the target. Positive steps move closer.
func (o *OrbitControls) Zoom(steps float64) {
	scale := math.Pow(0.95, o.ZoomSpeed*steps)
	o.radius = clampFloat(o.radius*scale, o.MinDistance, o.MaxDistance)
}

// Update moves the camera to the orbit position and points it at the target.
func (o *OrbitControls) Update() {
	sinPhi := math.Sin(o.phi)
	offset := mgl64.Vec3{
		o.radius * sinPhi * math.Sin(o.theta),
		o.radius * math.Cos(o.phi),
		o.radius * sinPhi * math.Cos(o.theta),
	}
	pos := o.Target.Add(offset)
	o.camera.SetCameraPosition(pos.X(), pos.Y(), pos.Z())
	o.camera.LookAt(o.Target.X(), o.Target.Y(), o.Target.Z())
}

// HandleInput reads the mouse and applies drags and wheel movement.
func (o *OrbitControls) HandleInput(screenHeight int) {
	if !o.Enabled {
		o.dragging = false
		return
	}
	changed := false

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		o.dragging = true
		o.lastX, o.lastY = ebiten.CursorPosition()
	}
	if o.dragging {
		x, y := ebiten.CursorPosition()
		if x != o.lastX || y != o.lastY {
			o.Rotate(float64(x-o.lastX), float64(y-o.lastY), float64(screenHeight))
			changed = true
		}
		o.lastX, o.lastY = x, y
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		o.dragging = false
	}

	if _, wy := ebiten.Wheel(); wy != 0 {
		o.Zoom(wy)
		changed = true
	}

	if changed {
		o.Update()
	}
}
