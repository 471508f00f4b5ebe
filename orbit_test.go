package gosie3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrbitControlsKeepsCameraWhereItIs(t *testing.T) {
	cam := lookingAtOrigin(-10, 30, 30)
	o := NewOrbitControls(cam)
	assert.InDelta(t, math.Sqrt(100+900+900), o.Distance(), 1e-9)

	o.Update()
	p := cam.GetPosition()
	assertPoint(t, [3]float64{-10, 30, 30}, p.X, p.Y, p.Z)
}

func TestOrbitControlsRotate(t *testing.T) {
	cam := lookingAtOrigin(0, 0, 10)
	o := NewOrbitControls(cam)
	theta, phi := o.Angles()
	assert.InDelta(t, 0, theta, 1e-9)
	assert.InDelta(t, math.Pi/2, phi, 1e-9)

	// a quarter of the screen height is a quarter turn
	o.Rotate(-150, 0, 600)
	o.Update()
	p := cam.GetPosition()
	assertPoint(t, [3]float64{10, 0, 0}, p.X, p.Y, p.Z)

	// dragging far down stops just short of the pole
	o.Rotate(0, 10000, 600)
	_, phi = o.Angles()
	assert.InDelta(t, minPolarAngle, phi, 1e-12)
	o.Update()
	assert.Less(t, cam.GetPosition().Y, 10.0)
	assert.Greater(t, cam.GetPosition().Y, 9.99)
}

func TestOrbitControlsZoom(t *testing.T) {
	cam := lookingAtOrigin(0, 0, 10)
	o := NewOrbitControls(cam)

	o.Zoom(1)
	assert.InDelta(t, 9.5, o.Distance(), 1e-9)

	o.MinDistance = 5
	o.Zoom(100)
	assert.Equal(t, 5.0, o.Distance())

	o.MaxDistance = 20
	o.Zoom(-100)
	assert.Equal(t, 20.0, o.Distance())
}

func TestOrbitControlsSetTarget(t *testing.T) {
	cam := lookingAtOrigin(0, 0, 10)
	o := NewOrbitControls(cam)
	o.SetTarget(0, 0, 5)
	assert.InDelta(t, 5, o.Distance(), 1e-9)

	o.Update()
	tg := cam.GetTarget()
	assertPoint(t, [3]float64{0, 0, 5}, tg.X, tg.Y, tg.Z)
}
