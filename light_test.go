package gosie3d

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmoothstep(t *testing.T) {
	testCases := []struct {
		name         string
		low, high, x float64
		expected     float64
	}{
		{"below", 0, 1, -1, 0},
		{"above", 0, 1, 2, 1},
		{"middle", 0, 1, 0.5, 0.5},
		{"quarter", 0, 1, 0.25, 0.15625},
		{"hard edge inside", 0.5, 0.5, 0.6, 1},
		{"hard edge outside", 0.5, 0.5, 0.4, 0},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := smoothstep(tc.low, tc.high, tc.x); !almostEqual(got, tc.expected) {
				t.Errorf("smoothstep() = %v, want %v", got, tc.expected)
			}
		})
	}
}

func TestSpotLightCone(t *testing.T) {
	s := NewSpotLight(colWhite, 1)
	s.SetAngle(0.2)

	assert.Equal(t, 1.0, s.ConeFactor(math.Cos(0.1)))
	assert.Equal(t, 0.0, s.ConeFactor(math.Cos(0.3)))

	s.SetPenumbra(1)
	f := s.ConeFactor(math.Cos(0.1))
	assert.Greater(t, f, 0.0)
	assert.Less(t, f, 1.0)
	assert.Equal(t, 1.0, s.ConeFactor(1))
}

func TestSpotLightConeFactorAt(t *testing.T) {
	s := NewSpotLight(colWhite, 1)
	s.SetPosition(0, 10, 0)
	s.SetAngle(0.2)

	assert.Equal(t, 1.0, s.ConeFactorAt(NewVector3(0, 0, 0)))
	assert.Equal(t, 0.0, s.ConeFactorAt(NewVector3(10, 0, 0)))
	assert.Equal(t, 1.0, s.ConeFactorAt(NewVector3(0, 10, 0)))
}

func TestSpotLightFalloff(t *testing.T) {
	s := NewSpotLight(colWhite, 1)
	assert.InDelta(t, 0.01, s.distanceFalloff(10), 1e-12)
	assert.InDelta(t, 100, s.distanceFalloff(0), 1e-12, "capped near the light")

	s.Distance = 20
	assert.Zero(t, s.distanceFalloff(20))
	assert.Less(t, s.distanceFalloff(10), 0.01)
}

func TestFogFactor(t *testing.T) {
	fog := NewFogExp2(colWhite, 0.01)
	assert.Zero(t, fog.Factor(0))
	assert.InDelta(t, 1-math.Exp(-1), fog.Factor(100), 1e-12)
}

func TestShadeAmbientOnly(t *testing.T) {
	l := NewLighting(IdentMatrix(), NewAmbientLight(color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}), nil, nil)
	got := l.Shade(colWhite, []float64{0, 0, 10}, []float64{0, 0, -1}, false)
	assert.Equal(t, color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}, got)

	half := color.RGBA{R: 10, G: 20, B: 30, A: 128}
	assert.Equal(t, half, l.Shade(half, []float64{0, 0, 10}, []float64{0, 0, -1}, true), "unlit keeps its color")
}

func TestShadeSpotLight(t *testing.T) {
	spot := NewSpotLight(colWhite, 100*math.Pi)
	spot.SetPosition(0, 10, 0)
	spot.SetAngle(0.2)

	point := []float64{0, 0, 0}
	up := []float64{0, 1, 0}

	l := NewLighting(IdentMatrix(), nil, []*SpotLight{spot}, nil)
	assert.Equal(t, 1, l.Spots())
	assert.Equal(t, colWhite, l.Shade(colWhite, point, up, false))

	// outside the cone
	dark := l.Shade(colWhite, []float64{10, 0, 0}, up, false)
	assert.Equal(t, color.RGBA{A: 255}, dark)

	// facing away
	dark = l.Shade(colWhite, point, []float64{0, -1, 0}, false)
	assert.Equal(t, color.RGBA{A: 255}, dark)

	spot.SetIntensity(50 * math.Pi)
	l = NewLighting(IdentMatrix(), nil, []*SpotLight{spot}, nil)
	got := l.Shade(colWhite, point, up, false)
	assert.InDelta(t, 128, int(got.R), 1)
}

func TestShadeInCameraSpace(t *testing.T) {
	spot := NewSpotLight(colWhite, 100*math.Pi)
	spot.SetPosition(0, 10, 0)

	cam := lookingAtOrigin(0, 0, 10)
	l := NewLighting(cam.GetMatrix(), nil, []*SpotLight{spot}, nil)

	x, y, z := cam.ToCamera(0, 0, 0)
	n := cam.GetMatrix().RotateVector3(NewVector3(0, 1, 0))
	got := l.Shade(colWhite, []float64{x, y, z}, []float64{n.X, n.Y, n.Z}, false)
	assert.Equal(t, colWhite, got)
}

func TestShadeFog(t *testing.T) {
	fog := NewFogExp2(color.RGBA{A: 255}, 0.01)
	l := NewLighting(IdentMatrix(), nil, nil, fog)

	near := l.Shade(colWhite, []float64{0, 0, 0}, []float64{0, 0, -1}, true)
	assert.Equal(t, colWhite, near)

	far := l.Shade(colWhite, []float64{0, 0, 100}, []float64{0, 0, -1}, true)
	assert.InDelta(t, 255*math.Exp(-1), float64(far.R), 1)
	assert.Equal(t, far.R, far.G)
}
