package gosie3d

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertOutward checks every face normal points away from the origin.
func assertOutward(t *testing.T, o *Model) {
	t.Helper()
	for i := 0; i < o.theFaces.FaceCount(); i++ {
		f := o.theFaces.GetFace(i)
		assert.Positive(t, Dot(f.GetNormal(), f.GetMidPoint()), "face %d points inward", i)
	}
}

func TestNewBox(t *testing.T) {
	box := NewBox(1, 2, 3, colWhite)
	assert.Equal(t, 6, box.FaceCount())
	assert.Equal(t, 8, box.PointCount())
	assertOutward(t, box)

	x, y, z := box.GetExtents()
	assert.InDelta(t, 1, x, 1e-9)
	assert.InDelta(t, 2, y, 1e-9)
	assert.InDelta(t, 3, z, 1e-9)
}

func TestNewSphere(t *testing.T) {
	const w, h = 8, 6
	s := NewSphere(4, w, h, colWhite)
	assert.Equal(t, w*h, s.FaceCount())
	assertOutward(t, s)

	// poles plus one ring per inner latitude
	assert.Equal(t, 2+w*(h-1), s.PointCount())

	x, y, _ := s.GetExtents()
	assert.InDelta(t, 8, y, 1e-9)
	assert.LessOrEqual(t, x, 8.0+1e-9)
}

func TestNewPlaneMesh(t *testing.T) {
	p := NewPlaneMesh(30, 30, 3, 2, colWhite)
	assert.Equal(t, 6, p.FaceCount())
	assert.Equal(t, 12, p.PointCount())

	for i := 0; i < p.theFaces.FaceCount(); i++ {
		n := p.theFaces.GetFace(i).GetNormal()
		assertPoint(t, [3]float64{0, 0, 1}, n.X, n.Y, n.Z)
	}

	x, y, z := p.GetExtents()
	assert.InDelta(t, 30, x, 1e-9)
	assert.InDelta(t, 30, y, 1e-9)
	assert.Zero(t, z)
}

func TestPrimitiveSegmentsHaveMinimums(t *testing.T) {
	require.Equal(t, 1, NewPlaneMesh(1, 1, 0, -3, colWhite).FaceCount())
	require.Equal(t, 3*2, NewSphere(1, 0, 0, colWhite).FaceCount())
}
