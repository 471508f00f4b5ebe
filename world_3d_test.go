package gosie3d

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorldObjects(t *testing.T) {
	w := NewWorld()
	a := NewBox(1, 1, 1, colWhite)
	b := NewBox(1, 1, 1, colWhite)

	idA := w.AddObject(a)
	idB := w.AddObject(b)
	assert.NotEqual(t, idA, idB)
	assert.Equal(t, 2, w.ObjectCount())

	got, ok := w.Object(idB)
	require.True(t, ok)
	assert.Same(t, b, got)

	assert.True(t, w.Remove(idA))
	assert.False(t, w.Remove(idA))
	assert.Equal(t, 1, w.ObjectCount())
	_, ok = w.Object(idA)
	assert.False(t, ok)

	// ids are not reused
	idC := w.AddObject(NewBox(1, 1, 1, colWhite))
	assert.NotEqual(t, idA, idC)
}

func TestWorldSortsFarthestFirst(t *testing.T) {
	w := NewWorld()
	near := NewBox(1, 1, 1, colWhite)
	far := NewBox(1, 1, 1, colWhite)
	far.SetPosition(0, 0, -20)
	w.AddObject(near)
	w.AddObject(far)

	cam := lookingAtOrigin(0, 0, 10)
	sorted := w.sortedObjects(cam.GetMatrix())
	require.Len(t, sorted, 2)
	assert.Same(t, far, sorted[0])
	assert.Same(t, near, sorted[1])
}

func TestWorldLights(t *testing.T) {
	w := NewWorld()
	s := NewSpotLight(colWhite, 1)
	w.AddSpotLight(s)
	w.SetAmbientLight(NewAmbientLight(colWhite))
	assert.Equal(t, []*SpotLight{s}, w.SpotLights())
}

func groundPlane() *Model {
	p := NewPlaneMesh(30, 30, 1, 1, colWhite)
	p.SetRotation(-0.5*math.Pi, 0, 0)
	p.SetDrawAllFaces(true)
	p.SetReceiveShadow(true)
	return p
}

func TestReceiverWorldBounds(t *testing.T) {
	min, max, ok := groundPlane().worldBounds()
	require.True(t, ok)
	assert.InDelta(t, -15, min[0], 1e-9)
	assert.InDelta(t, 15, max[0], 1e-9)
	assert.InDelta(t, -15, min[2], 1e-9)
	assert.InDelta(t, 15, max[2], 1e-9)
	assert.InDelta(t, 0, max[1], 1e-9)
}

func TestPaintShadow(t *testing.T) {
	min, max, ok := groundPlane().worldBounds()
	require.True(t, ok)
	area := shadowArea{minX: min[0], maxX: max[0], minZ: min[2], maxZ: max[2], planeY: max[1]}

	cam := lookingAtOrigin(-10, 30, 30)
	light := NewVector3(0, 50, 0)

	sphere := NewSphere(2, 8, 6, colWhite)
	sphere.SetPosition(0, 5, 0)
	rc, b := newTestContext(cam)
	sphere.paintShadow(rc, cam.GetMatrix(), light, area)
	assert.Positive(t, b.PolygonCount(), "faces towards the light cast a shadow")
	assert.Less(t, b.PolygonCount(), sphere.FaceCount())

	// below the receiver nothing is cast
	b.ResetCounters()
	sphere.SetPosition(0, -10, 0)
	sphere.paintShadow(rc, cam.GetMatrix(), light, area)
	assert.Zero(t, b.PolygonCount())

	// off the edge of the receiver the shadow is clipped away
	b.ResetCounters()
	sphere.SetPosition(100, 5, 0)
	sphere.paintShadow(rc, cam.GetMatrix(), light, area)
	assert.Zero(t, b.PolygonCount())
}
