package gosie3d

import (
	"image"
	"image/color"
	"math"
	"sort"

	"github.com/anthonynsimon/bild/transform"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kamstrup/intmap"
)

// ObjectID identifies a model added to a World.
type ObjectID uint32

const defaultShadowOpacity = 0.35

var shadowColor = color.RGBA{A: 255}

// World is the scene graph: models, line helpers, lights, fog and the
// background.
type World struct {
	objects   *intmap.Map[ObjectID, *Model]
	order     []ObjectID
	nextID    ObjectID
	drawFirst []*Model
	lines     []*LineSet

	ambient *AmbientLight
	spots   []*SpotLight
	Fog     *FogExp2

	Background       color.RGBA
	backgroundImage  image.Image
	backgroundScaled *ebiten.Image

	ShadowOpacity float64
	shadowLayer   *ebiten.Image

	batcher       *PolygonBatcher
	shadowBatcher *PolygonBatcher
	sortBuf       []*Model
}

func NewWorld() *World {
	return &World{
		objects:       intmap.New[ObjectID, *Model](16),
		Background:    color.RGBA{A: 255},
		ShadowOpacity: defaultShadowOpacity,
		batcher:       NewPolygonBatcher(),
		shadowBatcher: NewPolygonBatcher(),
	}
}

// AddObject adds a model that is depth sorted with the other objects.
func (w *World) AddObject(obj *Model) ObjectID {
	w.nextID++
	id := w.nextID
	w.objects.Put(id, obj)
	w.order = append(w.order, id)
	return id
}

// AddObjectDrawFirst adds a model painted before everything else, such as the
// ground.
func (w *World) AddObjectDrawFirst(obj *Model) {
	w.drawFirst = append(w.drawFirst, obj)
}

func (w *World) Object(id ObjectID) (*Model, bool) {
	return w.objects.Get(id)
}

// Remove takes an object out of the world. It reports whether it was there.
func (w *World) Remove(id ObjectID) bool {
	if !w.objects.Del(id) {
		return false
	}
	for i, o := range w.order {
		if o == id {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	return true
}

// ObjectCount returns the number of depth sorted objects.
func (w *World) ObjectCount() int {
	return w.objects.Len()
}

func (w *World) AddLines(l *LineSet) {
	w.lines = append(w.lines, l)
}

func (w *World) SetAmbientLight(a *AmbientLight) {
	w.ambient = a
}

func (w *World) AddSpotLight(s *SpotLight) {
	w.spots = append(w.spots, s)
}

func (w *World) SpotLights() []*SpotLight {
	return w.spots
}

// SetBackgroundImage stretches img over the whole screen behind the scene.
// nil goes back to the plain Background color.
func (w *World) SetBackgroundImage(img image.Image) {
	w.backgroundImage = img
	if w.backgroundScaled != nil {
		w.backgroundScaled.Deallocate()
		w.backgroundScaled = nil
	}
}

// Stats returns the polygons and lines added during the last Render.
func (w *World) Stats() (polygons, lines int) {
	return w.batcher.PolygonCount() + w.shadowBatcher.PolygonCount(), w.batcher.LineCount()
}

// Render paints the scene as seen by cam.
func (w *World) Render(screen *ebiten.Image, cam *Camera) {
	width, height := screen.Bounds().Dx(), screen.Bounds().Dy()
	w.paintBackground(screen, width, height)

	camMatrix := cam.GetMatrix()
	lighting := NewLighting(camMatrix, w.ambient, w.spots, w.Fog)

	w.batcher.ResetCounters()
	w.shadowBatcher.ResetCounters()
	w.batcher.Begin(screen)
	rc := newRenderContext(w.batcher, lighting, cam, width, height)

	for _, obj := range w.drawFirst {
		obj.paint(rc, camMatrix)
	}
	w.batcher.Flush()

	w.paintShadows(screen, cam, width, height)

	for _, l := range w.lines {
		l.paint(rc, camMatrix)
	}

	for _, obj := range w.sortedObjects(camMatrix) {
		obj.paint(rc, camMatrix)
	}
	w.batcher.Flush()
}

// sortedObjects returns the objects farthest from the camera first.
func (w *World) sortedObjects(camMatrix *Matrix) []*Model {
	w.sortBuf = w.sortBuf[:0]
	for _, id := range w.order {
		if obj, ok := w.objects.Get(id); ok {
			w.sortBuf = append(w.sortBuf, obj)
		}
	}
	sort.SliceStable(w.sortBuf, func(i, j int) bool {
		return w.sortBuf[i].cameraDepth(camMatrix) > w.sortBuf[j].cameraDepth(camMatrix)
	})
	return w.sortBuf
}

func (w *World) paintBackground(screen *ebiten.Image, width, height int) {
	if w.backgroundImage == nil {
		screen.Fill(w.Background)
		return
	}
	if w.backgroundScaled == nil || w.backgroundScaled.Bounds().Dx() != width || w.backgroundScaled.Bounds().Dy() != height {
		if w.backgroundScaled != nil {
			w.backgroundScaled.Deallocate()
		}
		w.backgroundScaled = ebiten.NewImageFromImage(transform.Resize(w.backgroundImage, width, height, transform.Linear))
	}
	screen.DrawImage(w.backgroundScaled, nil)
}

// paintShadows projects every shadow caster onto each receiver from each spot
// light that casts shadows.
func (w *World) paintShadows(screen *ebiten.Image, cam *Camera, width, height int) {
	var casters, receivers []*Model
	for _, obj := range w.drawFirst {
		if obj.ReceiveShadow() {
			receivers = append(receivers, obj)
		}
	}
	for _, id := range w.order {
		obj, _ := w.objects.Get(id)
		if obj.ReceiveShadow() {
			receivers = append(receivers, obj)
		}
		if obj.CastShadow() {
			casters = append(casters, obj)
		}
	}
	if len(casters) == 0 || len(receivers) == 0 {
		return
	}

	if w.shadowLayer == nil || w.shadowLayer.Bounds().Dx() != width || w.shadowLayer.Bounds().Dy() != height {
		if w.shadowLayer != nil {
			w.shadowLayer.Deallocate()
		}
		w.shadowLayer = ebiten.NewImage(width, height)
	}

	camMatrix := cam.GetMatrix()
	rc := newRenderContext(w.shadowBatcher, nil, cam, width, height)

	for _, receiver := range receivers {
		min, max, ok := receiver.worldBounds()
		if !ok {
			continue
		}
		area := shadowArea{minX: min[0], maxX: max[0], minZ: min[2], maxZ: max[2], planeY: max[1]}

		for _, light := range w.spots {
			if !light.CastShadow || light.Intensity <= 0 {
				continue
			}
			w.shadowLayer.Clear()
			w.shadowBatcher.Begin(w.shadowLayer)

			strength := 0.0
			for _, caster := range casters {
				if caster == receiver {
					continue
				}
				cone := light.ConeFactorAt(caster.GetPosition().Vector())
				if cone == 0 {
					continue
				}
				caster.paintShadow(rc, camMatrix, light.Position, area)
				strength = math.Max(strength, cone)
			}
			w.shadowBatcher.Flush()

			if strength > 0 {
				op := &ebiten.DrawImageOptions{}
				op.ColorScale.ScaleAlpha(float32(w.ShadowOpacity * strength))
				screen.DrawImage(w.shadowLayer, op)
			}
		}
	}
}

// shadowArea is the horizontal rectangle a receiver occupies in world space.
type shadowArea struct {
	minX, maxX float64
	minZ, maxZ float64
	planeY     float64
}

// worldBounds returns the receiver's axis aligned bounds in world space.
func (o *Model) worldBounds() (min, max [3]float64, ok bool) {
	if o.faceMesh == nil || o.faceMesh.Len() == 0 {
		return min, max, false
	}
	for i := 0; i < 3; i++ {
		min[i] = math.Inf(1)
		max[i] = math.Inf(-1)
	}
	world := o.WorldMatrix()
	for _, p := range o.faceMesh.Points.ThisMatrix {
		x, y, z := world.TransformPoint(p[0], p[1], p[2])
		for i, v := range [3]float64{x, y, z} {
			min[i] = math.Min(min[i], v)
			max[i] = math.Max(max[i], v)
		}
	}
	return min, max, true
}

const shadowEpsilon = 1e-6

// paintShadow projects the faces lit by light onto the receiver's plane and
// paints them in shadowColor.
func (o *Model) paintShadow(rc *renderContext, camMatrix *Matrix, light *Vector3, area shadowArea) {
	if o.faceMesh == nil {
		return
	}
	world := o.WorldMatrix()
	toLight := NewVector3(0, 0, 0)

	o.eachFace(func(indices []int, normalIndex int, _ color.RGBA) {
		if len(indices) < 3 {
			return
		}
		n := o.normalMesh.Points.ThisMatrix[normalIndex]
		wn := world.RotateVector3(NewVector3(n[0], n[1], n[2]))
		p0 := o.faceMesh.Points.ThisMatrix[indices[0]]
		x0, y0, z0 := world.TransformPoint(p0[0], p0[1], p0[2])
		toLight.X, toLight.Y, toLight.Z = light.X-x0, light.Y-y0, light.Z-z0
		if Dot(wn, toLight) <= 0 && !o.drawAllFaces {
			return
		}

		projected := make([][]float64, 0, len(indices))
		for _, idx := range indices {
			p := o.faceMesh.Points.ThisMatrix[idx]
			x, y, z := world.TransformPoint(p[0], p[1], p[2])
			if light.Y-y <= shadowEpsilon || y < area.planeY {
				return
			}
			t := (light.Y - area.planeY) / (light.Y - y)
			projected = append(projected, []float64{
				light.X + (x-light.X)*t,
				area.planeY,
				light.Z + (z-light.Z)*t,
				1,
			})
		}

		projected = clipPolygonAxis(projected, 0, area.minX, true)
		projected = clipPolygonAxis(projected, 0, area.maxX, false)
		projected = clipPolygonAxis(projected, 2, area.minZ, true)
		projected = clipPolygonAxis(projected, 2, area.maxZ, false)
		if len(projected) < 3 {
			return
		}

		for _, p := range projected {
			p[0], p[1], p[2] = camMatrix.TransformPoint(p[0], p[1], p[2])
		}
		rc.paintPolygon(projected, nil, shadowColor, faceStyle{})
	})
}
