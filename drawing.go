package gosie3d

import (
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var (
	whiteOnce sync.Once
	whiteSub  *ebiten.Image
)

func whiteSubImage() *ebiten.Image {
	whiteOnce.Do(func() {
		whiteImage := ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSub = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	})
	return whiteSub
}

// maxBatchVertices keeps indices inside uint16.
const maxBatchVertices = math.MaxUint16 - 1024

// PolygonBatcher collects polygons in paint order and draws them with as few
// DrawTriangles calls as possible.
type PolygonBatcher struct {
	vertices  []ebiten.Vertex
	indices   []uint16
	polygons  int
	lines     int
	target    *ebiten.Image
	antiAlias bool
}

func NewPolygonBatcher() *PolygonBatcher {
	return &PolygonBatcher{
		vertices:  make([]ebiten.Vertex, 0, 4096),
		indices:   make([]uint16, 0, 8192),
		antiAlias: true,
	}
}

// Begin sets the image that Flush draws to.
func (b *PolygonBatcher) Begin(target *ebiten.Image) {
	b.target = target
	b.reset()
}

func (b *PolygonBatcher) reset() {
	b.vertices = b.vertices[:0]
	b.indices = b.indices[:0]
}

// PolygonCount returns the number of polygons added since the last ResetCounters.
func (b *PolygonBatcher) PolygonCount() int { return b.polygons }

// LineCount returns the number of line segments added since the last ResetCounters.
func (b *PolygonBatcher) LineCount() int { return b.lines }

// ResetCounters zeroes the polygon and line counters.
func (b *PolygonBatcher) ResetCounters() {
	b.polygons = 0
	b.lines = 0
}

func (b *PolygonBatcher) ensureRoom(n int) {
	if len(b.vertices)+n > maxBatchVertices {
		b.Flush()
	}
}

func colorComponents(clr color.RGBA) (float32, float32, float32, float32) {
	return float32(clr.R) / 255.0, float32(clr.G) / 255.0, float32(clr.B) / 255.0, float32(clr.A) / 255.0
}

// AddPolygon adds a filled convex polygon.
func (b *PolygonBatcher) AddPolygon(xp, yp []float32, clr color.RGBA) {
	if len(xp) < 3 {
		return
	}
	b.polygons++
	b.ensureRoom(len(xp))

	cr, cg, cb, ca := colorComponents(clr)
	base := uint16(len(b.vertices))
	for i := range xp {
		b.vertices = append(b.vertices, ebiten.Vertex{
			DstX:   xp[i],
			DstY:   yp[i],
			SrcX:   1,
			SrcY:   1,
			ColorR: cr,
			ColorG: cg,
			ColorB: cb,
			ColorA: ca,
		})
	}
	for i := 2; i < len(xp); i++ {
		b.indices = append(b.indices, base, base+uint16(i-1), base+uint16(i))
	}
}

// AddOutline strokes the closed outline of a polygon.
func (b *PolygonBatcher) AddOutline(xp, yp []float32, clr color.RGBA, strokeWidth float32) {
	if len(xp) < 2 {
		return
	}
	var path vector.Path
	path.MoveTo(xp[0], yp[0])
	for i := 1; i < len(xp); i++ {
		path.LineTo(xp[i], yp[i])
	}
	path.Close()
	b.appendStroke(&path, clr, strokeWidth, len(xp))
}

func (b *PolygonBatcher) AddPolygonAndOutline(xp, yp []float32, fillClr, strokeClr color.RGBA, strokeWidth float32) {
	b.AddPolygon(xp, yp, fillClr)
	b.AddOutline(xp, yp, strokeClr, strokeWidth)
}

// AddLine strokes a single segment.
func (b *PolygonBatcher) AddLine(x0, y0, x1, y1 float32, clr color.RGBA, strokeWidth float32) {
	b.lines++
	var path vector.Path
	path.MoveTo(x0, y0)
	path.LineTo(x1, y1)
	b.appendStroke(&path, clr, strokeWidth, 2)
}

func (b *PolygonBatcher) appendStroke(path *vector.Path, clr color.RGBA, strokeWidth float32, points int) {
	b.ensureRoom(points*12 + 16)

	start := len(b.vertices)
	b.vertices, b.indices = path.AppendVerticesAndIndicesForStroke(b.vertices, b.indices, &vector.StrokeOptions{
		Width: strokeWidth,
	})

	cr, cg, cb, ca := colorComponents(clr)
	for i := start; i < len(b.vertices); i++ {
		b.vertices[i].SrcX = 1
		b.vertices[i].SrcY = 1
		b.vertices[i].ColorR = cr
		b.vertices[i].ColorG = cg
		b.vertices[i].ColorB = cb
		b.vertices[i].ColorA = ca
	}
}

// Flush draws everything collected so far onto the target image.
func (b *PolygonBatcher) Flush() {
	if b.target != nil && len(b.indices) > 0 {
		op := &ebiten.DrawTrianglesOptions{AntiAlias: b.antiAlias}
		b.target.DrawTriangles(b.vertices, b.indices, whiteSubImage(), op)
	}
	b.reset()
}

func clamp(value, min, max int) int {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}

func clampFloat(value, min, max float64) float64 {
	return math.Max(min, math.Min(max, value))
}
