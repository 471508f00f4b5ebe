package gosie3d

import "image/color"

// renderContext carries what painting needs for one pass over the scene.
type renderContext struct {
	batcher  *PolygonBatcher
	lighting *Lighting
	focal    float64
	cx, cy   float64
	near     float64

	xp, yp []float32
}

func newRenderContext(batcher *PolygonBatcher, lighting *Lighting, cam *Camera, width, height int) *renderContext {
	return &renderContext{
		batcher:  batcher,
		lighting: lighting,
		focal:    cam.FocalLength(float64(height)),
		cx:       float64(width) / 2,
		cy:       float64(height) / 2,
		near:     cam.Near,
		xp:       make([]float32, 0, 16),
		yp:       make([]float32, 0, 16),
	}
}

// project converts camera space points in front of the near plane to screen
// coordinates. The returned slices are reused by the next call.
func (rc *renderContext) project(points [][]float64) ([]float32, []float32) {
	rc.xp, rc.yp = rc.xp[:0], rc.yp[:0]
	for _, p := range points {
		x, y := ConvertToScreen(rc.focal, rc.cx, rc.cy, p[0], p[1], p[2])
		rc.xp = append(rc.xp, x)
		rc.yp = append(rc.yp, y)
	}
	return rc.xp, rc.yp
}

// paintPolygon clips, shades and adds one face. normal must face the viewer.
func (rc *renderContext) paintPolygon(points [][]float64, normal []float64, col color.RGBA, style faceStyle) {
	clipped := clipPolygonAgainstNearPlane(points, rc.near)
	if len(clipped) < 3 {
		return
	}
	xp, yp := rc.project(clipped)

	shaded := col
	if rc.lighting != nil {
		shaded = rc.lighting.Shade(col, midpoint(points), normal, style.unlit)
	}

	switch {
	case style.linesOnly:
		rc.batcher.AddOutline(xp, yp, shaded, 1.0)
	case style.noOutlines:
		rc.batcher.AddPolygon(xp, yp, shaded)
	default:
		// an outline in the fill color hides the seams between faces
		rc.batcher.AddPolygonAndOutline(xp, yp, shaded, shaded, 0.5)
	}
}

// paintLine adds a camera space segment, trimmed to the near plane.
func (rc *renderContext) paintLine(a, b []float64, col color.RGBA, width float32) {
	a, b, ok := clipLineAgainstNearPlane(a, b, rc.near)
	if !ok {
		return
	}
	x0, y0 := ConvertToScreen(rc.focal, rc.cx, rc.cy, a[0], a[1], a[2])
	x1, y1 := ConvertToScreen(rc.focal, rc.cx, rc.cy, b[0], b[1], b[2])
	rc.batcher.AddLine(x0, y0, x1, y1, col, width)
}

type faceStyle struct {
	unlit      bool
	linesOnly  bool
	noOutlines bool
}

func midpoint(points [][]float64) []float64 {
	mid := []float64{0, 0, 0, 1}
	for _, p := range points {
		mid[0] += p[0]
		mid[1] += p[1]
		mid[2] += p[2]
	}
	n := float64(len(points))
	mid[0] /= n
	mid[1] /= n
	mid[2] /= n
	return mid
}
