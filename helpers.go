package gosie3d

import (
	"image/color"
	"math"
)

type lineSegment struct {
	a, b []float64
	col  color.RGBA
}

// LineSet is a collection of coloured 3D line segments, used for grids, axes
// and light helpers. Lines are not lit and do not take part in face sorting.
type LineSet struct {
	segments []lineSegment
	position *Point3d
	Width    float32
	Visible  bool

	pa, pb []float64 // temp buffers
}

func NewLineSet() *LineSet {
	return &LineSet{
		position: NewPoint3d(0, 0, 0),
		Width:    1,
		Visible:  true,
		pa:       make([]float64, 4),
		pb:       make([]float64, 4),
	}
}

func (l *LineSet) AddLine(x0, y0, z0, x1, y1, z1 float64, col color.RGBA) {
	l.segments = append(l.segments, lineSegment{
		a:   []float64{x0, y0, z0, 1},
		b:   []float64{x1, y1, z1, 1},
		col: col,
	})
}

func (l *LineSet) Clear() {
	l.segments = l.segments[:0]
}

func (l *LineSet) LineCount() int {
	return len(l.segments)
}

func (l *LineSet) SetPosition(x, y, z float64) {
	l.position = NewPoint3d(x, y, z)
}

func (l *LineSet) GetPosition() *Point3d {
	return l.position
}

func (l *LineSet) paint(rc *renderContext, camMatrix *Matrix) {
	if !l.Visible {
		return
	}
	m := camMatrix.MultiplyBy(TransMatrix(l.position.X, l.position.Y, l.position.Z))
	for _, s := range l.segments {
		l.pa[0], l.pa[1], l.pa[2] = m.TransformPoint(s.a[0], s.a[1], s.a[2])
		l.pb[0], l.pb[1], l.pb[2] = m.TransformPoint(s.b[0], s.b[1], s.b[2])
		rc.paintLine(l.pa, l.pb, s.col, l.Width)
	}
}

var (
	gridCentreColor = color.RGBA{R: 0x44, G: 0x44, B: 0x44, A: 255}
	gridColor       = color.RGBA{R: 0x88, G: 0x88, B: 0x88, A: 255}
)

// NewGridHelper returns a size x size grid on the XZ plane with divisions
// cells along each side.
func NewGridHelper(size float64, divisions int) *LineSet {
	divisions = max(divisions, 1)
	l := NewLineSet()
	half := size / 2
	step := size / float64(divisions)
	centre := divisions / 2

	for i := 0; i <= divisions; i++ {
		k := -half + float64(i)*step
		col := gridColor
		if i == centre && divisions%2 == 0 {
			col = gridCentreColor
		}
		l.AddLine(-half, 0, k, half, 0, k, col)
		l.AddLine(k, 0, -half, k, 0, half, col)
	}
	return l
}

// NewAxesHelper returns the X, Y and Z axes in red, green and blue.
func NewAxesHelper(size float64) *LineSet {
	l := NewLineSet()
	l.Width = 2
	l.AddLine(0, 0, 0, size, 0, 0, color.RGBA{R: 255, A: 255})
	l.AddLine(0, 0, 0, 0, size, 0, color.RGBA{G: 255, A: 255})
	l.AddLine(0, 0, 0, 0, 0, size, color.RGBA{B: 255, A: 255})
	return l
}

const spotHelperSegments = 32

// SpotLightHelper draws the cone of a spot light. Call Update after the light
// changes.
type SpotLightHelper struct {
	*LineSet
	light *SpotLight
}

func NewSpotLightHelper(light *SpotLight) *SpotLightHelper {
	h := &SpotLightHelper{LineSet: NewLineSet(), light: light}
	h.Update()
	return h
}

// Update rebuilds the cone from the light's position, target and angle. The
// cone reaches as far as the target.
func (h *SpotLightHelper) Update() {
	h.Clear()
	s := h.light
	apex := s.Position
	dir := s.Direction()
	length := apex.DistanceTo(s.Target)
	if length == 0 {
		return
	}
	radius := length * math.Tan(math.Min(s.Angle, math.Pi/2-1e-3))

	// two unit vectors perpendicular to the cone axis
	ref := NewVector3(0, 1, 0)
	if math.Abs(dir.Y) > 0.99 {
		ref = NewVector3(1, 0, 0)
	}
	u := Cross(dir, ref)
	u.Normalize()
	v := Cross(dir, u)
	v.Normalize()

	rim := func(i int) (float64, float64, float64) {
		a := 2 * math.Pi * float64(i) / spotHelperSegments
		ca, sa := math.Cos(a)*radius, math.Sin(a)*radius
		return apex.X + dir.X*length + u.X*ca + v.X*sa,
			apex.Y + dir.Y*length + u.Y*ca + v.Y*sa,
			apex.Z + dir.Z*length + u.Z*ca + v.Z*sa
	}

	for i := 0; i < spotHelperSegments; i++ {
		x0, y0, z0 := rim(i)
		x1, y1, z1 := rim(i + 1)
		h.AddLine(x0, y0, z0, x1, y1, z1, s.Color)
		if i%(spotHelperSegments/4) == 0 {
			h.AddLine(apex.X, apex.Y, apex.Z, x0, y0, z0, s.Color)
		}
	}
}
