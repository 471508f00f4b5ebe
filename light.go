package gosie3d

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

type AmbientLight struct {
	Color color.RGBA
}

func NewAmbientLight(col color.RGBA) *AmbientLight {
	return &AmbientLight{Color: col}
}

// SpotLight is a point light restricted to a cone around the direction from
// Position to Target.
type SpotLight struct {
	Color     color.RGBA
	Intensity float64
	Angle     float64 // half angle of the cone in radians
	Penumbra  float64 // fraction of the cone that fades out, 0..1
	Decay     float64
	Distance  float64 // cutoff distance, 0 for none

	Position   *Vector3
	Target     *Vector3
	CastShadow bool
}

func NewSpotLight(col color.RGBA, intensity float64) *SpotLight {
	return &SpotLight{
		Color:     col,
		Intensity: intensity,
		Angle:     math.Pi / 3,
		Decay:     2,
		Position:  NewVector3(0, 1, 0),
		Target:    NewVector3(0, 0, 0),
	}
}

func (s *SpotLight) SetPosition(x, y, z float64) {
	s.Position = NewVector3(x, y, z)
}

func (s *SpotLight) SetTarget(x, y, z float64) {
	s.Target = NewVector3(x, y, z)
}

func (s *SpotLight) SetAngle(angle float64) {
	s.Angle = angle
}

func (s *SpotLight) SetPenumbra(penumbra float64) {
	s.Penumbra = penumbra
}

func (s *SpotLight) SetIntensity(intensity float64) {
	s.Intensity = intensity
}

// Direction returns the unit vector from the light to its target.
func (s *SpotLight) Direction() *Vector3 {
	d := Subtract(s.Target, s.Position)
	d.Normalize()
	return d
}

// ConeFactor returns how much of the light reaches a direction whose angle to
// the cone axis has the given cosine.
func (s *SpotLight) ConeFactor(cosAngle float64) float64 {
	coneCos := math.Cos(s.Angle)
	penumbraCos := math.Cos(s.Angle * (1 - s.Penumbra))
	return smoothstep(coneCos, penumbraCos, cosAngle)
}

// ConeFactorAt is ConeFactor for the direction towards a world point.
func (s *SpotLight) ConeFactorAt(p *Vector3) float64 {
	toPoint := Subtract(p, s.Position)
	if toPoint.Length() == 0 {
		return 1
	}
	toPoint.Normalize()
	return s.ConeFactor(Dot(toPoint, s.Direction()))
}

// distanceFalloff is inverse power falloff, optionally faded to zero at
// Distance.
func (s *SpotLight) distanceFalloff(d float64) float64 {
	falloff := 1 / math.Max(math.Pow(d, s.Decay), 0.01)
	if s.Distance > 0 {
		r := clampFloat(1-math.Pow(d/s.Distance, 4), 0, 1)
		falloff *= r * r
	}
	return falloff
}

func smoothstep(low, high, x float64) float64 {
	if low == high {
		if x >= high {
			return 1
		}
		return 0
	}
	t := clampFloat((x-low)/(high-low), 0, 1)
	return t * t * (3 - 2*t)
}

// FogExp2 is exponential squared fog.
type FogExp2 struct {
	Color   color.RGBA
	Density float64
}

func NewFogExp2(col color.RGBA, density float64) *FogExp2 {
	return &FogExp2{Color: col, Density: density}
}

// Factor returns how much fog covers a point at the given depth, 0..1.
func (f *FogExp2) Factor(depth float64) float64 {
	return 1 - math.Exp(-f.Density*f.Density*depth*depth)
}

type cameraSpot struct {
	light    *SpotLight
	pos      []float64
	dir      []float64
	r, g, b  float64
	coneCos  float64
	penumCos float64
}

// Lighting is a snapshot of the scene's lights in camera space, taken once per
// frame.
type Lighting struct {
	ambR, ambG, ambB float64
	spots            []cameraSpot
	fog              *FogExp2
	fogColor         colorful.Color
}

func NewLighting(camMatrix *Matrix, ambient *AmbientLight, spots []*SpotLight, fog *FogExp2) *Lighting {
	l := &Lighting{fog: fog}
	if ambient != nil {
		l.ambR, l.ambG, l.ambB = unitRGB(ambient.Color)
	}
	for _, s := range spots {
		px, py, pz := camMatrix.TransformPoint(s.Position.X, s.Position.Y, s.Position.Z)
		d := camMatrix.RotateVector3(s.Direction())
		r, g, b := unitRGB(s.Color)
		l.spots = append(l.spots, cameraSpot{
			light:    s,
			pos:      []float64{px, py, pz},
			dir:      []float64{d.X, d.Y, d.Z},
			r:        r,
			g:        g,
			b:        b,
			coneCos:  math.Cos(s.Angle),
			penumCos: math.Cos(s.Angle * (1 - s.Penumbra)),
		})
	}
	if fog != nil {
		l.fogColor, _ = colorful.MakeColor(fog.Color)
	}
	return l
}

func unitRGB(c color.RGBA) (float64, float64, float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}

// Shade lights a face. point and normal are in camera space and the normal
// must face the viewer. Unlit faces keep their color and only take fog.
func (l *Lighting) Shade(base color.RGBA, point, normal []float64, unlit bool) color.RGBA {
	r, g, b := unitRGB(base)

	if !unlit {
		lr, lg, lb := l.ambR, l.ambG, l.ambB
		for i := range l.spots {
			s := &l.spots[i]
			lx, ly, lz := s.pos[0]-point[0], s.pos[1]-point[1], s.pos[2]-point[2]
			dist := math.Sqrt(lx*lx + ly*ly + lz*lz)
			if dist == 0 {
				continue
			}
			lx, ly, lz = lx/dist, ly/dist, lz/dist

			ndl := normal[0]*lx + normal[1]*ly + normal[2]*lz
			if ndl <= 0 {
				continue
			}
			cone := smoothstep(s.coneCos, s.penumCos, -(lx*s.dir[0] + ly*s.dir[1] + lz*s.dir[2]))
			if cone == 0 {
				continue
			}
			k := s.light.Intensity * cone * ndl * s.light.distanceFalloff(dist) / math.Pi
			lr += s.r * k
			lg += s.g * k
			lb += s.b * k
		}
		r, g, b = r*lr, g*lg, b*lb
	}

	c := colorful.Color{R: r, G: g, B: b}
	if l.fog != nil {
		c = c.Clamped().BlendRgb(l.fogColor, l.fog.Factor(point[2]))
	}
	cr, cg, cb := c.Clamped().RGB255()
	return color.RGBA{R: cr, G: cg, B: cb, A: base.A}
}

// Spots returns the number of spot lights in the snapshot.
func (l *Lighting) Spots() int {
	return len(l.spots)
}
