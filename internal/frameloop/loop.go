// Package frameloop advances the scene once per displayed frame: it bobs the
// tracked movers, copies the parameter set onto lights and surfaces, spins the
// spinners and asks for a render.
package frameloop

import (
	"image/color"
	"math"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/smasonuk/gosie3d"
	"github.com/smasonuk/gosie3d/internal/config"
)

// Mover is an object whose height follows the bob offset.
type Mover interface {
	GetPosition() *gosie3d.Point3d
	SetPosition(x, y, z float64)
}

// Spinner is an object rotated as a function of the frame time.
type Spinner interface {
	SetRotation(x, y, z float64)
}

// SpotLight receives the light parameters every tick.
type SpotLight interface {
	SetAngle(angle float64)
	SetPenumbra(penumbra float64)
	SetIntensity(intensity float64)
}

// Surface receives the color and wireframe parameters every tick.
type Surface interface {
	SetColor(col color.RGBA)
	SetDrawLinesOnly(only bool)
}

// Updater is refreshed after the lights change, like a light helper.
type Updater interface {
	Update()
}

// Renderer draws the scene. Render is called exactly once per tick.
type Renderer interface {
	Render()
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func()

func (f RendererFunc) Render() { f() }

// Frame is what the host passes to a tick. HasTime is false when the host has
// no timestamp for the frame.
type Frame struct {
	Elapsed time.Duration
	HasTime bool
}

// Loop holds the animation accumulator and the objects it drives. It must only
// be used from one goroutine.
type Loop struct {
	params    *config.Options
	amplitude float64
	step      float64

	movers   []Mover
	spinners []Spinner
	lights   []SpotLight
	surfaces []Surface
	updaters []Updater
	renderer Renderer

	lastHex string
	lastCol color.RGBA
}

func New(params *config.Options, amplitude float64, renderer Renderer) *Loop {
	return &Loop{
		params:    params,
		amplitude: amplitude,
		renderer:  renderer,
	}
}

func (l *Loop) AddMover(m Mover)         { l.movers = append(l.movers, m) }
func (l *Loop) AddSpinner(s Spinner)     { l.spinners = append(l.spinners, s) }
func (l *Loop) AddSpotLight(s SpotLight) { l.lights = append(l.lights, s) }
func (l *Loop) AddSurface(s Surface)     { l.surfaces = append(l.surfaces, s) }
func (l *Loop) AddUpdater(u Updater)     { l.updaters = append(l.updaters, u) }

// Step returns the accumulated animation step.
func (l *Loop) Step() float64 {
	return l.step
}

// Offset returns the current bob height.
func (l *Loop) Offset() float64 {
	return BobOffset(l.amplitude, l.step)
}

// BobOffset is the height of a bobbing object at the given step, always in
// [0, amplitude].
func BobOffset(amplitude, step float64) float64 {
	return amplitude * math.Abs(math.Sin(step))
}

// Tick advances the scene by one frame and renders it.
func (l *Loop) Tick(frame Frame) {
	p := l.params
	l.step += p.Speed

	offset := l.Offset()
	for _, m := range l.movers {
		pos := m.GetPosition()
		m.SetPosition(pos.X, offset, pos.Z)
	}

	for _, s := range l.lights {
		s.SetAngle(p.Angle)
		s.SetPenumbra(p.Penumbra)
		s.SetIntensity(p.Intensity)
	}
	for _, u := range l.updaters {
		u.Update()
	}

	if len(l.surfaces) > 0 {
		col := l.color(p.SphereColor)
		for _, s := range l.surfaces {
			s.SetColor(col)
			s.SetDrawLinesOnly(p.Wireframe)
		}
	}

	if frame.HasTime {
		r := frame.Elapsed.Seconds()
		for _, s := range l.spinners {
			s.SetRotation(r, r, 0)
		}
	}

	if l.renderer != nil {
		l.renderer.Render()
	}
}

// color parses the hex color, keeping the last good one when it does not
// parse.
func (l *Loop) color(hex string) color.RGBA {
	if hex == l.lastHex {
		return l.lastCol
	}
	c, err := colorful.Hex(hex)
	if err != nil {
		return l.lastCol
	}
	r, g, b := c.RGB255()
	l.lastHex = hex
	l.lastCol = color.RGBA{R: r, G: g, B: b, A: 255}
	return l.lastCol
}
