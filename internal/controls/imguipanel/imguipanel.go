// Package imguipanel draws a controls.Panel with Dear ImGui on top of the
// ebiten screen.
package imguipanel

import (
	"log"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/smasonuk/gosie3d/internal/controls"
)

// Panel wraps the ImGui ebiten backend. Call BeginFrame and EndFrame around
// Build in Update, Draw in Draw and Layout in Layout.
type Panel struct {
	backend *ebitenbackend.EbitenBackend
	panel   *controls.Panel
	title   string
}

// New creates the backend and its window. Only one may exist per process.
func New(panel *controls.Panel, title string, width, height int) *Panel {
	backend := ebitenbackend.NewEbitenBackend()
	backend.CreateWindow(title, width, height)
	imgui.CurrentIO().SetIniFilename("")
	return &Panel{backend: backend, panel: panel, title: "Controls"}
}

func (p *Panel) BeginFrame() { p.backend.BeginFrame() }
func (p *Panel) EndFrame()   { p.backend.EndFrame() }

func (p *Panel) Draw(screen *ebiten.Image) {
	p.backend.Draw(screen)
}

func (p *Panel) Layout(outsideWidth, outsideHeight int) {
	p.backend.Layout(outsideWidth, outsideHeight)
}

// WantCaptureMouse reports whether the mouse is over a widget, so camera
// controls should ignore it.
func (p *Panel) WantCaptureMouse() bool {
	return imgui.CurrentIO().WantCaptureMouse()
}

// Build lays out one widget per control and routes edits through
// controls.Panel.Set.
func (p *Panel) Build() {
	imgui.SetNextWindowPosV(imgui.NewVec2(10, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(280, 190), imgui.CondOnce)
	if !imgui.BeginV(p.title, nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	for _, c := range p.panel.Controls() {
		var changed bool
		var value any

		switch c.Kind {
		case controls.KindColor:
			col, err := colorful.Hex(c.Value().(string))
			if err != nil {
				col = colorful.Color{}
			}
			rgb := [3]float32{float32(col.R), float32(col.G), float32(col.B)}
			if imgui.ColorEdit3(c.Name, &rgb) {
				changed = true
				value = colorful.Color{R: float64(rgb[0]), G: float64(rgb[1]), B: float64(rgb[2])}.Clamped().Hex()
			}
		case controls.KindBool:
			b := c.Value().(bool)
			if imgui.Checkbox(c.Name, &b) {
				changed, value = true, b
			}
		case controls.KindRange:
			f := float32(c.Value().(float64))
			if imgui.SliderFloat(c.Name, &f, float32(c.Min), float32(c.Max)) {
				changed, value = true, float64(f)
			}
		}

		if changed {
			if err := p.panel.Set(c.Name, value); err != nil {
				log.Printf("control %s: %v", c.Name, err)
			}
		}
	}
	imgui.End()
}
