package app

import (
	"fmt"
	"image/color"
	"log"
	"math"

	"github.com/smasonuk/gosie3d"
	"github.com/smasonuk/gosie3d/internal/assets"
	"github.com/smasonuk/gosie3d/internal/config"
)

const (
	groundSize     = 30
	gridDivisions  = 10
	axesSize       = 5
	sphereRadius   = 4
	quadLightReach = 60
)

var (
	boxColor     = color.RGBA{R: 0x00, G: 0xff, B: 0x00, A: 255}
	groundColor  = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 255}
	ambientColor = color.RGBA{R: 0x33, G: 0x33, B: 0x33, A: 255}
	spotColor    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 255}
)

func (a *App) build() error {
	if err := a.buildEnvironment(); err != nil {
		return err
	}
	a.buildGround()
	if err := a.buildSphere(); err != nil {
		return err
	}

	switch a.cfg.Variant {
	case config.VariantBasic:
		a.buildBox()
		a.addSpot(-100, 100, 0)
	case config.VariantQuad:
		r := float64(quadLightReach)
		for _, p := range [][2]float64{{-r, -r}, {r, -r}, {-r, r}, {r, r}} {
			a.addSpot(p[0], r, p[1])
		}
	case config.VariantModel:
		if a.cfg.Scene.ModelPath == "" {
			return fmt.Errorf("%w: variant %q needs scene.model", config.ErrInvalid, a.cfg.Variant)
		}
		a.buildBox()
		a.addSpot(-100, 100, 0)
		a.LoadModel(a.cfg.Scene.ModelPath)
	}
	return nil
}

func (a *App) buildEnvironment() error {
	sc := a.cfg.Scene

	bg, err := parseColor(sc.BackgroundColor)
	if err != nil {
		return fmt.Errorf("%w: background %v", config.ErrInvalid, err)
	}
	a.world.Background = bg
	if sc.Background != "" {
		img, err := assets.LoadImage(sc.Background)
		if err != nil {
			// the scene still works without its backdrop
			log.Printf("Background: %v", err)
		} else {
			a.world.SetBackgroundImage(img)
		}
	}

	if sc.FogDensity > 0 {
		fc, err := parseColor(sc.FogColor)
		if err != nil {
			return fmt.Errorf("%w: fog %v", config.ErrInvalid, err)
		}
		a.world.Fog = gosie3d.NewFogExp2(fc, sc.FogDensity)
	}

	a.world.SetAmbientLight(gosie3d.NewAmbientLight(ambientColor))
	a.world.AddLines(gosie3d.NewAxesHelper(axesSize))
	return nil
}

func (a *App) buildGround() {
	segs := a.cfg.Scene.PlaneSegments
	plane := gosie3d.NewPlaneMesh(groundSize, groundSize, segs, segs, groundColor)
	plane.Name = "plane"
	plane.SetRotation(-0.5*math.Pi, 0, 0)
	plane.SetDrawAllFaces(true)
	plane.SetReceiveShadow(true)
	a.world.AddObjectDrawFirst(plane)

	a.world.AddLines(gosie3d.NewGridHelper(groundSize, gridDivisions))
}

func (a *App) buildSphere() error {
	col, err := parseColor(a.params.SphereColor)
	if err != nil {
		return fmt.Errorf("%w: %s %v", config.ErrInvalid, config.SphereColor, err)
	}
	segs := a.cfg.Scene.SphereSegments
	sphere := gosie3d.NewSphere(sphereRadius, segs, segs, col)
	sphere.Name = "sphere"
	sphere.SetPosition(-10, 10, 0)
	sphere.SetCastShadow(true)
	sphere.SetDrawLinesOnly(a.params.Wireframe)
	a.world.AddObject(sphere)

	a.loop.AddMover(sphere)
	a.loop.AddSurface(sphere)
	a.sphere = sphere
	return nil
}

func (a *App) buildBox() {
	box := gosie3d.NewBox(1, 1, 1, boxColor)
	box.Name = "box"
	box.SetUnlit(true)
	a.world.AddObject(box)
	a.loop.AddSpinner(box)
}

func (a *App) addSpot(x, y, z float64) *gosie3d.SpotLight {
	s := gosie3d.NewSpotLight(spotColor, a.params.Intensity)
	s.SetPosition(x, y, z)
	s.SetAngle(a.params.Angle)
	s.SetPenumbra(a.params.Penumbra)
	s.CastShadow = true
	a.world.AddSpotLight(s)
	a.loop.AddSpotLight(s)

	helper := gosie3d.NewSpotLightHelper(s)
	a.world.AddLines(helper.LineSet)
	a.loop.AddUpdater(helper)
	return s
}
