// Package app assembles a scene variant and runs it, either in a window or
// headless.
package app

import (
	"context"
	"fmt"
	"image/color"
	"log"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/smasonuk/gosie3d"
	"github.com/smasonuk/gosie3d/internal/assets"
	"github.com/smasonuk/gosie3d/internal/config"
	"github.com/smasonuk/gosie3d/internal/controls"
	"github.com/smasonuk/gosie3d/internal/frameloop"
)

// App owns the scene and everything that drives it.
type App struct {
	cfg    *config.Config
	params *config.Options

	world  *gosie3d.World
	camera *gosie3d.Camera
	orbit  *gosie3d.OrbitControls

	panel     *controls.Panel
	loop      *frameloop.Loop
	scheduler *frameloop.Scheduler
	loader    *assets.Loader
	watcher   *controls.Watcher

	// the image the next render goes to, nil when headless
	target  *ebiten.Image
	renders int

	sphere *gosie3d.Model
	models []gosie3d.ObjectID
}

// New builds the scene for cfg.Variant. The scene is not animated until a
// frame is run.
func New(cfg *config.Config) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	a := &App{
		cfg:       cfg,
		params:    &cfg.Options,
		world:     gosie3d.NewWorld(),
		scheduler: frameloop.NewScheduler(),
		loader:    assets.NewLoader(),
	}
	a.panel = controls.NewOptionsPanel(a.params)
	a.loop = frameloop.New(a.params, cfg.Scene.Amplitude, frameloop.RendererFunc(a.render))

	aspect := float64(cfg.Window.Width) / float64(cfg.Window.Height)
	a.camera = gosie3d.NewPerspectiveCamera(cfg.Camera.Fov, aspect, cfg.Camera.Near, cfg.Camera.Far)
	p := cfg.Camera.Position
	a.camera.SetCameraPosition(p[0], p[1], p[2])
	a.camera.LookAt(0, 0, 0)
	a.orbit = gosie3d.NewOrbitControls(a.camera)
	a.orbit.Update()

	log.Println("Initializing World...")
	if err := a.build(); err != nil {
		return nil, err
	}
	a.scheduler.SetAnimationLoop(a.loop.Tick)
	log.Println("Initialization Complete.")
	return a, nil
}

// Watch hot reloads the [options] table of the config file at path.
func (a *App) Watch(path string) error {
	w, err := controls.NewWatcher(path, *a.params)
	if err != nil {
		return err
	}
	a.watcher = w
	return nil
}

// LoadModel loads a model in the background and adds it to the scene as a
// spinner once it is ready.
func (a *App) LoadModel(path string) *assets.Future {
	log.Printf("Loading model %s...", path)
	return a.loader.Load(path, a.addModel)
}

func (a *App) addModel(m *gosie3d.Model) {
	a.models = append(a.models, a.world.AddObject(m))
	a.loop.AddSpinner(m)
}

func (a *App) Panel() *controls.Panel         { return a.panel }
func (a *App) Loop() *frameloop.Loop           { return a.loop }
func (a *App) Scheduler() *frameloop.Scheduler { return a.scheduler }
func (a *App) World() *gosie3d.World           { return a.world }
func (a *App) Loader() *assets.Loader          { return a.loader }

// Renders returns how many times the loop asked for a render.
func (a *App) Renders() int {
	return a.renders
}

// Models returns the ids of the loaded models in the order they arrived.
func (a *App) Models() []gosie3d.ObjectID {
	return a.models
}

// Stop ends the animation loop. A running game exits on its next update.
func (a *App) Stop() {
	a.scheduler.Stop()
}

// StopAfter stops the scheduler once frames frames have run.
func (a *App) StopAfter(frames int) {
	a.scheduler.SetAnimationLoop(func(f frameloop.Frame) {
		a.loop.Tick(f)
		if int(a.scheduler.Frames()) >= frames {
			a.scheduler.Stop()
		}
	})
}

// Close releases the config watcher and waits for pending loads.
func (a *App) Close() error {
	a.loader.Wait()
	if a.watcher != nil {
		return a.watcher.Close()
	}
	return nil
}

// applyEdits runs the work that has to happen on the game goroutine between
// frames: queued config edits and finished loads.
func (a *App) applyEdits() {
	if a.watcher != nil {
		if err := a.watcher.Apply(a.panel); err != nil {
			log.Printf("config: %v", err)
		}
	}
	a.loader.Dispatch()
}

func (a *App) render() {
	a.renders++
	if a.target == nil {
		return
	}
	a.world.Render(a.target, a.camera)
}

// RunHeadless drives the loop from a ticker without a window until frames
// frames have run, ctx is cancelled or Stop is called. frames <= 0 means no
// limit.
func (a *App) RunHeadless(ctx context.Context, frames int, interval time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	a.scheduler.SetAnimationLoop(func(f frameloop.Frame) {
		a.applyEdits()
		a.loop.Tick(f)
		if frames > 0 && int(a.scheduler.Frames()) >= frames {
			a.scheduler.Stop()
		}
	})
	defer a.scheduler.SetAnimationLoop(a.loop.Tick)

	err := a.scheduler.Run(ctx, interval)
	log.Printf("Ran %d frames, step %.3f, sphere at %.3f", a.scheduler.Frames(), a.loop.Step(), a.loop.Offset())
	return err
}

func parseColor(hex string) (color.RGBA, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("color %q: %w", hex, err)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}, nil
}
