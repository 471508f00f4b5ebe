package app

import (
	"fmt"
	"log"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/smasonuk/gosie3d/internal/assets"
	"github.com/smasonuk/gosie3d/internal/controls/imguipanel"
)

// Game runs an App in an ebiten window with the control panel on top.
type Game struct {
	app    *App
	ui     *imguipanel.Panel
	width  int
	height int

	picked  chan string
	picking atomic.Bool // a file dialog is open
}

// NewGame sets up the window and its control panel.
func NewGame(a *App) *Game {
	w := a.cfg.Window
	g := &Game{
		app:    a,
		ui:     imguipanel.New(a.panel, w.Title, w.Width, w.Height),
		picked: make(chan string, 1),
		width:  w.Width,
		height: w.Height,
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return g
}

// Run opens the window and blocks until it is closed or the app is stopped.
func (g *Game) Run() error {
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}

func (g *Game) Update() error {
	if g.app.scheduler.Stopped() {
		return ebiten.Termination
	}

	g.ui.BeginFrame()
	g.ui.Build()
	g.ui.EndFrame()

	g.app.orbit.Enabled = !g.ui.WantCaptureMouse()
	g.app.orbit.HandleInput(g.height)

	if inpututil.IsKeyJustPressed(ebiten.KeyO) && g.picking.CompareAndSwap(false, true) {
		go g.pickModel()
	}
	select {
	case path := <-g.picked:
		g.app.LoadModel(path)
	default:
	}

	g.app.applyEdits()
	return nil
}

// pickModel runs the blocking file dialog off the game goroutine. Only one
// dialog is open at a time.
func (g *Game) pickModel() {
	defer g.picking.Store(false)
	path, ok, err := assets.PickModel()
	if err != nil {
		log.Printf("Open model: %v", err)
		return
	}
	if ok {
		g.offerPick(path)
	}
}

// offerPick hands a chosen path to Update without blocking. A path that
// arrives while another is still waiting is dropped.
func (g *Game) offerPick(path string) bool {
	select {
	case g.picked <- path:
		return true
	default:
		log.Printf("Open model: %s ignored, a load is already queued", path)
		return false
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.app.target = screen
	g.app.scheduler.Frame()
	g.app.target = nil

	polys, lines := g.app.world.Stats()
	ebitenutil.DebugPrintAt(screen,
		fmt.Sprintf("FPS: %0.2f  polygons: %d  lines: %d  [O] open model", ebiten.ActualFPS(), polys, lines),
		10, g.height-20)

	g.ui.Draw(screen)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.ui.Layout(outsideWidth, outsideHeight)
	g.width, g.height = outsideWidth, outsideHeight
	if outsideHeight > 0 {
		g.app.camera.Aspect = float64(outsideWidth) / float64(outsideHeight)
	}
	return outsideWidth, outsideHeight
}
