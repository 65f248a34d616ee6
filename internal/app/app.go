// Package app wires the window, input, book, curl engine, and renderer
// into the interactive page view loop.
package app

import (
	"fmt"
	"image"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/foldline/pagecurl/internal/book"
	"github.com/foldline/pagecurl/internal/config"
	"github.com/foldline/pagecurl/internal/curl"
	"github.com/foldline/pagecurl/internal/engine/debug"
	"github.com/foldline/pagecurl/internal/engine/input"
	"github.com/foldline/pagecurl/internal/engine/window"
	"github.com/foldline/pagecurl/internal/logger"
	"github.com/foldline/pagecurl/internal/render"
	"github.com/foldline/pagecurl/pkg/geom"
)

// Fraction of the page width on each side that accepts a drag grab.
const grabZone = 0.25

// App owns the render loop and all subsystems.
type App struct {
	cfg *config.Config
	log *zap.Logger

	win      *window.Window
	input    *input.Input
	renderer *render.Renderer
	book     *book.Book
	gesture  *curl.Gesture
	engine   curl.Engine
	shots    *debug.ScreenshotCapture

	params       curl.Params
	pageW, pageH float32
}

// New creates the application: window and GL context first, then renderer,
// book, and gesture machine.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		log:   logger.Log,
		input: input.New(),
		shots: debug.NewScreenshotCapture("screenshots", "pagecurl"),
	}

	win, err := window.New(window.Config{
		Title:      "Page Curl",
		Width:      cfg.Graphics.Width,
		Height:     cfg.Graphics.Height,
		Fullscreen: cfg.Graphics.Fullscreen,
		VSync:      cfg.Graphics.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("creating window: %w", err)
	}
	a.win = win

	w, h := win.GetSize()
	a.pageW, a.pageH = float32(w), float32(h)

	a.params = engineParams(cfg.Curl)
	a.engine = newEngine(cfg.Curl.Backend, a.params)
	a.log.Info("curl engine selected", zap.String("backend", a.engine.Name()))

	// The mesh is uploaded regardless of the active backend so it can be
	// switched at runtime.
	mesh := curl.BuildMesh(a.params.MeshCols, a.params.MeshRows)
	renderer, err := render.New(a.log, a.params, mesh)
	if err != nil {
		win.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	a.renderer = renderer
	renderer.Resize(w, h)

	bk, err := book.Load(a.log, cfg.Pages.Dir, cfg.Pages.MaxTextureSize, book.Events{
		OnReachStart: func() { a.log.Info("already at the first page") },
		OnReachEnd:   func() { a.log.Info("already at the last page") },
	})
	if err != nil {
		renderer.Destroy()
		win.Close()
		return nil, fmt.Errorf("loading book: %w", err)
	}
	a.book = bk

	a.gesture = curl.NewGesture(a.pageW, a.pageH, cfg.Curl.SettleDuration, curl.Callbacks{
		OnTurnCompleted: a.onTurnCompleted,
		OnTurnCancelled: func() { a.log.Debug("turn cancelled") },
	})

	a.syncSlots()
	return a, nil
}

// engineParams maps config onto the engine tunables, keeping defaults for
// unset values.
func engineParams(c config.CurlConfig) curl.Params {
	p := curl.DefaultParams()
	if c.Radius > 0 {
		p.Radius = c.Radius
	}
	if c.MeshCols > 0 {
		p.MeshCols = c.MeshCols
	}
	if c.MeshRows > 0 {
		p.MeshRows = c.MeshRows
	}
	if c.CastShadowWidth > 0 {
		p.StripShadow.CastWidthFrac = c.CastShadowWidth
	}
	if c.CreaseShadowWidth > 0 {
		p.StripShadow.CreaseWidthFrac = c.CreaseShadowWidth
	}
	if c.FrontDarken > 0 {
		p.FrontDarken = c.FrontDarken
	}
	if c.BackDarken > 0 {
		p.BackDarken = c.BackDarken
	}
	return p
}

func newEngine(backend string, params curl.Params) curl.Engine {
	if backend == "planar" {
		return curl.NewPlanarEngine(params)
	}
	return curl.NewCylinderEngine(params)
}

// Run drives the main loop until quit. Must be called on the main thread.
func (a *App) Run() error {
	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	for {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if a.input.Update() {
			return nil
		}
		for _, ev := range a.input.Events() {
			if quit := a.handleEvent(ev); quit {
				return nil
			}
		}

		a.gesture.Update(dt)

		plan := a.engine.Frame(a.gesture.Input())
		a.renderer.Draw(plan)
		a.win.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			a.log.Debug("fps",
				zap.Int("count", frameCount),
				zap.String("dt", fmt.Sprintf("%.2fms", dt*1000)),
			)
			frameCount = 0
			fpsTimer = time.Now()
		}
	}
}

func (a *App) handleEvent(ev input.Event) bool {
	switch ev.Type {
	case input.EventQuit:
		return true

	case input.EventWindowResize:
		a.pageW, a.pageH = float32(ev.Width), float32(ev.Height)
		a.renderer.Resize(ev.Width, ev.Height)
		a.gesture.Resize(a.pageW, a.pageH)

	case input.EventKeyDown:
		return a.handleKey(ev.Key)

	case input.EventMouseDown:
		if ev.Button == sdl.BUTTON_LEFT {
			a.beginDrag(float32(ev.MouseX), float32(ev.MouseY))
		}

	case input.EventMouseMove:
		a.gesture.Drag(geom.Vec2{X: float32(ev.MouseX), Y: float32(ev.MouseY)})

	case input.EventMouseUp:
		if ev.Button == sdl.BUTTON_LEFT {
			a.endDrag()
		}
	}
	return false
}

func (a *App) handleKey(key sdl.Scancode) bool {
	switch key {
	case sdl.SCANCODE_ESCAPE:
		return true
	case sdl.SCANCODE_RIGHT:
		a.startTurn(curl.Forward)
	case sdl.SCANCODE_LEFT:
		a.startTurn(curl.Backward)
	case sdl.SCANCODE_B:
		a.toggleBackend()
	case sdl.SCANCODE_F12:
		a.screenshot()
	}
	return false
}

// beginDrag starts a turn when the press lands in either grab zone. The
// fold always pivots around the bottom-right page corner; backward turns
// reuse the same pivot with the previous page curling back down.
func (a *App) beginDrag(x, y float32) {
	corner := geom.Vec2{X: a.pageW, Y: a.pageH}
	touch := geom.Vec2{X: x, Y: y}

	switch {
	case x >= a.pageW*(1-grabZone) && a.book.CanTurnForward():
		a.gesture.StartDrag(curl.Forward, corner, touch)
	case x <= a.pageW*grabZone && a.book.CanTurnBackward():
		a.gesture.StartDrag(curl.Backward, corner, touch)
	}
}

// endDrag releases the drag, committing past the half-page mark. Forward
// progress rises toward 1, backward falls toward 0.
func (a *App) endDrag() {
	if a.gesture.State() != curl.StateDragging {
		return
	}
	p := a.gesture.Progress()
	commit := p >= 0.5
	if a.gesture.Direction() == curl.Backward {
		commit = p <= 0.5
	}
	a.gesture.Release(commit)
}

// startTurn runs a full keyboard-initiated turn: the drag point starts at
// the direction's neutral position and settles to completion.
func (a *App) startTurn(dir curl.Direction) {
	if dir == curl.Forward && !a.book.CanTurnForward() {
		a.book.TurnForward() // fires the boundary event
		return
	}
	if dir == curl.Backward && !a.book.CanTurnBackward() {
		a.book.TurnBackward()
		return
	}

	corner := geom.Vec2{X: a.pageW, Y: a.pageH}
	touch := corner
	if dir == curl.Backward {
		// Neutral for a backward turn is the page fully turned away.
		touch.X = corner.X - 2*a.pageW
	}
	if a.gesture.StartDrag(dir, corner, touch) {
		a.gesture.Release(true)
	}
}

func (a *App) toggleBackend() {
	name := "cylinder"
	if a.engine.Name() == "cylinder" {
		name = "planar"
	}
	a.engine = newEngine(name, a.params)
	a.renderer.SetParams(a.params)
	a.log.Info("curl engine switched", zap.String("backend", name))

	a.cfg.Curl.Backend = name
	if err := a.cfg.Save(); err != nil {
		a.log.Warn("failed to persist backend choice", zap.Error(err))
	}
}

func (a *App) screenshot() {
	w, h := a.win.GetSize()
	pix := a.renderer.ReadPixels(w, h)
	path, err := a.shots.CaptureFromPixels(pix, w, h)
	if err != nil {
		a.log.Error("screenshot failed", zap.Error(err))
		return
	}
	a.log.Info("screenshot saved", zap.String("path", path))
}

// onTurnCompleted commits the finished turn to the book and refreshes the
// slot textures.
func (a *App) onTurnCompleted(dir curl.Direction) {
	if dir == curl.Forward {
		a.book.TurnForward()
	} else {
		a.book.TurnBackward()
	}
	a.log.Info("page turned",
		zap.String("direction", dir.String()),
		zap.Int("page", a.book.Index()),
	)
	a.syncSlots()
}

// blankPage fills slots that fall off either end of the book.
var blankPage = image.NewRGBA(image.Rect(0, 0, 1, 1))

func init() {
	blankPage.Pix[0], blankPage.Pix[1], blankPage.Pix[2], blankPage.Pix[3] = 255, 255, 255, 255
}

// syncSlots pushes the three live pages into the renderer's slot textures.
func (a *App) syncSlots() {
	for slot := curl.PageSlot(0); slot < curl.SlotCount; slot++ {
		img := a.book.Slot(slot)
		if img == nil {
			if err := a.renderer.SetPageImage(slot, blankPage); err != nil {
				a.log.Warn("slot upload failed", zap.Int("slot", int(slot)), zap.Error(err))
			}
			continue
		}
		if err := a.renderer.SetPageImage(slot, img); err != nil {
			a.log.Warn("slot upload failed", zap.Int("slot", int(slot)), zap.Error(err))
		}
	}
}

// Close shuts down in reverse creation order.
func (a *App) Close() {
	if a.renderer != nil {
		a.renderer.Destroy()
	}
	if a.win != nil {
		a.win.Close()
	}
}
