// Package sdl implements a windowed renderer and input source on SDL2.
//
// Frames are rasterized in software by backends/raster and uploaded to a
// streaming texture on Present. The window is registered with the player
// registry as "sdl".
//
// SDL must be driven from the main OS thread. Programs using this package
// should lock the main goroutine in init:
//
//	func init() { runtime.LockOSThread() }
package sdl

import (
	"fmt"
	"iter"
	"unsafe"

	sdl2 "github.com/veandco/go-sdl2/sdl"

	"github.com/inada-s/gv-sdl/backends/raster"
	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
	"github.com/inada-s/gv-sdl/internal/logging"
	"github.com/inada-s/gv-sdl/player"
)

// Name is the registry name of the window renderer.
const Name = "sdl"

func init() {
	player.Register(Name, func(cfg player.RendererConfig) (player.Renderer, error) {
		return New(cfg)
	})
}

// Window is an SDL window implementing player.Renderer, player.InputSource
// and player.FontLoader.
type Window struct {
	window   *sdl2.Window
	renderer *sdl2.Renderer
	texture  *sdl2.Texture

	canvas   *raster.Renderer
	fontPath string
}

var (
	_ player.Renderer    = (*Window)(nil)
	_ player.InputSource = (*Window)(nil)
	_ player.FontLoader  = (*Window)(nil)
)

// New opens a resizable window of the configured size.
func New(cfg player.RendererConfig) (*Window, error) {
	if err := sdl2.Init(sdl2.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("sdl: init video: %w", err)
	}

	w := &Window{fontPath: cfg.FontPath}
	var err error
	w.window, err = sdl2.CreateWindow(cfg.Title, sdl2.WINDOWPOS_UNDEFINED, sdl2.WINDOWPOS_UNDEFINED,
		int32(cfg.Width), int32(cfg.Height), sdl2.WINDOW_SHOWN|sdl2.WINDOW_RESIZABLE)
	if err != nil {
		sdl2.Quit()
		return nil, fmt.Errorf("sdl: create window: %w", err)
	}

	w.renderer, err = sdl2.CreateRenderer(w.window, -1, sdl2.RENDERER_ACCELERATED)
	if err != nil {
		w.Close()
		return nil, fmt.Errorf("sdl: create renderer: %w", err)
	}

	if err := w.resize(cfg.Width, cfg.Height); err != nil {
		w.Close()
		return nil, err
	}

	logging.Logger().Info("sdl: window opened", "width", cfg.Width, "height", cfg.Height)
	return w, nil
}

// resize recreates the canvas and the streaming texture for a new size.
func (w *Window) resize(width, height int) error {
	canvas, err := raster.New(width, height, raster.WithFontPath(w.fontPath))
	if err != nil {
		return fmt.Errorf("sdl: canvas: %w", err)
	}
	texture, err := w.renderer.CreateTexture(sdl2.PIXELFORMAT_ABGR8888, sdl2.TEXTUREACCESS_STREAMING,
		int32(width), int32(height))
	if err != nil {
		canvas.Close()
		return fmt.Errorf("sdl: create texture: %w", err)
	}

	if w.texture != nil {
		w.texture.Destroy()
	}
	if w.canvas != nil {
		w.canvas.Close()
	}
	w.canvas, w.texture = canvas, texture
	return nil
}

// Size returns the drawable size in pixels.
func (w *Window) Size() (width, height int) {
	return w.canvas.Size()
}

// Clear fills the canvas with bg.
func (w *Window) Clear(bg command.Color) {
	w.canvas.Clear(bg)
}

// FillPolygon fills a polygon.
func (w *Window) FillPolygon(vertices []command.Point, c command.Color) error {
	return w.canvas.FillPolygon(vertices, c)
}

// DrawCircle draws a circle outline or a filled disc.
func (w *Window) DrawCircle(center command.Point, radius float64, filled bool, c command.Color) error {
	return w.canvas.DrawCircle(center, radius, filled, c)
}

// DrawText draws text and returns its box.
func (w *Window) DrawText(pos command.Point, size float64, c command.Color, s string) (geom.Rect, error) {
	return w.canvas.DrawText(pos, size, c, s)
}

// LoadFont switches the text font.
func (w *Window) LoadFont(path string) error {
	if err := w.canvas.LoadFont(path); err != nil {
		return err
	}
	w.fontPath = path
	return nil
}

// Present uploads the canvas to the window.
func (w *Window) Present() error {
	pix := w.canvas.Pixmap().Data()
	width, _ := w.canvas.Size()
	if err := w.texture.Update(nil, unsafe.Pointer(&pix[0]), width*4); err != nil {
		return fmt.Errorf("sdl: texture update: %w", err)
	}
	if err := w.renderer.Clear(); err != nil {
		return fmt.Errorf("sdl: clear: %w", err)
	}
	if err := w.renderer.Copy(w.texture, nil, nil); err != nil {
		return fmt.Errorf("sdl: copy: %w", err)
	}
	w.renderer.Present()
	return nil
}

// PollEvents drains the SDL event queue. Window resizes are handled here
// and not reported.
func (w *Window) PollEvents() iter.Seq[player.Event] {
	return func(yield func(player.Event) bool) {
		for ev := sdl2.PollEvent(); ev != nil; ev = sdl2.PollEvent() {
			if we, ok := ev.(*sdl2.WindowEvent); ok && we.Event == sdl2.WINDOWEVENT_SIZE_CHANGED {
				if err := w.resize(int(we.Data1), int(we.Data2)); err != nil {
					logging.Logger().Warn("sdl: resize", "err", err)
				}
				continue
			}
			pe, ok := translate(ev)
			if !ok {
				continue
			}
			if !yield(pe) {
				return
			}
		}
	}
}

// Close destroys the window and shuts SDL down.
func (w *Window) Close() error {
	if w.canvas != nil {
		w.canvas.Close()
		w.canvas = nil
	}
	if w.texture != nil {
		w.texture.Destroy()
		w.texture = nil
	}
	if w.renderer != nil {
		w.renderer.Destroy()
		w.renderer = nil
	}
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	sdl2.Quit()
	return nil
}
