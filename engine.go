package gv

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
	"github.com/inada-s/gv-sdl/player"
	"github.com/inada-s/gv-sdl/timeline"
)

// Producer draws into an Engine. It runs on its own goroutine while Run
// renders, and should return when ctx is done.
type Producer func(ctx context.Context, e *Engine) error

// PanicError is returned by Run when the producer panics.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("gv: producer panic: %v", e.Value)
}

// Engine records draw calls into a command log and renders it.
//
// The drawing methods (NewTime, Flush, Line, Arrow, Circle, Rect, Polygon,
// Text, SetDefaultAlpha) belong to the producer and must be called from a
// single goroutine.
type Engine struct {
	id      uuid.UUID
	opts    options
	log     *timeline.Log
	printer *message.Printer
	alpha   uint8

	fontPath atomic.Pointer[string]
	driver   atomic.Pointer[player.Driver]
}

// NewEngine creates an engine with an empty log.
func NewEngine(opts ...Option) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	e := &Engine{
		id:      uuid.New(),
		opts:    o,
		log:     timeline.NewLog(),
		printer: newPrinter(o.lang),
		alpha:   o.defaultAlpha,
	}
	e.fontPath.Store(&o.fontPath)
	return e
}

// newPrinter returns nil for language.Und so Text keeps plain fmt output
// ("x=1500", not "x=1,500") unless a language was chosen.
func newPrinter(tag language.Tag) *message.Printer {
	if tag == language.Und {
		return nil
	}
	return message.NewPrinter(tag)
}

// ID returns the engine's session id, attached to its log messages.
func (e *Engine) ID() uuid.UUID {
	return e.id
}

// Log returns the engine's command log.
func (e *Engine) Log() *timeline.Log {
	return e.log
}

func (e *Engine) logger() *slog.Logger {
	l := e.opts.logger
	if l == nil {
		l = Logger()
	}
	return l.With("session", e.id.String())
}

// NewTime commits pending records and starts a new time step. It returns
// the step's timestamp: 0 for the first call, then 1, 2, ...
func (e *Engine) NewTime() float64 {
	return e.log.NewTime()
}

// Flush makes the records drawn so far visible to the render loop and
// returns the number of bytes committed.
func (e *Engine) Flush() int {
	return e.log.Flush()
}

// SetDefaultAlpha sets the alpha used by ColorIndex.
func (e *Engine) SetDefaultAlpha(a uint8) {
	e.alpha = a
}

// ColorIndex returns palette color i with the default alpha.
func (e *Engine) ColorIndex(i int) Color {
	return PaletteColor(i, e.alpha)
}

// SetFontPath selects the font used for text. Before Run it configures the
// renderer; during Run the render loop loads it before its next tick.
// SetFontPath is safe for concurrent use.
func (e *Engine) SetFontPath(path string) {
	e.fontPath.Store(&path)
	if d := e.driver.Load(); d != nil {
		d.RequestFont(path)
	}
}

// Line draws a segment of half-width w with mitred ends.
// A zero-length or non-finite segment draws nothing.
func (e *Engine) Line(x1, y1, x2, y2, w float64, c Color) {
	vs, err := geom.Line(x1, y1, x2, y2, w)
	if err != nil {
		e.logger().Debug("gv: skipping degenerate line", "x1", x1, "y1", y1, "x2", x2, "y2", y2, "err", err)
		return
	}
	e.log.AppendPolygon(vs, c)
}

// Arrow draws a segment of half-width w with an arrowhead at (x2, y2).
// A zero-length or non-finite segment draws nothing.
func (e *Engine) Arrow(x1, y1, x2, y2, w float64, c Color) {
	vs, err := geom.Arrow(x1, y1, x2, y2, w)
	if err != nil {
		e.logger().Debug("gv: skipping degenerate arrow", "x1", x1, "y1", y1, "x2", x2, "y2", y2, "err", err)
		return
	}
	e.log.AppendPolygon(vs, c)
}

// Circle draws a circle. The record carries no fill flag: whether circles
// are filled is a renderer setting (WithFillCircles), so filled is only a
// hint kept for call-site readability.
func (e *Engine) Circle(x, y, r float64, filled bool, c Color) {
	if !finite(x, y, r) || r < 0 {
		e.logger().Debug("gv: skipping invalid circle", "x", x, "y", y, "r", r, "filled", filled)
		return
	}
	e.log.AppendCircle(command.Pt(x, y), r, c)
}

// Rect draws a filled axis-aligned rectangle with top-left corner (x, y).
func (e *Engine) Rect(x, y, w, h float64, c Color) {
	vs, err := geom.RectPolygon(x, y, w, h)
	if err != nil {
		e.logger().Debug("gv: skipping invalid rect", "x", x, "y", y, "w", w, "h", h, "err", err)
		return
	}
	e.log.AppendPolygon(vs, c)
}

// Polygon draws a filled polygon. Fewer than three vertices, or any
// non-finite vertex, draws nothing.
func (e *Engine) Polygon(vertices []Point, c Color) {
	if len(vertices) < 3 {
		e.logger().Debug("gv: skipping polygon", "vertices", len(vertices))
		return
	}
	for _, v := range vertices {
		if !v.IsFinite() {
			e.logger().Debug("gv: skipping polygon with non-finite vertex", "vertex", v)
			return
		}
	}
	e.log.AppendPolygon(vertices, c)
}

// Text draws formatted text with its baseline origin at (x, y). size is
// the font size in content units. Output longer than MaxTextBytes is
// truncated; a format that does not match its arguments draws nothing.
func (e *Engine) Text(x, y, size float64, c Color, format string, args ...any) {
	if !finite(x, y, size) || size <= 0 {
		e.logger().Debug("gv: skipping invalid text", "x", x, "y", y, "size", size)
		return
	}
	s, err := FormatText(e.printer, format, args...)
	if err != nil {
		e.logger().Debug("gv: skipping text", "err", err)
		return
	}
	e.log.AppendText(command.Pt(x, y), size, c, s)
}

// Run renders the log on the calling goroutine while producer draws on
// another. The calling goroutine is locked to its OS thread; windowing
// backends require Run to be called from the main goroutine.
//
// Run returns when the user closes the window, when ctx is done, or, with
// WithExitWhenDone, after the producer returned and its records were
// rendered. It always waits for the producer to return. A producer panic
// is returned as a *PanicError.
func (e *Engine) Run(ctx context.Context, producer Producer) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	r, owned, err := e.openRenderer()
	if err != nil {
		return err
	}
	if c, ok := r.(io.Closer); ok && owned {
		defer func() {
			if err := c.Close(); err != nil {
				e.logger().Warn("gv: close renderer", "err", err)
			}
		}()
	}

	in := e.opts.input
	if in == nil {
		in, _ = r.(player.InputSource)
	}
	d := player.NewDriver(e.log, r, in, e.playerOptions())
	e.driver.Store(d)
	defer e.driver.Store(nil)
	if path := *e.fontPath.Load(); path != "" && !owned {
		d.RequestFont(path)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	loopCtx, producerDone := ctx, context.CancelFunc(func() {})
	if e.opts.exitWhenDone {
		loopCtx, producerDone = context.WithCancel(ctx)
		defer producerDone()
	}

	var (
		wg   sync.WaitGroup
		perr error
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer producerDone()
		perr = e.runProducer(ctx, producer)
	}()

	w, h := r.Size()
	e.logger().Info("gv: render loop started", "width", w, "height", h, "fps", e.opts.fps)

	rerr := d.Run(loopCtx)
	if e.opts.exitWhenDone && ctx.Err() == nil && loopCtx.Err() != nil {
		// The producer is done: show its last flush.
		d.Tick()
		rerr = nil
	}
	cancel()
	wg.Wait()

	e.logger().Info("gv: render loop stopped", "frames", e.log.Stats().Frames, "err", rerr)
	return errors.Join(rerr, perr)
}

// runProducer calls producer and commits whatever it left staged.
func (e *Engine) runProducer(ctx context.Context, producer Producer) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &PanicError{Value: v, Stack: debug.Stack()}
			e.logger().Error("gv: producer panic", "panic", v)
		}
	}()
	err = producer(ctx, e)
	e.Flush()
	if err != nil {
		return fmt.Errorf("gv: producer: %w", err)
	}
	return nil
}

// openRenderer returns the injected renderer, or creates the configured
// backend. owned reports whether Run must close it.
func (e *Engine) openRenderer() (r player.Renderer, owned bool, err error) {
	if e.opts.renderer != nil {
		return e.opts.renderer, false, nil
	}
	r, err = player.NewRenderer(e.opts.backend, player.RendererConfig{
		Width:    e.opts.width,
		Height:   e.opts.height,
		Title:    e.opts.title,
		FontPath: *e.fontPath.Load(),
	})
	if err != nil {
		return nil, false, fmt.Errorf("gv: open renderer: %w", err)
	}
	return r, true, nil
}

// playerOptions maps the engine options to render loop options.
func (e *Engine) playerOptions() player.Options {
	return player.Options{
		Background:  e.opts.background,
		FillCircles: e.opts.fillCircles,
		FPS:         e.opts.fps,
		Axis:        e.opts.axis,
	}
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
