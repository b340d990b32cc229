// Package player implements the render loop that replays the command log.
//
// Each tick the Driver polls input, updates the playback cursor and the
// camera, snapshots the log, decodes the selected frame outside the log
// lock, folds the extent of every primitive into the content bounding box
// and hands the primitives, transformed to screen space, to a Renderer.
//
// The content bounding box only ever grows: it is the union of everything
// drawn since the driver was created, whichever frame is on screen, so the
// auto-fit camera stays stable while scrubbing.
//
// Errors never stop the loop. A corrupt frame is rendered up to the bad
// record, a text record without a font is skipped, and both are logged.
package player

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/inada-s/gv-sdl/camera"
	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
	"github.com/inada-s/gv-sdl/internal/logging"
	"github.com/inada-s/gv-sdl/timeline"
)

// DefaultFPS is the tick rate of Run when none is configured.
const DefaultFPS = 60

// Options configures a Driver.
type Options struct {
	// Background is the clear color.
	Background command.Color
	// FillCircles draws Circle records as filled discs instead of outlines.
	FillCircles bool
	// FPS is the tick rate of Run.
	FPS int
	// Axis is the content-space y convention.
	Axis camera.YAxis
}

// DefaultOptions returns black background, outlined circles, 60 FPS, y-down.
func DefaultOptions() Options {
	return Options{
		Background: command.Color{A: 255},
		FPS:        DefaultFPS,
		Axis:       camera.YDown,
	}
}

// TickStats describes the last rendered tick.
type TickStats struct {
	// Frame is the frame that was rendered, or -1 if the log had none.
	Frame int
	// Frames is the number of committed frames at snapshot time.
	Frames int
	// Records is the number of draw records dispatched.
	Records int
	// Skipped is the number of records the renderer could not draw.
	Skipped int
	// Err is the decoding error that cut the frame short, if any.
	Err error
}

// Timeline is the consumer side of a command log. *timeline.Log
// implements it.
type Timeline interface {
	Snapshot() timeline.Snapshot
	ScrubLeft() timeline.Cursor
	ScrubRight() timeline.Cursor
	Follow() timeline.Cursor
}

// Driver is the render loop. It is not safe for concurrent use; all of its
// methods run on the render goroutine.
type Driver struct {
	log      Timeline
	renderer Renderer
	input    InputSource
	opts     Options

	camera *camera.Camera
	bounds geom.Rect

	mouseX, mouseY float64

	dec     command.Decoder
	cmds    []command.Command
	scratch []command.Point

	stats        TickStats
	noFontLogged bool

	fontReq atomic.Pointer[string]
}

// NewDriver creates a render loop over log. input may be nil.
func NewDriver(log Timeline, r Renderer, input InputSource, opts Options) *Driver {
	if opts.FPS <= 0 {
		opts.FPS = DefaultFPS
	}
	return &Driver{
		log:      log,
		renderer: r,
		input:    input,
		opts:     opts,
		camera:   camera.New(opts.Axis),
		bounds:   geom.EmptyRect(),
		stats:    TickStats{Frame: -1},
	}
}

// Camera returns the driver's camera.
func (d *Driver) Camera() *camera.Camera {
	return d.camera
}

// Bounds returns the content bounding box accumulated so far.
func (d *Driver) Bounds() geom.Rect {
	return d.bounds
}

// Stats returns statistics of the last tick.
func (d *Driver) Stats() TickStats {
	return d.stats
}

// RequestFont asks the renderer to load the font at path before the next
// tick. Renderers that do not implement FontLoader ignore the request.
// RequestFont may be called from any goroutine.
func (d *Driver) RequestFont(path string) {
	d.fontReq.Store(&path)
}

// Run ticks at the configured rate until the input source asks to quit or
// ctx is done. It returns nil on quit and ctx.Err() on cancellation.
func (d *Driver) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second / time.Duration(d.opts.FPS))
	defer ticker.Stop()

	for {
		if d.Tick() {
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Tick runs one iteration of the render loop. It returns true when the
// input source requested to quit; nothing is rendered in that case.
func (d *Driver) Tick() (quit bool) {
	if d.pollInput() {
		return true
	}
	d.loadRequestedFont()

	snap := d.log.Snapshot()
	d.decodeSelected(snap)

	for _, c := range d.cmds {
		d.bounds = d.bounds.Union(geom.CommandBounds(c))
	}

	w, h := d.renderer.Size()
	view := d.camera.Update(d.bounds, w, h)

	d.renderer.Clear(d.opts.Background)
	for _, c := range d.cmds {
		d.dispatch(view, c)
	}
	if err := d.renderer.Present(); err != nil {
		logging.Logger().Warn("player: present failed", "err", err)
	}
	return false
}

func (d *Driver) loadRequestedFont() {
	path := d.fontReq.Swap(nil)
	if path == nil {
		return
	}
	fl, ok := d.renderer.(FontLoader)
	if !ok {
		logging.Logger().Debug("player: renderer cannot load fonts", "path", *path)
		return
	}
	if err := fl.LoadFont(*path); err != nil {
		logging.Logger().Warn("player: load font", "path", *path, "err", err)
		return
	}
	d.noFontLogged = false
}

func (d *Driver) pollInput() (quit bool) {
	if d.input == nil {
		return false
	}
	for ev := range d.input.PollEvents() {
		switch e := ev.(type) {
		case QuitEvent:
			return true
		case KeyDownEvent:
			if d.handleKey(e.Key) {
				return true
			}
		case MouseMotionEvent:
			d.mouseX, d.mouseY = e.X, e.Y
			if e.Buttons&ButtonLeft != 0 {
				d.camera.Drag(e.DX, e.DY)
			}
		case MouseWheelEvent:
			d.mouseX, d.mouseY = e.X, e.Y
			d.camera.Zoom(e.Direction, true, e.X, e.Y)
		}
	}
	return false
}

func (d *Driver) handleKey(k Key) (quit bool) {
	switch k {
	case KeyLeft:
		d.log.ScrubLeft()
	case KeyRight:
		d.log.ScrubRight()
	case KeyUp:
		d.camera.Zoom(-1, false, d.mouseX, d.mouseY)
	case KeyDown:
		d.camera.Zoom(1, false, d.mouseX, d.mouseY)
	case KeyHome:
		d.camera.Reset()
	case KeyEnd:
		d.log.Follow()
	case KeyEscape:
		return true
	}
	return false
}

// decodeSelected decodes the selected frame of snap into d.cmds, dropping
// the leading FrameMarker.
func (d *Driver) decodeSelected(snap timeline.Snapshot) {
	d.cmds = d.cmds[:0]
	d.stats = TickStats{Frame: -1, Frames: snap.FrameCount()}

	frame, err := snap.Selected()
	if errors.Is(err, timeline.ErrNoFrame) {
		return
	}
	d.stats.Frame = snap.Cursor.Selected
	if err != nil {
		d.stats.Err = err
		logging.Logger().Warn("player: bad frame", "frame", snap.Cursor.Selected, "err", err)
		return
	}

	d.dec.Reset(frame)
	for d.dec.Next() {
		if d.dec.Tag() == command.TagFrameMarker {
			continue
		}
		d.cmds = append(d.cmds, d.dec.Command())
	}
	if err := d.dec.Err(); err != nil {
		d.stats.Err = err
		logging.Logger().Warn("player: corrupt frame", "frame", snap.Cursor.Selected, "err", err)
	}
}

func (d *Driver) dispatch(view camera.View, cmd command.Command) {
	var err error
	switch c := cmd.(type) {
	case command.Polygon:
		d.scratch = d.scratch[:0]
		for _, v := range c.Vertices {
			x, y := view.ToScreen(v.X, v.Y)
			d.scratch = append(d.scratch, command.Pt(x, y))
		}
		err = d.renderer.FillPolygon(d.scratch, c.Color)

	case command.Circle:
		x, y := view.ToScreen(c.Center.X, c.Center.Y)
		err = d.renderer.DrawCircle(command.Pt(x, y), view.Length(c.Radius), d.opts.FillCircles, c.Color)

	case command.Text:
		x, y := view.ToScreen(c.Position.X, c.Position.Y)
		var box geom.Rect
		box, err = d.renderer.DrawText(command.Pt(x, y), view.Length(c.Size), c.Color, c.Text)
		if err == nil && !box.IsEmpty() {
			d.bounds = d.bounds.Union(contentBox(view, box))
		}
		if errors.Is(err, ErrNoFont) {
			d.stats.Skipped++
			if !d.noFontLogged {
				d.noFontLogged = true
				logging.Logger().Warn("player: skipping text records", "err", err)
			}
			return
		}

	default:
		return
	}

	d.stats.Records++
	if err != nil {
		d.stats.Skipped++
		logging.Logger().Debug("player: draw failed", "tag", cmd.Tag(), "err", err)
	}
}

// contentBox maps a screen-space box back to content space.
func contentBox(view camera.View, box geom.Rect) geom.Rect {
	x0, y0 := view.ToContent(box.MinX, box.MinY)
	x1, y1 := view.ToContent(box.MaxX, box.MaxY)
	return geom.EmptyRect().
		UnionPoint(command.Pt(x0, y0)).
		UnionPoint(command.Pt(x1, y1))
}
