// Package camera maps content space to screen space for the render loop.
//
// The camera auto-fits the content bounding box into the screen
// (letterboxed to keep the aspect ratio), then applies the user's zoom and
// pan. Zoom is kept in [MinZoom, MaxZoom]; pan is clamped so the zoomed
// content never exposes area outside the fitted box.
//
// Pan is measured in content units at zoom 1, along screen axes: a pan of
// (p, 0) shifts the picture right by p*Scale pixels. At zoom z the pan
// range is ±0.5*contentWidth*(z-1) horizontally and likewise vertically.
//
// A Camera is not safe for concurrent use; it belongs to the render loop.
package camera

import (
	"math"

	"github.com/gogpu/gg"
	"github.com/inada-s/gv-sdl/geom"
)

// Zoom limits and input response.
const (
	MinZoom = 1.0
	MaxZoom = 10.0

	// zoomExponent makes one notch scale by 0.5^0.0805, so about 12.4
	// notches double or halve the zoom.
	zoomExponent = 0.0805

	// anchorNudge is the fraction of the mouse offset from the screen
	// center added to the pan per notch when zooming at the mouse.
	anchorNudge = 0.1
)

// YAxis selects the content-space y direction.
type YAxis int

const (
	// YDown maps content y to screen y unchanged (y grows downward).
	YDown YAxis = iota
	// YUp flips content y so that it grows upward on screen.
	YUp
)

// String returns the axis name.
func (a YAxis) String() string {
	switch a {
	case YDown:
		return "down"
	case YUp:
		return "up"
	default:
		return "unknown"
	}
}

// View is the camera state for one rendered frame.
type View struct {
	// Box is the content bounding box the view was fitted to.
	Box geom.Rect
	// ScreenW and ScreenH are the screen size in pixels.
	ScreenW, ScreenH float64
	// Scale is the auto-fit scale, before zoom.
	Scale float64
	// Zoom is the zoom factor in [MinZoom, MaxZoom].
	Zoom float64
	// PX and PY are the letterbox offsets of the fitted box at zoom 1.
	PX, PY float64
	// PanX and PanY are the clamped pan offsets.
	PanX, PanY float64
	// Matrix maps content space to screen space.
	Matrix gg.Matrix
	// Inverse maps screen space back to content space.
	Inverse gg.Matrix
}

// ToScreen maps a content-space point to screen space.
func (v View) ToScreen(x, y float64) (float64, float64) {
	p := v.Matrix.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// ToContent maps a screen-space point to content space.
func (v View) ToContent(x, y float64) (float64, float64) {
	p := v.Inverse.TransformPoint(gg.Pt(x, y))
	return p.X, p.Y
}

// Length converts a content-space length to pixels.
func (v View) Length(l float64) float64 {
	return l * v.Scale * v.Zoom
}

// Camera holds zoom and pan and derives a View from the content box.
type Camera struct {
	axis       YAxis
	zoom       float64
	panX, panY float64
	view       View
}

// New creates a camera at zoom 1 with no pan.
func New(axis YAxis) *Camera {
	return &Camera{axis: axis, zoom: MinZoom, view: View{Zoom: MinZoom, Matrix: gg.Identity(), Inverse: gg.Identity()}}
}

// Axis returns the y-axis convention.
func (c *Camera) Axis() YAxis {
	return c.axis
}

// ZoomLevel returns the current zoom factor.
func (c *Camera) ZoomLevel() float64 {
	return c.zoom
}

// Pan returns the current (unclamped until the next Update) pan offsets.
func (c *Camera) Pan() (x, y float64) {
	return c.panX, c.panY
}

// View returns the view computed by the last Update.
func (c *Camera) View() View {
	return c.view
}

// Reset restores zoom 1 and removes the pan.
func (c *Camera) Reset() {
	c.zoom = MinZoom
	c.panX, c.panY = 0, 0
}

// Zoom changes the zoom by 0.5^(direction*0.0805): negative directions
// zoom in, positive directions zoom out. The result is clamped to
// [MinZoom, MaxZoom] and the pan is rescaled by the zoom ratio so the
// picture stays centered on the same content point.
//
// With anchorAtMouse, the pan is additionally nudged toward the mouse
// position by 10% of its offset from the screen center per notch, using
// the screen size and scale of the last Update.
func (c *Camera) Zoom(direction float64, anchorAtMouse bool, mouseX, mouseY float64) {
	if math.IsNaN(direction) || math.IsInf(direction, 0) {
		return
	}
	old := c.zoom
	c.zoom = clampf(old*math.Pow(0.5, direction*zoomExponent), MinZoom, MaxZoom)
	ratio := c.zoom / old
	c.panX *= ratio
	c.panY *= ratio

	if anchorAtMouse && c.view.Scale > 0 {
		c.panX += direction * anchorNudge * (mouseX - c.view.ScreenW/2) / c.view.Scale
		c.panY += direction * anchorNudge * (mouseY - c.view.ScreenH/2) / c.view.Scale
	}
	c.clampPan(c.view.Box)
}

// Drag pans the view by a mouse movement of (dx, dy) screen pixels.
func (c *Camera) Drag(dx, dy float64) {
	if c.view.Scale <= 0 || math.IsNaN(dx) || math.IsNaN(dy) {
		return
	}
	c.panX += dx / c.view.Scale
	c.panY += dy / c.view.Scale
	c.clampPan(c.view.Box)
}

// Update fits box into a screen of the given size and returns the view.
// An empty box is treated as the screen itself (scale 1).
func (c *Camera) Update(box geom.Rect, screenW, screenH int) View {
	sw, sh := float64(max(screenW, 1)), float64(max(screenH, 1))
	if box.IsEmpty() {
		box = geom.Rect{MaxX: sw, MaxY: sh}
	}
	cw, ch := box.Width(), box.Height()

	scale := math.Min(fitScale(sw, cw), fitScale(sh, ch))
	if math.IsInf(scale, 1) {
		scale = 1 // a single point
	}

	c.clampPan(box)

	px := (sw - cw*scale) / 2
	py := (sh - ch*scale) / 2
	cx, cy := box.Center().X, box.Center().Y
	k := c.zoom * scale

	m := gg.Matrix{
		A: k,
		C: px + (cw/2-cx*c.zoom+c.panX)*scale,
	}
	if c.axis == YUp {
		m.E = -k
		m.F = py + (ch/2+cy*c.zoom+c.panY)*scale
	} else {
		m.E = k
		m.F = py + (ch/2-cy*c.zoom+c.panY)*scale
	}

	c.view = View{
		Box:     box,
		ScreenW: sw,
		ScreenH: sh,
		Scale:   scale,
		Zoom:    c.zoom,
		PX:      px,
		PY:      py,
		PanX:    c.panX,
		PanY:    c.panY,
		Matrix:  m,
		Inverse: m.Invert(),
	}
	return c.view
}

func (c *Camera) clampPan(box geom.Rect) {
	limX := 0.5 * box.Width() * (c.zoom - 1)
	limY := 0.5 * box.Height() * (c.zoom - 1)
	c.panX = clampf(c.panX, -limX, limX)
	c.panY = clampf(c.panY, -limY, limY)
}

func fitScale(screen, content float64) float64 {
	if content <= 0 {
		return math.Inf(1)
	}
	return screen / content
}

func clampf(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}
