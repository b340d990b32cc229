package camera

import (
	"math"
	"math/rand"
	"testing"

	"github.com/inada-s/gv-sdl/geom"
)

const eps = 1e-9

func near(a, b float64) bool { return math.Abs(a-b) < 1e-6 }

func TestFitLetterbox(t *testing.T) {
	c := New(YDown)
	v := c.Update(geom.Rect{MaxX: 100, MaxY: 50}, 200, 200)

	if !near(v.Scale, 2) {
		t.Errorf("Scale = %v, want 2", v.Scale)
	}
	if !near(v.PX, 0) || !near(v.PY, 50) {
		t.Errorf("letterbox = (%v, %v), want (0, 50)", v.PX, v.PY)
	}

	tests := []struct{ x, y, wx, wy float64 }{
		{0, 0, 0, 50},
		{100, 50, 200, 150},
		{50, 25, 100, 100},
	}
	for _, tt := range tests {
		x, y := v.ToScreen(tt.x, tt.y)
		if !near(x, tt.wx) || !near(y, tt.wy) {
			t.Errorf("ToScreen(%v, %v) = (%v, %v), want (%v, %v)", tt.x, tt.y, x, y, tt.wx, tt.wy)
		}
		cx, cy := v.ToContent(x, y)
		if !near(cx, tt.x) || !near(cy, tt.y) {
			t.Errorf("ToContent() = (%v, %v), want (%v, %v)", cx, cy, tt.x, tt.y)
		}
	}
}

func TestFitOffsetBox(t *testing.T) {
	c := New(YDown)
	v := c.Update(geom.Rect{MinX: -10, MinY: 100, MaxX: 10, MaxY: 140}, 400, 400)
	// Height dominates: 400/40 = 10.
	if !near(v.Scale, 10) {
		t.Fatalf("Scale = %v, want 10", v.Scale)
	}
	x, y := v.ToScreen(-10, 100)
	if !near(x, 100) || !near(y, 0) {
		t.Errorf("top-left maps to (%v, %v), want (100, 0)", x, y)
	}
}

func TestYUpFlips(t *testing.T) {
	c := New(YUp)
	v := c.Update(geom.Rect{MaxX: 100, MaxY: 100}, 100, 100)
	x, y := v.ToScreen(0, 0)
	if !near(x, 0) || !near(y, 100) {
		t.Errorf("origin maps to (%v, %v), want (0, 100)", x, y)
	}
	x, y = v.ToScreen(100, 100)
	if !near(x, 100) || !near(y, 0) {
		t.Errorf("(100,100) maps to (%v, %v), want (100, 0)", x, y)
	}
}

func TestEmptyBoxIsIdentityFit(t *testing.T) {
	c := New(YDown)
	v := c.Update(geom.EmptyRect(), 640, 480)
	if v.Scale != 1 {
		t.Errorf("Scale = %v, want 1", v.Scale)
	}
	x, y := v.ToScreen(12, 34)
	if !near(x, 12) || !near(y, 34) {
		t.Errorf("ToScreen() = (%v, %v), want (12, 34)", x, y)
	}
}

func TestDegenerateBox(t *testing.T) {
	c := New(YDown)
	v := c.Update(geom.Rect{MinX: 5, MinY: 5, MaxX: 5, MaxY: 5}, 100, 100)
	if math.IsInf(v.Scale, 0) || math.IsNaN(v.Scale) {
		t.Fatalf("Scale = %v for a single point", v.Scale)
	}
	x, y := v.ToScreen(5, 5)
	if !near(x, 50) || !near(y, 50) {
		t.Errorf("point maps to (%v, %v), want screen center", x, y)
	}

	// Horizontal line: only the width constrains the scale.
	v = c.Update(geom.Rect{MaxX: 50, MinY: 3, MaxY: 3}, 100, 100)
	if !near(v.Scale, 2) {
		t.Errorf("Scale = %v, want 2", v.Scale)
	}
}

func TestZoomClamp(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := New(YDown)
	c.Update(geom.Rect{MaxX: 10, MaxY: 10}, 100, 100)
	for i := 0; i < 1000; i++ {
		dir := float64(r.Intn(81) - 40)
		c.Zoom(dir, r.Intn(2) == 0, r.Float64()*100, r.Float64()*100)
		if z := c.ZoomLevel(); z < MinZoom || z > MaxZoom {
			t.Fatalf("zoom = %v after Zoom(%v)", z, dir)
		}
	}
	for i := 0; i < 200; i++ {
		c.Zoom(-1, false, 0, 0)
	}
	if c.ZoomLevel() != MaxZoom {
		t.Errorf("zoom = %v, want MaxZoom", c.ZoomLevel())
	}
	for i := 0; i < 200; i++ {
		c.Zoom(1, false, 0, 0)
	}
	if c.ZoomLevel() != MinZoom {
		t.Errorf("zoom = %v, want MinZoom", c.ZoomLevel())
	}
}

func TestZoomNotchesToDouble(t *testing.T) {
	c := New(YDown)
	// 12.4 notches in: 2^(12.4*0.0805) ≈ 1.997.
	c.Zoom(-12.4, false, 0, 0)
	if z := c.ZoomLevel(); math.Abs(z-2) > 0.01 {
		t.Errorf("zoom after 12.4 notches = %v, want ~2", z)
	}
}

func TestPanClamp(t *testing.T) {
	c := New(YDown)
	box := geom.Rect{MaxX: 100, MaxY: 100}
	c.Update(box, 100, 100)

	// At zoom 1 no pan is possible.
	c.Drag(50, -50)
	if x, y := c.Pan(); x != 0 || y != 0 {
		t.Errorf("Pan() at zoom 1 = (%v, %v), want (0, 0)", x, y)
	}

	c.Zoom(-100, false, 0, 0) // to MaxZoom
	c.Update(box, 100, 100)
	c.Drag(1e6, -1e6)
	v := c.Update(box, 100, 100)
	lim := 0.5 * 100 * (MaxZoom - 1)
	if !near(v.PanX, lim) || !near(v.PanY, -lim) {
		t.Errorf("pan = (%v, %v), want (%v, %v)", v.PanX, v.PanY, lim, -lim)
	}

	// Clamped pan never exposes area outside the box: the box corners
	// stay at or beyond the screen edges.
	x0, y0 := v.ToScreen(0, 0)
	x1, y1 := v.ToScreen(100, 100)
	if x0 > eps || y0 > eps || x1 < 100-eps || y1 < 100-eps {
		t.Errorf("box maps to (%v,%v)-(%v,%v), must cover the screen", x0, y0, x1, y1)
	}
}

func TestZoomRescalesPan(t *testing.T) {
	c := New(YDown)
	box := geom.Rect{MaxX: 100, MaxY: 100}
	c.Update(box, 100, 100)
	c.Zoom(-30, false, 0, 0)
	c.Update(box, 100, 100)
	c.Drag(20, 0)
	px, _ := c.Pan()
	z := c.ZoomLevel()

	c.Zoom(-5, false, 0, 0)
	nx, _ := c.Pan()
	if want := px * c.ZoomLevel() / z; !near(nx, want) {
		t.Errorf("pan after zoom = %v, want %v", nx, want)
	}
}

func TestZoomAtMouse(t *testing.T) {
	box := geom.Rect{MaxX: 100, MaxY: 100}

	center := New(YDown)
	center.Update(box, 100, 100)
	center.Zoom(-10, true, 50, 50)
	if x, y := center.Pan(); x != 0 || y != 0 {
		t.Errorf("zoom at screen center moved pan to (%v, %v)", x, y)
	}

	right := New(YDown)
	right.Update(box, 100, 100)
	right.Zoom(-10, true, 90, 50)
	x, _ := right.Pan()
	if x >= 0 {
		t.Errorf("zooming in right of center: panX = %v, want negative", x)
	}

	// The content under the mouse moves less than without the anchor.
	plain := New(YDown)
	plain.Update(box, 100, 100)
	plain.Zoom(-10, false, 90, 50)
	va := right.Update(box, 100, 100)
	vp := plain.Update(box, 100, 100)
	cx0 := 90.0 // content x under the mouse at zoom 1
	sa, _ := va.ToScreen(cx0, 50)
	sp, _ := vp.ToScreen(cx0, 50)
	if math.Abs(sa-90) >= math.Abs(sp-90) {
		t.Errorf("anchored drift %v >= plain drift %v", math.Abs(sa-90), math.Abs(sp-90))
	}
}

func TestReset(t *testing.T) {
	c := New(YDown)
	c.Update(geom.Rect{MaxX: 10, MaxY: 10}, 10, 10)
	c.Zoom(-20, false, 0, 0)
	c.Reset()
	if c.ZoomLevel() != MinZoom {
		t.Errorf("ZoomLevel() = %v after Reset", c.ZoomLevel())
	}
}
