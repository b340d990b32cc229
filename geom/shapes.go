// Package geom turns high-level drawing calls into the polygon vertices
// stored in the command log, and provides bounding-box arithmetic.
//
// Content space is y-down: (x, y) grows right and down, like screen space.
package geom

import (
	"errors"
	"math"

	"github.com/inada-s/gv-sdl/command"
)

// ErrDegenerate is returned when a segment has no direction (zero length)
// or any input is NaN or infinite. No vertices are produced.
var ErrDegenerate = errors.New("geom: degenerate geometry")

// CircleSegments is the number of sides used to approximate a circle.
const CircleSegments = 64

// Arrow head parameters.
const (
	// ArrowHeadAngle is the angle between the shaft axis and each head edge.
	ArrowHeadAngle = 15 * math.Pi / 180
	// ArrowHeadRatio is the head length as a fraction of the shaft length.
	ArrowHeadRatio = 0.10
	// ArrowNotchRatio is the barb overshoot behind the head base, as a
	// fraction of the shaft length.
	ArrowNotchRatio = 0.05
)

// Cap vertices sit at ±30° around the reversed segment axis.
var (
	capCos = math.Cos(math.Pi / 6)
	capSin = math.Sin(math.Pi / 6)
)

// frame is an orthonormal basis along a segment: d points from the start
// to the end, n is d rotated by +90°.
type frame struct {
	dx, dy float64
	nx, ny float64
	length float64
}

func segmentFrame(x1, y1, x2, y2 float64) (frame, error) {
	if !finite(x1, y1, x2, y2) {
		return frame{}, ErrDegenerate
	}
	vx, vy := x2-x1, y2-y1
	l := math.Hypot(vx, vy)
	if l == 0 || math.IsInf(l, 0) {
		return frame{}, ErrDegenerate
	}
	dx, dy := vx/l, vy/l
	return frame{dx: dx, dy: dy, nx: -dy, ny: dx, length: l}, nil
}

// at returns p + a*d + b*n.
func (f frame) at(px, py, a, b float64) command.Point {
	return command.Pt(px+a*f.dx+b*f.nx, py+a*f.dy+b*f.ny)
}

// Line returns the 8-vertex outline of a thick segment from (x1, y1) to
// (x2, y2). The outline is a rectangle of half-width w with a two-vertex
// cap beyond each end, placed at ±30° around the segment axis so that the
// stroke ends look mitred.
func Line(x1, y1, x2, y2, w float64) ([]command.Point, error) {
	f, err := segmentFrame(x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	if !finite(w) {
		return nil, ErrDegenerate
	}
	w = math.Abs(w)
	return []command.Point{
		f.at(x1, y1, 0, w),
		f.at(x1, y1, -capCos*w, capSin*w),
		f.at(x1, y1, -capCos*w, -capSin*w),
		f.at(x1, y1, 0, -w),
		f.at(x2, y2, 0, -w),
		f.at(x2, y2, capCos*w, -capSin*w),
		f.at(x2, y2, capCos*w, capSin*w),
		f.at(x2, y2, 0, w),
	}, nil
}

// Arrow returns the 12-vertex outline of an arrow from (x1, y1) to the
// tip at (x2, y2).
//
// The shaft has half-width w and the same start cap as Line. It stops at
// the head base, ArrowHeadRatio of the length before the tip. The head
// edges leave the tip at ArrowHeadAngle from the axis; their length is the
// head length plus ArrowNotchRatio of the shaft length, so the barbs reach
// behind the head base and form the notch. Tip and barbs are blunted by
// w*sin(30°).
func Arrow(x1, y1, x2, y2, w float64) ([]command.Point, error) {
	f, err := segmentFrame(x1, y1, x2, y2)
	if err != nil {
		return nil, err
	}
	if !finite(w) {
		return nil, ErrDegenerate
	}
	w = math.Abs(w)

	head := ArrowHeadRatio * f.length
	edge := head + ArrowNotchRatio*f.length
	hc, hs := math.Cos(ArrowHeadAngle), math.Sin(ArrowHeadAngle)
	blunt := capSin * w

	// Head edge points are expressed relative to the tip as
	// (axial, lateral) offsets; axial is negative behind the tip.
	tipA, tipL := -blunt*hc, blunt*hs
	barbA, barbL := -edge*hc, edge*hs

	return []command.Point{
		f.at(x1, y1, 0, w),
		f.at(x1, y1, -capCos*w, capSin*w),
		f.at(x1, y1, -capCos*w, -capSin*w),
		f.at(x1, y1, 0, -w),
		f.at(x2, y2, -head, -w),
		f.at(x2, y2, barbA+blunt, -barbL),
		f.at(x2, y2, barbA, -barbL),
		f.at(x2, y2, tipA, -tipL),
		f.at(x2, y2, tipA, tipL),
		f.at(x2, y2, barbA, barbL),
		f.at(x2, y2, barbA+blunt, barbL),
		f.at(x2, y2, -head, w),
	}, nil
}

// RectPolygon returns the corners of the rectangle with top-left corner
// (x, y), in the order top-left, bottom-left, bottom-right, top-right.
func RectPolygon(x, y, w, h float64) ([]command.Point, error) {
	if !finite(x, y, w, h) {
		return nil, ErrDegenerate
	}
	return []command.Point{
		command.Pt(x, y),
		command.Pt(x, y+h),
		command.Pt(x+w, y+h),
		command.Pt(x+w, y),
	}, nil
}

// CirclePolygon returns a regular n-gon approximating the circle.
// n below 3 is raised to 3.
func CirclePolygon(cx, cy, r float64, n int) []command.Point {
	if n < 3 {
		n = 3
	}
	return AppendCirclePolygon(make([]command.Point, 0, n), cx, cy, r, n)
}

// AppendCirclePolygon appends the n-gon vertices to dst.
func AppendCirclePolygon(dst []command.Point, cx, cy, r float64, n int) []command.Point {
	if n < 3 {
		n = 3
	}
	step := 2 * math.Pi / float64(n)
	for i := 0; i < n; i++ {
		a := step * float64(i)
		dst = append(dst, command.Pt(cx+r*math.Cos(a), cy+r*math.Sin(a)))
	}
	return dst
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
