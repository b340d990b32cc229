package geom

import (
	"math"

	"github.com/inada-s/gv-sdl/command"
)

// Rect is an axis-aligned bounding box in content space.
// The zero value is the degenerate box at the origin; use EmptyRect
// as the identity for Union.
type Rect struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// EmptyRect returns an empty rectangle (inverted bounds for union operations).
func EmptyRect() Rect {
	return Rect{
		MinX: math.Inf(1),
		MinY: math.Inf(1),
		MaxX: math.Inf(-1),
		MaxY: math.Inf(-1),
	}
}

// IsEmpty reports whether nothing has been folded into the rectangle.
// A single point is not empty.
func (r Rect) IsEmpty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Union returns the smallest rectangle containing both r and other.
func (r Rect) Union(other Rect) Rect {
	if other.IsEmpty() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, other.MinX),
		MinY: math.Min(r.MinY, other.MinY),
		MaxX: math.Max(r.MaxX, other.MaxX),
		MaxY: math.Max(r.MaxY, other.MaxY),
	}
}

// UnionPoint expands the rectangle to include the point.
// Non-finite points are ignored.
func (r Rect) UnionPoint(p command.Point) Rect {
	if !p.IsFinite() {
		return r
	}
	return Rect{
		MinX: math.Min(r.MinX, p.X),
		MinY: math.Min(r.MinY, p.Y),
		MaxX: math.Max(r.MaxX, p.X),
		MaxY: math.Max(r.MaxY, p.Y),
	}
}

// Width returns the width of the rectangle.
func (r Rect) Width() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxX - r.MinX
}

// Height returns the height of the rectangle.
func (r Rect) Height() float64 {
	if r.IsEmpty() {
		return 0
	}
	return r.MaxY - r.MinY
}

// Center returns the center point of the rectangle.
func (r Rect) Center() command.Point {
	return command.Pt((r.MinX+r.MaxX)/2, (r.MinY+r.MaxY)/2)
}

// Contains reports whether other lies completely inside r.
func (r Rect) Contains(other Rect) bool {
	if other.IsEmpty() {
		return true
	}
	return r.MinX <= other.MinX && r.MinY <= other.MinY &&
		r.MaxX >= other.MaxX && r.MaxY >= other.MaxY
}

// Bounds returns the bounding box of the points.
func Bounds(points []command.Point) Rect {
	r := EmptyRect()
	for _, p := range points {
		r = r.UnionPoint(p)
	}
	return r
}

// CircleBounds returns the bounding box of a circle.
func CircleBounds(center command.Point, radius float64) Rect {
	radius = math.Abs(radius)
	if !center.IsFinite() || math.IsNaN(radius) || math.IsInf(radius, 0) {
		return EmptyRect()
	}
	return Rect{
		MinX: center.X - radius,
		MinY: center.Y - radius,
		MaxX: center.X + radius,
		MaxY: center.Y + radius,
	}
}

// CommandBounds returns the extent of a decoded record. Text extent depends
// on font metrics and is reported empty; renderers measure it when drawn.
func CommandBounds(cmd command.Command) Rect {
	switch c := cmd.(type) {
	case command.Polygon:
		return Bounds(c.Vertices)
	case command.Circle:
		return CircleBounds(c.Center, c.Radius)
	default:
		return EmptyRect()
	}
}
