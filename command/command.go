package command

import "math"

// Point is a position in content space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{X: x, Y: y}.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// IsFinite reports whether both coordinates are neither NaN nor infinite.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) &&
		!math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Color is an 8-bit per channel, non-premultiplied RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGBA returns the color components scaled to [0, 1].
func (c Color) RGBA() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Command is implemented by every decoded record.
type Command interface {
	// Tag returns the record tag for this command.
	Tag() Tag
}

// FrameMarker delimits frames. Every record after a marker, up to the next
// marker or the end of the log, belongs to that frame.
type FrameMarker struct {
	Timestamp float64
}

// Tag implements Command.
func (FrameMarker) Tag() Tag { return TagFrameMarker }

// Polygon is a filled polygon. Vertex order is preserved exactly.
type Polygon struct {
	Vertices []Point
	Color    Color
}

// Tag implements Command.
func (Polygon) Tag() Tag { return TagPolygon }

// Circle is a circle. Whether it is filled or outlined is decided by the
// renderer configuration, not by the record.
type Circle struct {
	Center Point
	Radius float64
	Color  Color
}

// Tag implements Command.
func (Circle) Tag() Tag { return TagCircle }

// Text is a string drawn with its baseline origin at Position.
type Text struct {
	Position Point
	Size     float64
	Color    Color
	Text     string
}

// Tag implements Command.
func (Text) Tag() Tag { return TagText }
