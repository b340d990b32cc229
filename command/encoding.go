package command

import (
	"encoding/binary"
	"math"
)

var le = binary.LittleEndian

// AppendFrameMarker appends a FrameMarker record to buf.
func AppendFrameMarker(buf []byte, timestamp float64) []byte {
	buf = append(buf, byte(TagFrameMarker))
	return appendFloat(buf, timestamp)
}

// AppendPolygon appends a Polygon record to buf.
// The vertex count is written explicitly ahead of the vertices.
func AppendPolygon(buf []byte, vertices []Point, c Color) []byte {
	n := len(vertices)
	if n > math.MaxUint32 {
		n = math.MaxUint32
	}
	buf = append(buf, byte(TagPolygon))
	buf = appendColor(buf, c)
	buf = le.AppendUint32(buf, uint32(n))
	for _, v := range vertices[:n] {
		buf = appendFloat(buf, v.X)
		buf = appendFloat(buf, v.Y)
	}
	return buf
}

// AppendCircle appends a Circle record to buf.
func AppendCircle(buf []byte, center Point, radius float64, c Color) []byte {
	buf = append(buf, byte(TagCircle))
	buf = appendColor(buf, c)
	buf = appendFloat(buf, center.X)
	buf = appendFloat(buf, center.Y)
	return appendFloat(buf, radius)
}

// AppendText appends a Text record to buf. The string bytes are stored
// verbatim behind a uint32 length prefix.
func AppendText(buf []byte, pos Point, size float64, c Color, s string) []byte {
	if len(s) > math.MaxUint32 {
		s = s[:math.MaxUint32]
	}
	buf = append(buf, byte(TagText))
	buf = appendColor(buf, c)
	buf = appendFloat(buf, pos.X)
	buf = appendFloat(buf, pos.Y)
	buf = appendFloat(buf, size)
	buf = le.AppendUint32(buf, uint32(len(s)))
	return append(buf, s...)
}

// Append appends any command to buf. Unknown command types leave buf
// unchanged.
func Append(buf []byte, cmd Command) []byte {
	switch c := cmd.(type) {
	case FrameMarker:
		return AppendFrameMarker(buf, c.Timestamp)
	case *FrameMarker:
		return AppendFrameMarker(buf, c.Timestamp)
	case Polygon:
		return AppendPolygon(buf, c.Vertices, c.Color)
	case *Polygon:
		return AppendPolygon(buf, c.Vertices, c.Color)
	case Circle:
		return AppendCircle(buf, c.Center, c.Radius, c.Color)
	case *Circle:
		return AppendCircle(buf, c.Center, c.Radius, c.Color)
	case Text:
		return AppendText(buf, c.Position, c.Size, c.Color, c.Text)
	case *Text:
		return AppendText(buf, c.Position, c.Size, c.Color, c.Text)
	default:
		return buf
	}
}

// EncodedSize returns the number of bytes Append would write for cmd.
func EncodedSize(cmd Command) int {
	switch c := cmd.(type) {
	case FrameMarker, *FrameMarker:
		return tagSize + TagFrameMarker.headerSize()
	case Polygon:
		return tagSize + TagPolygon.headerSize() + len(c.Vertices)*pointSize
	case *Polygon:
		return tagSize + TagPolygon.headerSize() + len(c.Vertices)*pointSize
	case Circle, *Circle:
		return tagSize + TagCircle.headerSize()
	case Text:
		return tagSize + TagText.headerSize() + len(c.Text)
	case *Text:
		return tagSize + TagText.headerSize() + len(c.Text)
	default:
		return 0
	}
}

func appendFloat(buf []byte, f float64) []byte {
	return le.AppendUint64(buf, math.Float64bits(f))
}

func appendColor(buf []byte, c Color) []byte {
	return append(buf, c.R, c.G, c.B, c.A)
}
