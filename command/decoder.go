package command

import "math"

// Decode decodes the single record starting at buf[off].
// It returns the command and the offset of the following record.
// A truncated record or an unknown tag yields a *CorruptLogError.
func Decode(buf []byte, off int) (Command, int, error) {
	if off < 0 || off >= len(buf) {
		return nil, off, &CorruptLogError{Offset: off, Reason: "offset out of range"}
	}
	tag := Tag(buf[off])
	if !tag.IsValid() {
		return nil, off, &CorruptLogError{Offset: off, Tag: tag, Reason: "unknown tag"}
	}
	r := reader{buf: buf, pos: off + tagSize}
	if !r.has(tag.headerSize()) {
		return nil, off, &CorruptLogError{Offset: off, Tag: tag, Reason: "truncated header"}
	}

	switch tag {
	case TagFrameMarker:
		return FrameMarker{Timestamp: r.float()}, r.pos, nil

	case TagPolygon:
		c := r.color()
		n := int(r.uint32())
		if !r.has(n * pointSize) {
			return nil, off, &CorruptLogError{Offset: off, Tag: tag, Reason: "truncated vertices"}
		}
		vertices := make([]Point, n)
		for i := range vertices {
			vertices[i] = Point{X: r.float(), Y: r.float()}
		}
		return Polygon{Vertices: vertices, Color: c}, r.pos, nil

	case TagCircle:
		c := r.color()
		x, y := r.float(), r.float()
		return Circle{Center: Point{X: x, Y: y}, Radius: r.float(), Color: c}, r.pos, nil

	default: // TagText
		c := r.color()
		x, y := r.float(), r.float()
		size := r.float()
		n := int(r.uint32())
		if !r.has(n) {
			return nil, off, &CorruptLogError{Offset: off, Tag: tag, Reason: "truncated string"}
		}
		s := string(r.buf[r.pos : r.pos+n])
		r.pos += n
		return Text{Position: Point{X: x, Y: y}, Size: size, Color: c, Text: s}, r.pos, nil
	}
}

// PeekTag returns the tag of the record at buf[off] without decoding it.
// ok is false if off is out of range.
func PeekTag(buf []byte, off int) (tag Tag, ok bool) {
	if off < 0 || off >= len(buf) {
		return 0, false
	}
	return Tag(buf[off]), true
}

// Decoder provides sequential decoding of a record stream.
//
// Example usage:
//
//	dec := command.NewDecoder(frame)
//	for dec.Next() {
//	    switch c := dec.Command().(type) {
//	    case command.Polygon:
//	        // draw c.Vertices
//	    }
//	}
//	if err := dec.Err(); err != nil {
//	    // the stream is corrupt from dec.Offset() on
//	}
type Decoder struct {
	buf []byte
	pos int
	off int
	cmd Command
	err error
}

// NewDecoder creates a decoder over buf.
func NewDecoder(buf []byte) *Decoder {
	return &Decoder{buf: buf}
}

// Reset points the decoder at a new buffer.
func (d *Decoder) Reset(buf []byte) {
	d.buf = buf
	d.pos = 0
	d.off = 0
	d.cmd = nil
	d.err = nil
}

// Next decodes the next record. It returns false at the end of the buffer
// or on the first decoding error; use Err to tell them apart.
func (d *Decoder) Next() bool {
	if d.err != nil || d.pos >= len(d.buf) {
		d.cmd = nil
		return false
	}
	cmd, next, err := Decode(d.buf, d.pos)
	if err != nil {
		d.err = err
		d.cmd = nil
		return false
	}
	d.off = d.pos
	d.pos = next
	d.cmd = cmd
	return true
}

// Command returns the record decoded by the last call to Next.
func (d *Decoder) Command() Command {
	return d.cmd
}

// Tag returns the tag of the current record, or zero if there is none.
func (d *Decoder) Tag() Tag {
	if d.cmd == nil {
		return 0
	}
	return d.cmd.Tag()
}

// Offset returns the byte offset of the current record.
func (d *Decoder) Offset() int {
	return d.off
}

// HasMore reports whether there are undecoded bytes left.
func (d *Decoder) HasMore() bool {
	return d.err == nil && d.pos < len(d.buf)
}

// Err returns the decoding error that stopped iteration, if any.
func (d *Decoder) Err() error {
	return d.err
}

// DecodeAll decodes every record in buf. On error it returns the records
// decoded so far together with the error.
func DecodeAll(buf []byte) ([]Command, error) {
	var out []Command
	dec := NewDecoder(buf)
	for dec.Next() {
		out = append(out, dec.Command())
	}
	return out, dec.Err()
}

type reader struct {
	buf []byte
	pos int
}

func (r *reader) has(n int) bool {
	return n >= 0 && n <= len(r.buf)-r.pos
}

func (r *reader) float() float64 {
	v := math.Float64frombits(le.Uint64(r.buf[r.pos:]))
	r.pos += float64Len
	return v
}

func (r *reader) uint32() uint32 {
	v := le.Uint32(r.buf[r.pos:])
	r.pos += uint32Len
	return v
}

func (r *reader) color() Color {
	c := Color{R: r.buf[r.pos], G: r.buf[r.pos+1], B: r.buf[r.pos+2], A: r.buf[r.pos+3]}
	r.pos += colorSize
	return c
}
