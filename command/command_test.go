package command

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestTagString(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagFrameMarker, "FrameMarker"},
		{TagPolygon, "Polygon"},
		{TagCircle, "Circle"},
		{TagText, "Text"},
		{Tag('x'), "Unknown"},
	}
	for _, tt := range tests {
		if got := tt.tag.String(); got != tt.want {
			t.Errorf("Tag(%q).String() = %q, want %q", byte(tt.tag), got, tt.want)
		}
	}
}

func TestTagBytes(t *testing.T) {
	// The tag bytes are part of the wire format.
	if TagFrameMarker != 'n' || TagPolygon != 'p' || TagCircle != 'c' || TagText != 't' {
		t.Fatal("record tags changed")
	}
}

func TestRoundTrip(t *testing.T) {
	red := Color{R: 255, A: 255}
	tests := []struct {
		name string
		cmd  Command
	}{
		{"frame marker", FrameMarker{Timestamp: 42}},
		{"frame marker negative zero", FrameMarker{Timestamp: math.Copysign(0, -1)}},
		{"polygon", Polygon{
			Vertices: []Point{{0, 0}, {10, 0}, {10, 5}, {-3.25, 1e9}},
			Color:    red,
		}},
		{"polygon empty", Polygon{Vertices: []Point{}, Color: red}},
		{"circle", Circle{Center: Pt(5, 5), Radius: 3, Color: Color{B: 255, A: 128}}},
		{"text ascii", Text{Position: Pt(1, 2), Size: 12, Color: red, Text: "hello 42"}},
		{"text non-ascii", Text{Position: Pt(-1, 2.5), Size: 5, Color: red, Text: "こんにちは ✓ ü"}},
		{"text empty", Text{Position: Pt(0, 0), Size: 1, Color: red, Text: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := Append(nil, tt.cmd)
			if len(buf) != EncodedSize(tt.cmd) {
				t.Errorf("len(encoded) = %d, EncodedSize() = %d", len(buf), EncodedSize(tt.cmd))
			}
			got, next, err := Decode(buf, 0)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if next != len(buf) {
				t.Errorf("Decode() next = %d, want %d", next, len(buf))
			}
			if !reflect.DeepEqual(got, tt.cmd) {
				t.Errorf("Decode() = %#v, want %#v", got, tt.cmd)
			}
		})
	}
}

func TestRoundTripPointerCommands(t *testing.T) {
	cmd := &Circle{Center: Pt(1, 2), Radius: 3}
	buf := Append(nil, cmd)
	got, _, err := Decode(buf, 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if got != (Circle{Center: Pt(1, 2), Radius: 3}) {
		t.Errorf("Decode() = %#v", got)
	}
}

func TestPolygonPreservesOrder(t *testing.T) {
	vs := make([]Point, 64)
	for i := range vs {
		vs[i] = Pt(float64(i), float64(-i))
	}
	got, _, err := Decode(AppendPolygon(nil, vs, Color{}), 0)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	p := got.(Polygon)
	if len(p.Vertices) != len(vs) {
		t.Fatalf("vertex count = %d, want %d", len(p.Vertices), len(vs))
	}
	for i := range vs {
		if p.Vertices[i] != vs[i] {
			t.Errorf("vertex %d = %v, want %v", i, p.Vertices[i], vs[i])
		}
	}
}

func TestWireLayout(t *testing.T) {
	buf := AppendCircle(nil, Pt(1, 0), 0, Color{R: 1, G: 2, B: 3, A: 4})
	want := []byte{
		'c', 1, 2, 3, 4,
		0, 0, 0, 0, 0, 0, 0xf0, 0x3f, // 1.0 little-endian
		0, 0, 0, 0, 0, 0, 0, 0,
		0, 0, 0, 0, 0, 0, 0, 0,
	}
	if !reflect.DeepEqual(buf, want) {
		t.Errorf("AppendCircle() = %v, want %v", buf, want)
	}
}

func TestDecoderSequence(t *testing.T) {
	var buf []byte
	buf = AppendFrameMarker(buf, 0)
	buf = AppendPolygon(buf, []Point{{0, 0}, {1, 1}, {2, 0}}, Color{})
	buf = AppendCircle(buf, Pt(5, 5), 3, Color{})
	buf = AppendText(buf, Pt(0, 0), 10, Color{}, "x")

	dec := NewDecoder(buf)
	var tags []Tag
	var offsets []int
	for dec.Next() {
		tags = append(tags, dec.Tag())
		offsets = append(offsets, dec.Offset())
	}
	if err := dec.Err(); err != nil {
		t.Fatalf("Err() = %v", err)
	}
	want := []Tag{TagFrameMarker, TagPolygon, TagCircle, TagText}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("tags = %v, want %v", tags, want)
	}
	if offsets[0] != 0 || offsets[1] != 9 {
		t.Errorf("offsets = %v, want [0 9 ...]", offsets)
	}
	if dec.HasMore() {
		t.Error("HasMore() = true after end")
	}
}

func TestDecodeCorrupt(t *testing.T) {
	full := AppendText(AppendPolygon(nil, []Point{{1, 2}, {3, 4}}, Color{}), Pt(0, 0), 1, Color{}, "hello")

	tests := []struct {
		name string
		buf  []byte
	}{
		{"unknown tag", []byte{'z', 0, 0, 0}},
		{"truncated header", full[:3]},
		{"truncated vertices", full[:20]},
		{"truncated string", full[:len(full)-2]},
		{"marker without timestamp", []byte{'n', 1, 2}},
		{"huge vertex count", []byte{'p', 0, 0, 0, 0, 0xff, 0xff, 0xff, 0xff}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeAll(tt.buf)
			if err == nil {
				t.Fatal("DecodeAll() error = nil, want corrupt log error")
			}
			if !errors.Is(err, ErrCorruptLog) {
				t.Errorf("errors.Is(err, ErrCorruptLog) = false for %v", err)
			}
			var ce *CorruptLogError
			if !errors.As(err, &ce) {
				t.Fatalf("error %T is not *CorruptLogError", err)
			}
		})
	}
}

func TestDecodeAllKeepsPrefix(t *testing.T) {
	buf := AppendFrameMarker(nil, 1)
	buf = AppendCircle(buf, Pt(0, 0), 1, Color{})
	buf = append(buf, 'q')

	cmds, err := DecodeAll(buf)
	if !errors.Is(err, ErrCorruptLog) {
		t.Fatalf("DecodeAll() error = %v, want ErrCorruptLog", err)
	}
	if len(cmds) != 2 {
		t.Errorf("decoded %d commands before the error, want 2", len(cmds))
	}
	var ce *CorruptLogError
	if errors.As(err, &ce) && ce.Offset != len(buf)-1 {
		t.Errorf("CorruptLogError.Offset = %d, want %d", ce.Offset, len(buf)-1)
	}
}

func TestDecodeOutOfRange(t *testing.T) {
	if _, _, err := Decode(nil, 0); !errors.Is(err, ErrCorruptLog) {
		t.Errorf("Decode(nil, 0) error = %v, want ErrCorruptLog", err)
	}
	if _, ok := PeekTag([]byte{'n'}, 1); ok {
		t.Error("PeekTag past the end reported ok")
	}
}
