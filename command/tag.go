// Package command provides the binary record format of the gv command log.
//
// Every record starts with a single tag byte followed by fixed-width fields
// in a fixed order per tag. Multi-byte values are little-endian; floating
// point values are IEEE-754 float64 bits; vertex counts and string lengths
// are uint32 prefixes.
//
//	'n' FrameMarker  timestamp f64
//	'p' Polygon      color[4] count u32 count*(x f64, y f64)
//	'c' Circle       color[4] x f64 y f64 r f64
//	't' Text         color[4] x f64 y f64 size f64 len u32 bytes[len]
//
// Records carry no version or padding; a decoder must read fields in
// exactly the encoded order.
package command

// Tag is the one-byte record identifier at the start of every record.
type Tag byte

// Record tags.
const (
	// TagFrameMarker starts a new frame (logical time step).
	TagFrameMarker Tag = 'n'

	// TagPolygon is a filled polygon with an explicit vertex count.
	TagPolygon Tag = 'p'

	// TagCircle is a circle given by center and radius.
	TagCircle Tag = 'c'

	// TagText is a UTF-8 string with position, size and color.
	TagText Tag = 't'
)

// String returns a human-readable name for the tag.
func (t Tag) String() string {
	switch t {
	case TagFrameMarker:
		return "FrameMarker"
	case TagPolygon:
		return "Polygon"
	case TagCircle:
		return "Circle"
	case TagText:
		return "Text"
	default:
		return "Unknown"
	}
}

// IsValid reports whether t is one of the known record tags.
func (t Tag) IsValid() bool {
	switch t {
	case TagFrameMarker, TagPolygon, TagCircle, TagText:
		return true
	}
	return false
}

// Fixed field sizes in bytes.
const (
	tagSize    = 1
	colorSize  = 4
	float64Len = 8
	uint32Len  = 4
	pointSize  = 2 * float64Len
)

// headerSize returns the number of fixed bytes following the tag,
// up to (not including) any variable-length payload.
func (t Tag) headerSize() int {
	switch t {
	case TagFrameMarker:
		return float64Len
	case TagPolygon:
		return colorSize + uint32Len
	case TagCircle:
		return colorSize + 3*float64Len
	case TagText:
		return colorSize + 3*float64Len + uint32Len
	default:
		return 0
	}
}
