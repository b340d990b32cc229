package player

import (
	"errors"

	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
)

// ErrNoFont is returned by Renderer.DrawText when no font is configured.
// The driver skips the record and keeps rendering.
var ErrNoFont = errors.New("player: no font configured")

// Renderer draws decoded primitives in screen space.
//
// The driver calls Clear, then one draw call per record of the selected
// frame, then Present, all from the render goroutine. Coordinates and
// sizes passed to a Renderer are already transformed to pixels.
type Renderer interface {
	// Size returns the drawable size in pixels.
	Size() (width, height int)

	// Clear fills the drawable with the background color.
	Clear(bg command.Color)

	// FillPolygon fills a polygon.
	FillPolygon(vertices []command.Point, c command.Color) error

	// DrawCircle draws a circle outline, or a filled disc if filled is set.
	DrawCircle(center command.Point, radius float64, filled bool, c command.Color) error

	// DrawText draws s with its baseline origin at pos and returns the
	// box the glyphs occupy. Text extent depends on font metrics, so the
	// returned box is what the driver folds into the content bounds.
	DrawText(pos command.Point, size float64, c command.Color, s string) (geom.Rect, error)

	// Present makes the drawn frame visible.
	Present() error
}

// RendererConfig configures renderers created through the registry.
type RendererConfig struct {
	Width, Height int
	Title         string
	// FontPath is a TrueType/OpenType file used for text. Empty selects
	// the renderer's built-in font, if any.
	FontPath string
}

// FontLoader is implemented by renderers that can switch fonts at run time.
type FontLoader interface {
	LoadFont(path string) error
}
