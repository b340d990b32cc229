// Package raster implements the software renderer on top of gg.
//
// The renderer draws into an in-memory gg.Pixmap. It is registered with
// the player registry as "raster"; backends/sdl wraps it to upload each
// frame into a window.
//
// Text is drawn with the Go Regular font unless a font file is configured.
package raster

import (
	"fmt"
	"image"
	"math"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/inada-s/gv-sdl/command"
	"github.com/inada-s/gv-sdl/geom"
	"github.com/inada-s/gv-sdl/internal/logging"
	"github.com/inada-s/gv-sdl/player"
)

// Name is the registry name of the renderer.
const Name = "raster"

func init() {
	player.Register(Name, func(cfg player.RendererConfig) (player.Renderer, error) {
		return New(cfg.Width, cfg.Height, WithFontPath(cfg.FontPath))
	})
}

const (
	// outlineWidth is the stroke width of circle outlines in pixels.
	outlineWidth = 1.0

	// minTextSize is the smallest font size drawn; smaller text is
	// measured but not rasterized.
	minTextSize = 1.0

	// maxFaces bounds the face cache; zooming creates one face per size.
	maxFaces = 64
)

// Option configures a Renderer.
type Option func(*config)

type config struct {
	fontPath string
	noFont   bool
}

// WithFontPath loads text glyphs from a TrueType/OpenType file instead of
// the built-in font. Empty keeps the built-in font.
func WithFontPath(path string) Option {
	return func(c *config) {
		c.fontPath = path
	}
}

// WithoutFont disables text; DrawText returns player.ErrNoFont.
func WithoutFont() Option {
	return func(c *config) {
		c.noFont = true
	}
}

// Renderer is a software player.Renderer.
type Renderer struct {
	pm *gg.Pixmap
	dc *gg.Context

	source *text.FontSource
	faces  map[float64]text.Face
}

var (
	_ player.Renderer   = (*Renderer)(nil)
	_ player.FontLoader = (*Renderer)(nil)
)

// New creates a renderer drawing into a width x height pixmap.
func New(width, height int, opts ...Option) (*Renderer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("raster: invalid size %dx%d", width, height)
	}
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	pm := gg.NewPixmap(width, height)
	r := &Renderer{
		pm:    pm,
		dc:    gg.NewContext(width, height, gg.WithPixmap(pm)),
		faces: make(map[float64]text.Face),
	}

	switch {
	case cfg.noFont:
	case cfg.fontPath != "":
		if err := r.LoadFont(cfg.fontPath); err != nil {
			return nil, err
		}
	default:
		src, err := text.NewFontSource(goregular.TTF)
		if err != nil {
			return nil, fmt.Errorf("raster: built-in font: %w", err)
		}
		r.source = src
	}
	return r, nil
}

// LoadFont replaces the text font with the one in the file at path.
// On error the current font is kept.
func (r *Renderer) LoadFont(path string) error {
	src, err := text.NewFontSourceFromFile(path)
	if err != nil {
		return fmt.Errorf("raster: load font: %w", err)
	}
	if r.source != nil {
		if err := r.source.Close(); err != nil {
			logging.Logger().Debug("raster: close font", "err", err)
		}
	}
	r.source = src
	clear(r.faces)
	logging.Logger().Info("raster: font loaded", "path", path, "name", src.Name())
	return nil
}

// Size returns the pixmap size.
func (r *Renderer) Size() (width, height int) {
	return r.pm.Width(), r.pm.Height()
}

// Clear fills the pixmap with bg.
func (r *Renderer) Clear(bg command.Color) {
	r.dc.ClearWithColor(toRGBA(bg))
}

// FillPolygon fills a polygon with the nonzero rule. Fewer than three
// vertices draw nothing.
func (r *Renderer) FillPolygon(vertices []command.Point, c command.Color) error {
	if len(vertices) < 3 {
		return nil
	}
	r.dc.MoveTo(vertices[0].X, vertices[0].Y)
	for _, v := range vertices[1:] {
		r.dc.LineTo(v.X, v.Y)
	}
	r.dc.ClosePath()
	r.setColor(c)
	return r.dc.Fill()
}

// DrawCircle draws a one-pixel outline, or a filled 64-gon when filled.
func (r *Renderer) DrawCircle(center command.Point, radius float64, filled bool, c command.Color) error {
	if radius <= 0 {
		return nil
	}
	if filled {
		return r.FillPolygon(geom.CirclePolygon(center.X, center.Y, radius, geom.CircleSegments), c)
	}
	r.dc.DrawCircle(center.X, center.Y, radius)
	r.setColor(c)
	r.dc.SetLineWidth(outlineWidth)
	return r.dc.Stroke()
}

// DrawText draws s with its baseline origin at pos and returns the box
// from the font's ascent to its descent over the advance width.
func (r *Renderer) DrawText(pos command.Point, size float64, c command.Color, s string) (geom.Rect, error) {
	if r.source == nil {
		return geom.EmptyRect(), player.ErrNoFont
	}
	if size < minTextSize || s == "" {
		return geom.EmptyRect(), nil
	}
	face := r.face(size)
	r.dc.SetFont(face)
	r.setColor(c)
	r.dc.DrawString(s, pos.X, pos.Y)

	m := face.Metrics()
	return geom.Rect{
		MinX: pos.X,
		MinY: pos.Y - m.Ascent,
		MaxX: pos.X + face.Advance(s),
		MaxY: pos.Y + m.Descent,
	}, nil
}

// Present is a no-op: the pixmap is always up to date.
func (r *Renderer) Present() error {
	return nil
}

// Pixmap returns the pixmap the renderer draws into. Pixels are
// premultiplied RGBA, row-major.
func (r *Renderer) Pixmap() *gg.Pixmap {
	return r.pm
}

// Image returns a copy of the current frame.
func (r *Renderer) Image() image.Image {
	return r.pm.ToImage()
}

// SavePNG writes the current frame to a PNG file.
func (r *Renderer) SavePNG(path string) error {
	return r.pm.SavePNG(path)
}

// Close releases the font.
func (r *Renderer) Close() error {
	if r.source == nil {
		return nil
	}
	err := r.source.Close()
	r.source = nil
	clear(r.faces)
	return err
}

// face returns a cached face for size, quantized to quarter pixels.
func (r *Renderer) face(size float64) text.Face {
	key := math.Round(size*4) / 4
	if f, ok := r.faces[key]; ok {
		return f
	}
	if len(r.faces) >= maxFaces {
		clear(r.faces)
	}
	f := r.source.Face(key)
	r.faces[key] = f
	return f
}

func (r *Renderer) setColor(c command.Color) {
	cr, cg, cb, ca := c.RGBA()
	r.dc.SetRGBA(cr, cg, cb, ca)
}

func toRGBA(c command.Color) gg.RGBA {
	cr, cg, cb, ca := c.RGBA()
	return gg.RGBA{R: cr, G: cg, B: cb, A: ca}
}
