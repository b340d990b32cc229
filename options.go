package gv

import (
	"log/slog"

	"golang.org/x/text/language"

	"github.com/inada-s/gv-sdl/camera"
	"github.com/inada-s/gv-sdl/player"
)

// Option configures an Engine during creation.
//
// Example:
//
//	// SDL window, 1024x768, filled circles
//	e := gv.NewEngine(gv.WithSize(1024, 768), gv.WithFillCircles(true))
//
//	// Off-screen rendering through an injected renderer
//	e := gv.NewEngine(gv.WithRenderer(r), gv.WithInput(in))
type Option func(*options)

// options holds optional configuration for Engine creation.
type options struct {
	width, height int
	title         string
	fontPath      string
	fps           int
	fillCircles   bool
	axis          camera.YAxis
	background    Color
	defaultAlpha  uint8
	backend       string
	renderer      player.Renderer
	input         player.InputSource
	logger        *slog.Logger
	lang          language.Tag
	exitWhenDone  bool
}

// Defaults used by NewEngine.
const (
	DefaultWidth   = 800
	DefaultHeight  = 800
	DefaultTitle   = "gv"
	DefaultBackend = "sdl"
)

// defaultOptions returns the default engine options.
func defaultOptions() options {
	return options{
		width:        DefaultWidth,
		height:       DefaultHeight,
		title:        DefaultTitle,
		fps:          player.DefaultFPS,
		axis:         camera.YDown,
		background:   Black,
		defaultAlpha: DefaultAlpha,
		backend:      DefaultBackend,
		lang:         language.Und,
	}
}

// WithSize sets the window or image size in pixels.
// Non-positive values keep the default.
func WithSize(width, height int) Option {
	return func(o *options) {
		if width > 0 {
			o.width = width
		}
		if height > 0 {
			o.height = height
		}
	}
}

// WithTitle sets the window title.
func WithTitle(title string) Option {
	return func(o *options) {
		o.title = title
	}
}

// WithFontPath sets the TrueType/OpenType font used for text.
// Empty selects the renderer's built-in font.
func WithFontPath(path string) Option {
	return func(o *options) {
		o.fontPath = path
	}
}

// WithFPS sets the render loop rate.
func WithFPS(fps int) Option {
	return func(o *options) {
		if fps > 0 {
			o.fps = fps
		}
	}
}

// WithFillCircles draws Circle records as filled discs instead of outlines.
func WithFillCircles(fill bool) Option {
	return func(o *options) {
		o.fillCircles = fill
	}
}

// WithYAxis sets the content-space y convention.
func WithYAxis(axis camera.YAxis) Option {
	return func(o *options) {
		o.axis = axis
	}
}

// WithBackground sets the clear color.
func WithBackground(c Color) Option {
	return func(o *options) {
		o.background = c
	}
}

// WithDefaultAlpha sets the initial alpha used by ColorIndex.
func WithDefaultAlpha(a uint8) Option {
	return func(o *options) {
		o.defaultAlpha = a
	}
}

// WithBackend selects a registered renderer by name ("sdl", "raster").
// The backend package must be imported for its renderer to be registered.
func WithBackend(name string) Option {
	return func(o *options) {
		o.backend = name
	}
}

// WithRenderer injects a renderer, overriding WithBackend.
// The caller keeps ownership: Run does not close it.
func WithRenderer(r player.Renderer) Option {
	return func(o *options) {
		o.renderer = r
	}
}

// WithInput sets the input source. Without it, a renderer that is also an
// InputSource (such as the SDL window) provides the input.
func WithInput(in player.InputSource) Option {
	return func(o *options) {
		o.input = in
	}
}

// WithLogger sets the logger used for the engine's own messages.
// Sub-packages keep using the logger installed with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithLanguage formats numbers in Text records the way tag's language
// writes them, e.g. language.English groups digits ("1,500").
// language.Und, the default, formats exactly like fmt.Sprintf.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) {
		o.lang = tag
	}
}

// WithExitWhenDone makes Run return once the producer has returned and
// its last records have been rendered, instead of waiting for the user to
// close the window.
func WithExitWhenDone(exit bool) Option {
	return func(o *options) {
		o.exitWhenDone = exit
	}
}
