package gv

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"

	"github.com/inada-s/gv-sdl/camera"
)

// ErrInvalidConfig is matched by every configuration validation error.
var ErrInvalidConfig = errors.New("gv: invalid config")

// Config is the file form of the engine options. Zero fields keep the
// defaults.
//
//	width: 1024
//	height: 768
//	title: trace
//	font_path: /usr/share/fonts/TTF/DejaVuSans.ttf
//	fps: 30
//	fill_circles: true
//	y_axis: up
//	background: "#202020"
//	default_alpha: 128
//	backend: sdl
//	language: ja # locale number formatting; omit for plain fmt output
type Config struct {
	Width        int    `yaml:"width"`
	Height       int    `yaml:"height"`
	Title        string `yaml:"title"`
	FontPath     string `yaml:"font_path"`
	FPS          int    `yaml:"fps"`
	FillCircles  bool   `yaml:"fill_circles"`
	YAxis        string `yaml:"y_axis"`
	Background   string `yaml:"background"`
	DefaultAlpha *int   `yaml:"default_alpha"`
	Backend      string `yaml:"backend"`
	Language     string `yaml:"language"`
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("gv: load config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%w (%s)", err, path)
	}
	return cfg, nil
}

// ParseConfig parses and validates a YAML config. Unknown keys are errors.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("gv: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the field values.
func (c Config) Validate() error {
	if c.Width < 0 || c.Height < 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.FPS < 0 {
		return fmt.Errorf("%w: fps %d", ErrInvalidConfig, c.FPS)
	}
	if _, err := parseYAxis(c.YAxis); err != nil {
		return err
	}
	if c.Background != "" {
		if _, err := ParseColor(c.Background); err != nil {
			return fmt.Errorf("%w: background: %w", ErrInvalidConfig, err)
		}
	}
	if c.DefaultAlpha != nil && (*c.DefaultAlpha < 0 || *c.DefaultAlpha > 255) {
		return fmt.Errorf("%w: default_alpha %d not in [0, 255]", ErrInvalidConfig, *c.DefaultAlpha)
	}
	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w: language: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}

func parseYAxis(s string) (camera.YAxis, error) {
	switch strings.ToLower(s) {
	case "", "down":
		return camera.YDown, nil
	case "up":
		return camera.YUp, nil
	default:
		return camera.YDown, fmt.Errorf("%w: y_axis %q (want up or down)", ErrInvalidConfig, s)
	}
}

// WithConfig applies the non-zero fields of cfg. Invalid fields are
// ignored; use ParseConfig or Config.Validate to report them.
func WithConfig(cfg Config) Option {
	return func(o *options) {
		WithSize(cfg.Width, cfg.Height)(o)
		WithFPS(cfg.FPS)(o)
		if cfg.Title != "" {
			o.title = cfg.Title
		}
		if cfg.FontPath != "" {
			o.fontPath = cfg.FontPath
		}
		if cfg.FillCircles {
			o.fillCircles = true
		}
		if cfg.YAxis != "" {
			if axis, err := parseYAxis(cfg.YAxis); err == nil {
				o.axis = axis
			}
		}
		if cfg.Background != "" {
			if c, err := ParseColor(cfg.Background); err == nil {
				o.background = c
			}
		}
		if a := cfg.DefaultAlpha; a != nil && *a >= 0 && *a <= 255 {
			o.defaultAlpha = uint8(*a)
		}
		if cfg.Backend != "" {
			o.backend = cfg.Backend
		}
		if cfg.Language != "" {
			if tag, err := language.Parse(cfg.Language); err == nil {
				o.lang = tag
			}
		}
	}
}
