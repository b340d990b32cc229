// Command gvdemo records a short animated trace and replays it.
//
// By default the trace is shown in an SDL window: Left/Right scrub through
// the steps, Up/Down and the mouse wheel zoom, dragging pans, End returns
// to the newest step and Home resets the view. With -headless the newest
// step is rendered off-screen and written to a PNG file.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"time"

	"github.com/dustin/go-humanize"

	gv "github.com/inada-s/gv-sdl"
	"github.com/inada-s/gv-sdl/backends/raster"
	_ "github.com/inada-s/gv-sdl/backends/sdl"
	"github.com/inada-s/gv-sdl/camera"
)

// SDL must run on the main thread.
func init() { runtime.LockOSThread() }

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stderr io.Writer) error {
	fs := flag.NewFlagSet("gvdemo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		width    = fs.Int("width", gv.DefaultWidth, "window width")
		height   = fs.Int("height", gv.DefaultHeight, "window height")
		config   = fs.String("config", "", "YAML config file")
		font     = fs.String("font", "", "TrueType/OpenType font file (default: Go Regular)")
		steps    = fs.Int("steps", 100, "number of time steps")
		delay    = fs.Duration("delay", 100*time.Millisecond, "pause after each step")
		fill     = fs.Bool("fill", false, "draw circles filled")
		yUp      = fs.Bool("yup", false, "y axis points up")
		headless = fs.Bool("headless", false, "render off-screen and write -output")
		output   = fs.String("output", "demo.png", "output file for -headless")
		verbose  = fs.Bool("v", false, "debug logging")
	)
	if err := fs.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gv.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level})))

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	opts := []gv.Option{
		gv.WithTitle("gvdemo"),
	}
	w, h := *width, *height
	if *config != "" {
		cfg, err := gv.LoadConfig(*config)
		if err != nil {
			return err
		}
		opts = append(opts, gv.WithConfig(cfg))
		if cfg.Width > 0 && !set["width"] {
			w = cfg.Width
		}
		if cfg.Height > 0 && !set["height"] {
			h = cfg.Height
		}
	}
	// Explicit flags override the config file.
	opts = append(opts, gv.WithSize(w, h))
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "font":
			opts = append(opts, gv.WithFontPath(*font))
		case "fill":
			opts = append(opts, gv.WithFillCircles(*fill))
		case "yup":
			if *yUp {
				opts = append(opts, gv.WithYAxis(camera.YUp))
			}
		}
	})

	if !*headless {
		e := gv.NewEngine(opts...)
		return e.Run(ctx, demo(*steps, *delay))
	}

	r, err := raster.New(w, h, raster.WithFontPath(*font))
	if err != nil {
		return err
	}
	defer r.Close()

	opts = append(opts, gv.WithRenderer(r), gv.WithExitWhenDone(true))
	e := gv.NewEngine(opts...)
	if err := e.Run(ctx, demo(*steps, *delay)); err != nil {
		return err
	}
	if err := r.SavePNG(*output); err != nil {
		return fmt.Errorf("save %s: %w", *output, err)
	}
	st := e.Log().Stats()
	log.Printf("Step %d saved to %s (%dx%d, trace %s in %d steps)",
		st.Frames-1, *output, w, h, humanize.Bytes(uint64(st.Bytes)), st.Frames)
	return nil
}

// demo draws a fan of arrows and lines sweeping across a circle, with a
// counter shown on some of the steps.
func demo(steps int, delay time.Duration) gv.Producer {
	return func(ctx context.Context, e *gv.Engine) error {
		for i := 0; i < steps; i++ {
			e.NewTime()

			if i > 10 && i < 50 {
				e.Text(100, 100, 5, e.ColorIndex(4), "Hello!!! %d", i)
			}

			e.SetDefaultAlpha(128)
			x := float64(i)
			e.Arrow(x, 10, 200, 200, 10, e.ColorIndex(i))
			e.Line(200-x, 10, 10, 200, 10, e.ColorIndex(i))
			e.Circle(100, 100, 100, false, e.ColorIndex(i))
			e.Rect(150, 150, 100, 100, gv.RGBA(255, 128, 128, 128))
			e.Flush()

			if delay <= 0 {
				continue
			}
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(delay):
			}
		}
		return nil
	}
}
