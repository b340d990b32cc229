// Package gv provides a runtime visual tracer.
//
// # Overview
//
// Application code draws lines, arrows, circles, rectangles and text into
// an Engine, grouped by logical time steps. A render loop replays the
// recorded steps in a window (or an off-screen image) and lets the
// developer scrub backward and forward through the history of what was
// drawn at each step.
//
// # Quick Start
//
//	import (
//	    "github.com/inada-s/gv-sdl"
//	    _ "github.com/inada-s/gv-sdl/backends/sdl"
//	)
//
//	e := gv.NewEngine(gv.WithSize(800, 800))
//	err := e.Run(ctx, func(ctx context.Context, e *gv.Engine) error {
//	    for i := 0; i < 100; i++ {
//	        e.NewTime()
//	        e.Circle(100, 100, float64(i), false, e.ColorIndex(i))
//	        e.Flush()
//	    }
//	    return nil
//	})
//
// # Time Steps
//
// NewTime starts a new step; everything drawn until the next NewTime
// belongs to it. Records become visible to the render loop on Flush (and
// on the implicit flush done by NewTime). The render loop follows the
// newest step until the user scrubs with the arrow keys; End returns to
// following.
//
// # Coordinate System
//
// Content coordinates are y-down by default, like screen coordinates.
// WithYAxis(camera.YUp) flips the view for y-up data. The view is fitted
// to the union of everything drawn so far, so it stays stable while
// scrubbing.
//
// # Architecture
//
// The library is organized into:
//   - command: binary record codec
//   - geom: polygon builders for lines, arrows and rectangles; bounding boxes
//   - timeline: append-only log, frame index and playback cursor
//   - camera: auto-fit, zoom and pan transform
//   - player: the render loop and the Renderer/InputSource interfaces
//   - backends/raster, backends/sdl: renderer implementations
//
// # Concurrency
//
// An Engine has one producer goroutine (the one calling the drawing
// methods) and one render goroutine (the one inside Run). The drawing
// methods must not be called concurrently with each other.
package gv
