// Package render turns a viewport into a colored frame of the Mandelbrot set.
//
// Every pixel is independent: the compositor splits the frame into tiles
// (full-width rows by default), hands one task per tile to an executor and
// writes each pixel straight into its slot of the frame, so the result does
// not depend on the order in which tasks finish.
package render

import (
	"image"
	"time"

	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/escape"
)

// DefaultMaxIter is the iteration cap used by every viewer.
const DefaultMaxIter = 1000

// DefaultWindowSpan is the width and height of the logical window at scale 1.
const DefaultWindowSpan = 4.0

// Compositor renders frames. It holds configuration only; a single
// Compositor may be used from many goroutines.
type Compositor struct {
	exec   mandel.Executor
	span   float64
	kernel escape.Kernel
	tileW  int
	tileH  int
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithExecutor sets how tile tasks are run. Defaults to Parallel{}.
func WithExecutor(e mandel.Executor) Option {
	return func(c *Compositor) {
		if e != nil {
			c.exec = e
		}
	}
}

// WithWindowSpan sets the logical window span at scale 1.
func WithWindowSpan(span float64) Option {
	return func(c *Compositor) {
		c.span = span
	}
}

// WithThreshold sets the squared escape radius.
func WithThreshold(threshold float64) Option {
	return func(c *Compositor) {
		c.kernel = escape.Kernel{Threshold: threshold}
	}
}

// WithTileSize sets the task granularity. A non-positive width means
// full-width row bands of h rows.
func WithTileSize(w, h int) Option {
	return func(c *Compositor) {
		c.tileW, c.tileH = w, h
	}
}

// New creates a compositor. Without options it renders full rows in
// parallel with the standard window span and threshold.
func New(opts ...Option) *Compositor {
	c := &Compositor{
		exec:   Parallel{},
		span:   DefaultWindowSpan,
		kernel: escape.Default,
		tileH:  1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Point maps pixel p of a d-sized grid to the complex plane.
// Both axes use the same span regardless of the aspect ratio.
func (c *Compositor) Point(v mandel.Viewport, d mandel.Dims, p image.Point) complex128 {
	return complex(
		c.axis(p.X, d.Width)/v.Scale+v.OffsetX,
		c.axis(p.Y, d.Height)/v.Scale+v.OffsetY,
	)
}

func (c *Compositor) axis(i, n int) float64 {
	return (float64(i)/float64(n))*c.span - c.span/2
}

// Render computes every pixel of a d-sized frame at viewport v.
// Empty dims give an empty frame. Scale must be positive; otherwise the
// output is unspecified but the call still completes.
func (c *Compositor) Render(v mandel.Viewport, d mandel.Dims, maxIter int) *mandel.Frame {
	start := time.Now()

	f := mandel.NewFrame(d)
	tiles := splitRect(d.Bounds(), c.tileW, c.tileH)
	c.exec.Run(len(tiles), func(i int) {
		c.renderTile(f, tiles[i], v, maxIter)
	})

	Logger().Debug("frame rendered",
		"width", d.Width,
		"height", d.Height,
		"tasks", len(tiles),
		"scale", v.Scale,
		"elapsed", time.Since(start))
	return f
}

func (c *Compositor) renderTile(f *mandel.Frame, tile image.Rectangle, v mandel.Viewport, maxIter int) {
	for y := tile.Min.Y; y < tile.Max.Y; y++ {
		row := f.Row(y)
		for x := tile.Min.X; x < tile.Max.X; x++ {
			z := c.Point(v, f.Dims, image.Pt(x, y))
			row[x] = Shade(c.kernel.Evaluate(z, maxIter))
		}
	}
}

var _ mandel.Renderer = (*Compositor)(nil)

var std = New()

// Render renders with a default compositor (parallel rows, span 4, threshold 4).
func Render(v mandel.Viewport, d mandel.Dims, maxIter int) *mandel.Frame {
	return std.Render(v, d, maxIter)
}
