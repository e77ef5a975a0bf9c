package mandel

import (
	"image"
	"math"
)

// Viewport is the pan/zoom state a frame is rendered at.
// Scale 1 shows the default window; larger scales zoom in.
// Offsets are in pre-scale plane units.
type Viewport struct {
	Scale            float64
	OffsetX, OffsetY float64
}

// Home is the default view: whole set, centered at the origin.
var Home = Viewport{Scale: 1}

// Dims is the pixel grid size of a frame.
type Dims struct {
	Width, Height int
}

// Empty reports whether the grid has no pixels.
func (d Dims) Empty() bool {
	return d.Width <= 0 || d.Height <= 0
}

// Pixels returns the number of pixels in the grid.
func (d Dims) Pixels() int {
	if d.Empty() {
		return 0
	}
	return d.Width * d.Height
}

// Bounds returns the grid as a rectangle anchored at (0,0).
func (d Dims) Bounds() image.Rectangle {
	if d.Empty() {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, d.Width, d.Height)
}

// Region within the Mandelbrot set
type Region struct {
	Xmin, Xmax float64
	Ymin, Ymax float64
}

// Viewport returns the view whose logical window of the given span
// covers the region's horizontal extent and is centered on it.
func (r Region) Viewport(span float64) Viewport {
	w := math.Abs(r.Xmax - r.Xmin)
	if w == 0 {
		w = span
	}
	return Viewport{
		Scale:   span / w,
		OffsetX: (r.Xmin + r.Xmax) / 2,
		OffsetY: (r.Ymin + r.Ymax) / 2,
	}
}

// Classic regions / landmarks in the Mandelbrot set
var (
	// Seahorse Valley – dense filaments and repeating “seahorse” curls
	SeahorseValley = Region{
		Xmin: -0.8,
		Xmax: -0.7,
		Ymin: 0.05,
		Ymax: 0.15,
	}

	// Elephant Valley – large bulb with trunk-like tendrils
	ElephantValley = Region{
		Xmin: -1.85,
		Xmax: -1.75,
		Ymin: -0.10,
		Ymax: -0.02,
	}

	// Spiral Minibrot – small Mandelbrot copy with tight spiral arms
	SpiralMinibrot = Region{
		Xmin: -0.7435,
		Xmax: -0.7420,
		Ymin: 0.1310,
		Ymax: 0.1325,
	}

	// Triple Spiral – threefold symmetric spiral structure
	TripleSpiral = Region{
		Xmin: -0.7480,
		Xmax: -0.7450,
		Ymin: 0.0950,
		Ymax: 0.0980,
	}

	// Valley of the Dragon – deep, highly detailed spiral filaments
	ValleyOfTheDragon = Region{
		Xmin: -0.7400,
		Xmax: -0.7350,
		Ymin: 0.1800,
		Ymax: 0.1850,
	}

	// Minibrot in a Mini-Spiral – self-similar Mandelbrot copy inside a spiral arm
	MinibrotInMiniSpiral = Region{
		Xmin: -1.7390,
		Xmax: -1.7375,
		Ymin: -0.0235,
		Ymax: -0.0220,
	}
)

// Presets maps the names accepted on the command line and in config files to landmarks.
var Presets = map[string]Region{
	"seahorse": SeahorseValley,
	"elephant": ElephantValley,
	"spiral":   SpiralMinibrot,
	"triple":   TripleSpiral,
	"dragon":   ValleyOfTheDragon,
	"minibrot": MinibrotInMiniSpiral,
}

// Color is a straight-alpha color with channels in [0, 1].
type Color struct {
	R, G, B, A float32
}

// Black is the color of bounded points.
var Black = Color{A: 1}

// Frame is a dense row-major pixel buffer. A Frame is created fresh for
// every render and belongs to the caller once returned.
type Frame struct {
	Dims
	Pix []Color
}

// NewFrame allocates a frame covering d. Empty dims give an empty frame.
func NewFrame(d Dims) *Frame {
	if d.Empty() {
		return &Frame{}
	}
	return &Frame{Dims: d, Pix: make([]Color, d.Pixels())}
}

// At returns the color at (x, y). Out of range coordinates return the zero Color.
func (f *Frame) At(x, y int) Color {
	if x < 0 || x >= f.Width || y < 0 || y >= f.Height {
		return Color{}
	}
	return f.Pix[y*f.Width+x]
}

// Row returns the slice of pixels in row y.
func (f *Frame) Row(y int) []Color {
	off := y * f.Width
	return f.Pix[off : off+f.Width : off+f.Width]
}

// Each calls fn for every pixel in row-major order.
func (f *Frame) Each(fn func(x, y int, c Color)) {
	for y := 0; y < f.Height; y++ {
		for x, c := range f.Row(y) {
			fn(x, y, c)
		}
	}
}
