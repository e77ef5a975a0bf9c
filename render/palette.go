package render

import (
	mandel "github.com/marben/live_mandel"
	"github.com/marben/live_mandel/escape"
)

// Shade maps an escape result to the built-in palette: bounded points are
// opaque black, escaped points cycle through 256 bands of green.
func Shade(r escape.Result) mandel.Color {
	if !r.Escaped {
		return mandel.Black
	}
	return mandel.Color{G: float32(r.N%256) / 256, A: 1}
}
