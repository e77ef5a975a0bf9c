// Package escape implements the escape-time iteration of the Mandelbrot set.
package escape

// DefaultThreshold is the squared escape radius (radius 2).
const DefaultThreshold = 4.0

// Result of iterating a single point.
// Escaped reports whether |z|² exceeded the threshold; N is the iteration
// index at which that was first observed and is meaningless otherwise.
type Result struct {
	N       int
	Escaped bool
}

// Bounded is the result for points that never escaped within the cap.
var Bounded = Result{}

// Kernel iterates z ← z² + c with a configurable squared escape radius.
type Kernel struct {
	Threshold float64
}

// Default is the kernel with the standard threshold.
var Default = Kernel{Threshold: DefaultThreshold}

// Evaluate iterates c with the standard threshold. See Kernel.Evaluate.
func Evaluate(c complex128, maxIter int) Result {
	return Default.Evaluate(c, maxIter)
}

// Evaluate starts from z = 0 and, for i in [0, maxIter), returns Escaped(i)
// as soon as |z|² > Threshold, before applying the update for that step.
// Non-finite inputs give unspecified results but the loop is still bounded
// by maxIter.
func (k Kernel) Evaluate(c complex128, maxIter int) Result {
	cx, cy := real(c), imag(c)
	var x, y float64
	for i := 0; i < maxIter; i++ {
		xx, yy := x*x, y*y
		if xx+yy > k.Threshold {
			return Result{N: i, Escaped: true}
		}
		// y must use the old x
		x, y = xx-yy+cx, 2*x*y+cy
	}
	return Bounded
}
