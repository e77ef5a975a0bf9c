package mandel

// Renderer produces a complete frame for a viewport snapshot.
type Renderer interface {
	Render(v Viewport, d Dims, maxIter int) *Frame
}

// Executor runs n independent tasks, fn(0) .. fn(n-1), and returns once all
// of them have finished. Tasks may run in any order and in parallel.
type Executor interface {
	Run(n int, fn func(i int))
}
