package render

import (
	"runtime"
	"sync"
	"sync/atomic"

	mandel "github.com/marben/live_mandel"
)

// Serial runs every task on the calling goroutine in index order.
// It makes renders fully deterministic in scheduling, which tests rely on.
type Serial struct{}

func (Serial) Run(n int, fn func(i int)) {
	for i := 0; i < n; i++ {
		fn(i)
	}
}

// Parallel starts a fresh set of goroutines for every Run call and lets
// them pull task indices from a shared counter until none are left.
// It needs no shutdown, at the price of goroutine start-up per frame.
type Parallel struct {
	// Workers is the number of goroutines per Run. Zero or negative means GOMAXPROCS.
	Workers int
}

func (p Parallel) Run(n int, fn func(i int)) {
	workers := p.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	if workers <= 1 {
		Serial{}.Run(n, fn)
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(next.Add(1)) - 1
				if i >= n {
					return
				}
				fn(i)
			}
		}()
	}
	wg.Wait()
}

var (
	_ mandel.Executor = Serial{}
	_ mandel.Executor = Parallel{}
	_ mandel.Executor = (*Pool)(nil)
)
