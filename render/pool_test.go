package render

import (
	"image"
	"runtime"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPool_Create(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	assert.Equal(t, 4, pool.Workers())
	assert.True(t, pool.IsRunning())
}

func TestPool_CreateDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool := NewPool(n)
		assert.Equal(t, runtime.GOMAXPROCS(0), pool.Workers())
		pool.Close()
	}
}

func TestPool_RunAll(t *testing.T) {
	pool := NewPool(4)
	defer pool.Close()

	const n = 1000
	hits := make([]atomic.Int32, n)
	pool.Run(n, func(i int) {
		hits[i].Add(1)
	})

	for i := range hits {
		require.Equal(t, int32(1), hits[i].Load(), "task %d", i)
	}
}

func TestPool_RunEmpty(t *testing.T) {
	pool := NewPool(2)
	defer pool.Close()

	called := false
	pool.Run(0, func(int) { called = true })
	pool.Run(-1, func(int) { called = true })
	assert.False(t, called)
}

func TestPool_RunAfterClose(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	assert.False(t, pool.IsRunning())

	var count atomic.Int32
	pool.Run(10, func(int) { count.Add(1) })
	assert.Equal(t, int32(10), count.Load())
}

func TestPool_CloseTwice(t *testing.T) {
	pool := NewPool(2)
	pool.Close()
	assert.NotPanics(t, pool.Close)
}

func TestPool_ConcurrentRuns(t *testing.T) {
	pool := NewPool(3)
	defer pool.Close()

	var total atomic.Int64
	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			pool.Run(100, func(int) { total.Add(1) })
		}()
	}
	wg.Wait()
	assert.Equal(t, int64(800), total.Load())
}

func TestParallel_RunAll(t *testing.T) {
	for _, workers := range []int{0, 1, 2, 16} {
		hits := make([]atomic.Int32, 257)
		Parallel{Workers: workers}.Run(len(hits), func(i int) { hits[i].Add(1) })
		for i := range hits {
			require.Equal(t, int32(1), hits[i].Load(), "workers %d task %d", workers, i)
		}
	}
}

func TestSerial_Order(t *testing.T) {
	var got []int
	Serial{}.Run(5, func(i int) { got = append(got, i) })
	assert.Equal(t, []int{0, 1, 2, 3, 4}, got)
}

func TestSplitRect(t *testing.T) {
	tests := []struct {
		name         string
		r            image.Rectangle
		tileW, tileH int
		want         int
	}{
		{"rows", image.Rect(0, 0, 10, 4), 0, 1, 4},
		{"row bands with remainder", image.Rect(0, 0, 10, 5), 0, 2, 3},
		{"tiles with remainder", image.Rect(0, 0, 130, 70), 64, 64, 6},
		{"offset origin", image.Rect(5, 5, 15, 15), 4, 4, 9},
		{"tile wider than rect", image.Rect(0, 0, 3, 3), 100, 1, 3},
		{"empty", image.Rectangle{}, 8, 8, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tiles := splitRect(tt.r, tt.tileW, tt.tileH)
			require.Len(t, tiles, tt.want)

			// every pixel of r is covered by exactly one tile
			seen := map[image.Point]int{}
			for _, tile := range tiles {
				assert.True(t, tile.In(tt.r), "%v not in %v", tile, tt.r)
				for y := tile.Min.Y; y < tile.Max.Y; y++ {
					for x := tile.Min.X; x < tile.Max.X; x++ {
						seen[image.Pt(x, y)]++
					}
				}
			}
			assert.Len(t, seen, tt.r.Dx()*tt.r.Dy())
			for p, n := range seen {
				assert.Equal(t, 1, n, "pixel %v", p)
			}
		})
	}
}
