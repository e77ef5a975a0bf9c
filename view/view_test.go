package view

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	mandel "github.com/marben/live_mandel"
)

func TestController_Pan(t *testing.T) {
	tests := []struct {
		a      Action
		dx, dy float64
	}{
		{Up, 0, -0.1},
		{Down, 0, 0.1},
		{Left, -0.1, 0},
		{Right, 0.1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.a.String(), func(t *testing.T) {
			c := NewController(mandel.Home)
			assert.True(t, c.Apply(tt.a))
			v := c.Viewport()
			assert.InDelta(t, tt.dx, v.OffsetX, 1e-12)
			assert.InDelta(t, tt.dy, v.OffsetY, 1e-12)
			assert.Equal(t, 1.0, v.Scale)
		})
	}
}

func TestController_PanScalesWithZoom(t *testing.T) {
	c := NewController(mandel.Viewport{Scale: 4})
	c.Apply(Right)
	c.Apply(Up)
	v := c.Viewport()
	assert.InDelta(t, 0.025, v.OffsetX, 1e-12)
	assert.InDelta(t, -0.025, v.OffsetY, 1e-12)
}

func TestController_Zoom(t *testing.T) {
	c := NewController(mandel.Home)
	c.Apply(ZoomIn)
	assert.InDelta(t, 1.1, c.Viewport().Scale, 1e-12)
	c.Apply(ZoomIn)
	assert.InDelta(t, 1.21, c.Viewport().Scale, 1e-12)
	c.Apply(ZoomOut)
	c.Apply(ZoomOut)
	assert.InDelta(t, 1.0, c.Viewport().Scale, 1e-12)

	// repeated zooming goes arbitrarily deep without ever reaching zero
	for range 2000 {
		c.Apply(ZoomOut)
	}
	assert.Positive(t, c.Viewport().Scale)
}

func TestController_ResetAndGeneration(t *testing.T) {
	home := mandel.Viewport{Scale: 2, OffsetX: -0.5}
	c := NewController(home)

	_, g0 := c.Snapshot()
	assert.False(t, c.Apply(Reset), "reset at home changes nothing")
	assert.False(t, c.Apply(None))
	assert.False(t, c.Apply(Quit))

	c.Apply(Left)
	c.Apply(ZoomIn)
	v, g := c.Snapshot()
	assert.NotEqual(t, home, v)
	assert.Equal(t, g0+2, g)

	assert.True(t, c.Apply(Reset))
	v, g = c.Snapshot()
	assert.Equal(t, home, v)
	assert.Equal(t, g0+3, g)
}

func TestController_SnapshotIsCopy(t *testing.T) {
	c := NewController(mandel.Home)
	v := c.Viewport()
	v.Scale = 100
	assert.Equal(t, 1.0, c.Viewport().Scale)
}

func TestController_Concurrent(t *testing.T) {
	c := NewController(mandel.Home)
	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 100 {
				c.Apply(Right)
				c.Viewport()
			}
		}()
	}
	wg.Wait()
	_, g := c.Snapshot()
	assert.Equal(t, uint64(1000), g)
	assert.InDelta(t, 100, c.Viewport().OffsetX, 1e-9)
}

func TestFromRune(t *testing.T) {
	tests := map[rune]Action{
		'z': ZoomIn, 'x': ZoomOut, '+': ZoomIn, '-': ZoomOut,
		'q': Quit, 'r': Reset,
		'w': Up, 's': Down, 'a': Left, 'd': Right,
		'h': Left, 'j': Down, 'k': Up, 'l': Right,
		'?': None, ' ': None,
	}
	for r, want := range tests {
		assert.Equal(t, want, FromRune(r), "%q", r)
	}
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "zoom-in", ZoomIn.String())
	assert.Equal(t, "unknown", Action(200).String())
}
