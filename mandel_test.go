package mandel

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegion_Viewport(t *testing.T) {
	v := SeahorseValley.Viewport(4)
	assert.InDelta(t, 40, v.Scale, 1e-9)
	assert.InDelta(t, -0.75, v.OffsetX, 1e-12)
	assert.InDelta(t, 0.1, v.OffsetY, 1e-12)

	// degenerate region falls back to scale 1
	v = Region{Xmin: 1, Xmax: 1, Ymin: 2, Ymax: 2}.Viewport(4)
	assert.Equal(t, Viewport{Scale: 1, OffsetX: 1, OffsetY: 2}, v)
}

func TestPresets(t *testing.T) {
	assert.Len(t, Presets, 6)
	for name, r := range Presets {
		assert.Less(t, r.Xmin, r.Xmax, name)
		assert.Less(t, r.Ymin, r.Ymax, name)
	}
}

func TestDims(t *testing.T) {
	assert.True(t, Dims{}.Empty())
	assert.True(t, Dims{Width: 3, Height: -1}.Empty())
	assert.Equal(t, 0, Dims{Width: -2, Height: -3}.Pixels())
	assert.Equal(t, 12, Dims{Width: 4, Height: 3}.Pixels())
	assert.Equal(t, image.Rect(0, 0, 4, 3), Dims{Width: 4, Height: 3}.Bounds())
	assert.Equal(t, image.Rectangle{}, Dims{Width: 4}.Bounds())
}

func TestFrame(t *testing.T) {
	f := NewFrame(Dims{Width: 3, Height: 2})
	assert.Len(t, f.Pix, 6)

	f.Row(1)[2] = Color{G: 0.5, A: 1}
	assert.Equal(t, Color{G: 0.5, A: 1}, f.At(2, 1))
	assert.Equal(t, Color{G: 0.5, A: 1}, f.Pix[5])
	assert.Equal(t, Color{}, f.At(3, 0))
	assert.Equal(t, Color{}, f.At(0, -1))

	var visited []image.Point
	f.Each(func(x, y int, _ Color) { visited = append(visited, image.Pt(x, y)) })
	assert.Equal(t, []image.Point{{0, 0}, {1, 0}, {2, 0}, {0, 1}, {1, 1}, {2, 1}}, visited)

	// rows cannot be grown into their neighbour
	assert.Equal(t, 3, cap(f.Row(0)))
}

func TestNewFrame_Empty(t *testing.T) {
	f := NewFrame(Dims{Width: 0, Height: 5})
	assert.Empty(t, f.Pix)
	assert.Equal(t, Dims{}, f.Dims)
}
