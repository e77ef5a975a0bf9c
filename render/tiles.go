package render

import "image"

// splitRect splits r into tiles of size tileW × tileH.
// Tiles at the right and bottom edges are smaller if r is not divisible.
// A non-positive tileW means full-width tiles (row bands).
func splitRect(r image.Rectangle, tileW, tileH int) []image.Rectangle {
	w := r.Dx()
	h := r.Dy()
	if w <= 0 || h <= 0 {
		return nil
	}
	if tileW <= 0 || tileW > w {
		tileW = w
	}
	if tileH <= 0 {
		tileH = 1
	}

	tiles := make([]image.Rectangle, 0, ((h+tileH-1)/tileH)*((w+tileW-1)/tileW))
	for oy := 0; oy < h; oy += tileH {
		th := min(tileH, h-oy)
		for ox := 0; ox < w; ox += tileW {
			tw := min(tileW, w-ox)
			tiles = append(tiles, image.Rect(
				r.Min.X+ox,
				r.Min.Y+oy,
				r.Min.X+ox+tw,
				r.Min.Y+oy+th,
			))
		}
	}
	return tiles
}
