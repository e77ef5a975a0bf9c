// Package present puts rendered frames in front of a user: onto a gg
// canvas, into image files and streams, or onto a terminal screen.
package present

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gogpu/gg"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	mandel "github.com/marben/live_mandel"
)

// ErrUnknownFormat is returned for image formats Encode cannot write.
var ErrUnknownFormat = errors.New("unknown image format")

// Format is an output image encoding.
type Format string

const (
	PNG  Format = "png"
	JPEG Format = "jpeg"
	BMP  Format = "bmp"
	TIFF Format = "tiff"
)

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "png":
		return PNG, nil
	case "jpg", "jpeg":
		return JPEG, nil
	case "bmp":
		return BMP, nil
	case "tif", "tiff":
		return TIFF, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, ext)
	}
}

// NRGBA converts c to an 8-bit color, truncating like gg's pixmap does.
func NRGBA(c mandel.Color) color.NRGBA {
	return color.NRGBA{R: to8(c.R), G: to8(c.G), B: to8(c.B), A: to8(c.A)}
}

func to8(v float32) uint8 {
	switch {
	case !(v > 0):
		return 0
	case v >= 1:
		return 255
	}
	return uint8(v * 255)
}

// Canvas blits f onto a new gg context, one pixel at a time.
// The caller closes the context.
func Canvas(f *mandel.Frame) *gg.Context {
	dc := gg.NewContext(f.Width, f.Height)
	f.Each(func(x, y int, c mandel.Color) {
		dc.SetPixel(x, y, gg.RGBA{R: float64(c.R), G: float64(c.G), B: float64(c.B), A: float64(c.A)})
	})
	return dc
}

// Image copies f into an 8-bit image without going through a canvas.
func Image(f *mandel.Frame) *image.NRGBA {
	img := image.NewNRGBA(f.Bounds())
	f.Each(func(x, y int, c mandel.Color) {
		img.SetNRGBA(x, y, NRGBA(c))
	})
	return img
}

// Encode writes f to w in the given format.
func Encode(w io.Writer, f *mandel.Frame, format Format) error {
	if f.Empty() {
		return errors.New("encode: empty frame")
	}
	switch format {
	case PNG, JPEG:
		dc := Canvas(f)
		defer dc.Close()
		if format == JPEG {
			return dc.EncodeJPEG(w, 95)
		}
		return dc.EncodePNG(w)
	case BMP:
		return bmp.Encode(w, Image(f))
	case TIFF:
		return tiff.Encode(w, Image(f), &tiff.Options{Compression: tiff.Deflate})
	}
	return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
}

// Save writes f to path, picking the format from the extension.
func Save(path string, f *mandel.Frame) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Encode(out, f, format); err != nil {
		out.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return out.Close()
}
