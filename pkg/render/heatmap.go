package render

import (
	"image"

	"github.com/willbeason/escape-fractal/pkg/escape"
)

// Origin selects which image row the first count row is drawn in.
type Origin int

const (
	// Lower draws row 0 at the bottom, so the imaginary axis increases upward.
	Lower Origin = iota
	// Upper draws row 0 at the top, as an array is printed.
	Upper
)

// Norm linearly maps counts in [Min, Max] onto [0, 1].
type Norm struct {
	Min, Max float64
}

// AutoNorm spans the smallest and largest count.
func AutoNorm(c *escape.Counts) Norm {
	return Norm{Min: c.Min(), Max: c.Max()}
}

// At returns the normalized value of v. An empty range maps everything to 0.
func (n Norm) At(v float64) float64 {
	if n.Max <= n.Min {
		return 0
	}
	return (v - n.Min) / (n.Max - n.Min)
}

// Heatmap colors every count, one pixel per grid point.
func Heatmap(c *escape.Counts, cm Colormap, norm Norm, origin Origin) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, c.Width, c.Height))

	for row := 0; row < c.Height; row++ {
		y := row
		if origin == Lower {
			y = c.Height - 1 - row
		}

		for col := 0; col < c.Width; col++ {
			img.SetRGBA(col, y, cm.At(norm.At(c.At(row, col))))
		}
	}

	return img
}

// Scale resizes img to width x height, taking each pixel from the nearest source pixel.
func Scale(img *image.RGBA, width, height int) *image.RGBA {
	src := img.Bounds()
	out := image.NewRGBA(image.Rect(0, 0, width, height))
	if src.Empty() {
		return out
	}

	for y := 0; y < height; y++ {
		sy := src.Min.Y + y*src.Dy()/height
		for x := 0; x < width; x++ {
			sx := src.Min.X + x*src.Dx()/width
			out.SetRGBA(x, y, img.RGBAAt(sx, sy))
		}
	}

	return out
}
