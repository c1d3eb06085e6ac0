package render

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrUnknownColormap is returned by LookupColormap for unregistered names.
var ErrUnknownColormap = errors.New("unknown colormap")

// A Colormap maps a normalized value in [0, 1] to a color.
type Colormap interface {
	At(t float64) color.RGBA
}

// Gradient interpolates evenly spaced stops in CIE-Lab space.
type Gradient []colorful.Color

func (g Gradient) At(t float64) color.RGBA {
	if len(g) == 0 {
		return color.RGBA{A: 0xff}
	}
	if math.IsNaN(t) || t <= 0 {
		return rgba(g[0])
	}
	if t >= 1 {
		return rgba(g[len(g)-1])
	}

	pos := t * float64(len(g)-1)
	i := int(pos)
	return rgba(g[i].BlendLab(g[i+1], pos-float64(i)))
}

func rgba(c colorful.Color) color.RGBA {
	r, g, b := c.Clamped().RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}
}

func mustHex(hex ...string) Gradient {
	result := make(Gradient, len(hex))
	for i, h := range hex {
		c, err := colorful.Hex(h)
		if err != nil {
			panic(err)
		}
		result[i] = c
	}
	return result
}

var (
	// Viridis is the perceptually uniform dark-blue to yellow map.
	Viridis = mustHex(
		"#440154", "#472d7b", "#3b528b", "#2c728e", "#21918c",
		"#28ae80", "#5ec962", "#addc30", "#fde725",
	)

	// Magma runs from black through purple and orange to pale yellow.
	Magma = mustHex(
		"#000004", "#1c1044", "#4f127b", "#812581", "#b5367a",
		"#e55064", "#fb8761", "#fec287", "#fcfdbf",
	)

	// Gray runs from black to white.
	Gray = mustHex("#000000", "#ffffff")
)

var colormaps = map[string]Colormap{
	"viridis": Viridis,
	"magma":   Magma,
	"gray":    Gray,
}

// LookupColormap returns the registered colormap with the given name.
func LookupColormap(name string) (Colormap, error) {
	cm, ok := colormaps[name]
	if !ok {
		return nil, fmt.Errorf("%w %q, want one of %v", ErrUnknownColormap, name, ColormapNames())
	}
	return cm, nil
}

// ColormapNames lists the registered colormaps in order.
func ColormapNames() []string {
	names := make([]string, 0, len(colormaps))
	for name := range colormaps {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
