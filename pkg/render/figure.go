// Package render draws escape counts as a heatmap figure: the colored counts
// framed by labeled real and imaginary axes, with a colorbar keyed to the
// number of iterations.
package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/grid"
)

const (
	// DPI converts the figure's inch-based measurements to pixels.
	DPI = 100

	DefaultWidth  = 6 * DPI
	DefaultHeight = 6 * DPI

	tickLength = 4.0
	maxTicks   = 5
)

// FixedExtent is the axis extent used regardless of the counts' own region
// when Figure.FixedExtent is set.
var FixedExtent = grid.Square(2)

// A Figure lays out a heatmap with axes and a colorbar.
type Figure struct {
	Width, Height int

	Title         string
	XLabel        string
	YLabel        string
	ColorbarLabel string

	Colormap Colormap

	// FixedExtent labels the axes with FixedExtent instead of the region the
	// counts were computed over. Rows are then drawn top-down.
	FixedExtent bool

	// FontSize is in pixels.
	FontSize float64
}

// NewFigure returns a 6x6 inch figure with the viridis colormap.
func NewFigure() *Figure {
	return &Figure{
		Width:         DefaultWidth,
		Height:        DefaultHeight,
		XLabel:        "Real",
		YLabel:        "Imaginary",
		ColorbarLabel: "Number of Iterations",
		Colormap:      Viridis,
		FontSize:      13,
	}
}

var (
	fontOnce   sync.Once
	fontSource *text.FontSource
	fontErr    error
)

func labelFont() (*text.FontSource, error) {
	fontOnce.Do(func() {
		fontSource, fontErr = text.NewFontSource(goregular.TTF)
	})
	return fontSource, fontErr
}

// Layout is the pixel geometry of a drawn figure.
type Layout struct {
	// Plot is the square holding the heatmap.
	PlotX, PlotY, PlotSize float64

	// Bar is the colorbar.
	BarX, BarY, BarWidth, BarHeight float64
}

func (f *Figure) layout() Layout {
	const (
		left   = 70.0
		right  = 80.0
		top    = 30.0
		bottom = 55.0
		// 0.1 in between plot and colorbar.
		pad = 0.1 * DPI
		// Colorbar width as a fraction of the plot.
		barFraction = 0.05
	)

	w := float64(f.Width)
	h := float64(f.Height)

	// The plot sits on whole pixels so the heatmap is blitted unscaled.
	size := math.Floor(math.Min((w-left-right-pad)/(1+barFraction), h-top-bottom))
	size = math.Max(size, 1)

	// Center the plot and colorbar together.
	total := size*(1+barFraction) + pad
	x := math.Floor(left + math.Max(0, (w-left-right-total)/2))
	y := math.Floor(top + math.Max(0, (h-top-bottom-size)/2))

	return Layout{
		PlotX:     x,
		PlotY:     y,
		PlotSize:  size,
		BarX:      x + size + pad,
		BarY:      y,
		BarWidth:  size * barFraction,
		BarHeight: size,
	}
}

// Draw renders counts into a new drawing context. The caller owns the context.
func (f *Figure) Draw(counts *escape.Counts) (*gg.Context, error) {
	source, err := labelFont()
	if err != nil {
		return nil, fmt.Errorf("loading label font: %w", err)
	}

	cm := f.Colormap
	if cm == nil {
		cm = Viridis
	}

	extent := counts.Region
	origin := Lower
	if f.FixedExtent {
		extent = FixedExtent
		origin = Upper
	}

	norm := AutoNorm(counts)
	l := f.layout()

	dc := gg.NewContext(f.Width, f.Height)
	dc.ClearWithColor(gg.White)
	dc.SetFont(source.Face(f.FontSize))

	// gg treats InterpNearest as unset and samples bilinearly, so the heatmap
	// is scaled here and drawn 1:1 on whole pixels.
	size := int(l.PlotSize)
	heatmap := gg.ImageBufFromImage(Scale(Heatmap(counts, cm, norm, origin), size, size))
	dc.DrawImageEx(heatmap, gg.DrawImageOptions{
		X:         l.PlotX,
		Y:         l.PlotY,
		Opacity:   1.0,
		BlendMode: gg.BlendNormal,
	})

	if err := f.drawColorbar(dc, l, cm, norm); err != nil {
		return nil, err
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.PlotX, l.PlotY, l.PlotSize, l.PlotSize)
	if err := dc.Stroke(); err != nil {
		return nil, err
	}

	if err := f.drawAxes(dc, l, extent); err != nil {
		return nil, err
	}

	if f.Title != "" {
		dc.DrawStringAnchored(f.Title, l.PlotX+l.PlotSize/2, l.PlotY-8, 0.5, 0)
	}

	return dc, nil
}

func (f *Figure) drawAxes(dc *gg.Context, l Layout, extent grid.Region) error {
	bottom := l.PlotY + l.PlotSize

	// Real axis along the bottom edge, increasing rightward.
	for _, t := range Ticks(extent.RealMin, extent.RealMax, maxTicks) {
		x := l.PlotX + position(t, extent.RealMin, extent.RealMax)*l.PlotSize
		dc.DrawLine(x, bottom, x, bottom+tickLength)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawStringAnchored(FormatTick(t), x, bottom+tickLength+2, 0.5, 1)
	}

	// Imaginary axis along the left edge, increasing upward.
	for _, t := range Ticks(extent.ImagMin, extent.ImagMax, maxTicks) {
		y := bottom - position(t, extent.ImagMin, extent.ImagMax)*l.PlotSize
		dc.DrawLine(l.PlotX-tickLength, y, l.PlotX, y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawStringAnchored(FormatTick(t), l.PlotX-tickLength-3, y, 1, 0.35)
	}

	dc.DrawStringAnchored(f.XLabel, l.PlotX+l.PlotSize/2, bottom+tickLength+2+1.6*f.FontSize, 0.5, 1)
	verticalLabel(dc, f.YLabel, l.PlotX-tickLength-3.2*f.FontSize, l.PlotY+l.PlotSize/2)

	return nil
}

func (f *Figure) drawColorbar(dc *gg.Context, l Layout, cm Colormap, norm Norm) error {
	// One band per pixel row, lowest count at the bottom.
	rows := int(math.Ceil(l.BarHeight))
	for i := 0; i < rows; i++ {
		t := 1 - (float64(i)+0.5)/float64(rows)
		dc.SetColor(cm.At(t))
		dc.DrawRectangle(l.BarX, l.BarY+float64(i), l.BarWidth, 1)
		if err := dc.Fill(); err != nil {
			return err
		}
	}

	dc.SetRGB(0, 0, 0)
	dc.SetLineWidth(1)
	dc.DrawRectangle(l.BarX, l.BarY, l.BarWidth, l.BarHeight)
	if err := dc.Stroke(); err != nil {
		return err
	}

	barRight := l.BarX + l.BarWidth
	bottom := l.BarY + l.BarHeight
	for _, t := range Ticks(norm.Min, norm.Max, maxTicks+1) {
		y := bottom - norm.At(t)*l.BarHeight
		if norm.Max <= norm.Min {
			y = bottom - l.BarHeight/2
		}
		dc.DrawLine(barRight, y, barRight+tickLength, y)
		if err := dc.Stroke(); err != nil {
			return err
		}
		dc.DrawStringAnchored(FormatTick(t), barRight+tickLength+3, y, 0, 0.35)
	}

	verticalLabel(dc, f.ColorbarLabel, barRight+tickLength+3+3.5*f.FontSize, l.BarY+l.BarHeight/2)

	return nil
}

// verticalLabel draws s centered on (x, y), reading bottom to top.
func verticalLabel(dc *gg.Context, s string, x, y float64) {
	dc.Push()
	dc.RotateAbout(-math.Pi/2, x, y)
	dc.DrawStringAnchored(s, x, y, 0.5, 0.35)
	dc.Pop()
}

func position(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

// WritePNG draws counts and encodes the figure as PNG.
func (f *Figure) WritePNG(w io.Writer, counts *escape.Counts) error {
	dc, err := f.Draw(counts)
	if err != nil {
		return err
	}
	defer func() { _ = dc.Close() }()

	return dc.EncodePNG(w)
}

// SavePNG draws counts to a PNG file, creating its directory if needed.
func (f *Figure) SavePNG(path string, counts *escape.Counts) (err error) {
	err = os.MkdirAll(filepath.Dir(path), os.ModePerm)
	if err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := out.Close(); err == nil {
			err = closeErr
		}
	}()

	return f.WritePNG(out, counts)
}
