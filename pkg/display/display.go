// Package display presents images in the terminal and blocks until the viewer
// dismisses them.
//
// Each terminal cell shows two vertically stacked pixels as an upper half
// block, with the upper pixel as foreground and the lower as background. The
// bottom line holds the title and key help.
package display

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gdamore/tcell/v2"
)

const halfBlock = '▀'

// ErrNoTerminal is returned by Show when no screen can be opened, for example
// when output is not a terminal.
var ErrNoTerminal = errors.New("no terminal to display on")

// A Viewer shows images on a terminal screen.
type Viewer struct {
	// NewScreen opens the screen for one Show call. It defaults to the
	// controlling terminal.
	NewScreen func() (tcell.Screen, error)
}

// Show draws img and waits until a dismiss key is pressed or ctx is done.
// A new screen is opened on entry and finalized on return.
func (v *Viewer) Show(ctx context.Context, img image.Image, title string) error {
	newScreen := v.NewScreen
	if newScreen == nil {
		newScreen = tcell.NewScreen
	}

	screen, err := newScreen()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNoTerminal, err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("%w: %w", ErrNoTerminal, err)
	}
	defer screen.Fini()

	Draw(screen, img, title)
	screen.Show()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			// PollEvent returns nil once the screen is finalized.
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventResize:
				Draw(screen, img, title)
				screen.Sync()
			case *tcell.EventKey:
				if Dismisses(ev) {
					return nil
				}
			}
		}
	}
}

// Show presents img on the controlling terminal.
func Show(ctx context.Context, img image.Image, title string) error {
	return (&Viewer{}).Show(ctx, img, title)
}

// Dismisses reports whether ev closes the viewer: q, Escape, Enter or Ctrl-C.
func Dismisses(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyEnter, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// Draw fits img to the screen above a one-line status bar.
func Draw(screen tcell.Screen, img image.Image, title string) {
	screen.Clear()

	cols, rows := screen.Size()
	if cols < 1 || rows < 2 {
		return
	}

	fitted := Fit(img, cols, 2*(rows-1))
	b := fitted.Bounds()
	// Center horizontally.
	offset := (cols - b.Dx()) / 2

	for y := 0; y < b.Dy(); y += 2 {
		for x := 0; x < b.Dx(); x++ {
			upper := fitted.RGBAAt(b.Min.X+x, b.Min.Y+y)
			lower := upper
			if y+1 < b.Dy() {
				lower = fitted.RGBAAt(b.Min.X+x, b.Min.Y+y+1)
			}
			style := tcell.StyleDefault.
				Foreground(toColor(upper)).
				Background(toColor(lower))
			screen.SetContent(offset+x, y/2, halfBlock, nil, style)
		}
	}

	status := []rune(title + "  (q to close)")
	statusStyle := tcell.StyleDefault.Reverse(true)
	for x := 0; x < cols; x++ {
		r := ' '
		if x < len(status) {
			r = status[x]
		}
		screen.SetContent(x, rows-1, r, nil, statusStyle)
	}
}

func toColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

// Fit scales img down, keeping its aspect ratio, so it fits in width x height.
// Each output pixel is the average of the source pixels it covers. Images that
// already fit are copied unscaled.
func Fit(img image.Image, width, height int) *image.RGBA {
	src := img.Bounds()
	if src.Empty() || width < 1 || height < 1 {
		return image.NewRGBA(image.Rect(0, 0, 0, 0))
	}

	scale := min(1, float64(width)/float64(src.Dx()), float64(height)/float64(src.Dy()))
	w := max(1, int(float64(src.Dx())*scale))
	h := max(1, int(float64(src.Dy())*scale))

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		y0 := src.Min.Y + y*src.Dy()/h
		y1 := max(y0+1, src.Min.Y+(y+1)*src.Dy()/h)
		for x := 0; x < w; x++ {
			x0 := src.Min.X + x*src.Dx()/w
			x1 := max(x0+1, src.Min.X+(x+1)*src.Dx()/w)
			out.SetRGBA(x, y, average(img, image.Rect(x0, y0, x1, y1)))
		}
	}

	return out
}

func average(img image.Image, r image.Rectangle) color.RGBA {
	var sr, sg, sb, sa, n uint64
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			cr, cg, cb, ca := img.At(x, y).RGBA()
			sr += uint64(cr)
			sg += uint64(cg)
			sb += uint64(cb)
			sa += uint64(ca)
			n++
		}
	}

	// 16 bit channel sums back to 8 bit.
	return color.RGBA{
		R: uint8((sr / n) >> 8),
		G: uint8((sg / n) >> 8),
		B: uint8((sb / n) >> 8),
		A: uint8((sa / n) >> 8),
	}
}
