package display

import (
	"context"
	"errors"
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func checker(w, h int, a, b color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := a
			if (x+y)%2 == 1 {
				c = b
			}
			img.SetRGBA(x, y, c)
		}
	}
	return img
}

func TestFit(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	tests := []struct {
		name          string
		w, h          int
		width, height int
		wantW, wantH  int
	}{
		{name: "already fits", w: 4, h: 4, width: 10, height: 10, wantW: 4, wantH: 4},
		{name: "square into wide", w: 100, h: 100, width: 80, height: 40, wantW: 40, wantH: 40},
		{name: "wide into square", w: 200, h: 100, width: 50, height: 50, wantW: 50, wantH: 25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Fit(checker(tt.w, tt.h, black, white), tt.width, tt.height)
			if b := got.Bounds(); b.Dx() != tt.wantW || b.Dy() != tt.wantH {
				t.Errorf("Fit() = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantW, tt.wantH)
			}
		})
	}
}

func TestFit_Averages(t *testing.T) {
	black := color.RGBA{A: 0xff}
	white := color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}

	got := Fit(checker(2, 2, black, white), 1, 1).RGBAAt(0, 0)
	if got.R < 0x7e || got.R > 0x80 || got.A != 0xff {
		t.Errorf("average of checkerboard = %v, want mid gray", got)
	}
}

func TestDismisses(t *testing.T) {
	tests := []struct {
		name string
		ev   *tcell.EventKey
		want bool
	}{
		{name: "q", ev: tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), want: true},
		{name: "Q", ev: tcell.NewEventKey(tcell.KeyRune, 'Q', tcell.ModNone), want: true},
		{name: "escape", ev: tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), want: true},
		{name: "enter", ev: tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), want: true},
		{name: "ctrl-c", ev: tcell.NewEventKey(tcell.KeyCtrlC, 0, tcell.ModCtrl), want: true},
		{name: "other rune", ev: tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone), want: false},
		{name: "arrow", ev: tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Dismisses(tt.ev); got != tt.want {
				t.Errorf("Dismisses() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(8, 5)

	red := color.RGBA{R: 0xff, A: 0xff}
	blue := color.RGBA{B: 0xff, A: 0xff}
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			c := red
			if y%2 == 1 {
				c = blue
			}
			img.SetRGBA(x, y, c)
		}
	}

	Draw(screen, img, "julia")
	screen.Show()

	cells, width, height := screen.GetContents()
	if width != 8 || height != 5 {
		t.Fatalf("screen = %dx%d, want 8x5", width, height)
	}

	cell := cells[0]
	if len(cell.Runes) == 0 || cell.Runes[0] != halfBlock {
		t.Fatalf("cell(0, 0) = %q, want half block", cell.Runes)
	}
	fg, bg, _ := cell.Style.Decompose()
	if fg != toColor(red) || bg != toColor(blue) {
		t.Errorf("cell(0, 0) colors = %v on %v, want red on blue", fg, bg)
	}

	status := cells[4*width]
	if len(status.Runes) == 0 || status.Runes[0] != 'j' {
		t.Errorf("status line starts with %q, want title", status.Runes)
	}
}

func TestShow_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v := &Viewer{NewScreen: func() (tcell.Screen, error) {
		return tcell.NewSimulationScreen("UTF-8"), nil
	}}
	err := v.Show(ctx, image.NewRGBA(image.Rect(0, 0, 4, 4)), "empty")
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Show() error = %v, want context.Canceled", err)
	}
}

// announcedScreen reports each initialized screen so keys can be injected
// once Show is waiting for them.
type announcedScreen struct {
	tcell.SimulationScreen
	ready chan<- tcell.SimulationScreen
}

func (s *announcedScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.ready <- s.SimulationScreen
	return nil
}

func announcingViewer(ready chan<- tcell.SimulationScreen) *Viewer {
	return &Viewer{NewScreen: func() (tcell.Screen, error) {
		return &announcedScreen{SimulationScreen: tcell.NewSimulationScreen("UTF-8"), ready: ready}, nil
	}}
}

func TestShow_BlocksUntilDismissed(t *testing.T) {
	tests := []struct {
		name string
		key  tcell.Key
		r    rune
	}{
		{name: "q", key: tcell.KeyRune, r: 'q'},
		{name: "escape", key: tcell.KeyEscape},
		{name: "enter", key: tcell.KeyEnter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ready := make(chan tcell.SimulationScreen, 1)
			v := announcingViewer(ready)

			done := make(chan error, 1)
			go func() {
				done <- v.Show(context.Background(), image.NewRGBA(image.Rect(0, 0, 8, 8)), tt.name)
			}()

			var screen tcell.SimulationScreen
			select {
			case screen = <-ready:
			case <-time.After(5 * time.Second):
				t.Fatal("screen was never initialized")
			}

			// Other keys leave the figure up.
			screen.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
			select {
			case err := <-done:
				t.Fatalf("Show() returned %v before a dismiss key", err)
			case <-time.After(50 * time.Millisecond):
			}

			screen.InjectKey(tt.key, tt.r, tcell.ModNone)
			select {
			case err := <-done:
				if err != nil {
					t.Errorf("Show() = %v, want nil", err)
				}
			case <-time.After(5 * time.Second):
				t.Fatal("Show() still blocked after dismiss key")
			}
		})
	}
}

func TestShow_NoTerminal(t *testing.T) {
	v := &Viewer{NewScreen: func() (tcell.Screen, error) {
		return nil, errors.New("open /dev/tty: no such device")
	}}

	err := v.Show(context.Background(), image.NewRGBA(image.Rect(0, 0, 1, 1)), "none")
	if !errors.Is(err, ErrNoTerminal) {
		t.Errorf("Show() error = %v, want ErrNoTerminal", err)
	}
}
