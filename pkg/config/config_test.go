package config

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/spf13/pflag"

	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/grid"
)

func TestPlane_Flags(t *testing.T) {
	p := DefaultPlane()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	p.AddFlags(fs)

	err := fs.Parse([]string{"--real-min=-1.5", "--resolution=64"})
	if err != nil {
		t.Fatal(err)
	}

	want := Plane{Region: grid.Region{RealMin: -1.5, RealMax: 2, ImagMin: -2, ImagMax: 2}, Resolution: 64}
	if p != want {
		t.Errorf("plane = %+v, want %+v", p, want)
	}
	if err := p.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	g, err := p.Grid()
	if err != nil {
		t.Fatal(err)
	}
	if g.Width != 64 || g.Height != 64 || g.At(0, 0) != complex(-1.5, -2) {
		t.Errorf("grid %dx%d starts at %v", g.Width, g.Height, g.At(0, 0))
	}
}

func TestPlane_Validate(t *testing.T) {
	tests := []struct {
		name  string
		plane Plane
		want  error
	}{
		{name: "default", plane: DefaultPlane(), want: nil},
		{name: "zero resolution", plane: Plane{Region: grid.Square(2)}, want: ErrResolution},
		{name: "flat real axis", plane: Plane{Region: grid.Region{ImagMin: -1, ImagMax: 1}, Resolution: 2}, want: ErrBounds},
		{
			name:  "inverted imaginary axis",
			plane: Plane{Region: grid.Region{RealMin: -1, RealMax: 1, ImagMin: 1, ImagMax: -1}, Resolution: 2},
			want:  ErrBounds,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.plane.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestEvaluatorFlags(t *testing.T) {
	julia := escape.DefaultOptions()
	mandel := escape.DefaultOptions()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	AddEvaluatorFlags(fs, "julia-", &julia)
	AddEvaluatorFlags(fs, "mandelbrot-", &mandel)

	err := fs.Parse([]string{"--julia-iterations=15", "--mandelbrot-radius=4"})
	if err != nil {
		t.Fatal(err)
	}

	if julia.Iterations != 15 || julia.Radius != 2 {
		t.Errorf("julia options = %+v", julia)
	}
	if mandel.Iterations != 10 || mandel.Radius != 4 {
		t.Errorf("mandelbrot options = %+v", mandel)
	}
}

func TestValidateEvaluator(t *testing.T) {
	tests := []struct {
		name string
		opts escape.Options
		want error
	}{
		{name: "default", opts: escape.DefaultOptions(), want: nil},
		{name: "no iterations", opts: escape.Options{Radius: 2}, want: ErrIterations},
		{name: "zero radius", opts: escape.Options{Iterations: 3}, want: ErrRadius},
		{name: "negative radius", opts: escape.Options{Iterations: 3, Radius: -2}, want: ErrRadius},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := ValidateEvaluator(tt.opts); !errors.Is(err, tt.want) {
				t.Errorf("ValidateEvaluator() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestComplexValue(t *testing.T) {
	tests := []struct {
		in   string
		want complex128
	}{
		{in: "-1", want: -1},
		{in: "0.7+0.42i", want: complex(0.7, 0.42)},
		{in: "(0-0.8i)", want: complex(0, -0.8)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c ComplexValue
			if err := c.Set(tt.in); err != nil {
				t.Fatal(err)
			}
			if complex128(c) != tt.want {
				t.Errorf("Set(%q) = %v, want %v", tt.in, complex128(c), tt.want)
			}
		})
	}

	var c ComplexValue
	if err := c.Set("one"); err == nil {
		t.Error("Set(one) succeeded")
	}
}

func TestOutput_Flags(t *testing.T) {
	o := DefaultOutput()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	o.AddFlags(fs)

	if !o.Display {
		t.Error("figures are not displayed by default")
	}

	err := fs.Parse([]string{"--display=false", "--log-level=debug", "--workers=3", "--colormap=gray"})
	if err != nil {
		t.Fatal(err)
	}

	if o.Display || o.LogLevel != slog.LevelDebug || o.Workers != 3 || o.Colormap != "gray" || o.Dir != DefaultOut {
		t.Errorf("output = %+v", o)
	}
	if err := o.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	o.Workers = 0
	if err := o.Validate(); !errors.Is(err, ErrWorkers) {
		t.Errorf("Validate() = %v, want ErrWorkers", err)
	}
}

func TestOutput_Logger(t *testing.T) {
	o := DefaultOutput()
	o.LogLevel = slog.LevelWarn

	var buf bytes.Buffer
	logger := o.Logger(&buf)
	logger.Info("hidden")
	logger.Warn("shown")

	if bytes.Contains(buf.Bytes(), []byte("hidden")) || !bytes.Contains(buf.Bytes(), []byte("shown")) {
		t.Errorf("log output = %q", buf.String())
	}
}
