// Package config binds the fractal commands' options to command-line flags.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"strconv"

	"github.com/spf13/pflag"

	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/grid"
)

var (
	ErrIterations = errors.New("iterations must be positive")
	ErrRadius     = errors.New("radius must be positive")
	ErrResolution = errors.New("resolution must be positive")
	ErrWorkers    = errors.New("workers must be positive")
	ErrBounds     = errors.New("region bounds must be increasing")
)

const (
	DefaultResolution = 1000
	DefaultOut        = "out"
	DefaultColormap   = "viridis"
)

// Plane selects the sampled region and its resolution.
type Plane struct {
	Region     grid.Region
	Resolution int
}

// DefaultPlane is [-2, 2] x [-2, 2] at DefaultResolution samples per axis.
func DefaultPlane() Plane {
	return Plane{Region: grid.Square(2), Resolution: DefaultResolution}
}

func (p *Plane) AddFlags(fs *pflag.FlagSet) {
	fs.Float64Var(&p.Region.RealMin, "real-min", p.Region.RealMin, "lower bound of the real axis")
	fs.Float64Var(&p.Region.RealMax, "real-max", p.Region.RealMax, "upper bound of the real axis")
	fs.Float64Var(&p.Region.ImagMin, "imag-min", p.Region.ImagMin, "lower bound of the imaginary axis")
	fs.Float64Var(&p.Region.ImagMax, "imag-max", p.Region.ImagMax, "upper bound of the imaginary axis")
	fs.IntVar(&p.Resolution, "resolution", p.Resolution, "samples per axis")
}

func (p Plane) Validate() error {
	if p.Resolution < 1 {
		return fmt.Errorf("%w: %d", ErrResolution, p.Resolution)
	}
	if !(p.Region.RealMin < p.Region.RealMax) || !(p.Region.ImagMin < p.Region.ImagMax) {
		return fmt.Errorf("%w: %v", ErrBounds, p.Region)
	}
	return nil
}

// Grid samples the plane.
func (p Plane) Grid() (*grid.Grid, error) {
	return grid.NewSquare(p.Region, p.Resolution)
}

// AddEvaluatorFlags binds iteration cap, radius and worker count under the
// given prefix, so one command can configure several evaluators.
func AddEvaluatorFlags(fs *pflag.FlagSet, prefix string, o *escape.Options) {
	fs.IntVar(&o.Iterations, prefix+"iterations", o.Iterations, "maximum iterations per point")
	fs.Float64Var(&o.Radius, prefix+"radius", o.Radius, "divergence radius")
}

func ValidateEvaluator(o escape.Options) error {
	if o.Iterations < 1 {
		return fmt.Errorf("%w: %d", ErrIterations, o.Iterations)
	}
	if !(o.Radius > 0) {
		return fmt.Errorf("%w: %v", ErrRadius, o.Radius)
	}
	return nil
}

// Output controls where figures go and how they look.
type Output struct {
	Dir         string
	Display     bool
	FixedExtent bool
	Colormap    string
	Workers     int
	LogLevel    slog.Level
}

func DefaultOutput() Output {
	return Output{
		Dir:      DefaultOut,
		Display:  true,
		Colormap: DefaultColormap,
		Workers:  runtime.NumCPU(),
		LogLevel: slog.LevelInfo,
	}
}

func (o *Output) AddFlags(fs *pflag.FlagSet) {
	fs.StringVar(&o.Dir, "out", o.Dir, "directory for PNG figures")
	fs.BoolVar(&o.Display, "display", o.Display, "show each figure in the terminal until dismissed; without a terminal only the PNG is written")
	fs.BoolVar(&o.FixedExtent, "fixed-extent", o.FixedExtent, "label axes -2..2 regardless of the sampled region")
	fs.StringVar(&o.Colormap, "colormap", o.Colormap, "heatmap colormap")
	fs.IntVar(&o.Workers, "workers", o.Workers, "goroutines evaluating rows")
	fs.Var((*levelValue)(&o.LogLevel), "log-level", "debug, info, warn or error")
}

func (o Output) Validate() error {
	if o.Workers < 1 {
		return fmt.Errorf("%w: %d", ErrWorkers, o.Workers)
	}
	return nil
}

// Logger writes text records at the configured level.
func (o Output) Logger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: o.LogLevel}))
}

// ComplexValue is a pflag.Value for complex numbers written like -1 or 0.7+0.42i.
type ComplexValue complex128

func (c *ComplexValue) String() string {
	return strconv.FormatComplex(complex128(*c), 'g', -1, 128)
}

func (c *ComplexValue) Set(s string) error {
	v, err := strconv.ParseComplex(s, 128)
	if err != nil {
		return err
	}
	*c = ComplexValue(v)
	return nil
}

func (c *ComplexValue) Type() string {
	return "complex"
}

type levelValue slog.Level

func (l *levelValue) String() string {
	return slog.Level(*l).String()
}

func (l *levelValue) Set(s string) error {
	return (*slog.Level)(l).UnmarshalText([]byte(s))
}

func (l *levelValue) Type() string {
	return "level"
}

var (
	_ pflag.Value = (*ComplexValue)(nil)
	_ pflag.Value = (*levelValue)(nil)
)
