package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/escape-fractal/pkg/config"
	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/fractal"
	"github.com/willbeason/escape-fractal/pkg/transforms"
)

const (
	JuliaIterations      = 15
	MandelbrotIterations = 100

	JuliaC         = -1
	JuliaTransform = "sintan"
)

type options struct {
	plane      config.Plane
	output     config.Output
	julia      escape.Options
	mandelbrot escape.Options
	c          config.ComplexValue
	transform  string
}

func mainCmd() *cobra.Command {
	opts := &options{
		plane:      config.DefaultPlane(),
		output:     config.DefaultOutput(),
		julia:      escape.DefaultOptions(),
		mandelbrot: escape.DefaultOptions(),
		c:          JuliaC,
		transform:  JuliaTransform,
	}
	opts.julia.Iterations = JuliaIterations
	opts.mandelbrot.Iterations = MandelbrotIterations

	cmd := &cobra.Command{
		Use:   "fractal",
		Short: "Render a Julia set and the Mandelbrot set as escape-time heatmaps",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	flags := cmd.Flags()
	opts.plane.AddFlags(flags)
	opts.output.AddFlags(flags)
	config.AddEvaluatorFlags(flags, "julia-", &opts.julia)
	config.AddEvaluatorFlags(flags, "mandelbrot-", &opts.mandelbrot)
	flags.Var(&opts.c, "c", "constant added on every Julia iteration")
	flags.StringVar(&opts.transform, "transform", opts.transform, "Julia iteration function")

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	opts.julia.Workers = opts.output.Workers
	opts.mandelbrot.Workers = opts.output.Workers

	for _, validate := range []func() error{
		opts.plane.Validate,
		opts.output.Validate,
		func() error { return config.ValidateEvaluator(opts.julia) },
		func() error { return config.ValidateEvaluator(opts.mandelbrot) },
	} {
		if err := validate(); err != nil {
			return err
		}
	}

	f, err := transforms.Lookup(opts.transform)
	if err != nil {
		return err
	}

	runner, err := fractal.NewRunner(opts.output, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	g, err := opts.plane.Grid()
	if err != nil {
		return err
	}
	runner.Logger.Info("built grid", "region", g.Region, "width", g.Width, "height", g.Height)

	_, err = runner.Run(cmd.Context(), g,
		fractal.Job{
			Name:    "julia",
			Title:   "Julia, c = " + opts.c.String() + ", f = " + opts.transform,
			Rule:    escape.JuliaRule(complex128(opts.c), f),
			Options: opts.julia,
		},
		fractal.Job{
			Name:    "mandelbrot",
			Title:   "Mandelbrot",
			Rule:    escape.MandelbrotRule(),
			Options: opts.mandelbrot,
		},
	)
	return err
}

func main() {
	ctx := context.Background()

	err := mainCmd().ExecuteContext(ctx)
	if err != nil {
		// At this point the error has already been printed; no need to print again.
		os.Exit(1)
	}
}
