package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/willbeason/escape-fractal/pkg/config"
	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/fractal"
)

type options struct {
	plane  config.Plane
	output config.Output
	escape escape.Options
}

func mainCmd() *cobra.Command {
	opts := &options{
		plane:  config.DefaultPlane(),
		output: config.DefaultOutput(),
		escape: escape.DefaultOptions(),
	}

	cmd := &cobra.Command{
		Use:   "mandelbrot",
		Short: "Render the escape-time heatmap of z -> z^2 + c, starting from z = 0",
		Args:  cobra.ExactArgs(0),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCmd(cmd, opts)
		},
	}

	flags := cmd.Flags()
	opts.plane.AddFlags(flags)
	opts.output.AddFlags(flags)
	config.AddEvaluatorFlags(flags, "", &opts.escape)

	return cmd
}

func runCmd(cmd *cobra.Command, opts *options) error {
	// At this point usage information has already been printed if obviously incorrect.
	cmd.SilenceUsage = true

	opts.escape.Workers = opts.output.Workers
	if err := opts.plane.Validate(); err != nil {
		return err
	}
	if err := opts.output.Validate(); err != nil {
		return err
	}
	if err := config.ValidateEvaluator(opts.escape); err != nil {
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

	_, err = runner.Run(cmd.Context(), g, fractal.Job{
		Name:    "mandelbrot",
		Title:   "Mandelbrot",
		Rule:    escape.MandelbrotRule(),
		Options: opts.escape,
	})
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
