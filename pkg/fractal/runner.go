// Package fractal runs escape-time jobs over a grid and presents each result
// as a figure.
package fractal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/gogpu/gg"

	"github.com/willbeason/escape-fractal/pkg/config"
	"github.com/willbeason/escape-fractal/pkg/display"
	"github.com/willbeason/escape-fractal/pkg/escape"
	"github.com/willbeason/escape-fractal/pkg/grid"
	"github.com/willbeason/escape-fractal/pkg/render"
)

// A Job is one evaluator run and the figure it produces.
type Job struct {
	// Name prefixes the output file.
	Name  string
	Title string

	Rule    escape.Rule
	Options escape.Options
}

// A Runner evaluates jobs and writes their figures to Dir.
type Runner struct {
	Logger *slog.Logger
	Figure *render.Figure

	Dir string

	// Viewer, if set, shows every figure after it is written and blocks until
	// it is dismissed. It is cleared if no terminal can be opened.
	Viewer *display.Viewer

	Now func() time.Time
}

// NewRunner configures a Runner from command-line output options, logging to
// logs. The logger is shared with the drawing library.
func NewRunner(out config.Output, logs io.Writer) (*Runner, error) {
	logger := out.Logger(logs)
	gg.SetLogger(logger)

	cm, err := render.LookupColormap(out.Colormap)
	if err != nil {
		return nil, err
	}

	figure := render.NewFigure()
	figure.Colormap = cm
	figure.FixedExtent = out.FixedExtent

	runner := &Runner{
		Logger: logger,
		Figure: figure,
		Dir:    out.Dir,
	}
	if out.Display {
		runner.Viewer = &display.Viewer{}
	}

	return runner, nil
}

// Result describes a finished job.
type Result struct {
	Counts *escape.Counts
	Path   string
}

// Run evaluates jobs in order, writing and presenting each before starting the next.
func (r *Runner) Run(ctx context.Context, g *grid.Grid, jobs ...Job) ([]Result, error) {
	results := make([]Result, 0, len(jobs))

	for _, job := range jobs {
		result, err := r.run(ctx, g, job)
		if err != nil {
			return results, fmt.Errorf("%s: %w", job.Name, err)
		}
		results = append(results, result)
	}

	return results, nil
}

func (r *Runner) run(ctx context.Context, g *grid.Grid, job Job) (Result, error) {
	logger := r.logger().With("job", job.Name)

	start := time.Now()
	counts, err := escape.Evaluate(ctx, g, job.Rule, job.Options)
	if err != nil {
		return Result{}, err
	}

	logger.Info("evaluated",
		"iterations", job.Options.Iterations,
		"radius", job.Options.Radius,
		"elapsed", time.Since(start),
		"bounded", counts.Bounded(),
		"escaped", len(counts.Values)-counts.Bounded(),
		"max", counts.Max())

	figure := *r.figure()
	figure.Title = job.Title

	path := filepath.Join(r.Dir, fmt.Sprintf("%s-%s.png", job.Name, r.now().Format("20060102150405")))
	err = figure.SavePNG(path, counts)
	if err != nil {
		return Result{}, err
	}
	logger.Info("wrote figure", "path", path)

	if r.Viewer != nil {
		dc, err := figure.Draw(counts)
		if err != nil {
			return Result{}, err
		}
		err = r.Viewer.Show(ctx, dc.Image(), job.Title)
		_ = dc.Close()
		switch {
		case errors.Is(err, display.ErrNoTerminal):
			// Later jobs would fail the same way.
			logger.Warn("cannot display figure, keeping the PNG only", "error", err)
			r.Viewer = nil
		case err != nil:
			return Result{}, err
		default:
			logger.Debug("dismissed display")
		}
	}

	return Result{Counts: counts, Path: path}, nil
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *Runner) figure() *render.Figure {
	if r.Figure == nil {
		return render.NewFigure()
	}
	return r.Figure
}

func (r *Runner) now() time.Time {
	if r.Now == nil {
		return time.Now()
	}
	return r.Now()
}
