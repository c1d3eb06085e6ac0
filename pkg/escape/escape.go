// Package escape counts, for each point of a grid, how many iterations of an
// escape-time system are applied before the orbit leaves the divergence radius.
//
// Every round, a point is active while its magnitude is below the radius.
// Active points are updated and counted; inactive points keep both their value
// and their count from then on. Rows are independent, so they are evaluated in
// parallel and the result does not depend on the number of workers.
package escape

import (
	"context"
	"math/cmplx"
	"sync"

	"github.com/willbeason/escape-fractal/pkg/grid"
	"github.com/willbeason/escape-fractal/pkg/transforms"
)

// A Rule is one escape-time system, parameterized by the grid sample p of each point.
type Rule struct {
	// Start returns the initial orbit value of the point with sample p.
	Start func(p complex128) complex128

	// Step returns the orbit value following z for the point with sample p.
	Step func(z, p complex128) complex128
}

// JuliaRule starts every orbit at its grid sample and iterates z -> f(z) + c.
// A nil f is squaring.
func JuliaRule(c complex128, f transforms.Transform) Rule {
	j := transforms.Julia{F: f, C: c}
	return Rule{
		Start: func(p complex128) complex128 { return p },
		Step:  func(z, _ complex128) complex128 { return j.Next(z) },
	}
}

// MandelbrotRule starts every orbit at zero and iterates z -> z^2 + p.
func MandelbrotRule() Rule {
	m := transforms.Mandelbrot{}
	return Rule{
		Start: func(complex128) complex128 { return 0 },
		Step:  m.Next,
	}
}

// Orbit runs rule for the point with sample p, at most n times, and returns
// the number of updates applied and the final orbit value.
func Orbit(rule Rule, p complex128, n int, radius float64) (int, complex128) {
	z := rule.Start(p)

	count := 0
	// NaN magnitudes compare false, so they freeze like escaped points.
	for count < n && cmplx.Abs(z) < radius {
		z = rule.Step(z, p)
		count++
	}

	return count, z
}

// Evaluate computes the escape counts of every point of g under rule.
//
// The only error is the context's, if it is cancelled before every row is done.
func Evaluate(ctx context.Context, g *grid.Grid, rule Rule, opts Options) (*Counts, error) {
	counts := newCounts(g, opts.Iterations)

	rows := make(chan int)
	complete := false
	go func() {
		defer close(rows)
		for row := 0; row < g.Height; row++ {
			select {
			case rows <- row:
			case <-ctx.Done():
				return
			}
		}
		complete = true
	}()

	parallel := opts.workers(g.Height)

	wg := sync.WaitGroup{}
	wg.Add(parallel)
	for i := 0; i < parallel; i++ {
		go func() {
			defer wg.Done()
			for row := range rows {
				out := counts.Values[row*g.Width : (row+1)*g.Width]
				for col, p := range g.Row(row) {
					n, _ := Orbit(rule, p, opts.Iterations, opts.Radius)
					out[col] = float64(n)
				}
			}
		}()
	}
	wg.Wait()

	// Workers only return after rows is closed, so complete is settled.
	if !complete {
		return nil, ctx.Err()
	}

	return counts, nil
}

// Julia uses each grid sample as the initial value and adds the constant c
// after every application of f.
func Julia(ctx context.Context, g *grid.Grid, c complex128, f transforms.Transform, opts Options) (*Counts, error) {
	return Evaluate(ctx, g, JuliaRule(c, f), opts)
}

// Mandelbrot starts every point at zero and uses its grid sample as the
// additive constant of the squaring map.
func Mandelbrot(ctx context.Context, g *grid.Grid, opts Options) (*Counts, error) {
	return Evaluate(ctx, g, MandelbrotRule(), opts)
}
