package escape

import "runtime"

const (
	// DefaultIterations is the iteration cap when none is configured.
	DefaultIterations = 10

	// DefaultRadius is the divergence radius when none is configured.
	DefaultRadius = 2.0
)

// Options configure an evaluator run.
type Options struct {
	// Iterations is the maximum number of updates applied to any point.
	Iterations int

	// Radius is the divergence radius. A point whose magnitude is at least
	// Radius is never updated again.
	Radius float64

	// Workers is the number of goroutines evaluating rows. Values below 1 use
	// one worker per CPU.
	Workers int
}

// DefaultOptions returns the default cap and radius, with one worker per CPU.
func DefaultOptions() Options {
	return Options{
		Iterations: DefaultIterations,
		Radius:     DefaultRadius,
		Workers:    runtime.NumCPU(),
	}
}

func (o Options) workers(rows int) int {
	n := o.Workers
	if n < 1 {
		n = runtime.NumCPU()
	}
	return max(1, min(n, rows))
}
