package escape

import "github.com/willbeason/escape-fractal/pkg/grid"

// Counts holds, for every grid point, how many updates were applied before the
// point escaped or the iteration cap was reached. It has the shape of the grid
// it was computed from.
type Counts struct {
	Region grid.Region

	Width  int
	Height int

	// Iterations is the cap the counts were computed with. A point whose count
	// equals Iterations never escaped.
	Iterations int

	Values []float64
}

func newCounts(g *grid.Grid, iterations int) *Counts {
	return &Counts{
		Region:     g.Region,
		Width:      g.Width,
		Height:     g.Height,
		Iterations: iterations,
		Values:     make([]float64, len(g.Values)),
	}
}

// At returns the count at row, col.
func (c *Counts) At(row, col int) float64 {
	return c.Values[col+row*c.Width]
}

// Min returns the smallest count.
func (c *Counts) Min() float64 {
	if len(c.Values) == 0 {
		return 0
	}

	result := c.Values[0]
	for _, v := range c.Values[1:] {
		result = min(result, v)
	}
	return result
}

// Max returns the largest count.
func (c *Counts) Max() float64 {
	result := 0.0
	for _, v := range c.Values {
		result = max(result, v)
	}
	return result
}

// Bounded returns the number of points that never escaped.
func (c *Counts) Bounded() int {
	n := 0
	limit := float64(c.Iterations)
	for _, v := range c.Values {
		if v >= limit {
			n++
		}
	}
	return n
}
