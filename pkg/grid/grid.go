package grid

import (
	"errors"
	"fmt"
)

// ErrResolution is returned when a grid is requested with fewer than one sample on an axis.
var ErrResolution = errors.New("grid: resolution must be at least 1")

// Region is a rectangle of the complex plane.
type Region struct {
	RealMin, RealMax float64
	ImagMin, ImagMax float64
}

// Square returns the region [-r, r] x [-r, r].
func Square(r float64) Region {
	return Region{RealMin: -r, RealMax: r, ImagMin: -r, ImagMax: r}
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g]i", r.RealMin, r.RealMax, r.ImagMin, r.ImagMax)
}

// Linspace returns n evenly spaced samples over [start, stop], both ends included.
// A single sample is start.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return nil
	}

	result := make([]float64, n)
	if n == 1 {
		result[0] = start
		return result
	}

	step := (stop - start) / float64(n-1)
	for i := range result {
		result[i] = start + step*float64(i)
	}
	// Avoid accumulated rounding on the upper bound.
	result[n-1] = stop

	return result
}

// A Grid is an immutable Height x Width array of complex samples.
//
// Values[col + row*Width] is Real[col] + Imag[row]*i: real samples vary along
// columns and imaginary samples along rows.
type Grid struct {
	Region Region

	Width  int
	Height int

	Values []complex128
}

// New samples region at width columns and height rows.
func New(region Region, width, height int) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrResolution, width, height)
	}

	xs := Linspace(region.RealMin, region.RealMax, width)
	ys := Linspace(region.ImagMin, region.ImagMax, height)

	values := make([]complex128, width*height)
	for row, y := range ys {
		for col, x := range xs {
			values[col+row*width] = complex(x, y)
		}
	}

	return &Grid{
		Region: region,
		Width:  width,
		Height: height,
		Values: values,
	}, nil
}

// NewSquare samples region with the same resolution on both axes.
func NewSquare(region Region, resolution int) (*Grid, error) {
	return New(region, resolution, resolution)
}

// FromValues wraps explicit samples, for example a single point.
// The region is the bounding box of the values.
func FromValues(width, height int, values []complex128) (*Grid, error) {
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: got %dx%d", ErrResolution, width, height)
	}
	if len(values) != width*height {
		return nil, fmt.Errorf("grid: %d values do not fill %dx%d", len(values), width, height)
	}

	region := Region{
		RealMin: real(values[0]), RealMax: real(values[0]),
		ImagMin: imag(values[0]), ImagMax: imag(values[0]),
	}
	for _, v := range values[1:] {
		region.RealMin = min(region.RealMin, real(v))
		region.RealMax = max(region.RealMax, real(v))
		region.ImagMin = min(region.ImagMin, imag(v))
		region.ImagMax = max(region.ImagMax, imag(v))
	}

	return &Grid{
		Region: region,
		Width:  width,
		Height: height,
		Values: append([]complex128(nil), values...),
	}, nil
}

// At returns the sample at row, col.
func (g *Grid) At(row, col int) complex128 {
	return g.Values[col+row*g.Width]
}

// Row returns the samples of one row. The slice aliases the grid and must not be modified.
func (g *Grid) Row(row int) []complex128 {
	return g.Values[row*g.Width : (row+1)*g.Width]
}

// Len is the number of samples.
func (g *Grid) Len() int {
	return len(g.Values)
}
