package transforms

// Mandelbrot is the Mandelbrot step, where c is supplied per point.
type Mandelbrot struct{}

func (Mandelbrot) Next(z complex128, c complex128) complex128 {
	return z*z + c
}
