package transforms

import "math/cmplx"

// Sin is z -> sin(z).
type Sin struct{}

func (Sin) Next(z complex128) complex128 {
	return cmplx.Sin(z)
}

// SinTan is z -> sin(tan(z)).
type SinTan struct{}

func (SinTan) Next(z complex128) complex128 {
	return cmplx.Sin(cmplx.Tan(z))
}

// Exp is z -> e^z.
type Exp struct{}

func (Exp) Next(z complex128) complex128 {
	return cmplx.Exp(z)
}
