package transforms

import "math/cmplx"

// Square is z -> z^2.
type Square struct{}

func (Square) Next(z complex128) complex128 {
	return z * z
}

// Pow is z -> z^N.
type Pow struct {
	N complex128
}

func (p Pow) Next(z complex128) complex128 {
	return cmplx.Pow(z, p.N)
}

// Julia is the Julia step z -> F(z) + C, with C fixed for every point.
// A nil F is squaring.
type Julia struct {
	F Transform
	C complex128
}

func (j Julia) Next(z complex128) complex128 {
	if j.F == nil {
		return z*z + j.C
	}
	return j.F.Next(z) + j.C
}
