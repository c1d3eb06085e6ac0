package transforms

// Affine is z -> Scale*z + Shift.
//
// With Scale 1 and no Shift every orbit is a fixed point, so a point is counted
// up to the iteration cap exactly when it starts inside the divergence radius.
// That makes it the reference map for checking the radius alone.
type Affine struct {
	Scale complex128
	Shift complex128
}

func (a Affine) Next(z complex128) complex128 {
	return a.Scale*z + a.Shift
}
