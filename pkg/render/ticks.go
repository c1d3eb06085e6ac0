package render

import (
	"math"
	"strconv"
)

// Ticks returns at most maxTicks round values within [lo, hi], spaced by
// 1, 2, 2.5 or 5 times a power of ten.
func Ticks(lo, hi float64, maxTicks int) []float64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	if maxTicks < 2 || hi == lo || math.IsInf(hi-lo, 0) || math.IsNaN(hi-lo) {
		return []float64{lo}
	}

	raw := (hi - lo) / float64(maxTicks-1)
	magnitude := math.Pow(10, math.Floor(math.Log10(raw)))

	step := 10 * magnitude
	for _, m := range []float64{1, 2, 2.5, 5, 10} {
		if m*magnitude >= raw {
			step = m * magnitude
			break
		}
	}

	// Tolerance keeps bounds that are exact multiples from being lost to rounding.
	eps := step * 1e-9
	first := math.Ceil((lo-eps)/step) * step

	// One digit past the step's magnitude covers the 2.5 multiples.
	decimals := max(0, 1-int(math.Floor(math.Log10(step))))

	var ticks []float64
	for i := 0; first+float64(i)*step <= hi+eps; i++ {
		t, _ := strconv.ParseFloat(strconv.FormatFloat(first+float64(i)*step, 'f', decimals, 64), 64)
		if t == 0 {
			// Drop the sign of -0.
			t = 0
		}
		ticks = append(ticks, t)
	}
	return ticks
}

// FormatTick formats a tick value with the fewest digits that represent it.
func FormatTick(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
