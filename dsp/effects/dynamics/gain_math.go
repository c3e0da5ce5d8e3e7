//go:build !fastmath

package dynamics

import "math"

// mathLog2 computes log2(x).
func mathLog2(x float64) float64 {
	return math.Log2(x)
}

// mathPower2 computes 2^x.
func mathPower2(x float64) float64 {
	return math.Exp2(x)
}
