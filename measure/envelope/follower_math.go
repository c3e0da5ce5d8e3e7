//go:build !fastmath

package envelope

import "math"

// powHundredth computes 0.01^x.
func powHundredth(x float64) float64 {
	return math.Pow(0.01, x)
}
