//go:build !fastmath

package mix

import "math"

// DBToGain converts a level in dB to a linear amplitude factor.
func DBToGain(db float64) float64 {
	return math.Pow(10, db/20)
}
