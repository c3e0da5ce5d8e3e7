//go:build fastmath

package mix

import "github.com/meko-christian/algo-approx"

// ln10Over20 converts dB to the natural exponent: 10^(db/20) = e^(db*ln10/20).
const ln10Over20 = 0.11512925464970228420089957273422

// DBToGain converts a level in dB to a linear amplitude factor using the
// fast exponential approximation.
func DBToGain(db float64) float64 {
	return approx.FastExp(db * ln10Over20)
}
