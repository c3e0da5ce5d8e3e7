//go:build fastmath

package envelope

import "github.com/meko-christian/algo-approx"

// lnHundredth is ln(0.01).
const lnHundredth = -4.6051701859880913680359829093687

// powHundredth computes 0.01^x using fast approximation.
func powHundredth(x float64) float64 {
	return approx.FastExp(x * lnHundredth)
}
