package envelope

import (
	"math"

	vecmath "github.com/cwbudde/algo-vecmath"
)

// RMS returns the root-mean-square level of x, or 0 for an empty slice.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(vecmath.DotProduct(x, x) / float64(len(x)))
}

// Peak returns max |x|.
func Peak(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return vecmath.MaxAbs(x)
}

// PeakEnvelope returns max |x| over consecutive windows of the given size.
// A trailing partial window is included.
func PeakEnvelope(x []float64, window int) []float64 {
	if window <= 0 || len(x) == 0 {
		return nil
	}
	out := make([]float64, 0, (len(x)+window-1)/window)
	for start := 0; start < len(x); start += window {
		end := min(start+window, len(x))
		out = append(out, vecmath.MaxAbs(x[start:end]))
	}
	return out
}

// PeakPositions splits env into consecutive segments of the given length and
// returns the index (into env) of the largest value in each full segment.
func PeakPositions(env []float64, segment int) []int {
	if segment <= 0 {
		return nil
	}
	var out []int
	for start := 0; start+segment <= len(env); start += segment {
		best := start
		for i := start + 1; i < start+segment; i++ {
			if env[i] > env[best] {
				best = i
			}
		}
		out = append(out, best)
	}
	return out
}
