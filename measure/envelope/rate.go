package envelope

import (
	"errors"
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	vecmath "github.com/cwbudde/algo-vecmath"
)

var (
	// ErrTooShort is returned when an envelope has too few points to analyse.
	ErrTooShort = errors.New("envelope: signal too short")
	// ErrNoModulation is returned for a constant envelope.
	ErrNoModulation = errors.New("envelope: no modulation found")
)

const (
	minRatePoints = 8
	ratePadFactor = 8
)

// ModulationRate returns the dominant frequency in Hz of an envelope sampled
// at envRate Hz. The envelope is mean-removed, Hann-windowed and zero-padded
// before the FFT; the peak bin is refined by parabolic interpolation.
func ModulationRate(env []float64, envRate float64) (float64, error) {
	if envRate <= 0 || math.IsNaN(envRate) || math.IsInf(envRate, 0) {
		return 0, fmt.Errorf("envelope rate must be > 0: %f", envRate)
	}
	n := len(env)
	if n < minRatePoints {
		return 0, fmt.Errorf("%w: %d points", ErrTooShort, n)
	}

	mean, lo, hi := 0.0, env[0], env[0]
	for _, v := range env {
		mean += v
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if hi == lo {
		return 0, ErrNoModulation
	}
	mean /= float64(n)

	size := nextPowerOf2(n) * ratePadFactor
	in := make([]complex128, size)
	for i, v := range env {
		w := 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
		in[i] = complex((v-mean)*w, 0)
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return 0, fmt.Errorf("envelope: %w", err)
	}
	out := make([]complex128, size)
	if err := plan.Forward(out, in); err != nil {
		return 0, fmt.Errorf("envelope: %w", err)
	}

	half := size / 2
	re := make([]float64, half)
	im := make([]float64, half)
	for i := range re {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}
	power := make([]float64, half)
	vecmath.Power(power, re, im)

	best := 1
	for i := 2; i < half; i++ {
		if power[i] > power[best] {
			best = i
		}
	}
	if !(power[best] > 0) {
		return 0, ErrNoModulation
	}

	delta := 0.0
	if best+1 < half {
		a, b, c := power[best-1], power[best], power[best+1]
		if den := a - 2*b + c; den != 0 {
			delta = 0.5 * (a - c) / den
		}
	}

	return (float64(best) + delta) * envRate / float64(size), nil
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
