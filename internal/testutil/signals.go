package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a sine starting at phase 0.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// DC generates a constant-valued signal.
func DC(value float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = value
	}
	return out
}

// Ramp generates 0, step, 2*step, ...
func Ramp(step float64, length int) []float64 {
	out := make([]float64, length)
	for i := range out {
		out[i] = step * float64(i)
	}
	return out
}

// Planar returns channels independent copies of src, laid out as a planar block.
func Planar(src []float64, channels int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = append([]float64(nil), src...)
	}
	return out
}

// Clone deep-copies a planar block.
func Clone(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for ch, buf := range block {
		out[ch] = append([]float64(nil), buf...)
	}
	return out
}

// Slice returns the planar sub-block [from, to) without copying.
func Slice(block [][]float64, from, to int) [][]float64 {
	out := make([][]float64, len(block))
	for ch, buf := range block {
		out[ch] = buf[from:to]
	}
	return out
}
