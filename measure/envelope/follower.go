package envelope

import (
	"fmt"
	"math"
)

const (
	// MaxTimeMs is the longest accepted attack or release time.
	MaxTimeMs = 1000.0

	defaultAttackMs  = 50.0
	defaultReleaseMs = 50.0
)

// Follower tracks |x| with separate attack and release time constants. The
// coefficient for a time of t ms reaches 1% of the remaining distance after
// t ms.
type Follower struct {
	sampleRate  float64
	attackMs    float64
	releaseMs   float64
	attackCoef  float64
	releaseCoef float64
	value       float64
}

// NewFollower creates a follower with 50 ms attack and release.
func NewFollower(sampleRate float64) (*Follower, error) {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return nil, fmt.Errorf("envelope sample rate must be > 0: %f", sampleRate)
	}
	f := &Follower{sampleRate: sampleRate}
	if err := f.SetAttack(defaultAttackMs); err != nil {
		return nil, err
	}
	if err := f.SetRelease(defaultReleaseMs); err != nil {
		return nil, err
	}
	return f, nil
}

// SetAttack sets the rise time in milliseconds. Zero follows rises instantly.
func (f *Follower) SetAttack(ms float64) error {
	if ms < 0 || ms > MaxTimeMs || math.IsNaN(ms) {
		return fmt.Errorf("envelope attack must be in [0, %g] ms: %f", MaxTimeMs, ms)
	}
	f.attackMs = ms
	f.attackCoef = timeCoefficient(ms, f.sampleRate)
	return nil
}

// SetRelease sets the fall time in milliseconds. Zero follows falls instantly.
func (f *Follower) SetRelease(ms float64) error {
	if ms < 0 || ms > MaxTimeMs || math.IsNaN(ms) {
		return fmt.Errorf("envelope release must be in [0, %g] ms: %f", MaxTimeMs, ms)
	}
	f.releaseMs = ms
	f.releaseCoef = timeCoefficient(ms, f.sampleRate)
	return nil
}

// Attack returns the attack time in milliseconds.
func (f *Follower) Attack() float64 { return f.attackMs }

// Release returns the release time in milliseconds.
func (f *Follower) Release() float64 { return f.releaseMs }

// Value returns the current envelope.
func (f *Follower) Value() float64 { return f.value }

// ProcessSample feeds one sample and returns the updated envelope.
func (f *Follower) ProcessSample(x float64) float64 {
	level := math.Abs(x)
	coef := f.releaseCoef
	if level > f.value {
		coef = f.attackCoef
	}
	f.value = coef*f.value + (1-coef)*level
	return f.value
}

// ProcessBlock writes the envelope of src into dst. dst may alias src.
func (f *Follower) ProcessBlock(dst, src []float64) {
	n := min(len(dst), len(src))
	for i := 0; i < n; i++ {
		dst[i] = f.ProcessSample(src[i])
	}
}

// Reset clears the envelope.
func (f *Follower) Reset() {
	f.value = 0
}

func timeCoefficient(ms, sampleRate float64) float64 {
	samples := ms * sampleRate * 0.001
	if samples <= 0 {
		return 0
	}
	return powHundredth(1 / samples)
}
