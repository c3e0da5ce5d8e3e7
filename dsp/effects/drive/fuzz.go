package drive

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// fuzzLevel is the clip level at Drive 1; higher Drive clips harder.
const fuzzLevel = 0.05

// FuzzLimits are the accepted parameter ranges of the fuzz pedal.
func FuzzLimits() effects.Limits {
	return effects.Limits{
		Mix:    effects.Range{Min: 0, Max: 1},
		Gain:   effects.Range{Min: 0, Max: 3},
		Drive:  effects.Range{Min: 0, Max: 9},
		Taps:   effects.IntRange{Min: 1, Max: 1},
		Voices: effects.IntRange{Min: 1, Max: 1},
	}
}

// FuzzDefaults returns the fuzz pedal's initial parameters.
func FuzzDefaults() effects.Params {
	return effects.Params{Mix: 1, Gain: 0.5, Drive: 5, Taps: 1, Voices: 1}
}

// Fuzz hard-clips x*gain to ±0.05/drive. Drive 0 disables clipping.
type Fuzz struct {
	stage
}

// NewFuzz creates an unconfigured fuzz.
func NewFuzz() *Fuzz {
	return &Fuzz{}
}

// Configure allocates the wet buffers.
func (f *Fuzz) Configure(cfg core.ProcessorConfig, channels int) error {
	return f.configure(cfg, channels)
}

// State reports the lifecycle state.
func (f *Fuzz) State() effects.State { return f.state }

// Reset is a no-op; fuzz is memoryless.
func (f *Fuzz) Reset() {}

// Process runs a planar block in place.
func (f *Fuzz) Process(p *effects.Params, block [][]float64) {
	assert.That(f.state == effects.Ready, "fuzz: process before configure")
	f.run(p, block, f)
}

func (f *Fuzz) shape(p *effects.Params, x float64) float64 {
	y := x * p.Gain
	if p.Drive <= 0 {
		return y
	}
	level := fuzzLevel / p.Drive
	return core.Clamp(y, -level, level)
}
