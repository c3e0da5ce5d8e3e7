package effects

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// GainLimits are the accepted parameter ranges of the gain pedal.
func GainLimits() Limits {
	return Limits{
		Gain:   Range{Min: 0, Max: 3},
		Taps:   IntRange{Min: 1, Max: 1},
		Voices: IntRange{Min: 1, Max: 1},
	}
}

// GainDefaults returns the gain pedal's initial parameters.
func GainDefaults() Params {
	return Params{Gain: 0.5, Taps: 1, Voices: 1}
}

// Gain scales the input by a constant factor.
type Gain struct {
	state State
}

// NewGain creates an unconfigured gain stage.
func NewGain() *Gain {
	return &Gain{}
}

// Configure checks the stream layout. Gain holds no buffers.
func (g *Gain) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := ValidateLayout(cfg, channels); err != nil {
		return err
	}
	g.state = Ready
	return nil
}

// State reports the lifecycle state.
func (g *Gain) State() State { return g.state }

// Reset is a no-op; gain is memoryless.
func (g *Gain) Reset() {}

// Process runs a planar block in place.
func (g *Gain) Process(p *Params, block [][]float64) {
	assert.That(g.state == Ready, "gain: process before configure")

	for _, buf := range block {
		mix.ApplyGain(buf, p.Gain)
	}
}
