package drive

import (
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// Saturation variants selected by Params.Mode. Mode 0 bypasses the pedal.
const (
	SaturationArctan effects.Mode = 1
	SaturationCubic  effects.Mode = 2
)

// SaturationLimits are the accepted parameter ranges of the saturation pedal.
func SaturationLimits() effects.Limits {
	return effects.Limits{
		Mix:    effects.Range{Min: 0, Max: 1},
		Gain:   effects.Range{Min: 0, Max: 3},
		Drive:  effects.Range{Min: 1, Max: 10},
		Curve:  effects.Range{Min: 0, Max: 0.4},
		Mode:   effects.IntRange{Min: 0, Max: int(SaturationCubic)},
		Taps:   effects.IntRange{Min: 1, Max: 1},
		Voices: effects.IntRange{Min: 1, Max: 1},
	}
}

// SaturationDefaults returns the saturation pedal's initial parameters.
func SaturationDefaults() effects.Params {
	return effects.Params{
		Mix:    1,
		Gain:   1,
		Drive:  1,
		Curve:  0.333,
		Mode:   SaturationArctan,
		Taps:   1,
		Voices: 1,
	}
}

// Saturation is a soft clipper. With y = x*gain:
//
//	arctan: 2/pi * atan(drive*y)
//	cubic:  y - curve*y^3
type Saturation struct {
	stage
}

// NewSaturation creates an unconfigured saturation.
func NewSaturation() *Saturation {
	return &Saturation{}
}

// Configure allocates the wet buffers.
func (s *Saturation) Configure(cfg core.ProcessorConfig, channels int) error {
	return s.configure(cfg, channels)
}

// State reports the lifecycle state.
func (s *Saturation) State() effects.State { return s.state }

// Reset is a no-op; saturation is memoryless.
func (s *Saturation) Reset() {}

// Process runs a planar block in place.
func (s *Saturation) Process(p *effects.Params, block [][]float64) {
	assert.That(s.state == effects.Ready, "saturation: process before configure")

	if p.Mode == effects.ModePassThrough {
		return
	}
	s.run(p, block, s)
}

func (s *Saturation) shape(p *effects.Params, x float64) float64 {
	y := x * p.Gain
	switch p.Mode {
	case SaturationArctan:
		return 2 / math.Pi * math.Atan(p.Drive*y)
	case SaturationCubic:
		return y - p.Curve*y*y*y
	default:
		return x
	}
}
