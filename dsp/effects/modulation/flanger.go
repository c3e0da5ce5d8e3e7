package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/interp"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

const (
	defaultFlangerMaxDelaySeconds = 0.02
	maxFlangerMaxDelaySeconds     = 0.2
)

// FlangerLimits are the accepted parameter ranges of the flanger pedal.
func FlangerLimits() effects.Limits {
	return effects.Limits{
		RateHz:       effects.Range{Min: 0, Max: 10},
		Depth:        effects.Range{Min: 0, Max: 1},
		DelaySeconds: effects.Range{Min: 0.001, Max: 0.01},
		Feedback:     effects.Range{Min: 0, Max: 0.99},
		Mix:          effects.Range{Min: 0, Max: 1},
		Gain:         effects.Range{Min: 0, Max: 2},
		Mode:         effects.IntRange{Min: int(effects.ModePassThrough), Max: int(effects.ModeThroughZero)},
		Taps:         effects.IntRange{Min: 1, Max: 1},
		Voices:       effects.IntRange{Min: 1, Max: 1},
	}
}

// FlangerDefaults returns the flanger pedal's initial parameters.
func FlangerDefaults() effects.Params {
	return effects.Params{
		RateHz:       0.2,
		Depth:        0.9,
		DelaySeconds: 0.003,
		Feedback:     0.1,
		Mix:          0.3,
		Gain:         1,
		Shape:        lfo.Sine,
		Mode:         effects.ModeAdditive,
		Taps:         1,
		Voices:       1,
	}
}

// FlangerOption mutates flanger construction parameters.
type FlangerOption func(*sweep) error

// WithFlangerMaxDelaySeconds sets the longest swept delay the flanger can reach.
func WithFlangerMaxDelaySeconds(seconds float64) FlangerOption {
	return func(s *sweep) error {
		if seconds <= 0 || seconds > maxFlangerMaxDelaySeconds || math.IsNaN(seconds) {
			return fmt.Errorf("flanger max delay must be in (0, %f]: %f", maxFlangerMaxDelaySeconds, seconds)
		}
		s.maxSeconds = seconds
		return nil
	}
}

// WithFlangerChannelPhase offsets the LFO of channel n by n*spread cycles.
func WithFlangerChannelPhase(spread float64) FlangerOption {
	return func(s *sweep) error {
		if spread < 0 || spread >= 1 || math.IsNaN(spread) {
			return fmt.Errorf("flanger channel phase must be in [0, 1): %f", spread)
		}
		s.spread = spread
		return nil
	}
}

// WithFlangerInterpolation selects the delay-line read kernel. The allpass
// kernel is rejected because through-zero mode reads two taps per sample.
func WithFlangerInterpolation(mode interp.Mode) FlangerOption {
	return func(s *sweep) error {
		if !mode.Valid() || mode == interp.Allpass {
			return fmt.Errorf("flanger interpolation not supported: %v", mode)
		}
		s.mode = mode
		return nil
	}
}

// Flanger is a short modulated delay with feedback. Params.Mode selects the
// blend:
//
//	additive:     dry*(1-mix) + wet*mix
//	subtractive:  dry*(1-mix) - wet*mix
//	through-zero: tap(base)*(1-mix) - wet*mix
//
// Pass-through mode returns the input untouched while the LFO and the
// delay history keep running.
type Flanger struct {
	sweep
}

// NewFlanger creates an unconfigured flanger.
func NewFlanger(opts ...FlangerOption) (*Flanger, error) {
	f := &Flanger{sweep: sweep{maxSeconds: defaultFlangerMaxDelaySeconds, mode: interp.Hermite}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&f.sweep); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Configure allocates per-channel delay histories and LFOs.
func (f *Flanger) Configure(cfg core.ProcessorConfig, channels int) error {
	return f.configure("flanger", cfg, channels)
}

// State reports the lifecycle state.
func (f *Flanger) State() effects.State { return f.state }

// Reset clears history and rewinds the LFOs.
func (f *Flanger) Reset() { f.reset() }

// Prepare applies the block's rate and shape to the LFOs.
func (f *Flanger) Prepare(p *effects.Params) { f.prepare(p) }

// ProcessSample processes one sample of channel ch, including the gain stage.
func (f *Flanger) ProcessSample(p *effects.Params, ch int, x float64) float64 {
	y := f.tickFlanger(p, ch, x)
	if p.Mode == effects.ModePassThrough {
		return y
	}
	return y * p.Gain
}

// Process runs a planar block in place.
func (f *Flanger) Process(p *effects.Params, block [][]float64) {
	assert.That(f.state == effects.Ready, "flanger: process before configure")

	f.prepare(p)
	for ch, buf := range block {
		for i, x := range buf {
			buf[i] = f.tickFlanger(p, ch, x)
		}
		if p.Mode != effects.ModePassThrough {
			mix.ApplyGain(buf, p.Gain)
		}
	}
}

func (f *Flanger) tickFlanger(p *effects.Params, ch int, x float64) float64 {
	wet := f.tick(p, ch, x, 1, false)

	dry, pol := x, mix.Add
	switch p.Mode {
	case effects.ModeAdditive:
	case effects.ModeSubtractive:
		pol = mix.Subtract
	case effects.ModeThroughZero:
		base := p.DelaySeconds * f.sampleRate
		if !(base > 0) {
			base = 0
		}
		dry, pol = f.line.Pop(ch, base), mix.Subtract
	default:
		return x
	}
	return mix.Blend(pol, dry, wet, p.Mix)
}
