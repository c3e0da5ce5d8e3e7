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
	defaultChorusMaxDelaySeconds = 0.2
	maxChorusMaxDelaySeconds     = 2.0

	// MaxChorusVoices is the largest supported voice count.
	MaxChorusVoices = 8
)

// ChorusLimits are the accepted parameter ranges of the chorus pedal.
func ChorusLimits() effects.Limits {
	return effects.Limits{
		RateHz:       effects.Range{Min: 0, Max: 10},
		Depth:        effects.Range{Min: 0, Max: 1},
		DelaySeconds: effects.Range{Min: 0.01, Max: 0.1},
		Feedback:     effects.Range{Min: 0, Max: 0},
		Mix:          effects.Range{Min: 0, Max: 1},
		Gain:         effects.Range{Min: 0, Max: 1},
		Taps:         effects.IntRange{Min: 1, Max: 1},
		Voices:       effects.IntRange{Min: 1, Max: MaxChorusVoices},
	}
}

// ChorusDefaults returns the chorus pedal's initial parameters.
func ChorusDefaults() effects.Params {
	return effects.Params{
		RateHz:       5,
		Depth:        0.5,
		DelaySeconds: 0.03,
		Mix:          0.5,
		Gain:         0.5,
		Shape:        lfo.Sine,
		Taps:         1,
		Voices:       1,
	}
}

// ChorusOption mutates chorus construction parameters.
type ChorusOption func(*sweep) error

// WithChorusMaxDelaySeconds sets the longest swept delay the chorus can reach.
func WithChorusMaxDelaySeconds(seconds float64) ChorusOption {
	return func(s *sweep) error {
		if seconds <= 0 || seconds > maxChorusMaxDelaySeconds || math.IsNaN(seconds) {
			return fmt.Errorf("chorus max delay must be in (0, %f]: %f", maxChorusMaxDelaySeconds, seconds)
		}
		s.maxSeconds = seconds
		return nil
	}
}

// WithChorusChannelPhase offsets the LFO of channel n by n*spread cycles.
func WithChorusChannelPhase(spread float64) ChorusOption {
	return func(s *sweep) error {
		if spread < 0 || spread >= 1 || math.IsNaN(spread) {
			return fmt.Errorf("chorus channel phase must be in [0, 1): %f", spread)
		}
		s.spread = spread
		return nil
	}
}

// WithChorusInterpolation selects the delay-line read kernel. The allpass
// kernel is rejected because voices share one read state per channel.
func WithChorusInterpolation(mode interp.Mode) ChorusOption {
	return func(s *sweep) error {
		if !mode.Valid() || mode == interp.Allpass {
			return fmt.Errorf("chorus interpolation not supported: %v", mode)
		}
		s.mode = mode
		return nil
	}
}

// Chorus is a modulated-delay chorus.
//
// For V voices, voice k reads at base*(k/V)*(1+depth*lfo), is amplitude
// modulated by a*lfo + 1 - a with a = depth*k/V, and is weighted
// (V+1-k)/(V(V+1)/2). The output is dry*(1-mix) + wet*mix, then gain.
// The chorus has no feedback path; its feedback limit is [0, 0].
type Chorus struct {
	sweep
}

// NewChorus creates an unconfigured chorus.
func NewChorus(opts ...ChorusOption) (*Chorus, error) {
	c := &Chorus{sweep: sweep{maxSeconds: defaultChorusMaxDelaySeconds, mode: interp.Hermite}}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&c.sweep); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Configure allocates per-channel delay histories and LFOs.
func (c *Chorus) Configure(cfg core.ProcessorConfig, channels int) error {
	return c.configure("chorus", cfg, channels)
}

// State reports the lifecycle state.
func (c *Chorus) State() effects.State { return c.state }

// Reset clears history and rewinds the LFOs.
func (c *Chorus) Reset() { c.reset() }

// Prepare applies the block's rate and shape to the LFOs. Process calls it;
// callers using ProcessSample call it once per block themselves.
func (c *Chorus) Prepare(p *effects.Params) { c.prepare(p) }

// ProcessSample processes one sample of channel ch, including the gain stage.
func (c *Chorus) ProcessSample(p *effects.Params, ch int, x float64) float64 {
	return c.tickChorus(p, ch, x) * p.Gain
}

// Process runs a planar block in place.
func (c *Chorus) Process(p *effects.Params, block [][]float64) {
	assert.That(c.state == effects.Ready, "chorus: process before configure")

	c.prepare(p)
	for ch, buf := range block {
		for i, x := range buf {
			buf[i] = c.tickChorus(p, ch, x)
		}
		mix.ApplyGain(buf, p.Gain)
	}
}

func (c *Chorus) tickChorus(p *effects.Params, ch int, x float64) float64 {
	voices := core.ClampInt(p.Voices, 1, MaxChorusVoices)
	wet := c.tick(p, ch, x, voices, true)
	return mix.DryWet(x, wet, p.Mix)
}
