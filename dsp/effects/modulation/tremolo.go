package modulation

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// TremoloLimits are the accepted parameter ranges of the tremolo pedal.
func TremoloLimits() effects.Limits {
	return effects.Limits{
		RateHz:       effects.Range{Min: 0, Max: 20},
		Depth:        effects.Range{Min: 0, Max: 1},
		DelaySeconds: effects.Range{Min: 0, Max: 0},
		Feedback:     effects.Range{Min: 0, Max: 0},
		Mix:          effects.Range{Min: 1, Max: 1},
		Gain:         effects.Range{Min: 0, Max: 2},
		Taps:         effects.IntRange{Min: 1, Max: 1},
		Voices:       effects.IntRange{Min: 1, Max: 1},
	}
}

// TremoloDefaults returns the tremolo pedal's initial parameters.
func TremoloDefaults() effects.Params {
	return effects.Params{
		RateHz: 2,
		Depth:  0.2,
		Mix:    1,
		Gain:   1,
		Shape:  lfo.Sine,
		Taps:   1,
		Voices: 1,
	}
}

// TremoloOption mutates tremolo construction parameters.
type TremoloOption func(*tremoloConfig) error

type tremoloConfig struct {
	spread float64
}

// WithTremoloChannelPhase gives channel n its own LFO offset by n*spread
// cycles. Zero, the default, drives every channel from one shared LFO.
func WithTremoloChannelPhase(spread float64) TremoloOption {
	return func(cfg *tremoloConfig) error {
		if spread < 0 || spread >= 1 || math.IsNaN(spread) {
			return fmt.Errorf("tremolo channel phase must be in [0, 1): %f", spread)
		}
		cfg.spread = spread
		return nil
	}
}

// Tremolo multiplies the input by depth*u + (1-depth), then gain, where
// u = (lfo+1)/2 maps the LFO onto [0, 1]. Full depth therefore nulls the
// signal at the LFO minimum. The pass-through shape behaves as depth 0.
// With a shared LFO the block is walked frame by frame so the oscillator
// advances once per frame regardless of channel count.
type Tremolo struct {
	cfg   tremoloConfig
	oscs  []*lfo.Oscillator
	state effects.State
}

// NewTremolo creates an unconfigured tremolo.
func NewTremolo(opts ...TremoloOption) (*Tremolo, error) {
	cfg := tremoloConfig{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Tremolo{cfg: cfg}, nil
}

// Configure allocates the oscillators.
func (t *Tremolo) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}

	n := channels
	if t.shared() {
		n = 1
	}
	oscs := make([]*lfo.Oscillator, n)
	for ch := range oscs {
		osc, err := lfo.New(cfg.SampleRate, lfo.WithPhase(float64(ch)*t.cfg.spread))
		if err != nil {
			return fmt.Errorf("tremolo: %w", err)
		}
		oscs[ch] = osc
	}
	t.oscs = oscs
	t.state = effects.Ready
	return nil
}

func (t *Tremolo) shared() bool { return t.cfg.spread == 0 }

// State reports the lifecycle state.
func (t *Tremolo) State() effects.State { return t.state }

// Reset rewinds the LFOs.
func (t *Tremolo) Reset() {
	for _, osc := range t.oscs {
		osc.Reset()
	}
}

// Prepare applies the block's rate and shape to the LFOs.
func (t *Tremolo) Prepare(p *effects.Params) {
	for _, osc := range t.oscs {
		osc.SetFrequency(p.RateHz)
		osc.SetShape(p.Shape)
	}
}

// ProcessFrame processes one sample of every channel in place, including
// the gain stage.
func (t *Tremolo) ProcessFrame(p *effects.Params, frame []float64) {
	depth := effectiveDepth(p)
	if t.shared() {
		g := tremoloGain(depth, t.oscs[0].ProcessSample())
		for ch := range frame {
			frame[ch] = frame[ch] * g * p.Gain
		}
		return
	}
	for ch := range frame {
		frame[ch] = frame[ch] * tremoloGain(depth, t.oscs[ch].ProcessSample()) * p.Gain
	}
}

// Process runs a planar block in place.
func (t *Tremolo) Process(p *effects.Params, block [][]float64) {
	assert.That(t.state == effects.Ready, "tremolo: process before configure")

	if len(block) == 0 {
		return
	}
	t.Prepare(p)
	depth := effectiveDepth(p)

	if t.shared() {
		osc := t.oscs[0]
		for i := range block[0] {
			g := tremoloGain(depth, osc.ProcessSample())
			for _, buf := range block {
				buf[i] *= g
			}
		}
	} else {
		for ch, buf := range block {
			osc := t.oscs[ch]
			for i := range buf {
				buf[i] *= tremoloGain(depth, osc.ProcessSample())
			}
		}
	}

	for _, buf := range block {
		mix.ApplyGain(buf, p.Gain)
	}
}

func effectiveDepth(p *effects.Params) float64 {
	if p.Shape == lfo.PassThrough {
		return 0
	}
	return p.Depth
}

func tremoloGain(depth, mod float64) float64 {
	return depth*0.5*(mod+1) + 1 - depth
}
