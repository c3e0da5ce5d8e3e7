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

const (
	defaultPhaserStages      = 6
	maxPhaserStages          = 12
	phaserNyquistSafetyRatio = 0.49
	// phaserDecadesPerUnit is how far depth*lfo = 1 moves the break frequency.
	phaserDecadesPerUnit = 0.5
)

// PhaserLimits are the accepted parameter ranges of the phaser pedal.
func PhaserLimits() effects.Limits {
	return effects.Limits{
		RateHz:       effects.Range{Min: 0, Max: 25},
		Depth:        effects.Range{Min: 0, Max: 1},
		DelaySeconds: effects.Range{Min: 0, Max: 0},
		Feedback:     effects.Range{Min: -0.99, Max: 0.99},
		Mix:          effects.Range{Min: 0, Max: 1},
		Gain:         effects.Range{Min: 0, Max: 2},
		CentreHz:     effects.Range{Min: 20, Max: 600},
		Taps:         effects.IntRange{Min: 1, Max: 1},
		Voices:       effects.IntRange{Min: 1, Max: 1},
	}
}

// PhaserDefaults returns the phaser pedal's initial parameters.
func PhaserDefaults() effects.Params {
	return effects.Params{
		RateHz:   0.5,
		Depth:    0.5,
		Mix:      0.5,
		Gain:     1,
		CentreHz: 100,
		Shape:    lfo.Sine,
		Taps:     1,
		Voices:   1,
	}
}

// PhaserOption mutates phaser construction parameters.
type PhaserOption func(*phaserConfig) error

type phaserConfig struct {
	stages int
	spread float64
}

// WithPhaserStages sets the number of first-order allpass stages.
func WithPhaserStages(stages int) PhaserOption {
	return func(cfg *phaserConfig) error {
		if stages < 1 || stages > maxPhaserStages {
			return fmt.Errorf("phaser stages must be in [1, %d]: %d", maxPhaserStages, stages)
		}
		cfg.stages = stages
		return nil
	}
}

// WithPhaserChannelPhase offsets the LFO of channel n by n*spread cycles.
func WithPhaserChannelPhase(spread float64) PhaserOption {
	return func(cfg *phaserConfig) error {
		if spread < 0 || spread >= 1 || math.IsNaN(spread) {
			return fmt.Errorf("phaser channel phase must be in [0, 1): %f", spread)
		}
		cfg.spread = spread
		return nil
	}
}

type phaserAllpassStage struct {
	x1 float64
	y1 float64
}

func (s *phaserAllpassStage) reset() {
	s.x1 = 0
	s.y1 = 0
}

func (s *phaserAllpassStage) process(x, a float64) float64 {
	y := a*x + s.x1 - a*s.y1
	s.x1 = x
	s.y1 = y

	return y
}

// phaserChannel is the per-channel state of a Phaser.
type phaserChannel struct {
	osc      *lfo.Oscillator
	stages   []phaserAllpassStage
	feedback float64
}

// Phaser is an allpass-cascade phaser. The common break frequency sweeps
// log-symmetrically around Params.CentreHz:
//
//	f(t) = centre * 10^(0.5*depth*lfo(t))
type Phaser struct {
	cfg        phaserConfig
	channels   []phaserChannel
	sampleRate float64
	state      effects.State
}

// NewPhaser creates an unconfigured phaser.
func NewPhaser(opts ...PhaserOption) (*Phaser, error) {
	cfg := phaserConfig{stages: defaultPhaserStages}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Phaser{cfg: cfg}, nil
}

// Configure allocates per-channel allpass cascades and LFOs.
func (p *Phaser) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}

	chans := make([]phaserChannel, channels)
	for ch := range chans {
		osc, err := lfo.New(cfg.SampleRate, lfo.WithPhase(float64(ch)*p.cfg.spread))
		if err != nil {
			return fmt.Errorf("phaser: %w", err)
		}
		chans[ch] = phaserChannel{osc: osc, stages: make([]phaserAllpassStage, p.cfg.stages)}
	}
	p.channels = chans
	p.sampleRate = cfg.SampleRate
	p.state = effects.Ready
	return nil
}

// Stages returns the number of allpass stages.
func (p *Phaser) Stages() int { return p.cfg.stages }

// State reports the lifecycle state.
func (p *Phaser) State() effects.State { return p.state }

// Reset clears allpass, feedback and modulation state.
func (p *Phaser) Reset() {
	for ch := range p.channels {
		c := &p.channels[ch]
		for i := range c.stages {
			c.stages[i].reset()
		}
		c.feedback = 0
		c.osc.Reset()
	}
}

// Prepare applies the block's rate and shape to the LFOs.
func (p *Phaser) Prepare(params *effects.Params) {
	for ch := range p.channels {
		p.channels[ch].osc.SetFrequency(params.RateHz)
		p.channels[ch].osc.SetShape(params.Shape)
	}
}

// ProcessSample processes one sample of channel ch, including the gain stage.
func (p *Phaser) ProcessSample(params *effects.Params, ch int, x float64) float64 {
	return p.tick(params, ch, x) * params.Gain
}

// Process runs a planar block in place.
func (p *Phaser) Process(params *effects.Params, block [][]float64) {
	assert.That(p.state == effects.Ready, "phaser: process before configure")

	p.Prepare(params)
	for ch, buf := range block {
		for i, x := range buf {
			buf[i] = p.tick(params, ch, x)
		}
		mix.ApplyGain(buf, params.Gain)
	}
}

func (p *Phaser) tick(params *effects.Params, ch int, x float64) float64 {
	c := &p.channels[ch]
	freq := phaserFrequency(params.CentreHz, params.Depth, c.osc.ProcessSample())
	coef := phaserAllpassCoefficient(freq, p.sampleRate)

	y := x + c.feedback*params.Feedback
	for i := range c.stages {
		y = c.stages[i].process(y, coef)
	}
	c.feedback = core.FlushDenormals(y)

	return mix.DryWet(x, y, params.Mix)
}

func phaserFrequency(centreHz, depth, mod float64) float64 {
	return centreHz * math.Pow(10, phaserDecadesPerUnit*depth*mod)
}

func phaserAllpassCoefficient(freqHz, sampleRate float64) float64 {
	maxFreq := phaserNyquistSafetyRatio * sampleRate
	if freqHz < 1 || math.IsNaN(freqHz) {
		freqHz = 1
	} else if freqHz > maxFreq {
		freqHz = maxFreq
	}

	g := math.Tan(math.Pi * freqHz / sampleRate)
	if math.IsInf(g, 0) || math.IsNaN(g) {
		return 0
	}

	return (1 - g) / (1 + g)
}
