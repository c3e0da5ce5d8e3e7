package effects

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/interp"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

const (
	defaultDelayMaxDelaySeconds = 1.0
	maxDelayMaxDelaySeconds     = 10.0
)

// DelayLimits are the accepted parameter ranges of the delay pedal.
func DelayLimits() Limits {
	return Limits{
		DelaySeconds: Range{Min: 0.001, Max: 1},
		Feedback:     Range{Min: 0, Max: 0.99},
		Mix:          Range{Min: 0, Max: 1},
		Gain:         Range{Min: 0, Max: 1},
		Taps:         IntRange{Min: 1, Max: 1},
		Voices:       IntRange{Min: 1, Max: 1},
	}
}

// DelayDefaults returns the delay pedal's initial parameters.
func DelayDefaults() Params {
	return Params{
		DelaySeconds: 0.1,
		Mix:          0.5,
		Gain:         0.5,
		Taps:         1,
		Voices:       1,
	}
}

// DelayOption mutates delay construction parameters.
type DelayOption func(*delayConfig) error

type delayConfig struct {
	maxDelaySeconds float64
	mode            interp.Mode
}

// WithDelayMaxDelaySeconds sets the longest delay the pedal can reach.
func WithDelayMaxDelaySeconds(seconds float64) DelayOption {
	return func(cfg *delayConfig) error {
		if seconds <= 0 || seconds > maxDelayMaxDelaySeconds || math.IsNaN(seconds) {
			return fmt.Errorf("delay max delay must be in (0, %f]: %f", maxDelayMaxDelaySeconds, seconds)
		}
		cfg.maxDelaySeconds = seconds
		return nil
	}
}

// WithDelayInterpolation selects the delay-line read kernel.
func WithDelayInterpolation(mode interp.Mode) DelayOption {
	return func(cfg *delayConfig) error {
		if !mode.Valid() {
			return fmt.Errorf("delay interpolation invalid: %v", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// Delay is a single-tap feedback delay. The tap position is latched once per
// block as the line's base delay.
type Delay struct {
	cfg        delayConfig
	line       *delay.Line
	sampleRate float64
	state      State
}

// NewDelay creates an unconfigured delay.
func NewDelay(opts ...DelayOption) (*Delay, error) {
	cfg := delayConfig{maxDelaySeconds: defaultDelayMaxDelaySeconds, mode: interp.Hermite}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Delay{cfg: cfg}, nil
}

// Configure allocates the delay history.
func (d *Delay) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := ValidateLayout(cfg, channels); err != nil {
		return err
	}
	line, err := delay.New(channels, cfg.Samples(d.cfg.maxDelaySeconds), delay.WithMode(d.cfg.mode))
	if err != nil {
		return fmt.Errorf("delay: %w", err)
	}
	d.line = line
	d.sampleRate = cfg.SampleRate
	d.state = Ready
	return nil
}

// State reports the lifecycle state.
func (d *Delay) State() State { return d.state }

// Reset clears the delay history.
func (d *Delay) Reset() {
	if d.line != nil {
		d.line.Reset()
	}
}

// Prepare latches the block's delay time. Process calls it; callers using
// ProcessSample call it once per block themselves.
func (d *Delay) Prepare(p *Params) {
	d.line.SetBaseDelay(p.DelaySeconds * d.sampleRate)
}

// ProcessSample processes one sample of channel ch at the latched delay.
func (d *Delay) ProcessSample(p *Params, ch int, x float64) float64 {
	return d.tick(p, ch, x) * p.Gain
}

// Process runs a planar block in place.
func (d *Delay) Process(p *Params, block [][]float64) {
	assert.That(d.state == Ready, "delay: process before configure")

	d.Prepare(p)
	for ch, buf := range block {
		for i, x := range buf {
			buf[i] = d.tick(p, ch, x)
		}
		mix.ApplyGain(buf, p.Gain)
	}
}

func (d *Delay) tick(p *Params, ch int, x float64) float64 {
	d.line.Push(ch, x*(1-p.Feedback))
	wet := d.line.Pop(ch, delay.UseBaseDelay)
	d.line.InjectFeedback(ch, core.FlushDenormals(wet*p.Feedback))
	return mix.DryWet(x, wet, p.Mix)
}
