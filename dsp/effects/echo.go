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
	defaultEchoMaxDelaySeconds = 1.0
	maxEchoMaxDelaySeconds     = 10.0

	// MaxEchoTaps is the largest supported tap count.
	MaxEchoTaps = 4
)

// echoWeights[n] are the tap weights for n taps, nearest tap first. Each row sums to 1.
var echoWeights = [MaxEchoTaps + 1][]float64{
	nil,
	{1},
	{2.0 / 3, 1.0 / 3},
	{1.0 / 2, 1.0 / 3, 1.0 / 6},
	{0.4, 0.3, 0.2, 0.1},
}

// EchoWeights returns a copy of the tap weights used for n taps.
func EchoWeights(n int) []float64 {
	if n < 0 || n > MaxEchoTaps {
		return nil
	}
	return append([]float64(nil), echoWeights[n]...)
}

// EchoLimits are the accepted parameter ranges of the echo pedal.
func EchoLimits() Limits {
	return Limits{
		DelaySeconds: Range{Min: 0.001, Max: 1},
		Feedback:     Range{Min: 0, Max: 0.99},
		Mix:          Range{Min: 0, Max: 1},
		Gain:         Range{Min: 0, Max: 2},
		Taps:         IntRange{Min: 0, Max: MaxEchoTaps},
		Voices:       IntRange{Min: 1, Max: 1},
	}
}

// EchoDefaults returns the echo pedal's initial parameters.
func EchoDefaults() Params {
	return Params{
		DelaySeconds: 0.1,
		Feedback:     0.2,
		Mix:          0.3,
		Gain:         1,
		Taps:         2,
		Voices:       1,
	}
}

// EchoOption mutates echo construction parameters.
type EchoOption func(*echoConfig) error

type echoConfig struct {
	maxDelaySeconds float64
	mode            interp.Mode
}

// WithEchoMaxDelaySeconds sets the longest delay the echo can reach.
func WithEchoMaxDelaySeconds(seconds float64) EchoOption {
	return func(cfg *echoConfig) error {
		if seconds <= 0 || seconds > maxEchoMaxDelaySeconds || math.IsNaN(seconds) {
			return fmt.Errorf("echo max delay must be in (0, %f]: %f", maxEchoMaxDelaySeconds, seconds)
		}
		cfg.maxDelaySeconds = seconds
		return nil
	}
}

// WithEchoInterpolation selects the delay-line read kernel. The allpass
// kernel is rejected because taps share one read state per channel.
func WithEchoInterpolation(mode interp.Mode) EchoOption {
	return func(cfg *echoConfig) error {
		if !mode.Valid() || mode == interp.Allpass {
			return fmt.Errorf("echo interpolation not supported: %v", mode)
		}
		cfg.mode = mode
		return nil
	}
}

// Echo is a multi-tap feedback delay. With n taps, tap k (1-based) reads at
// delay*k/n and taps are blended with fixed weights that decay with distance.
type Echo struct {
	cfg        echoConfig
	line       *delay.Line
	sampleRate float64
	state      State
}

// NewEcho creates an unconfigured echo.
func NewEcho(opts ...EchoOption) (*Echo, error) {
	cfg := echoConfig{maxDelaySeconds: defaultEchoMaxDelaySeconds, mode: interp.Hermite}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Echo{cfg: cfg}, nil
}

// Configure allocates one second of history per channel (or the configured maximum).
func (e *Echo) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := ValidateLayout(cfg, channels); err != nil {
		return err
	}
	line, err := delay.New(channels, cfg.Samples(e.cfg.maxDelaySeconds), delay.WithMode(e.cfg.mode))
	if err != nil {
		return fmt.Errorf("echo: %w", err)
	}
	e.line = line
	e.sampleRate = cfg.SampleRate
	e.state = Ready
	return nil
}

// State reports the lifecycle state.
func (e *Echo) State() State { return e.state }

// Reset clears the echo history.
func (e *Echo) Reset() {
	if e.line != nil {
		e.line.Reset()
	}
}

// ProcessSample processes one sample of channel ch, including the gain stage.
func (e *Echo) ProcessSample(p *Params, ch int, x float64) float64 {
	y, bypass := e.tick(p, ch, x)
	if bypass {
		return y
	}
	return y * p.Gain
}

// Process runs a planar block in place.
func (e *Echo) Process(p *Params, block [][]float64) {
	assert.That(e.state == Ready, "echo: process before configure")

	for ch, buf := range block {
		bypass := false
		for i, x := range buf {
			buf[i], bypass = e.tick(p, ch, x)
		}
		if !bypass {
			mix.ApplyGain(buf, p.Gain)
		}
	}
}

// tick runs the echo without the gain stage. Zero taps bypass: the input is
// returned unchanged while the line keeps recording it.
func (e *Echo) tick(p *Params, ch int, x float64) (float64, bool) {
	taps := p.Taps
	if taps <= 0 {
		e.line.Push(ch, x)
		return x, true
	}
	if taps > MaxEchoTaps {
		taps = MaxEchoTaps
	}

	spacing := p.DelaySeconds * e.sampleRate / float64(taps)
	if !(spacing > 0) {
		spacing = 0
	}

	e.line.Push(ch, x*(1-p.Feedback))
	var wet float64
	for k, w := range echoWeights[taps] {
		wet += w * e.line.Pop(ch, spacing*float64(k+1))
	}
	e.line.InjectFeedback(ch, core.FlushDenormals(wet*p.Feedback))

	return mix.DryWet(x, wet, p.Mix), false
}
