package signal

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	vecmath "github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

// Tone names a test signal the Generator can produce.
type Tone int

const (
	// ToneSine is a pure sine.
	ToneSine Tone = iota
	// ToneNoise is uniform white noise.
	ToneNoise
	// TonePluck is a sawtooth with an exponential decay every half second,
	// a rough stand-in for picked guitar notes.
	TonePluck
)

func (t Tone) String() string {
	switch t {
	case ToneSine:
		return "sine"
	case ToneNoise:
		return "noise"
	case TonePluck:
		return "pluck"
	default:
		return fmt.Sprintf("tone(%d)", int(t))
	}
}

// ParseTone maps a tone name to a Tone.
func ParseTone(name string) (Tone, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "sine", "":
		return ToneSine, nil
	case "noise", "white":
		return ToneNoise, nil
	case "pluck":
		return TonePluck, nil
	default:
		return ToneSine, fmt.Errorf("signal: unknown tone %q", name)
	}
}

const (
	pluckPeriodSeconds = 0.5
	pluckDecayPerSec   = 6.0
)

// Generator creates deterministic test signals at one sample rate.
type Generator struct {
	cfg  core.ProcessorConfig
	seed int64
}

// Option configures a Generator.
type Option func(*Generator)

// WithSeed sets the noise seed.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.seed = seed
	}
}

// NewGenerator creates a generator. The sample rate comes from the
// processor options; the default is 48 kHz.
func NewGenerator(coreOpts []core.ProcessorOption, opts ...Option) *Generator {
	g := &Generator{
		cfg:  core.ApplyProcessorOptions(coreOpts...),
		seed: 1,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}
	return g
}

// SampleRate returns the generator's sample rate.
func (g *Generator) SampleRate() float64 {
	return g.cfg.SampleRate
}

// Tone renders the named tone. freqHz is ignored for noise.
func (g *Generator) Tone(t Tone, freqHz, amplitude float64, samples int) ([]float64, error) {
	switch t {
	case ToneSine:
		return g.Sine(freqHz, amplitude, samples)
	case ToneNoise:
		return g.WhiteNoise(amplitude, samples)
	case TonePluck:
		return g.Pluck(freqHz, amplitude, samples)
	default:
		return nil, fmt.Errorf("signal: unknown tone %v", t)
	}
}

// Sine generates a sine starting at phase 0.
func (g *Generator) Sine(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check("sine", freqHz, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	step := 2 * math.Pi * freqHz / g.cfg.SampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out, nil
}

// WhiteNoise generates deterministic white noise in [-amplitude, amplitude].
func (g *Generator) WhiteNoise(amplitude float64, samples int) ([]float64, error) {
	if samples <= 0 {
		return nil, fmt.Errorf("noise samples must be > 0: %d", samples)
	}
	if amplitude < 0 {
		return nil, fmt.Errorf("noise amplitude must be >= 0: %f", amplitude)
	}
	out := make([]float64, samples)
	rng := rand.New(rand.NewSource(g.seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out, nil
}

// Pluck generates a decaying sawtooth re-triggered every half second.
func (g *Generator) Pluck(freqHz, amplitude float64, samples int) ([]float64, error) {
	if err := g.check("pluck", freqHz, samples); err != nil {
		return nil, err
	}
	out := make([]float64, samples)
	inc := freqHz / g.cfg.SampleRate
	period := max(1, int(pluckPeriodSeconds*g.cfg.SampleRate))
	decay := math.Exp(-pluckDecayPerSec / g.cfg.SampleRate)

	phase, env := 0.0, 1.0
	for i := range out {
		if i%period == 0 {
			phase, env = 0, 1
		}
		out[i] = amplitude * env * (2*phase - 1)
		phase += inc
		phase -= math.Floor(phase)
		env *= decay
	}
	return out, nil
}

func (g *Generator) check(name string, freqHz float64, samples int) error {
	if samples <= 0 {
		return fmt.Errorf("%s samples must be > 0: %d", name, samples)
	}
	if g.cfg.SampleRate <= 0 {
		return fmt.Errorf("%s sample rate must be > 0: %f", name, g.cfg.SampleRate)
	}
	if freqHz < 0 || freqHz > g.cfg.SampleRate/2 || math.IsNaN(freqHz) {
		return fmt.Errorf("%s frequency must be in [0, %g]: %f", name, g.cfg.SampleRate/2, freqHz)
	}
	return nil
}

// Normalize scales data to the target peak and returns a new slice.
func Normalize(data []float64, targetPeak float64) ([]float64, error) {
	if targetPeak < 0 {
		return nil, fmt.Errorf("normalize target peak must be >= 0: %f", targetPeak)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("normalize input must not be empty")
	}

	out := make([]float64, len(data))
	peak := vecmath.MaxAbs(data)
	if peak == 0 || targetPeak == 0 {
		return out, nil
	}
	vecmath.ScaleBlock(out, data, targetPeak/peak)
	return out, nil
}
