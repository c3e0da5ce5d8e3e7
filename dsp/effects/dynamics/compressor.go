package dynamics

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/internal/assert"
	"github.com/cwbudde/algo-pedal/measure/envelope"
)

// The modulated threshold sweeps this range in dB.
const (
	modThresholdMinDB = -50.0
	modThresholdMaxDB = 5.0
)

// CompressorLimits are the accepted parameter ranges of the compressor pedal.
func CompressorLimits() effects.Limits {
	return effects.Limits{
		RateHz:      effects.Range{Min: 1, Max: 20},
		Gain:        effects.Range{Min: 0, Max: 2},
		ThresholdDB: effects.Range{Min: -50, Max: 10},
		Ratio:       effects.Range{Min: 1, Max: 20},
		AttackMs:    effects.Range{Min: 0, Max: 200},
		ReleaseMs:   effects.Range{Min: 0, Max: 400},
		Taps:        effects.IntRange{Min: 1, Max: 1},
		Voices:      effects.IntRange{Min: 1, Max: 1},
	}
}

// CompressorDefaults returns the compressor pedal's initial parameters.
// Threshold modulation is off.
func CompressorDefaults() effects.Params {
	return effects.Params{
		RateHz:      2,
		Gain:        1,
		ThresholdDB: -20,
		Ratio:       3,
		AttackMs:    10,
		ReleaseMs:   100,
		Shape:       lfo.PassThrough,
		Taps:        1,
		Voices:      1,
	}
}

// Compressor is a hard-knee peak compressor. Each channel has its own
// detector; above the threshold the gain is (env/thr)^(1/ratio - 1).
//
// With a non-flat Shape the threshold is not ThresholdDB but follows the
// LFO from -50 dB at its minimum to +5 dB at its maximum.
type Compressor struct {
	dets  []*envelope.Follower
	oscs  []*lfo.Oscillator
	state effects.State
}

// NewCompressor creates an unconfigured compressor.
func NewCompressor() *Compressor {
	return &Compressor{}
}

// Configure allocates the detectors and LFOs.
func (c *Compressor) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}
	dets, err := newDetectors("compressor", cfg.SampleRate, channels)
	if err != nil {
		return err
	}
	oscs := make([]*lfo.Oscillator, channels)
	for ch := range oscs {
		osc, err := lfo.New(cfg.SampleRate)
		if err != nil {
			return fmt.Errorf("compressor: %w", err)
		}
		oscs[ch] = osc
	}
	c.dets = dets
	c.oscs = oscs
	c.state = effects.Ready
	return nil
}

// State reports the lifecycle state.
func (c *Compressor) State() effects.State { return c.state }

// Reset clears the detectors and rewinds the LFOs.
func (c *Compressor) Reset() {
	for _, det := range c.dets {
		det.Reset()
	}
	for _, osc := range c.oscs {
		osc.Reset()
	}
}

// Prepare applies the block's ballistics and LFO settings.
func (c *Compressor) Prepare(p *effects.Params) {
	for _, det := range c.dets {
		setTimes(det, p.AttackMs, p.ReleaseMs)
	}
	for _, osc := range c.oscs {
		osc.SetFrequency(p.RateHz)
		osc.SetShape(p.Shape)
	}
}

// Process runs a planar block in place.
func (c *Compressor) Process(p *effects.Params, block [][]float64) {
	assert.That(c.state == effects.Ready, "compressor: process before configure")

	c.Prepare(p)
	modulated := p.Shape != lfo.PassThrough
	slope := 1/p.Ratio - 1
	thr := mix.DBToGain(p.ThresholdDB)

	for ch, buf := range block {
		det, osc := c.dets[ch], c.oscs[ch]
		for i, x := range buf {
			mod := osc.ProcessSample()
			if modulated {
				thr = mix.DBToGain(modulatedThreshold(mod))
			}
			buf[i] = x * staticGain(det.ProcessSample(x), thr, slope)
		}
		mix.ApplyGain(buf, p.Gain)
	}
}

// modulatedThreshold maps an LFO value in [-1, 1] onto the swept range.
func modulatedThreshold(mod float64) float64 {
	return modThresholdMinDB + (mod+1)*0.5*(modThresholdMaxDB-modThresholdMinDB)
}

// staticGain is the hard-knee gain computer evaluated in the log2 domain.
// slope is 1/ratio - 1.
func staticGain(env, thr, slope float64) float64 {
	if env <= thr || slope == 0 {
		return 1
	}
	return mathPower2(mathLog2(env/thr) * slope)
}
