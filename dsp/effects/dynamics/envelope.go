package dynamics

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/internal/assert"
	"github.com/cwbudde/algo-pedal/measure/envelope"
)

// EnvelopeLimits are the accepted parameter ranges of the envelope pedal.
func EnvelopeLimits() effects.Limits {
	return effects.Limits{
		AttackMs:  effects.Range{Min: 0, Max: 100},
		ReleaseMs: effects.Range{Min: 0, Max: 100},
		Taps:      effects.IntRange{Min: 1, Max: 1},
		Voices:    effects.IntRange{Min: 1, Max: 1},
	}
}

// EnvelopeDefaults returns the envelope pedal's initial parameters.
func EnvelopeDefaults() effects.Params {
	return effects.Params{AttackMs: 50, ReleaseMs: 50, Taps: 1, Voices: 1}
}

// Envelope replaces each channel with its own amplitude envelope.
type Envelope struct {
	dets  []*envelope.Follower
	state effects.State
}

// NewEnvelope creates an unconfigured envelope pedal.
func NewEnvelope() *Envelope {
	return &Envelope{}
}

// Configure allocates one follower per channel.
func (e *Envelope) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}
	dets, err := newDetectors("envelope", cfg.SampleRate, channels)
	if err != nil {
		return err
	}
	e.dets = dets
	e.state = effects.Ready
	return nil
}

// State reports the lifecycle state.
func (e *Envelope) State() effects.State { return e.state }

// Reset clears the followers.
func (e *Envelope) Reset() {
	for _, det := range e.dets {
		det.Reset()
	}
}

// Process runs a planar block in place.
func (e *Envelope) Process(p *effects.Params, block [][]float64) {
	assert.That(e.state == effects.Ready, "envelope: process before configure")

	for ch, buf := range block {
		det := e.dets[ch]
		setTimes(det, p.AttackMs, p.ReleaseMs)
		det.ProcessBlock(buf, buf)
	}
}
