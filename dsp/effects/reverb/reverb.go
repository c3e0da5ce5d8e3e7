// Package reverb provides a Freeverb-style room reverb pedal.
package reverb

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

const (
	inputGain = 0.015
	scaleWet  = 3.0
	scaleDry  = 2.0
	scaleDamp = 0.4
	scaleRoom = 0.28
	roomBase  = 0.7
)

// Limits are the accepted parameter ranges of the reverb pedal.
func Limits() effects.Limits {
	return effects.Limits{
		Mix:      effects.Range{Min: 0, Max: 1},
		Dry:      effects.Range{Min: 0, Max: 1},
		RoomSize: effects.Range{Min: 0, Max: 1},
		Damping:  effects.Range{Min: 0, Max: 1},
		Width:    effects.Range{Min: 0, Max: 1},
		Freeze:   effects.Range{Min: 0, Max: 1},
		Taps:     effects.IntRange{Min: 1, Max: 1},
		Voices:   effects.IntRange{Min: 1, Max: 1},
	}
}

// Defaults returns the reverb pedal's initial parameters.
func Defaults() effects.Params {
	return effects.Params{
		Mix:      0.5,
		Dry:      0.5,
		RoomSize: 0.5,
		Damping:  0.5,
		Width:    0.5,
		Taps:     1,
		Voices:   1,
	}
}

// Reverb runs eight damped combs into four allpasses per channel. Mix is
// the wet level and Dry the dry level; they are independent, not a
// crossfade. Channels are paired left/right: both tanks of a pair hear the
// summed input, the right tank is slightly longer, and Width sets how much
// each output takes from its own tank. An unpaired last channel runs mono.
//
// Freeze above 0.5 mutes the input and makes the combs lossless, holding
// the current tail.
type Reverb struct {
	tanks []tank
	state effects.State
}

// New creates an unconfigured reverb.
func New() *Reverb {
	return &Reverb{}
}

// Configure allocates one tank per channel, scaled to the sample rate.
func (r *Reverb) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}
	tanks := make([]tank, channels)
	for ch := range tanks {
		tanks[ch] = newTank(cfg.SampleRate, (ch%2)*stereoSpread)
	}
	r.tanks = tanks
	r.state = effects.Ready
	return nil
}

// State reports the lifecycle state.
func (r *Reverb) State() effects.State { return r.state }

// Reset clears every comb and allpass.
func (r *Reverb) Reset() {
	for ch := range r.tanks {
		r.tanks[ch].reset()
	}
}

// Process runs a planar block in place.
func (r *Reverb) Process(p *effects.Params, block [][]float64) {
	assert.That(r.state == effects.Ready, "reverb: process before configure")

	gain, feedback, damp := inputGain, p.RoomSize*scaleRoom+roomBase, p.Damping*scaleDamp
	if p.Freeze > 0.5 {
		gain, feedback, damp = 0, 1, 0
	}
	wet := p.Mix * scaleWet
	dry := p.Dry * scaleDry
	wet1 := 0.5 * wet * (1 + p.Width)
	wet2 := 0.5 * wet * (1 - p.Width)

	ch := 0
	for ; ch+1 < len(block); ch += 2 {
		left, right := block[ch], block[ch+1]
		lt, rt := &r.tanks[ch], &r.tanks[ch+1]
		for i := range left {
			l, rr := left[i], right[i]
			in := (l + rr) * gain
			outL := lt.process(in, feedback, damp)
			outR := rt.process(in, feedback, damp)
			left[i] = outL*wet1 + outR*wet2 + l*dry
			right[i] = outR*wet1 + outL*wet2 + rr*dry
		}
	}
	if ch < len(block) {
		t := &r.tanks[ch]
		buf := block[ch]
		for i, x := range buf {
			buf[i] = t.process(x*gain, feedback, damp)*wet1 + x*dry
		}
	}
}
