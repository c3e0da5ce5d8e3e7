package modulation

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/delay"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/interp"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
)

// sweep is the modulated delay behind chorus and flanger. Each channel owns
// an LFO and a delay history; the read offset follows
//
//	d(t) = base * (1 + depth*lfo(t))
//
// scaled by k/V for voice k of V.
type sweep struct {
	line       *delay.Line
	oscs       []*lfo.Oscillator
	sampleRate float64

	maxSeconds float64
	spread     float64
	mode       interp.Mode
	state      effects.State
}

func (s *sweep) configure(name string, cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}

	line, err := delay.New(channels, cfg.Samples(s.maxSeconds), delay.WithMode(s.mode))
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}

	oscs := make([]*lfo.Oscillator, channels)
	for ch := range oscs {
		osc, err := lfo.New(cfg.SampleRate, lfo.WithPhase(float64(ch)*s.spread))
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		oscs[ch] = osc
	}

	s.line = line
	s.oscs = oscs
	s.sampleRate = cfg.SampleRate
	s.state = effects.Ready
	return nil
}

func (s *sweep) prepare(p *effects.Params) {
	for _, osc := range s.oscs {
		osc.SetFrequency(p.RateHz)
		osc.SetShape(p.Shape)
	}
}

func (s *sweep) reset() {
	if s.line != nil {
		s.line.Reset()
	}
	for _, osc := range s.oscs {
		osc.Reset()
	}
}

// tick advances channel ch by one sample and returns the weighted wet
// signal. wobble enables the per-voice amplitude modulation of the chorus.
func (s *sweep) tick(p *effects.Params, ch int, x float64, voices int, wobble bool) float64 {
	mod := s.oscs[ch].ProcessSample()
	depth := p.Depth
	if p.Shape == lfo.PassThrough {
		depth = 0
	}
	base := p.DelaySeconds * s.sampleRate
	swing := 1 + depth*mod

	s.line.Push(ch, x*(1-p.Feedback))

	var wet float64
	for k := 1; k <= voices; k++ {
		share := float64(k) / float64(voices)
		offset := base * share * swing
		if !(offset > 0) {
			offset = 0
		}
		tap := s.line.Pop(ch, offset)
		if wobble {
			a := depth * share
			tap *= a*mod + 1 - a
		}
		wet += voiceWeight(voices, k) * tap
	}

	s.line.InjectFeedback(ch, core.FlushDenormals(wet*p.Feedback))
	return wet
}

// voiceWeight is (V+1-k) / (1+2+...+V): nearer voices are louder and the
// weights of V voices sum to 1.
func voiceWeight(voices, k int) float64 {
	return 2 * float64(voices+1-k) / float64(voices*(voices+1))
}
