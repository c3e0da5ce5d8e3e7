package pedal

import (
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/drive"
	"github.com/cwbudde/algo-pedal/dsp/effects/dynamics"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/effects/reverb"
)

// DefaultRegistry returns a Registry holding every built-in pedal.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.MustRegister(Entry{
		Name:        "tremolo",
		Description: "amplitude modulation by an LFO mapped onto [1-depth, 1]",
		New: func() (effects.Topology, error) {
			fx, err := modulation.NewTremolo()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   modulation.TremoloLimits(),
		Defaults: modulation.TremoloDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "chorus",
		Description: "LFO-swept delay voices blended with the dry signal",
		New: func() (effects.Topology, error) {
			fx, err := modulation.NewChorus()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   modulation.ChorusLimits(),
		Defaults: modulation.ChorusDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "flanger",
		Description: "short swept delay with feedback; additive, subtractive or through-zero",
		New: func() (effects.Topology, error) {
			fx, err := modulation.NewFlanger()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   modulation.FlangerLimits(),
		Defaults: modulation.FlangerDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "phaser",
		Description: "swept allpass cascade with feedback",
		New: func() (effects.Topology, error) {
			fx, err := modulation.NewPhaser()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   modulation.PhaserLimits(),
		Defaults: modulation.PhaserDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "echo",
		Description: "up to four evenly spaced taps with feedback",
		New: func() (effects.Topology, error) {
			fx, err := effects.NewEcho()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   effects.EchoLimits(),
		Defaults: effects.EchoDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "delay",
		Description: "single-tap feedback delay",
		New: func() (effects.Topology, error) {
			fx, err := effects.NewDelay()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   effects.DelayLimits(),
		Defaults: effects.DelayDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "gain",
		Description: "constant gain stage",
		New: func() (effects.Topology, error) {
			return effects.NewGain(), nil
		},
		Limits:   effects.GainLimits(),
		Defaults: effects.GainDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "fuzz",
		Description: "hard clipper with a drive-controlled clip level",
		New: func() (effects.Topology, error) {
			return drive.NewFuzz(), nil
		},
		Limits:   drive.FuzzLimits(),
		Defaults: drive.FuzzDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "saturation",
		Description: "arctangent or cubic soft clipper",
		New: func() (effects.Topology, error) {
			return drive.NewSaturation(), nil
		},
		Limits:   drive.SaturationLimits(),
		Defaults: drive.SaturationDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "distortion",
		Description: "plateau, bit-crush, dropout or wavefold shaper",
		New: func() (effects.Topology, error) {
			fx, err := drive.NewDistortion()
			if err != nil {
				return nil, err
			}

			return fx, nil
		},
		Limits:   drive.DistortionLimits(),
		Defaults: drive.DistortionDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "compressor",
		Description: "hard-knee compressor with an optional LFO-swept threshold",
		New: func() (effects.Topology, error) {
			return dynamics.NewCompressor(), nil
		},
		Limits:   dynamics.CompressorLimits(),
		Defaults: dynamics.CompressorDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "envelope",
		Description: "outputs the attack/release envelope of the input",
		New: func() (effects.Topology, error) {
			return dynamics.NewEnvelope(), nil
		},
		Limits:   dynamics.EnvelopeLimits(),
		Defaults: dynamics.EnvelopeDefaults(),
	})
	r.MustRegister(Entry{
		Name:        "reverb",
		Description: "Freeverb-style room with width and freeze",
		New: func() (effects.Topology, error) {
			return reverb.New(), nil
		},
		Limits:   reverb.Limits(),
		Defaults: reverb.Defaults(),
	})

	return r
}
