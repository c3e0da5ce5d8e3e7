package drive

import (
	"math"
	"math/rand/v2"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// Distortion variants selected by Params.Mode. Mode 0 bypasses the pedal.
const (
	DistortionPlateau effects.Mode = 1
	DistortionCrush   effects.Mode = 2
	DistortionDropout effects.Mode = 3
	DistortionFold    effects.Mode = 4
)

const (
	// distortionLevel is the threshold level at knob position 1.
	distortionLevel = 0.05

	defaultDistortionSeed = 0x5eed
)

// DistortionLimits are the accepted parameter ranges of the distortion pedal.
func DistortionLimits() effects.Limits {
	return effects.Limits{
		Mix:         effects.Range{Min: 0, Max: 1},
		Gain:        effects.Range{Min: 0, Max: 3},
		Drive:       effects.Range{Min: 0.5, Max: 9},
		Curve:       effects.Range{Min: 0.5, Max: 9},
		Bits:        effects.Range{Min: 1, Max: 128},
		DropPercent: effects.Range{Min: 0, Max: 10},
		Mode:        effects.IntRange{Min: 0, Max: int(DistortionFold)},
		Taps:        effects.IntRange{Min: 1, Max: 1},
		Voices:      effects.IntRange{Min: 1, Max: 1},
	}
}

// DistortionDefaults returns the distortion pedal's initial parameters.
func DistortionDefaults() effects.Params {
	return effects.Params{
		Mix:         1,
		Gain:        1,
		Drive:       0.5,
		Curve:       0.5,
		Bits:        4,
		DropPercent: 0.5,
		Mode:        DistortionCrush,
		Taps:        1,
		Voices:      1,
	}
}

// DistortionOption mutates distortion construction parameters.
type DistortionOption func(*Distortion) error

// WithDistortionSeed seeds the dropout generator. Reset restarts the
// sequence from this seed.
func WithDistortionSeed(seed uint64) DistortionOption {
	return func(d *Distortion) error {
		d.seed = seed
		return nil
	}
}

// Distortion is a multi-mode shaper. Drive and Curve are threshold knobs
// giving levels 0.05/knob; lo and hi below are the smaller and larger of
// the two. With y = x*gain:
//
//	plateau: |y| in (lo, hi] is held at ±lo and the rest shifted by hi-lo
//	crush:   gain * ceil(q*x)/q with q = 2^(bits-1)
//	dropout: 0 with probability drop/100, else y
//	fold:    |y| above t = 0.05/drive is reflected back about ±t
type Distortion struct {
	stage
	seed uint64
	pcg  *rand.PCG
	rng  *rand.Rand
}

// NewDistortion creates an unconfigured distortion.
func NewDistortion(opts ...DistortionOption) (*Distortion, error) {
	d := &Distortion{seed: defaultDistortionSeed}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(d); err != nil {
			return nil, err
		}
	}
	d.pcg = rand.NewPCG(d.seed, d.seed)
	d.rng = rand.New(d.pcg)
	return d, nil
}

// Configure allocates the wet buffers and reseeds the dropout generator.
func (d *Distortion) Configure(cfg core.ProcessorConfig, channels int) error {
	if err := d.configure(cfg, channels); err != nil {
		return err
	}
	d.Reset()
	return nil
}

// State reports the lifecycle state.
func (d *Distortion) State() effects.State { return d.state }

// Reset reseeds the dropout generator.
func (d *Distortion) Reset() {
	d.pcg.Seed(d.seed, d.seed)
}

// Process runs a planar block in place.
func (d *Distortion) Process(p *effects.Params, block [][]float64) {
	assert.That(d.state == effects.Ready, "distortion: process before configure")

	if p.Mode == effects.ModePassThrough {
		return
	}
	d.run(p, block, d)
}

func (d *Distortion) shape(p *effects.Params, x float64) float64 {
	y := x * p.Gain
	switch p.Mode {
	case DistortionPlateau:
		lo, hi := distortionLevel/p.Drive, distortionLevel/p.Curve
		if lo > hi {
			lo, hi = hi, lo
		}
		return plateau(y, lo, hi)
	case DistortionCrush:
		q := math.Exp2(math.Floor(p.Bits) - 1)
		return p.Gain * math.Ceil(q*x) / q
	case DistortionDropout:
		if d.rng.Float64()*100 < p.DropPercent {
			return 0
		}
		return y
	case DistortionFold:
		return fold(y, distortionLevel/p.Drive)
	default:
		return x
	}
}

func plateau(y, lo, hi float64) float64 {
	switch {
	case y > hi:
		return y - (hi - lo)
	case y > lo:
		return lo
	case y <= -hi:
		return y + (hi - lo)
	case y <= -lo:
		return -lo
	default:
		return y
	}
}

func fold(y, t float64) float64 {
	switch {
	case y > t:
		return 2*t - y
	case y < -t:
		return -2*t - y
	default:
		return y
	}
}
