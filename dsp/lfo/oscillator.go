package lfo

import (
	"fmt"
	"math"
)

// Option configures an Oscillator at construction.
type Option func(*Oscillator) error

// WithFrequency sets the initial frequency in Hz.
func WithFrequency(hz float64) Option {
	return func(o *Oscillator) error {
		if hz < 0 || math.IsNaN(hz) || math.IsInf(hz, 0) {
			return fmt.Errorf("lfo frequency must be >= 0 and finite: %f", hz)
		}
		o.freq = hz
		return nil
	}
}

// WithShape sets the waveform.
func WithShape(shape Shape) Option {
	return func(o *Oscillator) error {
		if !shape.Valid() {
			return fmt.Errorf("lfo shape invalid: %d", int(shape))
		}
		o.shape = shape
		return nil
	}
}

// WithPhase sets the phase Reset returns to. It is wrapped into [0, 1).
func WithPhase(phase float64) Option {
	return func(o *Oscillator) error {
		if math.IsNaN(phase) || math.IsInf(phase, 0) {
			return fmt.Errorf("lfo phase must be finite: %f", phase)
		}
		o.start = phase - math.Floor(phase)
		return nil
	}
}

// Oscillator is a phase-accumulating LFO.
type Oscillator struct {
	sampleRate float64
	freq       float64
	inc        float64
	phase      float64
	start      float64
	shape      Shape
}

// New creates a sine oscillator at 1 Hz unless options say otherwise.
func New(sampleRate float64, opts ...Option) (*Oscillator, error) {
	o := &Oscillator{freq: 1, shape: Sine}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	if err := o.SetSampleRate(sampleRate); err != nil {
		return nil, err
	}
	o.phase = o.start
	return o, nil
}

// SetSampleRate changes the sample rate and recomputes the phase increment.
func (o *Oscillator) SetSampleRate(sampleRate float64) error {
	if sampleRate <= 0 || math.IsNaN(sampleRate) || math.IsInf(sampleRate, 0) {
		return fmt.Errorf("lfo sample rate must be > 0: %f", sampleRate)
	}
	o.sampleRate = sampleRate
	o.SetFrequency(o.freq)
	return nil
}

// SetFrequency updates the rate. It takes effect on the next ProcessSample.
// Values are clamped to [0, sampleRate/2]; NaN selects 0.
func (o *Oscillator) SetFrequency(hz float64) {
	nyquist := o.sampleRate / 2
	switch {
	case !(hz > 0):
		hz = 0
	case hz > nyquist:
		hz = nyquist
	}
	o.freq = hz
	if o.sampleRate > 0 {
		o.inc = hz / o.sampleRate
	}
}

// SetShape switches waveform without touching phase. Invalid shapes are ignored.
func (o *Oscillator) SetShape(shape Shape) {
	if shape.Valid() {
		o.shape = shape
	}
}

// Frequency returns the current rate in Hz.
func (o *Oscillator) Frequency() float64 { return o.freq }

// Shape returns the current waveform.
func (o *Oscillator) Shape() Shape { return o.shape }

// Phase returns the normalised phase in [0, 1).
func (o *Oscillator) Phase() float64 { return o.phase }

// SampleRate returns the configured sample rate.
func (o *Oscillator) SampleRate() float64 { return o.sampleRate }

// ProcessSample advances one sample and returns the value at the new phase.
func (o *Oscillator) ProcessSample() float64 {
	o.phase += o.inc
	if o.phase >= 1 {
		o.phase--
	}
	return o.shape.At(o.phase)
}

// ProcessBlock fills dst with consecutive ProcessSample values.
func (o *Oscillator) ProcessBlock(dst []float64) {
	for i := range dst {
		dst[i] = o.ProcessSample()
	}
}

// Reset returns the phase to its start value.
func (o *Oscillator) Reset() {
	o.phase = o.start
}
