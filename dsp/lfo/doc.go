// Package lfo implements the phase-accumulating low-frequency oscillator
// that drives every modulated pedal.
//
// Phase is kept normalised to [0, 1). Each call to [Oscillator.ProcessSample]
// advances it by frequency/sampleRate and returns the waveform value at the
// new phase, so the oscillator must be stepped exactly once per output frame.
package lfo
