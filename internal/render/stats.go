package render

import (
	"errors"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/measure/envelope"
)

// envelopeRate is the rate in Hz of the peak envelope used to estimate the
// modulation frequency.
const envelopeRate = 100

// Stats summarises one channel before and after a pedal.
type Stats struct {
	InputRMS   float64
	OutputRMS  float64
	OutputPeak float64
	// GainDB is 20*log10(OutputRMS/InputRMS).
	GainDB float64
	// ModulationHz is the dominant rate of the output's amplitude envelope,
	// or 0 when the envelope is flat or too short.
	ModulationHz float64
}

// Analyze measures in and out, which must be the same channel before and
// after processing.
func Analyze(in, out []float64, sampleRate float64) (Stats, error) {
	s := Stats{
		InputRMS:   envelope.RMS(in),
		OutputRMS:  envelope.RMS(out),
		OutputPeak: envelope.Peak(out),
	}
	if s.InputRMS > 0 && s.OutputRMS > 0 {
		s.GainDB = core.LinearToDB(s.OutputRMS / s.InputRMS)
	}

	window := max(1, int(sampleRate/envelopeRate))
	env := envelope.PeakEnvelope(out, window)
	hz, err := envelope.ModulationRate(env, sampleRate/float64(window))
	switch {
	case err == nil:
		s.ModulationHz = hz
	case errors.Is(err, envelope.ErrTooShort), errors.Is(err, envelope.ErrNoModulation):
	default:
		return s, err
	}
	return s, nil
}
