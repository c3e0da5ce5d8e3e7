// Package envelope measures the amplitude behaviour of pedal output: an
// attack/release envelope follower, RMS and peak levels, windowed peak
// envelopes and the dominant modulation rate of an envelope.
//
// The follower is the envelope pedal's detector; the analysis functions are
// used by the pedalfx tool and by tests that check modulation timing.
package envelope
