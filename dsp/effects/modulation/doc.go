// Package modulation provides the LFO-driven pedals.
//
// Included processors:
//   - Tremolo: amplitude modulation from one LFO shared by all channels.
//   - Chorus: modulated delay with optional extra voices and amplitude wobble.
//   - Flanger: short modulated delay with additive, subtractive and
//     through-zero blending.
//   - Phaser: allpass cascade with an LFO-swept break frequency.
//
// Chorus and flanger run on the same modulated-delay kernel and differ only
// in delay range, voice count and blending. Every processor satisfies
// effects.Topology: configure once, then process planar blocks in place
// with one parameter snapshot per block.
package modulation
