// Package effects holds the parameter model shared by every pedal and the
// delay-based pedals that need no LFO.
//
// [Params] is the immutable snapshot a topology reads for one block;
// [Limits] and [Params.Clamp] define what a host may set. Every pedal
// implements [Topology].
//
// Pedals in this package:
//   - Echo: up to four evenly spaced, weighted taps with feedback.
//   - Delay: a single feedback tap at the base delay.
//
// The LFO-driven pedals live in the modulation subpackage.
//
// All topologies allocate only in Configure and process planar blocks in
// place.
package effects
