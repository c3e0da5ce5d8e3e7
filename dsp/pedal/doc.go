// Package pedal is the host-facing side of the effect topologies.
//
// A [Registry] maps pedal names to constructors, parameter limits and
// defaults. A [Processor] owns one configured topology and is the only place
// parameters cross from the control thread into the audio thread: SetParams
// clamps a snapshot and publishes it atomically, and each ProcessBlock reads
// exactly one snapshot for the whole block.
package pedal
