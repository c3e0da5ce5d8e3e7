// Package core holds the small shared pieces every pedal processor builds on:
// the processor configuration fixed at Configure time and the numeric
// helpers used at parameter boundaries.
package core
