// Package delay provides the multi-channel circular delay line shared by the
// delay-based pedals.
//
// A [Line] is configured once with a channel count and a maximum delay in
// samples. Afterwards [Line.Push] and [Line.Pop] never allocate, so they are
// safe to call from the audio thread. Offsets are measured backwards from the
// most recently pushed sample: Pop(ch, 0) returns that sample, Pop(ch, 1) the
// one before it, and fractional offsets are interpolated with the kernel
// selected by [WithMode].
package delay
