// Package drive holds the memoryless waveshaping pedals: fuzz, saturation
// and the multi-mode distortion.
//
// Every pedal scales the input by Gain, shapes it, and blends the result
// with the dry input by Mix. A shaped sample that is not finite is replaced
// by zero.
package drive
