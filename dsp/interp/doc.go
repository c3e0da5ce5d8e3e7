// Package interp provides the fractional-read kernels used by the delay line.
//
// Available methods, from cheapest to highest quality:
//
//   - [Linear2]:   2-point linear interpolation
//   - [Thiran]:    first-order allpass (unity magnitude, phase-only, stateful)
//   - [Hermite4]:  4-point cubic Hermite (default)
//   - [Lagrange4]: 4-point cubic Lagrange
//
// [Mode] selects one of them at construction time of a delay line.
package interp
