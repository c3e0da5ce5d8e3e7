package interp

// Linear2 interpolates between x0 (t=0) and x1 (t=1).
func Linear2(t, x0, x1 float64) float64 {
	return x0 + t*(x1-x0)
}

// Hermite4 computes cubic 4-point interpolation.
// It interpolates from x0 to x1 using neighbor points xm1 and x2.
func Hermite4(t, xm1, x0, x1, x2 float64) float64 {
	c0 := x0
	c1 := 0.5 * (x1 - xm1)
	c2 := xm1 - 2.5*x0 + 2*x1 - 0.5*x2
	c3 := 0.5*(x2-xm1) + 1.5*(x0-x1)
	return ((c3*t+c2)*t+c1)*t + c0
}

// Lagrange4 evaluates the cubic through (-1,xm1), (0,x0), (1,x1), (2,x2) at t.
func Lagrange4(t, xm1, x0, x1, x2 float64) float64 {
	tp1 := t + 1
	tm1 := t - 1
	tm2 := t - 2

	return -xm1*t*tm1*tm2/6 +
		x0*tp1*tm1*tm2/2 -
		x1*tp1*t*tm2/2 +
		x2*tp1*t*tm1/6
}

// thiranSplitThreshold keeps the allpass coefficient away from -1 by moving
// fractions below it into the next integer delay.
const thiranSplitThreshold = 0.618

// Thiran is a first-order allpass fractional delay. It only keeps the
// previous output, so one instance must serve a single continuous read
// position.
type Thiran struct {
	prev float64
}

// Split breaks a non-negative delay into the integer read position and the
// fractional part the allpass realises. Fractions below 0.618 are shifted up
// by one sample when an earlier integer position exists.
func Split(delay float64) (int, float64) {
	whole := int(delay)
	frac := delay - float64(whole)
	if frac != 0 && frac < thiranSplitThreshold && whole >= 1 {
		frac++
		whole--
	}
	return whole, frac
}

// AllpassCoefficient returns the Thiran coefficient for a fractional delay.
func AllpassCoefficient(frac float64) float64 {
	return (1 - frac) / (1 + frac)
}

// Tick returns the allpass output for the newer sample x0 and the older
// sample x1 at fractional delay frac. A zero fraction returns x0 exactly.
func (a *Thiran) Tick(frac, x0, x1 float64) float64 {
	if frac == 0 {
		a.prev = x0
		return x0
	}
	y := x1 + AllpassCoefficient(frac)*(x0-a.prev)
	a.prev = y
	return y
}

// Reset clears the filter memory.
func (a *Thiran) Reset() {
	a.prev = 0
}
