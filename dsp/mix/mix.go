package mix

import vecmath "github.com/cwbudde/algo-vecmath"

// Polarity selects whether the wet signal is added to or subtracted from the dry signal.
type Polarity int

const (
	// Add yields dry*(1-mix) + wet*mix.
	Add Polarity = iota
	// Subtract yields dry*(1-mix) - wet*mix.
	Subtract
)

// DryWet blends dry and wet: mix=0 is fully dry, mix=1 fully wet.
func DryWet(dry, wet, mix float64) float64 {
	return dry*(1-mix) + wet*mix
}

// DryMinusWet is the subtractive blend used for notch-style flanging.
func DryMinusWet(dry, wet, mix float64) float64 {
	return dry*(1-mix) - wet*mix
}

// Blend dispatches on polarity.
func Blend(p Polarity, dry, wet, mix float64) float64 {
	if p == Subtract {
		return DryMinusWet(dry, wet, mix)
	}
	return DryWet(dry, wet, mix)
}

// DryWetBlock writes dry*(1-mix) + wet*mix into dst. All slices must have
// the same length; dst may alias dry but not wet.
func DryWetBlock(dst, dry, wet []float64, mix float64) {
	switch {
	case mix <= 0:
		copy(dst, dry)
	case mix >= 1:
		copy(dst, wet)
	default:
		vecmath.ScaleBlock(dst, dry, (1-mix)/mix)
		vecmath.AddBlockInPlace(dst, wet)
		vecmath.ScaleBlockInPlace(dst, mix)
	}
}

// ApplyGain scales buf in place. Unity gain is a no-op.
func ApplyGain(buf []float64, gain float64) {
	if gain == 1 {
		return
	}
	vecmath.ScaleBlockInPlace(buf, gain)
}
