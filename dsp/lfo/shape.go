package lfo

import (
	"fmt"
	"math"
	"strings"
)

// Shape is the waveform of an Oscillator. The numeric values match the
// waveform parameter of the pedals.
type Shape int

const (
	// PassThrough outputs a constant 0, disabling modulation.
	PassThrough Shape = iota
	// Sine outputs sin(2*pi*phase).
	Sine
	// Saw ramps linearly from -1 to 1 over one cycle.
	Saw
	// Square outputs -1 for the first half of the cycle and +1 for the second.
	Square
)

// At evaluates the shape at a normalised phase in [0, 1).
func (s Shape) At(phase float64) float64 {
	switch s {
	case Sine:
		return math.Sin(2 * math.Pi * phase)
	case Saw:
		return 2*phase - 1
	case Square:
		if phase < 0.5 {
			return -1
		}
		return 1
	default:
		return 0
	}
}

// Valid reports whether s is one of the defined shapes.
func (s Shape) Valid() bool {
	return s >= PassThrough && s <= Square
}

func (s Shape) String() string {
	switch s {
	case PassThrough:
		return "off"
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Square:
		return "square"
	default:
		return fmt.Sprintf("shape(%d)", int(s))
	}
}

// ParseShape maps a shape name to a Shape.
func ParseShape(name string) (Shape, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "off", "none", "pass", "passthrough":
		return PassThrough, nil
	case "sine", "sin":
		return Sine, nil
	case "saw", "sawtooth":
		return Saw, nil
	case "square", "sqr":
		return Square, nil
	default:
		return Sine, fmt.Errorf("lfo: unknown shape %q", name)
	}
}
