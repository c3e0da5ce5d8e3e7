package interp

import (
	"fmt"
	"strings"
)

// Mode selects the fractional-read algorithm of a delay line.
type Mode int

const (
	// Hermite is 4-point cubic Hermite interpolation.
	Hermite Mode = iota
	// Linear is 2-point linear interpolation.
	Linear
	// Lagrange3 is 4-point third-order Lagrange interpolation.
	Lagrange3
	// Allpass is first-order Thiran allpass interpolation.
	Allpass
)

// String returns the lowercase mode name.
func (m Mode) String() string {
	switch m {
	case Hermite:
		return "hermite"
	case Linear:
		return "linear"
	case Lagrange3:
		return "lagrange"
	case Allpass:
		return "allpass"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Headroom is the number of samples past the integer read position the
// kernel touches.
func (m Mode) Headroom() int {
	switch m {
	case Linear, Allpass:
		return 1
	default:
		return 2
	}
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m >= Hermite && m <= Allpass
}

// ParseMode maps a mode name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "hermite", "cubic":
		return Hermite, nil
	case "linear":
		return Linear, nil
	case "lagrange", "lagrange3":
		return Lagrange3, nil
	case "allpass", "thiran":
		return Allpass, nil
	default:
		return Hermite, fmt.Errorf("interp: unknown mode %q", name)
	}
}
