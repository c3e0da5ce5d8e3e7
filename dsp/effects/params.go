package effects

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
)

// Mode selects a pedal variant. The named values are the flanger blends;
// other pedals define their own numbered variants, with 0 always meaning
// bypass.
type Mode int

const (
	// ModePassThrough outputs the input unchanged.
	ModePassThrough Mode = iota
	// ModeAdditive adds the wet tap to the dry signal.
	ModeAdditive
	// ModeSubtractive subtracts the wet tap from the dry signal.
	ModeSubtractive
	// ModeThroughZero reads both taps from the delay line and subtracts them.
	ModeThroughZero
)

func (m Mode) String() string {
	switch m {
	case ModePassThrough:
		return "off"
	case ModeAdditive:
		return "additive"
	case ModeSubtractive:
		return "subtractive"
	case ModeThroughZero:
		return "through-zero"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode maps a flanger mode name or a variant number to a Mode.
func ParseMode(name string) (Mode, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "off", "pass", "passthrough":
		return ModePassThrough, nil
	case "additive", "add", "":
		return ModeAdditive, nil
	case "subtractive", "sub":
		return ModeSubtractive, nil
	case "through-zero", "throughzero", "tz":
		return ModeThroughZero, nil
	}
	if n, err := strconv.Atoi(name); err == nil && n >= 0 {
		return Mode(n), nil
	}
	return ModeAdditive, fmt.Errorf("effects: unknown mode %q", name)
}

// Params is the immutable parameter snapshot a topology reads for one block.
// Fields a topology does not use are ignored; their limits are [0, 0].
type Params struct {
	RateHz       float64
	Depth        float64
	DelaySeconds float64
	Feedback     float64
	Mix          float64
	Gain         float64
	CentreHz     float64

	// Drive is the shaper control: the fuzz clip knob, the saturation
	// arctangent factor, or the outer distortion threshold knob.
	Drive float64
	// Curve is the cubic saturation coefficient or the inner distortion
	// threshold knob.
	Curve float64
	// Bits is the bit-crusher resolution.
	Bits float64
	// DropPercent is the chance in percent that a sample is zeroed.
	DropPercent float64

	ThresholdDB float64
	Ratio       float64
	AttackMs    float64
	ReleaseMs   float64

	RoomSize float64
	Damping  float64
	Width    float64
	Dry      float64
	Freeze   float64

	Shape  lfo.Shape
	Mode   Mode
	Taps   int
	Voices int
}

// Range is an inclusive float parameter range.
type Range struct {
	Min, Max float64
}

// Clamp limits v to r. NaN maps to r.Min.
func (r Range) Clamp(v float64) float64 {
	return core.Clamp(v, r.Min, r.Max)
}

// Contains reports whether v lies within r.
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// IntRange is an inclusive integer parameter range.
type IntRange struct {
	Min, Max int
}

// Clamp limits v to r.
func (r IntRange) Clamp(v int) int {
	return core.ClampInt(v, r.Min, r.Max)
}

// Contains reports whether v lies within r.
func (r IntRange) Contains(v int) bool {
	return v >= r.Min && v <= r.Max
}

// Limits are the accepted ranges of every parameter of one pedal.
type Limits struct {
	RateHz       Range
	Depth        Range
	DelaySeconds Range
	Feedback     Range
	Mix          Range
	Gain         Range
	CentreHz     Range
	Drive        Range
	Curve        Range
	Bits         Range
	DropPercent  Range
	ThresholdDB  Range
	Ratio        Range
	AttackMs     Range
	ReleaseMs    Range
	RoomSize     Range
	Damping      Range
	Width        Range
	Dry          Range
	Freeze       Range
	Mode         IntRange
	Taps         IntRange
	Voices       IntRange
}

var shapeRange = IntRange{Min: int(lfo.PassThrough), Max: int(lfo.Square)}

type floatField struct {
	name string
	v    *float64
	r    Range
}

func (p *Params) floatFields(l *Limits) []floatField {
	return []floatField{
		{"rate", &p.RateHz, l.RateHz},
		{"depth", &p.Depth, l.Depth},
		{"delay", &p.DelaySeconds, l.DelaySeconds},
		{"feedback", &p.Feedback, l.Feedback},
		{"mix", &p.Mix, l.Mix},
		{"gain", &p.Gain, l.Gain},
		{"centre", &p.CentreHz, l.CentreHz},
		{"drive", &p.Drive, l.Drive},
		{"curve", &p.Curve, l.Curve},
		{"bits", &p.Bits, l.Bits},
		{"drop", &p.DropPercent, l.DropPercent},
		{"threshold", &p.ThresholdDB, l.ThresholdDB},
		{"ratio", &p.Ratio, l.Ratio},
		{"attack", &p.AttackMs, l.AttackMs},
		{"release", &p.ReleaseMs, l.ReleaseMs},
		{"size", &p.RoomSize, l.RoomSize},
		{"damping", &p.Damping, l.Damping},
		{"width", &p.Width, l.Width},
		{"dry", &p.Dry, l.Dry},
		{"freeze", &p.Freeze, l.Freeze},
	}
}

// Clamp returns p with every field forced into l.
func (p Params) Clamp(l Limits) Params {
	for _, f := range p.floatFields(&l) {
		*f.v = f.r.Clamp(*f.v)
	}
	p.Shape = lfo.Shape(shapeRange.Clamp(int(p.Shape)))
	p.Mode = Mode(l.Mode.Clamp(int(p.Mode)))
	p.Taps = l.Taps.Clamp(p.Taps)
	p.Voices = l.Voices.Clamp(p.Voices)
	return p
}

// Validate reports the first field of p outside l.
func (p Params) Validate(l Limits) error {
	for _, f := range p.floatFields(&l) {
		if !f.r.Contains(*f.v) {
			return fmt.Errorf("effects %s must be in [%g, %g]: %f", f.name, f.r.Min, f.r.Max, *f.v)
		}
	}
	if !l.Mode.Contains(int(p.Mode)) {
		return fmt.Errorf("effects mode must be in [%d, %d]: %d", l.Mode.Min, l.Mode.Max, int(p.Mode))
	}
	if !l.Taps.Contains(p.Taps) {
		return fmt.Errorf("effects taps must be in [%d, %d]: %d", l.Taps.Min, l.Taps.Max, p.Taps)
	}
	if !l.Voices.Contains(p.Voices) {
		return fmt.Errorf("effects voices must be in [%d, %d]: %d", l.Voices.Min, l.Voices.Max, p.Voices)
	}
	if !p.Shape.Valid() {
		return fmt.Errorf("effects shape invalid: %d", int(p.Shape))
	}
	return nil
}
