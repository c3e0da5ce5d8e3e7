package delay

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/interp"
	"github.com/cwbudde/algo-pedal/internal/assert"
)

// UseBaseDelay passed to [Line.Pop] reads at the offset stored with
// [Line.SetBaseDelay].
const UseBaseDelay = -1.0

// ErrInvalidCapacity is returned for non-positive channel counts or delays.
var ErrInvalidCapacity = errors.New("delay: invalid capacity")

// Option configures a Line.
type Option func(*Line)

// WithMode selects the fractional-read kernel. Invalid modes are ignored.
func WithMode(mode interp.Mode) Option {
	return func(d *Line) {
		if mode.Valid() {
			d.mode = mode
		}
	}
}

// Line is a circular multi-channel delay line with fractional reads.
// Every channel has its own history and write position.
type Line struct {
	buffers   [][]float64
	writePos  []int
	thiran    []interp.Thiran
	maxDelay  int
	baseDelay float64
	mode      interp.Mode
}

// New returns a line holding maxDelaySamples of history per channel.
func New(channels, maxDelaySamples int, opts ...Option) (*Line, error) {
	d := &Line{mode: interp.Hermite}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	if err := d.Configure(channels, maxDelaySamples); err != nil {
		return nil, err
	}
	return d, nil
}

// Configure (re)allocates the line. History is cleared. It must not be
// called concurrently with Push or Pop.
func (d *Line) Configure(channels, maxDelaySamples int) error {
	if channels <= 0 {
		return fmt.Errorf("%w: channels must be > 0: %d", ErrInvalidCapacity, channels)
	}
	if maxDelaySamples <= 0 {
		return fmt.Errorf("%w: delay size must be > 0: %d", ErrInvalidCapacity, maxDelaySamples)
	}

	// One slot for the current sample plus the kernel's older neighbours.
	size := maxDelaySamples + 1 + d.mode.Headroom()
	d.buffers = make([][]float64, channels)
	for ch := range d.buffers {
		d.buffers[ch] = make([]float64, size)
	}
	d.writePos = make([]int, channels)
	d.thiran = make([]interp.Thiran, channels)
	d.maxDelay = maxDelaySamples
	d.baseDelay = math.Min(d.baseDelay, float64(maxDelaySamples))
	return nil
}

// Channels returns the number of independent histories.
func (d *Line) Channels() int {
	return len(d.buffers)
}

// MaxDelay returns the largest offset Pop honours; larger offsets are clamped.
func (d *Line) MaxDelay() int {
	return d.maxDelay
}

// Mode returns the interpolation kernel.
func (d *Line) Mode() interp.Mode {
	return d.mode
}

// SetBaseDelay stores the offset used when Pop is called with UseBaseDelay.
// Negative values are treated as zero and values above MaxDelay are clamped.
func (d *Line) SetBaseDelay(samples float64) {
	switch {
	case !(samples > 0):
		d.baseDelay = 0
	case samples > float64(d.maxDelay):
		d.baseDelay = float64(d.maxDelay)
	default:
		d.baseDelay = samples
	}
}

// BaseDelay returns the stored base offset in samples.
func (d *Line) BaseDelay() float64 {
	return d.baseDelay
}

// Push appends x to the history of channel ch.
func (d *Line) Push(ch int, x float64) {
	assert.Thatf(ch < len(d.buffers), "delay: push to channel %d of %d", ch, len(d.buffers))

	buf := d.buffers[ch]
	pos := d.writePos[ch] + 1
	if pos == len(buf) {
		pos = 0
	}
	buf[pos] = x
	d.writePos[ch] = pos
}

// InjectFeedback adds x to the most recently pushed sample of channel ch.
func (d *Line) InjectFeedback(ch int, x float64) {
	d.buffers[ch][d.writePos[ch]] += x
}

// Read returns the sample pushed offset steps before the most recent one.
// The offset is clamped to the stored history.
func (d *Line) Read(ch, offset int) float64 {
	buf := d.buffers[ch]
	if offset < 0 {
		offset = 0
	} else if offset >= len(buf) {
		offset = len(buf) - 1
	}
	idx := d.writePos[ch] - offset
	if idx < 0 {
		idx += len(buf)
	}
	return buf[idx]
}

// Pop reads channel ch at a fractional offset without consuming anything.
// Offsets above MaxDelay are clamped. UseBaseDelay selects the stored base
// offset. Any other negative or NaN offset panics.
func (d *Line) Pop(ch int, offset float64) float64 {
	if offset == UseBaseDelay {
		offset = d.baseDelay
	}
	if !(offset >= 0) {
		panic(fmt.Sprintf("delay: invalid offset %v", offset))
	}
	if offset > float64(d.maxDelay) {
		offset = float64(d.maxDelay)
	}

	if d.mode == interp.Allpass {
		whole, frac := interp.Split(offset)
		return d.thiran[ch].Tick(frac, d.Read(ch, whole), d.Read(ch, whole+1))
	}

	whole := int(offset)
	frac := offset - float64(whole)
	x0 := d.Read(ch, whole)
	if frac == 0 {
		return x0
	}
	x1 := d.Read(ch, whole+1)

	switch d.mode {
	case interp.Linear:
		return interp.Linear2(frac, x0, x1)
	case interp.Lagrange3:
		return interp.Lagrange4(frac, d.Read(ch, whole-1), x0, x1, d.Read(ch, whole+2))
	default:
		return interp.Hermite4(frac, d.Read(ch, whole-1), x0, x1, d.Read(ch, whole+2))
	}
}

// Reset clears every channel's history and interpolator state. The base
// offset is kept.
func (d *Line) Reset() {
	for ch, buf := range d.buffers {
		clear(buf)
		d.writePos[ch] = 0
		d.thiran[ch].Reset()
	}
}
