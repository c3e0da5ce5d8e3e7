// Package playback monitors a pedal through the system audio device.
package playback

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/cwbudde/algo-pedal/dsp/pedal"
	"github.com/cwbudde/algo-pedal/dsp/signal"
)

// ErrUnavailable is returned when the binary was built without an audio
// back-end.
var ErrUnavailable = errors.New("playback: audio output unavailable")

const bytesPerSample = 4

// Stream is an io.Reader of little-endian float32 frames: input run through
// a configured pedal or board. It allocates nothing after NewStream.
type Stream struct {
	proc   pedal.Unit
	input  [][]float64
	loop   bool
	pos    int
	planar [][]float64
	view   [][]float64
	frames []float32
}

// NewStream pulls from input, optionally looping, through proc. proc must be
// configured for len(input) channels.
func NewStream(proc pedal.Unit, input [][]float64, loop bool) (*Stream, error) {
	channels := proc.Channels()
	if channels == 0 {
		return nil, pedal.ErrNotConfigured
	}
	if len(input) != channels {
		return nil, fmt.Errorf("playback: input has %d channels, processor %d", len(input), channels)
	}
	if len(input[0]) == 0 {
		return nil, errors.New("playback: empty input")
	}

	block := proc.Config().BlockSize
	planar := make([][]float64, channels)
	for ch := range planar {
		planar[ch] = make([]float64, block)
	}
	return &Stream{
		proc:   proc,
		input:  input,
		loop:   loop,
		planar: planar,
		view:   make([][]float64, channels),
		frames: make([]float32, block*channels),
	}, nil
}

// Channels returns the number of interleaved channels per frame.
func (s *Stream) Channels() int { return len(s.input) }

// Read fills p with whole frames. It returns io.EOF once a non-looping input
// is exhausted.
func (s *Stream) Read(p []byte) (int, error) {
	channels := len(s.input)
	length := len(s.input[0])
	if !s.loop && s.pos >= length {
		return 0, io.EOF
	}

	n := min(len(p)/(bytesPerSample*channels), len(s.planar[0]))
	if !s.loop {
		n = min(n, length-s.pos)
	}
	if n == 0 {
		return 0, io.ErrShortBuffer
	}

	for ch, src := range s.input {
		dst := s.planar[ch][:n]
		for i := range dst {
			dst[i] = src[(s.pos+i)%length]
		}
		s.view[ch] = dst
	}
	s.pos += n
	if s.loop {
		s.pos %= length
	}

	frames := s.frames[:n*channels]
	signal.Interleave(frames, s.view)
	if err := s.proc.ProcessInterleaved(frames, frames); err != nil {
		return 0, err
	}

	for i, v := range frames {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(v))
	}
	return len(frames) * bytesPerSample, nil
}
