package playback

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/pedal"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

func newTestProcessor(t *testing.T, name string, channels int) *pedal.Processor {
	t.Helper()
	p, err := pedal.NewProcessor(pedal.DefaultRegistry(), name)
	if err != nil {
		t.Fatal(err)
	}
	if err := p.Configure(48000, 64, channels); err != nil {
		t.Fatal(err)
	}
	return p
}

func decode(b []byte) []float32 {
	out := make([]float32, len(b)/bytesPerSample)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*bytesPerSample:]))
	}
	return out
}

func TestNewStreamValidation(t *testing.T) {
	p, err := pedal.NewProcessor(pedal.DefaultRegistry(), "tremolo")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewStream(p, [][]float64{{1}}, false); !errors.Is(err, pedal.ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
	p = newTestProcessor(t, "tremolo", 2)
	if _, err := NewStream(p, [][]float64{{1}}, false); err == nil {
		t.Fatal("expected channel mismatch error")
	}
	if _, err := NewStream(p, [][]float64{{}, {}}, false); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestStreamMatchesProcessBlock(t *testing.T) {
	in := testutil.Planar(testutil.DeterministicSine(330, 48000, 0.5, 300), 2)

	s, err := NewStream(newTestProcessor(t, "chorus", 2), in, false)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	got := decode(raw)
	if len(got) != 600 {
		t.Fatalf("read %d samples, want 600", len(got))
	}

	ref := newTestProcessor(t, "chorus", 2)
	want := make([][]float64, 2)
	for ch := range want {
		want[ch] = make([]float64, 300)
		for i, v := range in[ch] {
			want[ch][i] = float64(float32(v))
		}
	}
	if err := ref.ProcessBlock(want); err != nil {
		t.Fatal(err)
	}

	for i := range 300 {
		if got[2*i] != float32(want[0][i]) || got[2*i+1] != float32(want[1][i]) {
			t.Fatalf("frame %d: got [%v %v], want [%v %v]", i, got[2*i], got[2*i+1], want[0][i], want[1][i])
		}
	}
}

func TestStreamLoops(t *testing.T) {
	p := newTestProcessor(t, "tremolo", 1)
	params := p.Params()
	params.Depth = 0
	p.SetParams(params)

	s, err := NewStream(p, [][]float64{{0.25, 0.5, 0.75}}, true)
	if err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 7*bytesPerSample)
	n, err := s.Read(buf)
	if err != nil {
		t.Fatalf("Read() error = %v", err)
	}
	got := decode(buf[:n])
	want := []float32{0.25, 0.5, 0.75, 0.25, 0.5, 0.75, 0.25}
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestStreamShortBuffer(t *testing.T) {
	s, err := NewStream(newTestProcessor(t, "echo", 2), testutil.Planar([]float64{1, 2}, 2), true)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Read(make([]byte, 7)); !errors.Is(err, io.ErrShortBuffer) {
		t.Fatalf("error = %v, want io.ErrShortBuffer", err)
	}
}

func TestStreamThroughBoard(t *testing.T) {
	b, err := pedal.NewBoard(pedal.DefaultRegistry(), "gain", "gain")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := NewStream(b, [][]float64{{1}}, false); !errors.Is(err, pedal.ErrNotConfigured) {
		t.Fatalf("error = %v, want ErrNotConfigured", err)
	}
	if err := b.Configure(48000, 64, 1); err != nil {
		t.Fatal(err)
	}

	s, err := NewStream(b, [][]float64{{0.25, 0.5, 1}}, false)
	if err != nil {
		t.Fatal(err)
	}
	raw, err := io.ReadAll(s)
	if err != nil {
		t.Fatalf("ReadAll() error = %v", err)
	}
	got := decode(raw)
	want := []float32{0.0625, 0.125, 0.25}
	if len(got) != len(want) {
		t.Fatalf("read %d samples, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sample %d = %v, want %v", i, got[i], want[i])
		}
	}
}
