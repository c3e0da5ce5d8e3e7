package effects

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

func newTestEcho(t *testing.T, sampleRate float64, channels int) *Echo {
	t.Helper()
	e, err := NewEcho()
	if err != nil {
		t.Fatalf("NewEcho() error = %v", err)
	}
	if err := e.Configure(core.ProcessorConfig{SampleRate: sampleRate, BlockSize: 64}, channels); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return e
}

func TestEchoWeightsSumToOne(t *testing.T) {
	for n := 1; n <= MaxEchoTaps; n++ {
		sum := 0.0
		w := EchoWeights(n)
		if len(w) != n {
			t.Fatalf("taps=%d: %d weights", n, len(w))
		}
		for _, v := range w {
			sum += v
		}
		if math.Abs(sum-1) > 1e-12 {
			t.Fatalf("taps=%d: weights sum to %v", n, sum)
		}
	}
	if EchoWeights(5) != nil {
		t.Fatal("EchoWeights(5) should be nil")
	}
}

func TestEchoImpulseResponse(t *testing.T) {
	e := newTestEcho(t, 1000, 1)
	p := Params{DelaySeconds: 0.01, Mix: 1, Gain: 1, Taps: 2}

	block := [][]float64{testutil.Impulse(16, 0)}
	e.Process(&p, block)

	want := make([]float64, 16)
	want[5] = 2.0 / 3
	want[10] = 1.0 / 3
	testutil.RequireSliceNearlyEqual(t, block[0], want, 1e-12)
}

func TestEchoFourTapsSpacing(t *testing.T) {
	e := newTestEcho(t, 1000, 1)
	p := Params{DelaySeconds: 0.02, Mix: 1, Gain: 2, Taps: 4}

	block := [][]float64{testutil.Impulse(24, 0)}
	e.Process(&p, block)

	want := make([]float64, 24)
	want[5], want[10], want[15], want[20] = 0.8, 0.6, 0.4, 0.2
	testutil.RequireSliceNearlyEqual(t, block[0], want, 1e-12)
}

func TestEchoZeroTapsIsIdentity(t *testing.T) {
	e := newTestEcho(t, 48000, 2)
	p := Params{DelaySeconds: 0.1, Feedback: 0.5, Mix: 0.7, Gain: 0.5, Taps: 0}

	in := testutil.DeterministicNoise(3, 1, 1024)
	block := testutil.Planar(in, 2)
	e.Process(&p, block)

	testutil.RequireSliceNearlyEqual(t, block[0], in, 0)
	testutil.RequireSliceNearlyEqual(t, block[1], in, 0)
	if got := e.ProcessSample(&p, 0, 0.25); got != 0.25 {
		t.Fatalf("ProcessSample() = %v, want 0.25", got)
	}
}

func TestEchoFeedbackRepeats(t *testing.T) {
	e := newTestEcho(t, 1000, 1)
	p := Params{DelaySeconds: 0.01, Feedback: 0.5, Mix: 1, Gain: 1, Taps: 1}

	block := [][]float64{testutil.Impulse(40, 0)}
	e.Process(&p, block)

	for _, tc := range []struct {
		n    int
		want float64
	}{{10, 0.5}, {20, 0.25}, {30, 0.125}, {15, 0}} {
		if math.Abs(block[0][tc.n]-tc.want) > 1e-12 {
			t.Fatalf("y[%d] = %v, want %v", tc.n, block[0][tc.n], tc.want)
		}
	}
}

func TestEchoHighFeedbackStaysBounded(t *testing.T) {
	e := newTestEcho(t, 48000, 1)
	p := EchoDefaults()
	p.Feedback = 0.99
	p.Taps = 4
	p.DelaySeconds = 0.05

	in := testutil.DeterministicNoise(11, 1, 48000*2)
	block := [][]float64{in}
	e.Process(&p, block)

	testutil.RequireBounded(t, block[0], 1.5)
}

func TestEchoProcessMatchesSample(t *testing.T) {
	a := newTestEcho(t, 48000, 2)
	b := newTestEcho(t, 48000, 2)
	p := EchoDefaults()
	p.Taps = 3

	in := testutil.DeterministicSine(330, 48000, 0.8, 6000)
	block := testutil.Planar(in, 2)
	a.Process(&p, block)

	for ch := 0; ch < 2; ch++ {
		want := make([]float64, len(in))
		for i, x := range in {
			want[i] = b.ProcessSample(&p, ch, x)
		}
		testutil.RequireSliceNearlyEqual(t, block[ch], want, 1e-12)
	}
}

func TestEchoResetRestoresState(t *testing.T) {
	e := newTestEcho(t, 48000, 1)
	p := EchoDefaults()

	in := testutil.DeterministicNoise(5, 1, 9000)
	first := [][]float64{append([]float64(nil), in...)}
	e.Process(&p, first)

	e.Reset()
	second := [][]float64{append([]float64(nil), in...)}
	e.Process(&p, second)

	testutil.RequireBlocksNearlyEqual(t, first, second, 0)
}

func TestEchoConfigureValidation(t *testing.T) {
	e, err := NewEcho()
	if err != nil {
		t.Fatal(err)
	}
	if e.State() != Unconfigured {
		t.Fatalf("State() = %v, want unconfigured", e.State())
	}
	if err := e.Configure(core.ProcessorConfig{SampleRate: 0, BlockSize: 64}, 1); err == nil {
		t.Fatal("expected sample rate error")
	}
	if err := e.Configure(core.DefaultProcessorConfig(), 0); err == nil {
		t.Fatal("expected channel error")
	}
	if _, err := NewEcho(WithEchoMaxDelaySeconds(-1)); err == nil {
		t.Fatal("expected max delay error")
	}
	if err := e.Configure(core.DefaultProcessorConfig(), 2); err != nil {
		t.Fatal(err)
	}
	if e.State() != Ready {
		t.Fatalf("State() = %v, want ready", e.State())
	}
}
