package effects

import (
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

func TestGainScalesEveryChannel(t *testing.T) {
	g := NewGain()
	if g.State() != Unconfigured {
		t.Fatalf("State() = %v, want unconfigured", g.State())
	}
	if err := g.Configure(core.ProcessorConfig{SampleRate: 48000, BlockSize: 64}, 0); err == nil {
		t.Fatal("expected error for zero channels")
	}
	if err := g.Configure(core.ProcessorConfig{SampleRate: 48000, BlockSize: 64}, 2); err != nil {
		t.Fatal(err)
	}

	p := GainDefaults()
	in := testutil.DeterministicNoise(3, 1, 64)
	block := testutil.Planar(in, 2)
	g.Process(&p, block)

	want := make([]float64, len(in))
	for i, x := range in {
		want[i] = 0.5 * x
	}
	testutil.RequireSliceNearlyEqual(t, block[0], want, 1e-15)
	testutil.RequireSliceNearlyEqual(t, block[1], want, 1e-15)
}

func TestGainDefaultsWithinLimits(t *testing.T) {
	if err := GainDefaults().Validate(GainLimits()); err != nil {
		t.Fatal(err)
	}
	if got := (Params{Gain: 7}).Clamp(GainLimits()).Gain; got != 3 {
		t.Fatalf("clamped gain = %v, want 3", got)
	}
}
