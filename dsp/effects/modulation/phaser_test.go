package modulation

import (
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

func newTestPhaser(t *testing.T, sampleRate float64, channels int, opts ...PhaserOption) *Phaser {
	t.Helper()
	p, err := NewPhaser(opts...)
	if err != nil {
		t.Fatalf("NewPhaser() error = %v", err)
	}
	if err := p.Configure(core.ProcessorConfig{SampleRate: sampleRate, BlockSize: 512}, channels); err != nil {
		t.Fatalf("Configure() error = %v", err)
	}
	return p
}

func TestPhaserStagesValidation(t *testing.T) {
	if _, err := NewPhaser(WithPhaserStages(0)); err == nil {
		t.Fatal("expected error for zero stages")
	}
	if _, err := NewPhaser(WithPhaserStages(maxPhaserStages + 1)); err == nil {
		t.Fatal("expected error for too many stages")
	}
	p, err := NewPhaser()
	if err != nil {
		t.Fatal(err)
	}
	if p.Stages() != defaultPhaserStages {
		t.Fatalf("Stages() = %d, want %d", p.Stages(), defaultPhaserStages)
	}
}

func TestPhaserZeroMixIsIdentity(t *testing.T) {
	ph := newTestPhaser(t, 48000, 2)
	params := PhaserDefaults()
	params.Mix = 0
	params.Feedback = 0.7

	in := testutil.DeterministicNoise(12, 1, 2048)
	block := testutil.Planar(in, 2)
	ph.Process(&params, block)

	testutil.RequireSliceNearlyEqual(t, block[0], in, 0)
	testutil.RequireSliceNearlyEqual(t, block[1], in, 0)
}

func TestPhaserPassesDC(t *testing.T) {
	ph := newTestPhaser(t, 48000, 1)
	params := PhaserDefaults()
	params.Depth = 0
	params.Mix = 1

	block := [][]float64{testutil.DC(1, 9600)}
	ph.Process(&params, block)

	if got := block[0][len(block[0])-1]; math.Abs(got-1) > 1e-6 {
		t.Fatalf("settled DC output = %v, want 1", got)
	}
}

func TestPhaserFeedbackStaysBounded(t *testing.T) {
	ph := newTestPhaser(t, 48000, 1, WithPhaserStages(maxPhaserStages))
	params := PhaserDefaults()
	params.Feedback = -0.9
	params.Depth = 1
	params.RateHz = 3

	block := [][]float64{testutil.DeterministicNoise(15, 1, 48000)}
	processInBlocks(ph, &params, block, 512)

	testutil.RequireBounded(t, block[0], 20)
}

func TestPhaserResetRestoresInitialState(t *testing.T) {
	ph := newTestPhaser(t, 48000, 1)
	params := PhaserDefaults()
	params.Feedback = 0.5

	in := testutil.DeterministicNoise(19, 1, 3000)
	first := [][]float64{append([]float64(nil), in...)}
	ph.Process(&params, first)

	ph.Reset()
	second := [][]float64{append([]float64(nil), in...)}
	ph.Process(&params, second)

	testutil.RequireSliceNearlyEqual(t, second[0], first[0], 0)
}

func TestPhaserAllpassCoefficientClamps(t *testing.T) {
	if got := phaserAllpassCoefficient(math.NaN(), 48000); math.IsNaN(got) {
		t.Fatal("NaN frequency produced NaN coefficient")
	}
	hi := phaserAllpassCoefficient(1e9, 48000)
	if math.Abs(hi) >= 1 {
		t.Fatalf("coefficient above Nyquist = %v, want |a| < 1", hi)
	}
}
