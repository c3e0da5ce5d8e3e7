package render

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/pedal"
	"github.com/cwbudde/algo-pedal/internal/testutil"
)

func chorusJob() Job {
	p := modulation.ChorusDefaults()
	p.Voices = 3
	return Job{Effect: "chorus", Params: p, SampleRate: 48000, BlockSize: 256}
}

func TestRenderLeavesInputUntouched(t *testing.T) {
	t.Parallel()

	in := testutil.Planar(testutil.DeterministicNoise(1, 1, 2000), 2)
	orig := testutil.Clone(in)

	out, err := Render(context.Background(), pedal.DefaultRegistry(), chorusJob(), in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	testutil.RequireBlocksNearlyEqual(t, in, orig, 0)
	if d, _ := testutil.MaxAbsDiff(out[0], in[0]); d == 0 {
		t.Fatal("chorus output equals input")
	}
}

func TestParallelMatchesRender(t *testing.T) {
	t.Parallel()

	in := [][]float64{
		testutil.DeterministicNoise(1, 1, 3000),
		testutil.DeterministicSine(220, 48000, 0.5, 3000),
		testutil.DeterministicNoise(2, 0.3, 3000),
	}
	reg := pedal.DefaultRegistry()

	seq, err := Render(context.Background(), reg, chorusJob(), in)
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	par, err := Parallel(context.Background(), reg, chorusJob(), in)
	if err != nil {
		t.Fatalf("Parallel() error = %v", err)
	}
	testutil.RequireBlocksNearlyEqual(t, par, seq, 0)
}

func TestRenderErrors(t *testing.T) {
	t.Parallel()

	reg := pedal.DefaultRegistry()
	in := [][]float64{make([]float64, 10)}

	if _, err := Render(context.Background(), reg, chorusJob(), nil); err == nil {
		t.Fatal("expected error for no channels")
	}

	job := chorusJob()
	job.Effect = "octaver"
	if _, err := Parallel(context.Background(), reg, job, in); !errors.Is(err, pedal.ErrUnknownEffect) {
		t.Fatalf("Parallel() error = %v, want ErrUnknownEffect", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Render(ctx, reg, chorusJob(), in); !errors.Is(err, context.Canceled) {
		t.Fatalf("Render() error = %v, want context.Canceled", err)
	}
}

func TestProcessBoardMatchesRender(t *testing.T) {
	t.Parallel()

	reg := pedal.DefaultRegistry()
	in := testutil.Planar(testutil.DeterministicNoise(6, 0.7, 2500), 2)

	b, err := pedal.NewBoard(reg, "chorus")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Process(context.Background(), b, in); !errors.Is(err, pedal.ErrNotConfigured) {
		t.Fatalf("Process() error = %v, want ErrNotConfigured", err)
	}
	job := chorusJob()
	if err := b.Configure(job.SampleRate, job.BlockSize, 2); err != nil {
		t.Fatal(err)
	}
	b.Stages()[0].SetParams(job.Params)

	got, err := Process(context.Background(), b, in)
	if err != nil {
		t.Fatalf("Process() error = %v", err)
	}
	want, err := Render(context.Background(), reg, job, in)
	if err != nil {
		t.Fatal(err)
	}
	testutil.RequireBlocksNearlyEqual(t, got, want, 0)
}

func TestAnalyzeTremolo(t *testing.T) {
	t.Parallel()

	p := modulation.TremoloDefaults()
	p.RateHz = 4
	p.Depth = 0.6
	job := Job{Effect: "tremolo", Params: p, SampleRate: 48000, BlockSize: 512}

	in := [][]float64{testutil.DeterministicSine(500, 48000, 1, 96000)}
	out, err := Render(context.Background(), pedal.DefaultRegistry(), job, in)
	if err != nil {
		t.Fatal(err)
	}

	s, err := Analyze(in[0], out[0], 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if math.Abs(s.ModulationHz-4) > 0.2 {
		t.Fatalf("ModulationHz = %v, want 4", s.ModulationHz)
	}
	if s.GainDB >= 0 {
		t.Fatalf("GainDB = %v, want attenuation", s.GainDB)
	}
	if s.OutputPeak > 1 {
		t.Fatalf("OutputPeak = %v, want <= 1", s.OutputPeak)
	}
}

func TestAnalyzeSteadySignal(t *testing.T) {
	t.Parallel()

	x := testutil.DC(0.5, 4800)
	s, err := Analyze(x, x, 48000)
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if s.ModulationHz != 0 || s.GainDB != 0 {
		t.Fatalf("Analyze() = %+v, want no modulation and 0 dB", s)
	}
}
