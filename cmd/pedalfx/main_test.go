package main

import (
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"flag"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/dsp/pedal"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseFlagsDefaults(t *testing.T) {
	cfg, err := parseFlags(nil, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	if cfg.effect != "chorus" || cfg.channels != 2 || cfg.sampleRate != 48000 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}

	p, err := cfg.params(modulation.ChorusDefaults())
	if err != nil {
		t.Fatal(err)
	}
	if p != modulation.ChorusDefaults() {
		t.Fatalf("params() changed defaults: %+v", p)
	}
}

func TestParseFlagsOverlay(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-effect", "flanger", "-rate", "3", "-depth", "0.25", "-feedback", "0.5",
		"-shape", "square", "-mode", "through-zero", "-voices", "4",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	p, err := cfg.params(modulation.FlangerDefaults())
	if err != nil {
		t.Fatal(err)
	}
	want := modulation.FlangerDefaults()
	want.RateHz, want.Depth, want.Feedback = 3, 0.25, 0.5
	want.Shape, want.Mode, want.Voices = lfo.Square, effects.ModeThroughZero, 4
	if p != want {
		t.Fatalf("params() = %+v, want %+v", p, want)
	}
}

func TestParseFlagsChain(t *testing.T) {
	cfg, err := parseFlags([]string{"-effect", " saturation, reverb ,"}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}
	got := cfg.chain()
	if len(got) != 2 || got[0] != "saturation" || got[1] != "reverb" {
		t.Fatalf("chain() = %q, want [saturation reverb]", got)
	}
}

func TestParseFlagsPedalOverlay(t *testing.T) {
	cfg, err := parseFlags([]string{
		"-drive", "3", "-curve", "0.2", "-bits", "4", "-drop", "1",
		"-threshold", "-30", "-ratio", "4", "-attack", "5", "-release", "50",
		"-size", "0.8", "-damping", "0.1", "-width", "0.7", "-dry", "0.4", "-freeze", "1",
		"-gain-db", "-6", "-mode", "3",
	}, io.Discard)
	if err != nil {
		t.Fatalf("parseFlags() error = %v", err)
	}

	p, err := cfg.params(effects.Params{Gain: 1})
	if err != nil {
		t.Fatal(err)
	}
	want := effects.Params{
		Drive: 3, Curve: 0.2, Bits: 4, DropPercent: 1,
		ThresholdDB: -30, Ratio: 4, AttackMs: 5, ReleaseMs: 50,
		RoomSize: 0.8, Damping: 0.1, Width: 0.7, Dry: 0.4, Freeze: 1,
		Gain: mix.DBToGain(-6), Mode: 3,
	}
	if p != want {
		t.Fatalf("params() = %+v, want %+v", p, want)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	cases := [][]string{
		{"-channels", "0"},
		{"-seconds", "0"},
		{"-block", "0"},
		{"-play", "-out", "x.f32"},
		{"-effect", "gain,reverb", "-parallel"},
		{"-effect", " , "},
		{"-gain", "1", "-gain-db", "-6"},
		{"stray"},
		{"-nope"},
	}
	for _, args := range cases {
		if _, err := parseFlags(args, io.Discard); err == nil {
			t.Fatalf("parseFlags(%v) succeeded, want error", args)
		}
	}
	if _, err := parseFlags([]string{"-h"}, io.Discard); !errors.Is(err, flag.ErrHelp) {
		t.Fatalf("parseFlags(-h) error = %v, want flag.ErrHelp", err)
	}

	cfg, err := parseFlags([]string{"-shape", "triangle"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := cfg.params(modulation.ChorusDefaults()); err == nil {
		t.Fatal("expected error for unknown shape")
	}
}

func TestRunList(t *testing.T) {
	cfg, err := parseFlags([]string{"-list"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out, discardLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	for _, name := range pedal.DefaultRegistry().Names() {
		if !strings.Contains(out.String(), name) {
			t.Fatalf("list output missing %q:\n%s", name, out.String())
		}
	}
}

func TestRunUnknownEffect(t *testing.T) {
	cfg, err := parseFlags([]string{"-effect", "wah"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, io.Discard, discardLogger()); !errors.Is(err, pedal.ErrUnknownEffect) {
		t.Fatalf("run() error = %v, want ErrUnknownEffect", err)
	}
}

func TestRunChainMatchesCombinedGain(t *testing.T) {
	dir := t.TempDir()
	runTo := func(name string, args ...string) []byte {
		t.Helper()
		path := filepath.Join(dir, name)
		args = append(args, "-tone", "noise", "-seconds", "0.05", "-channels", "2", "-out", path)
		cfg, err := parseFlags(args, io.Discard)
		if err != nil {
			t.Fatal(err)
		}
		if err := run(context.Background(), cfg, io.Discard, discardLogger()); err != nil {
			t.Fatalf("run(%v) error = %v", args, err)
		}
		raw, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		return raw
	}

	chained := runTo("chain.f32", "-effect", "gain,gain", "-gain", "0.5")
	single := runTo("single.f32", "-effect", "gain", "-gain", "0.25")
	if !bytes.Equal(chained, single) {
		t.Fatal("gain,gain at 0.5 differs from gain at 0.25")
	}
}

func TestRunChainUnknownStage(t *testing.T) {
	cfg, err := parseFlags([]string{"-effect", "saturation,wah"}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if err := run(context.Background(), cfg, io.Discard, discardLogger()); !errors.Is(err, pedal.ErrUnknownEffect) {
		t.Fatalf("run() error = %v, want ErrUnknownEffect", err)
	}
}

func TestRunStatsAndRawOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tremolo.f32")
	cfg, err := parseFlags([]string{
		"-effect", "tremolo", "-rate", "4", "-depth", "0.5", "-seconds", "1",
		"-channels", "2", "-parallel", "-stats", "-out", path,
	}, io.Discard)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	if err := run(context.Background(), cfg, &out, discardLogger()); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 3 || !strings.Contains(lines[0], "Modulation [Hz]") {
		t.Fatalf("unexpected stats output:\n%s", out.String())
	}
	if fields := strings.Fields(lines[1]); fields[len(fields)-1] == "-" {
		t.Fatalf("no modulation found in tremolo output:\n%s", out.String())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(raw) != 2*48000*4 {
		t.Fatalf("raw output is %d bytes, want %d", len(raw), 2*48000*4)
	}
	for i := 0; i < len(raw); i += 8 {
		l := math.Float32frombits(binary.LittleEndian.Uint32(raw[i:]))
		r := math.Float32frombits(binary.LittleEndian.Uint32(raw[i+4:]))
		if l != r {
			t.Fatalf("frame %d: channels differ (%v, %v)", i/8, l, r)
		}
	}
}
