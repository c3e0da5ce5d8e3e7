package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
	"github.com/cwbudde/algo-pedal/dsp/mix"
	"github.com/cwbudde/algo-pedal/dsp/signal"
)

type config struct {
	list     bool
	effect   string
	verbose  bool
	stats    bool
	parallel bool
	play     bool
	loop     bool
	out      string

	tone       string
	toneHz     float64
	amplitude  float64
	seconds    float64
	channels   int
	sampleRate float64
	blockSize  int
	seed       int64

	// Pedal parameters. NaN and empty strings keep the pedal's defaults.
	rate     float64
	depth    float64
	delay    float64
	feedback float64
	mix      float64
	gain     float64
	gainDB   float64
	centre   float64
	taps     int
	voices   int
	shape    string
	mode     string

	drive     float64
	curve     float64
	bits      float64
	drop      float64
	threshold float64
	ratio     float64
	attack    float64
	release   float64
	size      float64
	damping   float64
	width     float64
	dry       float64
	freeze    float64
}

func parseFlags(args []string, stderr io.Writer) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("pedalfx", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.BoolVar(&cfg.list, "list", false, "list available pedals and their parameter ranges")
	fs.StringVar(&cfg.effect, "effect", "chorus", "pedal to run, or a comma-separated chain run in series")
	fs.BoolVar(&cfg.verbose, "v", false, "debug logging")
	fs.BoolVar(&cfg.stats, "stats", false, "print per-channel level and modulation statistics")
	fs.BoolVar(&cfg.parallel, "parallel", false, "render each channel on its own goroutine")
	fs.BoolVar(&cfg.play, "play", false, "play the processed tone on the default audio device")
	fs.BoolVar(&cfg.loop, "loop", false, "with -play, loop the tone for -seconds")
	fs.StringVar(&cfg.out, "out", "", "write raw little-endian float32 frames to FILE (\"-\" for stdout)")

	fs.StringVar(&cfg.tone, "tone", "sine", "test signal: sine, noise or pluck")
	fs.Float64Var(&cfg.toneHz, "freq", 440, "test tone frequency in Hz")
	fs.Float64Var(&cfg.amplitude, "amp", 0.5, "test tone peak amplitude")
	fs.Float64Var(&cfg.seconds, "seconds", 2, "test tone length in seconds")
	fs.IntVar(&cfg.channels, "channels", 2, "number of channels")
	fs.Float64Var(&cfg.sampleRate, "sr", 48000, "sample rate in Hz")
	fs.IntVar(&cfg.blockSize, "block", 512, "processing block size in frames")
	fs.Int64Var(&cfg.seed, "seed", 1, "noise seed")

	fs.Float64Var(&cfg.rate, "rate", math.NaN(), "LFO rate in Hz")
	fs.Float64Var(&cfg.depth, "depth", math.NaN(), "modulation depth 0..1")
	fs.Float64Var(&cfg.delay, "delay", math.NaN(), "base delay in seconds")
	fs.Float64Var(&cfg.feedback, "feedback", math.NaN(), "feedback amount")
	fs.Float64Var(&cfg.mix, "mix", math.NaN(), "wet/dry mix 0..1")
	fs.Float64Var(&cfg.gain, "gain", math.NaN(), "output gain")
	fs.Float64Var(&cfg.gainDB, "gain-db", math.NaN(), "output gain in dB (exclusive with -gain)")
	fs.Float64Var(&cfg.centre, "centre", math.NaN(), "phaser centre frequency in Hz")
	fs.IntVar(&cfg.taps, "taps", -1, "echo taps 0..4")
	fs.IntVar(&cfg.voices, "voices", -1, "chorus voices 1..8")
	fs.StringVar(&cfg.shape, "shape", "", "LFO shape: off, sine, saw or square")
	fs.StringVar(&cfg.mode, "mode", "", "flanger mode (off, additive, subtractive, through-zero) or variant number")
	fs.Float64Var(&cfg.drive, "drive", math.NaN(), "fuzz clip, saturation drive or distortion outer threshold knob")
	fs.Float64Var(&cfg.curve, "curve", math.NaN(), "saturation cubic coefficient or distortion inner threshold knob")
	fs.Float64Var(&cfg.bits, "bits", math.NaN(), "distortion bit-crush resolution")
	fs.Float64Var(&cfg.drop, "drop", math.NaN(), "distortion dropout chance in percent")
	fs.Float64Var(&cfg.threshold, "threshold", math.NaN(), "compressor threshold in dB")
	fs.Float64Var(&cfg.ratio, "ratio", math.NaN(), "compressor ratio")
	fs.Float64Var(&cfg.attack, "attack", math.NaN(), "compressor or envelope attack in ms")
	fs.Float64Var(&cfg.release, "release", math.NaN(), "compressor or envelope release in ms")
	fs.Float64Var(&cfg.size, "size", math.NaN(), "reverb room size 0..1")
	fs.Float64Var(&cfg.damping, "damping", math.NaN(), "reverb damping 0..1")
	fs.Float64Var(&cfg.width, "width", math.NaN(), "reverb stereo width 0..1")
	fs.Float64Var(&cfg.dry, "dry", math.NaN(), "reverb dry level 0..1")
	fs.Float64Var(&cfg.freeze, "freeze", math.NaN(), "reverb freeze; above 0.5 holds the tail")

	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: pedalfx [flags]\n\n")
		fmt.Fprintf(stderr, "Runs a test tone through a guitar pedal.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  pedalfx -list\n")
		fmt.Fprintf(stderr, "  pedalfx -effect chorus -rate 2 -depth 0.5 -stats\n")
		fmt.Fprintf(stderr, "  pedalfx -effect echo -taps 3 -feedback 0.4 -out echo.f32\n")
		fmt.Fprintf(stderr, "  pedalfx -effect tremolo -shape square -play\n")
		fmt.Fprintf(stderr, "  pedalfx -effect distortion,reverb -mode 1 -size 0.8 -stats\n")
	}

	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if fs.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, cfg.validate()
}

func (cfg config) validate() error {
	if cfg.list {
		return nil
	}
	stream := core.ProcessorConfig{SampleRate: cfg.sampleRate, BlockSize: cfg.blockSize}
	if err := stream.Validate(); err != nil {
		return err
	}
	if cfg.channels < 1 || cfg.channels > effects.MaxChannels {
		return fmt.Errorf("channels must be in [1, %d]: %d", effects.MaxChannels, cfg.channels)
	}
	if !(cfg.seconds > 0) {
		return fmt.Errorf("seconds must be > 0: %v", cfg.seconds)
	}
	if cfg.play && cfg.out != "" {
		return errors.New("-play and -out are mutually exclusive")
	}
	if !math.IsNaN(cfg.gain) && !math.IsNaN(cfg.gainDB) {
		return errors.New("-gain and -gain-db are mutually exclusive")
	}
	chain := cfg.chain()
	if len(chain) == 0 {
		return errors.New("-effect names no pedal")
	}
	if cfg.parallel && len(chain) > 1 {
		return errors.New("-parallel renders a single pedal, not a chain")
	}
	return nil
}

// chain splits -effect into pedal names.
func (cfg config) chain() []string {
	var names []string
	for _, name := range strings.Split(cfg.effect, ",") {
		if name = strings.TrimSpace(name); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// params overlays the flags that were set on the pedal's defaults.
func (cfg config) params(defaults effects.Params) (effects.Params, error) {
	p := defaults
	overlay := func(dst *float64, v float64) {
		if !math.IsNaN(v) {
			*dst = v
		}
	}
	overlay(&p.RateHz, cfg.rate)
	overlay(&p.Depth, cfg.depth)
	overlay(&p.DelaySeconds, cfg.delay)
	overlay(&p.Feedback, cfg.feedback)
	overlay(&p.Mix, cfg.mix)
	overlay(&p.Gain, cfg.gain)
	if !math.IsNaN(cfg.gainDB) {
		p.Gain = mix.DBToGain(cfg.gainDB)
	}
	overlay(&p.CentreHz, cfg.centre)
	overlay(&p.Drive, cfg.drive)
	overlay(&p.Curve, cfg.curve)
	overlay(&p.Bits, cfg.bits)
	overlay(&p.DropPercent, cfg.drop)
	overlay(&p.ThresholdDB, cfg.threshold)
	overlay(&p.Ratio, cfg.ratio)
	overlay(&p.AttackMs, cfg.attack)
	overlay(&p.ReleaseMs, cfg.release)
	overlay(&p.RoomSize, cfg.size)
	overlay(&p.Damping, cfg.damping)
	overlay(&p.Width, cfg.width)
	overlay(&p.Dry, cfg.dry)
	overlay(&p.Freeze, cfg.freeze)
	if cfg.taps >= 0 {
		p.Taps = cfg.taps
	}
	if cfg.voices >= 0 {
		p.Voices = cfg.voices
	}
	if cfg.shape != "" {
		shape, err := lfo.ParseShape(cfg.shape)
		if err != nil {
			return p, err
		}
		p.Shape = shape
	}
	if cfg.mode != "" {
		mode, err := effects.ParseMode(cfg.mode)
		if err != nil {
			return p, err
		}
		p.Mode = mode
	}
	return p, nil
}

// input renders the test tone once and copies it to every channel.
func (cfg config) input() ([][]float64, error) {
	tone, err := signal.ParseTone(cfg.tone)
	if err != nil {
		return nil, err
	}
	g := signal.NewGenerator(
		[]core.ProcessorOption{core.WithSampleRate(cfg.sampleRate), core.WithBlockSize(cfg.blockSize)},
		signal.WithSeed(cfg.seed),
	)
	mono, err := g.Tone(tone, cfg.toneHz, cfg.amplitude, int(cfg.seconds*cfg.sampleRate))
	if err != nil {
		return nil, err
	}
	return signal.Duplicate(mono, cfg.channels), nil
}
