// Command pedalfx runs a test tone through one of the built-in pedals, or
// through a comma-separated chain of them in series.
//
// Usage:
//
//	pedalfx [flags]
//
// The processed signal can be summarised (-stats), written as raw
// little-endian float32 PCM (-out), or played on the default audio device
// (-play).
//
// Examples:
//
//	pedalfx -list
//	pedalfx -effect chorus -rate 2 -depth 0.5 -stats
//	pedalfx -effect flanger -mode through-zero -tone noise -out flanged.f32
//	pedalfx -effect tremolo -shape square -rate 6 -play
//	pedalfx -effect saturation,compressor,reverb -gain-db -6 -stats
//
// Parameter flags apply to every pedal in a chain that uses them and are
// clamped to each pedal's limits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/pedal"
	"github.com/cwbudde/algo-pedal/internal/playback"
	"github.com/cwbudde/algo-pedal/internal/render"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error("pedalfx failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config, stdout io.Writer, logger *slog.Logger) error {
	reg := pedal.DefaultRegistry()
	if cfg.list {
		return printList(stdout, reg)
	}

	names := cfg.chain()
	stages := make([]effects.Params, len(names))
	for i, name := range names {
		entry, err := reg.Lookup(name)
		if err != nil {
			return fmt.Errorf("%w (use -list to see available)", err)
		}
		params, err := cfg.params(entry.Defaults)
		if err != nil {
			return err
		}
		clamped := params.Clamp(entry.Limits)
		if clamped != params {
			logger.Warn("parameters clamped to pedal limits", slog.String("effect", entry.Name))
		}
		logger.Debug("parameters", slog.String("effect", entry.Name), slog.Any("params", clamped))
		names[i], stages[i] = entry.Name, clamped
	}

	input, err := cfg.input()
	if err != nil {
		return err
	}

	if cfg.play {
		return play(ctx, reg, cfg, names, stages, input, logger)
	}

	start := time.Now()
	var out [][]float64
	switch {
	case len(names) > 1:
		var board *pedal.Board
		board, err = newBoard(reg, cfg, names, stages, len(input))
		if err != nil {
			return err
		}
		out, err = render.Process(ctx, board, input)
	case cfg.parallel:
		job := render.Job{Effect: names[0], Params: stages[0], SampleRate: cfg.sampleRate, BlockSize: cfg.blockSize}
		out, err = render.Parallel(ctx, reg, job, input)
	default:
		job := render.Job{Effect: names[0], Params: stages[0], SampleRate: cfg.sampleRate, BlockSize: cfg.blockSize}
		out, err = render.Render(ctx, reg, job, input)
	}
	if err != nil {
		return err
	}
	logger.Info("rendered",
		slog.String("effect", strings.Join(names, ",")),
		slog.Int("channels", len(out)),
		slog.Int("frames", len(out[0])),
		slog.Bool("parallel", cfg.parallel),
		slog.Duration("elapsed", time.Since(start)),
	)

	if cfg.stats {
		if err := printStats(stdout, input, out, cfg.sampleRate); err != nil {
			return err
		}
	}
	if cfg.out != "" {
		return writeRaw(cfg.out, out, logger)
	}
	return nil
}

// newBoard configures one stage per name and loads its parameters.
func newBoard(reg *pedal.Registry, cfg config, names []string, stages []effects.Params, channels int) (*pedal.Board, error) {
	board, err := pedal.NewBoard(reg, names...)
	if err != nil {
		return nil, err
	}
	if err := board.Configure(cfg.sampleRate, cfg.blockSize, channels); err != nil {
		return nil, err
	}
	for i, stage := range board.Stages() {
		stage.SetParams(stages[i])
	}
	return board, nil
}

func play(ctx context.Context, reg *pedal.Registry, cfg config, names []string, stages []effects.Params, input [][]float64, logger *slog.Logger) error {
	board, err := newBoard(reg, cfg, names, stages, len(input))
	if err != nil {
		return err
	}

	stream, err := playback.NewStream(board, input, cfg.loop)
	if err != nil {
		return err
	}
	player, err := playback.NewPlayer(int(cfg.sampleRate), len(input), logger)
	if err != nil {
		return err
	}

	var duration time.Duration
	if cfg.loop {
		duration = time.Duration(cfg.seconds * float64(time.Second))
	}
	err = player.Play(ctx, stream, duration)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// writeRaw writes interleaved little-endian float32 frames to path, or to
// stdout for "-". Raw PCM is never written to a terminal.
func writeRaw(path string, out [][]float64, logger *slog.Logger) error {
	var w io.Writer
	if path == "-" {
		if term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("refusing to write raw audio to a terminal; redirect stdout or use -out FILE")
		}
		w = os.Stdout
	} else {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				logger.Warn("closing output", slog.String("path", path), slog.Any("error", cerr))
			}
		}()
		w = f
	}

	if err := encodeFloat32(w, out); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Info("wrote raw float32 PCM", slog.String("path", path), slog.Int("channels", len(out)))
	return nil
}
