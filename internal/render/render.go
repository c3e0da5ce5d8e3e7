// Package render runs pedals and boards over whole signals held in memory.
package render

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/pedal"
)

// Job describes one offline render.
type Job struct {
	Effect     string
	Params     effects.Params
	SampleRate float64
	BlockSize  int
}

// Render processes a copy of input through one multi-channel processor and
// returns the result. input is left untouched.
func Render(ctx context.Context, r *pedal.Registry, job Job, input [][]float64) ([][]float64, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("render: no channels")
	}
	proc, err := newProcessor(r, job, len(input))
	if err != nil {
		return nil, err
	}

	out := clone(input)
	if err := run(ctx, proc, out, job.BlockSize); err != nil {
		return nil, err
	}
	return out, nil
}

// Process runs a copy of input through a configured unit, such as a
// Board, in chunks of its block size. input is left untouched.
func Process(ctx context.Context, u pedal.Unit, input [][]float64) ([][]float64, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("render: no channels")
	}
	if u.Channels() == 0 {
		return nil, pedal.ErrNotConfigured
	}

	out := clone(input)
	if err := run(ctx, u, out, u.Config().BlockSize); err != nil {
		return nil, err
	}
	return out, nil
}

// Parallel renders each channel on its own processor and goroutine. The
// result matches Render whenever every channel's LFO starts at the same
// phase, which holds for the registry's default pedals.
func Parallel(ctx context.Context, r *pedal.Registry, job Job, input [][]float64) ([][]float64, error) {
	if len(input) == 0 {
		return nil, fmt.Errorf("render: no channels")
	}

	out := clone(input)
	g, ctx := errgroup.WithContext(ctx)
	for ch := range out {
		g.Go(func() error {
			proc, err := newProcessor(r, job, 1)
			if err != nil {
				return err
			}
			if err := run(ctx, proc, out[ch:ch+1], job.BlockSize); err != nil {
				return fmt.Errorf("render channel %d: %w", ch, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func newProcessor(r *pedal.Registry, job Job, channels int) (*pedal.Processor, error) {
	proc, err := pedal.NewProcessor(r, job.Effect)
	if err != nil {
		return nil, err
	}
	if err := proc.Configure(job.SampleRate, job.BlockSize, channels); err != nil {
		return nil, err
	}
	proc.SetParams(job.Params)
	return proc, nil
}

// run feeds block in chunks of size, checking ctx between chunks.
func run(ctx context.Context, u pedal.Unit, block [][]float64, size int) error {
	n := len(block[0])
	view := make([][]float64, len(block))
	for start := 0; start < n; start += size {
		if err := ctx.Err(); err != nil {
			return err
		}
		end := min(start+size, n)
		for ch := range block {
			view[ch] = block[ch][start:end]
		}
		if err := u.ProcessBlock(view); err != nil {
			return err
		}
	}
	return nil
}

func clone(block [][]float64) [][]float64 {
	out := make([][]float64, len(block))
	for ch, buf := range block {
		out[ch] = append([]float64(nil), buf...)
	}
	return out
}
