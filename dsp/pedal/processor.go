package pedal

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/signal"
)

// ErrNotConfigured is returned by the processing methods before Configure.
var ErrNotConfigured = errors.New("pedal: processor not configured")

// Processor runs one pedal on a stream of fixed channel count.
//
// SetParams may be called from any goroutine. Configure, Reset and the
// processing methods belong to the audio goroutine.
type Processor struct {
	name   string
	topo   effects.Topology
	limits effects.Limits
	params atomic.Pointer[effects.Params]

	cfg      core.ProcessorConfig
	channels int
	scratch  [][]float64
	view     [][]float64
}

// NewProcessor builds the named pedal from r with its default parameters.
func NewProcessor(r *Registry, name string) (*Processor, error) {
	e, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}
	topo, err := e.New()
	if err != nil {
		return nil, fmt.Errorf("pedal %s: %w", name, err)
	}
	p := &Processor{name: name, topo: topo, limits: e.Limits}
	p.SetParams(e.Defaults)
	return p, nil
}

// Name returns the registered pedal name.
func (p *Processor) Name() string { return p.name }

// Limits returns the parameter ranges SetParams clamps to.
func (p *Processor) Limits() effects.Limits { return p.limits }

// Channels returns the configured channel count, or 0.
func (p *Processor) Channels() int { return p.channels }

// Config returns the configured sample rate and block size.
func (p *Processor) Config() core.ProcessorConfig { return p.cfg }

// Topology returns the underlying signal chain.
func (p *Processor) Topology() effects.Topology { return p.topo }

// Configure prepares the pedal for a stream. It allocates every buffer the
// processing methods need and resets all state.
func (p *Processor) Configure(sampleRate float64, maxBlockSize, channels int) error {
	cfg := core.ProcessorConfig{SampleRate: sampleRate, BlockSize: maxBlockSize}
	if err := p.topo.Configure(cfg, channels); err != nil {
		return fmt.Errorf("pedal %s: %w", p.name, err)
	}

	p.scratch = make([][]float64, channels)
	for ch := range p.scratch {
		p.scratch[ch] = make([]float64, maxBlockSize)
	}
	p.view = make([][]float64, channels)
	p.cfg = cfg
	p.channels = channels
	return nil
}

// SetParams clamps v to the pedal's limits and publishes it. The next block
// processed sees the new values; a block in flight keeps the old ones.
func (p *Processor) SetParams(v effects.Params) {
	clamped := v.Clamp(p.limits)
	p.params.Store(&clamped)
}

// Params returns the current snapshot.
func (p *Processor) Params() effects.Params {
	return *p.params.Load()
}

// Reset clears delay history and rewinds every LFO.
func (p *Processor) Reset() {
	p.topo.Reset()
}

// ProcessBlock processes a planar block in place. Blocks longer than the
// configured block size are processed in chunks, each with its own
// parameter snapshot.
func (p *Processor) ProcessBlock(block [][]float64) error {
	if p.topo.State() != effects.Ready {
		return ErrNotConfigured
	}
	if len(block) != p.channels {
		return fmt.Errorf("pedal %s: block has %d channels, want %d", p.name, len(block), p.channels)
	}
	n := len(block[0])
	for ch := 1; ch < len(block); ch++ {
		if len(block[ch]) != n {
			return fmt.Errorf("pedal %s: channel %d has %d samples, want %d", p.name, ch, len(block[ch]), n)
		}
	}

	for start := 0; start < n; start += p.cfg.BlockSize {
		end := min(start+p.cfg.BlockSize, n)
		for ch := range block {
			p.view[ch] = block[ch][start:end]
		}
		p.topo.Process(p.params.Load(), p.view)
	}
	return nil
}

// ProcessInterleaved processes interleaved float32 frames from src into dst.
// dst may alias src. len(src) must be a multiple of the channel count.
func (p *Processor) ProcessInterleaved(dst, src []float32) error {
	if p.topo.State() != effects.Ready {
		return ErrNotConfigured
	}
	if len(src)%p.channels != 0 {
		return fmt.Errorf("pedal %s: %d samples is not a whole number of %d-channel frames", p.name, len(src), p.channels)
	}
	if len(dst) < len(src) {
		return fmt.Errorf("pedal %s: dst holds %d samples, need %d", p.name, len(dst), len(src))
	}

	frames := len(src) / p.channels
	for start := 0; start < frames; start += p.cfg.BlockSize {
		n := min(p.cfg.BlockSize, frames-start)
		in := src[start*p.channels : (start+n)*p.channels]
		out := dst[start*p.channels : (start+n)*p.channels]

		for ch := range p.view {
			p.view[ch] = p.scratch[ch][:n]
		}
		signal.Deinterleave(p.view, in)
		p.topo.Process(p.params.Load(), p.view)
		signal.Interleave(out, p.view)
	}
	return nil
}
