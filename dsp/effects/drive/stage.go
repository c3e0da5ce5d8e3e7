package drive

import (
	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/mix"
)

type shaper interface {
	shape(p *effects.Params, x float64) float64
}

// stage owns the per-channel wet buffers shared by the drive pedals.
type stage struct {
	wet   [][]float64
	state effects.State
}

func (s *stage) configure(cfg core.ProcessorConfig, channels int) error {
	if err := effects.ValidateLayout(cfg, channels); err != nil {
		return err
	}
	s.wet = make([][]float64, channels)
	for ch := range s.wet {
		s.wet[ch] = make([]float64, cfg.BlockSize)
	}
	s.state = effects.Ready
	return nil
}

// run shapes block into the wet buffers and blends it back in place, in
// chunks of at most the configured block size.
func (s *stage) run(p *effects.Params, block [][]float64, sh shaper) {
	for ch, buf := range block {
		wet := s.wet[ch]
		for start := 0; start < len(buf); start += len(wet) {
			dry := buf[start:min(start+len(wet), len(buf))]
			w := wet[:len(dry)]
			for i, x := range dry {
				y := sh.shape(p, x)
				if !core.IsFinite(y) {
					y = 0
				}
				w[i] = y
			}
			mix.DryWetBlock(dry, dry, w, p.Mix)
		}
	}
}
