package effects

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

// State is the lifecycle state of a topology.
type State int

const (
	// Unconfigured topologies own no buffers and must not process audio.
	Unconfigured State = iota
	// Ready topologies have buffers sized for the configured stream.
	Ready
)

func (s State) String() string {
	if s == Ready {
		return "ready"
	}
	return "unconfigured"
}

// Topology is a pedal signal chain processing planar blocks in place.
//
// Configure allocates everything the topology needs and resets its state; it
// is the only method that may allocate. Process reads one parameter snapshot
// for the whole block. Reset clears history and LFO phase without
// reallocating.
type Topology interface {
	Configure(cfg core.ProcessorConfig, channels int) error
	Process(p *Params, block [][]float64)
	Reset()
	State() State
}

// MaxChannels bounds the channel count accepted by Configure.
const MaxChannels = 32

// ValidateLayout checks the arguments shared by every Configure.
func ValidateLayout(cfg core.ProcessorConfig, channels int) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if channels <= 0 || channels > MaxChannels {
		return fmt.Errorf("effects channels must be in [1, %d]: %d", MaxChannels, channels)
	}
	return nil
}
