package core

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidSampleRate is returned when a sample rate is not a finite positive number.
	ErrInvalidSampleRate = errors.New("core: invalid sample rate")
	// ErrInvalidBlockSize is returned when a maximum block size is not positive.
	ErrInvalidBlockSize = errors.New("core: invalid block size")
)

// ProcessorConfig carries the settings fixed by Configure: the sample rate
// and the largest block the host will ever hand to a processor.
type ProcessorConfig struct {
	SampleRate float64
	BlockSize  int
}

// ProcessorOption mutates a ProcessorConfig.
type ProcessorOption func(*ProcessorConfig)

// DefaultProcessorConfig returns sensible defaults for offline and streaming use.
func DefaultProcessorConfig() ProcessorConfig {
	return ProcessorConfig{
		SampleRate: 48000,
		BlockSize:  1024,
	}
}

// WithSampleRate sets the processing sample rate.
func WithSampleRate(sampleRate float64) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if sampleRate > 0 {
			cfg.SampleRate = sampleRate
		}
	}
}

// WithBlockSize sets the maximum processing block size.
func WithBlockSize(blockSize int) ProcessorOption {
	return func(cfg *ProcessorConfig) {
		if blockSize > 0 {
			cfg.BlockSize = blockSize
		}
	}
}

// ApplyProcessorOptions applies zero or more options to the default config.
func ApplyProcessorOptions(opts ...ProcessorOption) ProcessorConfig {
	cfg := DefaultProcessorConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// Validate reports whether cfg can be used to configure a processor.
func (cfg ProcessorConfig) Validate() error {
	if cfg.SampleRate <= 0 || math.IsNaN(cfg.SampleRate) || math.IsInf(cfg.SampleRate, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidSampleRate, cfg.SampleRate)
	}
	if cfg.BlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, cfg.BlockSize)
	}
	return nil
}

// Samples converts a duration in seconds to a whole number of samples,
// rounding up so the result always covers the requested time.
func (cfg ProcessorConfig) Samples(seconds float64) int {
	if seconds <= 0 {
		return 0
	}
	return int(math.Ceil(seconds * cfg.SampleRate))
}
