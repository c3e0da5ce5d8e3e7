package pedal

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
)

// Unit is anything a host can stream audio through: a single Processor or
// a Board of them.
type Unit interface {
	Configure(sampleRate float64, maxBlockSize, channels int) error
	ProcessBlock(block [][]float64) error
	ProcessInterleaved(dst, src []float32) error
	Reset()
	Channels() int
	Config() core.ProcessorConfig
}

var (
	_ Unit = (*Processor)(nil)
	_ Unit = (*Board)(nil)
)

// Board runs pedals in series, first to last. Each stage keeps its own
// parameter snapshot and limits.
type Board struct {
	stages []*Processor
}

// NewBoard builds one processor per name. A name may repeat.
func NewBoard(r *Registry, names ...string) (*Board, error) {
	if len(names) == 0 {
		return nil, errors.New("pedal: empty board")
	}
	stages := make([]*Processor, len(names))
	for i, name := range names {
		p, err := NewProcessor(r, name)
		if err != nil {
			return nil, fmt.Errorf("board stage %d: %w", i, err)
		}
		stages[i] = p
	}
	return &Board{stages: stages}, nil
}

// Stages returns the processors in signal order. SetParams on a stage is
// safe while the board runs.
func (b *Board) Stages() []*Processor { return b.stages }

// Configure prepares every stage for the same stream.
func (b *Board) Configure(sampleRate float64, maxBlockSize, channels int) error {
	for _, p := range b.stages {
		if err := p.Configure(sampleRate, maxBlockSize, channels); err != nil {
			return err
		}
	}
	return nil
}

// Channels returns the configured channel count, or 0.
func (b *Board) Channels() int { return b.stages[0].Channels() }

// Config returns the configured sample rate and block size.
func (b *Board) Config() core.ProcessorConfig { return b.stages[0].Config() }

// Reset clears every stage.
func (b *Board) Reset() {
	for _, p := range b.stages {
		p.Reset()
	}
}

// ProcessBlock runs block through every stage in place.
func (b *Board) ProcessBlock(block [][]float64) error {
	for _, p := range b.stages {
		if err := p.ProcessBlock(block); err != nil {
			return err
		}
	}
	return nil
}

// ProcessInterleaved runs src through every stage into dst. dst may alias
// src.
func (b *Board) ProcessInterleaved(dst, src []float32) error {
	for i, p := range b.stages {
		in := dst
		if i == 0 {
			in = src
		}
		if err := p.ProcessInterleaved(dst, in); err != nil {
			return err
		}
	}
	return nil
}
