package modulation_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/modulation"
	"github.com/cwbudde/algo-pedal/dsp/lfo"
)

func ExampleTremolo() {
	tr, err := modulation.NewTremolo()
	if err != nil {
		panic(err)
	}
	if err := tr.Configure(core.ProcessorConfig{SampleRate: 8, BlockSize: 8}, 1); err != nil {
		panic(err)
	}

	p := effects.Params{RateHz: 1, Depth: 1, Mix: 1, Gain: 1, Shape: lfo.Square}
	block := [][]float64{{1, 1, 1, 1, 1, 1, 1, 1}}
	tr.Process(&p, block)
	fmt.Println(block[0])

	// Output:
	// [0 0 0 1 1 1 1 0]
}

func ExampleFlanger() {
	fl, err := modulation.NewFlanger()
	if err != nil {
		panic(err)
	}
	if err := fl.Configure(core.ProcessorConfig{SampleRate: 1000, BlockSize: 6}, 1); err != nil {
		panic(err)
	}

	p := modulation.FlangerDefaults()
	p.Shape = lfo.PassThrough
	p.DelaySeconds = 0.002
	p.Feedback = 0
	p.Mix = 0.5
	block := [][]float64{{1, 0, 0, 0, 0, 0}}
	fl.Process(&p, block)
	for _, v := range block[0] {
		fmt.Printf("%.2f ", v)
	}
	fmt.Println()

	// Output:
	// 0.50 0.00 0.50 0.00 0.00 0.00
}
