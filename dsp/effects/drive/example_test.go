package drive_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/core"
	"github.com/cwbudde/algo-pedal/dsp/effects"
	"github.com/cwbudde/algo-pedal/dsp/effects/drive"
)

func ExampleDistortion() {
	d, err := drive.NewDistortion()
	if err != nil {
		panic(err)
	}
	if err := d.Configure(core.ProcessorConfig{SampleRate: 48000, BlockSize: 8}, 1); err != nil {
		panic(err)
	}

	p := effects.Params{Gain: 1, Bits: 3, Mix: 1, Mode: drive.DistortionCrush}
	block := [][]float64{{0.1, 0.3, 0.6, 0.9}}
	d.Process(&p, block)
	fmt.Println(block[0])

	// Output:
	// [0.25 0.5 0.75 1]
}
