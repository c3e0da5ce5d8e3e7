package reverb

import "github.com/cwbudde/algo-pedal/dsp/core"

const (
	numCombs     = 8
	numAllpasses = 4

	// Tunings are in samples at tuningRate; the right channel of a pair
	// adds stereoSpread.
	tuningRate   = 44100.0
	stereoSpread = 23

	allpassFeedback = 0.5
)

var (
	combTuning    = [numCombs]int{1116, 1188, 1277, 1356, 1422, 1491, 1557, 1617}
	allpassTuning = [numAllpasses]int{556, 441, 341, 225}
)

// comb is a feedback comb with a one-pole lowpass in the loop.
type comb struct {
	filterStore float64
	buffer      []float64
	index       int
}

func (c *comb) process(input, feedback, damp float64) float64 {
	output := c.buffer[c.index]
	c.filterStore = core.FlushDenormals(output*(1-damp) + c.filterStore*damp)
	c.buffer[c.index] = input + c.filterStore*feedback
	c.index++
	if c.index == len(c.buffer) {
		c.index = 0
	}
	return output
}

func (c *comb) reset() {
	clear(c.buffer)
	c.index = 0
	c.filterStore = 0
}

type allpass struct {
	buffer []float64
	index  int
}

func (a *allpass) process(input float64) float64 {
	buffered := a.buffer[a.index]
	a.buffer[a.index] = input + buffered*allpassFeedback
	a.index++
	if a.index == len(a.buffer) {
		a.index = 0
	}
	return buffered - input
}

func (a *allpass) reset() {
	clear(a.buffer)
	a.index = 0
}

// tank is one channel of parallel combs into series allpasses.
type tank struct {
	combs     [numCombs]comb
	allpasses [numAllpasses]allpass
}

func newTank(sampleRate float64, spread int) tank {
	scale := sampleRate / tuningRate
	size := func(tuning int) int {
		return max(1, int(float64(tuning+spread)*scale))
	}

	var t tank
	for i := range t.combs {
		t.combs[i].buffer = make([]float64, size(combTuning[i]))
	}
	for i := range t.allpasses {
		t.allpasses[i].buffer = make([]float64, size(allpassTuning[i]))
	}
	return t
}

func (t *tank) process(input, feedback, damp float64) float64 {
	var acc float64
	for i := range t.combs {
		acc += t.combs[i].process(input, feedback, damp)
	}
	for i := range t.allpasses {
		acc = t.allpasses[i].process(acc)
	}
	return acc
}

func (t *tank) reset() {
	for i := range t.combs {
		t.combs[i].reset()
	}
	for i := range t.allpasses {
		t.allpasses[i].reset()
	}
}
