package delay_test

import (
	"fmt"

	"github.com/cwbudde/algo-pedal/dsp/delay"
)

func ExampleLine() {
	line, err := delay.New(1, 8)
	if err != nil {
		panic(err)
	}

	for _, x := range []float64{1, 2, 3, 4} {
		line.Push(0, x)
	}

	fmt.Println(line.Pop(0, 0), line.Pop(0, 2), line.Pop(0, 1.5))

	// Output:
	// 4 2 2.5
}
