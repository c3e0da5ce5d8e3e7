//go:build dspdebug

package assert

import "fmt"

// Enabled reports whether assertions are compiled in.
const Enabled = true

// That panics with msg when cond is false.
func That(cond bool, msg string) {
	if !cond {
		panic("assert: " + msg)
	}
}

// Thatf panics with a formatted message when cond is false.
// Arguments are only formatted on failure.
func Thatf(cond bool, format string, args ...any) {
	if !cond {
		panic("assert: " + fmt.Sprintf(format, args...))
	}
}
