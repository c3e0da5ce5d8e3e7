//go:build !dspdebug

package assert

// Enabled reports whether assertions are compiled in.
const Enabled = false

// That is a no-op without the dspdebug tag.
func That(bool, string) {}

// Thatf is a no-op without the dspdebug tag.
func Thatf(bool, string, ...any) {}
