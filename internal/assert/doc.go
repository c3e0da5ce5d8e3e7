// Package assert holds precondition checks for the real-time path.
//
// Checks are compiled in only with the dspdebug build tag:
//
//	go test -tags dspdebug ./...
//
// Release builds get empty functions the compiler inlines away.
package assert
