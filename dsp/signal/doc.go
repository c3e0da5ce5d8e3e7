// Package signal generates deterministic test tones and converts between
// planar and interleaved sample layouts.
package signal
