// Package dynamics holds the level-dependent pedals: a hard-knee compressor
// whose threshold can follow an LFO, and an envelope follower that outputs
// the level of its input.
package dynamics
