// Package mix holds the output stage shared by all pedals: the dry/wet blend
// and the final gain.
//
// Per-sample helpers are used inside the topologies. The block helpers run
// on github.com/cwbudde/algo-vecmath kernels.
package mix
