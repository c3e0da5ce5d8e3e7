package signal

// Interleave writes planar channels into dst as interleaved frames.
// dst must hold len(src)*len(src[0]) samples.
func Interleave(dst []float32, src [][]float64) {
	channels := len(src)
	for ch, buf := range src {
		for i, v := range buf {
			dst[i*channels+ch] = float32(v)
		}
	}
}

// Deinterleave splits interleaved frames into planar channels. Each dst
// channel receives len(dst[ch]) frames.
func Deinterleave(dst [][]float64, src []float32) {
	channels := len(dst)
	for ch, buf := range dst {
		for i := range buf {
			buf[i] = float64(src[i*channels+ch])
		}
	}
}

// Duplicate returns channels planar copies of a mono signal.
func Duplicate(mono []float64, channels int) [][]float64 {
	out := make([][]float64, channels)
	for ch := range out {
		out[ch] = append([]float64(nil), mono...)
	}
	return out
}
