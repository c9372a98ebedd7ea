package spectral

// FrameCount returns the number of frames needed to cover a signal of the
// given length: frame 0 is centered on the first sample and the last frame's
// center is at or past the last sample. It is ceil((length-1)/hop) + 1 for
// every length >= 0: an empty signal still gets the single frame centered on
// index 0. Negative lengths and hops give 0.
//
// Analysis and synthesis both derive their geometry from FrameCount and
// OutputLength so the two directions cannot disagree.
func FrameCount(length, hop int) int {
	if length < 0 || hop <= 0 {
		return 0
	}
	if length == 0 {
		return 1
	}
	return (length-1+hop-1)/hop + 1
}

// OutputLength returns the length of the signal reconstructed from the given
// number of frames at hop outHop: (frames-1)*outHop + 1.
func OutputLength(frames, outHop int) int {
	if frames <= 0 {
		return 0
	}
	return (frames-1)*outHop + 1
}

// Bins returns the number of non-negative frequency bins of an n-point real
// transform, DC through Nyquist.
func Bins(n int) int {
	return n/2 + 1
}

// BinFrequency returns the center frequency in Hz of bin k of an n-point transform.
func BinFrequency(k, n, sampleRate int) float64 {
	return float64(k) * float64(sampleRate) / float64(n)
}

// FrameTime returns the time in seconds of the center of frame c.
func FrameTime(c, hop, sampleRate int) float64 {
	return float64(c*hop) / float64(sampleRate)
}
