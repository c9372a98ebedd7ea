package spectral

import (
	"gonum.org/v1/gonum/floats"
)

// span maps a contiguous run of frame buffer positions onto signal indices.
type span struct {
	buf   int // first frame buffer position
	sig   int // first signal index
	count int
}

// frameSpans places an n-point frame circularly around center in a signal of
// the given length. Buffer positions [0, n/2) hold signal [center, center+n/2)
// and positions [n/2, n) hold the wrapped negative half
// [center-n/2, center). Both runs are clipped to [0, length); taps that fall
// outside are absent, which is zero padding.
//
// Analysis gathers through these spans and synthesis scatter-adds through
// them, so the two directions always agree on frame alignment.
func frameSpans(center, n, length int) [2]span {
	half := n / 2
	return [2]span{
		clipSpan(0, center, half, length),
		clipSpan(n-half, center-half, half, length),
	}
}

func clipSpan(buf, sig, count, length int) span {
	lo := max(sig, 0)
	hi := min(sig+count, length)
	if hi <= lo {
		return span{}
	}
	return span{buf: buf + lo - sig, sig: lo, count: hi - lo}
}

// gatherFrame fills frame with the samples of x around center. Positions with
// no signal sample are zeroed.
func gatherFrame(frame, x []float64, center int) {
	clear(frame)
	for _, s := range frameSpans(center, len(frame), len(x)) {
		copy(frame[s.buf:s.buf+s.count], x[s.sig:s.sig+s.count])
	}
}

// scatterAddFrame adds frame into out around center. Taps outside out are dropped.
func scatterAddFrame(out, frame []float64, center int) {
	for _, s := range frameSpans(center, len(frame), len(out)) {
		if s.count == 0 {
			continue
		}
		floats.Add(out[s.sig:s.sig+s.count], frame[s.buf:s.buf+s.count])
	}
}
