package spectral

import (
	"math"
	"math/cmplx"
)

// Centroid returns the magnitude-weighted mean frequency of each frame in Hz.
// Silent frames report 0.
func Centroid(s *Spectrum, sampleRate int) []float64 {
	n := 2 * (s.Bins() - 1)
	out := make([]float64, s.Frames())

	s.eachFrameMagnitude(func(c int, mag []float64) {
		numerator, denominator := 0.0, 0.0
		for k, m := range mag {
			numerator += BinFrequency(k, n, sampleRate) * m
			denominator += m
		}
		if denominator > 0 {
			out[c] = numerator / denominator
		}
	})
	return out
}

// Rolloff returns, per frame, the lowest bin frequency at which the cumulative
// energy reaches threshold (typically 0.85) of the frame total.
func Rolloff(s *Spectrum, sampleRate int, threshold float64) []float64 {
	n := 2 * (s.Bins() - 1)
	out := make([]float64, s.Frames())

	s.eachFrameMagnitude(func(c int, mag []float64) {
		total := 0.0
		for _, m := range mag {
			total += m * m
		}
		if total == 0 {
			return
		}

		target := threshold * total
		cumulative := 0.0
		for k, m := range mag {
			cumulative += m * m
			if cumulative >= target {
				out[c] = BinFrequency(k, n, sampleRate)
				return
			}
		}
		out[c] = BinFrequency(len(mag)-1, n, sampleRate)
	})
	return out
}

// Flux returns the positive spectral flux between consecutive frames: the
// L2 norm of magnitude increases. It has Frames()-1 entries.
func Flux(s *Spectrum) []float64 {
	if s.Frames() < 2 {
		return []float64{}
	}

	out := make([]float64, s.Frames()-1)
	prev := make([]float64, s.Bins())
	s.eachFrameMagnitude(func(c int, mag []float64) {
		if c > 0 {
			sum := 0.0
			for k, m := range mag {
				if diff := m - prev[k]; diff > 0 {
					sum += diff * diff
				}
			}
			out[c-1] = math.Sqrt(sum)
		}
		copy(prev, mag)
	})
	return out
}

// eachFrameMagnitude calls fn with |X| of each frame in order. mag is reused.
func (s *Spectrum) eachFrameMagnitude(fn func(c int, mag []float64)) {
	column := make([]complex128, s.bins)
	mag := make([]float64, s.bins)
	for c := range s.frames {
		column = s.Frame(column, c)
		for k, v := range column {
			mag[k] = cmplx.Abs(v)
		}
		fn(c, mag)
	}
}
