// Package windowing generates analysis and synthesis windows for short-time
// spectral processing.
//
// Every generator shares one signature, (size, zeroPhase) -> coefficients.
// A zero-phase window stores its center sample at index 0 and wraps the
// negative offsets to the tail of the buffer, so a frame transformed with it
// keeps its phase reference at the frame center. A start-aligned window is the
// usual periodic form with the center at index size/2.
package windowing

import (
	"gonum.org/v1/gonum/floats"
)

// Generator produces a window of the requested size in either layout.
type Generator func(size int, zeroPhase bool) []float64

// shape evaluates a window at the normalized offset x in [-0.5, 0.5),
// where x = 0 is the window center.
type shape func(x float64) float64

// Offset returns the signed distance from the window center of the
// coefficient stored at index i.
func Offset(i, size int, zeroPhase bool) int {
	half := size / 2
	if !zeroPhase {
		return i - half
	}
	if i < half {
		return i
	}
	return i - size
}

// generate samples s at every index of a size-length buffer in the requested layout
func generate(size int, zeroPhase bool, s shape) []float64 {
	if size <= 0 {
		return []float64{}
	}

	coefficients := make([]float64, size)
	for i := range size {
		coefficients[i] = s(float64(Offset(i, size, zeroPhase)) / float64(size))
	}

	return coefficients
}

// ZeroPhase rotates a start-aligned window so that its center lands on index 0.
// The input is not modified.
func ZeroPhase(samples []float64) []float64 {
	size := len(samples)
	rotated := make([]float64, size)
	if size == 0 {
		return rotated
	}

	half := size / 2
	copy(rotated, samples[half:])
	copy(rotated[size-half:], samples[:half])
	return rotated
}

// OverlapGain returns the mean value of the overlap-add sum of w at the given
// hop. For a window (or window product) that is constant-overlap-add at that
// hop this is the constant itself, e.g. 2 for a rectangular window at half
// overlap. The result says nothing about ripple.
func OverlapGain(w []float64, hop int) float64 {
	if hop <= 0 || len(w) == 0 {
		return 0
	}
	return floats.Sum(w) / float64(hop)
}

// Product returns the elementwise product of two equally sized windows, or nil
// when the sizes differ.
func Product(a, b []float64) []float64 {
	if len(a) != len(b) {
		return nil
	}
	p := make([]float64, len(a))
	floats.MulTo(p, a, b)
	return p
}
