package windowing

import (
	"math"
)

// Hann generates a periodic Hann window. At a hop of size/2 its overlap-add
// sum is exactly 1.
func Hann(size int, zeroPhase bool) []float64 {
	return generate(size, zeroPhase, func(x float64) float64 {
		return 0.5 * (1.0 + math.Cos(2*math.Pi*x))
	})
}

// NewHann creates a new Hann window
func NewHann(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeHann, Hann, size, zeroPhase)
}
