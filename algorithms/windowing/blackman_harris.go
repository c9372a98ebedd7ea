package windowing

import (
	"math"
)

// BlackmanHarris generates a periodic four-term Blackman-Harris window
func BlackmanHarris(size int, zeroPhase bool) []float64 {
	a0, a1, a2, a3 := 0.35875, 0.48829, 0.14128, 0.01168

	return generate(size, zeroPhase, func(x float64) float64 {
		arg := 2 * math.Pi * x
		return a0 + a1*math.Cos(arg) + a2*math.Cos(2*arg) + a3*math.Cos(3*arg)
	})
}

// NewBlackmanHarris creates a new 4-term Blackman-Harris window
func NewBlackmanHarris(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeBlackmanHarris, BlackmanHarris, size, zeroPhase)
}
