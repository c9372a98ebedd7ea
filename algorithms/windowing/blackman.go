package windowing

import (
	"math"
)

// Blackman generates a periodic three-term Blackman window
func Blackman(size int, zeroPhase bool) []float64 {
	a0, a1, a2 := 0.42, 0.5, 0.08

	return generate(size, zeroPhase, func(x float64) float64 {
		arg := 2 * math.Pi * x
		return a0 + a1*math.Cos(arg) + a2*math.Cos(2*arg)
	})
}

// NewBlackman creates a new Blackman window
func NewBlackman(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeBlackman, Blackman, size, zeroPhase)
}
