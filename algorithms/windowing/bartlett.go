package windowing

import (
	"math"
)

// Bartlett generates a periodic triangular window. It is constant-overlap-add
// at half overlap.
func Bartlett(size int, zeroPhase bool) []float64 {
	return generate(size, zeroPhase, func(x float64) float64 {
		return 1.0 - 2.0*math.Abs(x)
	})
}

// NewBartlett creates a new Bartlett window
func NewBartlett(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeBartlett, Bartlett, size, zeroPhase)
}
