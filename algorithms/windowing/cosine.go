package windowing

import (
	"math"
)

// Cosine generates the cosine (sine) window, the square root of Hann.
// Used for both analysis and synthesis the product is a Hann window, which
// makes the pair constant-overlap-add at half overlap.
func Cosine(size int, zeroPhase bool) []float64 {
	return generate(size, zeroPhase, func(x float64) float64 {
		return math.Cos(math.Pi * x)
	})
}

// NewCosine creates a new cosine window
func NewCosine(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeCosine, Cosine, size, zeroPhase)
}
