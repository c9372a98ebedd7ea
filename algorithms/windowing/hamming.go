package windowing

import (
	"math"
)

// hammingAlpha is the classic Hamming pedestal
const hammingAlpha = 0.54

// RaisedCosine returns a generator for the generalized raised-cosine window
// alpha + (1-alpha)*cos(2*pi*x). alpha = 0.5 gives Hann and 0.54 gives Hamming.
func RaisedCosine(alpha float64) Generator {
	return func(size int, zeroPhase bool) []float64 {
		return generate(size, zeroPhase, func(x float64) float64 {
			return alpha + (1.0-alpha)*math.Cos(2*math.Pi*x)
		})
	}
}

// Hamming generates a periodic Hamming window.
func Hamming(size int, zeroPhase bool) []float64 {
	return RaisedCosine(hammingAlpha)(size, zeroPhase)
}

// NewHamming creates a new Hamming window
func NewHamming(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeHamming, Hamming, size, zeroPhase)
}
