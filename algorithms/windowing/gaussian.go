package windowing

import (
	"math"
)

// DefaultGaussianSigma is the standard deviation, as a fraction of the window
// size, used when none is given.
const DefaultGaussianSigma = 0.125

// Gaussian returns a generator for a Gaussian window whose standard deviation
// is sigma times the window size. Non-positive sigma falls back to
// DefaultGaussianSigma.
func Gaussian(sigma float64) Generator {
	if sigma <= 0 {
		sigma = DefaultGaussianSigma
	}
	return func(size int, zeroPhase bool) []float64 {
		return generate(size, zeroPhase, func(x float64) float64 {
			r := x / sigma
			return math.Exp(-0.5 * r * r)
		})
	}
}

// NewGaussian creates a new Gaussian window with relative width sigma
func NewGaussian(size int, zeroPhase bool, sigma float64) *Window {
	return NewFromGenerator(TypeGaussian, Gaussian(sigma), size, zeroPhase)
}
