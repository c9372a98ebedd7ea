package windowing

import (
	"math"
)

// DefaultKaiserBeta trades main-lobe width for roughly 90 dB of sidelobe rejection.
const DefaultKaiserBeta = 8.6

// Kaiser returns a generator for a Kaiser window with shape parameter beta.
// Negative beta falls back to DefaultKaiserBeta.
func Kaiser(beta float64) Generator {
	if beta < 0 {
		beta = DefaultKaiserBeta
	}
	i0Beta := besselI0(beta)

	return func(size int, zeroPhase bool) []float64 {
		return generate(size, zeroPhase, func(x float64) float64 {
			r := 2.0 * x
			return besselI0(beta*math.Sqrt(1-r*r)) / i0Beta
		})
	}
}

// besselI0 computes the zero-order modified Bessel function of the first kind
// by series expansion.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	for i := 1; i < 50; i++ {
		term *= (x / (2.0 * float64(i))) * (x / (2.0 * float64(i)))
		sum += term

		if term < 1e-12*sum {
			break
		}
	}

	return sum
}

// NewKaiser creates a new Kaiser window with shape parameter beta
func NewKaiser(size int, zeroPhase bool, beta float64) *Window {
	return NewFromGenerator(TypeKaiser, Kaiser(beta), size, zeroPhase)
}
