package windowing

import (
	"math"
)

// Tukey returns a generator for a tapered-cosine window. alpha is the fraction
// of the window inside the cosine tapers: 0 gives a rectangular window and 1
// gives Hann. Values outside [0, 1] are clamped.
func Tukey(alpha float64) Generator {
	alpha = math.Max(0, math.Min(1, alpha))

	return func(size int, zeroPhase bool) []float64 {
		if alpha == 0 {
			return Rectangular(size, zeroPhase)
		}

		flat := (1.0 - alpha) / 2.0
		return generate(size, zeroPhase, func(x float64) float64 {
			d := math.Abs(x)
			if d <= flat {
				return 1.0
			}
			return 0.5 * (1.0 + math.Cos(2*math.Pi*(d-flat)/alpha))
		})
	}
}

// NewTukey creates a new Tukey window with taper fraction alpha
func NewTukey(size int, zeroPhase bool, alpha float64) *Window {
	return NewFromGenerator(TypeTukey, Tukey(alpha), size, zeroPhase)
}
