package windowing

// Welch generates a periodic Welch (parabolic) window
func Welch(size int, zeroPhase bool) []float64 {
	return generate(size, zeroPhase, func(x float64) float64 {
		r := 2.0 * x
		return 1.0 - r*r
	})
}

// NewWelch creates a new Welch window
func NewWelch(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeWelch, Welch, size, zeroPhase)
}
