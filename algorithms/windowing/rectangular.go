package windowing

// Rectangular generates a rectangular (boxcar) window. Both layouts are identical.
func Rectangular(size int, zeroPhase bool) []float64 {
	return generate(size, zeroPhase, func(float64) float64 { return 1.0 })
}

// NewRectangular creates a new rectangular window
func NewRectangular(size int, zeroPhase bool) *Window {
	return NewFromGenerator(TypeRectangular, Rectangular, size, zeroPhase)
}
