package windowing

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// Window is a generated window of fixed size with precomputed coefficients.
type Window struct {
	windowType   Type
	size         int
	zeroPhase    bool
	coefficients []float64
}

// New creates a window by name. param is the shape parameter of parametric
// windows; 0 selects the default (see Lookup).
func New(name string, size int, zeroPhase bool, param float64) (*Window, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}

	gen, err := Lookup(string(t), param)
	if err != nil {
		return nil, err
	}

	return NewFromGenerator(t, gen, size, zeroPhase), nil
}

// NewFromGenerator creates a window of the given size from gen, labelled t.
func NewFromGenerator(t Type, gen Generator, size int, zeroPhase bool) *Window {
	return &Window{
		windowType:   t,
		size:         size,
		zeroPhase:    zeroPhase,
		coefficients: gen(size, zeroPhase),
	}
}

// Apply applies the window to a signal (creates new array).
// It returns nil when the lengths differ.
func (w *Window) Apply(signal []float64) []float64 {
	if len(signal) != w.size {
		return nil
	}

	windowed := make([]float64, w.size)
	floats.MulTo(windowed, signal, w.coefficients)
	return windowed
}

// ApplyInPlace applies the window to a signal in-place
func (w *Window) ApplyInPlace(signal []float64) error {
	if len(signal) != w.size {
		return fmt.Errorf("signal length (%d) doesn't match window size (%d)", len(signal), w.size)
	}

	floats.Mul(signal, w.coefficients)
	return nil
}

// GetCoefficients returns a copy of the window coefficients
func (w *Window) GetCoefficients() []float64 {
	coeffs := make([]float64, len(w.coefficients))
	copy(coeffs, w.coefficients)
	return coeffs
}

// GetSize returns the window size
func (w *Window) GetSize() int {
	return w.size
}

// GetType returns the window type
func (w *Window) GetType() Type {
	return w.windowType
}

// IsZeroPhase reports whether the coefficients are in zero-phase layout
func (w *Window) IsZeroPhase() bool {
	return w.zeroPhase
}
