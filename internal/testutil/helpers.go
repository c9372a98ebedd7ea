// Package testutil provides numeric assertion helpers shared by the package tests.
package testutil

import (
	"math"
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Default tolerances for the spectral round-trip tests.
const (
	DefaultTolerance = 1e-9
	WindowTolerance  = 1e-12
)

// AssertSliceInDelta verifies equal lengths and an elementwise absolute
// difference of at most delta. It reports only the first offending index.
func AssertSliceInDelta(t *testing.T, expected, actual []float64, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected), msgAndArgs...) {
		return false
	}
	for i := range expected {
		if math.Abs(expected[i]-actual[i]) > delta {
			return assert.Fail(t, "slices differ",
				"index %d: expected %v, actual %v (delta %v)", i, expected[i], actual[i], delta)
		}
	}
	return true
}

// AssertComplexInDelta verifies that two complex values are within delta of each other.
func AssertComplexInDelta(t *testing.T, expected, actual complex128, delta float64, msgAndArgs ...any) bool {
	t.Helper()
	if cmplx.Abs(expected-actual) > delta {
		return assert.Fail(t, "complex values differ",
			"expected %v, actual %v (delta %v)", expected, actual, delta)
	}
	return true
}

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// Ramp returns a deterministic, non-periodic test signal of length n.
func Ramp(n int) []float64 {
	x := make([]float64, n)
	for i := range x {
		x[i] = math.Sin(0.37*float64(i)) + 0.01*float64(i) - 0.5*math.Cos(1.91*float64(i))
	}
	return x
}

// PadTo returns a copy of x zero-extended (or truncated) to length n.
func PadTo(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)
	return out
}
