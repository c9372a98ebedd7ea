package windowing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-stft/internal/testutil"
)

func allGenerators() map[string]Generator {
	return map[string]Generator{
		"rectangular":     Rectangular,
		"hann":            Hann,
		"hamming":         Hamming,
		"raised_cosine":   RaisedCosine(0.6),
		"cosine":          Cosine,
		"gaussian":        Gaussian(0.2),
		"blackman":        Blackman,
		"blackman_harris": BlackmanHarris,
		"kaiser":          Kaiser(6),
		"tukey":           Tukey(0.5),
		"bartlett":        Bartlett,
		"welch":           Welch,
	}
}

func TestOffset(t *testing.T) {
	got := make([]int, 8)
	for i := range got {
		got[i] = Offset(i, 8, true)
	}
	assert.Equal(t, []int{0, 1, 2, 3, -4, -3, -2, -1}, got)

	for i := range got {
		got[i] = Offset(i, 8, false)
	}
	assert.Equal(t, []int{-4, -3, -2, -1, 0, 1, 2, 3}, got)
}

func TestGenerators_Layout(t *testing.T) {
	const size = 16

	for name, gen := range allGenerators() {
		t.Run(name, func(t *testing.T) {
			zp := gen(size, true)
			start := gen(size, false)
			require.Len(t, zp, size)
			require.Len(t, start, size)
			testutil.AssertNoNaNOrInf(t, zp)

			// The zero-phase layout is the start-aligned layout rotated by size/2.
			testutil.AssertSliceInDelta(t, ZeroPhase(start), zp, testutil.WindowTolerance)

			// Zero-phase windows are even around index 0.
			for i := 1; i < size/2; i++ {
				assert.InDelta(t, zp[i], zp[size-i], testutil.WindowTolerance, "index %d", i)
			}

			// The center coefficient is the peak.
			for i, v := range zp {
				assert.LessOrEqual(t, v, zp[0]+testutil.WindowTolerance, "index %d", i)
			}
		})
	}
}

func TestGenerators_EmptySize(t *testing.T) {
	for name, gen := range allGenerators() {
		assert.Empty(t, gen(0, true), name)
	}
}

func TestHann_Values(t *testing.T) {
	w := Hann(8, true)
	assert.InDelta(t, 1.0, w[0], testutil.WindowTolerance)
	assert.InDelta(t, 0.0, w[4], testutil.WindowTolerance)
	assert.InDelta(t, 0.5, w[2], testutil.WindowTolerance)
	assert.InDelta(t, 0.5, w[6], testutil.WindowTolerance)

	start := Hann(8, false)
	assert.InDelta(t, 0.0, start[0], testutil.WindowTolerance)
	assert.InDelta(t, 1.0, start[4], testutil.WindowTolerance)
}

func TestRaisedCosine_HalfIsHann(t *testing.T) {
	testutil.AssertSliceInDelta(t, Hann(32, true), RaisedCosine(0.5)(32, true), testutil.WindowTolerance)
}

func TestTukey_Limits(t *testing.T) {
	testutil.AssertSliceInDelta(t, Rectangular(32, true), Tukey(0)(32, true), testutil.WindowTolerance)
	testutil.AssertSliceInDelta(t, Hann(32, true), Tukey(1)(32, true), testutil.WindowTolerance)
	testutil.AssertSliceInDelta(t, Hann(32, true), Tukey(3)(32, true), testutil.WindowTolerance)
}

func TestKaiser_ZeroBetaIsRectangular(t *testing.T) {
	testutil.AssertSliceInDelta(t, Rectangular(16, true), Kaiser(0)(16, true), testutil.WindowTolerance)
}

func TestBesselI0(t *testing.T) {
	assert.InDelta(t, 1.0, besselI0(0), 1e-12)
	assert.InDelta(t, 1.2660658777520082, besselI0(1), 1e-9)
	assert.InDelta(t, 27.239871823604442, besselI0(5), 1e-7)
}

// overlapSums returns the overlap-add sum of a zero-phase window at every phase of hop.
func overlapSums(w []float64, hop int) []float64 {
	sums := make([]float64, hop)
	for i, v := range w {
		off := Offset(i, len(w), true)
		sums[((off%hop)+hop)%hop] += v
	}
	return sums
}

func TestCOLA(t *testing.T) {
	const size = 64

	tests := []struct {
		name   string
		window []float64
		hop    int
		gain   float64
	}{
		{"rectangular at full hop", Rectangular(size, true), size, 1},
		{"rectangular at half hop", Rectangular(size, true), size / 2, 2},
		{"hann at half hop", Hann(size, true), size / 2, 1},
		{"hann at quarter hop", Hann(size, true), size / 4, 2},
		{"cosine squared at half hop", Product(Cosine(size, true), Cosine(size, true)), size / 2, 1},
		{"bartlett at half hop", Bartlett(size, true), size / 2, 1},
		{"hamming at half hop", Hamming(size, true), size / 2, 1.08},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for p, s := range overlapSums(tt.window, tt.hop) {
				assert.InDelta(t, tt.gain, s, 1e-9, "phase %d", p)
			}
			assert.InDelta(t, tt.gain, OverlapGain(tt.window, tt.hop), 1e-9)
		})
	}
}

func TestOverlapGain_InvalidHop(t *testing.T) {
	assert.Zero(t, OverlapGain(Hann(8, true), 0))
	assert.Zero(t, OverlapGain(nil, 4))
}

func TestProduct_SizeMismatch(t *testing.T) {
	assert.Nil(t, Product(Hann(8, true), Hann(16, true)))
}

func TestZeroPhase_DoesNotModifyInput(t *testing.T) {
	in := []float64{1, 2, 3, 4}
	out := ZeroPhase(in)
	assert.Equal(t, []float64{3, 4, 1, 2}, out)
	assert.Equal(t, []float64{1, 2, 3, 4}, in)
	assert.Empty(t, ZeroPhase(nil))
}

func TestLookup(t *testing.T) {
	for _, name := range Names() {
		gen, err := Lookup(name, 0)
		require.NoError(t, err, name)
		w := gen(16, true)
		assert.Len(t, w, 16, name)
		testutil.AssertNoNaNOrInf(t, w)
	}

	gen, err := Lookup("  HANN ", 0)
	require.NoError(t, err)
	testutil.AssertSliceInDelta(t, Hann(8, true), gen(8, true), testutil.WindowTolerance)

	gen, err = Lookup("", 0)
	require.NoError(t, err)
	testutil.AssertSliceInDelta(t, Rectangular(8, true), gen(8, true), testutil.WindowTolerance)

	gen, err = Lookup("gaussian", 0.3)
	require.NoError(t, err)
	testutil.AssertSliceInDelta(t, Gaussian(0.3)(8, true), gen(8, true), testutil.WindowTolerance)

	_, err = Lookup("triangle-ish", 0)
	assert.ErrorContains(t, err, "unknown window type")
}

func TestGaussian_DefaultSigma(t *testing.T) {
	w := Gaussian(-1)(16, true)
	assert.InDelta(t, math.Exp(-0.5*math.Pow(0.5/DefaultGaussianSigma, 2)), w[8], 1e-12)
}
