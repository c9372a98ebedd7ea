package spectral

import (
	"fmt"
	"strings"

	"github.com/mjibson/go-dsp/fft"
	"github.com/tphakala/simd/f64"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Transform is a real-to-complex discrete Fourier transform pair of fixed size.
//
// Forward maps Len() real samples to Len()/2+1 complex bins, DC through
// Nyquist. Inverse is normalized so that Inverse(Forward(x)) reproduces x;
// the imaginary parts of the DC and Nyquist bins are ignored. Both accept a
// nil dst and allocate, or reuse a dst of the right length.
//
// Implementations keep internal scratch space and are not safe for
// concurrent use. Each worker owns its own instance.
type Transform interface {
	Len() int
	Forward(dst []complex128, src []float64) []complex128
	Inverse(dst []float64, src []complex128) []float64
}

// TransformFactory builds a Transform of size n.
type TransformFactory func(n int) Transform

// Names accepted by TransformByName.
const (
	TransformGonum = "gonum"
	TransformGoDSP = "go-dsp"
)

// TransformByName returns the factory registered under name. An empty name
// selects the gonum transform.
func TransformByName(name string) (TransformFactory, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", TransformGonum:
		return NewFourierTransform, nil
	case TransformGoDSP, "godsp":
		return NewGoDSPTransform, nil
	default:
		return nil, fmt.Errorf("unknown transform %q (known: %s, %s)", name, TransformGonum, TransformGoDSP)
	}
}

// FourierTransform wraps gonum's real FFT, which leaves the inverse
// unnormalized; Inverse scales by 1/n.
type FourierTransform struct {
	fft   *fourier.FFT
	n     int
	scale float64
}

// NewFourierTransform creates a gonum-backed transform of size n.
func NewFourierTransform(n int) Transform {
	return &FourierTransform{
		fft:   fourier.NewFFT(n),
		n:     n,
		scale: 1.0 / float64(n),
	}
}

func (t *FourierTransform) Len() int { return t.n }

func (t *FourierTransform) Forward(dst []complex128, src []float64) []complex128 {
	if len(dst) != Bins(t.n) {
		dst = nil
	}
	return t.fft.Coefficients(dst, src)
}

func (t *FourierTransform) Inverse(dst []float64, src []complex128) []float64 {
	if len(dst) != t.n {
		dst = make([]float64, t.n)
	}
	dst = t.fft.Sequence(dst, src)
	f64.Scale(dst, dst, t.scale)
	return dst
}

// GoDSPTransform wraps mjibson/go-dsp. go-dsp transforms full complex
// spectra, so Inverse rebuilds the negative frequencies from the Hermitian
// half before calling IFFT.
type GoDSPTransform struct {
	n    int
	full []complex128
}

// NewGoDSPTransform creates a go-dsp-backed transform of size n.
func NewGoDSPTransform(n int) Transform {
	return &GoDSPTransform{
		n:    n,
		full: make([]complex128, n),
	}
}

func (t *GoDSPTransform) Len() int { return t.n }

func (t *GoDSPTransform) Forward(dst []complex128, src []float64) []complex128 {
	bins := Bins(t.n)
	if len(dst) != bins {
		dst = make([]complex128, bins)
	}
	copy(dst, fft.FFTReal(src)[:bins])
	return dst
}

func (t *GoDSPTransform) Inverse(dst []float64, src []complex128) []float64 {
	if len(dst) != t.n {
		dst = make([]float64, t.n)
	}

	half := t.n / 2
	t.full[0] = complex(real(src[0]), 0)
	t.full[half] = complex(real(src[half]), 0)
	for k := 1; k < half; k++ {
		t.full[k] = src[k]
		t.full[t.n-k] = complex(real(src[k]), -imag(src[k]))
	}

	for i, v := range fft.IFFT(t.full) {
		dst[i] = real(v)
	}
	return dst
}
