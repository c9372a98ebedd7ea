package spectral

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Spectrum is the complex time-frequency matrix produced by Analyze: one row
// per frequency bin (DC through Nyquist) and one column per frame. Storage is
// row-major, so a Band is contiguous.
type Spectrum struct {
	bins   int
	frames int
	data   []complex128
}

// NewSpectrum allocates a zero spectrum of the given shape.
func NewSpectrum(bins, frames int) *Spectrum {
	if bins < 0 || frames < 0 {
		panic(fmt.Sprintf("spectral: negative spectrum shape %dx%d", bins, frames))
	}
	return &Spectrum{
		bins:   bins,
		frames: frames,
		data:   make([]complex128, bins*frames),
	}
}

// SpectrumFromMatrix copies a gonum complex matrix, rows being bins and
// columns frames.
func SpectrumFromMatrix(m mat.CMatrix) *Spectrum {
	bins, frames := m.Dims()
	s := NewSpectrum(bins, frames)
	for k := range bins {
		row := s.Band(k)
		for c := range frames {
			row[c] = m.At(k, c)
		}
	}
	return s
}

// Dims returns the number of bins and frames.
func (s *Spectrum) Dims() (bins, frames int) { return s.bins, s.frames }

// Bins returns the number of frequency bins.
func (s *Spectrum) Bins() int { return s.bins }

// Frames returns the number of frames.
func (s *Spectrum) Frames() int { return s.frames }

// At returns bin k of frame c.
func (s *Spectrum) At(k, c int) complex128 {
	return s.data[s.index(k, c)]
}

// Set stores v at bin k of frame c.
func (s *Spectrum) Set(k, c int, v complex128) {
	s.data[s.index(k, c)] = v
}

func (s *Spectrum) index(k, c int) int {
	if k < 0 || k >= s.bins || c < 0 || c >= s.frames {
		panic(fmt.Sprintf("spectral: index (%d, %d) out of range for %dx%d spectrum", k, c, s.bins, s.frames))
	}
	return k*s.frames + c
}

// Band returns the time series of bin k across all frames. The slice aliases
// the spectrum's storage.
func (s *Spectrum) Band(k int) []complex128 {
	if k < 0 || k >= s.bins {
		panic(fmt.Sprintf("spectral: band %d out of range [0, %d)", k, s.bins))
	}
	return s.data[k*s.frames : (k+1)*s.frames : (k+1)*s.frames]
}

// Frame copies the bins of frame c into dst, allocating when dst is too short.
func (s *Spectrum) Frame(dst []complex128, c int) []complex128 {
	if c < 0 || c >= s.frames {
		panic(fmt.Sprintf("spectral: frame %d out of range [0, %d)", c, s.frames))
	}
	if len(dst) < s.bins {
		dst = make([]complex128, s.bins)
	}
	dst = dst[:s.bins]
	for k := range s.bins {
		dst[k] = s.data[k*s.frames+c]
	}
	return dst
}

// setFrame stores bins as column c. Frames are disjoint, so concurrent calls
// for distinct c are safe.
func (s *Spectrum) setFrame(c int, bins []complex128) {
	for k, v := range bins[:s.bins] {
		s.data[k*s.frames+c] = v
	}
}

// Clone returns a deep copy.
func (s *Spectrum) Clone() *Spectrum {
	clone := &Spectrum{bins: s.bins, frames: s.frames, data: make([]complex128, len(s.data))}
	copy(clone.data, s.data)
	return clone
}

// Matrix returns a gonum view of the spectrum. It shares storage with s.
func (s *Spectrum) Matrix() *mat.CDense {
	if len(s.data) == 0 {
		return &mat.CDense{}
	}
	return mat.NewCDense(s.bins, s.frames, s.data)
}

// Magnitude returns |X| as a bins x frames matrix of rows.
func (s *Spectrum) Magnitude() [][]float64 {
	return s.mapReal(cmplx.Abs)
}

// Power returns |X|^2 as a bins x frames matrix of rows.
func (s *Spectrum) Power() [][]float64 {
	return s.mapReal(func(v complex128) float64 {
		re, im := real(v), imag(v)
		return re*re + im*im
	})
}

// Phase returns arg(X) in radians as a bins x frames matrix of rows.
func (s *Spectrum) Phase() [][]float64 {
	return s.mapReal(cmplx.Phase)
}

func (s *Spectrum) mapReal(fn func(complex128) float64) [][]float64 {
	out := make([][]float64, s.bins)
	for k := range s.bins {
		row := make([]float64, s.frames)
		for c, v := range s.Band(k) {
			row[c] = fn(v)
		}
		out[k] = row
	}
	return out
}
