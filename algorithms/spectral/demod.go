package spectral

import (
	"math"

	"github.com/tphakala/simd/c128"
)

// demodulate removes each band's center-frequency phase ramp: bin k of frame c
// is multiplied by exp(-i*(c*hop)*(k*pi/(n/2))). The band's time series is
// then left with only the phase due to its offset from the bin frequency.
func demodulate(s *Spectrum, n, hop int) {
	modulate(s, n, hop, -1)
}

// remodulate is the inverse of demodulate.
func remodulate(s *Spectrum, n, hop int) {
	modulate(s, n, hop, +1)
}

// modulate applies exp(sign*i*2*pi*c*hop*k/n) in place. The product c*hop*k is
// reduced modulo n in integers, so the phase stays exact for long signals.
func modulate(s *Spectrum, n, hop int, sign float64) {
	bins, frames := s.Dims()
	if frames == 0 {
		return
	}

	phasor := make([]complex128, frames)
	for k := range bins {
		for c := range frames {
			step := (c * hop % n) * k % n
			sin, cos := math.Sincos(2 * math.Pi * float64(step) / float64(n))
			phasor[c] = complex(cos, sign*sin)
		}

		band := s.Band(k)
		c128.Mul(band, band, phasor)
	}
}
