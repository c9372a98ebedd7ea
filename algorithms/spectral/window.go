package spectral

import (
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
)

// Window is the window argument of Analyze and Synthesize: either an
// ExplicitWindow or a GeneratedWindow. A nil Window means rectangular.
// It is resolved into concrete zero-phase coefficients once per call.
type Window interface {
	resolve(n int) []float64
}

// ExplicitWindow is a caller-supplied coefficient sequence. It must already be
// zero-phase aligned (see windowing.ZeroPhase) and have exactly the transform
// size of the call it is used in.
type ExplicitWindow []float64

func (w ExplicitWindow) resolve(int) []float64 {
	return []float64(w)
}

// GeneratedWindow calls Generate with the transform size of the call.
// ZeroPhase is passed through to the generator; a start-aligned window
// shifts the phase reference of every frame to its first sample.
type GeneratedWindow struct {
	Generate  windowing.Generator
	ZeroPhase bool
}

func (w GeneratedWindow) resolve(n int) []float64 {
	if w.Generate == nil {
		return windowing.Rectangular(n, w.ZeroPhase)
	}
	return w.Generate(n, w.ZeroPhase)
}

// Generated wraps a generator as a zero-phase GeneratedWindow.
func Generated(gen windowing.Generator) GeneratedWindow {
	return GeneratedWindow{Generate: gen, ZeroPhase: true}
}

// resolveWindow produces the n coefficients for w and checks their count.
func resolveWindow(param string, w Window, n int) ([]float64, error) {
	if w == nil {
		return windowing.Rectangular(n, true), nil
	}

	coefficients := w.resolve(n)
	if len(coefficients) != n {
		return nil, configError(param, len(coefficients), "window length must equal the transform size")
	}
	return coefficients, nil
}
