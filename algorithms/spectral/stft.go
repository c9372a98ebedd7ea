package spectral

import (
	"runtime"
	"sync"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-stft/logging"
)

// STFT provides short-time Fourier analysis and overlap-add resynthesis.
//
// An STFT holds no per-call state and may be shared between goroutines.
type STFT struct {
	newTransform TransformFactory
	workers      int
	logger       logging.Logger
}

// Option configures an STFT.
type Option func(*STFT)

// WithWorkers sets the number of goroutines used per call. 1 processes frames
// sequentially; 0 or less picks a count from the CPU count and frame count.
func WithWorkers(n int) Option {
	return func(s *STFT) {
		s.workers = n
	}
}

// WithTransform selects the FFT implementation.
func WithTransform(factory TransformFactory) Option {
	return func(s *STFT) {
		if factory != nil {
			s.newTransform = factory
		}
	}
}

// WithLogger replaces the component logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *STFT) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSTFT creates a new STFT calculator
func NewSTFT(opts ...Option) *STFT {
	s := &STFT{
		newTransform: NewFourierTransform,
		logger: logging.WithFields(logging.Fields{
			"component": "stft",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze computes the short-time Fourier transform of x with transform size
// n and hop size hop.
//
// Frame c is centered on x[c*hop]. Its samples are placed circularly:
// x[c*hop : c*hop+n/2] fill the first half of the frame and the n/2 samples
// before the center wrap to the tail, with zeros wherever the frame runs past
// either end of x. Each frame is multiplied by the zero-phase window and
// transformed into one column of the result, which has n/2+1 rows and
// FrameCount(len(x), hop) columns.
//
// With demod each band is phase-demodulated by its center frequency (see
// Synthesize). An empty x yields a single all-zero frame. Invalid n, hop or a
// window of the wrong length return a *ConfigurationError before any frame is
// processed.
func (s *STFT) Analyze(x []float64, n, hop int, w Window, demod bool) (*Spectrum, error) {
	logger := s.logger.WithFields(logging.Fields{
		"function":      "Analyze",
		"fft_size":      n,
		"hop_size":      hop,
		"signal_length": len(x),
	})

	window, err := validateAnalysis(n, hop, w)
	if err != nil {
		logger.Error(err, "Invalid analysis configuration")
		return nil, err
	}

	frames := FrameCount(len(x), hop)
	spectrum := NewSpectrum(Bins(n), frames)

	s.forEachFrame(frames, func() func(int) {
		transform := s.newTransform(n)
		frame := make([]float64, n)
		bins := make([]complex128, Bins(n))

		return func(c int) {
			gatherFrame(frame, x, c*hop)
			floats.Mul(frame, window)
			bins = transform.Forward(bins, frame)
			spectrum.setFrame(c, bins)
		}
	})

	if demod {
		demodulate(spectrum, n, hop)
	}

	logger.Debug("Analysis complete", logging.Fields{
		"frames": frames,
		"bins":   spectrum.Bins(),
	})

	return spectrum, nil
}

// Synthesize inverts a spectrum produced by Analyze with transform size n and
// hop hop, resynthesizing frames of size outN spaced outHop apart.
//
// Each column is truncated or zero-padded to outN/2+1 bins, inverse
// transformed, multiplied by the zero-phase synthesis window and added into
// the output around sample c*outHop. The output has
// OutputLength(frames, outHop) samples. With demod the phase ramps removed by
// Analyze are restored first; spec itself is not modified.
//
// Reconstruction is exact only when the product of the analysis and synthesis
// windows is constant-overlap-add at the hop; otherwise the result is
// amplitude-modulated. This is not checked. The first and last frames are not
// corrected for the zero padding under the window. An outHop that is neither
// a multiple nor a divisor of hop is accepted but logged as experimental.
func (s *STFT) Synthesize(spec *Spectrum, n, hop, outN, outHop int, w Window, demod bool) ([]float64, error) {
	logger := s.logger.WithFields(logging.Fields{
		"function":     "Synthesize",
		"fft_size":     n,
		"hop_size":     hop,
		"out_fft_size": outN,
		"out_hop_size": outHop,
	})

	window, err := validateSynthesis(spec, n, hop, outN, outHop, w)
	if err != nil {
		logger.Error(err, "Invalid synthesis configuration")
		return nil, err
	}

	if outHop%hop != 0 && hop%outHop != 0 {
		logger.Warn("Hop ratio is not an integer; time-stretched output is experimental")
	}

	frames := spec.Frames()
	length := OutputLength(frames, outHop)

	src := spec
	if demod {
		src = spec.Clone()
		remodulate(src, n, hop)
	}

	outBins := Bins(outN)
	copyBins := min(src.Bins(), outBins)

	var accumulators [][]float64
	s.forEachFrame(frames, func() func(int) {
		transform := s.newTransform(outN)
		acc := make([]float64, length)
		accumulators = append(accumulators, acc)
		column := make([]complex128, src.Bins())
		bins := make([]complex128, outBins)
		frame := make([]float64, outN)

		return func(c int) {
			column = src.Frame(column, c)
			clear(bins)
			copy(bins, column[:copyBins])
			frame = transform.Inverse(frame, bins)
			floats.Mul(frame, window)
			scatterAddFrame(acc, frame, c*outHop)
		}
	})

	out := make([]float64, length)
	for _, acc := range accumulators {
		floats.Add(out, acc)
	}

	logger.Debug("Synthesis complete", logging.Fields{
		"frames":        frames,
		"output_length": length,
	})

	return out, nil
}

// Resynthesize analyzes x and synthesizes it back using the geometry in cfg.
// A non-zero cfg.Workers or non-empty cfg.Transform overrides the engine's
// own setting for this call; zero values keep it.
func (s *STFT) Resynthesize(x []float64, cfg Config, analysis, synthesis Window) ([]float64, error) {
	cfg = cfg.Resolved()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	engine, err := s.withConfig(cfg)
	if err != nil {
		return nil, err
	}

	spectrum, err := engine.Analyze(x, cfg.FFTSize, cfg.HopSize, analysis, cfg.Demodulate)
	if err != nil {
		return nil, err
	}

	return engine.Synthesize(spectrum, cfg.FFTSize, cfg.HopSize, cfg.OutFFTSize, cfg.OutHopSize, synthesis, cfg.Demodulate)
}

// withConfig returns a copy of s with the engine settings set in cfg applied.
func (s *STFT) withConfig(cfg Config) (*STFT, error) {
	derived := *s
	if cfg.Workers != 0 {
		derived.workers = cfg.Workers
	}
	if cfg.Transform != "" {
		factory, err := TransformByName(cfg.Transform)
		if err != nil {
			return nil, err
		}
		derived.newTransform = factory
	}
	return &derived, nil
}

// Analyze runs STFT.Analyze on a default engine.
func Analyze(x []float64, n, hop int, w Window, demod bool) (*Spectrum, error) {
	return NewSTFT().Analyze(x, n, hop, w, demod)
}

// Synthesize runs STFT.Synthesize on a default engine.
func Synthesize(spec *Spectrum, n, hop, outN, outHop int, w Window, demod bool) ([]float64, error) {
	return NewSTFT().Synthesize(spec, n, hop, outN, outHop, w, demod)
}

func validateAnalysis(n, hop int, w Window) ([]float64, error) {
	if err := validateTransformSize("fft size", n); err != nil {
		return nil, err
	}
	if err := validateHop("hop size", hop); err != nil {
		return nil, err
	}
	return resolveWindow("analysis window", w, n)
}

func validateSynthesis(spec *Spectrum, n, hop, outN, outHop int, w Window) ([]float64, error) {
	if err := validateTransformSize("fft size", n); err != nil {
		return nil, err
	}
	if err := validateHop("hop size", hop); err != nil {
		return nil, err
	}
	if err := validateTransformSize("output fft size", outN); err != nil {
		return nil, err
	}
	if err := validateHop("output hop size", outHop); err != nil {
		return nil, err
	}
	if spec == nil {
		return nil, configError("spectrum bins", 0, "spectrum must not be nil")
	}
	if spec.Bins() != Bins(n) {
		return nil, configError("spectrum bins", spec.Bins(), "bin count must be fft size/2+1")
	}
	return resolveWindow("synthesis window", w, outN)
}

// forEachFrame calls a per-worker frame function for every frame index.
// newWorker runs on the calling goroutine, once per worker, and returns the
// function that worker applies to its frames.
func (s *STFT) forEachFrame(frames int, newWorker func() func(c int)) {
	if frames == 0 {
		return
	}

	numWorkers := s.workerCount(frames)
	if numWorkers == 1 {
		process := newWorker()
		for c := range frames {
			process(c)
		}
		return
	}

	jobs := make(chan int, frames)
	for c := range frames {
		jobs <- c
	}
	close(jobs)

	var wg sync.WaitGroup
	for range numWorkers {
		process := newWorker()
		wg.Add(1)
		go func() {
			defer wg.Done()
			for c := range jobs {
				process(c)
			}
		}()
	}
	wg.Wait()
}

// workerCount determines the number of workers for a call
func (s *STFT) workerCount(frames int) int {
	if s.workers > 0 {
		return min(s.workers, frames)
	}

	numCPU := runtime.NumCPU()

	// For small workloads, don't over-parallelize
	if frames < 100 {
		return max(1, min(numCPU/2, frames))
	}

	// For medium workloads, use most CPUs
	if frames < 1000 {
		return min(numCPU, 8)
	}

	return numCPU
}
