// Command stft-wav runs a WAV file through short-time Fourier analysis and
// overlap-add resynthesis, one channel at a time.
//
// Usage:
//
//	stft-wav -n 2048 -hop 512 -window hann input.wav output.wav
//	stft-wav -n 1024 -hop 256 -out-hop 512 -window cosine -synthesis-window cosine in.wav slow.wav
//	stft-wav -config stft.json -demod -log-level debug input.wav output.wav
//
// With matching analysis and synthesis geometry and a constant-overlap-add
// window pair the output reproduces the input. The overlap gain of the window
// pair is divided out unless -normalize=false is given; it is only known when
// -out-n equals -n. A larger -out-hop stretches time.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-stft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
)

const minRequiredArgs = 2

var errUsage = errors.New("insufficient arguments")

// options holds everything parsed from the command line
type options struct {
	cfg             spectral.Config
	window          string
	synthesisWindow string
	windowParam     float64
	normalize       bool
	logLevel        logging.Level
	input           string
	output          string
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		logging.Fatal(err, "stft-wav failed")
	}
}

func run(args []string, stdout io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}

	logger := logging.WithFields(logging.Fields{"component": "stft-wav"})
	logger.SetLevel(opts.logLevel)

	start := time.Now()

	in, err := readWAV(opts.input)
	if err != nil {
		return err
	}
	logger.Debug("Read input", logging.Fields{
		"path":        opts.input,
		"sample_rate": in.sampleRate,
		"channels":    len(in.channels),
		"bit_depth":   in.bitDepth,
		"samples":     in.length(),
	})

	out, err := process(in, opts, logger)
	if err != nil {
		return err
	}

	if err := writeWAV(opts.output, out); err != nil {
		return err
	}

	cfg := opts.cfg.Resolved()
	fmt.Fprintf(stdout, "Processed %s -> %s\n", filepath.Base(opts.input), filepath.Base(opts.output))
	fmt.Fprintf(stdout, "  fft %d/%d, hop %d/%d, window %s/%s, demod %t\n",
		cfg.FFTSize, cfg.OutFFTSize, cfg.HopSize, cfg.OutHopSize,
		opts.window, opts.synthesisWindow, cfg.Demodulate)
	fmt.Fprintf(stdout, "  %d samples -> %d samples (%d channels) in %s\n",
		in.length(), out.length(), len(in.channels), time.Since(start).Round(time.Millisecond))

	return nil
}

func parseArgs(args []string) (*options, error) {
	defaults := spectral.DefaultConfig()

	fs := flag.NewFlagSet("stft-wav", flag.ContinueOnError)
	configPath := fs.String("config", "", "JSON file with a spectral configuration; flags given explicitly override it")
	n := fs.Int("n", defaults.FFTSize, "Analysis transform size (even)")
	hop := fs.Int("hop", defaults.HopSize, "Analysis hop size")
	outN := fs.Int("out-n", 0, "Synthesis transform size (0 = same as -n)")
	outHop := fs.Int("out-hop", 0, "Synthesis hop size (0 = same as -hop)")
	demod := fs.Bool("demod", false, "Phase-demodulate bands between analysis and synthesis")
	workers := fs.Int("workers", 0, "Worker goroutines per channel (0 = automatic)")
	transform := fs.String("transform", spectral.TransformGonum, "FFT implementation: gonum or go-dsp")
	window := fs.String("window", string(windowing.TypeHann), "Analysis window ("+strings.Join(windowing.Names(), ", ")+")")
	synthesisWindow := fs.String("synthesis-window", string(windowing.TypeRectangular), "Synthesis window")
	windowParam := fs.Float64("window-param", 0, "Shape parameter for gaussian, kaiser, tukey and raised_cosine windows (0 = default)")
	normalize := fs.Bool("normalize", true, "Divide the output by the overlap gain of the window pair (only when -out-n equals -n)")
	logLevel := fs.String("log-level", "info", "Minimum log level: debug, info, warn, error")
	verbose := fs.Bool("v", false, "Verbose output (same as -log-level debug)")

	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: stft-wav [options] input.wav output.wav\n\nOptions:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < minRequiredArgs {
		fs.Usage()
		return nil, errUsage
	}

	level, ok := logging.ParseLevel(strings.ToLower(*logLevel))
	if !ok {
		return nil, fmt.Errorf("unknown log level %q", *logLevel)
	}
	if *verbose {
		level = logging.DebugLevel
	}

	cfg := *defaults
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			return nil, err
		}
		cfg = *loaded
	}

	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configPath == "" || set["n"] {
		cfg.FFTSize = *n
	}
	if *configPath == "" || set["hop"] {
		cfg.HopSize = *hop
	}
	if set["out-n"] {
		cfg.OutFFTSize = *outN
	}
	if set["out-hop"] {
		cfg.OutHopSize = *outHop
	}
	if set["demod"] {
		cfg.Demodulate = *demod
	}
	if set["workers"] {
		cfg.Workers = *workers
	}
	if set["transform"] {
		cfg.Transform = *transform
	}

	return &options{
		cfg:             cfg,
		window:          *window,
		synthesisWindow: *synthesisWindow,
		windowParam:     *windowParam,
		normalize:       *normalize,
		logLevel:        level,
		input:           fs.Arg(0),
		output:          fs.Arg(1),
	}, nil
}

func loadConfig(path string) (*spectral.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := spectral.DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// process resynthesizes every channel of in with the geometry in opts.
func process(in *wavData, opts *options, logger logging.Logger) (*wavData, error) {
	cfg := opts.cfg.Resolved()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	analysis, err := windowing.New(opts.window, cfg.FFTSize, true, opts.windowParam)
	if err != nil {
		return nil, fmt.Errorf("analysis window: %w", err)
	}
	synthesis, err := windowing.New(opts.synthesisWindow, cfg.OutFFTSize, true, opts.windowParam)
	if err != nil {
		return nil, fmt.Errorf("synthesis window: %w", err)
	}

	engineOpts, err := cfg.Options()
	if err != nil {
		return nil, err
	}
	engine := spectral.NewSTFT(append(engineOpts, spectral.WithLogger(logger))...)

	gain := 1.0
	if opts.normalize {
		gain = normalizationGain(analysis, synthesis, cfg.OutHopSize)
		logger.Debug("Normalizing output", logging.Fields{"gain": gain})
	}

	out := &wavData{
		channels:   make([][]float64, len(in.channels)),
		sampleRate: in.sampleRate,
		bitDepth:   in.bitDepth,
	}

	for ch, samples := range in.channels {
		if len(samples) == 0 {
			out.channels[ch] = []float64{}
			continue
		}

		y, err := engine.Resynthesize(samples, cfg,
			spectral.ExplicitWindow(analysis.GetCoefficients()),
			spectral.ExplicitWindow(synthesis.GetCoefficients()))
		if err != nil {
			return nil, fmt.Errorf("channel %d: %w", ch, err)
		}

		// Without a time change the tail past the input is zero padding
		if cfg.OutHopSize == cfg.HopSize && len(y) > len(samples) {
			y = y[:len(samples)]
		}
		floats.Scale(gain, y)
		out.channels[ch] = y
	}

	return out, nil
}

// normalizationGain returns the reciprocal of the overlap gain of the window
// product at the synthesis hop, or 1 when it is undefined.
func normalizationGain(analysis, synthesis *windowing.Window, outHop int) float64 {
	if analysis.GetSize() != synthesis.GetSize() {
		return 1
	}

	product := windowing.Product(analysis.GetCoefficients(), synthesis.GetCoefficients())
	overlap := windowing.OverlapGain(product, outHop)
	if overlap <= 0 {
		return 1
	}
	return 1 / overlap
}
