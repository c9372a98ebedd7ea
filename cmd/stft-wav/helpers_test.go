package main

import (
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RyanBlaney/sonido-stft/algorithms/spectral"
	"github.com/RyanBlaney/sonido-stft/algorithms/windowing"
	"github.com/RyanBlaney/sonido-stft/logging"
)

func TestMain(m *testing.M) {
	logging.SetGlobalLogger(nil)
	os.Exit(m.Run())
}

// stereoFixture returns two quantized 16-bit channels
func stereoFixture(frames int) *wavData {
	left := make([]float64, frames)
	right := make([]float64, frames)
	for i := range frames {
		left[i] = math.Round(0.5*math.Sin(2*math.Pi*float64(i)/37)*32767) / 32767
		right[i] = math.Round(0.25*math.Cos(2*math.Pi*float64(i)/11)*32767) / 32767
	}
	return &wavData{
		channels:   [][]float64{left, right},
		sampleRate: 44100,
		bitDepth:   16,
	}
}

func TestWAVRoundTrip(t *testing.T) {
	for _, bits := range []int{16, 24} {
		data := stereoFixture(500)
		data.bitDepth = bits
		path := filepath.Join(t.TempDir(), "roundtrip.wav")

		require.NoError(t, writeWAV(path, data))

		got, err := readWAV(path)
		require.NoError(t, err)

		assert.Equal(t, 44100, got.sampleRate)
		assert.Equal(t, bits, got.bitDepth)
		require.Len(t, got.channels, 2)
		require.Equal(t, 500, got.length())

		step := 1 / (math.Exp2(float64(bits-1)) - 1)
		for ch := range data.channels {
			assert.InDeltaSlice(t, data.channels[ch], got.channels[ch], step, "channel %d at %d bits", ch, bits)
		}
	}
}

func TestReadWAVInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "junk.wav")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a wave file"), 0o644))

	_, err := readWAV(path)
	assert.Error(t, err)

	_, err = readWAV(filepath.Join(t.TempDir(), "missing.wav"))
	assert.Error(t, err)
}

func TestWriteWAVErrors(t *testing.T) {
	dir := t.TempDir()

	err := writeWAV(filepath.Join(dir, "bits.wav"), &wavData{channels: [][]float64{{0}}, sampleRate: 8000, bitDepth: 12})
	assert.ErrorContains(t, err, "unsupported bit depth")

	ragged := &wavData{channels: [][]float64{{0, 0}, {0}}, sampleRate: 8000, bitDepth: 16}
	assert.Error(t, writeWAV(filepath.Join(dir, "ragged.wav"), ragged))
}

func TestQuantize(t *testing.T) {
	const maxVal = 32767.0

	assert.Equal(t, 0, quantize(0, maxVal))
	assert.Equal(t, 32767, quantize(1, maxVal))
	assert.Equal(t, 32767, quantize(3.5, maxVal))
	assert.Equal(t, -32768, quantize(-2, maxVal))
	assert.Equal(t, 16384, quantize(0.5, maxVal))
	assert.Equal(t, 0, quantize(math.NaN(), maxVal))
	assert.Equal(t, 32767, quantize(math.Inf(1), maxVal))
}

func TestParseArgs(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		opts, err := parseArgs([]string{"in.wav", "out.wav"})
		require.NoError(t, err)

		assert.Equal(t, *spectral.DefaultConfig(), opts.cfg)
		assert.Equal(t, "hann", opts.window)
		assert.Equal(t, "rectangular", opts.synthesisWindow)
		assert.Equal(t, "in.wav", opts.input)
		assert.Equal(t, "out.wav", opts.output)
		assert.True(t, opts.normalize)
		assert.Equal(t, logging.InfoLevel, opts.logLevel)
	})

	t.Run("flags", func(t *testing.T) {
		opts, err := parseArgs([]string{
			"-n", "1024", "-hop", "128", "-out-hop", "256", "-demod",
			"-transform", "go-dsp", "-workers", "3", "-window", "kaiser", "-window-param", "5",
			"-normalize=false", "-v", "a.wav", "b.wav",
		})
		require.NoError(t, err)

		assert.Equal(t, 1024, opts.cfg.FFTSize)
		assert.Equal(t, 128, opts.cfg.HopSize)
		assert.Equal(t, 0, opts.cfg.OutFFTSize)
		assert.Equal(t, 256, opts.cfg.OutHopSize)
		assert.True(t, opts.cfg.Demodulate)
		assert.Equal(t, spectral.TransformGoDSP, opts.cfg.Transform)
		assert.Equal(t, 3, opts.cfg.Workers)
		assert.Equal(t, "kaiser", opts.window)
		assert.Equal(t, 5.0, opts.windowParam)
		assert.False(t, opts.normalize)
		assert.Equal(t, logging.DebugLevel, opts.logLevel)
	})

	t.Run("log level", func(t *testing.T) {
		opts, err := parseArgs([]string{"-log-level", "WARN", "in.wav", "out.wav"})
		require.NoError(t, err)
		assert.Equal(t, logging.WarnLevel, opts.logLevel)

		opts, err = parseArgs([]string{"-log-level", "error", "-v", "in.wav", "out.wav"})
		require.NoError(t, err)
		assert.Equal(t, logging.DebugLevel, opts.logLevel)

		_, err = parseArgs([]string{"-log-level", "chatty", "in.wav", "out.wav"})
		assert.ErrorContains(t, err, "unknown log level")
	})

	t.Run("config file with override", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "stft.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fft_size": 256, "hop_size": 64, "out_hop_size": 32, "demodulate": true}`), 0o644))

		opts, err := parseArgs([]string{"-config", path, "-hop", "128", "in.wav", "out.wav"})
		require.NoError(t, err)

		assert.Equal(t, 256, opts.cfg.FFTSize)
		assert.Equal(t, 128, opts.cfg.HopSize)
		assert.Equal(t, 32, opts.cfg.OutHopSize)
		assert.True(t, opts.cfg.Demodulate)
	})

	t.Run("bad config file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"fft_size": `), 0o644))

		_, err := parseArgs([]string{"-config", path, "in.wav", "out.wav"})
		assert.ErrorContains(t, err, "failed to parse config")
	})

	t.Run("missing arguments", func(t *testing.T) {
		_, err := parseArgs([]string{"-n", "64", "only.wav"})
		assert.ErrorIs(t, err, errUsage)
	})
}

func TestProcessIdentity(t *testing.T) {
	in := stereoFixture(300)
	opts := &options{
		cfg:             spectral.Config{FFTSize: 16, HopSize: 8, Workers: 2},
		window:          "hann",
		synthesisWindow: "rectangular",
	}

	out, err := process(in, opts, &logging.NoOpLogger{})
	require.NoError(t, err)

	require.Len(t, out.channels, 2)
	assert.Equal(t, in.sampleRate, out.sampleRate)
	assert.Equal(t, in.bitDepth, out.bitDepth)
	for ch := range in.channels {
		require.Len(t, out.channels[ch], len(in.channels[ch]))
		assert.InDeltaSlice(t, in.channels[ch], out.channels[ch], 1e-9, "channel %d", ch)
	}
}

func TestProcessNormalize(t *testing.T) {
	in := stereoFixture(300)
	opts := &options{
		cfg:             spectral.Config{FFTSize: 16, HopSize: 8},
		window:          "rectangular",
		synthesisWindow: "rectangular",
	}

	raw, err := process(in, opts, &logging.NoOpLogger{})
	require.NoError(t, err)

	opts.normalize = true
	normalized, err := process(in, opts, &logging.NoOpLogger{})
	require.NoError(t, err)

	for i := range in.channels[0] {
		assert.InDelta(t, 2*in.channels[0][i], raw.channels[0][i], 1e-9)
		assert.InDelta(t, in.channels[0][i], normalized.channels[0][i], 1e-9)
	}
}

func TestProcessStretch(t *testing.T) {
	in := stereoFixture(101)
	opts := &options{
		cfg:             spectral.Config{FFTSize: 16, HopSize: 4, OutHopSize: 8},
		window:          "hann",
		synthesisWindow: "hann",
		normalize:       true,
	}

	out, err := process(in, opts, &logging.NoOpLogger{})
	require.NoError(t, err)

	want := spectral.OutputLength(spectral.FrameCount(101, 4), 8)
	for ch := range out.channels {
		assert.Len(t, out.channels[ch], want)
	}
}

func TestProcessErrors(t *testing.T) {
	in := stereoFixture(64)

	_, err := process(in, &options{cfg: spectral.Config{FFTSize: 15, HopSize: 4}}, &logging.NoOpLogger{})
	assert.ErrorIs(t, err, spectral.ErrConfiguration)

	_, err = process(in, &options{cfg: spectral.Config{FFTSize: 16, HopSize: 4}, window: "triangle-ish"}, &logging.NoOpLogger{})
	assert.ErrorContains(t, err, "analysis window")

	_, err = process(in, &options{cfg: spectral.Config{FFTSize: 16, HopSize: 4}, synthesisWindow: "nope"}, &logging.NoOpLogger{})
	assert.ErrorContains(t, err, "synthesis window")

	_, err = process(in, &options{cfg: spectral.Config{FFTSize: 16, HopSize: 4, Transform: "fftw"}}, &logging.NoOpLogger{})
	assert.Error(t, err)
}

func TestNormalizationGain(t *testing.T) {
	hann := windowing.NewHann(16, true)
	assert.InDelta(t, 0.5, normalizationGain(hann, windowing.NewRectangular(16, true), 4), 1e-12)
	assert.InDelta(t, 1/1.5, normalizationGain(hann, hann, 4), 1e-12)

	assert.Equal(t, 1.0, normalizationGain(hann, windowing.NewHann(32, true), 4))
	assert.Equal(t, 1.0, normalizationGain(hann, hann, 0))
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	outPath := filepath.Join(dir, "out.wav")

	in := stereoFixture(1000)
	require.NoError(t, writeWAV(inPath, in))

	err := run([]string{"-n", "8", "-hop", "4", "-window", "hann", inPath, outPath}, io.Discard)
	require.NoError(t, err)

	out, err := readWAV(outPath)
	require.NoError(t, err)
	require.Len(t, out.channels, 2)
	for ch := range in.channels {
		assert.InDeltaSlice(t, in.channels[ch], out.channels[ch], 1.0/32767, "channel %d", ch)
	}
}

func TestRunNormalizesByDefault(t *testing.T) {
	dir := t.TempDir()
	inPath := filepath.Join(dir, "in.wav")
	in := stereoFixture(1000)
	require.NoError(t, writeWAV(inPath, in))

	// Hann analysis with rectangular synthesis overlap-adds to 2 at a quarter hop
	normalized := filepath.Join(dir, "normalized.wav")
	require.NoError(t, run([]string{"-n", "16", "-hop", "4", inPath, normalized}, io.Discard))

	raw := filepath.Join(dir, "raw.wav")
	require.NoError(t, run([]string{"-n", "16", "-hop", "4", "-normalize=false", inPath, raw}, io.Discard))

	gotNormalized, err := readWAV(normalized)
	require.NoError(t, err)
	gotRaw, err := readWAV(raw)
	require.NoError(t, err)

	// Half a frame at each end misses frames centered outside the signal
	for ch := range in.channels {
		for i := 8; i < len(in.channels[ch])-8; i++ {
			assert.InDelta(t, in.channels[ch][i], gotNormalized.channels[ch][i], 1.0/32767, "channel %d sample %d", ch, i)
			assert.InDelta(t, 2*in.channels[ch][i], gotRaw.channels[ch][i], 2.0/32767, "channel %d sample %d", ch, i)
		}
	}
}
