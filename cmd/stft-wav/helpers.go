package main

import (
	"fmt"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

// wavFormatPCM is the WAVE format tag for integer PCM
const wavFormatPCM = 1

// wavData holds deinterleaved samples scaled to [-1, 1].
type wavData struct {
	channels   [][]float64
	sampleRate int
	bitDepth   int
}

// length returns the number of samples per channel
func (w *wavData) length() int {
	if len(w.channels) == 0 {
		return 0
	}
	return len(w.channels[0])
}

// fullScale returns the largest positive sample value of a PCM bit depth.
func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Exp2(float64(bitDepth-1)) - 1, nil
	default:
		return 0, fmt.Errorf("unsupported bit depth: %d", bitDepth)
	}
}

// readWAV decodes a PCM WAV file into per-channel float samples.
func readWAV(path string) (*wavData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer f.Close()

	decoder := wav.NewDecoder(f)
	if !decoder.IsValidFile() {
		return nil, fmt.Errorf("invalid WAV file: %s", path)
	}

	buf, err := decoder.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("could not read PCM buffer: %w", err)
	}

	bitDepth := int(decoder.BitDepth)
	maxVal, err := fullScale(bitDepth)
	if err != nil {
		return nil, err
	}

	numChannels := buf.Format.NumChannels
	if numChannels <= 0 {
		return nil, fmt.Errorf("invalid channel count %d in %s", numChannels, path)
	}

	frames := len(buf.Data) / numChannels
	channels := make([][]float64, numChannels)
	for ch := range channels {
		channels[ch] = make([]float64, frames)
	}
	for i := range frames {
		for ch := range numChannels {
			channels[ch][i] = float64(buf.Data[i*numChannels+ch]) / maxVal
		}
	}

	return &wavData{
		channels:   channels,
		sampleRate: buf.Format.SampleRate,
		bitDepth:   bitDepth,
	}, nil
}

// writeWAV encodes data as an integer PCM WAV file, clipping out-of-range samples.
func writeWAV(path string, data *wavData) error {
	maxVal, err := fullScale(data.bitDepth)
	if err != nil {
		return err
	}

	numChannels := len(data.channels)
	frames := data.length()
	ints := make([]int, frames*numChannels)
	for ch, samples := range data.channels {
		if len(samples) != frames {
			return fmt.Errorf("channel %d has %d samples, expected %d", ch, len(samples), frames)
		}
		for i, v := range samples {
			ints[i*numChannels+ch] = quantize(v, maxVal)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}

	encoder := wav.NewEncoder(f, data.sampleRate, data.bitDepth, numChannels, wavFormatPCM)
	buf := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: numChannels,
			SampleRate:  data.sampleRate,
		},
		Data:           ints,
		SourceBitDepth: data.bitDepth,
	}

	if err := encoder.Write(buf); err != nil {
		_ = f.Close()
		return fmt.Errorf("data writing error: %w", err)
	}
	if err := encoder.Close(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to finalize WAV: %w", err)
	}
	return f.Close()
}

// quantize converts a [-1, 1] sample to an integer, clipping to the PCM range.
// Non-finite samples become silence.
func quantize(v, maxVal float64) int {
	if math.IsNaN(v) {
		return 0
	}
	scaled := math.Round(v * maxVal)
	return int(math.Max(-maxVal-1, math.Min(maxVal, scaled)))
}
