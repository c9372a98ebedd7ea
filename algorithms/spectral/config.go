package spectral

// Config describes one analysis/resynthesis geometry
type Config struct {
	FFTSize    int    `json:"fft_size"`
	HopSize    int    `json:"hop_size"`
	OutFFTSize int    `json:"out_fft_size,omitempty"` // 0 = FFTSize
	OutHopSize int    `json:"out_hop_size,omitempty"` // 0 = HopSize
	Demodulate bool   `json:"demodulate"`
	Workers    int    `json:"workers,omitempty"`   // 0 = automatic
	Transform  string `json:"transform,omitempty"` // "gonum" (default) or "go-dsp"
}

// DefaultConfig returns a 2048-point, 75% overlap configuration
func DefaultConfig() *Config {
	return &Config{
		FFTSize: 2048,
		HopSize: 512,
	}
}

// Resolved returns a copy with the output geometry defaulted to the analysis geometry.
func (c Config) Resolved() Config {
	if c.OutFFTSize == 0 {
		c.OutFFTSize = c.FFTSize
	}
	if c.OutHopSize == 0 {
		c.OutHopSize = c.HopSize
	}
	return c
}

// Validate checks the geometry of a resolved configuration.
func (c Config) Validate() error {
	if err := validateTransformSize("fft size", c.FFTSize); err != nil {
		return err
	}
	if err := validateHop("hop size", c.HopSize); err != nil {
		return err
	}
	if err := validateTransformSize("output fft size", c.OutFFTSize); err != nil {
		return err
	}
	return validateHop("output hop size", c.OutHopSize)
}

// Options converts the engine settings of c into STFT options.
func (c Config) Options() ([]Option, error) {
	factory, err := TransformByName(c.Transform)
	if err != nil {
		return nil, err
	}
	return []Option{WithWorkers(c.Workers), WithTransform(factory)}, nil
}
