package windowing

import (
	"fmt"
	"sort"
	"strings"
)

// Type names a window generator for configuration files and command lines.
type Type string

const (
	TypeRectangular    Type = "rectangular"
	TypeHann           Type = "hann"
	TypeHamming        Type = "hamming"
	TypeRaisedCosine   Type = "raised_cosine"
	TypeCosine         Type = "cosine"
	TypeGaussian       Type = "gaussian"
	TypeBlackman       Type = "blackman"
	TypeBlackmanHarris Type = "blackman_harris"
	TypeKaiser         Type = "kaiser"
	TypeTukey          Type = "tukey"
	TypeBartlett       Type = "bartlett"
	TypeWelch          Type = "welch"
)

// parametric builds a generator from its single shape parameter
type parametric func(param float64) Generator

var fixedGenerators = map[Type]Generator{
	TypeRectangular:    Rectangular,
	TypeHann:           Hann,
	TypeHamming:        Hamming,
	TypeCosine:         Cosine,
	TypeBlackman:       Blackman,
	TypeBlackmanHarris: BlackmanHarris,
	TypeBartlett:       Bartlett,
	TypeWelch:          Welch,
}

var parametricGenerators = map[Type]parametric{
	TypeRaisedCosine: RaisedCosine,
	TypeGaussian:     Gaussian,
	TypeKaiser:       Kaiser,
	TypeTukey:        Tukey,
}

// Lookup resolves a window name to its generator. param is the shape
// parameter of parametric windows (raised-cosine alpha, Gaussian sigma,
// Kaiser beta, Tukey alpha) and is ignored by the others. A zero param
// selects the window's default.
func Lookup(name string, param float64) (Generator, error) {
	t, err := ParseType(name)
	if err != nil {
		return nil, err
	}

	if gen, ok := fixedGenerators[t]; ok {
		return gen, nil
	}

	if build, ok := parametricGenerators[t]; ok {
		if param == 0 {
			param = defaultParam(t)
		}
		return build(param), nil
	}

	return nil, fmt.Errorf("no generator registered for window type %q", t)
}

// ParseType normalizes a window name. Case and surrounding space are ignored
// and an empty name means rectangular.
func ParseType(name string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(name)))
	if t == "" {
		return TypeRectangular, nil
	}

	if _, ok := fixedGenerators[t]; ok {
		return t, nil
	}
	if _, ok := parametricGenerators[t]; ok {
		return t, nil
	}

	return "", fmt.Errorf("unknown window type %q (known: %s)", name, strings.Join(Names(), ", "))
}

// Names lists every registered window name in sorted order.
func Names() []string {
	names := make([]string, 0, len(fixedGenerators)+len(parametricGenerators))
	for t := range fixedGenerators {
		names = append(names, string(t))
	}
	for t := range parametricGenerators {
		names = append(names, string(t))
	}
	sort.Strings(names)
	return names
}

func defaultParam(t Type) float64 {
	switch t {
	case TypeRaisedCosine:
		return 0.5
	case TypeGaussian:
		return DefaultGaussianSigma
	case TypeKaiser:
		return DefaultKaiserBeta
	case TypeTukey:
		return 0.5
	default:
		return 0
	}
}
