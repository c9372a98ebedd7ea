package spectral

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every error the engine raises for invalid
// parameters. Use errors.Is to test for it, or errors.As with
// *ConfigurationError for the details.
var ErrConfiguration = errors.New("spectral: invalid configuration")

// ConfigurationError reports a parameter that fails validation. It is always
// returned before any frame is processed.
type ConfigurationError struct {
	Param  string
	Value  int
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("spectral: invalid %s (%d): %s", e.Param, e.Value, e.Reason)
}

// Is makes errors.Is(err, ErrConfiguration) hold for any ConfigurationError.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func configError(param string, value int, reason string) error {
	return &ConfigurationError{Param: param, Value: value, Reason: reason}
}

func validateTransformSize(param string, n int) error {
	if n <= 0 {
		return configError(param, n, "transform size must be positive")
	}
	if n%2 != 0 {
		return configError(param, n, "transform size must be even")
	}
	return nil
}

func validateHop(param string, hop int) error {
	if hop <= 0 {
		return configError(param, hop, "hop size must be positive")
	}
	return nil
}
