package engine

import "github.com/rhuss/stepsort/pkg/api"

// Config holds configuration for the sort engine.
type Config struct {
	// DefaultAlgorithm is used when the request omits the algorithm field.
	// Empty string means api.DefaultAlgorithm.
	DefaultAlgorithm api.Algorithm

	// MaxArrayLength rejects larger inputs before sorting. Zero means
	// unlimited; negative values are invalid.
	MaxArrayLength int
}

// defaultAlgorithm returns the effective default algorithm.
func (c Config) defaultAlgorithm() api.Algorithm {
	if c.DefaultAlgorithm == "" {
		return api.DefaultAlgorithm
	}
	return c.DefaultAlgorithm
}

func (c Config) validation() api.ValidationConfig {
	return api.ValidationConfig{MaxArrayLength: c.MaxArrayLength}
}
