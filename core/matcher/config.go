package matcher

import (
	"fmt"

	"github.com/tartil-labs/sanad/core/errors"
)

// Config controls matching behavior. Construct with DefaultConfig and adjust;
// New rejects out-of-range values before any matching begins.
type Config struct {
	// FuzzyThreshold is the minimum similarity score for the fuzzy tier
	// to accept a match.
	FuzzyThreshold float64

	// MaxSuggestions caps how many runner-up candidates are attached to
	// a result's suggestions.
	MaxSuggestions int

	// IncludePartial enables the partial (word-subsequence) tier.
	IncludePartial bool

	// PartialFloor is the minimum coverage ratio for a partial match.
	PartialFloor float64

	// MaxCandidates bounds how many token-index candidates the partial
	// and fuzzy tiers compare against, keeping per-query cost roughly
	// constant regardless of corpus size.
	MaxCandidates int
}

// DefaultConfig returns the standard matching configuration.
func DefaultConfig() Config {
	return Config{
		FuzzyThreshold: 0.85,
		MaxSuggestions: 5,
		IncludePartial: true,
		PartialFloor:   0.5,
		MaxCandidates:  50,
	}
}

// Validate checks all numeric thresholds.
func (c Config) Validate() error {
	if c.FuzzyThreshold < 0 || c.FuzzyThreshold > 1 {
		return errors.NewConfig("fuzzyThreshold", fmt.Sprintf("%g", c.FuzzyThreshold), "must be in [0,1]")
	}
	if c.PartialFloor < 0 || c.PartialFloor > 1 {
		return errors.NewConfig("partialFloor", fmt.Sprintf("%g", c.PartialFloor), "must be in [0,1]")
	}
	if c.MaxSuggestions < 0 {
		return errors.NewConfig("maxSuggestions", fmt.Sprintf("%d", c.MaxSuggestions), "must be non-negative")
	}
	if c.MaxCandidates < 1 {
		return errors.NewConfig("maxCandidates", fmt.Sprintf("%d", c.MaxCandidates), "must be positive")
	}
	return nil
}
