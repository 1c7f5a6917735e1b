// Package config holds the parameters of a prime family search: the range
// being sieved, the digit width of its numbers, the pattern size bounds and
// the family size being looked for.
package config

import (
	"fmt"
	"sort"

	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/primes"

	"github.com/caarlos0/env/v11"
	"github.com/hashicorp/go-multierror"
)

// Mode selects what a search returns
type Mode string

const (
	// ModeExact stops at the first family of exactly TargetFamilySize primes
	ModeExact Mode = "exact"
	// ModeLongest scans every pattern and returns the longest family seen
	ModeLongest Mode = "longest"
)

// MaxDigitWidth is the widest number a uint64 can hold with every digit set to 9
const MaxDigitWidth = 19

// AlphabetSize is the number of digit values tried at each substitution
const AlphabetSize = 10

// Config describes one search run
type Config struct {
	Min              uint64 `env:"FAMILYSEARCH_MIN"                envDefault:"100000"`  // inclusive lower bound of the sieved range
	Max              uint64 `env:"FAMILYSEARCH_MAX"                envDefault:"1000000"` // exclusive upper bound of the sieved range
	DigitWidth       int    `env:"FAMILYSEARCH_DIGIT_WIDTH"        envDefault:"6"`
	MinPatternLen    int    `env:"FAMILYSEARCH_MIN_PATTERN_LEN"    envDefault:"2"`
	MaxPatternLen    int    `env:"FAMILYSEARCH_MAX_PATTERN_LEN"    envDefault:"5"`
	TargetFamilySize int    `env:"FAMILYSEARCH_TARGET_FAMILY_SIZE" envDefault:"8"`
	Workers          int    `env:"FAMILYSEARCH_WORKERS"            envDefault:"1"` // values above 1 scan patterns in parallel
	Mode             Mode   `env:"FAMILYSEARCH_MODE"               envDefault:"exact"`
	LogLevel         string `env:"FAMILYSEARCH_LOG_LEVEL"          envDefault:"INFO"`
}

// Load returns the configuration described by FAMILYSEARCH_* environment
// variables, falling back to the full six digit search.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

var presets = map[string]Config{
	"small": {
		Min: 10, Max: 100, DigitWidth: 2,
		MinPatternLen: 1, MaxPatternLen: 1,
		TargetFamilySize: 6,
	},
	"medium": {
		Min: 10_000, Max: 100_000, DigitWidth: 5,
		MinPatternLen: 2, MaxPatternLen: 4,
		TargetFamilySize: 7,
	},
	"full": {
		Min: 100_000, Max: 1_000_000, DigitWidth: 6,
		MinPatternLen: 2, MaxPatternLen: 5,
		TargetFamilySize: 8,
	},
}

// Preset returns a copy of base with the search parameters of the named
// preset applied. Workers, Mode and LogLevel are left as they are.
func Preset(name string, base Config) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, apperrors.NewValidationError("preset", fmt.Sprintf("unknown preset %q, expected one of %v", name, PresetNames()))
	}

	base.Min = p.Min
	base.Max = p.Max
	base.DigitWidth = p.DigitWidth
	base.MinPatternLen = p.MinPatternLen
	base.MaxPatternLen = p.MaxPatternLen
	base.TargetFamilySize = p.TargetFamilySize
	return base, nil
}

// PresetNames lists the known presets in sorted order
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Validate checks every precondition of a search and reports all
// violations at once. The returned error matches errors.ErrInvalidConfig.
func (c Config) Validate() error {
	var result *multierror.Error

	fail := func(field, format string, args ...interface{}) {
		result = multierror.Append(result, apperrors.NewValidationError(field, fmt.Sprintf(format, args...)))
	}

	if c.Min <= 1 {
		fail("min", "must be greater than 1, got %d", c.Min)
	}
	if c.Max <= c.Min {
		fail("max", "must be greater than min (%d), got %d", c.Min, c.Max)
	} else if c.Max-c.Min > primes.MaxSpan {
		fail("max", "range [%d, %d) spans more than %d values", c.Min, c.Max, uint64(primes.MaxSpan))
	}

	widthOK := c.DigitWidth >= 1 && c.DigitWidth <= MaxDigitWidth
	if !widthOK {
		fail("digit_width", "must be between 1 and %d, got %d", MaxDigitWidth, c.DigitWidth)
	}
	if widthOK && c.Max > c.Min {
		lowest := Pow10(c.DigitWidth - 1)
		if c.DigitWidth == 1 {
			lowest = 0
		}
		if c.Min < lowest {
			fail("min", "%d has fewer than %d digits", c.Min, c.DigitWidth)
		}
		if c.Max > Pow10(c.DigitWidth) {
			fail("max", "range [%d, %d) holds numbers with more than %d digits", c.Min, c.Max, c.DigitWidth)
		}
	}

	if c.MinPatternLen < 1 {
		fail("min_pattern_len", "must be at least 1, got %d", c.MinPatternLen)
	}
	if c.MaxPatternLen < c.MinPatternLen {
		fail("max_pattern_len", "must not be below min_pattern_len (%d), got %d", c.MinPatternLen, c.MaxPatternLen)
	}
	if c.MaxPatternLen > c.DigitWidth {
		fail("max_pattern_len", "must not exceed digit_width (%d), got %d", c.DigitWidth, c.MaxPatternLen)
	}

	if c.TargetFamilySize < 1 || c.TargetFamilySize > AlphabetSize {
		fail("target_family_size", "must be between 1 and %d, got %d", AlphabetSize, c.TargetFamilySize)
	}
	if c.Workers < 0 {
		fail("workers", "must not be negative, got %d", c.Workers)
	}
	switch c.Mode {
	case "", ModeExact, ModeLongest:
	default:
		fail("mode", "must be %q or %q, got %q", ModeExact, ModeLongest, c.Mode)
	}

	return result.ErrorOrNil()
}

// Pow10 returns 10^n for 0 <= n <= 19
func Pow10(n int) uint64 {
	result := uint64(1)
	for i := 0; i < n; i++ {
		result *= 10
	}
	return result
}
