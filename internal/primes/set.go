// Package primes computes the primes of a half-open integer interval and
// keeps them as an ascending sequence plus a membership index.
package primes

import (
	"fmt"
	"iter"
	"math"
	"slices"

	apperrors "prime-digit-families/internal/errors"

	"golang.org/x/exp/constraints"
)

// Set holds every prime in [min, max). It is immutable once built and safe
// for concurrent readers.
type Set[T constraints.Unsigned] struct {
	min, max T
	values   []T
	index    map[T]struct{}
}

// MaxSpan is the widest range Build will sieve. Both the segment and the
// base sieve hold at most MaxSpan+1 flags.
const MaxSpan = 1 << 32

// Build sieves [min, max) and returns the primes found in it. A range wider
// than MaxSpan fails with errors.ErrOverflow.
func Build[T constraints.Unsigned](lo, hi T) (*Set[T], error) {
	if lo <= 1 {
		return nil, apperrors.NewValidationError("min", fmt.Sprintf("must be greater than 1, got %d", lo))
	}
	if hi <= lo {
		return nil, apperrors.NewValidationError("max", fmt.Sprintf("must be greater than min (%d), got %d", lo, hi))
	}

	length := uint64(hi - lo)
	if length > MaxSpan {
		return nil, apperrors.NewOverflowError("sieve", fmt.Sprintf("range of %d values exceeds the sieve limit of %d", length, uint64(MaxSpan)))
	}

	candidates := sieveSegment(uint64(lo), uint64(hi))

	s := &Set[T]{
		min:   lo,
		max:   hi,
		index: make(map[T]struct{}),
	}
	for offset, isPrime := range candidates {
		if !isPrime {
			continue
		}
		p := lo + T(offset)
		s.values = append(s.values, p)
		s.index[p] = struct{}{}
	}

	return s, nil
}

// sieveSegment marks the primes of [lo, hi). Only base primes up to
// ceil(sqrt(hi)) are used for crossing off, and each one starts at the
// first multiple that is both >= lo and >= its own square.
func sieveSegment(lo, hi uint64) []bool {
	result := make([]bool, hi-lo)
	for i := range result {
		result[i] = true
	}

	limit := ceilSqrt(hi)
	base := sieveBase(limit)

	// i stays below 2^32 so i*i cannot wrap
	for i := uint64(2); i <= limit && i <= math.MaxUint32; i++ {
		if !base[i] {
			continue
		}
		square := i * i
		if square >= hi {
			break
		}

		var start uint64
		if lo > square {
			skip := (lo - square) / i
			if (lo-square)%i != 0 {
				skip++
			}
			// offset of square+skip*i relative to lo, always < i
			start = skip*i - (lo - square)
		} else {
			start = square - lo
		}

		for j := start; j < uint64(len(result)); j += i {
			result[j] = false
		}
	}

	return result
}

// sieveBase is a plain sieve over [0, limit] used to pick the crossing-off factors
func sieveBase(limit uint64) []bool {
	base := make([]bool, limit+1)
	for i := uint64(2); i <= limit; i++ {
		base[i] = true
	}
	for i := uint64(2); i*i <= limit; i++ {
		if !base[i] {
			continue
		}
		for j := i * i; j <= limit; j += i {
			base[j] = false
		}
	}
	return base
}

// ceilSqrt returns the smallest r with r*r >= n
func ceilSqrt(n uint64) uint64 {
	r := uint64(math.Sqrt(float64(n)))
	for r > 0 && r > n/r {
		r--
	}
	for r+1 <= n/(r+1) {
		r++
	}
	// r is now floor(sqrt(n))
	if r*r < n {
		r++
	}
	return r
}

// Contains reports whether v is one of the primes in the set
func (s *Set[T]) Contains(v T) bool {
	_, ok := s.index[v]
	return ok
}

// Len returns the number of primes in the set
func (s *Set[T]) Len() int {
	return len(s.values)
}

// Min returns the inclusive lower bound the set was built for
func (s *Set[T]) Min() T {
	return s.min
}

// Max returns the exclusive upper bound the set was built for
func (s *Set[T]) Max() T {
	return s.max
}

// All yields the primes in ascending order. It can be ranged over any
// number of times.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, p := range s.values {
			if !yield(p) {
				return
			}
		}
	}
}

// Values returns a copy of the ascending sequence
func (s *Set[T]) Values() []T {
	return slices.Clone(s.values)
}
