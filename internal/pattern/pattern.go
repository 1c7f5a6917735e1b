// Package pattern enumerates digit-position masks. A Pattern has one entry
// per digit of the numbers being searched, most significant digit first;
// true marks a position that is replaced during substitution.
package pattern

import (
	"iter"
	"slices"
	"strings"
)

// Pattern is a fixed-length digit-position mask
type Pattern []bool

// PopCount returns the number of replaced positions
func (p Pattern) PopCount() int {
	count := 0
	for _, replaced := range p {
		if replaced {
			count++
		}
	}
	return count
}

// String renders replaced positions as 'x' and kept positions as '.'
func (p Pattern) String() string {
	var b strings.Builder
	b.Grow(len(p))
	for _, replaced := range p {
		if replaced {
			b.WriteByte('x')
		} else {
			b.WriteByte('.')
		}
	}
	return b.String()
}

// Enumerator yields every Pattern of a fixed length whose population count
// lies in [minLen, maxLen]. Patterns come out in binary counter order with
// index 0 as the least significant bit, starting from all-false. An
// Enumerator is single use and not safe for concurrent access.
type Enumerator struct {
	minLen, maxLen int
	state          Pattern
	finished       bool
}

// NewEnumerator creates an Enumerator over patterns of the given length
func NewEnumerator(minLen, maxLen, length int) *Enumerator {
	return &Enumerator{
		minLen:   minLen,
		maxLen:   maxLen,
		state:    make(Pattern, length),
		finished: length <= 0 || minLen > length || minLen > maxLen,
	}
}

// Next returns the next qualifying pattern. The second result is false once
// the enumeration is exhausted.
func (e *Enumerator) Next() (Pattern, bool) {
	for !e.finished {
		candidate := slices.Clone(e.state)
		e.increment()

		count := candidate.PopCount()
		if count >= e.minLen && count <= e.maxLen {
			return candidate, true
		}
	}
	return nil, false
}

// All adapts Next to a range-over-func sequence
func (e *Enumerator) All() iter.Seq[Pattern] {
	return func(yield func(Pattern) bool) {
		for {
			p, ok := e.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// increment adds one to the state with carry propagating from index 0.
// A carry out of the last position ends the enumeration.
func (e *Enumerator) increment() {
	carry := true
	for i := range e.state {
		next := e.state[i] && carry
		e.state[i] = e.state[i] != carry
		carry = next
		if !carry {
			return
		}
	}
	e.finished = true
}

// Count returns how many patterns of the given length have a population
// count in [minLen, maxLen]
func Count(minLen, maxLen, length int) int {
	if length <= 0 {
		return 0
	}
	total := 0
	for k := max(minLen, 0); k <= min(maxLen, length); k++ {
		total += binomial(length, k)
	}
	return total
}

func binomial(n, k int) int {
	if k < 0 || k > n {
		return 0
	}
	result := 1
	for i := 1; i <= k; i++ {
		result = result * (n - k + i) / i
	}
	return result
}
