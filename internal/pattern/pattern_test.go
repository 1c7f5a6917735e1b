package pattern

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	T = true
	F = false
)

func collect(e *Enumerator) []Pattern {
	return slices.Collect(e.All())
}

func TestEnumerator_TwoToThreeOfFour(t *testing.T) {
	t.Parallel()

	got := collect(NewEnumerator(2, 3, 4))

	// binary counter order, index 0 is the least significant bit
	want := []Pattern{
		{T, T, F, F},
		{T, F, T, F},
		{F, T, T, F},
		{T, T, T, F},
		{T, F, F, T},
		{F, T, F, T},
		{T, T, F, T},
		{F, F, T, T},
		{T, F, T, T},
		{F, T, T, T},
	}
	assert.Equal(t, want, got)
	assert.Len(t, got, Count(2, 3, 4))
}

func TestEnumerator_TwoOfThree(t *testing.T) {
	t.Parallel()

	got := collect(NewEnumerator(2, 2, 3))
	assert.ElementsMatch(t, []Pattern{{F, T, T}, {T, F, T}, {T, T, F}}, got)
}

func TestEnumerator_EdgeCases(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name                   string
		minLen, maxLen, length int
		want                   []Pattern
	}{
		{
			name:   "zero length is empty",
			minLen: 0, maxLen: 3, length: 0,
			want: nil,
		},
		{
			name:   "minLen above length is empty",
			minLen: 4, maxLen: 5, length: 3,
			want: nil,
		},
		{
			name:   "inverted bounds are empty",
			minLen: 2, maxLen: 1, length: 3,
			want: nil,
		},
		{
			name:   "maxLen at length includes all-true",
			minLen: 2, maxLen: 2, length: 2,
			want: []Pattern{{T, T}},
		},
		{
			name:   "maxLen past length includes all-true",
			minLen: 3, maxLen: 9, length: 3,
			want: []Pattern{{T, T, T}},
		},
		{
			name:   "single position",
			minLen: 1, maxLen: 1, length: 1,
			want: []Pattern{{T}},
		},
		{
			name:   "minLen zero includes all-false first",
			minLen: 0, maxLen: 1, length: 2,
			want: []Pattern{{F, F}, {T, F}, {F, T}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, collect(NewEnumerator(tt.minLen, tt.maxLen, tt.length)))
		})
	}
}

func TestEnumerator_NeverYieldsAllFalseWithPositiveMin(t *testing.T) {
	t.Parallel()

	for p := range NewEnumerator(1, 6, 6).All() {
		assert.NotZero(t, p.PopCount(), "pattern %s", p)
	}
}

func TestEnumerator_ExhaustedStaysExhausted(t *testing.T) {
	e := NewEnumerator(1, 1, 2)

	first, ok := e.Next()
	assert.True(t, ok)
	assert.Equal(t, Pattern{T, F}, first)

	second, ok := e.Next()
	assert.True(t, ok)
	assert.Equal(t, Pattern{F, T}, second)

	for i := 0; i < 3; i++ {
		p, ok := e.Next()
		assert.False(t, ok)
		assert.Nil(t, p)
	}
}

func TestEnumerator_YieldedPatternsAreIndependent(t *testing.T) {
	e := NewEnumerator(1, 2, 3)

	first, _ := e.Next()
	snapshot := slices.Clone(first)
	_, _ = e.Next()
	_, _ = e.Next()

	assert.Equal(t, snapshot, first, "later steps must not mutate an already yielded pattern")
}

func TestEnumerator_MatchesCount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		minLen, maxLen, length int
	}{
		{1, 1, 2},
		{2, 5, 6},
		{2, 4, 5},
		{1, 10, 10},
	}

	for _, tt := range tests {
		got := collect(NewEnumerator(tt.minLen, tt.maxLen, tt.length))
		assert.Len(t, got, Count(tt.minLen, tt.maxLen, tt.length))
		for _, p := range got {
			assert.Len(t, p, tt.length)
			assert.GreaterOrEqual(t, p.PopCount(), tt.minLen)
			assert.LessOrEqual(t, p.PopCount(), tt.maxLen)
		}
	}
}

func TestCount(t *testing.T) {
	assert.Equal(t, 10, Count(2, 3, 4))
	assert.Equal(t, 56, Count(2, 5, 6))
	assert.Equal(t, 2, Count(1, 1, 2))
	assert.Equal(t, 0, Count(1, 3, 0))
	assert.Equal(t, 0, Count(4, 5, 3))
}

func TestPattern_String(t *testing.T) {
	assert.Equal(t, "x.x.x.", Pattern{T, F, T, F, T, F}.String())
	assert.Equal(t, "", Pattern{}.String())
	assert.Equal(t, 3, Pattern{T, F, T, F, T, F}.PopCount())
}
