package family

import (
	"errors"
	"testing"

	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/pattern"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	T = true
	F = false
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		n     uint64
		width int
		want  []uint8
	}{
		{n: 83371, width: 5, want: []uint8{8, 3, 3, 7, 1}},
		{n: 37871, width: 5, want: []uint8{3, 7, 8, 7, 1}},
		{n: 100_003, width: 6, want: []uint8{1, 0, 0, 0, 0, 3}},
		{n: 7, width: 1, want: []uint8{7}},
		{n: 0, width: 1, want: []uint8{0}},
		{n: 9_999_999_999_999_999_999, width: 19, want: []uint8{9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9}},
	}

	for _, tt := range tests {
		got, err := Decompose(tt.n, tt.width)
		require.NoError(t, err, "Decompose(%d, %d)", tt.n, tt.width)
		assert.Equal(t, tt.want, got, "Decompose(%d, %d)", tt.n, tt.width)
	}
}

func TestDecompose_WidthMismatch(t *testing.T) {
	tests := []struct {
		name  string
		n     uint64
		width int
	}{
		{name: "too many digits", n: 123456, width: 5},
		{name: "leading zero", n: 1234, width: 5},
		{name: "zero width", n: 1, width: 0},
		{name: "width past uint64", n: 1, width: 21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decompose(tt.n, tt.width)
			assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig), "got %v", err)
		})
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name    string
		digits  []uint8
		d       uint8
		pattern pattern.Pattern
		want    uint64
	}{
		{
			name:    "middle run replaced by zero",
			digits:  []uint8{5, 7, 3, 8, 2, 1},
			d:       0,
			pattern: pattern.Pattern{F, T, T, T, F, F},
			want:    500_021,
		},
		{
			name:    "alternate positions",
			digits:  []uint8{1, 2, 1, 3, 1, 3},
			d:       4,
			pattern: pattern.Pattern{T, F, T, F, T, F},
			want:    424_343,
		},
		{
			name:    "leading position replaced by zero drops a digit",
			digits:  []uint8{1, 3},
			d:       0,
			pattern: pattern.Pattern{T, F},
			want:    3,
		},
		{
			name:    "all positions",
			digits:  []uint8{1, 2, 3},
			d:       7,
			pattern: pattern.Pattern{T, T, T},
			want:    777,
		},
		{
			name:    "no positions",
			digits:  []uint8{5, 6, 0, 0, 3},
			d:       9,
			pattern: pattern.Pattern{F, F, F, F, F},
			want:    56_003,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Substitute(tt.digits, tt.d, tt.pattern)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSubstitute_InvalidArguments(t *testing.T) {
	_, err := Substitute([]uint8{1, 2, 3}, 1, pattern.Pattern{T, F})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))

	_, err = Substitute([]uint8{1, 2}, 10, pattern.Pattern{T, F})
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}

func TestSubstitute_Overflow(t *testing.T) {
	// 20 nines is above the uint64 maximum of 18446744073709551615
	digits := make([]uint8, 20)
	p := make(pattern.Pattern, 20)
	for i := range digits {
		digits[i] = 9
	}

	_, err := Substitute(digits, 0, p)
	assert.True(t, errors.Is(err, apperrors.ErrOverflow), "got %v", err)

	// 21 digits overflows in the multiplication step
	_, err = Substitute(append(digits, 1), 0, append(p, F))
	assert.True(t, errors.Is(err, apperrors.ErrOverflow), "got %v", err)

	// the largest uint64 still fits
	largest := []uint8{1, 8, 4, 4, 6, 7, 4, 4, 0, 7, 3, 7, 0, 9, 5, 5, 1, 6, 1, 5}
	got, err := Substitute(largest, 0, p)
	require.NoError(t, err)
	assert.Equal(t, uint64(18_446_744_073_709_551_615), got)
}

func TestCaseKey(t *testing.T) {
	p := pattern.Pattern{F, F, T, T, F}

	a, err := CaseKey([]uint8{5, 6, 0, 0, 3}, p)
	require.NoError(t, err)
	b, err := CaseKey([]uint8{5, 6, 3, 3, 3}, p)
	require.NoError(t, err)
	c, err := CaseKey([]uint8{5, 6, 0, 0, 7}, p)
	require.NoError(t, err)

	assert.Equal(t, "56**3", a)
	assert.Equal(t, a, b, "numbers agreeing on kept positions share a key")
	assert.NotEqual(t, a, c)

	_, err = CaseKey([]uint8{1, 2}, p)
	assert.True(t, errors.Is(err, apperrors.ErrInvalidConfig))
}

func TestCaseKey_EqualKeysGiveEqualCandidates(t *testing.T) {
	p := pattern.Pattern{F, T, F, T, F}
	first := []uint8{1, 2, 3, 4, 7}
	second := []uint8{1, 9, 3, 0, 7}

	keyA, err := CaseKey(first, p)
	require.NoError(t, err)
	keyB, err := CaseKey(second, p)
	require.NoError(t, err)
	require.Equal(t, keyA, keyB)

	for d := uint8(0); d < 10; d++ {
		a, err := Substitute(first, d, p)
		require.NoError(t, err)
		b, err := Substitute(second, d, p)
		require.NoError(t, err)
		assert.Equal(t, a, b, "digit %d", d)
	}
}
