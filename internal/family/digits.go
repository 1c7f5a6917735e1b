package family

import (
	"fmt"
	"math/bits"

	"prime-digit-families/internal/config"
	apperrors "prime-digit-families/internal/errors"
	"prime-digit-families/internal/pattern"
)

// wildcard marks a replaced position in a case key
const wildcard = '*'

// Decompose splits n into exactly width base-10 digits, most significant
// first. n must have exactly width digits; a leading zero is rejected.
func Decompose(n uint64, width int) ([]uint8, error) {
	if width < 1 || width > config.MaxDigitWidth {
		return nil, apperrors.NewValidationError("digit_width", fmt.Sprintf("must be between 1 and %d, got %d", config.MaxDigitWidth, width))
	}
	digits := make([]uint8, width)
	if err := decomposeInto(n, digits); err != nil {
		return nil, err
	}
	return digits, nil
}

// decomposeInto fills dst with the digits of n by repeated division
func decomposeInto(n uint64, dst []uint8) error {
	rest := n
	for i := len(dst) - 1; i >= 0; i-- {
		dst[i] = uint8(rest % 10)
		rest /= 10
	}
	if rest != 0 {
		return apperrors.NewValidationError("digits", fmt.Sprintf("%d has more than %d digits", n, len(dst)))
	}
	if len(dst) > 1 && dst[0] == 0 {
		return apperrors.NewValidationError("digits", fmt.Sprintf("%d has fewer than %d digits", n, len(dst)))
	}
	return nil
}

// Substitute writes d into every position p marks and rebuilds the number
// from the resulting digits, most significant first.
func Substitute(digits []uint8, d uint8, p pattern.Pattern) (uint64, error) {
	if len(digits) != len(p) {
		return 0, apperrors.NewValidationError("pattern", fmt.Sprintf("length %d does not match %d digits", len(p), len(digits)))
	}
	if d >= config.AlphabetSize {
		return 0, apperrors.NewValidationError("digit", fmt.Sprintf("%d is not a base-10 digit", d))
	}

	var result uint64
	for i, old := range digits {
		digit := old
		if p[i] {
			digit = d
		}

		hi, lo := bits.Mul64(result, 10)
		if hi != 0 {
			return 0, apperrors.NewOverflowError("substitute", fmt.Sprintf("%d digits do not fit in uint64", len(digits)))
		}
		sum, carry := bits.Add64(lo, uint64(digit), 0)
		if carry != 0 {
			return 0, apperrors.NewOverflowError("substitute", fmt.Sprintf("%d digits do not fit in uint64", len(digits)))
		}
		result = sum
	}
	return result, nil
}

// CaseKey returns the canonical form of digits under p: replaced positions
// become '*' and kept positions keep their digit. Numbers sharing a case key
// under the same pattern produce the same substitution candidates.
func CaseKey(digits []uint8, p pattern.Pattern) (string, error) {
	if len(digits) != len(p) {
		return "", apperrors.NewValidationError("pattern", fmt.Sprintf("length %d does not match %d digits", len(p), len(digits)))
	}
	return string(appendCaseKey(nil, digits, p)), nil
}

func appendCaseKey(dst []byte, digits []uint8, p pattern.Pattern) []byte {
	for i, digit := range digits {
		if p[i] {
			dst = append(dst, wildcard)
		} else {
			dst = append(dst, '0'+digit)
		}
	}
	return dst
}
