package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"prime-digit-families/internal/family"
)

// writeResult writes a found family to w, one prime per line after a short
// header describing the pattern and case.
func writeResult(w io.Writer, result family.Result) error {
	members := make([]string, len(result.Family))
	for i, p := range result.Family {
		members[i] = "  " + strconv.FormatUint(p, 10)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "✓ Found a family of %d primes\n", len(result.Family))
	fmt.Fprintf(&b, "  Pattern: %s\n", result.Pattern)
	fmt.Fprintf(&b, "  Case: %s\n", result.CaseKey)
	fmt.Fprintf(&b, "  Smallest member: %d\n\n", smallest(result.Family))
	b.WriteString(strings.Join(members, "\n"))
	if len(members) > 0 {
		b.WriteString("\n") // Add trailing newline
	}
	b.WriteString("\n")

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

func smallest(values []uint64) uint64 {
	if len(values) == 0 {
		return 0
	}
	return values[0]
}
