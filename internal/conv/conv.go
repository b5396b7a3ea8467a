// Package conv provides safe integer parsing helpers for the surface syntax.
//
// Multiplicities (N, N-M, N+) are user-controlled decimal digit runs that
// feed straight into Go's int. These helpers bounds-check the narrowing
// conversion once, centrally, instead of scattering strconv error handling
// across the parser.
package conv

import (
	"fmt"
	"math"
	"strconv"
)

// ParseCount parses a non-negative decimal digit run into an int suitable
// for use as a Multiple bound. Unlike a panicking narrowing conversion, this
// returns an error: the input comes from pattern text, not from a value the
// program already trusts, so overflow here is a malformed pattern rather
// than a programming error.
func ParseCount(digits string) (int, error) {
	n, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid multiplicity %q: %w", digits, err)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("multiplicity %q out of range", digits)
	}
	return int(n), nil
}
