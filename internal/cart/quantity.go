package cart

import (
	"fmt"
	"strconv"
)

// MaxQuantity is the largest quantity a cart line may hold (2^53 - 1).
// It matches the safe-integer bound used by browser front ends so a
// quantity survives a round trip through JSON numbers intact.
const MaxQuantity int64 = 1<<53 - 1

// IsNaturalNumber reports whether n is in [0, MaxQuantity].
func IsNaturalNumber(n int64) bool {
	return n >= 0 && n <= MaxQuantity
}

// ParseQuantity parses a quantity typed by a user.
//
// Input must be digits only. Empty input (a cleared field) parses as 0.
// Leading zeros are accepted ("007" is 7). Signs, decimal points, and
// anything above MaxQuantity are rejected with CodeInvalidQuantity, so a
// negative quantity never reaches the store.
func ParseQuantity(input string) (int64, error) {
	for _, r := range input {
		if r < '0' || r > '9' {
			return 0, &Error{
				Code:    CodeInvalidQuantity,
				Op:      "parse",
				Message: fmt.Sprintf("quantity %q must contain digits only", input),
			}
		}
	}
	if input == "" {
		return 0, nil
	}

	n, err := strconv.ParseInt(input, 10, 64)
	if err != nil || !IsNaturalNumber(n) {
		return 0, &Error{
			Code:    CodeInvalidQuantity,
			Op:      "parse",
			Message: fmt.Sprintf("quantity %q is too large", input),
		}
	}
	return n, nil
}
