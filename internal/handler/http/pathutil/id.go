package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a path segment is not a base-10 integer.
var ErrInvalidID = errors.New("invalid id")

// ParseID parses a path segment as a base-10 int64. Surrounding whitespace,
// fractions and trailing characters are rejected, so "12abc" is invalid.
//
// Example:
//
//	id, err := ParseID("123")
//	// Returns: 123, nil
func ParseID(s string) (int64, error) {
	if s == "" || strings.TrimSpace(s) != s {
		return 0, ErrInvalidID
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrInvalidID
	}
	return id, nil
}
