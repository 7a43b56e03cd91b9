package errors

import (
	"math"
	"unicode"
)

const (
	maxNodeIDLength = 512
	maxPathLength   = 4096

	// maxCoordinate is far beyond any canvas size but well inside float64 range.
	maxCoordinate = 1e12
)

// ValidateNodeID rejects node identifiers that cannot be displayed or routed:
// empty strings, values over 512 bytes and anything with control characters.
// IDs are otherwise opaque, so URNs and non-ASCII names pass.
func ValidateNodeID(id string) error {
	return checkText(ErrCodeInvalidInput, "node id", id, maxNodeIDLength)
}

// ValidatePath applies the same rules to file paths from flags and config,
// with a 4096 byte limit.
func ValidatePath(path string) error {
	return checkText(ErrCodeInvalidPath, "path", path, maxPathLength)
}

func checkText(code Code, what, s string, limit int) error {
	switch {
	case s == "":
		return New(code, "%s cannot be empty", what)
	case len(s) > limit:
		return New(code, "%s too long (max %d characters)", what, limit)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(code, "%s contains control characters", what)
		}
	}
	return nil
}

// ValidateFinite rejects NaN, infinities and magnitudes above 1e12 for the
// named numeric input.
func ValidateFinite(name string, v float64) error {
	if math.IsNaN(v) || math.Abs(v) > maxCoordinate {
		return New(ErrCodeInvalidInput, "%s must be a finite number", name)
	}
	return nil
}
