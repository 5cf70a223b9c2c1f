// Package identifier validates participant identifiers: exactly four ASCII
// decimal digits after trimming surrounding whitespace.
package identifier

import "strings"

const length = 4

// Valid reports whether s, after trimming, is a well-formed identifier.
func Valid(s string) bool {
	_, ok := Normalize(s)
	return ok
}

// Normalize trims s and reports whether the result is exactly four ASCII
// digits. Unicode digit variants, signs and embedded whitespace are rejected.
func Normalize(s string) (string, bool) {
	trimmed := strings.TrimSpace(s)
	if len(trimmed) != length {
		return trimmed, false
	}
	for i := 0; i < len(trimmed); i++ {
		if trimmed[i] < '0' || trimmed[i] > '9' {
			return trimmed, false
		}
	}
	return trimmed, true
}
