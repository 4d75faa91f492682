// Package stringutil provides common string manipulation utilities.
package stringutil

import "strings"

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// NormalizeLower lowercases and trims surrounding whitespace.
// Used everywhere a free-text query or upstream field is compared.
func NormalizeLower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// ContainsEither reports whether a contains b or b contains a,
// case-insensitively. Campus names upstream are free text ("Busch",
// "BUSCH CAMPUS"), so containment has to run both ways.
func ContainsEither(a, b string) bool {
	al := strings.ToLower(a)
	bl := strings.ToLower(b)
	return strings.Contains(al, bl) || strings.Contains(bl, al)
}
