// Package loankey normalizes loan identifiers that arrive in the
// human-facing display form (e.g. "BIZLN-1234") as well as the bare
// numeric form stored on older records.
package loankey

import "strings"

// Normalize strips a display prefix from a loan key and returns the
// numeric suffix. Keys without a separator, or whose suffix is not
// numeric, are returned trimmed but otherwise unchanged.
func Normalize(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}

	idx := lastSeparator(key)
	if idx < 0 || idx == len(key)-1 {
		return key
	}

	suffix := key[idx+1:]
	if !isNumeric(suffix) {
		return key
	}
	return suffix
}

// Equivalent reports whether two loan keys refer to the same loan,
// comparing both the raw and normalized forms.
func Equivalent(a, b string) bool {
	a = strings.TrimSpace(a)
	b = strings.TrimSpace(b)
	if a == "" || b == "" {
		return false
	}
	return a == b || Normalize(a) == Normalize(b)
}

func lastSeparator(s string) int {
	for i := len(s) - 1; i >= 0; i-- {
		c := s[i]
		if !isAlnum(c) {
			return i
		}
	}
	return -1
}

func isNumeric(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isAlnum(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
