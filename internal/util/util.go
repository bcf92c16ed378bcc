package util

import "unicode/utf8"

// IntPtr returns a pointer to the given int
func IntPtr(i int) *int {
	return &i
}

// ClampPage normalizes a limit/offset pair. A non-positive limit becomes def,
// a limit above max is capped and a negative offset becomes zero.
func ClampPage(limit, offset, def, max int) (int, int) {
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Truncate shortens s to at most n runes, appending "..." when it was cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}

// StringFrom returns m[key] when it holds a non-empty string, else def.
func StringFrom(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}
