package util

import "strings"

// NormalizeKey lowercases and trims a string for use as a lookup key,
// so "API-URL " and "api-url" address the same config entry.
func NormalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
