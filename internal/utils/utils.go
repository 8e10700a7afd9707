package utils

import (
	"strings"
	"unicode/utf8"
)

// ContainsFold reports whether substr is within s, ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// ContainsFoldAny reports whether substr is within any of fields, ignoring case
func ContainsFoldAny(substr string, fields ...string) bool {
	for _, field := range fields {
		if ContainsFold(field, substr) {
			return true
		}
	}
	return false
}

// TruncateString shortens str to at most length runes, marking the cut with "..."
func TruncateString(str string, length int) string {
	if utf8.RuneCountInString(str) <= length {
		return str
	}
	if length <= 3 {
		return string([]rune(str)[:length])
	}
	return string([]rune(str)[:length-3]) + "..."
}
