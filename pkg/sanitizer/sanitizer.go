package sanitizer

import (
	"strings"
	"unicode"
)

// TrimAndNormalize trims surrounding whitespace and collapses inner
// whitespace runs to a single space.
func TrimAndNormalize(s string) string {
	s = strings.TrimSpace(s)

	if s == "" {
		return ""
	}

	var result strings.Builder
	var lastWasSpace bool

	for _, r := range s {
		if unicode.IsSpace(r) {
			if !lastWasSpace {
				result.WriteRune(' ')
				lastWasSpace = true
			}
		} else {
			result.WriteRune(r)
			lastWasSpace = false
		}
	}

	return result.String()
}

// NormalizeResource normalizes a resource identifier for storage and
// lookups so that " Room A " and "Room A" address the same timeline.
func NormalizeResource(resource string) string {
	return TrimAndNormalize(resource)
}

// NormalizeRequester normalizes the requester identifier.
func NormalizeRequester(requestedBy string) string {
	return TrimAndNormalize(requestedBy)
}
