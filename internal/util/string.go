package util

import "strings"

const ellipsis = "..."

// TruncateString truncates s so that the result, including the trailing "...",
// is at most maxRunes characters. Rune-based, not byte-based.
func TruncateString(s string, maxRunes int) string {
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	if maxRunes <= len(ellipsis) {
		return string(runes[:maxRunes])
	}
	return string(runes[:maxRunes-len(ellipsis)]) + ellipsis
}

// Normalize performs basic string normalization (lowercase + trim)
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CompactTag lowercases s and drops everything that is not a letter or digit,
// so "New York" becomes "newyork".
func CompactTag(s string) string {
	s = Normalize(s)
	if s == "" {
		return ""
	}

	var builder strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			builder.WriteRune(r)
		}
	}
	return builder.String()
}

// Hashtag prefixes a non-empty word with '#'.
func Hashtag(word string) string {
	if word == "" {
		return ""
	}
	if strings.HasPrefix(word, "#") {
		return word
	}
	return "#" + word
}
