package oracle

import (
	"strings"
	"unicode/utf8"
)

const (
	// NotFoundReply is what the oracle answers when no word fits
	NotFoundReply = "word not found"
	// MinSuggestionLength is the shortest suggestion accepted
	MinSuggestionLength = 3

	trailingPunctuation = ".,!?;:"
)

// ParseSuggestion extracts a playable word from a free-text reply.
// The reply is trimmed and stripped of trailing punctuation, the "word not
// found" reply means none, and only the first whitespace-delimited token is
// kept. The token must be at least MinSuggestionLength ASCII letters.
func ParseSuggestion(reply string) (string, bool) {
	text := strings.TrimRight(strings.TrimSpace(reply), trailingPunctuation)
	if strings.EqualFold(text, NotFoundReply) {
		return "", false
	}

	fields := strings.Fields(text)
	if len(fields) == 0 {
		return "", false
	}

	word := fields[0]
	if utf8.RuneCountInString(word) < MinSuggestionLength || !IsAlphabetic(word) {
		return "", false
	}
	return word, true
}

// ParseVerdict interprets a yes/no reply. "yes" in any case counts as valid,
// and unlike a strict exact match, trailing punctuation is ignored too, so
// "Yes." and " YES! " are valid.
func ParseVerdict(reply string) bool {
	text := strings.TrimRight(strings.TrimSpace(reply), trailingPunctuation)
	return strings.EqualFold(text, "yes")
}

// IsAlphabetic returns true if word is non-empty and made only of ASCII letters
func IsAlphabetic(word string) bool {
	if word == "" {
		return false
	}
	for _, r := range word {
		if (r < 'a' || r > 'z') && (r < 'A' || r > 'Z') {
			return false
		}
	}
	return true
}
