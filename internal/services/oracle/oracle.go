// Package oracle answers the two questions the turn engine cannot answer
// itself: whether a word is a real English word, and which word to play next.
//
// Every implementation fails closed. Network errors, timeouts and unparseable
// replies are logged and reported as "invalid" or "no word", never returned.
package oracle

import (
	"context"
	"errors"
)

// Oracle is the word-legality capability consumed by the turn engine
type Oracle interface {
	// IsValidWord reports whether word is a valid English word.
	// Any failure is reported as false.
	IsValidWord(ctx context.Context, word string) bool

	// SuggestWord returns a word starting with prefix that is not in excluded.
	// The second result is false on failure or when no usable word exists.
	SuggestWord(ctx context.Context, prefix string, excluded []string) (string, bool)
}

// Oracle failure classes. These never leave the package; they exist so
// failures are logged with a consistent shape.
var (
	ErrUnavailable     = errors.New("oracle unavailable")
	ErrInvalidResponse = errors.New("invalid oracle response")
)
