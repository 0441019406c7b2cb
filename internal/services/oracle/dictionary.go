package oracle

import (
	"context"
	"log/slog"
	"slices"
	"unicode/utf8"

	"github.com/mcoot/wordchain/internal/dependencies/random"
	"github.com/mcoot/wordchain/internal/services/dictionary"
)

// DictionaryOracle answers from a local word list. It needs no network and is
// used for offline play.
type DictionaryOracle struct {
	dictionary dictionary.ServiceInterface
	random     random.Random
	logger     *slog.Logger
}

// NewDictionaryOracle creates a new DictionaryOracle
func NewDictionaryOracle(dict dictionary.ServiceInterface, rnd random.Random, logger *slog.Logger) *DictionaryOracle {
	return &DictionaryOracle{
		dictionary: dict,
		random:     rnd,
		logger:     logger.With(slog.String("component", "dictionary-oracle")),
	}
}

// Ensure DictionaryOracle implements Oracle
var _ Oracle = (*DictionaryOracle)(nil)

// IsValidWord looks the word up in the dictionary
func (o *DictionaryOracle) IsValidWord(ctx context.Context, word string) bool {
	if !o.dictionary.IsLoaded() {
		o.logger.Warn("word validation failed", slog.String("error", dictionary.ErrDictionaryNotLoaded.Error()))
		return false
	}
	return o.dictionary.IsValidWord(word)
}

// SuggestWord picks a random unused dictionary word starting with prefix
func (o *DictionaryOracle) SuggestWord(ctx context.Context, prefix string, excluded []string) (string, bool) {
	if err := ctx.Err(); err != nil {
		return "", false
	}

	var candidates []string
	for _, word := range o.dictionary.WordsWithPrefix(prefix) {
		if utf8.RuneCountInString(word) < MinSuggestionLength || !IsAlphabetic(word) {
			continue
		}
		if slices.Contains(excluded, word) {
			continue
		}
		candidates = append(candidates, word)
	}

	if len(candidates) == 0 {
		o.logger.Debug("no dictionary word for prefix", slog.String("prefix", prefix))
		return "", false
	}

	return candidates[o.random.Intn(len(candidates))], true
}
