package oracle

import (
	"context"
	"log/slog"

	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedOracle remembers positive verdicts of an inner oracle.
//
// Negative verdicts are not cached: the Oracle interface folds failures into
// "invalid", so a cached negative could be a network blip.
type CachedOracle struct {
	inner    Oracle
	verdicts *lru.Cache[string, struct{}]
	logger   *slog.Logger
}

// NewCachedOracle wraps inner with a verdict cache holding up to size words
func NewCachedOracle(inner Oracle, size int, logger *slog.Logger) (*CachedOracle, error) {
	verdicts, err := lru.New[string, struct{}](size)
	if err != nil {
		return nil, err
	}

	return &CachedOracle{
		inner:    inner,
		verdicts: verdicts,
		logger:   logger.With(slog.String("component", "cached-oracle")),
	}, nil
}

// Ensure CachedOracle implements Oracle
var _ Oracle = (*CachedOracle)(nil)

// IsValidWord returns a cached positive verdict or asks the inner oracle
func (o *CachedOracle) IsValidWord(ctx context.Context, word string) bool {
	if _, ok := o.verdicts.Get(word); ok {
		o.logger.Debug("verdict cache hit", slog.String("word", word))
		return true
	}

	valid := o.inner.IsValidWord(ctx, word)
	if valid {
		o.verdicts.Add(word, struct{}{})
	}
	return valid
}

// SuggestWord is never cached since the exclusion list changes every turn
func (o *CachedOracle) SuggestWord(ctx context.Context, prefix string, excluded []string) (string, bool) {
	return o.inner.SuggestWord(ctx, prefix, excluded)
}

// Len returns the number of cached verdicts
func (o *CachedOracle) Len() int {
	return o.verdicts.Len()
}
