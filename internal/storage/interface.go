package storage

import (
	"context"

	"github.com/mcoot/wordchain/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Round operations
	SaveRound(ctx context.Context, round *model.Round) error
	// UpdateRound writes round only if the stored copy is still at
	// expectedVersion. A mismatch returns model.ErrStaleTurn.
	UpdateRound(ctx context.Context, round *model.Round, expectedVersion int) error
	GetRound(ctx context.Context, id model.RoundID) (*model.Round, error)
	DeleteRound(ctx context.Context, id model.RoundID) error

	// Dictionary operations
	GetDictionaryWords(ctx context.Context) ([]string, error)
	SaveDictionaryWords(ctx context.Context, words []string) error
}
