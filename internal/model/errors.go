package model

import "errors"

// Common errors used across the application
var (
	// Round errors
	ErrRoundNotFound = errors.New("round not found")
	ErrRoundOver     = errors.New("round is already over")
	ErrNotPlayerTurn = errors.New("not the player's turn")
	ErrNotAITurn     = errors.New("not the AI's turn")
	ErrStaleTurn     = errors.New("round changed while the turn was being decided")

	// Dictionary errors
	ErrDictionaryNotLoaded = errors.New("dictionary not loaded")
)
