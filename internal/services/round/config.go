package round

import (
	"time"

	"github.com/mcoot/wordchain/internal/model"
)

// Config holds the tunable rules and pacing of a round
type Config struct {
	// StartingLives is the number of lives each side starts with
	StartingLives int
	// MaxAIAttempts is how many words the AI may try per turn
	MaxAIAttempts int
	// AIThinkDelay is paused before each AI attempt
	AIThinkDelay time.Duration
	// AIRetryDelay is paused after an AI attempt fails without ending the round
	AIRetryDelay time.Duration
	// EnforceAIPrefix makes an AI word that ignores the required prefix
	// count as a miss. Off by default: the oracle is trusted on the prefix.
	EnforceAIPrefix bool
}

// DefaultConfig returns the standard game rules
func DefaultConfig() Config {
	return Config{
		StartingLives: model.DefaultStartingLives,
		MaxAIAttempts: 2,
		AIThinkDelay:  2 * time.Second,
		AIRetryDelay:  2 * time.Second,
	}
}
