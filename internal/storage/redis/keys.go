package redis

import (
	"fmt"

	"github.com/mcoot/wordchain/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordchain"

// roundKey returns the Redis key for a Round
func roundKey(id model.RoundID) string {
	return fmt.Sprintf("%s:round:%s", keyPrefix, id)
}

// dictionaryKey returns the Redis key for the dictionary word set
func dictionaryKey() string {
	return fmt.Sprintf("%s:dictionary", keyPrefix)
}
