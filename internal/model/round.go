package model

import (
	"slices"
	"time"
)

// Rules of the word chain
const (
	// DefaultStartingLives is the number of lives each side starts a round with
	DefaultStartingLives = 5
	// PrefixLength is how many trailing characters of a word the reply must start with
	PrefixLength = 2
	// MinAIWordLength is the shortest word the AI is allowed to play
	MinAIWordLength = 3
)

// RoundID uniquely identifies a round
type RoundID string

// Phase represents where a round is in its lifecycle
type Phase string

const (
	PhaseInProgress   Phase = "in_progress"
	PhasePlayerLost   Phase = "player_lost"    // Player ran out of lives
	PhasePlayerWon    Phase = "player_won"     // AI ran out of lives
	PhasePlayerGaveUp Phase = "player_gave_up" // Player forfeited
)

// IsTerminal returns true if no further moves are accepted in this phase
func (p Phase) IsTerminal() bool {
	return p != PhaseInProgress
}

// Side identifies one of the two participants
type Side string

const (
	SidePlayer Side = "player"
	SideAI     Side = "ai"
)

// Round is the complete state of one game between the player and the AI
type Round struct {
	ID          RoundID
	PlayerLives int
	AILives     int

	// Accepted words in play order. Their union is the used-word set.
	PlayerWords []string
	AIWords     []string

	// LastOpponentWord is the AI word the player must chain from ("" if unconstrained)
	LastOpponentWord string

	TurnOwner Side
	Phase     Phase

	// Version is bumped on every state transition
	Version int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewRound creates a round in its starting state
func NewRound(id RoundID, lives int, now time.Time) *Round {
	return &Round{
		ID:          id,
		PlayerLives: lives,
		AILives:     lives,
		PlayerWords: []string{},
		AIWords:     []string{},
		TurnOwner:   SidePlayer,
		Phase:       PhaseInProgress,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsUsed returns true if the word has already been played by either side.
// Comparison is case-sensitive.
func (r *Round) IsUsed(word string) bool {
	return slices.Contains(r.PlayerWords, word) || slices.Contains(r.AIWords, word)
}

// UsedWords returns every word played so far, player words first
func (r *Round) UsedWords() []string {
	used := make([]string, 0, len(r.PlayerWords)+len(r.AIWords))
	used = append(used, r.PlayerWords...)
	used = append(used, r.AIWords...)
	return used
}

// RequiredPrefix returns the prefix the player's next word must start with,
// or "" if any word is allowed
func (r *Round) RequiredPrefix() string {
	if r.LastOpponentWord == "" {
		return ""
	}
	return Suffix(r.LastOpponentWord)
}

// IsOver returns true if the round has reached a terminal phase
func (r *Round) IsOver() bool {
	return r.Phase.IsTerminal()
}

// Clone returns a deep copy of the round
func (r *Round) Clone() *Round {
	c := *r
	c.PlayerWords = slices.Clone(r.PlayerWords)
	c.AIWords = slices.Clone(r.AIWords)
	if c.PlayerWords == nil {
		c.PlayerWords = []string{}
	}
	if c.AIWords == nil {
		c.AIWords = []string{}
	}
	return &c
}

// Suffix returns the last PrefixLength characters of a word (the whole word if shorter)
func Suffix(word string) string {
	runes := []rune(word)
	if len(runes) <= PrefixLength {
		return word
	}
	return string(runes[len(runes)-PrefixLength:])
}

// Move is a candidate word together with who played it
type Move struct {
	Word   string
	Source Side
}

// Outcome discriminates TurnResult variants
type Outcome string

const (
	OutcomeAccepted     Outcome = "accepted"       // Player word accepted
	OutcomeRejected     Outcome = "rejected"       // Player word rejected (see Reason)
	OutcomeAISucceeded  Outcome = "ai_succeeded"   // AI found a word
	OutcomeAIFailedTurn Outcome = "ai_failed_turn" // AI used all attempts but survived
	OutcomeAIDefeated   Outcome = "ai_defeated"    // AI ran out of lives
)

// RejectReason explains why a player word was rejected
type RejectReason string

const (
	ReasonInvalidWord RejectReason = "invalid_word"
	ReasonAlreadyUsed RejectReason = "already_used"
	ReasonWrongPrefix RejectReason = "wrong_prefix"
)

// TurnResult describes what happened during one turn
type TurnResult struct {
	Outcome   Outcome
	Move      Move
	Reason    RejectReason // Only set when Outcome is rejected
	LivesLost int
	Attempts  int   // AI turns only
	Phase     Phase // Round phase after the turn

	// AIReply is the AI's turn that followed an accepted player word.
	// Nil if the AI turn was superseded (e.g. the player gave up meanwhile).
	AIReply *TurnResult
}
