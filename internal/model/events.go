package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// Round lifecycle events
	EventRoundStarted   EventType = "round_started"
	EventRoundRestarted EventType = "round_restarted"
	EventRoundEnded     EventType = "round_ended"

	// Player turn events
	EventPlayerWordAccepted EventType = "player_word_accepted"
	EventPlayerWordRejected EventType = "player_word_rejected"

	// AI turn events
	EventAIThinking      EventType = "ai_thinking"
	EventAIAttemptFailed EventType = "ai_attempt_failed"
	EventAIWordPlayed    EventType = "ai_word_played"
	EventAITurnFailed    EventType = "ai_turn_failed"
)

// Event reports a state change so the presentation layer can re-render
type Event struct {
	Type      EventType
	Timestamp time.Time
	RoundID   RoundID
	Round     *Round      // Snapshot after the change
	Result    *TurnResult // Nil for lifecycle events
	Attempt   int         // AI attempt number, for AI events
}
