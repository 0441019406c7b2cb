package response

import (
	"fmt"
	"time"

	"github.com/mcoot/wordchain/internal/model"
)

// Round represents a round in API responses
type Round struct {
	ID               string    `json:"id"`
	PlayerLives      int       `json:"player_lives"`
	AILives          int       `json:"ai_lives"`
	PlayerWords      []string  `json:"player_words"`
	AIWords          []string  `json:"ai_words"`
	UsedWords        []string  `json:"used_words"`
	LastOpponentWord string    `json:"last_opponent_word,omitempty"`
	RequiredPrefix   string    `json:"required_prefix,omitempty"`
	TurnOwner        string    `json:"turn_owner"`
	Phase            string    `json:"phase"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// RoundFromModel converts a model.Round to a response Round
func RoundFromModel(r *model.Round) Round {
	playerWords := r.PlayerWords
	if playerWords == nil {
		playerWords = []string{}
	}
	aiWords := r.AIWords
	if aiWords == nil {
		aiWords = []string{}
	}

	return Round{
		ID:               string(r.ID),
		PlayerLives:      r.PlayerLives,
		AILives:          r.AILives,
		PlayerWords:      playerWords,
		AIWords:          aiWords,
		UsedWords:        r.UsedWords(),
		LastOpponentWord: r.LastOpponentWord,
		RequiredPrefix:   r.RequiredPrefix(),
		TurnOwner:        string(r.TurnOwner),
		Phase:            string(r.Phase),
		Version:          r.Version,
		CreatedAt:        r.CreatedAt,
		UpdatedAt:        r.UpdatedAt,
	}
}

// TurnResult represents the outcome of a turn
type TurnResult struct {
	Outcome   string      `json:"outcome"`
	Word      string      `json:"word,omitempty"`
	Source    string      `json:"source"`
	Reason    string      `json:"reason,omitempty"`
	LivesLost int         `json:"lives_lost"`
	Attempts  int         `json:"attempts,omitempty"`
	Phase     string      `json:"phase"`
	Message   string      `json:"message"`
	AIReply   *TurnResult `json:"ai_reply,omitempty"`
}

// TurnResultFromModel converts a model.TurnResult, including any nested AI reply
func TurnResultFromModel(r *model.TurnResult) TurnResult {
	result := TurnResult{
		Outcome:   string(r.Outcome),
		Word:      r.Move.Word,
		Source:    string(r.Move.Source),
		Reason:    string(r.Reason),
		LivesLost: r.LivesLost,
		Attempts:  r.Attempts,
		Phase:     string(r.Phase),
		Message:   FeedbackMessage(r),
	}
	if r.AIReply != nil {
		reply := TurnResultFromModel(r.AIReply)
		result.AIReply = &reply
	}
	return result
}

// FeedbackMessage returns the line shown to the player for a turn result
func FeedbackMessage(r *model.TurnResult) string {
	var msg string
	switch r.Outcome {
	case model.OutcomeAccepted:
		msg = "Word accepted."
	case model.OutcomeRejected:
		switch r.Reason {
		case model.ReasonInvalidWord:
			msg = "Invalid word! You lost a life."
		case model.ReasonAlreadyUsed:
			msg = "Word has already been used! Try another."
		case model.ReasonWrongPrefix:
			msg = "Your word must start with the last two letters of the AI's word! You lost a life."
		}
	case model.OutcomeAISucceeded:
		msg = fmt.Sprintf("AI played %q.", r.Move.Word)
		if r.LivesLost > 0 {
			msg = "AI lost a life for an invalid word! Trying again... " + msg
		}
	case model.OutcomeAIFailedTurn:
		msg = "AI couldn't find a valid word. Your turn!"
	case model.OutcomeAIDefeated:
		msg = "Congratulations! You defeated the AI!"
	}

	if r.Phase == model.PhasePlayerLost {
		msg += " Game over!"
	}
	return msg
}

// SubmitResponse is the response for playing a word
type SubmitResponse struct {
	Result TurnResult `json:"result"`
	Round  Round      `json:"round"`
}

// Event is a round event as sent over the event stream
type Event struct {
	Type      string      `json:"type"`
	Timestamp time.Time   `json:"timestamp"`
	RoundID   string      `json:"round_id"`
	Round     *Round      `json:"round,omitempty"`
	Result    *TurnResult `json:"result,omitempty"`
	Attempt   int         `json:"attempt,omitempty"`
}

// EventFromModel converts a model.Event
func EventFromModel(e model.Event) Event {
	event := Event{
		Type:      string(e.Type),
		Timestamp: e.Timestamp,
		RoundID:   string(e.RoundID),
		Attempt:   e.Attempt,
	}
	if e.Round != nil {
		round := RoundFromModel(e.Round)
		event.Round = &round
	}
	if e.Result != nil {
		result := TurnResultFromModel(e.Result)
		event.Result = &result
	}
	return event
}

// Health is the response for the health endpoint
type Health struct {
	Status  string `json:"status"`
	Storage string `json:"storage"`
	Oracle  string `json:"oracle"`
}
