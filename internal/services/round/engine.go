package round

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/services/oracle"
)

// The functions in this file are the round's state transitions. They never do
// I/O; the Controller decides when to call them and persists the result.

// touch records that the round changed
func touch(r *model.Round, now time.Time) {
	r.Version++
	r.UpdatedAt = now
}

// applyPlayerWord runs the legality checks for a player word the oracle has
// already judged. The first failing check decides the result. changed is
// false when the round was left untouched.
func applyPlayerWord(r *model.Round, word string, valid bool, now time.Time) (result *model.TurnResult, changed bool) {
	result = &model.TurnResult{
		Move: model.Move{Word: word, Source: model.SidePlayer},
	}

	switch {
	case !valid:
		result.Outcome = model.OutcomeRejected
		result.Reason = model.ReasonInvalidWord
		result.LivesLost = losePlayerLife(r)

	case r.IsUsed(word):
		result.Outcome = model.OutcomeRejected
		result.Reason = model.ReasonAlreadyUsed
		result.Phase = r.Phase
		return result, false

	case r.LastOpponentWord != "" && !strings.HasPrefix(word, model.Suffix(r.LastOpponentWord)):
		result.Outcome = model.OutcomeRejected
		result.Reason = model.ReasonWrongPrefix
		result.LivesLost = losePlayerLife(r)

	default:
		result.Outcome = model.OutcomeAccepted
		r.PlayerWords = append(r.PlayerWords, word)
		r.TurnOwner = model.SideAI
	}

	touch(r, now)
	result.Phase = r.Phase
	return result, true
}

// losePlayerLife takes one player life, ending the round at zero
func losePlayerLife(r *model.Round) int {
	if r.PlayerLives == 0 {
		return 0
	}
	r.PlayerLives--
	if r.PlayerLives == 0 {
		r.Phase = model.PhasePlayerLost
	}
	return 1
}

// usableAIWord reports whether the AI may play word: long enough,
// letters only and not used yet. The prefix is the oracle's job.
func usableAIWord(r *model.Round, word string) bool {
	if utf8.RuneCountInString(word) < model.MinAIWordLength || !oracle.IsAlphabetic(word) {
		return false
	}
	return !r.IsUsed(word)
}

// followsPrefix reports whether word starts with prefix, ignoring case
func followsPrefix(word, prefix string) bool {
	return strings.HasPrefix(strings.ToLower(word), strings.ToLower(prefix))
}

// applyAIWord plays the AI's word and hands the turn back to the player
func applyAIWord(r *model.Round, word string, now time.Time) {
	r.AIWords = append(r.AIWords, word)
	r.LastOpponentWord = word
	r.TurnOwner = model.SidePlayer
	touch(r, now)
}

// applyAIMiss takes one AI life for a failed attempt. It returns true if the
// AI is out of lives.
func applyAIMiss(r *model.Round, now time.Time) bool {
	if r.AILives > 0 {
		r.AILives--
	}
	if r.AILives == 0 {
		r.Phase = model.PhasePlayerWon
	}
	touch(r, now)
	return r.AILives == 0
}

// endAITurn passes the turn back after the AI used every attempt. The player
// may then start from any word.
func endAITurn(r *model.Round, now time.Time) {
	r.LastOpponentWord = ""
	r.TurnOwner = model.SidePlayer
	touch(r, now)
}

// giveUp forfeits the round for the player
func giveUp(r *model.Round, now time.Time) {
	r.PlayerLives = 0
	r.Phase = model.PhasePlayerGaveUp
	touch(r, now)
}

// restart replaces the round with a fresh one under the same ID
func restart(r *model.Round, lives int, now time.Time) *model.Round {
	fresh := model.NewRound(r.ID, lives, now)
	fresh.Version = r.Version + 1
	return fresh
}
