package round

import (
	"context"
	"log/slog"

	"github.com/mcoot/wordchain/internal/model"
)

// runAITurn asks the oracle for up to MaxAIAttempts words starting with
// prefix. round is the state the turn starts from; every write checks that
// the stored round still has its Version, so a give-up or restart that lands
// while the oracle is thinking wins and the turn ends with ErrStaleTurn.
func (c *Controller) runAITurn(ctx context.Context, round *model.Round, prefix string) (*model.TurnResult, *model.Round, error) {
	id := round.ID
	version := round.Version
	used := round.UsedWords()
	result := &model.TurnResult{
		Move: model.Move{Source: model.SideAI},
	}
	logger := c.logger.With(
		slog.String("round_id", string(id)),
		slog.String("prefix", prefix),
	)

	for attempt := 1; attempt <= c.config.MaxAIAttempts; attempt++ {
		result.Attempts = attempt
		c.publish(model.EventAIThinking, round, nil, attempt)

		if err := c.clock.Sleep(ctx, c.config.AIThinkDelay); err != nil {
			return nil, nil, err
		}

		word, found := c.oracle.SuggestWord(ctx, prefix, used)

		unlock := c.lock(id)
		current, err := c.storage.GetRound(ctx, id)
		if err != nil {
			unlock()
			return nil, nil, err
		}
		if current.Version != version {
			unlock()
			logger.Info("discarding stale AI answer", slog.String("word", word))
			return nil, nil, model.ErrStaleTurn
		}
		round = current

		usable := found && usableAIWord(round, word) &&
			(!c.config.EnforceAIPrefix || followsPrefix(word, prefix))
		if usable {
			applyAIWord(round, word, c.clock.Now())
			if err := c.storage.UpdateRound(ctx, round, version); err != nil {
				unlock()
				return nil, nil, err
			}
			unlock()

			result.Outcome = model.OutcomeAISucceeded
			result.Move.Word = word
			result.Phase = round.Phase
			logger.Info("AI played word", slog.String("word", word), slog.Int("attempt", attempt))
			c.publish(model.EventAIWordPlayed, round, result, attempt)
			return result, round, nil
		}

		defeated := applyAIMiss(round, c.clock.Now())
		lastAttempt := attempt == c.config.MaxAIAttempts
		if !defeated && lastAttempt {
			endAITurn(round, c.clock.Now())
		}
		if err := c.storage.UpdateRound(ctx, round, version); err != nil {
			unlock()
			return nil, nil, err
		}
		version = round.Version
		unlock()

		result.LivesLost++
		result.Phase = round.Phase
		logger.Info("AI attempt failed",
			slog.String("word", word),
			slog.Int("attempt", attempt),
			slog.Int("ai_lives", round.AILives),
		)

		if defeated {
			result.Outcome = model.OutcomeAIDefeated
			c.publish(model.EventAIAttemptFailed, round, result, attempt)
			c.logRoundEnded(round)
			c.publish(model.EventRoundEnded, round, result, attempt)
			return result, round, nil
		}

		if lastAttempt {
			result.Outcome = model.OutcomeAIFailedTurn
			c.publish(model.EventAIAttemptFailed, round, result, attempt)
			c.publish(model.EventAITurnFailed, round, result, attempt)
		} else {
			c.publish(model.EventAIAttemptFailed, round, result, attempt)
		}

		if err := c.clock.Sleep(ctx, c.config.AIRetryDelay); err != nil {
			return nil, nil, err
		}
	}

	return result, round, nil
}
