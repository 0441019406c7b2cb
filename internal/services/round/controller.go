package round

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/mcoot/wordchain/internal/dependencies/clock"
	"github.com/mcoot/wordchain/internal/dependencies/random"
	"github.com/mcoot/wordchain/internal/model"
	"github.com/mcoot/wordchain/internal/services/oracle"
	"github.com/mcoot/wordchain/internal/storage"
)

const (
	// RoundIDAlphabet is the character set for generating round IDs
	RoundIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
	// RoundIDLength is the length of generated round IDs
	RoundIDLength = 12
)

// EventPublisher receives round events for the presentation layer
type EventPublisher interface {
	Publish(event model.Event)
}

type nopPublisher struct{}

func (nopPublisher) Publish(model.Event) {}

// Controller drives rounds: it asks the oracle, applies transitions,
// persists the round and publishes events.
//
// Oracle calls are made without holding the round lock. Each transition
// re-reads the round and is dropped with ErrStaleTurn if the round's
// Version moved on in the meantime.
type Controller struct {
	storage   storage.Storage
	oracle    oracle.Oracle
	publisher EventPublisher
	clock     clock.Clock
	random    random.Random
	config    Config
	logger    *slog.Logger

	locks sync.Map // model.RoundID -> *sync.Mutex
}

// NewController creates a new round Controller. A nil publisher discards events.
func NewController(
	store storage.Storage,
	wordOracle oracle.Oracle,
	publisher EventPublisher,
	clk clock.Clock,
	rnd random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	if publisher == nil {
		publisher = nopPublisher{}
	}
	return &Controller{
		storage:   store,
		oracle:    wordOracle,
		publisher: publisher,
		clock:     clk,
		random:    rnd,
		config:    cfg,
		logger:    logger.With(slog.String("component", "round-controller")),
	}
}

// Config returns the rules this controller plays by
func (c *Controller) Config() Config {
	return c.config
}

// lock serializes transitions on one round within this process. Writes go
// through Storage.UpdateRound, whose version check covers other processes.
func (c *Controller) lock(id model.RoundID) func() {
	m, _ := c.locks.LoadOrStore(id, &sync.Mutex{})
	mu := m.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// CreateRound starts a new round with the player to move
func (c *Controller) CreateRound(ctx context.Context) (*model.Round, error) {
	now := c.clock.Now()
	id := model.RoundID(c.random.String(RoundIDLength, RoundIDAlphabet))
	round := model.NewRound(id, c.config.StartingLives, now)

	if err := c.storage.SaveRound(ctx, round); err != nil {
		c.logger.Error("failed to save round",
			slog.String("round_id", string(id)),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	c.logger.Info("round created",
		slog.String("round_id", string(id)),
		slog.Int("starting_lives", c.config.StartingLives),
	)
	c.publish(model.EventRoundStarted, round, nil, 0)

	return round, nil
}

// GetRound retrieves a round by ID
func (c *Controller) GetRound(ctx context.Context, id model.RoundID) (*model.Round, error) {
	return c.storage.GetRound(ctx, id)
}

// SubmitPlayerWord plays a word for the player. When the word is accepted the
// AI answers before this returns, and its result is nested in the accepted
// result. The returned round is the state after both turns.
func (c *Controller) SubmitPlayerWord(ctx context.Context, id model.RoundID, word string) (*model.TurnResult, *model.Round, error) {
	round, err := c.storage.GetRound(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if err := checkPlayerTurn(round); err != nil {
		return nil, nil, err
	}
	version := round.Version

	valid := c.oracle.IsValidWord(ctx, word)

	unlock := c.lock(id)
	round, err = c.storage.GetRound(ctx, id)
	if err != nil {
		unlock()
		return nil, nil, err
	}
	if round.Version != version {
		unlock()
		c.logger.Info("discarding stale verdict",
			slog.String("round_id", string(id)),
			slog.String("word", word),
		)
		return nil, nil, model.ErrStaleTurn
	}

	result, changed := applyPlayerWord(round, word, valid, c.clock.Now())
	if changed {
		if err := c.storage.UpdateRound(ctx, round, version); err != nil {
			unlock()
			return nil, nil, err
		}
	}
	unlock()

	c.logger.Info("player word judged",
		slog.String("round_id", string(id)),
		slog.String("word", word),
		slog.String("outcome", string(result.Outcome)),
		slog.String("reason", string(result.Reason)),
		slog.Int("player_lives", round.PlayerLives),
	)

	if result.Outcome != model.OutcomeAccepted {
		c.publish(model.EventPlayerWordRejected, round, result, 0)
		if round.IsOver() {
			c.logRoundEnded(round)
			c.publish(model.EventRoundEnded, round, result, 0)
		}
		return result, round, nil
	}

	c.publish(model.EventPlayerWordAccepted, round, result, 0)

	// The AI turn must finish even if the caller goes away, otherwise the
	// round would be left waiting on the AI.
	aiCtx := context.WithoutCancel(ctx)
	aiResult, after, err := c.runAITurn(aiCtx, round, model.Suffix(word))
	switch {
	case errors.Is(err, model.ErrStaleTurn), errors.Is(err, model.ErrRoundNotFound):
		after, err = c.storage.GetRound(aiCtx, id)
		if err != nil {
			return result, round, nil
		}
		return result, after, nil
	case err != nil:
		return nil, nil, err
	}

	result.AIReply = aiResult
	return result, after, nil
}

// RunAITurn plays the AI's turn on a round that is waiting for it. Rounds
// only wait for the AI if a previous AI turn was interrupted.
func (c *Controller) RunAITurn(ctx context.Context, id model.RoundID) (*model.TurnResult, *model.Round, error) {
	round, err := c.storage.GetRound(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if round.IsOver() {
		return nil, nil, model.ErrRoundOver
	}
	if round.TurnOwner != model.SideAI || len(round.PlayerWords) == 0 {
		return nil, nil, model.ErrNotAITurn
	}

	prefix := model.Suffix(round.PlayerWords[len(round.PlayerWords)-1])
	return c.runAITurn(ctx, round, prefix)
}

// GiveUp forfeits the round for the player. It is allowed at any point,
// including while the AI is thinking. Giving up a finished round does nothing.
func (c *Controller) GiveUp(ctx context.Context, id model.RoundID) (*model.Round, error) {
	unlock := c.lock(id)
	round, err := c.storage.GetRound(ctx, id)
	if err != nil {
		unlock()
		return nil, err
	}
	if round.IsOver() {
		unlock()
		return round, nil
	}

	prev := round.Version
	giveUp(round, c.clock.Now())
	if err := c.storage.UpdateRound(ctx, round, prev); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	c.logRoundEnded(round)
	c.publish(model.EventRoundEnded, round, nil, 0)
	return round, nil
}

// Restart replaces the round with a fresh one under the same ID
func (c *Controller) Restart(ctx context.Context, id model.RoundID) (*model.Round, error) {
	unlock := c.lock(id)
	round, err := c.storage.GetRound(ctx, id)
	if err != nil {
		unlock()
		return nil, err
	}

	fresh := restart(round, c.config.StartingLives, c.clock.Now())
	if err := c.storage.UpdateRound(ctx, fresh, round.Version); err != nil {
		unlock()
		return nil, err
	}
	unlock()

	c.logger.Info("round restarted", slog.String("round_id", string(id)))
	c.publish(model.EventRoundRestarted, fresh, nil, 0)
	return fresh, nil
}

// DeleteRound removes a round. An AI turn still running for it is abandoned.
func (c *Controller) DeleteRound(ctx context.Context, id model.RoundID) error {
	unlock := c.lock(id)
	if _, err := c.storage.GetRound(ctx, id); err != nil {
		unlock()
		return err
	}
	if err := c.storage.DeleteRound(ctx, id); err != nil {
		unlock()
		return err
	}
	unlock()
	c.locks.Delete(id)

	c.logger.Info("round deleted", slog.String("round_id", string(id)))
	return nil
}

func checkPlayerTurn(round *model.Round) error {
	if round.IsOver() {
		return model.ErrRoundOver
	}
	if round.TurnOwner != model.SidePlayer {
		return model.ErrNotPlayerTurn
	}
	return nil
}

func (c *Controller) publish(eventType model.EventType, round *model.Round, result *model.TurnResult, attempt int) {
	if result != nil {
		snapshot := *result
		result = &snapshot
	}
	c.publisher.Publish(model.Event{
		Type:      eventType,
		Timestamp: c.clock.Now(),
		RoundID:   round.ID,
		Round:     round.Clone(),
		Result:    result,
		Attempt:   attempt,
	})
}

func (c *Controller) logRoundEnded(round *model.Round) {
	c.logger.Info("round ended",
		slog.String("round_id", string(round.ID)),
		slog.String("phase", string(round.Phase)),
		slog.Int("player_words", len(round.PlayerWords)),
		slog.Int("ai_words", len(round.AIWords)),
	)
}
