package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mcoot/wordchain/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.RoundTTL = time.Hour

	s.storage = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

// Round tests

func (s *StorageSuite) TestSaveAndGetRound() {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	round := model.NewRound("ROUND1", 5, now)
	round.PlayerWords = append(round.PlayerWords, "dog")
	round.AIWords = append(round.AIWords, "ogre")
	round.LastOpponentWord = "ogre"
	round.AILives = 3
	round.Version = 4

	err := s.storage.SaveRound(s.ctx, round)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetRound(s.ctx, "ROUND1")
	s.Require().NoError(err)
	s.Equal(round.ID, retrieved.ID)
	s.Equal([]string{"dog"}, retrieved.PlayerWords)
	s.Equal([]string{"ogre"}, retrieved.AIWords)
	s.Equal("ogre", retrieved.LastOpponentWord)
	s.Equal(3, retrieved.AILives)
	s.Equal(4, retrieved.Version)
	s.Equal(model.SidePlayer, retrieved.TurnOwner)
	s.True(now.Equal(retrieved.CreatedAt))
}

func (s *StorageSuite) TestGetRoundNotFound() {
	_, err := s.storage.GetRound(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *StorageSuite) TestDeleteRound() {
	_ = s.storage.SaveRound(s.ctx, model.NewRound("ROUND1", 5, time.Now()))

	err := s.storage.DeleteRound(s.ctx, "ROUND1")
	s.Require().NoError(err)

	_, err = s.storage.GetRound(s.ctx, "ROUND1")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *StorageSuite) TestUpdateRoundChecksVersion() {
	round := model.NewRound("ROUND1", 5, time.Now())
	s.Require().NoError(s.storage.SaveRound(s.ctx, round))

	next := round.Clone()
	next.AILives = 4
	next.Version = 1
	s.Require().NoError(s.storage.UpdateRound(s.ctx, next, 0))
	s.Equal(time.Hour, s.mini.TTL(roundKey("ROUND1")))

	late := round.Clone()
	late.Phase = model.PhasePlayerGaveUp
	late.Version = 1
	s.ErrorIs(s.storage.UpdateRound(s.ctx, late, 0), model.ErrStaleTurn)

	retrieved, err := s.storage.GetRound(s.ctx, "ROUND1")
	s.Require().NoError(err)
	s.Equal(4, retrieved.AILives)
	s.Equal(model.PhaseInProgress, retrieved.Phase)
}

func (s *StorageSuite) TestUpdateRoundNotFound() {
	round := model.NewRound("MISSING", 5, time.Now())
	s.ErrorIs(s.storage.UpdateRound(s.ctx, round, 0), model.ErrRoundNotFound)
}

func (s *StorageSuite) TestRoundTTL() {
	_ = s.storage.SaveRound(s.ctx, model.NewRound("ROUND1", 5, time.Now()))

	ttl := s.mini.TTL(roundKey("ROUND1"))
	s.True(ttl > 0, "Round should have TTL")
}

func (s *StorageSuite) TestRoundExpires() {
	_ = s.storage.SaveRound(s.ctx, model.NewRound("ROUND1", 5, time.Now()))

	s.mini.FastForward(2 * time.Hour)

	_, err := s.storage.GetRound(s.ctx, "ROUND1")
	s.ErrorIs(err, model.ErrRoundNotFound)
}

func (s *StorageSuite) TestGetRoundWithInvalidData() {
	s.Require().NoError(s.mini.Set(roundKey("BROKEN"), "not json"))

	_, err := s.storage.GetRound(s.ctx, "BROKEN")
	s.Error(err)
	s.NotErrorIs(err, model.ErrRoundNotFound)
}

// Dictionary tests

func (s *StorageSuite) TestGetDictionaryWordsNotLoaded() {
	_, err := s.storage.GetDictionaryWords(s.ctx)
	s.ErrorIs(err, model.ErrDictionaryNotLoaded)
}

func (s *StorageSuite) TestSaveAndGetDictionaryWords() {
	words := []string{"apple", "banana", "cherry"}

	err := s.storage.SaveDictionaryWords(s.ctx, words)
	s.Require().NoError(err)

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.ElementsMatch(words, retrieved)
}

func (s *StorageSuite) TestSaveDictionaryWordsReplaces() {
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"apple", "banana"})
	_ = s.storage.SaveDictionaryWords(s.ctx, []string{"cherry"})

	retrieved, err := s.storage.GetDictionaryWords(s.ctx)
	s.Require().NoError(err)
	s.Equal([]string{"cherry"}, retrieved)
}

func (s *StorageSuite) TestPing() {
	s.NoError(s.storage.Ping(s.ctx))
}
