package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/sketchdash/internal/model"
)

type StoreSuite struct {
	suite.Suite
	mini  *miniredis.Miniredis
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	cfg := DefaultConfig()
	cfg.ScoreTTL = time.Hour

	s.store = NewWithClient(client, cfg)
	s.ctx = context.Background()
}

func (s *StoreSuite) TearDownTest() {
	if s.store != nil {
		_ = s.store.Close()
	}
}

const pin = model.Pin("a1b2c3d4")

// Score tests

func (s *StoreSuite) TestIncrementAndReadScores() {
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 10))
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 5))
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ben", 10))

	scores, err := s.store.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 15, "Ben": 10}, scores)
}

func (s *StoreSuite) TestScoreHashCarriesTTL() {
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 10))

	ttl := s.mini.TTL(scoresKey(pin))
	s.Equal(time.Hour, ttl)
}

func (s *StoreSuite) TestInitScoreDoesNotResetExisting() {
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 10))
	s.Require().NoError(s.store.InitScore(s.ctx, pin, "Ava"))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(10, scores["Ava"])
}

func (s *StoreSuite) TestInitScoreStartsAtZero() {
	s.Require().NoError(s.store.InitScore(s.ctx, pin, "Ava"))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(map[string]int{"Ava": 0}, scores)
}

func (s *StoreSuite) TestRemoveScore() {
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)
	_ = s.store.IncrementScore(s.ctx, pin, "Ben", 5)

	s.Require().NoError(s.store.RemoveScore(s.ctx, pin, "Ava"))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(map[string]int{"Ben": 5}, scores)
}

func (s *StoreSuite) TestScoresSkipCorruptEntries() {
	s.mini.HSet(scoresKey(pin), "Ava", "10", "Ben", "not-a-number")

	scores, err := s.store.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 10}, scores)
}

// Word tests

func (s *StoreSuite) TestWordNotFound() {
	_, err := s.store.Word(s.ctx, pin)
	s.ErrorIs(err, model.ErrWordNotFound)
}

func (s *StoreSuite) TestSetAndGetWord() {
	s.Require().NoError(s.store.SetWord(s.ctx, pin, "apple", time.Minute))

	word, err := s.store.Word(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal("apple", word)
}

func (s *StoreSuite) TestWordExpires() {
	s.Require().NoError(s.store.SetWord(s.ctx, pin, "apple", time.Minute))

	s.mini.FastForward(2 * time.Minute)

	_, err := s.store.Word(s.ctx, pin)
	s.ErrorIs(err, model.ErrWordNotFound)
}

// Claim tests

func (s *StoreSuite) TestClaimExactlyOnce() {
	acquired, err := s.store.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)
	s.Require().NoError(err)
	s.True(acquired)

	acquired, err = s.store.TryClaim(s.ctx, pin, "conn-2", 5*time.Second)
	s.Require().NoError(err)
	s.False(acquired)
}

func (s *StoreSuite) TestClaimExpiresAfterTTL() {
	acquired, _ := s.store.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)
	s.Require().True(acquired)

	s.mini.FastForward(6 * time.Second)

	acquired, err := s.store.TryClaim(s.ctx, pin, "conn-2", 5*time.Second)
	s.Require().NoError(err)
	s.True(acquired)
}

func (s *StoreSuite) TestReleaseClaim() {
	_, _ = s.store.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)
	s.Require().NoError(s.store.ReleaseClaim(s.ctx, pin))

	acquired, err := s.store.TryClaim(s.ctx, pin, "conn-2", 5*time.Second)
	s.Require().NoError(err)
	s.True(acquired)
}

// Cleanup tests

func (s *StoreSuite) TestCleanupRemovesAllSessionKeys() {
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)
	_ = s.store.SetWord(s.ctx, pin, "apple", time.Minute)
	_, _ = s.store.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)

	s.Require().NoError(s.store.Cleanup(s.ctx, pin))

	s.False(s.mini.Exists(scoresKey(pin)))
	s.False(s.mini.Exists(wordKey(pin)))
	s.False(s.mini.Exists(claimKey(pin)))
}

func (s *StoreSuite) TestCleanupLeavesOtherSessionsAlone() {
	other := model.Pin("deadbeef")
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)
	_ = s.store.IncrementScore(s.ctx, other, "Ben", 5)

	s.Require().NoError(s.store.Cleanup(s.ctx, pin))

	scores, _ := s.store.Scores(s.ctx, other)
	s.Equal(map[string]int{"Ben": 5}, scores)
}
