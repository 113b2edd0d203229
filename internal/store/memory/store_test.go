package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/sketchdash/internal/model"
)

type StoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func (s *StoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
}

const pin = model.Pin("a1b2c3d4")

// Score tests

func (s *StoreSuite) TestScoresEmptyByDefault() {
	scores, err := s.store.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Empty(scores)
}

func (s *StoreSuite) TestInitScoreStartsAtZero() {
	s.Require().NoError(s.store.InitScore(s.ctx, pin, "Ava"))

	scores, err := s.store.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 0}, scores)
}

func (s *StoreSuite) TestInitScoreDoesNotResetExisting() {
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 10))
	s.Require().NoError(s.store.InitScore(s.ctx, pin, "Ava"))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(10, scores["Ava"])
}

func (s *StoreSuite) TestIncrementScoreAccumulates() {
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 10))
	s.Require().NoError(s.store.IncrementScore(s.ctx, pin, "Ava", 5))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(15, scores["Ava"])
}

func (s *StoreSuite) TestRemoveScore() {
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)
	_ = s.store.IncrementScore(s.ctx, pin, "Ben", 5)

	s.Require().NoError(s.store.RemoveScore(s.ctx, pin, "Ava"))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Equal(map[string]int{"Ben": 5}, scores)
}

func (s *StoreSuite) TestScoresAreNamespacedByPin() {
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)

	scores, _ := s.store.Scores(s.ctx, "ffffffff")
	s.Empty(scores)
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

// Claim tests

func (s *StoreSuite) TestClaimExactlyOnce() {
	acquired, err := s.store.TryClaim(s.ctx, pin, "conn-1", time.Second)
	s.Require().NoError(err)
	s.True(acquired)

	acquired, err = s.store.TryClaim(s.ctx, pin, "conn-2", time.Second)
	s.Require().NoError(err)
	s.False(acquired)
}

func (s *StoreSuite) TestClaimCanBeReleasedAndRetaken() {
	_, _ = s.store.TryClaim(s.ctx, pin, "conn-1", time.Second)
	s.Require().NoError(s.store.ReleaseClaim(s.ctx, pin))

	acquired, err := s.store.TryClaim(s.ctx, pin, "conn-2", time.Second)
	s.Require().NoError(err)
	s.True(acquired)
}

func (s *StoreSuite) TestClaimIsNamespacedByPin() {
	_, _ = s.store.TryClaim(s.ctx, pin, "conn-1", time.Second)

	acquired, err := s.store.TryClaim(s.ctx, "ffffffff", "conn-1", time.Second)
	s.Require().NoError(err)
	s.True(acquired)
}

// Cleanup tests

func (s *StoreSuite) TestCleanupRemovesEverything() {
	_ = s.store.IncrementScore(s.ctx, pin, "Ava", 10)
	_ = s.store.SetWord(s.ctx, pin, "apple", time.Minute)
	_, _ = s.store.TryClaim(s.ctx, pin, "conn-1", time.Second)

	s.Require().NoError(s.store.Cleanup(s.ctx, pin))

	scores, _ := s.store.Scores(s.ctx, pin)
	s.Empty(scores)
	_, err := s.store.Word(s.ctx, pin)
	s.ErrorIs(err, model.ErrWordNotFound)
	acquired, _ := s.store.TryClaim(s.ctx, pin, "conn-2", time.Second)
	s.True(acquired)
}
