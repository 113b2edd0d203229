package store_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/store"
	"github.com/mfreeman/sketchdash/internal/store/memory"
	"github.com/mfreeman/sketchdash/internal/testutil"
)

var errDown = errors.New("backend unreachable")

// downStore is a primary backend whose every operation fails
type downStore struct{}

var _ store.Store = downStore{}

func (downStore) IncrementScore(context.Context, model.Pin, string, int) error {
	return errDown
}
func (downStore) Scores(context.Context, model.Pin) (map[string]int, error) {
	return nil, errDown
}
func (downStore) InitScore(context.Context, model.Pin, string) error   { return errDown }
func (downStore) RemoveScore(context.Context, model.Pin, string) error { return errDown }
func (downStore) SetWord(context.Context, model.Pin, string, time.Duration) error {
	return errDown
}
func (downStore) Word(context.Context, model.Pin) (string, error) { return "", errDown }
func (downStore) TryClaim(context.Context, model.Pin, string, time.Duration) (bool, error) {
	return false, errDown
}
func (downStore) ReleaseClaim(context.Context, model.Pin) error { return errDown }
func (downStore) Cleanup(context.Context, model.Pin) error      { return errDown }

type FailoverSuite struct {
	suite.Suite
	ctx context.Context
}

func TestFailoverSuite(t *testing.T) {
	suite.Run(t, new(FailoverSuite))
}

func (s *FailoverSuite) SetupTest() {
	s.ctx = context.Background()
}

const pin = model.Pin("a1b2c3d4")

func (s *FailoverSuite) newDownPrimary() *store.Failover {
	return store.NewFailover(downStore{}, memory.New(), testutil.NopLogger())
}

func (s *FailoverSuite) TestNilPrimaryUsesFallback() {
	f := store.NewFailover(nil, memory.New(), testutil.NopLogger())

	s.Require().NoError(f.IncrementScore(s.ctx, pin, "Ava", 10))

	scores, err := f.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 10}, scores)
}

func (s *FailoverSuite) TestScoringSurvivesPrimaryOutage() {
	f := s.newDownPrimary()

	s.Require().NoError(f.InitScore(s.ctx, pin, "Ava"))
	s.Require().NoError(f.IncrementScore(s.ctx, pin, "Ava", 10))
	s.Require().NoError(f.IncrementScore(s.ctx, pin, "Ben", 5))

	scores, err := f.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 10, "Ben": 5}, scores)
}

func (s *FailoverSuite) TestWordSurvivesPrimaryOutage() {
	f := s.newDownPrimary()

	s.Require().NoError(f.SetWord(s.ctx, pin, "apple", time.Minute))

	word, err := f.Word(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal("apple", word)
}

func (s *FailoverSuite) TestWordNotFoundPassesThrough() {
	f := store.NewFailover(nil, memory.New(), testutil.NopLogger())

	_, err := f.Word(s.ctx, pin)
	s.ErrorIs(err, model.ErrWordNotFound)
}

func (s *FailoverSuite) TestClaimErrorMeansNoWinner() {
	f := s.newDownPrimary()

	// A failing primary claim must not fall back to the local
	// backend: two processes could each win on their own fallback
	acquired, err := f.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)
	s.Require().NoError(err)
	s.False(acquired)
}

func (s *FailoverSuite) TestClaimUsesFallbackWhenNoPrimary() {
	f := store.NewFailover(nil, memory.New(), testutil.NopLogger())

	acquired, err := f.TryClaim(s.ctx, pin, "conn-1", 5*time.Second)
	s.Require().NoError(err)
	s.True(acquired)

	acquired, err = f.TryClaim(s.ctx, pin, "conn-2", 5*time.Second)
	s.Require().NoError(err)
	s.False(acquired)
}

func (s *FailoverSuite) TestCleanupRunsOnFallbackDespitePrimaryError() {
	f := s.newDownPrimary()
	_ = f.IncrementScore(s.ctx, pin, "Ava", 10)

	s.Require().NoError(f.Cleanup(s.ctx, pin))

	scores, _ := f.Scores(s.ctx, pin)
	s.Empty(scores)
}

func (s *FailoverSuite) TestRemoveScoreRunsOnBothBackends() {
	fallback := memory.New()
	f := store.NewFailover(downStore{}, fallback, testutil.NopLogger())
	_ = f.IncrementScore(s.ctx, pin, "Ava", 10)

	s.Require().NoError(f.RemoveScore(s.ctx, pin, "Ava"))

	scores, _ := fallback.Scores(s.ctx, pin)
	s.NotContains(scores, "Ava")
}
