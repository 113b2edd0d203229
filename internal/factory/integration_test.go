package factory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/sketchdash/internal/model"
)

type IntegrationSuite struct {
	suite.Suite
	app *TestApp
	ctx context.Context
}

func TestIntegrationSuite(t *testing.T) {
	suite.Run(t, new(IntegrationSuite))
}

func (s *IntegrationSuite) SetupTest() {
	s.app = NewTestApp()
	s.app.LoadTestWords()
	s.ctx = context.Background()
}

// Test: Complete game flow from creation through a won round to teardown
func (s *IntegrationSuite) TestCompleteGameFlow() {
	gc := s.app.GameController

	// Step 1: Create a game and seat two players
	s.app.MockRandom.QueueString("a1b2c3d4")
	pin, err := gc.Create(s.ctx, "conn-host")
	s.Require().NoError(err)
	s.Equal(model.Pin("a1b2c3d4"), pin)

	name, err := gc.Join(s.ctx, pin, "conn-host", "Ava")
	s.Require().NoError(err)
	s.Equal("Ava", name)
	_, err = gc.Join(s.ctx, pin, "conn-guest", "Ben")
	s.Require().NoError(err)

	// Step 2: Host starts; the first round begins on the next tick.
	// Words come from the fixed test list; index 0 is "apple".
	s.app.MockRandom.QueueIntn(0)
	s.Require().NoError(gc.Start(s.ctx, pin, "conn-host"))
	s.app.MockClock.Advance(0)

	session, err := gc.Get(pin)
	s.Require().NoError(err)
	s.Equal(model.StatusInProgress, session.Status)
	s.True(session.RoundActive)
	s.Equal(8, session.RoundsTotal)

	// The secret is mirrored in the shared store for peer processes
	word, err := s.app.Store.Word(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal("apple", word)

	// Step 3: The guesser wins the round
	result, err := gc.ProcessGuess(s.ctx, pin, "Ben", "apple", "conn-guest")
	s.Require().NoError(err)
	s.Equal(model.OutcomeCorrect, result.Outcome)
	s.Equal("Ben", result.Winner)

	scores, err := gc.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal(map[string]int{"Ava": 5, "Ben": 10}, scores)

	// Step 4: The next round starts after the delay with Ben drawing
	s.app.MockRandom.QueueIntn(1)
	s.app.MockClock.Advance(3 * time.Second)

	session, err = gc.Get(pin)
	s.Require().NoError(err)
	s.True(session.RoundActive)
	s.Equal(1, session.RoundsPlayed)
	s.Equal("conn-guest", session.CurrentDrawer().ConnID)

	// Step 5: Tear down; every trace of the session goes with it
	s.Require().NoError(gc.Destroy(s.ctx, pin, "finished"))

	_, err = gc.Get(pin)
	s.ErrorIs(err, model.ErrSessionNotFound)
	_, err = s.app.Store.Word(s.ctx, pin)
	s.ErrorIs(err, model.ErrWordNotFound)
	storeScores, err := s.app.Store.Scores(s.ctx, pin)
	s.Require().NoError(err)
	s.Empty(storeScores)
}

// Test: factory validation
func (s *IntegrationSuite) TestFactoryRejectsBadStorageType() {
	_, err := New(Config{StorageType: "cassandra"})
	s.Error(err)
}

func (s *IntegrationSuite) TestFactoryRequiresRedisConfig() {
	_, err := New(Config{StorageType: StorageTypeRedis})
	s.Error(err)
}

func (s *IntegrationSuite) TestFactoryDefaultsToMemory() {
	app, err := New(Config{})
	s.Require().NoError(err)
	s.NotNil(app.GameController)
	s.NotNil(app.HubManager)
	s.Positive(app.Words.WordCount())
}
