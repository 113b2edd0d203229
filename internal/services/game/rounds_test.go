package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/mfreeman/sketchdash/internal/dependencies/mocks"
	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/store/memory"
	"github.com/mfreeman/sketchdash/internal/testutil"
	"github.com/mfreeman/sketchdash/internal/words"
)

type RoundsSuite struct {
	suite.Suite
	store      *memory.Store
	clock      *mocks.MockClock
	random     *mocks.MockRandom
	notifier   *mocks.MockNotifier
	cfg        Config
	controller *Controller
	ctx        context.Context
}

func TestRoundsSuite(t *testing.T) {
	suite.Run(t, new(RoundsSuite))
}

func (s *RoundsSuite) SetupTest() {
	s.store = memory.New()
	s.clock = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.random = mocks.NewMockRandom()
	s.notifier = mocks.NewMockNotifier()
	s.cfg = DefaultConfig()
	s.rebuild()
	s.ctx = context.Background()
}

// rebuild recreates the controller, picking up config changes made by
// individual tests before any session exists
func (s *RoundsSuite) rebuild() {
	wordSource := words.NewListSource([]string{"apple"}, s.random)
	s.controller = NewController(s.store, wordSource, s.notifier, s.clock, s.random, s.cfg, testutil.NopLogger())
}

func (s *RoundsSuite) lobby(players ...string) model.Pin {
	s.random.QueueString("a1b2c3d4")
	pin, err := s.controller.Create(s.ctx, "conn-0")
	s.Require().NoError(err)
	for i, name := range players {
		_, err := s.controller.Join(s.ctx, pin, conn(i), name)
		s.Require().NoError(err)
	}
	return pin
}

func conn(i int) string {
	return []string{"conn-0", "conn-1", "conn-2", "conn-3"}[i]
}

// Start validation

func (s *RoundsSuite) TestStartUnknownPin() {
	s.ErrorIs(s.controller.Start(s.ctx, "ffffffff", "conn-0"), model.ErrSessionNotFound)
}

func (s *RoundsSuite) TestStartRequiresHost() {
	pin := s.lobby("Ava", "Ben")
	s.ErrorIs(s.controller.Start(s.ctx, pin, "conn-1"), model.ErrNotHost)
}

func (s *RoundsSuite) TestStartRequiresTwoPlayers() {
	pin := s.lobby("Ava")
	s.ErrorIs(s.controller.Start(s.ctx, pin, "conn-0"), model.ErrInsufficientPlayers)
}

func (s *RoundsSuite) TestStartTwiceFails() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.ErrorIs(s.controller.Start(s.ctx, pin, "conn-0"), model.ErrAlreadyStarted)
}

func (s *RoundsSuite) TestStartComputesRoundsTotal() {
	pin := s.lobby("Ava", "Ben", "Cleo")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))

	session, _ := s.controller.Get(pin)
	s.Equal(model.StatusInProgress, session.Status)
	s.Equal(12, session.RoundsTotal) // 4 draw turns x 3 players
}

// Round lifecycle

func (s *RoundsSuite) TestFirstRoundStartsAsynchronously() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))

	// Start acknowledged but no round yet
	s.Require().Len(s.notifier.BroadcastsOf(model.EventGameStarted), 1)
	s.Empty(s.notifier.BroadcastsOf(model.EventRoundStarted))

	s.clock.Advance(0)

	started := s.notifier.BroadcastsOf(model.EventRoundStarted)
	s.Require().Len(started, 1)
	payload := started[0].Payload.(model.RoundStartedPayload)
	s.Equal("Ava", payload.DrawerName)
	s.Equal(1, payload.Round)
	s.Equal(8, payload.TotalRounds)
	s.Equal(s.cfg.RoundDuration.Milliseconds(), payload.RoundDurationMS)
}

func (s *RoundsSuite) TestSecretGoesOnlyToDrawer() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)

	unicasts := s.notifier.UnicastsOf(model.EventWordToDraw)
	s.Require().Len(unicasts, 1)
	s.Equal("conn-0", unicasts[0].ConnID)
	s.Equal("apple", unicasts[0].Payload.(model.WordToDrawPayload).Word)

	_ = pin
}

func (s *RoundsSuite) TestRoundStartPersistsWordToStore() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)

	word, err := s.store.Word(s.ctx, pin)
	s.Require().NoError(err)
	s.Equal("apple", word)
}

func (s *RoundsSuite) TestRoundTimeoutResolvesWithoutWinner() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)

	s.clock.Advance(s.cfg.RoundDuration)

	ended := s.notifier.BroadcastsOf(model.EventRoundEnded)
	s.Require().Len(ended, 1)
	payload := ended[0].Payload.(model.RoundEndedPayload)
	s.Nil(payload.Winner)
	s.Equal("Ava", payload.Drawer)
	s.Equal("apple", payload.Word)

	session, _ := s.controller.Get(pin)
	s.False(session.RoundActive)
	s.Equal(1, session.RoundsPlayed)
}

func (s *RoundsSuite) TestTurnRotatesAfterRound() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)
	s.clock.Advance(s.cfg.RoundDuration)

	s.clock.Advance(s.cfg.NextRoundDelay)

	started := s.notifier.BroadcastsOf(model.EventRoundStarted)
	s.Require().Len(started, 2)
	second := started[1].Payload.(model.RoundStartedPayload)
	s.Equal("Ben", second.DrawerName)
	s.Equal(2, second.Round)
	_ = pin
}

func (s *RoundsSuite) TestGameEndsAfterAllRounds() {
	s.cfg.DrawTurnsPerPlayer = 1
	s.rebuild()

	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))

	// Two rounds in total; let both time out
	s.clock.Advance(0)
	s.clock.Advance(s.cfg.RoundDuration)
	s.clock.Advance(s.cfg.NextRoundDelay)
	s.clock.Advance(s.cfg.RoundDuration)
	s.clock.Advance(s.cfg.NextRoundDelay)

	s.Require().Len(s.notifier.BroadcastsOf(model.EventRoundEnded), 2)
	s.Require().Len(s.notifier.BroadcastsOf(model.EventGameOver), 1)

	destroyed := s.notifier.BroadcastsOf(model.EventGameDestroyed)
	s.Require().Len(destroyed, 1)
	s.Equal("finished", destroyed[0].Payload.(model.GameDestroyedPayload).Reason)

	_, err := s.controller.Get(pin)
	s.ErrorIs(err, model.ErrSessionNotFound)
}

func (s *RoundsSuite) TestScoreboardBroadcastOnRoundStart() {
	pin := s.lobby("Ava", "Ben")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)

	boards := s.notifier.BroadcastsOf(model.EventScoreboard)
	s.Require().Len(boards, 1)
	payload := boards[0].Payload.(model.ScoreboardPayload)
	s.Equal(map[string]int{"Ava": 0, "Ben": 0}, payload.Scores)
}

func (s *RoundsSuite) TestRoundsContinueWhenDrawerLeaves() {
	pin := s.lobby("Ava", "Ben", "Cleo")
	s.Require().NoError(s.controller.Start(s.ctx, pin, "conn-0"))
	s.clock.Advance(0)

	// Drawer Ava leaves mid-round; the round itself still resolves
	s.Require().NoError(s.controller.Leave(s.ctx, pin, "conn-0"))
	s.clock.Advance(s.cfg.RoundDuration)
	s.clock.Advance(s.cfg.NextRoundDelay)

	started := s.notifier.BroadcastsOf(model.EventRoundStarted)
	s.Require().Len(started, 2)
	s.Equal("Cleo", started[1].Payload.(model.RoundStartedPayload).DrawerName)
}
