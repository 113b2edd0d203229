package game

import (
	"context"
	"log/slog"
	"time"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Start begins the game. Only the host may start, and at least two
// players are required. The first round is scheduled asynchronously so
// the start acknowledgment returns immediately.
func (c *Controller) Start(ctx context.Context, pin model.Pin, requesterID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok {
		return model.ErrSessionNotFound
	}
	if s.HostID != requesterID {
		return model.ErrNotHost
	}
	if s.Status != model.StatusWaiting {
		return model.ErrAlreadyStarted
	}
	if len(s.Players) < 2 {
		return model.ErrInsufficientPlayers
	}

	s.Status = model.StatusInProgress
	s.RoundsTotal = c.cfg.DrawTurnsPerPlayer * len(s.Players)
	s.RoundsPlayed = 0
	s.TurnIndex = 0
	s.RoundActive = false
	s.UpdatedAt = c.clock.Now()

	c.notifier.Broadcast(pin, model.EventGameStarted, model.GameStartedPayload{
		Message: "Game started",
	})

	c.scheduleRoundLocked(s, 0)

	c.logger.Info("game started",
		slog.String("pin", string(pin)),
		slog.Int("players", len(s.Players)),
		slog.Int("rounds_total", s.RoundsTotal),
	)

	return nil
}

// scheduleRoundLocked arms the deferred round-start task, replacing
// any previously pending one
func (c *Controller) scheduleRoundLocked(s *session, delay time.Duration) {
	if s.startTimer != nil {
		s.startTimer.Stop()
	}
	pin, epoch := s.Pin, s.epoch
	s.startTimer = c.clock.AfterFunc(delay, func() {
		c.roundStartTask(pin, epoch)
	})
}

// roundStartTask fires when a scheduled round start comes due. It
// verifies the session is still the one it was scheduled against
// before acting.
func (c *Controller) roundStartTask(pin model.Pin, epoch uint64) {
	defer c.recoverTask(pin, "round_start")

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok || s.epoch != epoch || s.Status != model.StatusInProgress {
		return
	}

	// All rounds played, or the scheduled drawer left: the game is over
	if s.IsComplete() || s.CurrentDrawer() == nil {
		c.endGameLocked(s)
		return
	}

	c.beginRoundLocked(s)
}

// beginRoundLocked starts one round: picks the secret, arms the round
// timer, and notifies the room. The secret goes to the drawer's
// connection alone.
func (c *Controller) beginRoundLocked(s *session) {
	ctx := context.Background()
	drawer := s.CurrentDrawer()

	secret := c.words.Pick()
	if secret == "" {
		c.logger.Error("word source returned no word, ending game",
			slog.String("pin", string(s.Pin)),
		)
		c.endGameLocked(s)
		return
	}

	s.CurrentWord = secret
	s.RoundActive = true
	s.UpdatedAt = c.clock.Now()

	// Best-effort copy in the durable store so a peer process can
	// resolve guesses for this round; bounded by the session TTL
	if err := c.store.SetWord(ctx, s.Pin, secret, c.cfg.SessionTTL); err != nil {
		c.logger.Warn("storing round word failed",
			slog.String("pin", string(s.Pin)),
			slog.String("error", err.Error()),
		)
	}

	if s.roundTimer != nil {
		s.roundTimer.Stop()
	}
	pin, epoch := s.Pin, s.epoch
	s.roundTimer = c.clock.AfterFunc(c.cfg.RoundDuration, func() {
		c.roundTimeoutTask(pin, epoch)
	})

	c.notifier.Broadcast(s.Pin, model.EventRoundStarted, model.RoundStartedPayload{
		DrawerName:      drawer.Name,
		Round:           s.RoundsPlayed + 1,
		TotalRounds:     s.RoundsTotal,
		RoundDurationMS: c.cfg.RoundDuration.Milliseconds(),
	})
	c.notifier.Unicast(drawer.ConnID, model.EventWordToDraw, model.WordToDrawPayload{
		Word: secret,
	})
	c.notifier.Broadcast(s.Pin, model.EventScoreboard, model.ScoreboardPayload{
		Scores: c.scoresLocked(ctx, s.Pin),
	})

	c.logger.Info("round started",
		slog.String("pin", string(s.Pin)),
		slog.String("drawer", drawer.Name),
		slog.Int("round", s.RoundsPlayed+1),
		slog.Int("rounds_total", s.RoundsTotal),
	)
}

// roundTimeoutTask fires when the round duration elapses. If the round
// is still unresolved it ends with no winner.
func (c *Controller) roundTimeoutTask(pin model.Pin, epoch uint64) {
	defer c.recoverTask(pin, "round_timeout")

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok || s.epoch != epoch || !s.RoundActive {
		return
	}

	c.logger.Info("round timed out",
		slog.String("pin", string(pin)),
		slog.Int("round", s.RoundsPlayed+1),
	)
	c.resolveRoundLocked(s, nil)
}

// resolveRoundLocked ends the active round, with a winner or without,
// and schedules the next round start. Called exactly once per round:
// the guess path reaches it only behind the claim lock, and the
// timeout path only while RoundActive is still set.
func (c *Controller) resolveRoundLocked(s *session, winner *string) map[string]int {
	ctx := context.Background()

	word := s.CurrentWord
	if word == "" {
		// Round word may only exist in the durable store if a peer
		// process started the round
		word, _ = c.store.Word(ctx, s.Pin)
	}

	s.RoundActive = false
	s.CurrentWord = ""
	s.RoundsPlayed++
	s.UpdatedAt = c.clock.Now()

	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}

	// The claim is scoped to one round; release it so the next round
	// starts unclaimed
	if err := c.store.ReleaseClaim(ctx, s.Pin); err != nil {
		c.logger.Warn("claim release failed",
			slog.String("pin", string(s.Pin)),
			slog.String("error", err.Error()),
		)
	}

	drawerName := ""
	if drawer := s.CurrentDrawer(); drawer != nil {
		drawerName = drawer.Name
	}

	scores := c.scoresLocked(ctx, s.Pin)
	c.notifier.Broadcast(s.Pin, model.EventRoundEnded, model.RoundEndedPayload{
		Winner: winner,
		Drawer: drawerName,
		Word:   word,
		Scores: scores,
	})

	if len(s.Players) > 0 {
		s.TurnIndex = (s.TurnIndex + 1) % len(s.Players)
	} else {
		s.TurnIndex = 0
	}

	c.scheduleRoundLocked(s, c.cfg.NextRoundDelay)
	return scores
}

// endGameLocked publishes the final scores and tears the session down
func (c *Controller) endGameLocked(s *session) {
	ctx := context.Background()

	s.Status = model.StatusFinished
	c.notifier.Broadcast(s.Pin, model.EventGameOver, model.GameOverPayload{
		Scores: c.scoresLocked(ctx, s.Pin),
	})

	c.logger.Info("game over",
		slog.String("pin", string(s.Pin)),
		slog.Int("rounds_played", s.RoundsPlayed),
	)

	c.destroyLocked(ctx, s.Pin, "finished")
}

// scoresLocked reads the score table, returning an empty map when the
// store read fails so notification payloads stay well-formed
func (c *Controller) scoresLocked(ctx context.Context, pin model.Pin) map[string]int {
	scores, err := c.store.Scores(ctx, pin)
	if err != nil {
		c.logger.Warn("score read failed",
			slog.String("pin", string(pin)),
			slog.String("error", err.Error()),
		)
		return map[string]int{}
	}
	return scores
}
