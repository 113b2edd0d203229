package game

import (
	"context"
	"log/slog"
	"strings"

	"github.com/mfreeman/sketchdash/internal/model"
)

// GuessResult is the structured outcome of a guess submission
type GuessResult struct {
	Outcome model.GuessOutcome
	Winner  string         // Set when Outcome is correct
	Word    string         // Revealed word, set when Outcome is correct
	Scores  map[string]int // Updated scores, set when Outcome is correct
}

// ProcessGuess evaluates one guess against the active round.
//
// A correct guess must win the round's claim before any scoring takes
// effect: the claim lock's set-if-absent semantics guarantee exactly
// one winner among concurrently arriving correct guesses, including
// guesses handled by peer processes sharing the durable store. A
// correct guess that loses the claim race is reported as
// OutcomeAlreadyClaimed and has no side effects.
func (c *Controller) ProcessGuess(ctx context.Context, pin model.Pin, guesserName, text, connID string) (GuessResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok {
		return GuessResult{}, model.ErrSessionNotFound
	}

	if s.Status != model.StatusInProgress || !s.RoundActive {
		return GuessResult{Outcome: model.OutcomeNoActiveRound}, nil
	}

	drawer := s.CurrentDrawer()
	if drawer == nil {
		return GuessResult{Outcome: model.OutcomeNoActiveRound}, nil
	}
	if drawer.ConnID == connID {
		return GuessResult{Outcome: model.OutcomeDrawerCannotGuess}, nil
	}

	// Local copy first; the durable store is the fallback for rounds
	// started by a peer process
	secret := s.CurrentWord
	if secret == "" {
		secret, _ = c.store.Word(ctx, pin)
	}
	if secret == "" {
		return GuessResult{Outcome: model.OutcomeNoActiveRound}, nil
	}

	if !strings.EqualFold(strings.TrimSpace(text), strings.TrimSpace(secret)) {
		return GuessResult{Outcome: model.OutcomeIncorrect}, nil
	}

	acquired, err := c.store.TryClaim(ctx, pin, connID, c.cfg.ClaimTTL)
	if err != nil {
		// The failover store absorbs backend errors itself; an error
		// here means the claim state is unknown, so treat the claim
		// as lost rather than risk a double credit
		c.logger.Warn("claim attempt errored",
			slog.String("pin", string(pin)),
			slog.String("error", err.Error()),
		)
		return GuessResult{Outcome: model.OutcomeAlreadyClaimed}, nil
	}
	if !acquired {
		return GuessResult{Outcome: model.OutcomeAlreadyClaimed}, nil
	}

	// Credit the guesser and the drawer. Best effort: a store failure
	// degrades durability but never aborts the round resolution.
	if err := c.store.IncrementScore(ctx, pin, guesserName, c.cfg.GuesserPoints); err != nil {
		c.logger.Warn("guesser credit failed",
			slog.String("pin", string(pin)),
			slog.String("player", guesserName),
			slog.String("error", err.Error()),
		)
	}
	if err := c.store.IncrementScore(ctx, pin, drawer.Name, c.cfg.DrawerPoints); err != nil {
		c.logger.Warn("drawer credit failed",
			slog.String("pin", string(pin)),
			slog.String("player", drawer.Name),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("round won",
		slog.String("pin", string(pin)),
		slog.String("winner", guesserName),
		slog.String("drawer", drawer.Name),
		slog.Int("round", s.RoundsPlayed+1),
	)

	winner := guesserName
	scores := c.resolveRoundLocked(s, &winner)

	return GuessResult{
		Outcome: model.OutcomeCorrect,
		Winner:  guesserName,
		Word:    secret,
		Scores:  scores,
	}, nil
}
