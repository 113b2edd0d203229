// Package game is the session-management core: it owns the registry of
// live game sessions and drives each one's round state machine.
//
// Every state transition, whether triggered by an inbound call or by a
// timer firing, runs under the controller's mutex and to completion, so
// no two mutations of the same session ever interleave within a
// process. Cross-process races on a shared durable store are resolved
// by the store's claim lock alone; see ProcessGuess.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/mfreeman/sketchdash/internal/dependencies/clock"
	"github.com/mfreeman/sketchdash/internal/dependencies/random"
	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/notify"
	"github.com/mfreeman/sketchdash/internal/store"
	"github.com/mfreeman/sketchdash/internal/words"
)

const (
	// PinLength is the length of generated session pins
	PinLength = 8
	// PinAlphabet is the characters used in session pins
	PinAlphabet = "0123456789abcdef"
)

// session pairs the shared session model with the controller-internal
// timers that drive it. The epoch is assigned once at creation and
// never reused, so a timer task scheduled against a destroyed session
// can detect that its session is gone even if the pin was reallocated.
type session struct {
	model.GameSession

	epoch uint64

	expiryTimer clock.Timer // Destroys the session if it stays empty
	roundTimer  clock.Timer // Resolves the active round with no winner
	startTimer  clock.Timer // Pending (delayed) round start
}

// stopTimers cancels every pending timer for the session
func (s *session) stopTimers() {
	if s.expiryTimer != nil {
		s.expiryTimer.Stop()
		s.expiryTimer = nil
	}
	if s.roundTimer != nil {
		s.roundTimer.Stop()
		s.roundTimer = nil
	}
	if s.startTimer != nil {
		s.startTimer.Stop()
		s.startTimer = nil
	}
}

// Controller owns the collection of live sessions and all gameplay
// transitions on them
type Controller struct {
	store    store.Store
	words    words.Source
	notifier notify.Notifier
	clock    clock.Clock
	random   random.Random
	cfg      Config
	logger   *slog.Logger

	mu        sync.Mutex
	sessions  map[model.Pin]*session
	nextEpoch uint64
}

// NewController creates a new game controller
func NewController(
	store store.Store,
	wordSource words.Source,
	notifier notify.Notifier,
	clock clock.Clock,
	random random.Random,
	cfg Config,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		store:    store,
		words:    wordSource,
		notifier: notifier,
		clock:    clock,
		random:   random,
		cfg:      cfg,
		logger:   logger.With(slog.String("component", "game")),
		sessions: make(map[model.Pin]*session),
	}
}

// Create allocates a new session with the given connection as host.
// The session starts empty; the host joins like any other player.
func (c *Controller) Create(ctx context.Context, hostConnID string) (model.Pin, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.sessions) >= c.cfg.MaxSessions {
		return "", fmt.Errorf("%w (%d)", model.ErrCapacityExceeded, c.cfg.MaxSessions)
	}

	// Generate a pin unique among live sessions
	var pin model.Pin
	for {
		pin = model.Pin(c.random.String(PinLength, PinAlphabet))
		if _, exists := c.sessions[pin]; !exists {
			break
		}
	}

	now := c.clock.Now()
	c.nextEpoch++
	s := &session{
		GameSession: model.GameSession{
			Pin:       pin,
			HostID:    hostConnID,
			Status:    model.StatusWaiting,
			Players:   []model.Player{},
			CreatedAt: now,
			UpdatedAt: now,
		},
		epoch: c.nextEpoch,
	}

	// A reused pin must not inherit stale store keys
	if err := c.store.Cleanup(ctx, pin); err != nil {
		c.logger.Warn("stale key cleanup failed on create",
			slog.String("pin", string(pin)),
			slog.String("error", err.Error()),
		)
	}

	c.armExpiryLocked(s)
	c.sessions[pin] = s

	c.logger.Info("session created",
		slog.String("pin", string(pin)),
		slog.String("host", hostConnID),
		slog.Int("live_sessions", len(c.sessions)),
	)

	return pin, nil
}

// Join adds a player to a waiting session. The desired display name is
// deduplicated with a numeric suffix when already taken.
func (c *Controller) Join(ctx context.Context, pin model.Pin, connID, desiredName string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok {
		return "", model.ErrSessionNotFound
	}
	if s.Status != model.StatusWaiting {
		return "", model.ErrAlreadyStarted
	}
	if len(s.Players) >= c.cfg.MaxPlayersPerSession {
		return "", model.ErrSessionFull
	}

	name, err := c.assignName(s, desiredName)
	if err != nil {
		return "", err
	}

	s.Players = append(s.Players, model.Player{ConnID: connID, Name: name})
	s.UpdatedAt = c.clock.Now()

	// Best effort; the failover store absorbs durable-backend outages
	if err := c.store.InitScore(ctx, pin, name); err != nil {
		c.logger.Warn("score init failed",
			slog.String("pin", string(pin)),
			slog.String("player", name),
			slog.String("error", err.Error()),
		)
	}

	// A populated room is never TTL-expired for idleness
	if s.expiryTimer != nil {
		s.expiryTimer.Stop()
		s.expiryTimer = nil
	}

	c.broadcastLobbyLocked(s)

	c.logger.Info("player joined",
		slog.String("pin", string(pin)),
		slog.String("player", name),
		slog.Int("player_count", len(s.Players)),
	)

	return name, nil
}

// assignName resolves the desired display name against names already
// taken in the session, appending an incrementing numeric suffix
func (c *Controller) assignName(s *session, desiredName string) (string, error) {
	base := strings.TrimSpace(desiredName)
	if base == "" {
		base = "Player"
	}

	name := base
	for suffix := 1; s.HasName(name); suffix++ {
		if suffix > c.cfg.MaxNameAttempts {
			return "", model.ErrNameExhausted
		}
		name = fmt.Sprintf("%s%d", base, suffix)
	}
	return name, nil
}

// Leave removes a player from a session. Calling it for an unknown pin
// or a connection not in the room is a no-op.
func (c *Controller) Leave(ctx context.Context, pin model.Pin, connID string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok {
		return nil
	}

	idx := -1
	for i, p := range s.Players {
		if p.ConnID == connID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil
	}

	removed := s.Players[idx]
	s.Players = append(s.Players[:idx], s.Players[idx+1:]...)
	s.UpdatedAt = c.clock.Now()

	if err := c.store.RemoveScore(ctx, pin, removed.Name); err != nil {
		c.logger.Warn("score removal failed",
			slog.String("pin", string(pin)),
			slog.String("player", removed.Name),
			slog.String("error", err.Error()),
		)
	}

	if len(s.Players) == 0 {
		// Keep the empty room around for a reconnection window, but
		// with no round running and the expiry clock ticking
		if s.roundTimer != nil {
			s.roundTimer.Stop()
			s.roundTimer = nil
		}
		if s.startTimer != nil {
			s.startTimer.Stop()
			s.startTimer = nil
		}
		s.RoundActive = false
		s.TurnIndex = 0
		c.armExpiryLocked(s)

		c.logger.Info("session empty, expiry armed",
			slog.String("pin", string(pin)),
		)
		return nil
	}

	// Keep the turn index pointing at a live player
	if s.TurnIndex >= len(s.Players) {
		s.TurnIndex = 0
	}

	// Reassign host to the first remaining player in join order
	if s.HostID == connID {
		s.HostID = s.Players[0].ConnID
		c.logger.Info("host reassigned",
			slog.String("pin", string(pin)),
			slog.String("new_host", s.HostID),
		)
	}

	c.broadcastLobbyLocked(s)
	return nil
}

// Destroy tears down a session. Idempotent: destroying an unknown or
// already-destroyed pin is a no-op.
func (c *Controller) Destroy(ctx context.Context, pin model.Pin, reason string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.destroyLocked(ctx, pin, reason)
	return nil
}

func (c *Controller) destroyLocked(ctx context.Context, pin model.Pin, reason string) {
	s, ok := c.sessions[pin]
	if !ok {
		return
	}

	s.stopTimers()
	delete(c.sessions, pin)

	c.notifier.Broadcast(pin, model.EventGameDestroyed, model.GameDestroyedPayload{
		Pin:    pin,
		Reason: reason,
	})
	c.notifier.DisconnectRoom(pin, "game_destroyed")

	if err := c.store.Cleanup(ctx, pin); err != nil {
		c.logger.Warn("store cleanup failed on destroy",
			slog.String("pin", string(pin)),
			slog.String("error", err.Error()),
		)
	}

	c.logger.Info("session destroyed",
		slog.String("pin", string(pin)),
		slog.String("reason", reason),
		slog.Int("live_sessions", len(c.sessions)),
	)
}

// ListActive returns a read-only snapshot of every live session
func (c *Controller) ListActive() []model.SessionSummary {
	c.mu.Lock()
	defer c.mu.Unlock()

	summaries := make([]model.SessionSummary, 0, len(c.sessions))
	for _, s := range c.sessions {
		summaries = append(summaries, model.SessionSummary{
			Pin:     s.Pin,
			Status:  string(s.Status),
			Players: s.PlayerNames(),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Pin < summaries[j].Pin })
	return summaries
}

// Get returns a point-in-time copy of a session's public state.
// The secret word is never part of the copy.
func (c *Controller) Get(pin model.Pin) (model.GameSession, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok {
		return model.GameSession{}, model.ErrSessionNotFound
	}

	snap := s.GameSession
	snap.Players = append([]model.Player(nil), s.Players...)
	snap.CurrentWord = ""
	return snap, nil
}

// Scores returns the current score table for a session
func (c *Controller) Scores(ctx context.Context, pin model.Pin) (map[string]int, error) {
	c.mu.Lock()
	_, ok := c.sessions[pin]
	c.mu.Unlock()
	if !ok {
		return nil, model.ErrSessionNotFound
	}
	return c.store.Scores(ctx, pin)
}

// armExpiryLocked (re)starts the idle/empty expiry timer
func (c *Controller) armExpiryLocked(s *session) {
	if s.expiryTimer != nil {
		s.expiryTimer.Stop()
	}
	pin, epoch := s.Pin, s.epoch
	s.expiryTimer = c.clock.AfterFunc(c.cfg.SessionTTL, func() {
		c.expiryTask(pin, epoch)
	})
}

// expiryTask fires when a session's idle TTL elapses
func (c *Controller) expiryTask(pin model.Pin, epoch uint64) {
	defer c.recoverTask(pin, "expiry")

	c.mu.Lock()
	defer c.mu.Unlock()

	s, ok := c.sessions[pin]
	if !ok || s.epoch != epoch {
		return
	}
	c.destroyLocked(context.Background(), pin, "ttl_expired")
}

// recoverTask is the fail-safe for timer callbacks: a panicking task
// must not leave the session stuck with no armed timer, so the session
// is destroyed instead
func (c *Controller) recoverTask(pin model.Pin, task string) {
	if r := recover(); r != nil {
		c.logger.Error("timer task panicked, destroying session",
			slog.String("pin", string(pin)),
			slog.String("task", task),
			slog.Any("panic", r),
		)
		c.mu.Lock()
		c.destroyLocked(context.Background(), pin, "internal_error")
		c.mu.Unlock()
	}
}

// broadcastLobbyLocked publishes the current lobby membership
func (c *Controller) broadcastLobbyLocked(s *session) {
	c.notifier.Broadcast(s.Pin, model.EventLobbyUpdate, model.LobbyUpdatePayload{
		Players: s.PlayerNames(),
		Host:    s.HostID,
	})
}
