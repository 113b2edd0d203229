package store

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Failover is a Store that prefers a durable primary backend and falls
// back to a local backend when the primary is not configured or an
// operation against it fails. Failures are logged and absorbed:
// scoring must never block gameplay, so no caller of a Failover store
// ever sees a primary outage as an error.
//
// The one deliberate exception is TryClaim: if the primary is
// configured but a claim attempt against it fails mid-operation, the
// claim is reported as not acquired rather than being retried against
// the local backend. Falling back there could crown two winners (one
// per backend); preferring "no winner" keeps resolution unambiguous
// and the round still ends via its timer.
type Failover struct {
	primary  Store // May be nil when no durable backend is configured
	fallback Store
	logger   *slog.Logger
}

// NewFailover creates a failover store over the given backends.
// primary may be nil; fallback must not be.
func NewFailover(primary, fallback Store, logger *slog.Logger) *Failover {
	return &Failover{
		primary:  primary,
		fallback: fallback,
		logger:   logger.With(slog.String("component", "store")),
	}
}

// Ensure Failover implements the interface
var _ Store = (*Failover)(nil)

func (f *Failover) warn(op string, pin model.Pin, err error) {
	f.logger.Warn("primary store operation failed, using local fallback",
		slog.String("op", op),
		slog.String("pin", string(pin)),
		slog.String("error", err.Error()),
	)
}

// Score operations

func (f *Failover) IncrementScore(ctx context.Context, pin model.Pin, player string, delta int) error {
	if f.primary != nil {
		err := f.primary.IncrementScore(ctx, pin, player, delta)
		if err == nil {
			return nil
		}
		f.warn("increment_score", pin, err)
	}
	return f.fallback.IncrementScore(ctx, pin, player, delta)
}

func (f *Failover) Scores(ctx context.Context, pin model.Pin) (map[string]int, error) {
	if f.primary != nil {
		scores, err := f.primary.Scores(ctx, pin)
		if err == nil {
			return scores, nil
		}
		f.warn("scores", pin, err)
	}
	return f.fallback.Scores(ctx, pin)
}

func (f *Failover) InitScore(ctx context.Context, pin model.Pin, player string) error {
	if f.primary != nil {
		err := f.primary.InitScore(ctx, pin, player)
		if err == nil {
			return nil
		}
		f.warn("init_score", pin, err)
	}
	return f.fallback.InitScore(ctx, pin, player)
}

func (f *Failover) RemoveScore(ctx context.Context, pin model.Pin, player string) error {
	if f.primary != nil {
		if err := f.primary.RemoveScore(ctx, pin, player); err != nil {
			f.warn("remove_score", pin, err)
		}
	}
	return f.fallback.RemoveScore(ctx, pin, player)
}

// Round word operations

func (f *Failover) SetWord(ctx context.Context, pin model.Pin, word string, ttl time.Duration) error {
	if f.primary != nil {
		err := f.primary.SetWord(ctx, pin, word, ttl)
		if err == nil {
			return nil
		}
		f.warn("set_word", pin, err)
	}
	return f.fallback.SetWord(ctx, pin, word, ttl)
}

func (f *Failover) Word(ctx context.Context, pin model.Pin) (string, error) {
	if f.primary != nil {
		word, err := f.primary.Word(ctx, pin)
		if err == nil {
			return word, nil
		}
		if !errors.Is(err, model.ErrWordNotFound) {
			f.warn("word", pin, err)
		}
	}
	return f.fallback.Word(ctx, pin)
}

// Claim lock operations

func (f *Failover) TryClaim(ctx context.Context, pin model.Pin, claimantID string, ttl time.Duration) (bool, error) {
	if f.primary != nil {
		acquired, err := f.primary.TryClaim(ctx, pin, claimantID, ttl)
		if err != nil {
			// Prefer "no winner" over an ambiguous winner; see type doc.
			f.warn("try_claim", pin, err)
			return false, nil
		}
		return acquired, nil
	}
	return f.fallback.TryClaim(ctx, pin, claimantID, ttl)
}

func (f *Failover) ReleaseClaim(ctx context.Context, pin model.Pin) error {
	if f.primary != nil {
		if err := f.primary.ReleaseClaim(ctx, pin); err != nil {
			f.warn("release_claim", pin, err)
		}
	}
	return f.fallback.ReleaseClaim(ctx, pin)
}

// Cleanup removes the session's keys from both backends so a reused
// pin never inherits stale state

func (f *Failover) Cleanup(ctx context.Context, pin model.Pin) error {
	if f.primary != nil {
		if err := f.primary.Cleanup(ctx, pin); err != nil {
			f.warn("cleanup", pin, err)
		}
	}
	return f.fallback.Cleanup(ctx, pin)
}
