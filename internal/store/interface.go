// Package store holds the per-session shared state that outlives a
// single guess: score tables, the active round's secret word, and the
// round claim lock. All keys are namespaced by session pin so that a
// destroyed session leaves nothing behind for a future reused pin.
package store

import (
	"context"
	"time"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Store defines the interface for session-scoped shared state
type Store interface {
	// Score operations. Deltas are always positive; scores never go negative.
	IncrementScore(ctx context.Context, pin model.Pin, player string, delta int) error
	Scores(ctx context.Context, pin model.Pin) (map[string]int, error)
	InitScore(ctx context.Context, pin model.Pin, player string) error
	RemoveScore(ctx context.Context, pin model.Pin, player string) error

	// Round word operations
	SetWord(ctx context.Context, pin model.Pin, word string, ttl time.Duration) error
	Word(ctx context.Context, pin model.Pin) (string, error)

	// Claim lock operations. TryClaim has atomic set-if-absent semantics:
	// among concurrent callers for the same pin, exactly one wins.
	TryClaim(ctx context.Context, pin model.Pin, claimantID string, ttl time.Duration) (bool, error)
	ReleaseClaim(ctx context.Context, pin model.Pin) error

	// Cleanup removes every key associated with the session
	Cleanup(ctx context.Context, pin model.Pin) error
}
