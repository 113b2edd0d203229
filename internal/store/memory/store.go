package memory

import (
	"context"
	"sync"
	"time"

	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/store"
)

// Store is an in-memory implementation of the store interface.
//
// TTL arguments are ignored: entries live until Cleanup, which the
// session registry calls on every destruction path. The claim flag is
// a plain boolean per pin; that is only a correct mutual exclusion
// because guess handling within one process is serialized by the game
// controller's lock. A multi-instance deployment must use the Redis
// store instead.
type Store struct {
	mu sync.Mutex

	scores map[model.Pin]map[string]int
	words  map[model.Pin]string
	claims map[model.Pin]string // pin -> claimant connID
}

// New creates a new in-memory store instance
func New() *Store {
	return &Store{
		scores: make(map[model.Pin]map[string]int),
		words:  make(map[model.Pin]string),
		claims: make(map[model.Pin]string),
	}
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// Score operations

func (s *Store) IncrementScore(ctx context.Context, pin model.Pin, player string, delta int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores[pin] == nil {
		s.scores[pin] = make(map[string]int)
	}
	s.scores[pin][player] += delta
	return nil
}

func (s *Store) Scores(ctx context.Context, pin model.Pin) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]int, len(s.scores[pin]))
	for name, score := range s.scores[pin] {
		out[name] = score
	}
	return out, nil
}

func (s *Store) InitScore(ctx context.Context, pin model.Pin, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scores[pin] == nil {
		s.scores[pin] = make(map[string]int)
	}
	if _, ok := s.scores[pin][player]; !ok {
		s.scores[pin][player] = 0
	}
	return nil
}

func (s *Store) RemoveScore(ctx context.Context, pin model.Pin, player string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores[pin], player)
	return nil
}

// Round word operations

func (s *Store) SetWord(ctx context.Context, pin model.Pin, word string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[pin] = word
	return nil
}

func (s *Store) Word(ctx context.Context, pin model.Pin) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	word, ok := s.words[pin]
	if !ok {
		return "", model.ErrWordNotFound
	}
	return word, nil
}

// Claim lock operations

func (s *Store) TryClaim(ctx context.Context, pin model.Pin, claimantID string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, held := s.claims[pin]; held {
		return false, nil
	}
	s.claims[pin] = claimantID
	return true, nil
}

func (s *Store) ReleaseClaim(ctx context.Context, pin model.Pin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.claims, pin)
	return nil
}

// Cleanup removes every key associated with the session

func (s *Store) Cleanup(ctx context.Context, pin model.Pin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.scores, pin)
	delete(s.words, pin)
	delete(s.claims, pin)
	return nil
}
