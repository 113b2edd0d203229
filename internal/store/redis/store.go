package redis

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/store"
)

// Store is a Redis-backed implementation of the store interface.
// Score increments use HINCRBY and the claim lock uses SET NX PX, so
// correctness holds across multiple server processes sharing the same
// Redis instance.
type Store struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis store instance
func New(cfg Config) (*Store, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Store{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis store with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Store {
	return &Store{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Store) Close() error {
	return s.client.Close()
}

// Ensure Store implements the interface
var _ store.Store = (*Store)(nil)

// Score operations

func (s *Store) IncrementScore(ctx context.Context, pin model.Pin, player string, delta int) error {
	key := scoresKey(pin)

	pipe := s.client.Pipeline()
	pipe.HIncrBy(ctx, key, player, int64(delta))
	pipe.Expire(ctx, key, s.cfg.ScoreTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) Scores(ctx context.Context, pin model.Pin) (map[string]int, error) {
	raw, err := s.client.HGetAll(ctx, scoresKey(pin)).Result()
	if err != nil {
		return nil, err
	}

	scores := make(map[string]int, len(raw))
	for player, val := range raw {
		n, err := strconv.Atoi(val)
		if err != nil {
			continue // Skip corrupt entries
		}
		scores[player] = n
	}
	return scores, nil
}

func (s *Store) InitScore(ctx context.Context, pin model.Pin, player string) error {
	key := scoresKey(pin)

	pipe := s.client.Pipeline()
	pipe.HSetNX(ctx, key, player, 0)
	pipe.Expire(ctx, key, s.cfg.ScoreTTL)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Store) RemoveScore(ctx context.Context, pin model.Pin, player string) error {
	return s.client.HDel(ctx, scoresKey(pin), player).Err()
}

// Round word operations

func (s *Store) SetWord(ctx context.Context, pin model.Pin, word string, ttl time.Duration) error {
	return s.client.Set(ctx, wordKey(pin), word, ttl).Err()
}

func (s *Store) Word(ctx context.Context, pin model.Pin) (string, error) {
	word, err := s.client.Get(ctx, wordKey(pin)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", model.ErrWordNotFound
		}
		return "", err
	}
	return word, nil
}

// Claim lock operations

func (s *Store) TryClaim(ctx context.Context, pin model.Pin, claimantID string, ttl time.Duration) (bool, error) {
	// SET NX: exactly one concurrent caller gets true. The TTL bounds
	// the lock's lifetime in case resolution fails to release it.
	return s.client.SetNX(ctx, claimKey(pin), claimantID, ttl).Result()
}

func (s *Store) ReleaseClaim(ctx context.Context, pin model.Pin) error {
	return s.client.Del(ctx, claimKey(pin)).Err()
}

// Cleanup removes every key associated with the session

func (s *Store) Cleanup(ctx context.Context, pin model.Pin) error {
	pipe := s.client.Pipeline()
	pipe.Del(ctx, scoresKey(pin))
	pipe.Del(ctx, wordKey(pin))
	pipe.Del(ctx, claimKey(pin))
	_, err := pipe.Exec(ctx)
	return err
}
