package factory

import (
	"errors"
	"io"
	"log/slog"

	"github.com/mfreeman/sketchdash/internal/api/sse"
	"github.com/mfreeman/sketchdash/internal/dependencies/clock"
	"github.com/mfreeman/sketchdash/internal/dependencies/random"
	"github.com/mfreeman/sketchdash/internal/services/game"
	"github.com/mfreeman/sketchdash/internal/store"
	"github.com/mfreeman/sketchdash/internal/store/memory"
	redisstore "github.com/mfreeman/sketchdash/internal/store/redis"
	"github.com/mfreeman/sketchdash/internal/words"
)

// Storage type constants
const (
	StorageTypeMemory = "memory"
	StorageTypeRedis  = "redis"
)

// App contains all wired application components
type App struct {
	// Storage
	Store store.Store

	// External dependencies
	Clock  clock.Clock
	Random random.Random

	// Services
	Words          *words.ListSource
	GameController *game.Controller
	HubManager     *sse.HubManager
	Notifier       *sse.Notifier
}

// Config holds configuration for the application factory
type Config struct {
	// Logger is the application logger (optional)
	// If nil, a no-op logger is used
	Logger *slog.Logger
	// StorageType selects the score store backend ("memory" or "redis")
	// If empty, defaults to "memory"
	StorageType string
	// RedisConfig holds Redis connection settings (required if StorageType is "redis")
	RedisConfig *redisstore.Config
	// Game holds gameplay settings (optional)
	// If zero value, defaults to game.DefaultConfig()
	Game game.Config
	// WordsPath is the path to a newline-separated word list (optional)
	// If empty, the built-in word list is used
	WordsPath string
}

// New creates a new application with all dependencies wired.
//
// Redis being unreachable at startup is not fatal: the store falls
// back to its in-memory backend and the server keeps serving.
func New(cfg Config) (*App, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}

	storageType := cfg.StorageType
	if storageType == "" {
		storageType = StorageTypeMemory
	}

	var primary store.Store
	switch storageType {
	case StorageTypeMemory:
		// Fallback backend only
	case StorageTypeRedis:
		if cfg.RedisConfig == nil {
			return nil, errors.New("RedisConfig required when StorageType is redis")
		}
		redisStore, err := redisstore.New(*cfg.RedisConfig)
		if err != nil {
			logger.Warn("redis unavailable, using in-memory scores only",
				slog.String("error", err.Error()))
		} else {
			primary = redisStore
		}
	default:
		return nil, errors.New("invalid StorageType: must be 'memory' or 'redis'")
	}

	gameCfg := cfg.Game
	if gameCfg.MaxSessions == 0 {
		gameCfg = game.DefaultConfig()
	}

	clk := clock.New()
	rnd := random.New()

	app := newWithDependencies(primary, clk, rnd, gameCfg, logger)

	if cfg.WordsPath != "" {
		if err := app.Words.LoadFromFile(cfg.WordsPath); err != nil {
			return nil, err
		}
		logger.Info("word list loaded",
			slog.String("path", cfg.WordsPath),
			slog.Int("words", app.Words.WordCount()))
	}

	return app, nil
}

// newWithDependencies creates an App with the given dependencies (useful for testing)
func newWithDependencies(primary store.Store, clk clock.Clock, rnd random.Random, gameCfg game.Config, logger *slog.Logger) *App {
	failover := store.NewFailover(primary, memory.New(), logger)
	wordSource := words.NewListSource(words.DefaultWords(), rnd)
	hubManager := sse.NewHubManager(logger)
	notifier := sse.NewNotifier(hubManager, logger)
	gameController := game.NewController(failover, wordSource, notifier, clk, rnd, gameCfg, logger)

	return &App{
		Store:          failover,
		Clock:          clk,
		Random:         rnd,
		Words:          wordSource,
		GameController: gameController,
		HubManager:     hubManager,
		Notifier:       notifier,
	}
}
