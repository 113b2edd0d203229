package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/mfreeman/sketchdash/internal/api"
	"github.com/mfreeman/sketchdash/internal/factory"
	"github.com/mfreeman/sketchdash/internal/services/game"
	redisstore "github.com/mfreeman/sketchdash/internal/store/redis"
)

func main() {
	// Set up logging with JSON output
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Build factory config from environment
	cfg := factory.Config{
		Logger:      logger,
		StorageType: os.Getenv("STORAGE_TYPE"),
		Game:        gameConfigFromEnv(),
		WordsPath:   os.Getenv("WORDS_PATH"),
	}

	// Configure Redis if storage type is redis
	if cfg.StorageType == factory.StorageTypeRedis {
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			logger.Error("REDIS_URL required when STORAGE_TYPE=redis")
			os.Exit(1)
		}
		redisCfg := redisstore.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.RedisConfig = &redisCfg
	}

	// Create application factory
	app, err := factory.New(cfg)
	if err != nil {
		logger.Error("failed to create application", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Create API router
	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		GameController: app.GameController,
		HubManager:     app.HubManager,
		Random:         app.Random,
	})

	// Create server
	serverConfig := api.DefaultServerConfig()
	if port := envInt("PORT", 0); port > 0 {
		serverConfig.Port = port
	}
	server := api.NewServer(router, serverConfig, logger)

	// Handle graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	// Start server in goroutine
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	logger.Info("server started", slog.String("addr", server.Addr()))

	// Wait for shutdown or error
	select {
	case err := <-errCh:
		if err != nil {
			logger.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	case <-ctx.Done():
		if err := server.Shutdown(context.Background()); err != nil {
			logger.Error("shutdown error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	logger.Info("server stopped")
}

// gameConfigFromEnv overlays gameplay settings from the environment
// onto the defaults
func gameConfigFromEnv() game.Config {
	cfg := game.DefaultConfig()
	cfg.MaxSessions = envInt("MAX_GAMES", cfg.MaxSessions)
	cfg.MaxPlayersPerSession = envInt("MAX_PLAYERS", cfg.MaxPlayersPerSession)
	cfg.DrawTurnsPerPlayer = envInt("DRAW_TURNS_PER_PLAYER", cfg.DrawTurnsPerPlayer)
	cfg.SessionTTL = envDuration("SESSION_TTL", cfg.SessionTTL)
	cfg.RoundDuration = envDuration("ROUND_DURATION", cfg.RoundDuration)
	return cfg
}

func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return v
}
