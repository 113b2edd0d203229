package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/sketchdash/internal/api/handler"
	"github.com/mfreeman/sketchdash/internal/api/sse"
	"github.com/mfreeman/sketchdash/internal/dependencies/random"
	"github.com/mfreeman/sketchdash/internal/middleware"
	"github.com/mfreeman/sketchdash/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	GameController *game.Controller
	HubManager     *sse.HubManager
	Random         random.Random
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(cfg.GameController, cfg.HubManager, cfg.Random, cfg.Logger)
	adminHandler := handler.NewAdminHandler(cfg.GameController)

	loggingMiddleware := middleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger, middleware.DefaultPanicHandler)

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Session lifecycle
	api.HandleFunc("/sessions", sessionHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/sessions", adminHandler.ListSessions).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{pin}", sessionHandler.Get).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{pin}", adminHandler.DestroySession).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{pin}/join", sessionHandler.Join).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{pin}/leave", sessionHandler.Leave).Methods(http.MethodPost)

	// Gameplay
	api.HandleFunc("/sessions/{pin}/start", sessionHandler.Start).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{pin}/guess", sessionHandler.Guess).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{pin}/scores", sessionHandler.Scores).Methods(http.MethodGet)

	// Event stream
	api.HandleFunc("/sessions/{pin}/events", sessionHandler.Events).Methods(http.MethodGet)

	// Health check endpoint
	api.HandleFunc("/health", adminHandler.Health).Methods(http.MethodGet)

	return r
}
