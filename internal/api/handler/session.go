package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mfreeman/sketchdash/internal/api/request"
	"github.com/mfreeman/sketchdash/internal/api/response"
	"github.com/mfreeman/sketchdash/internal/api/sse"
	"github.com/mfreeman/sketchdash/internal/dependencies/random"
	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/services/game"
)

const (
	connIDLength   = 16
	connIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

// SessionHandler handles session lifecycle and gameplay endpoints
type SessionHandler struct {
	controller *game.Controller
	hubManager *sse.HubManager
	random     random.Random
	logger     *slog.Logger
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(controller *game.Controller, hubManager *sse.HubManager, rnd random.Random, logger *slog.Logger) *SessionHandler {
	return &SessionHandler{
		controller: controller,
		hubManager: hubManager,
		random:     rnd,
		logger:     logger,
	}
}

// Create handles POST /api/v1/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// Allow empty body; a connection ID is generated below
		req = request.CreateSessionRequest{}
	}

	connID := req.ConnID
	if connID == "" {
		connID = h.random.String(connIDLength, connIDAlphabet)
	}

	pin, err := h.controller.Create(r.Context(), connID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.CreateSessionResponse{
		Pin:    string(pin),
		ConnID: connID,
	})
}

// Get handles GET /api/v1/sessions/{pin}
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	session, err := h.controller.Get(pin)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SessionFromModel(session))
}

// Join handles POST /api/v1/sessions/{pin}/join
func (h *SessionHandler) Join(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	var req request.JoinSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnID == "" {
		WriteError(w, NewInvalidRequestError("conn_id is required"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	name, err := h.controller.Join(r.Context(), pin, req.ConnID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	session, err := h.controller.Get(pin)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.JoinSessionResponse{
		Pin:     string(pin),
		Name:    name,
		Session: response.SessionFromModel(session),
	})
}

// Start handles POST /api/v1/sessions/{pin}/start
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	var req request.StartGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnID == "" {
		WriteError(w, NewInvalidRequestError("conn_id is required"))
		return
	}

	if err := h.controller.Start(r.Context(), pin, req.ConnID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Guess handles POST /api/v1/sessions/{pin}/guess
func (h *SessionHandler) Guess(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	var req request.GuessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnID == "" {
		WriteError(w, NewInvalidRequestError("conn_id is required"))
		return
	}
	if req.Guess == "" {
		WriteError(w, NewInvalidRequestError("guess is required"))
		return
	}

	name := req.Name
	if name == "" {
		// Fall back to the name registered for this connection
		if session, err := h.controller.Get(pin); err == nil {
			if p := session.GetPlayer(req.ConnID); p != nil {
				name = p.Name
			}
		}
	}
	if name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	result, err := h.controller.ProcessGuess(r.Context(), pin, name, req.Guess, req.ConnID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.GuessResponseFromResult(result))
}

// Leave handles POST /api/v1/sessions/{pin}/leave
func (h *SessionHandler) Leave(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	var req request.LeaveSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.ConnID == "" {
		WriteError(w, NewInvalidRequestError("conn_id is required"))
		return
	}

	if err := h.controller.Leave(r.Context(), pin, req.ConnID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// Scores handles GET /api/v1/sessions/{pin}/scores
func (h *SessionHandler) Scores(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	scores, err := h.controller.Scores(r.Context(), pin)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ScoresResponse{
		Pin:    string(pin),
		Scores: scores,
	})
}

// Events handles GET /api/v1/sessions/{pin}/events
//
// The connection stays open streaming SSE events for the session's
// room. The conn_id query parameter binds the stream to a player
// connection; when absent a fresh ID is generated and announced in
// the initial connected event.
func (h *SessionHandler) Events(w http.ResponseWriter, r *http.Request) {
	pin := model.Pin(mux.Vars(r)["pin"])

	if _, err := h.controller.Get(pin); err != nil {
		WriteError(w, err)
		return
	}

	connID := r.URL.Query().Get("conn_id")
	if connID == "" {
		connID = h.random.String(connIDLength, connIDAlphabet)
	}

	hub := h.hubManager.GetOrCreateHub(pin)
	client := sse.NewClient(connID)
	sse.ServeSSE(w, r, hub, client, h.logger)
}
