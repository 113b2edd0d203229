package response

import (
	"github.com/mfreeman/sketchdash/internal/model"
	"github.com/mfreeman/sketchdash/internal/services/game"
)

// Player represents a session member in API responses
type Player struct {
	ConnID string `json:"conn_id"`
	Name   string `json:"name"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p model.Player) Player {
	return Player{
		ConnID: p.ConnID,
		Name:   p.Name,
	}
}

// Session represents a session in API responses.
// The secret word is never exposed here.
type Session struct {
	Pin          string   `json:"pin"`
	Status       string   `json:"status"`
	Host         string   `json:"host"`
	Players      []Player `json:"players"`
	RoundsTotal  int      `json:"rounds_total,omitempty"`
	RoundsPlayed int      `json:"rounds_played,omitempty"`
	RoundActive  bool     `json:"round_active"`
}

// SessionFromModel converts a model.GameSession to a response Session
func SessionFromModel(s model.GameSession) Session {
	players := make([]Player, len(s.Players))
	for i, p := range s.Players {
		players[i] = PlayerFromModel(p)
	}
	return Session{
		Pin:          string(s.Pin),
		Status:       string(s.Status),
		Host:         s.HostID,
		Players:      players,
		RoundsTotal:  s.RoundsTotal,
		RoundsPlayed: s.RoundsPlayed,
		RoundActive:  s.RoundActive,
	}
}

// CreateSessionResponse is the response for session creation
type CreateSessionResponse struct {
	Pin    string `json:"pin"`
	ConnID string `json:"conn_id"`
}

// JoinSessionResponse is the response for joining a session
type JoinSessionResponse struct {
	Pin     string  `json:"pin"`
	Name    string  `json:"name"`
	Session Session `json:"session"`
}

// GuessResponse is the response for a guess submission
type GuessResponse struct {
	Outcome string         `json:"outcome"`
	Winner  string         `json:"winner,omitempty"`
	Word    string         `json:"word,omitempty"`
	Scores  map[string]int `json:"scores,omitempty"`
}

// GuessResponseFromResult converts a game.GuessResult
func GuessResponseFromResult(r game.GuessResult) GuessResponse {
	return GuessResponse{
		Outcome: string(r.Outcome),
		Winner:  r.Winner,
		Word:    r.Word,
		Scores:  r.Scores,
	}
}

// ScoresResponse is the response for the score table
type ScoresResponse struct {
	Pin    string         `json:"pin"`
	Scores map[string]int `json:"scores"`
}

// ActiveSessionsResponse is the response for the active session listing
type ActiveSessionsResponse struct {
	Sessions []model.SessionSummary `json:"sessions"`
}

// HealthResponse is the response for the health endpoint
type HealthResponse struct {
	Status   string `json:"status"`
	Sessions int    `json:"sessions"`
}
