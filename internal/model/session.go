package model

import "time"

// Pin is the short identifier used to address a game session
type Pin string

// SessionStatus represents the lifecycle phase of a session
type SessionStatus string

const (
	StatusWaiting    SessionStatus = "waiting"     // Lobby open, game not started
	StatusInProgress SessionStatus = "in_progress" // Rounds running
	StatusFinished   SessionStatus = "finished"    // Terminal
)

// Player is a connected participant in a session.
// Slice order defines the draw turn sequence.
type Player struct {
	ConnID string
	Name   string
}

// GameSession is one room of the drawing-and-guessing game
type GameSession struct {
	Pin    Pin
	HostID string // ConnID of the designated host
	Status SessionStatus

	// Players in join order; removals preserve relative order
	Players []Player

	// Turn management
	TurnIndex    int // Index into Players for the current drawer
	RoundsTotal  int
	RoundsPlayed int

	// Active round state
	CurrentWord string // Set only while a round is active
	RoundActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CurrentDrawer returns the player whose turn it is to draw,
// or nil if the turn index no longer points at a player
func (s *GameSession) CurrentDrawer() *Player {
	if s.TurnIndex < 0 || s.TurnIndex >= len(s.Players) {
		return nil
	}
	return &s.Players[s.TurnIndex]
}

// GetPlayer returns the player with the given connection ID, or nil
func (s *GameSession) GetPlayer(connID string) *Player {
	for i := range s.Players {
		if s.Players[i].ConnID == connID {
			return &s.Players[i]
		}
	}
	return nil
}

// PlayerNames returns the display names of all players in turn order
func (s *GameSession) PlayerNames() []string {
	names := make([]string, len(s.Players))
	for i, p := range s.Players {
		names[i] = p.Name
	}
	return names
}

// HasName reports whether any player already uses the given display name
func (s *GameSession) HasName(name string) bool {
	for _, p := range s.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// IsComplete returns true once every scheduled round has been resolved
func (s *GameSession) IsComplete() bool {
	return s.RoundsPlayed >= s.RoundsTotal
}

// SessionSummary is the read-only listing view of a live session
type SessionSummary struct {
	Pin     Pin      `json:"pin"`
	Status  string   `json:"status"`
	Players []string `json:"players"`
}

// GuessOutcome classifies the result of a guess submission.
// These are normal gameplay outcomes, not failures.
type GuessOutcome string

const (
	OutcomeCorrect           GuessOutcome = "correct"
	OutcomeIncorrect         GuessOutcome = "incorrect"
	OutcomeNoActiveRound     GuessOutcome = "no_active_round"
	OutcomeDrawerCannotGuess GuessOutcome = "drawer_cannot_guess"
	OutcomeAlreadyClaimed    GuessOutcome = "already_claimed"
)
