package model

// EventType identifies an outbound event delivered by the transport layer.
// The names are part of the wire contract with connected clients.
type EventType string

const (
	EventLobbyUpdate     EventType = "lobbyUpdate"
	EventGameStarted     EventType = "gameStarted"
	EventRoundStarted    EventType = "roundStarted"
	EventWordToDraw      EventType = "wordToDraw" // Drawer only
	EventScoreboard      EventType = "scoreboard"
	EventRoundEnded      EventType = "roundEnded"
	EventGameOver        EventType = "gameOver"
	EventGameDestroyed   EventType = "gameDestroyed"
	EventForceDisconnect EventType = "forceDisconnect"
)

// LobbyUpdatePayload contains data for lobby membership changes
type LobbyUpdatePayload struct {
	Players []string `json:"players"`
	Host    string   `json:"host"`
}

// GameStartedPayload contains data for the game start announcement
type GameStartedPayload struct {
	Message string `json:"message"`
}

// RoundStartedPayload contains room-wide round metadata.
// The secret word is never included here; it goes to the drawer
// alone via WordToDrawPayload.
type RoundStartedPayload struct {
	DrawerName      string `json:"drawerName"`
	Round           int    `json:"round"`
	TotalRounds     int    `json:"totalRounds"`
	RoundDurationMS int64  `json:"roundDurationMs"`
}

// WordToDrawPayload carries the secret to the drawer's connection
type WordToDrawPayload struct {
	Word string `json:"word"`
}

// ScoreboardPayload contains the current scores for a session
type ScoreboardPayload struct {
	Scores map[string]int `json:"scores"`
}

// RoundEndedPayload contains data for round resolution.
// Winner is nil when the round timed out with no correct guess.
type RoundEndedPayload struct {
	Winner *string        `json:"winner"`
	Drawer string         `json:"drawer"`
	Word   string         `json:"word"`
	Scores map[string]int `json:"scores"`
}

// GameOverPayload contains the final scores
type GameOverPayload struct {
	Scores map[string]int `json:"scores"`
}

// GameDestroyedPayload contains data for session teardown
type GameDestroyedPayload struct {
	Pin    Pin    `json:"pin"`
	Reason string `json:"reason"`
}

// ForceDisconnectPayload tells a client its connection is being dropped
type ForceDisconnectPayload struct {
	Reason string `json:"reason"`
}
