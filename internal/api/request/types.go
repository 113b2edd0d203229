package request

// CreateSessionRequest is the request body for creating a session
type CreateSessionRequest struct {
	ConnID string `json:"conn_id,omitempty"`
}

// JoinSessionRequest is the request body for joining a session
type JoinSessionRequest struct {
	ConnID string `json:"conn_id"`
	Name   string `json:"name"`
}

// StartGameRequest is the request body for starting a game
type StartGameRequest struct {
	ConnID string `json:"conn_id"`
}

// GuessRequest is the request body for submitting a guess
type GuessRequest struct {
	ConnID string `json:"conn_id"`
	Name   string `json:"name"`
	Guess  string `json:"guess"`
}

// LeaveSessionRequest is the request body for leaving a session
type LeaveSessionRequest struct {
	ConnID string `json:"conn_id"`
}
