package model

import "errors"

// Common errors used across the application
var (
	// Registry errors
	ErrCapacityExceeded = errors.New("maximum session count reached")
	ErrSessionNotFound  = errors.New("session not found")
	ErrAlreadyStarted   = errors.New("session already started")
	ErrSessionFull      = errors.New("session is full")
	ErrNameExhausted    = errors.New("could not assign a unique display name")

	// Game errors
	ErrNotHost             = errors.New("only the host can perform this action")
	ErrInsufficientPlayers = errors.New("insufficient players to start game")

	// Store errors
	ErrWordNotFound = errors.New("no word stored for this round")
)
