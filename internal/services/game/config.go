package game

import "time"

// Config holds the gameplay parameters, fixed at process start
type Config struct {
	// Admission limits
	MaxSessions          int
	MaxPlayersPerSession int

	// Each player draws this many times; roundsTotal is
	// DrawTurnsPerPlayer * player count at start
	DrawTurnsPerPlayer int

	// SessionTTL destroys a session that stays empty, or never starts
	SessionTTL time.Duration

	// RoundDuration bounds each round; the round resolves with no
	// winner when it elapses
	RoundDuration time.Duration

	// NextRoundDelay is the pause between round resolution and the
	// next round start, giving clients time to render the result
	NextRoundDelay time.Duration

	// Point values credited on a correct guess
	GuesserPoints int
	DrawerPoints  int

	// ClaimTTL bounds the round claim lock's lifetime on the durable
	// store in case resolution fails to release it
	ClaimTTL time.Duration

	// MaxNameAttempts bounds the numeric-suffix search for a unique
	// display name
	MaxNameAttempts int
}

// DefaultConfig returns the default gameplay configuration
func DefaultConfig() Config {
	return Config{
		MaxSessions:          5,
		MaxPlayersPerSession: 4,
		DrawTurnsPerPlayer:   4,
		SessionTTL:           6 * time.Minute,
		RoundDuration:        60 * time.Second,
		NextRoundDelay:       3 * time.Second,
		GuesserPoints:        10,
		DrawerPoints:         5,
		ClaimTTL:             5 * time.Second,
		MaxNameAttempts:      100,
	}
}
