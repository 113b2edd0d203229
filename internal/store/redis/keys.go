package redis

import (
	"fmt"

	"github.com/mfreeman/sketchdash/internal/model"
)

// Key prefix for all session-related data
const keyPrefix = "sketchdash"

// scoresKey returns the Redis key for a session's score hash
func scoresKey(pin model.Pin) string {
	return fmt.Sprintf("%s:game:%s:scores", keyPrefix, pin)
}

// wordKey returns the Redis key for a session's active round word
func wordKey(pin model.Pin) string {
	return fmt.Sprintf("%s:game:%s:word", keyPrefix, pin)
}

// claimKey returns the Redis key for a session's round claim lock
func claimKey(pin model.Pin) string {
	return fmt.Sprintf("%s:game:%s:claim", keyPrefix, pin)
}
