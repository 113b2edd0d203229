package testutil

import (
	"io"
	"log/slog"
)

// NopLogger returns a logger that discards all output. The game
// controller and hub tests would otherwise be very chatty.
func NopLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}
