package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mfreeman/sketchdash/internal/dependencies/mocks"
	"github.com/mfreeman/sketchdash/internal/services/game"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(nil, mockClock, mockRandom, game.DefaultConfig(), logger)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestWords replaces the word list with a small fixed set
func (t *TestApp) LoadTestWords() {
	t.Words.LoadWords([]string{"apple", "house", "rocket"})
}
