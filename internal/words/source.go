package words

import (
	"bufio"
	"os"
	"strings"
	"sync"

	"github.com/mfreeman/sketchdash/internal/dependencies/random"
)

// Source supplies a secret word for each round
type Source interface {
	Pick() string
}

// ListSource picks uniformly at random from a word list
type ListSource struct {
	random random.Random

	mu    sync.RWMutex
	words []string
}

var _ Source = (*ListSource)(nil)

// NewListSource creates a ListSource over the given words.
// Pass nil to start from the built-in default list.
func NewListSource(words []string, rnd random.Random) *ListSource {
	if words == nil {
		words = DefaultWords()
	}
	return &ListSource{
		random: rnd,
		words:  words,
	}
}

// Pick returns a uniformly random word from the list
func (s *ListSource) Pick() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.words) == 0 {
		return ""
	}
	return s.words[s.random.Intn(len(s.words))]
}

// WordCount returns the number of words available
func (s *ListSource) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}

// LoadWords replaces the word list (useful for testing)
func (s *ListSource) LoadWords(words []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = words
}

// LoadFromFile replaces the word list from a file, one word per line.
// Blank lines are skipped.
func (s *ListSource) LoadFromFile(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.words = words
	return nil
}
