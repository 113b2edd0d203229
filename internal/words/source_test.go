package words

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mfreeman/sketchdash/internal/dependencies/mocks"
	"github.com/mfreeman/sketchdash/internal/dependencies/random"
)

func TestPickUsesRandomIndex(t *testing.T) {
	rnd := mocks.NewMockRandom()
	src := NewListSource([]string{"apple", "house", "rocket"}, rnd)

	rnd.QueueIntn(2, 0)
	assert.Equal(t, "rocket", src.Pick())
	assert.Equal(t, "apple", src.Pick())
}

func TestPickFromEmptyList(t *testing.T) {
	src := NewListSource([]string{}, mocks.NewMockRandom())
	assert.Equal(t, "", src.Pick())
}

func TestNilWordsFallsBackToDefaults(t *testing.T) {
	src := NewListSource(nil, mocks.NewMockRandom())
	assert.Equal(t, len(DefaultWords()), src.WordCount())
	assert.NotEmpty(t, src.Pick())
}

func TestDefaultWordsReturnsCopy(t *testing.T) {
	words := DefaultWords()
	original := words[0]
	words[0] = "mutated"
	assert.Equal(t, original, DefaultWords()[0])
}

func TestLoadWordsReplacesList(t *testing.T) {
	src := NewListSource([]string{"apple"}, mocks.NewMockRandom())
	src.LoadWords([]string{"house", "rocket"})
	assert.Equal(t, 2, src.WordCount())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	require.NoError(t, os.WriteFile(path, []byte("apple\n\n  house  \nrocket\n"), 0o600))

	src := NewListSource(nil, mocks.NewMockRandom())
	require.NoError(t, src.LoadFromFile(path))

	assert.Equal(t, 3, src.WordCount())
}

func TestLoadFromFileMissing(t *testing.T) {
	src := NewListSource(nil, mocks.NewMockRandom())
	assert.Error(t, src.LoadFromFile(filepath.Join(t.TempDir(), "nope.txt")))
}

func TestPickWithRealRandomStaysInList(t *testing.T) {
	src := NewListSource([]string{"apple", "house", "rocket"}, random.New())
	for i := 0; i < 50; i++ {
		assert.Contains(t, []string{"apple", "house", "rocket"}, src.Pick())
	}
}
