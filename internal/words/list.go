package words

// defaultWords is the built-in word list, used when no file is loaded.
// Words are things a player can reasonably draw in under a minute.
var defaultWords = []string{
	"apple", "banana", "bicycle", "bird", "boat",
	"book", "bridge", "butterfly", "cactus", "camera",
	"candle", "car", "castle", "cat", "chair",
	"cloud", "clock", "crown", "dog", "dolphin",
	"dragon", "drum", "elephant", "feather", "fire",
	"fish", "flower", "fork", "ghost", "giraffe",
	"guitar", "hammer", "hat", "helicopter", "house",
	"igloo", "island", "kangaroo", "key", "kite",
	"ladder", "lamp", "lighthouse", "lion", "moon",
	"mountain", "mushroom", "octopus", "owl", "pencil",
	"penguin", "piano", "pizza", "pirate", "rainbow",
	"robot", "rocket", "sandwich", "scissors", "shark",
	"snowman", "spider", "star", "sun", "telescope",
	"tent", "train", "tree", "turtle", "umbrella",
	"unicorn", "violin", "volcano", "whale", "windmill",
}

// DefaultWords returns a copy of the built-in word list
func DefaultWords() []string {
	out := make([]string, len(defaultWords))
	copy(out, defaultWords)
	return out
}
