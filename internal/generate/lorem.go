package generate

import (
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// MaxLoremWords caps a single Words request.
const MaxLoremWords = 10000

var loremWords = strings.Fields(`
ad adipisicing aliqua aliquip amet anim aute cillum commodo consectetur
consequat culpa cupidatat deserunt do dolor dolore duis ea eiusmod elit enim
esse est et eu ex excepteur exercitation fugiat id in incididunt ipsum irure
labore laboris laborum lorem magna minim mollit nisi non nostrud nulla
occaecat officia pariatur proident qui quis reprehenderit sint sit sunt tempor
ullamco ut velit veniam voluptate`)

// Lorem generates lorem ipsum filler text.
type Lorem struct {
	mu  sync.Mutex
	rng *rand.Rand
	max int
}

// NewLorem creates a generator capped at maxWords words per call. A cap below
// 1 or above MaxLoremWords means MaxLoremWords.
func NewLorem(maxWords int) *Lorem {
	now := uint64(time.Now().UnixNano())
	return newLoremWithSeed(maxWords, now, now>>1)
}

func newLoremWithSeed(maxWords int, seed1, seed2 uint64) *Lorem {
	if maxWords < 1 || maxWords > MaxLoremWords {
		maxWords = MaxLoremWords
	}
	return &Lorem{rng: rand.New(rand.NewPCG(seed1, seed2)), max: maxWords}
}

// Words returns n space-separated lowercase words. n is clamped to [0, cap].
func (l *Lorem) Words(n int) string {
	if n <= 0 {
		return ""
	}
	if n > l.max {
		n = l.max
	}

	words := make([]string, n)
	l.mu.Lock()
	for i := range words {
		words[i] = loremWords[l.rng.IntN(len(loremWords))]
	}
	l.mu.Unlock()

	return strings.Join(words, " ")
}
