package generate

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
)

// CommonDice lists the standard polyhedral dice.
var CommonDice = []int{4, 6, 8, 10, 12, 20, 100}

// DefaultHistorySize is how many rolls a RollHistory keeps by default.
const DefaultHistorySize = 10

// Roll is the outcome of one die roll.
type Roll struct {
	ID        string    `json:"id"`
	Sides     int       `json:"sides"`
	Result    int       `json:"result"`
	Timestamp time.Time `json:"timestamp"`
}

// RollDie returns a uniform value in [1, sides].
func RollDie(sides int) (int, error) {
	if sides < 1 {
		return 0, fmt.Errorf("die must have at least 1 side, got %d", sides)
	}
	n, err := rand.Int(rand.Reader, big.NewInt(int64(sides)))
	if err != nil {
		return 0, fmt.Errorf("failed to read random data: %w", err)
	}
	return int(n.Int64()) + 1, nil
}

// RollHistory records recent rolls, newest first, up to a fixed size.
// It is safe for concurrent use.
type RollHistory struct {
	mu    sync.RWMutex
	size  int
	rolls []Roll
	now   func() time.Time
}

// NewRollHistory creates a history keeping at most size rolls. A size below
// 1 means DefaultHistorySize.
func NewRollHistory(size int) *RollHistory {
	if size < 1 {
		size = DefaultHistorySize
	}
	return &RollHistory{size: size, now: time.Now}
}

// Roll rolls a die and records the result.
func (h *RollHistory) Roll(sides int) (Roll, error) {
	result, err := RollDie(sides)
	if err != nil {
		return Roll{}, err
	}
	r := Roll{
		ID:        uuid.NewString(),
		Sides:     sides,
		Result:    result,
		Timestamp: h.now(),
	}

	h.mu.Lock()
	h.rolls = append([]Roll{r}, h.rolls...)
	if len(h.rolls) > h.size {
		h.rolls = h.rolls[:h.size]
	}
	h.mu.Unlock()

	return r, nil
}

// Rolls returns a copy of the recorded rolls, newest first.
func (h *RollHistory) Rolls() []Roll {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]Roll, len(h.rolls))
	copy(out, h.rolls)
	return out
}

// Clear forgets every recorded roll.
func (h *RollHistory) Clear() {
	h.mu.Lock()
	h.rolls = nil
	h.mu.Unlock()
}
