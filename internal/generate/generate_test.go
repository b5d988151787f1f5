package generate

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPassword_Defaults(t *testing.T) {
	pw, err := Password(PasswordOptions{Uppercase: true, Lowercase: true, Numbers: true, Symbols: true})
	require.NoError(t, err)
	assert.Len(t, pw, DefaultPasswordLength)

	all := UppercaseChars + LowercaseChars + NumberChars + SymbolChars
	for _, c := range pw {
		assert.Contains(t, all, string(c))
	}
}

func TestPassword_Classes(t *testing.T) {
	tests := []struct {
		name    string
		opts    PasswordOptions
		allowed string
	}{
		{"upper only", PasswordOptions{Length: 64, Uppercase: true}, UppercaseChars},
		{"lower only", PasswordOptions{Length: 64, Lowercase: true}, LowercaseChars},
		{"digits only", PasswordOptions{Length: 64, Numbers: true}, NumberChars},
		{"symbols only", PasswordOptions{Length: 64, Symbols: true}, SymbolChars},
		{"digits and lower", PasswordOptions{Length: 64, Numbers: true, Lowercase: true}, NumberChars + LowercaseChars},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pw, err := Password(tt.opts)
			require.NoError(t, err)
			assert.Len(t, pw, tt.opts.Length)
			for _, c := range pw {
				assert.Contains(t, tt.allowed, string(c))
			}
		})
	}
}

func TestPassword_Errors(t *testing.T) {
	_, err := Password(PasswordOptions{Length: 16})
	assert.ErrorIs(t, err, ErrNoCharacterClass)

	_, err = Password(PasswordOptions{Length: 3, Lowercase: true})
	assert.Error(t, err)

	_, err = Password(PasswordOptions{Length: MaxPasswordLength + 1, Lowercase: true})
	assert.Error(t, err)
}

func TestPassword_ShortRandomSource(t *testing.T) {
	_, err := passwordFrom(bytes.NewReader(nil), DefaultPasswordOptions())
	assert.Error(t, err)
}

func TestRollDie(t *testing.T) {
	for _, sides := range append([]int{1, 3}, CommonDice...) {
		for i := 0; i < 200; i++ {
			n, err := RollDie(sides)
			require.NoError(t, err)
			require.GreaterOrEqual(t, n, 1)
			require.LessOrEqual(t, n, sides)
		}
	}

	_, err := RollDie(0)
	assert.Error(t, err)
	_, err = RollDie(-6)
	assert.Error(t, err)
}

func TestRollHistory(t *testing.T) {
	h := NewRollHistory(3)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	h.now = func() time.Time { return fixed }

	var ids []string
	for _, sides := range []int{4, 6, 8, 20} {
		r, err := h.Roll(sides)
		require.NoError(t, err)
		assert.Equal(t, sides, r.Sides)
		assert.Equal(t, fixed, r.Timestamp)
		assert.NotEmpty(t, r.ID)
		ids = append(ids, r.ID)
	}

	rolls := h.Rolls()
	require.Len(t, rolls, 3)
	assert.Equal(t, 20, rolls[0].Sides, "newest first")
	assert.Equal(t, 6, rolls[2].Sides, "oldest kept roll")
	assert.Equal(t, ids[3], rolls[0].ID)

	_, err := h.Roll(0)
	assert.Error(t, err)
	assert.Len(t, h.Rolls(), 3, "failed roll is not recorded")

	h.Clear()
	assert.Empty(t, h.Rolls())
}

func TestRollHistory_DefaultSizeAndConcurrency(t *testing.T) {
	h := NewRollHistory(0)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = h.Roll(6)
		}()
	}
	wg.Wait()

	assert.Len(t, h.Rolls(), DefaultHistorySize)
}

func TestLorem_Words(t *testing.T) {
	l := newLoremWithSeed(0, 1, 2)

	assert.Equal(t, "", l.Words(0))
	assert.Equal(t, "", l.Words(-5))

	text := l.Words(50)
	words := strings.Fields(text)
	assert.Len(t, words, 50)
	for _, w := range words {
		assert.Contains(t, loremWords, w)
		assert.Equal(t, strings.ToLower(w), w)
	}
}

func TestLorem_Cap(t *testing.T) {
	l := newLoremWithSeed(20, 1, 2)
	assert.Len(t, strings.Fields(l.Words(1000)), 20)

	l = NewLorem(MaxLoremWords + 1)
	assert.Len(t, strings.Fields(l.Words(MaxLoremWords+500)), MaxLoremWords)
}

func TestLorem_Deterministic(t *testing.T) {
	a := newLoremWithSeed(0, 7, 9).Words(25)
	b := newLoremWithSeed(0, 7, 9).Words(25)
	assert.Equal(t, a, b)
}
