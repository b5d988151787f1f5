package generate

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"strings"
)

// Character classes.
const (
	UppercaseChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	LowercaseChars = "abcdefghijklmnopqrstuvwxyz"
	NumberChars    = "0123456789"
	SymbolChars    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

// Password length limits.
const (
	DefaultPasswordLength = 16
	MinPasswordLength     = 4
	MaxPasswordLength     = 128
)

// ErrNoCharacterClass is returned when every character class is disabled.
var ErrNoCharacterClass = errors.New("select at least one character class")

// PasswordOptions selects the length and character classes of a password.
type PasswordOptions struct {
	Length    int  `json:"length" validate:"omitempty,min=4,max=128"`
	Uppercase bool `json:"uppercase"`
	Lowercase bool `json:"lowercase"`
	Numbers   bool `json:"numbers"`
	Symbols   bool `json:"symbols"`
}

// DefaultPasswordOptions enables every class at the default length.
func DefaultPasswordOptions() PasswordOptions {
	return PasswordOptions{
		Length:    DefaultPasswordLength,
		Uppercase: true,
		Lowercase: true,
		Numbers:   true,
		Symbols:   true,
	}
}

func (o PasswordOptions) charset() string {
	var b strings.Builder
	if o.Uppercase {
		b.WriteString(UppercaseChars)
	}
	if o.Lowercase {
		b.WriteString(LowercaseChars)
	}
	if o.Numbers {
		b.WriteString(NumberChars)
	}
	if o.Symbols {
		b.WriteString(SymbolChars)
	}
	return b.String()
}

// Password generates a password from crypto/rand. A zero Length means
// DefaultPasswordLength.
func Password(opts PasswordOptions) (string, error) {
	return passwordFrom(rand.Reader, opts)
}

func passwordFrom(r io.Reader, opts PasswordOptions) (string, error) {
	if opts.Length == 0 {
		opts.Length = DefaultPasswordLength
	}
	if opts.Length < MinPasswordLength || opts.Length > MaxPasswordLength {
		return "", fmt.Errorf("password length must be between %d and %d, got %d",
			MinPasswordLength, MaxPasswordLength, opts.Length)
	}
	chars := opts.charset()
	if chars == "" {
		return "", ErrNoCharacterClass
	}

	limit := big.NewInt(int64(len(chars)))
	out := make([]byte, opts.Length)
	for i := range out {
		n, err := rand.Int(r, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random data: %w", err)
		}
		out[i] = chars[n.Int64()]
	}
	return string(out), nil
}
