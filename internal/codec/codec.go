// Package codec implements the text encoders: Base64 and URI component
// percent-encoding.
package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"unicode/utf8"
)

// ErrInvalidInput is returned when input cannot be decoded.
var ErrInvalidInput = errors.New("invalid input")

// EncodeBase64 encodes the UTF-8 bytes of s with the standard padded alphabet.
func EncodeBase64(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// DecodeBase64 decodes standard or unpadded Base64. Whitespace, including
// line breaks from wrapped output, is ignored. The decoded bytes must be valid
// UTF-8.
func DecodeBase64(s string) (string, error) {
	s = strings.Join(strings.Fields(s), "")
	enc := base64.StdEncoding
	if len(s)%4 != 0 {
		enc = base64.RawStdEncoding
		s = strings.TrimRight(s, "=")
	}
	b, err := enc.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !utf8.Valid(b) {
		return "", fmt.Errorf("%w: decoded data is not UTF-8 text", ErrInvalidInput)
	}
	return string(b), nil
}

// EncodeURIComponent percent-encodes every byte except the URI component
// unreserved set: A-Z a-z 0-9 - _ . ! ~ * ' ( ). Spaces become %20.
func EncodeURIComponent(s string) string {
	const hex = "0123456789ABCDEF"
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(hex[c>>4])
		b.WriteByte(hex[c&0x0f])
	}
	return b.String()
}

// DecodeURIComponent reverses EncodeURIComponent. '+' is kept literally.
// Malformed escapes and escapes that do not form UTF-8 are rejected.
func DecodeURIComponent(s string) (string, error) {
	out, err := url.PathUnescape(s)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if !utf8.ValidString(out) {
		return "", fmt.Errorf("%w: escapes do not decode to UTF-8", ErrInvalidInput)
	}
	return out, nil
}

func isUnreserved(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9':
		return true
	}
	switch c {
	case '-', '_', '.', '!', '~', '*', '\'', '(', ')':
		return true
	}
	return false
}
