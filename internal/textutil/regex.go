package textutil

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// Limits applied to every regex test.
const (
	MaxMatches   = 1000
	MatchTimeout = time.Second
)

// ErrInvalidPattern wraps regular expression compile errors.
var ErrInvalidPattern = errors.New("invalid pattern")

// Flags mirror JavaScript RegExp flags.
type Flags struct {
	Global          bool `json:"global"`           // g: all matches instead of the first
	CaseInsensitive bool `json:"case_insensitive"` // i
	Multiline       bool `json:"multiline"`        // m: ^ and $ match at line breaks
	DotAll          bool `json:"dot_all"`          // s: . matches newlines
	Unicode         bool `json:"unicode"`          // u: \u{...} escapes and full code point semantics
	Sticky          bool `json:"sticky"`           // y: matches must be contiguous from the start
}

// ParseFlags reads a JavaScript flag string such as "gim".
func ParseFlags(s string) (Flags, error) {
	var f Flags
	for _, c := range s {
		switch c {
		case 'g':
			f.Global = true
		case 'i':
			f.CaseInsensitive = true
		case 'm':
			f.Multiline = true
		case 's':
			f.DotAll = true
		case 'u':
			f.Unicode = true
		case 'y':
			f.Sticky = true
		default:
			return Flags{}, fmt.Errorf("%w: unknown flag %q", ErrInvalidPattern, c)
		}
	}
	return f, nil
}

// options always selects ECMAScript syntax so \d, \w and \b stay ASCII the
// way a browser treats them. The dot-all flag is applied by rewriting the
// pattern, since ECMAScript mode ignores Singleline.
func (f Flags) options() regexp2.RegexOptions {
	var opts regexp2.RegexOptions = regexp2.ECMAScript
	if f.CaseInsensitive {
		opts |= regexp2.IgnoreCase
	}
	if f.Multiline {
		opts |= regexp2.Multiline
	}
	if f.Unicode {
		opts |= regexp2.Unicode
	}
	return opts
}

// dotAll replaces every unescaped . outside a character class with [\s\S].
func dotAll(pattern string) string {
	var b strings.Builder
	escaped, inClass := false, false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '[':
			inClass = true
		case r == ']':
			inClass = false
		case r == '.' && !inClass:
			b.WriteString(`[\s\S]`)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// Match is one match. Index and Length count runes.
type Match struct {
	Index  int      `json:"index"`
	Length int      `json:"length"`
	Text   string   `json:"text"`
	Groups []string `json:"groups,omitempty"`
}

// MatchResult lists the matches of one test.
type MatchResult struct {
	Matches   []Match `json:"matches"`
	Count     int     `json:"count"`
	Truncated bool    `json:"truncated,omitempty"`
}

// Test runs pattern against text. An empty pattern or text yields no
// matches. Without the global flag at most one match is returned.
func Test(pattern, text string, flags Flags) (*MatchResult, error) {
	res := &MatchResult{Matches: []Match{}}
	if pattern == "" || text == "" {
		return res, nil
	}

	if flags.DotAll {
		pattern = dotAll(pattern)
	}
	re, err := regexp2.Compile(pattern, flags.options())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPattern, err)
	}
	re.MatchTimeout = MatchTimeout

	m, err := re.FindStringMatch(text)
	next := 0
	for m != nil && err == nil {
		if flags.Sticky && m.Index != next {
			break
		}
		res.Matches = append(res.Matches, toMatch(m))
		if !flags.Global {
			break
		}
		if len(res.Matches) == MaxMatches {
			res.Truncated = true
			break
		}
		next = m.Index + m.Length
		m, err = re.FindNextMatch(m)
	}
	if err != nil {
		return nil, fmt.Errorf("match failed: %w", err)
	}

	res.Count = len(res.Matches)
	return res, nil
}

func toMatch(m *regexp2.Match) Match {
	out := Match{Index: m.Index, Length: m.Length, Text: m.String()}
	groups := m.Groups()
	for _, g := range groups[1:] {
		out.Groups = append(out.Groups, g.String())
	}
	return out
}
