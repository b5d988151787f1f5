// Package textutil holds the text tools: Markdown rendering, line diffs, and
// a regular expression tester.
//
// Markdown is rendered with goldmark (GitHub Flavored Markdown) and the
// resulting HTML is sanitized with bluemonday's user-generated-content policy.
// Diffs are computed with go-difflib. Regular expressions use regexp2, which
// supports the lookaround and backreference syntax found in JavaScript
// patterns that Go's RE2-based regexp package rejects.
package textutil
