package textutil

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// DiffOp classifies a run of lines in a diff.
type DiffOp string

const (
	DiffEqual   DiffOp = "equal"
	DiffAdded   DiffOp = "added"
	DiffRemoved DiffOp = "removed"
)

// DiffPart is a run of consecutive lines sharing one DiffOp. Value keeps the
// original line endings.
type DiffPart struct {
	Op    DiffOp `json:"op"`
	Value string `json:"value"`
	Count int    `json:"count"`
}

// DiffResult is a line diff of two texts.
type DiffResult struct {
	Parts   []DiffPart `json:"parts"`
	Added   int        `json:"added"`
	Removed int        `json:"removed"`
	Same    bool       `json:"same"`
}

// DiffLines compares left and right line by line. Within a replaced block the
// removed lines come before the added lines.
func DiffLines(left, right string) *DiffResult {
	a, b := splitLines(left), splitLines(right)
	res := &DiffResult{Parts: []DiffPart{}}

	emit := func(op DiffOp, lines []string) {
		if len(lines) == 0 {
			return
		}
		res.Parts = append(res.Parts, DiffPart{Op: op, Value: strings.Join(lines, ""), Count: len(lines)})
		switch op {
		case DiffAdded:
			res.Added += len(lines)
		case DiffRemoved:
			res.Removed += len(lines)
		}
	}

	m := difflib.NewMatcher(a, b)
	for _, op := range m.GetOpCodes() {
		switch op.Tag {
		case 'e':
			emit(DiffEqual, a[op.I1:op.I2])
		case 'd':
			emit(DiffRemoved, a[op.I1:op.I2])
		case 'i':
			emit(DiffAdded, b[op.J1:op.J2])
		case 'r':
			emit(DiffRemoved, a[op.I1:op.I2])
			emit(DiffAdded, b[op.J1:op.J2])
		}
	}

	res.Same = res.Added == 0 && res.Removed == 0
	return res
}

// UnifiedDiff renders a unified diff with the given number of context lines.
// Identical inputs produce "".
func UnifiedDiff(left, right string, context int) (string, error) {
	if context < 0 {
		context = 3
	}
	out, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(left),
		B:        difflib.SplitLines(right),
		FromFile: "left",
		ToFile:   "right",
		Context:  context,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render diff: %w", err)
	}
	return out, nil
}

// splitLines splits s after each newline. A trailing newline does not start
// an extra empty line.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}
