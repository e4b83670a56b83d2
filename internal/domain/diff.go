package domain

import (
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	m "github.com/sika7/editor4ai-go/internal/model"
)

// DiffLines computes a minimal line-level edit script between two documents.
// Equal and added lines carry their 1-based position in the new document,
// removed lines their position in the old one. The result is used for
// preview rendering only; it never decides whether a write succeeds.
func DiffLines(before, after []string) []m.DiffLine {
	matcher := difflib.NewMatcher(before, after)

	var out []m.DiffLine

	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'e':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, m.DiffLine{Kind: m.DiffEqual, Line: op.J1 + (i - op.I1) + 1, Text: before[i]})
			}
		case 'd':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, m.DiffLine{Kind: m.DiffRemoved, Line: i + 1, Text: before[i]})
			}
		case 'i':
			for j := op.J1; j < op.J2; j++ {
				out = append(out, m.DiffLine{Kind: m.DiffAdded, Line: j + 1, Text: after[j]})
			}
		case 'r':
			for i := op.I1; i < op.I2; i++ {
				out = append(out, m.DiffLine{Kind: m.DiffRemoved, Line: i + 1, Text: before[i]})
			}

			for j := op.J1; j < op.J2; j++ {
				out = append(out, m.DiffLine{Kind: m.DiffAdded, Line: j + 1, Text: after[j]})
			}
		}
	}

	return out
}

// diffContext is how many equal lines are kept around each change when a
// diff is rendered as text.
const diffContext = 2

// FormatDiff renders a diff as numbered text, collapsing long unchanged runs
// into a "..." separator.
func FormatDiff(lines []m.DiffLine) string {
	keep := markKeptLines(lines)

	var b strings.Builder

	elided := false

	for i, line := range lines {
		if !keep[i] {
			if !elided {
				b.WriteString("...\n")

				elided = true
			}

			continue
		}

		elided = false

		prefix := " "

		switch line.Kind {
		case m.DiffAdded:
			prefix = "+"
		case m.DiffRemoved:
			prefix = "-"
		case m.DiffEqual:
		}

		fmt.Fprintf(&b, "%s %4d  %s\n", prefix, line.Line, line.Text)
	}

	return b.String()
}

// markKeptLines flags every changed line plus diffContext equal lines on
// each side of it.
func markKeptLines(lines []m.DiffLine) []bool {
	keep := make([]bool, len(lines))

	for i, line := range lines {
		if line.Kind == m.DiffEqual {
			continue
		}

		lo := i - diffContext
		if lo < 0 {
			lo = 0
		}

		hi := i + diffContext
		if hi > len(lines)-1 {
			hi = len(lines) - 1
		}

		for j := lo; j <= hi; j++ {
			keep[j] = true
		}
	}

	return keep
}
