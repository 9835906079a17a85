// Package strings holds small text helpers for terminal output.
package strings

import (
	"strings"
)

// DefaultCellMaxLen is the widest a free-text table cell is rendered.
const DefaultCellMaxLen = 80

// MinTruncateLen is the smallest maxLen TruncateCell honours; it leaves room
// for one character plus "...".
const MinTruncateLen = 4

// TruncateCell collapses whitespace in s to single spaces and shortens the
// result to at most maxLen runes, ending in "..." when cut.
func TruncateCell(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}

// JoinCell joins items with sep and truncates the result like TruncateCell.
// An empty list renders as "-".
func JoinCell(items []string, sep string, maxLen int) string {
	if len(items) == 0 {
		return "-"
	}
	return TruncateCell(strings.Join(items, sep), maxLen)
}
