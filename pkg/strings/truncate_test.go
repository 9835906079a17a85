package strings

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateCell(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "hello", 10, "hello"},
		{"exact length unchanged", "hello", 5, "hello"},
		{"long string cut", "could not load file or assembly", 12, "could not..."},
		{"newlines collapsed", "line one\n\tline two", 80, "line one line two"},
		{"multibyte runes", "äöüäöüäöü", 6, "äöü..."},
		{"maxLen clamped", "abcdefgh", 1, "a..."},
		{"empty", "", 10, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, TruncateCell(tt.input, tt.maxLen))
		})
	}
}

func TestJoinCell(t *testing.T) {
	assert.Equal(t, "-", JoinCell(nil, ";", 10))
	assert.Equal(t, "A;B", JoinCell([]string{"A", "B"}, ";", 10))
	assert.Equal(t, "AAAA;B...", JoinCell([]string{"AAAA", "BBBB", "CCCC"}, ";", 9))
}
