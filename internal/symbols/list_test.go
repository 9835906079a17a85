package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"empty", "", []string{}},
		{"single", "FOO", []string{"FOO"}},
		{"ordered", "B;A;C", []string{"B", "A", "C"}},
		{"drops empty tokens", ";FOO;;BAR;", []string{"FOO", "BAR"}},
		{"trims whitespace", " FOO ; BAR", []string{"FOO", "BAR"}},
		{"first spelling wins", "Foo;FOO;foo;BAR", []string{"Foo", "BAR"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Parse(tt.input).Items())
		})
	}
}

func TestList_AddRemove(t *testing.T) {
	l := Parse("UNITY_CCU")

	assert.True(t, l.Add("USE_BAR"))
	assert.False(t, l.Add("use_bar"), "case-insensitive duplicate must not be added")
	assert.False(t, l.Add("  "))
	assert.Equal(t, "UNITY_CCU;USE_BAR", l.String())

	assert.True(t, l.Contains("unity_ccu"))
	assert.True(t, l.Remove("Use_Bar"))
	assert.False(t, l.Remove("USE_BAR"))
	assert.Equal(t, "UNITY_CCU", l.String())
}

func TestList_ZeroValue(t *testing.T) {
	var l List
	assert.Equal(t, 0, l.Len())
	assert.Equal(t, "", l.String())
	assert.True(t, l.Add("FOO"))
	assert.Equal(t, "FOO", l.String())
}

func TestList_CloneIsIndependent(t *testing.T) {
	l := Of("A", "B")
	c := l.Clone()
	c.Add("C")
	c.Remove("A")

	assert.Equal(t, []string{"A", "B"}, l.Items())
	assert.Equal(t, []string{"B", "C"}, c.Items())
}

func TestList_RoundTripPreservesCase(t *testing.T) {
	assert.Equal(t, "Foo;bar;BAZ", Parse("Foo;bar;BAZ").String())
}
