package optdep

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_FirstDeclarationWins(t *testing.T) {
	r := NewRegistry()

	require.NoError(t, r.Register("Foo.Bar", "USE_BAR"))
	require.NoError(t, r.Register(" Foo.Baz ", " USE_BAZ "))
	require.NoError(t, r.Register("Foo.Bar", "USE_OTHER"))

	assert.Equal(t, []Declaration{
		{DependentClass: "Foo.Bar", Define: "USE_BAR"},
		{DependentClass: "Foo.Baz", Define: "USE_BAZ"},
	}, r.Entries())
	assert.Equal(t, 2, r.Count())
}

func TestRegistry_RejectsBlankFields(t *testing.T) {
	r := NewRegistry()

	assert.ErrorIs(t, r.Register("", "USE_BAR"), ErrInvalidDeclaration)
	assert.ErrorIs(t, r.Register("Foo.Bar", "  "), ErrInvalidDeclaration)
	assert.Equal(t, 0, r.Count())
}

func TestRegistry_Reset(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register("Foo.Bar", "USE_BAR"))

	r.Reset()
	assert.Equal(t, 0, r.Count())
	require.NoError(t, r.Register("Foo.Bar", "USE_BAR_AGAIN"))
	assert.Equal(t, "USE_BAR_AGAIN", r.Entries()[0].Define)
}

func TestRegistry_ZeroValueUsable(t *testing.T) {
	var r Registry
	require.NoError(t, r.Register("Foo.Bar", "USE_BAR"))
	assert.Equal(t, 1, r.Count())
}

func TestMustRegister_PanicsOnInvalid(t *testing.T) {
	Default().Reset()
	t.Cleanup(Default().Reset)

	assert.Panics(t, func() { MustRegister("", "") })
	assert.NotPanics(t, func() { MustRegister("Foo.Bar", "USE_BAR") })
	assert.Equal(t, 1, Default().Count())
}
