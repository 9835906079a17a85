package markers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu/internal/host"
	"ccu/internal/testing/fixtures"
	"ccu/pkg/logging"
)

func init() {
	logging.Discard()
}

func names(res Result) []string {
	var out []string
	for _, d := range res.Descriptors {
		out = append(out, d.Name())
	}
	return out
}

func TestDiscover_FindsWellFormedMarkerTypes(t *testing.T) {
	loader := fixtures.NewLoader(
		fixtures.Module("Game", []host.TypeInfo{
			fixtures.MarkerType(fixtures.MarkerTypeName),
			fixtures.PlainType("Game.Player"),
		}),
	)

	res, err := Discover(loader, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{fixtures.MarkerTypeName}, names(res))
	assert.Empty(t, res.Malformed)

	d, ok := res.Lookup(fixtures.MarkerTypeName)
	require.True(t, ok)
	assert.Equal(t, "Game", d.Module)
	assert.Equal(t, "define", d.DefineField)
}

func TestDiscover_Filters(t *testing.T) {
	abstract := fixtures.MarkerType("Game.AbstractMarker")
	abstract.Abstract = true

	iface := fixtures.MarkerType("Game.IMarker")
	iface.Kind = host.KindInterface

	notAttribute := fixtures.MarkerType("Game.NotAnAttribute")
	notAttribute.Base = "System.Object"

	otherCondition := fixtures.MarkerType("Game.DebugOnly")
	otherCondition.Annotations = []host.Annotation{
		{Type: DefaultConditionalMarker, Args: []string{"DEBUG"}},
	}

	lowerCase := fixtures.MarkerType("Game.LowerCaseCondition")
	lowerCase.Annotations = []host.Annotation{
		{Type: DefaultConditionalMarker, Args: []string{"unity_ccu"}},
	}

	unmarked := fixtures.MarkerType("Game.Unmarked")
	unmarked.Annotations = nil

	derived := fixtures.MarkerType("Game.DerivedMarker")
	derived.Base = "Game.IntermediateAttribute"
	intermediate := host.TypeInfo{Name: "Game.IntermediateAttribute", Base: "System.Attribute", Abstract: true}

	loader := fixtures.NewLoader(fixtures.Module("Game", []host.TypeInfo{
		abstract, iface, notAttribute, otherCondition, lowerCase, unmarked, derived, intermediate,
	}))

	res, err := Discover(loader, DefaultOptions())
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"Game.LowerCaseCondition", "Game.DerivedMarker"}, names(res))
}

func TestDiscover_MalformedTypesAreReportedAndExcluded(t *testing.T) {
	nonString := fixtures.MarkerType("Game.IntDefine")
	nonString.Fields[1].Type = "int"

	loader := fixtures.NewLoader(fixtures.Module("Game", []host.TypeInfo{
		fixtures.MarkerTypeWithout("Game.NoDefine", "define"),
		fixtures.MarkerTypeWithout("Game.NoClass", "dependentClass"),
		nonString,
		fixtures.MarkerType("Game.Good"),
	}))

	res, err := Discover(loader, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Game.Good"}, names(res))
	require.Len(t, res.Malformed, 3)

	assert.Equal(t, "Game.NoDefine", res.Malformed[0].Type)
	assert.Equal(t, "define", res.Malformed[0].Field)
	assert.Contains(t, res.Malformed[0].Error(), "Game.NoDefine")
	assert.Contains(t, res.Malformed[0].Error(), "is missing")

	assert.Equal(t, "dependentClass", res.Malformed[1].Field)
	assert.Equal(t, "has non-string", res.Malformed[2].Reason)
}

func TestDiscover_SkipsBrokenModules(t *testing.T) {
	loader := fixtures.NewLoader(
		fixtures.BrokenModule("Broken"),
		fixtures.Module("Game", []host.TypeInfo{fixtures.MarkerType("Game.Marker")}),
	)

	res, err := Discover(loader, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"Game.Marker"}, names(res))
}

func TestDiscover_CustomOptions(t *testing.T) {
	marker := host.TypeInfo{
		Name:        "Plugins.Needs",
		Base:        "Plugins.AttributeBase",
		Annotations: []host.Annotation{{Type: "Plugins.Conditional", Args: []string{"PLUGINS"}}},
		Fields:      []host.FieldInfo{{Name: "type", Type: "string"}, {Name: "symbol", Type: "System.String"}},
	}
	loader := fixtures.NewLoader(fixtures.Module("Plugins", []host.TypeInfo{marker}))

	res, err := Discover(loader, Options{
		EnableSymbol:        "PLUGINS",
		AttributeBase:       "Plugins.AttributeBase",
		ConditionalMarker:   "Plugins.Conditional",
		DependentClassField: "type",
		DefineField:         "symbol",
	})
	require.NoError(t, err)
	require.Equal(t, []string{"Plugins.Needs"}, names(res))
	assert.Equal(t, "symbol", res.Descriptors[0].DefineField)
}
