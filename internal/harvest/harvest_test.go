package harvest

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu/internal/host"
	"ccu/internal/markers"
	"ccu/internal/testing/fixtures"
	"ccu/pkg/logging"
	"ccu/pkg/optdep"
)

func init() {
	logging.Discard()
}

func discover(t *testing.T, loader host.ModuleLoader) markers.Result {
	t.Helper()
	res, err := markers.Discover(loader, markers.DefaultOptions())
	require.NoError(t, err)
	return res
}

func TestHarvest_FirstWriteWins(t *testing.T) {
	loader := fixtures.NewLoader(
		fixtures.Module("Core", []host.TypeInfo{fixtures.MarkerType(fixtures.MarkerTypeName)},
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Bar", "USE_BAR"),
		),
		fixtures.Module("Other", nil,
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Bar", "USE_BAR_AGAIN"),
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Baz", "USE_BAZ"),
		),
	)

	mapping, err := Harvest(loader, discover(t, loader))
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{DependentClass: "Foo.Bar", Define: "USE_BAR", Origin: "Core"},
		{DependentClass: "Foo.Baz", Define: "USE_BAZ", Origin: "Other"},
	}, mapping.Records())
	assert.Equal(t, []string{"USE_BAR", "USE_BAZ"}, mapping.Defines())
}

func TestHarvest_IgnoresUnsuitableInstances(t *testing.T) {
	nonString := fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Num", "x")
	nonString.Fields["define"] = 42

	loader := fixtures.NewLoader(
		fixtures.BrokenModule("Broken"),
		fixtures.Module("Game", []host.TypeInfo{
			fixtures.MarkerType(fixtures.MarkerTypeName),
			fixtures.MarkerTypeWithout("Game.Malformed", "define"),
		},
			fixtures.Dependency(fixtures.MarkerTypeName, "", "USE_EMPTY"),
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Empty", "  "),
			nonString,
			fixtures.Dependency("Game.Malformed", "Foo.Malformed", "USE_MALFORMED"),
			fixtures.Dependency("System.ObsoleteAttribute", "Foo.Obsolete", "USE_OBSOLETE"),
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Ok", "USE_OK"),
		),
	)

	mapping, err := Harvest(loader, discover(t, loader))
	require.NoError(t, err)

	require.Equal(t, 1, mapping.Len(), "malformed marker types never contribute records")
	rec := mapping.Records()[0]
	assert.Equal(t, "Foo.Ok", rec.DependentClass)
	assert.Equal(t, "USE_OK", rec.Define)
}

func TestHarvest_NoMarkerTypes(t *testing.T) {
	loader := fixtures.NewLoader(fixtures.Module("Game", []host.TypeInfo{fixtures.PlainType("Game.Player")},
		fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Bar", "USE_BAR"),
	))

	mapping, err := Harvest(loader, discover(t, loader))
	require.NoError(t, err)
	assert.Equal(t, 0, mapping.Len())
}

func TestHarvest_RegistrySourceAfterAttributes(t *testing.T) {
	reg := optdep.NewRegistry()
	require.NoError(t, reg.Register("Foo.Bar", "USE_BAR_FROM_REGISTRY"))
	require.NoError(t, reg.Register("Vendor.Client", "USE_VENDOR"))

	loader := fixtures.NewLoader(
		fixtures.Module("Game", []host.TypeInfo{fixtures.MarkerType(fixtures.MarkerTypeName)},
			fixtures.Dependency(fixtures.MarkerTypeName, "Foo.Bar", "USE_BAR"),
		),
	)

	mapping, err := Harvest(loader, discover(t, loader), RegistrySource(reg))
	require.NoError(t, err)

	assert.Equal(t, []Record{
		{DependentClass: "Foo.Bar", Define: "USE_BAR", Origin: "Game"},
		{DependentClass: "Vendor.Client", Define: "USE_VENDOR", Origin: OriginRegistry},
	}, mapping.Records())
}

type failingSource struct{}

func (failingSource) Name() string               { return "failing" }
func (failingSource) Records() ([]Record, error) { return nil, errors.New("unavailable") }

func TestHarvest_SourceErrorIsReturned(t *testing.T) {
	loader := fixtures.NewLoader()
	_, err := Harvest(loader, markers.Result{}, failingSource{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failing")
}

func TestMapping_DefinesAreDistinct(t *testing.T) {
	m := NewMapping()
	assert.True(t, m.Add(Record{DependentClass: "A", Define: "USE_X"}))
	assert.True(t, m.Add(Record{DependentClass: "B", Define: "use_x"}))
	assert.False(t, m.Add(Record{DependentClass: "A", Define: "USE_Y"}))
	assert.False(t, m.Add(Record{DependentClass: "", Define: "USE_Z"}))

	assert.Equal(t, []string{"USE_X"}, m.Defines())
	assert.Equal(t, 2, m.Len())
}
