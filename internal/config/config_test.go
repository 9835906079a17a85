package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu/pkg/logging"
)

func init() {
	logging.Discard()
}

func writeConfig(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)

	want := GetDefaultConfig()
	want.ResolvePaths(dir)
	assert.Equal(t, want, cfg)
	assert.Equal(t, filepath.Join(dir, DefaultModulesDir), cfg.ModulesDir)
	assert.True(t, cfg.PersistFailedDefines)
}

func TestLoadConfig_ProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, `enableSymbol: MY_CCU
modulesDir: /abs/modules
group: Android
unresolvedCodes: [CS0246]
persistFailedDefines: false
reloadPause: 1s
`)

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "MY_CCU", cfg.EnableSymbol)
	assert.Equal(t, "/abs/modules", cfg.ModulesDir)
	assert.Equal(t, "Android", cfg.Group)
	assert.Equal(t, []string{"CS0246"}, cfg.UnresolvedCodes)
	assert.False(t, cfg.PersistFailedDefines)
	assert.Equal(t, time.Second, cfg.ReloadPause)
	assert.Equal(t, DefaultDebounceInterval, cfg.DebounceInterval, "unset fields keep their defaults")
}

func TestLoadConfig_ExplicitPath(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, t.TempDir(), "other.yaml", "enableSymbol: OTHER\n")

	cfg, err := LoadConfig(dir, path)
	require.NoError(t, err)
	assert.Equal(t, "OTHER", cfg.EnableSymbol)
}

func TestLoadConfig_ExplicitPathMissing(t *testing.T) {
	_, err := LoadConfig(t.TempDir(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, "enableSymbol: [unclosed\n")

	_, err := LoadConfig(dir, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error loading config")
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ConfigFileName, "enableSymbol: FROM_FILE\n")

	t.Setenv("CCU_ENABLE_SYMBOL", "FROM_ENV")
	t.Setenv("CCU_UNRESOLVED_CODES", "CS0246, CS1002")
	t.Setenv("CCU_PERSIST_FAILED_DEFINES", "false")
	t.Setenv("CCU_DEBOUNCE_INTERVAL", "2s")

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "FROM_ENV", cfg.EnableSymbol)
	assert.Equal(t, []string{"CS0246", "CS1002"}, cfg.UnresolvedCodes)
	assert.False(t, cfg.PersistFailedDefines)
	assert.Equal(t, 2*time.Second, cfg.DebounceInterval)
}

func TestLoadConfig_DotEnv(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, ".env", "CCU_GROUP=iOS\n")
	t.Cleanup(func() { _ = os.Unsetenv("CCU_GROUP") })

	cfg, err := LoadConfig(dir, "")
	require.NoError(t, err)
	assert.Equal(t, "iOS", cfg.Group)
}

func TestLoadConfig_InvalidEnvironmentValues(t *testing.T) {
	t.Setenv("CCU_PERSIST_FAILED_DEFINES", "sometimes")
	t.Setenv("CCU_RELOAD_PAUSE", "soon")

	_, err := LoadConfig(t.TempDir(), "")
	require.Error(t, err)

	var coll *ConfigurationErrorCollection
	require.True(t, errors.As(err, &coll))
	assert.Equal(t, 2, coll.Count())
	for _, e := range coll.Errors {
		assert.Equal(t, ErrorKindEnvironment, e.Kind)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Config)
		wantFields []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:       "empty enable symbol",
			mutate:     func(c *Config) { c.EnableSymbol = " " },
			wantFields: []string{"enableSymbol"},
		},
		{
			name:       "enable symbol with separator",
			mutate:     func(c *Config) { c.EnableSymbol = "A;B" },
			wantFields: []string{"enableSymbol"},
		},
		{
			name: "missing paths",
			mutate: func(c *Config) {
				c.SettingsFile = ""
				c.ModulesDir = ""
			},
			wantFields: []string{"modulesDir", "settingsFile"},
		},
		{
			name:       "same field names",
			mutate:     func(c *Config) { c.DefineField = c.DependentClassField },
			wantFields: []string{"defineField"},
		},
		{
			name:       "no codes",
			mutate:     func(c *Config) { c.UnresolvedCodes = nil },
			wantFields: []string{"unresolvedCodes"},
		},
		{
			name: "negative durations",
			mutate: func(c *Config) {
				c.ReloadPause = -time.Second
				c.DebounceInterval = -time.Second
			},
			wantFields: []string{"reloadPause", "debounceInterval"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := GetDefaultConfig()
			tt.mutate(&cfg)

			err := Validate(cfg, "ccu.yaml")
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			var coll *ConfigurationErrorCollection
			require.True(t, errors.As(err, &coll))
			var fields []string
			for _, e := range coll.Errors {
				fields = append(fields, e.Field)
				assert.Equal(t, "ccu.yaml", e.Source)
			}
			assert.Equal(t, tt.wantFields, fields)
		})
	}
}

func TestConfigurationErrorCollection_Error(t *testing.T) {
	coll := NewConfigurationErrorCollection()
	assert.Equal(t, "no configuration errors", coll.Error())

	coll.Add(ConfigurationError{Field: "enableSymbol", Kind: ErrorKindValidation, Message: "is required"})
	assert.Equal(t, "[validation] enableSymbol: is required", coll.Error())

	coll.Add(ConfigurationError{Field: "stateFile", Kind: ErrorKindValidation, Message: "is required"})
	assert.Contains(t, coll.Error(), "2 configuration errors")
	assert.Contains(t, coll.GetDetailedReport(), "2. stateFile is required (validation)")
	assert.Equal(t, []string{"enableSymbol", "stateFile"}, coll.Fields())

	other := NewConfigurationErrorCollection()
	other.Add(ConfigurationError{Source: "ccu.yaml", Field: "modulesDir", Kind: ErrorKindValidation, Message: "is required", Hints: []string{"set modulesDir"}})
	coll.Merge(other)
	coll.Merge(nil)
	require.Equal(t, 3, coll.Count())
	assert.Contains(t, coll.GetDetailedReport(), "3. ccu.yaml: modulesDir is required (validation)\n    hint: set modulesDir")
}
