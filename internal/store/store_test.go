package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ccu/internal/host"
	"ccu/pkg/logging"
)

func init() {
	logging.Discard()
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestSettingsFile_MissingFileIsEmpty(t *testing.T) {
	f := NewSettingsFile(filepath.Join(t.TempDir(), "settings.yaml"))

	joined, err := f.Symbols("Standalone")
	require.NoError(t, err)
	assert.Empty(t, joined)
	assert.Equal(t, host.GroupUnknown, f.SelectedGroup())

	_, ok := f.ActiveGroupInternal()
	assert.False(t, ok)
}

func TestSettingsFile_ReadsGroupsAndSymbols(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, `selectedBuildTargetGroup: Standalone
activeBuildTargetGroup: Android
scriptingDefineSymbols:
  Standalone: FOO;UNITY_CCU
  Android: BAR
`)
	f := NewSettingsFile(path)

	assert.Equal(t, host.Group("Standalone"), f.SelectedGroup())
	active, ok := f.ActiveGroupInternal()
	require.True(t, ok)
	assert.Equal(t, host.Group("Android"), active)

	joined, err := f.Symbols("Standalone")
	require.NoError(t, err)
	assert.Equal(t, "FOO;UNITY_CCU", joined)
}

func TestSettingsFile_SetSymbolsPreservesOtherGroups(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.yaml")
	f := NewSettingsFile(path)
	require.NoError(t, f.Save(Settings{
		SelectedGroup: "Standalone",
		Symbols:       map[string]string{"Android": "BAR"},
	}))

	require.NoError(t, f.SetSymbols("Standalone", "UNITY_CCU;USE_BAR"))

	s, err := f.Load()
	require.NoError(t, err)
	assert.Equal(t, host.Group("Standalone"), s.SelectedGroup)
	assert.Equal(t, map[string]string{
		"Android":    "BAR",
		"Standalone": "UNITY_CCU;USE_BAR",
	}, s.Symbols)

	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err), "temporary file must not be left behind")
}

func TestSettingsFile_WithGroupOverridesSelection(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "selectedBuildTargetGroup: Standalone\n")

	f := NewSettingsFile(path).WithGroup("iOS")
	assert.Equal(t, host.Group("iOS"), f.SelectedGroup())

	f.WithGroup(host.GroupUnknown)
	assert.Equal(t, host.Group("Standalone"), f.SelectedGroup())
}

func TestSettingsFile_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	writeFile(t, path, "scriptingDefineSymbols: [unclosed\n")
	f := NewSettingsFile(path)

	_, err := f.Symbols("Standalone")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse settings file")
	assert.Equal(t, host.GroupUnknown, f.SelectedGroup())

	assert.Error(t, f.SetSymbols("Standalone", "UNITY_CCU"), "a corrupt file is never overwritten")
}

func TestParseDiagnostics(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []host.Diagnostic
		wantErr bool
	}{
		{
			name:  "empty",
			input: "  \n",
			want:  nil,
		},
		{
			name: "yaml list",
			input: `- severity: error
  code: CS0246
  message: The type or namespace name 'Bar' could not be found
  file: Assets/Game.cs
  line: 12
`,
			want: []host.Diagnostic{{
				Severity: host.SeverityError,
				Code:     "CS0246",
				Message:  "The type or namespace name 'Bar' could not be found",
				File:     "Assets/Game.cs",
				Line:     12,
			}},
		},
		{
			name:  "json report",
			input: `{"diagnostics": [{"severity": "warning", "code": "CS0618"}]}`,
			want:  []host.Diagnostic{{Severity: host.SeverityWarning, Code: "CS0618"}},
		},
		{
			name:    "scalar",
			input:   "nope",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDiagnostics([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDiagnosticsFile_MissingFileIsClean(t *testing.T) {
	d := NewDiagnosticsFile(filepath.Join(t.TempDir(), "diagnostics.yaml"))
	diags, err := d.Read()
	require.NoError(t, err)
	assert.Empty(t, diags)
}

func TestDiagnosticsFile_Event(t *testing.T) {
	path := filepath.Join(t.TempDir(), "diagnostics.json")
	writeFile(t, path, `[{"severity": "error", "code": "CS0234"}]`)

	ev, err := NewDiagnosticsFile(path).Event()
	require.NoError(t, err)
	assert.Equal(t, host.EventCompilationFinished, ev.Kind)
	assert.Equal(t, path, ev.Source)
	require.Len(t, ev.Diagnostics, 1)
	assert.True(t, ev.Diagnostics[0].IsError())
}
