package config

import (
	"path/filepath"
	"time"
)

// Config is the top-level configuration structure for ccu.
type Config struct {
	// Marker shape
	EnableSymbol        string `yaml:"enableSymbol,omitempty"`        // Symbol that turns the system on (default: UNITY_CCU)
	AttributeBase       string `yaml:"attributeBase,omitempty"`       // Base type of every marker type
	ConditionalMarker   string `yaml:"conditionalMarker,omitempty"`   // Annotation type that tags marker types
	DependentClassField string `yaml:"dependentClassField,omitempty"` // Field holding the dependent class name
	DefineField         string `yaml:"defineField,omitempty"`         // Field holding the define

	// Host surfaces, relative to the project directory unless absolute
	ModulesDir      string `yaml:"modulesDir,omitempty"`      // Directory of module manifests
	SettingsFile    string `yaml:"settingsFile,omitempty"`    // Project settings holding the symbol lists
	DiagnosticsFile string `yaml:"diagnosticsFile,omitempty"` // Diagnostics written after each compile
	StateFile       string `yaml:"stateFile,omitempty"`       // Recovery listener state

	// Group pins the build-target group. Empty follows the settings file.
	Group string `yaml:"group,omitempty"`

	// Recovery
	UnresolvedCodes      []string      `yaml:"unresolvedCodes,omitempty"`  // Diagnostic codes that trigger a reset
	PersistFailedDefines bool          `yaml:"persistFailedDefines"`       // Skip a reset when the failing define set repeats
	ReloadPause          time.Duration `yaml:"reloadPause,omitempty"`      // Pause after a pass that wrote symbols
	DebounceInterval     time.Duration `yaml:"debounceInterval,omitempty"` // Quiet period before a file change becomes an event
}

// ResolvePaths makes every relative path absolute against projectDir.
func (c *Config) ResolvePaths(projectDir string) {
	for _, p := range []*string{&c.ModulesDir, &c.SettingsFile, &c.DiagnosticsFile, &c.StateFile} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(projectDir, *p)
		}
	}
}
