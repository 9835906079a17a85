package config

import (
	"time"

	"ccu/internal/markers"
	"ccu/internal/recovery"
)

const (
	// DefaultModulesDir holds one YAML manifest per loaded module.
	DefaultModulesDir = ".ccu/modules"

	// DefaultSettingsFile is the project settings file.
	DefaultSettingsFile = "ProjectSettings/ProjectSettings.yaml"

	// DefaultDiagnosticsFile is where the host compiler reports diagnostics.
	DefaultDiagnosticsFile = ".ccu/diagnostics.yaml"

	// DefaultStateFile persists recovery listener state between invocations.
	DefaultStateFile = ".ccu/state.yaml"

	// DefaultDebounceInterval batches bursts of file events.
	DefaultDebounceInterval = 500 * time.Millisecond
)

// GetDefaultConfig returns the default configuration for ccu.
func GetDefaultConfig() Config {
	return Config{
		EnableSymbol:         markers.DefaultEnableSymbol,
		AttributeBase:        markers.DefaultAttributeBase,
		ConditionalMarker:    markers.DefaultConditionalMarker,
		DependentClassField:  markers.DefaultDependentClassField,
		DefineField:          markers.DefaultDefineField,
		ModulesDir:           DefaultModulesDir,
		SettingsFile:         DefaultSettingsFile,
		DiagnosticsFile:      DefaultDiagnosticsFile,
		StateFile:            DefaultStateFile,
		UnresolvedCodes:      append([]string(nil), recovery.DefaultUnresolvedCodes...),
		PersistFailedDefines: true,
		DebounceInterval:     DefaultDebounceInterval,
	}
}
