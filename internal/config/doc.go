// Package config provides configuration management for ccu.
//
// Configuration is layered, lowest precedence first:
//
//   - built-in defaults (GetDefaultConfig)
//   - ccu.yaml in the project directory, or the file given with --config
//   - a .env file in the project directory and CCU_* environment variables
//   - command-line flags, applied by the caller
//
// # Configuration File
//
//	enableSymbol: UNITY_CCU
//	modulesDir: .ccu/modules
//	settingsFile: ProjectSettings/ProjectSettings.yaml
//	diagnosticsFile: .ccu/diagnostics.yaml
//	stateFile: .ccu/state.yaml
//	group: Standalone
//	unresolvedCodes: [CS0246, CS0234]
//	persistFailedDefines: true
//	reloadPause: 1s
//	debounceInterval: 500ms
//
// Relative paths are resolved against the project directory.
//
// # Environment
//
// Every field has a CCU_ counterpart in upper snake case, for example
// CCU_ENABLE_SYMBOL or CCU_DEBOUNCE_INTERVAL. CCU_UNRESOLVED_CODES takes a
// comma separated list.
//
// # Errors
//
// LoadConfig returns a *ConfigurationErrorCollection when the effective
// configuration is invalid, so every problem is reported at once.
package config
