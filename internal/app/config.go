package app

import (
	"io"

	"ccu/internal/config"
)

// Config holds the application configuration
type Config struct {
	// Debug settings
	Debug bool

	// Silent suppresses log output
	Silent bool

	// LogLevel names the minimum level (debug, info, warn, error).
	// It takes precedence over Debug when set.
	LogLevel string

	// ProjectDir is the host project root. Relative paths in the
	// configuration file are resolved against it.
	ProjectDir string

	// Custom configuration file (optional)
	// When empty, ccu.yaml in ProjectDir is used if present
	ConfigPath string

	// LogOutput receives log lines; nil means stderr
	LogOutput io.Writer

	// Group overrides the configured build-target group when set
	Group string

	// Effective ccu configuration, filled in by NewApplication
	CCUConfig *config.Config
}

// NewConfig creates a new application configuration
func NewConfig(debug bool, projectDir, configPath string) *Config {
	return &Config{
		Debug:      debug,
		ProjectDir: projectDir,
		ConfigPath: configPath,
	}
}
