package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"ccu/pkg/logging"
)

const (
	// ConfigFileName is looked up in the project directory.
	ConfigFileName = "ccu.yaml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CCU_"
)

// LoadConfig builds the configuration for the project in projectDir.
//
// Layers, lowest first: defaults, the config file, then .env in projectDir
// and CCU_* environment variables. configPath selects the config file; empty
// means ccu.yaml in projectDir, which may be absent. Relative paths in the
// result are resolved against projectDir and the result is validated.
func LoadConfig(projectDir, configPath string) (Config, error) {
	config := GetDefaultConfig()

	explicit := configPath != ""
	if !explicit {
		configPath = filepath.Join(projectDir, ConfigFileName)
	}

	data, err := os.ReadFile(configPath)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return Config{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
		}
		logging.Debug("Config", "Loaded configuration from %s", configPath)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		logging.Debug("Config", "No %s found in %s, using defaults", ConfigFileName, projectDir)
	default:
		return Config{}, fmt.Errorf("error loading config from %s: %w", configPath, err)
	}

	// A missing .env is the normal case.
	_ = godotenv.Load(filepath.Join(projectDir, ".env"))

	errs := NewConfigurationErrorCollection()
	applyEnv(&config, configPath, errs)

	config.ResolvePaths(projectDir)

	if verr := Validate(config, configPath); verr != nil {
		var coll *ConfigurationErrorCollection
		if errors.As(verr, &coll) {
			errs.Merge(coll)
		}
	}
	if errs.HasErrors() {
		return Config{}, errs
	}
	return config, nil
}

// applyEnv overlays CCU_* environment variables onto config. Unparseable
// values are collected into errs.
func applyEnv(config *Config, source string, errs *ConfigurationErrorCollection) {
	strs := map[string]*string{
		"ENABLE_SYMBOL":         &config.EnableSymbol,
		"ATTRIBUTE_BASE":        &config.AttributeBase,
		"CONDITIONAL_MARKER":    &config.ConditionalMarker,
		"DEPENDENT_CLASS_FIELD": &config.DependentClassField,
		"DEFINE_FIELD":          &config.DefineField,
		"MODULES_DIR":           &config.ModulesDir,
		"SETTINGS_FILE":         &config.SettingsFile,
		"DIAGNOSTICS_FILE":      &config.DiagnosticsFile,
		"STATE_FILE":            &config.StateFile,
		"GROUP":                 &config.Group,
	}
	for name, dst := range strs {
		if v, ok := lookupEnv(name); ok {
			*dst = v
		}
	}

	if v, ok := lookupEnv("UNRESOLVED_CODES"); ok {
		config.UnresolvedCodes = splitList(v)
	}

	if v, ok := lookupEnv("PERSIST_FAILED_DEFINES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs.Add(envError(source, "PERSIST_FAILED_DEFINES", v, "must be a boolean"))
		} else {
			config.PersistFailedDefines = b
		}
	}

	durations := map[string]*time.Duration{
		"RELOAD_PAUSE":      &config.ReloadPause,
		"DEBOUNCE_INTERVAL": &config.DebounceInterval,
	}
	for name, dst := range durations {
		v, ok := lookupEnv(name)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			errs.Add(envError(source, name, v, "must be a duration such as 500ms or 1s"))
			continue
		}
		*dst = d
	}
}

func lookupEnv(name string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + name)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v), true
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(v, func(r rune) bool { return r == ',' || r == ';' }) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envError(source, name, value, message string) ConfigurationError {
	return ConfigurationError{
		Source:  source,
		Field:   EnvPrefix + name,
		Kind:    ErrorKindEnvironment,
		Message: fmt.Sprintf("%q %s", value, message),
	}
}
