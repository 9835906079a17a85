package config

import (
	"slices"
	"strings"
	"unicode"
)

// Validate checks the effective configuration. It returns nil or a
// *ConfigurationErrorCollection listing every problem found.
func Validate(c Config, source string) error {
	errs := NewConfigurationErrorCollection()
	add := func(field, message string, hints ...string) {
		errs.Add(ConfigurationError{
			Source:  source,
			Field:   field,
			Kind:    ErrorKindValidation,
			Message: message,
			Hints:   hints,
		})
	}

	switch {
	case strings.TrimSpace(c.EnableSymbol) == "":
		add("enableSymbol", "is required")
	case !isSymbol(c.EnableSymbol):
		add("enableSymbol", "must be a single symbol without separators or whitespace",
			"use letters, digits and underscores, for example UNITY_CCU")
	}

	required := map[string]string{
		"attributeBase":       c.AttributeBase,
		"conditionalMarker":   c.ConditionalMarker,
		"dependentClassField": c.DependentClassField,
		"defineField":         c.DefineField,
		"modulesDir":          c.ModulesDir,
		"settingsFile":        c.SettingsFile,
		"diagnosticsFile":     c.DiagnosticsFile,
		"stateFile":           c.StateFile,
	}
	fields := make([]string, 0, len(required))
	for field := range required {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		if strings.TrimSpace(required[field]) == "" {
			add(field, "is required")
		}
	}

	if c.DependentClassField != "" && c.DependentClassField == c.DefineField {
		add("defineField", "must differ from dependentClassField")
	}

	if len(c.UnresolvedCodes) == 0 {
		add("unresolvedCodes", "must list at least one diagnostic code", "the compiler's type-not-found codes are CS0246 and CS0234")
	}
	for _, code := range c.UnresolvedCodes {
		if strings.TrimSpace(code) == "" {
			add("unresolvedCodes", "must not contain empty codes")
			break
		}
	}

	if c.ReloadPause < 0 {
		add("reloadPause", "must not be negative")
	}
	if c.DebounceInterval < 0 {
		add("debounceInterval", "must not be negative")
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}

func isSymbol(s string) bool {
	for _, r := range s {
		if r == ';' || unicode.IsSpace(r) {
			return false
		}
	}
	return true
}
