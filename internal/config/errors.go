package config

import (
	"fmt"
	"strings"
)

// ErrorKind classifies a ConfigurationError.
type ErrorKind string

const (
	// ErrorKindValidation marks a value that loaded but is not usable.
	ErrorKindValidation ErrorKind = "validation"
	// ErrorKindEnvironment marks a CCU_* variable that could not be parsed.
	ErrorKindEnvironment ErrorKind = "environment"
)

// ConfigurationError is one problem in the effective configuration.
type ConfigurationError struct {
	Source  string    `json:"source,omitempty"` // config file in effect, or "environment"
	Field   string    `json:"field"`            // yaml key or environment variable
	Kind    ErrorKind `json:"kind"`
	Message string    `json:"message"`
	Hints   []string  `json:"hints,omitempty"`
}

func (ce ConfigurationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ce.Kind, ce.Field, ce.Message)
}

// Detail renders the error with its source and hints, one per line.
func (ce ConfigurationError) Detail() string {
	var b strings.Builder
	if ce.Source != "" {
		fmt.Fprintf(&b, "%s: ", ce.Source)
	}
	fmt.Fprintf(&b, "%s %s (%s)", ce.Field, ce.Message, ce.Kind)
	for _, hint := range ce.Hints {
		fmt.Fprintf(&b, "\n    hint: %s", hint)
	}
	return b.String()
}

// ConfigurationErrorCollection gathers every problem found while loading,
// so a single run reports all of them.
type ConfigurationErrorCollection struct {
	Errors []ConfigurationError `json:"errors"`
}

func (cec ConfigurationErrorCollection) Error() string {
	switch len(cec.Errors) {
	case 0:
		return "no configuration errors"
	case 1:
		return cec.Errors[0].Error()
	default:
		return fmt.Sprintf("%d configuration errors: %s (and %d more)",
			len(cec.Errors), cec.Errors[0].Error(), len(cec.Errors)-1)
	}
}

// HasErrors returns true if there are any errors in the collection
func (cec *ConfigurationErrorCollection) HasErrors() bool {
	return len(cec.Errors) > 0
}

// Count returns the number of errors in the collection
func (cec *ConfigurationErrorCollection) Count() int {
	return len(cec.Errors)
}

// Add appends err.
func (cec *ConfigurationErrorCollection) Add(err ConfigurationError) {
	cec.Errors = append(cec.Errors, err)
}

// Merge appends every error of other.
func (cec *ConfigurationErrorCollection) Merge(other *ConfigurationErrorCollection) {
	if other != nil {
		cec.Errors = append(cec.Errors, other.Errors...)
	}
}

// Fields returns the offending field names in report order.
func (cec *ConfigurationErrorCollection) Fields() []string {
	out := make([]string, 0, len(cec.Errors))
	for _, err := range cec.Errors {
		out = append(out, err.Field)
	}
	return out
}

// GetDetailedReport renders every error for terminal output.
func (cec *ConfigurationErrorCollection) GetDetailedReport() string {
	if len(cec.Errors) == 0 {
		return "No configuration errors to report"
	}

	lines := []string{fmt.Sprintf("ccu configuration is invalid (%d problems):", len(cec.Errors))}
	for i, err := range cec.Errors {
		lines = append(lines, fmt.Sprintf("  %d. %s", i+1, err.Detail()))
	}
	return strings.Join(lines, "\n")
}

// NewConfigurationErrorCollection creates a new empty error collection
func NewConfigurationErrorCollection() *ConfigurationErrorCollection {
	return &ConfigurationErrorCollection{
		Errors: make([]ConfigurationError, 0),
	}
}
