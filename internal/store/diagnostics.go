package store

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"ccu/internal/host"
)

// diagnosticsReport is the wrapped form of a diagnostics file.
type diagnosticsReport struct {
	Diagnostics []host.Diagnostic `yaml:"diagnostics"`
}

// DiagnosticsFile reads the diagnostics the host compiler writes after each
// compile. The file holds either a bare list or a document with a
// diagnostics key, in YAML or JSON.
type DiagnosticsFile struct {
	path string
}

// NewDiagnosticsFile creates a reader for the file at path.
func NewDiagnosticsFile(path string) *DiagnosticsFile {
	return &DiagnosticsFile{path: path}
}

// Path returns the diagnostics file path.
func (d *DiagnosticsFile) Path() string {
	return d.path
}

// Read returns the diagnostics in the file. A missing or empty file means a
// clean compile.
func (d *DiagnosticsFile) Read() ([]host.Diagnostic, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read diagnostics file %s: %w", d.path, err)
	}
	diags, err := ParseDiagnostics(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse diagnostics file %s: %w", d.path, err)
	}
	return diags, nil
}

// Event reads the file and wraps its contents in a compilation-finished
// event.
func (d *DiagnosticsFile) Event() (host.Event, error) {
	diags, err := d.Read()
	if err != nil {
		return host.Event{}, err
	}
	return host.Event{
		Kind:        host.EventCompilationFinished,
		Diagnostics: diags,
		Timestamp:   time.Now(),
		Source:      d.path,
	}, nil
}

// ParseDiagnostics decodes a diagnostics document.
func ParseDiagnostics(data []byte) ([]host.Diagnostic, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal(trimmed, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return nil, nil
	}

	switch node.Content[0].Kind {
	case yaml.SequenceNode:
		var list []host.Diagnostic
		if err := node.Content[0].Decode(&list); err != nil {
			return nil, err
		}
		return list, nil
	case yaml.MappingNode:
		var report diagnosticsReport
		if err := node.Content[0].Decode(&report); err != nil {
			return nil, err
		}
		return report.Diagnostics, nil
	default:
		return nil, fmt.Errorf("expected a list of diagnostics")
	}
}
