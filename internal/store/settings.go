package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"

	"ccu/internal/host"
	"ccu/pkg/logging"
)

// Settings is the persisted project configuration the host keeps per
// build-target group.
type Settings struct {
	SelectedGroup host.Group        `yaml:"selectedBuildTargetGroup,omitempty" json:"selectedBuildTargetGroup,omitempty"`
	ActiveGroup   host.Group        `yaml:"activeBuildTargetGroup,omitempty" json:"activeBuildTargetGroup,omitempty"`
	Symbols       map[string]string `yaml:"scriptingDefineSymbols,omitempty" json:"scriptingDefineSymbols,omitempty"`
}

// SettingsFile is a host.SymbolStore and host.GroupSelector backed by a YAML
// settings file. A missing file reads as empty settings. Every call goes to
// disk so edits made by the host between calls are picked up.
type SettingsFile struct {
	mu       sync.Mutex
	path     string
	override host.Group
}

// NewSettingsFile creates a store over the file at path.
func NewSettingsFile(path string) *SettingsFile {
	return &SettingsFile{path: path}
}

// WithGroup pins the selected group, ignoring what the file says. An unknown
// group leaves the file in charge.
func (f *SettingsFile) WithGroup(g host.Group) *SettingsFile {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.override = g
	return f
}

// Path returns the settings file path.
func (f *SettingsFile) Path() string {
	return f.path
}

// Load reads the settings file.
func (f *SettingsFile) Load() (Settings, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.loadLocked()
}

func (f *SettingsFile) loadLocked() (Settings, error) {
	var s Settings
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings file %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse settings file %s: %w", f.path, err)
	}
	return s, nil
}

// Save writes the settings file atomically.
func (f *SettingsFile) Save(s Settings) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saveLocked(s)
}

func (f *SettingsFile) saveLocked(s Settings) error {
	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := WriteFileAtomic(f.path, data); err != nil {
		return fmt.Errorf("failed to write settings file %s: %w", f.path, err)
	}
	return nil
}

// Symbols returns the joined symbol list stored for group.
func (f *SettingsFile) Symbols(group host.Group) (string, error) {
	s, err := f.Load()
	if err != nil {
		return "", err
	}
	return s.Symbols[string(group)], nil
}

// SetSymbols stores joined as the symbol list for group. The rest of the
// file is preserved.
func (f *SettingsFile) SetSymbols(group host.Group, joined string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	s, err := f.loadLocked()
	if err != nil {
		return err
	}
	if s.Symbols == nil {
		s.Symbols = make(map[string]string)
	}
	s.Symbols[string(group)] = joined
	if err := f.saveLocked(s); err != nil {
		return err
	}
	logging.Debug("Store", "Wrote symbols for %s to %s", group, filepath.Base(f.path))
	return nil
}

// SelectedGroup returns the pinned group if any, otherwise the file's
// selected group. Read errors report GroupUnknown.
func (f *SettingsFile) SelectedGroup() host.Group {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.override.IsUnknown() {
		return f.override
	}
	s, err := f.loadLocked()
	if err != nil {
		logging.Warn("Store", "Could not read selected group: %v", err)
		return host.GroupUnknown
	}
	if s.SelectedGroup == "" {
		return host.GroupUnknown
	}
	return s.SelectedGroup
}

// ActiveGroupInternal returns the file's active group.
func (f *SettingsFile) ActiveGroupInternal() (host.Group, bool) {
	s, err := f.Load()
	if err != nil {
		logging.Warn("Store", "Could not read active group: %v", err)
		return host.GroupUnknown, false
	}
	if s.ActiveGroup.IsUnknown() {
		return host.GroupUnknown, false
	}
	return s.ActiveGroup, true
}

// WriteFileAtomic writes data to a temporary file next to path and renames it
// into place, creating the parent directory if needed.
func WriteFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}
