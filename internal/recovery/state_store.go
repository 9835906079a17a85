package recovery

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"ccu/internal/store"
)

// Snapshot is the listener state that survives between events.
type Snapshot struct {
	// ResetTriggered is set once a reset pass fires and cleared by the next
	// successful normal pass.
	ResetTriggered bool `yaml:"resetTriggered" json:"resetTriggered"`

	// ResetThisCycle is set when a reset pass wrote symbols, so the reload it
	// causes does not immediately run a normal pass.
	ResetThisCycle bool `yaml:"resetThisCycle" json:"resetThisCycle"`

	// FailedDefines is the define set that was active when unresolved-type
	// errors last arrived.
	FailedDefines []string `yaml:"failedDefines,omitempty" json:"failedDefines,omitempty"`

	// ActiveDefines is the define set published by the most recent pass.
	ActiveDefines []string `yaml:"activeDefines,omitempty" json:"activeDefines,omitempty"`
}

// StateStore persists a Snapshot.
type StateStore interface {
	Load() (Snapshot, error)
	Save(Snapshot) error
}

// MemoryStateStore keeps the snapshot in memory for long-running processes.
type MemoryStateStore struct {
	mu   sync.Mutex
	snap Snapshot
}

// NewMemoryStateStore creates an empty in-memory store.
func NewMemoryStateStore() *MemoryStateStore {
	return &MemoryStateStore{}
}

func (m *MemoryStateStore) Load() (Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return cloneSnapshot(m.snap), nil
}

func (m *MemoryStateStore) Save(s Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snap = cloneSnapshot(s)
	return nil
}

// FileStateStore keeps the snapshot in a YAML file so separate CLI
// invocations share it. A missing file is an empty snapshot.
type FileStateStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStateStore creates a store over the file at path.
func NewFileStateStore(path string) *FileStateStore {
	return &FileStateStore{path: path}
}

// Path returns the state file path.
func (f *FileStateStore) Path() string {
	return f.path
}

func (f *FileStateStore) Load() (Snapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	var s Snapshot
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return s, fmt.Errorf("failed to read recovery state %s: %w", f.path, err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("failed to parse recovery state %s: %w", f.path, err)
	}
	return s, nil
}

func (f *FileStateStore) Save(s Snapshot) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := yaml.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode recovery state: %w", err)
	}
	if err := store.WriteFileAtomic(f.path, data); err != nil {
		return fmt.Errorf("failed to write recovery state %s: %w", f.path, err)
	}
	return nil
}

func cloneSnapshot(s Snapshot) Snapshot {
	s.FailedDefines = append([]string(nil), s.FailedDefines...)
	s.ActiveDefines = append([]string(nil), s.ActiveDefines...)
	return s
}
