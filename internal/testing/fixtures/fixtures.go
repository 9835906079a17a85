// Package fixtures builds in-memory host collaborators for tests: module
// sets containing marker types and dependency attributes, a mutable loader
// that simulates reloads, and a recording symbol store.
package fixtures

import (
	"fmt"
	"sync"

	"ccu/internal/host"
	"ccu/internal/modules"
)

const (
	EnableSymbol   = "UNITY_CCU"
	MarkerTypeName = "Game.OptionalDependencyAttribute"
	Group          = host.Group("Standalone")
)

// MarkerType returns a well-formed marker type named name.
func MarkerType(name string) host.TypeInfo {
	return host.TypeInfo{
		Name: name,
		Kind: host.KindClass,
		Base: "System.Attribute",
		Annotations: []host.Annotation{
			{Type: "System.Diagnostics.ConditionalAttribute", Args: []string{EnableSymbol}},
		},
		Fields: []host.FieldInfo{
			{Name: "dependentClass", Type: "string"},
			{Name: "define", Type: "string"},
		},
	}
}

// MarkerTypeWithout returns a marker type that lacks the named field.
func MarkerTypeWithout(name, field string) host.TypeInfo {
	t := MarkerType(name)
	kept := t.Fields[:0:0]
	for _, f := range t.Fields {
		if f.Name != field {
			kept = append(kept, f)
		}
	}
	t.Fields = kept
	return t
}

// PlainType returns an ordinary class.
func PlainType(name string) host.TypeInfo {
	return host.TypeInfo{Name: name, Kind: host.KindClass, Base: "System.Object"}
}

// Dependency returns a module-level attribute instance declaring that define
// should be enabled while dependentClass is loaded.
func Dependency(markerType, dependentClass, define string) host.Attribute {
	return host.Attribute{
		Type: markerType,
		Fields: map[string]any{
			"dependentClass": dependentClass,
			"define":         define,
		},
	}
}

// Module builds a loaded module.
func Module(name string, types []host.TypeInfo, attrs ...host.Attribute) host.Module {
	return modules.NewModule(modules.Manifest{Name: name, Types: types, Attributes: attrs})
}

// BrokenModule builds a module whose types fail to load.
func BrokenModule(name string) host.Module {
	return modules.NewModule(modules.Manifest{Name: name, LoadError: "could not load file or assembly"})
}

// Loader is a host.ModuleLoader whose module set can be swapped between
// passes.
type Loader struct {
	mu   sync.Mutex
	mods []host.Module
}

// NewLoader creates a loader with the given modules.
func NewLoader(mods ...host.Module) *Loader {
	return &Loader{mods: mods}
}

// Set replaces the loaded modules.
func (l *Loader) Set(mods ...host.Module) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.mods = mods
}

func (l *Loader) Modules() ([]host.Module, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]host.Module, len(l.mods))
	copy(out, l.mods)
	return out, nil
}

// Write records one SetSymbols call.
type Write struct {
	Group   host.Group
	Symbols string
}

// Store is an in-memory host.SymbolStore and host.GroupSelector.
type Store struct {
	mu       sync.Mutex
	symbols  map[host.Group]string
	Selected host.Group
	Active   host.Group
	Writes   []Write
	SetErr   error
}

// NewStore creates a store with group selected and holding joined.
func NewStore(group host.Group, joined string) *Store {
	return &Store{
		symbols:  map[host.Group]string{group: joined},
		Selected: group,
	}
}

func (s *Store) Symbols(group host.Group) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbols[group], nil
}

func (s *Store) SetSymbols(group host.Group, joined string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.SetErr != nil {
		return s.SetErr
	}
	s.symbols[group] = joined
	s.Writes = append(s.Writes, Write{Group: group, Symbols: joined})
	return nil
}

func (s *Store) SelectedGroup() host.Group {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Selected
}

func (s *Store) ActiveGroupInternal() (host.Group, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Active, !s.Active.IsUnknown()
}

// Current returns the symbols stored for the selected group.
func (s *Store) Current() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.symbols[s.Selected]
}

// WriteCount returns how many times SetSymbols succeeded.
func (s *Store) WriteCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Writes)
}

// String describes the store for test failure messages.
func (s *Store) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fmt.Sprintf("Store{selected=%s symbols=%v writes=%d}", s.Selected, s.symbols, len(s.Writes))
}
