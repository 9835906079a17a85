package modules

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"ccu/internal/host"
	"ccu/pkg/logging"
)

// Manifest is the on-disk description of one loaded module.
type Manifest struct {
	Name       string           `yaml:"name"`
	LoadError  string           `yaml:"loadError,omitempty"`
	Types      []host.TypeInfo  `yaml:"types,omitempty"`
	Attributes []host.Attribute `yaml:"attributes,omitempty"`
}

// ManifestModule implements host.Module over a Manifest.
type ManifestModule struct {
	manifest Manifest
	loadErr  error
	byName   map[string]int
}

// NewModule wraps a manifest. A non-empty LoadError makes the module report
// host.ErrTypesFailedToLoad.
func NewModule(m Manifest) *ManifestModule {
	mod := &ManifestModule{
		manifest: m,
		byName:   make(map[string]int, len(m.Types)),
	}
	if m.LoadError != "" {
		mod.loadErr = fmt.Errorf("module %s: %w: %s", m.Name, host.ErrTypesFailedToLoad, m.LoadError)
	}
	for i, t := range m.Types {
		if _, exists := mod.byName[t.Name]; !exists {
			mod.byName[t.Name] = i
		}
	}
	return mod
}

func failedModule(name string, cause error) *ManifestModule {
	return &ManifestModule{
		manifest: Manifest{Name: name},
		loadErr:  fmt.Errorf("module %s: %w: %v", name, host.ErrTypesFailedToLoad, cause),
		byName:   map[string]int{},
	}
}

func (m *ManifestModule) Name() string {
	return m.manifest.Name
}

func (m *ManifestModule) Types() ([]host.TypeInfo, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]host.TypeInfo, len(m.manifest.Types))
	copy(out, m.manifest.Types)
	return out, nil
}

func (m *ManifestModule) Attributes() ([]host.Attribute, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	out := make([]host.Attribute, len(m.manifest.Attributes))
	copy(out, m.manifest.Attributes)
	return out, nil
}

func (m *ManifestModule) ResolveType(name string) (host.TypeInfo, bool) {
	if m.loadErr != nil {
		return host.TypeInfo{}, false
	}
	i, ok := m.byName[name]
	if !ok {
		return host.TypeInfo{}, false
	}
	return m.manifest.Types[i], true
}

// StaticLoader is a fixed, ordered set of modules.
type StaticLoader []host.Module

// Modules returns the modules in declaration order.
func (s StaticLoader) Modules() ([]host.Module, error) {
	out := make([]host.Module, len(s))
	copy(out, s)
	return out, nil
}

// ManifestLoader loads one module per YAML file from a directory. Files are
// read in lexical order on every call so that a reload sees the current set.
type ManifestLoader struct {
	dir string
}

// NewManifestLoader creates a loader rooted at dir.
func NewManifestLoader(dir string) *ManifestLoader {
	return &ManifestLoader{dir: dir}
}

// Dir returns the manifest directory.
func (l *ManifestLoader) Dir() string {
	return l.dir
}

// Modules reads every manifest in the directory. A missing directory means no
// modules are loaded. A manifest that cannot be read or parsed becomes a
// module that fails to load rather than an error for the whole set.
func (l *ManifestLoader) Modules() ([]host.Module, error) {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("Modules", "Manifest directory %s does not exist, no modules loaded", l.dir)
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read manifest directory %s: %w", l.dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !IsManifestFile(e.Name()) {
			continue
		}
		files = append(files, e.Name())
	}
	sort.Strings(files)

	mods := make([]host.Module, 0, len(files))
	for _, name := range files {
		path := filepath.Join(l.dir, name)
		fallback := strings.TrimSuffix(strings.TrimSuffix(name, ".yaml"), ".yml")

		data, err := os.ReadFile(path)
		if err != nil {
			mods = append(mods, failedModule(fallback, err))
			continue
		}

		var m Manifest
		if err := yaml.Unmarshal(data, &m); err != nil {
			logging.Warn("Modules", "Manifest %s is malformed: %v", path, err)
			mods = append(mods, failedModule(fallback, err))
			continue
		}
		if m.Name == "" {
			m.Name = fallback
		}
		mods = append(mods, NewModule(m))
	}

	return mods, nil
}

// IsManifestFile reports whether a file name looks like a module manifest.
func IsManifestFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".yaml" || ext == ".yml"
}
