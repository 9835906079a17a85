// Package harvest collects the dependentClass -> define mapping for one pass.
//
// Records come from module-level attribute instances whose type is a
// discovered marker type, followed by any extra Sources such as the optdep
// registry. The first record for a dependent class wins; later duplicates are
// dropped without comment. The mapping is rebuilt from scratch every pass.
package harvest

import (
	"fmt"
	"strings"

	"ccu/internal/host"
	"ccu/internal/markers"
	"ccu/internal/modules"
	"ccu/pkg/logging"
	"ccu/pkg/optdep"
)

// OriginRegistry marks records that came from the optdep registry.
const OriginRegistry = "registry"

// Record is one optional dependency: Define is wanted while DependentClass
// resolves to a loaded type.
type Record struct {
	DependentClass string `json:"dependentClass" yaml:"dependentClass"`
	Define         string `json:"define" yaml:"define"`
	Origin         string `json:"origin,omitempty" yaml:"origin,omitempty"`
}

// Mapping holds records keyed by dependent class, in insertion order.
type Mapping struct {
	records []Record
	index   map[string]int
}

// NewMapping creates an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{index: make(map[string]int)}
}

// Add inserts r unless a field is empty or its dependent class is already
// recorded. It reports whether r was inserted.
func (m *Mapping) Add(r Record) bool {
	if r.DependentClass == "" || r.Define == "" {
		return false
	}
	if _, exists := m.index[r.DependentClass]; exists {
		return false
	}
	m.index[r.DependentClass] = len(m.records)
	m.records = append(m.records, r)
	return true
}

// Records returns the records in insertion order.
func (m *Mapping) Records() []Record {
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out
}

// Defines returns every distinct define in the mapping, in insertion order.
// Defines are compared case-insensitively, like symbols.
func (m *Mapping) Defines() []string {
	var out []string
	for _, r := range m.records {
		dup := false
		for _, d := range out {
			if strings.EqualFold(d, r.Define) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, r.Define)
		}
	}
	return out
}

// Len returns the number of records.
func (m *Mapping) Len() int {
	return len(m.records)
}

// Source supplies records that do not come from module attributes.
type Source interface {
	Name() string
	Records() ([]Record, error)
}

type registrySource struct {
	reg *optdep.Registry
}

// RegistrySource exposes an optdep registry as a Source.
func RegistrySource(reg *optdep.Registry) Source {
	return registrySource{reg: reg}
}

func (s registrySource) Name() string {
	return OriginRegistry
}

func (s registrySource) Records() ([]Record, error) {
	entries := s.reg.Entries()
	out := make([]Record, 0, len(entries))
	for _, d := range entries {
		out = append(out, Record{DependentClass: d.DependentClass, Define: d.Define, Origin: OriginRegistry})
	}
	return out, nil
}

// Harvest builds the mapping for one pass from the attribute instances of
// every loaded module and then from sources, in order.
func Harvest(loader host.ModuleLoader, discovered markers.Result, sources ...Source) (*Mapping, error) {
	mapping := NewMapping()

	if len(discovered.Descriptors) > 0 {
		err := modules.Enumerate(loader, func(m host.Module) error {
			attrs, err := m.Attributes()
			if err != nil {
				return err
			}
			for _, a := range attrs {
				d, ok := discovered.Lookup(a.Type)
				if !ok {
					continue
				}
				class, okClass := stringField(a, d.DependentClassField)
				define, okDefine := stringField(a, d.DefineField)
				if !okClass || !okDefine {
					logging.Debug("Harvest", "Ignoring %s in %s: empty or non-string fields", a.Type, m.Name())
					continue
				}
				rec := Record{DependentClass: class, Define: define, Origin: m.Name()}
				if !mapping.Add(rec) {
					logging.Debug("Harvest", "Ignoring duplicate dependency on %s from %s", class, m.Name())
				}
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to harvest dependency attributes: %w", err)
		}
	}

	for _, src := range sources {
		recs, err := src.Records()
		if err != nil {
			return nil, fmt.Errorf("failed to read dependency source %s: %w", src.Name(), err)
		}
		for _, r := range recs {
			if r.Origin == "" {
				r.Origin = src.Name()
			}
			mapping.Add(r)
		}
	}

	logging.Debug("Harvest", "Harvested %d dependency records", mapping.Len())
	return mapping, nil
}

func stringField(a host.Attribute, name string) (string, bool) {
	v, ok := a.FieldValue(name)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}
