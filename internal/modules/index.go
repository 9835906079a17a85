package modules

import (
	"ccu/internal/host"
)

// Index is a snapshot of every type visible across the loaded modules,
// keyed by qualified name. When two modules declare the same name, the one
// enumerated first wins.
type Index struct {
	types  map[string]host.TypeInfo
	owners map[string]string
	order  []string
}

// IndexedType pairs a type with the name of the module that declared it.
type IndexedType struct {
	Module string
	Type   host.TypeInfo
}

// BuildIndex enumerates the loader once and records all types.
func BuildIndex(loader host.ModuleLoader) (*Index, error) {
	idx := &Index{
		types:  make(map[string]host.TypeInfo),
		owners: make(map[string]string),
	}

	err := Enumerate(loader, func(m host.Module) error {
		types, err := m.Types()
		if err != nil {
			return err
		}
		for _, t := range types {
			if _, exists := idx.types[t.Name]; exists {
				continue
			}
			idx.types[t.Name] = t
			idx.owners[t.Name] = m.Name()
			idx.order = append(idx.order, t.Name)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return idx, nil
}

// All returns every indexed type in enumeration order.
func (i *Index) All() []IndexedType {
	out := make([]IndexedType, 0, len(i.order))
	for _, name := range i.order {
		out = append(out, IndexedType{Module: i.owners[name], Type: i.types[name]})
	}
	return out
}

// Len returns the number of indexed types.
func (i *Index) Len() int {
	return len(i.order)
}

// IsAssignableTo reports whether t is base or derives from it, following the
// base chain through indexed types. A chain that leaves the index ends the
// walk; a chain that revisits a type is treated as not assignable.
func (i *Index) IsAssignableTo(t host.TypeInfo, base string) bool {
	seen := make(map[string]bool)
	current := t
	for {
		if current.Name == base {
			return true
		}
		if current.Base == "" {
			return false
		}
		if current.Base == base {
			return true
		}
		if seen[current.Name] {
			return false
		}
		seen[current.Name] = true

		next, ok := i.types[current.Base]
		if !ok {
			return false
		}
		current = next
	}
}
