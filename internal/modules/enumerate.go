package modules

import (
	"errors"
	"fmt"

	"ccu/internal/host"
	"ccu/pkg/logging"
)

// Enumerate applies fn to every module the loader currently reports.
//
// A module whose inspection fails with host.ErrTypesFailedToLoad is skipped
// and enumeration continues with the next one. Any other error from fn stops
// enumeration and is returned.
func Enumerate(loader host.ModuleLoader, fn func(host.Module) error) error {
	mods, err := loader.Modules()
	if err != nil {
		return fmt.Errorf("failed to list loaded modules: %w", err)
	}

	for _, m := range mods {
		if err := fn(m); err != nil {
			if errors.Is(err, host.ErrTypesFailedToLoad) {
				logging.Debug("Modules", "Skipping module %s: %v", m.Name(), err)
				continue
			}
			return err
		}
	}
	return nil
}

// ResolveType looks name up in every loaded module and returns the first
// module that declares it. Modules that cannot be listed resolve nothing.
func ResolveType(loader host.ModuleLoader, name string) (host.Module, host.TypeInfo, bool) {
	var (
		found    host.Module
		foundTyp host.TypeInfo
	)
	errStop := errors.New("resolved")

	err := Enumerate(loader, func(m host.Module) error {
		if t, ok := m.ResolveType(name); ok {
			found, foundTyp = m, t
			return errStop
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		logging.Warn("Modules", "Resolving %s failed: %v", name, err)
		return nil, host.TypeInfo{}, false
	}
	return found, foundTyp, found != nil
}
