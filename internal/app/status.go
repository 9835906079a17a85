package app

import (
	"errors"

	"ccu/internal/harvest"
	"ccu/internal/host"
	"ccu/internal/markers"
	"ccu/internal/modules"
	"ccu/internal/recovery"
	"ccu/internal/symbols"
)

// ModuleStatus describes one loaded module.
type ModuleStatus struct {
	Name      string `json:"name" yaml:"name"`
	Types     int    `json:"types" yaml:"types"`
	LoadError string `json:"loadError,omitempty" yaml:"loadError,omitempty"`
}

// DependencyStatus describes one harvested dependency record.
type DependencyStatus struct {
	DependentClass string `json:"dependentClass" yaml:"dependentClass"`
	Define         string `json:"define" yaml:"define"`
	Origin         string `json:"origin" yaml:"origin"`
	Resolved       bool   `json:"resolved" yaml:"resolved"`
	Defined        bool   `json:"defined" yaml:"defined"`
}

// StatusReport is a read-only view of the project: what a pass would see
// and what the symbol list currently holds.
type StatusReport struct {
	ProjectDir   string             `json:"projectDir" yaml:"projectDir"`
	Group        host.Group         `json:"group" yaml:"group"`
	EnableSymbol string             `json:"enableSymbol" yaml:"enableSymbol"`
	Enabled      bool               `json:"enabled" yaml:"enabled"`
	Symbols      []string           `json:"symbols" yaml:"symbols"`
	Modules      []ModuleStatus     `json:"modules" yaml:"modules"`
	MarkerTypes  []string           `json:"markerTypes" yaml:"markerTypes"`
	Malformed    []string           `json:"malformed,omitempty" yaml:"malformed,omitempty"`
	Dependencies []DependencyStatus `json:"dependencies" yaml:"dependencies"`
	Recovery     recovery.Snapshot  `json:"recovery" yaml:"recovery"`
}

// Status inspects the project without writing anything.
func (a *Application) Status() (StatusReport, error) {
	s := a.services
	rec := s.Reconciler

	report := StatusReport{
		ProjectDir:   a.config.ProjectDir,
		Group:        rec.Group(),
		EnableSymbol: rec.EnableSymbol(),
	}

	joined, err := s.Settings.Symbols(report.Group)
	if err != nil {
		return report, err
	}
	current := symbols.Parse(joined)
	report.Symbols = current.Items()
	report.Enabled = current.Contains(report.EnableSymbol)

	mods, err := s.Loader.Modules()
	if err != nil {
		return report, err
	}
	for _, m := range mods {
		ms := ModuleStatus{Name: m.Name()}
		types, err := m.Types()
		switch {
		case errors.Is(err, host.ErrTypesFailedToLoad):
			ms.LoadError = err.Error()
		case err != nil:
			return report, err
		default:
			ms.Types = len(types)
		}
		report.Modules = append(report.Modules, ms)
	}

	discovered, err := markers.Discover(s.Loader, s.MarkerOptions)
	if err != nil {
		return report, err
	}
	for _, d := range discovered.Descriptors {
		report.MarkerTypes = append(report.MarkerTypes, d.Name())
	}
	for _, m := range discovered.Malformed {
		report.Malformed = append(report.Malformed, m.Error())
	}

	mapping, err := harvest.Harvest(s.Loader, discovered, s.Sources...)
	if err != nil {
		return report, err
	}
	for _, r := range mapping.Records() {
		_, _, resolved := modules.ResolveType(s.Loader, r.DependentClass)
		report.Dependencies = append(report.Dependencies, DependencyStatus{
			DependentClass: r.DependentClass,
			Define:         r.Define,
			Origin:         r.Origin,
			Resolved:       resolved,
			Defined:        current.Contains(r.Define),
		})
	}

	snap, err := s.States.Load()
	if err != nil {
		return report, err
	}
	report.Recovery = snap
	return report, nil
}
