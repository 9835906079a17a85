package app

import (
	"ccu/internal/config"
	"ccu/internal/harvest"
	"ccu/internal/host"
	"ccu/internal/markers"
	"ccu/internal/modules"
	"ccu/internal/reconciler"
	"ccu/internal/recovery"
	"ccu/internal/store"
	"ccu/pkg/logging"
	"ccu/pkg/optdep"
)

// Services holds every component of one ccu session.
type Services struct {
	Loader      *modules.ManifestLoader
	Settings    *store.SettingsFile
	Diagnostics *store.DiagnosticsFile
	States      *recovery.FileStateStore
	State       *reconciler.State
	Reconciler  *reconciler.Reconciler
	Controller  *recovery.Controller

	MarkerOptions markers.Options
	Sources       []harvest.Source
}

// InitializeServices wires the host surfaces, the reconciler and the
// recovery controller from cfg.
//
// Initialization order:
//  1. Host surfaces: module manifests, project settings, diagnostics
//  2. Published state and the reconciler
//  3. Recovery controller over the persisted listener state
func InitializeServices(cfg *config.Config) (*Services, error) {
	loader := modules.NewManifestLoader(cfg.ModulesDir)
	settings := store.NewSettingsFile(cfg.SettingsFile)
	if cfg.Group != "" {
		settings.WithGroup(host.Group(cfg.Group))
	}
	if _, err := settings.Load(); err != nil {
		return nil, err
	}
	diagnostics := store.NewDiagnosticsFile(cfg.DiagnosticsFile)
	logging.Debug("Bootstrap", "Modules %s, settings %s, diagnostics %s", cfg.ModulesDir, cfg.SettingsFile, cfg.DiagnosticsFile)

	markerOpts := markers.Options{
		EnableSymbol:        cfg.EnableSymbol,
		AttributeBase:       cfg.AttributeBase,
		ConditionalMarker:   cfg.ConditionalMarker,
		DependentClassField: cfg.DependentClassField,
		DefineField:         cfg.DefineField,
	}
	sources := []harvest.Source{harvest.RegistrySource(optdep.Default())}

	state := reconciler.NewState()
	rec := reconciler.New(loader, settings, settings, state, reconciler.Options{
		Markers: markerOpts,
		Sources: sources,
	})

	states := recovery.NewFileStateStore(cfg.StateFile)
	ctrl := recovery.NewController(rec, states, recovery.Options{
		UnresolvedCodes:      cfg.UnresolvedCodes,
		PersistFailedDefines: cfg.PersistFailedDefines,
		ReloadPause:          cfg.ReloadPause,
	})

	return &Services{
		Loader:      loader,
		Settings:    settings,
		Diagnostics: diagnostics,
		States:      states,
		State:       state,
		Reconciler:  rec,
		Controller:  ctrl,

		MarkerOptions: markerOpts,
		Sources:       sources,
	}, nil
}
