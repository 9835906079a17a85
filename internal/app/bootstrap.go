package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"ccu/internal/config"
	"ccu/internal/host"
	"ccu/internal/reconciler"
	"ccu/internal/recovery"
	"ccu/pkg/logging"
)

// Application represents the main application structure that bootstraps and runs ccu.
// It owns the effective configuration and every service of one session.
//
// The Application follows a two-phase initialization pattern:
//  1. Bootstrap phase: Load configuration, initialize logging, wire services
//  2. Execution phase: run a one-shot command or the watch loop
//
// Example usage:
//
//	cfg := app.NewConfig(false, ".", "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	services *Services
}

// NewApplication creates and initializes a new application instance with the provided configuration.
// This function performs the complete bootstrap sequence:
//
//  1. Configures logging based on debug settings
//  2. Loads ccu configuration (defaults, ccu.yaml, environment)
//  3. Wires the host surfaces, reconciler and recovery controller
func NewApplication(cfg *Config) (*Application, error) {
	appLogLevel := logging.LevelInfo
	if cfg.Debug {
		appLogLevel = logging.LevelDebug
	}
	if cfg.LogLevel != "" {
		level, ok := logging.ParseLevel(cfg.LogLevel)
		if !ok {
			return nil, fmt.Errorf("unknown log level %q (valid: debug, info, warn, error)", cfg.LogLevel)
		}
		appLogLevel = level
	}

	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	if cfg.Silent {
		logOutput = io.Discard
	}
	logging.InitForCLI(appLogLevel, logOutput)

	if cfg.ProjectDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to determine project directory: %w", err)
		}
		cfg.ProjectDir = wd
	}

	ccuCfg, err := config.LoadConfig(cfg.ProjectDir, cfg.ConfigPath)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to load ccu configuration")
		return nil, fmt.Errorf("failed to load ccu configuration: %w", err)
	}
	if cfg.Group != "" {
		ccuCfg.Group = cfg.Group
	}
	cfg.CCUConfig = &ccuCfg

	services, err := InitializeServices(&ccuCfg)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		services: services,
	}, nil
}

// Config returns the application configuration.
func (a *Application) Config() *Config {
	return a.config
}

// Services returns the wired services.
func (a *Application) Services() *Services {
	return a.services
}

// Update runs one reconciliation pass directly. The recovery state records
// it, so a successful pass re-arms the reset trigger.
func (a *Application) Update(ctx context.Context, mode reconciler.Mode) (reconciler.PassResult, error) {
	return a.services.Controller.Reconcile(ctx, mode)
}

// Reload delivers a module-reload-complete event.
func (a *Application) Reload(ctx context.Context) recovery.Outcome {
	return a.services.Controller.OnModuleReloadComplete(ctx)
}

// Compiled delivers a compilation-finished event. When diags is nil the
// configured diagnostics file is read instead.
func (a *Application) Compiled(ctx context.Context, diags []host.Diagnostic) recovery.Outcome {
	if diags == nil {
		read, err := a.services.Diagnostics.Read()
		if err != nil {
			return recovery.Outcome{Action: recovery.ActionSkipped, Reason: "diagnostics unreadable", Err: err}
		}
		diags = read
	}
	return a.services.Controller.OnCompilationFinished(ctx, diags)
}

// Run executes the watch loop until ctx is cancelled or a signal arrives.
func (a *Application) Run(ctx context.Context) error {
	return runWatchMode(ctx, a.config, a.services)
}
