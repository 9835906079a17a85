// Package app provides application bootstrap and lifecycle management for ccu.
//
// It loads the effective configuration, initializes logging, wires the host
// surfaces to the reconciler and the recovery controller, and exposes the
// operations the command line drives.
//
// # Components
//
//   - Bootstrap (bootstrap.go): NewApplication and the one-shot operations
//   - Configuration (config.go): runtime settings taken from flags
//   - Services (services.go): construction of every session component
//   - Status (status.go): read-only inspection of the project
//   - Modes (modes.go): the long-running watch loop
//
// # Initialization Sequence
//
//  1. Logging is configured from the debug and silent flags
//  2. ccu.yaml, .env and CCU_* variables are layered over the defaults
//  3. The settings file is loaded once to fail fast on a corrupt project
//  4. The reconciler and the recovery controller are constructed
//
// # Usage
//
//	cfg := app.NewConfig(false, projectDir, "")
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("bootstrap failed: %w", err)
//	}
//	out := application.Reload(ctx)
//
// Watch mode runs until SIGINT or SIGTERM:
//
//	return application.Run(ctx)
package app
