package app

import (
	"context"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"ccu/internal/host"
	"ccu/internal/watcher"
	"ccu/pkg/logging"
)

// runWatchMode keeps ccu attached to the project until interrupted.
//
// Behavior:
//   - Watches the modules directory and the diagnostics file
//   - Queues a module-reload-complete event at startup so the first pass runs
//   - Serves queued events to the recovery controller one at a time
//   - Stops on SIGINT, SIGTERM or ctx cancellation
func runWatchMode(ctx context.Context, config *Config, services *Services) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.CCUConfig
	detector := watcher.NewDetector(services.Loader.Dir(), services.Diagnostics, cfg.DebounceInterval)
	events := make(chan host.Event, 16)
	if err := detector.Start(ctx, events); err != nil {
		logging.Error("Watch", err, "Failed to start filesystem watcher")
		return err
	}
	defer func() { _ = detector.Stop() }()

	queue := watcher.NewQueue()
	queue.Add(host.Event{Kind: host.EventModuleReloadComplete})

	logging.Info("Watch", "Watching %s. Press Ctrl+C to stop.", config.ProjectDir)

	eg, ectx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return watcher.Forward(ectx, events, queue)
	})
	eg.Go(func() error {
		return watcher.Serve(ectx, queue, services.Controller)
	})

	err := eg.Wait()
	logging.Info("Watch", "--- Shutting down ---")
	return err
}
