package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"ccu/internal/host"
	"ccu/internal/modules"
	"ccu/pkg/logging"
)

// DefaultDebounceInterval is used when a Detector is created with zero.
const DefaultDebounceInterval = 500 * time.Millisecond

// DiagnosticsReader supplies the diagnostics of the compile that just
// finished. *store.DiagnosticsFile implements it.
type DiagnosticsReader interface {
	Path() string
	Event() (host.Event, error)
}

// Detector turns filesystem activity into host lifecycle events.
//
// A change to any module manifest becomes one EventModuleReloadComplete once
// the modules directory has been quiet for the debounce interval. A change to
// the diagnostics file becomes one EventCompilationFinished carrying the
// diagnostics read at emit time.
type Detector struct {
	mu sync.Mutex

	// modulesDir holds the module manifests
	modulesDir string

	// diagnostics reads the compiler's report; nil disables compile events
	diagnostics DiagnosticsReader

	// watcher is the fsnotify watcher instance
	watcher *fsnotify.Watcher

	// debounceInterval is how long to wait for additional changes
	debounceInterval time.Duration

	// pending tracks debounced events by kind
	pending map[host.EventKind]*time.Timer

	// stopCh signals shutdown
	stopCh chan struct{}

	// running indicates if the detector is active
	running bool
}

// NewDetector creates a detector for the given modules directory and
// diagnostics file.
func NewDetector(modulesDir string, diagnostics DiagnosticsReader, debounceInterval time.Duration) *Detector {
	if debounceInterval <= 0 {
		debounceInterval = DefaultDebounceInterval
	}
	return &Detector{
		modulesDir:       modulesDir,
		diagnostics:      diagnostics,
		debounceInterval: debounceInterval,
		pending:          make(map[host.EventKind]*time.Timer),
		stopCh:           make(chan struct{}),
	}
}

// Start begins watching. Events are sent to events without blocking; an
// event that does not fit is dropped with a warning.
func (d *Detector) Start(ctx context.Context, events chan<- host.Event) error {
	d.mu.Lock()
	if d.running {
		d.mu.Unlock()
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		d.mu.Unlock()
		return err
	}

	d.watcher = watcher
	d.running = true
	d.stopCh = make(chan struct{})
	stopCh := d.stopCh
	d.mu.Unlock()

	if err := d.setupWatches(); err != nil {
		_ = d.Stop()
		return err
	}

	go d.processEvents(ctx, watcher, stopCh, events)

	logging.Info("Watcher", "Started watching %s for module changes", d.modulesDir)
	return nil
}

// setupWatches watches the modules directory and the directory holding the
// diagnostics file. Directories are watched rather than files so that
// replace-by-rename writes are seen.
func (d *Detector) setupWatches() error {
	dirs := []string{d.modulesDir}
	if d.diagnostics != nil {
		dirs = append(dirs, filepath.Dir(d.diagnostics.Path()))
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
		if err := d.watcher.Add(dir); err != nil {
			return err
		}
		logging.Debug("Watcher", "Watching directory: %s", dir)
	}
	return nil
}

func (d *Detector) processEvents(ctx context.Context, watcher *fsnotify.Watcher, stopCh <-chan struct{}, events chan<- host.Event) {
	for {
		select {
		case <-ctx.Done():
			d.cleanupPending()
			return

		case <-stopCh:
			d.cleanupPending()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			d.handleFsEvent(event, events)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logging.Error("Watcher", err, "Filesystem watcher error")
		}
	}
}

// handleFsEvent classifies one filesystem event.
func (d *Detector) handleFsEvent(event fsnotify.Event, events chan<- host.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return
	}

	kind, ok := d.classify(event.Name)
	if !ok {
		return
	}
	if kind == host.EventCompilationFinished && (event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename)) {
		// The file is about to be replaced; the create that follows counts.
		return
	}

	d.debounce(kind, event.Name, events)
}

// classify maps a changed path to the event it signals.
func (d *Detector) classify(path string) (host.EventKind, bool) {
	clean := filepath.Clean(path)
	if d.diagnostics != nil && clean == filepath.Clean(d.diagnostics.Path()) {
		return host.EventCompilationFinished, true
	}
	if filepath.Dir(clean) == filepath.Clean(d.modulesDir) && modules.IsManifestFile(clean) {
		return host.EventModuleReloadComplete, true
	}
	return "", false
}

// debounce restarts the quiet-period timer for kind.
func (d *Detector) debounce(kind host.EventKind, path string, events chan<- host.Event) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if timer, ok := d.pending[kind]; ok {
		timer.Stop()
	}

	var timer *time.Timer
	timer = time.AfterFunc(d.debounceInterval, func() {
		d.mu.Lock()
		current, ok := d.pending[kind]
		if ok && current == timer {
			delete(d.pending, kind)
		}
		d.mu.Unlock()
		if !ok || current != timer {
			return
		}

		ev, emit := d.buildEvent(kind, path)
		if !emit {
			return
		}
		select {
		case events <- ev:
			logging.Debug("Watcher", "Emitted %s (%s)", ev.Kind, filepath.Base(path))
		default:
			logging.Warn("Watcher", "Event channel full, dropping %s", ev.Kind)
		}
	})
	d.pending[kind] = timer
}

func (d *Detector) buildEvent(kind host.EventKind, path string) (host.Event, bool) {
	if kind != host.EventCompilationFinished {
		return host.Event{Kind: kind, Timestamp: time.Now(), Source: path}, true
	}

	ev, err := d.diagnostics.Event()
	if err != nil {
		logging.Warn("Watcher", "Could not read diagnostics, ignoring compile event: %v", err)
		return ev, false
	}
	return ev, true
}

// cleanupPending cancels all pending debounce timers.
func (d *Detector) cleanupPending() {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, timer := range d.pending {
		timer.Stop()
	}
	d.pending = make(map[host.EventKind]*time.Timer)
}

// Stop gracefully stops the detector.
func (d *Detector) Stop() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.running {
		return nil
	}

	d.running = false
	close(d.stopCh)

	if d.watcher != nil {
		if err := d.watcher.Close(); err != nil {
			logging.Error("Watcher", err, "Error closing filesystem watcher")
		}
		d.watcher = nil
	}

	logging.Info("Watcher", "Stopped watching %s", d.modulesDir)
	return nil
}
