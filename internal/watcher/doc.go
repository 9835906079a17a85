// Package watcher feeds host lifecycle events to the recovery controller
// for the long-running watch mode.
//
// The Detector watches the module manifest directory and the diagnostics
// file with fsnotify, debouncing bursts into single events. Forward moves
// those events into a Queue that keeps one pending event per kind, and
// Serve handles them strictly one at a time.
package watcher
