// Package logging provides the subsystem-tagged logger used across ccu.
//
// It is a thin layer over Go's standard slog package. Every entry carries a
// subsystem attribute so that output from the enumerator, discovery,
// harvesting and reconciliation stages can be filtered independently.
//
// # Usage
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("Reconciler", "Pass %s wrote %d symbols", passID, n)
//	logging.Warn("Markers", "Type %s is missing field %s", typeName, field)
//	logging.Error("Store", err, "Failed to write settings")
//
// # Levels
//
//   - Debug: per-module and per-record detail (skipped modules, resolved types)
//   - Info: pass outcomes and symbol list writes
//   - Warn: malformed marker types, recoverable host problems
//   - Error: failures that abort a pass
//
// Before InitForCLI is called, only Warn and Error entries are printed, and
// they go to stderr.
package logging
