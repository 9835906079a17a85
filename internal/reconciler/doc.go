// Package reconciler keeps a build-target group's compile-time symbol list in
// sync with the optional dependencies that are actually loaded.
//
// # Overview
//
// A pass runs four stages: it enumerates the loaded modules, discovers the
// marker types, harvests the dependency records and reconciles the symbol
// list against them. The result is published in a State that any goroutine
// can read.
//
// # Bootstrap
//
// Marker types are compiled out until the enabling symbol is defined. A pass
// that finds the enabling symbol missing only adds it, writes the list back
// and moves the state to PhaseAwaitingBootstrapRecompile. The next pass,
// run after the host recompiles, does the real work.
//
// # Modes
//
//   - ModeNormal: adds a define for every resolved dependent class and
//     removes managed defines whose class is gone
//   - ModeReset: removes every managed define, leaving only the enabling
//     symbol published
//
// # Usage
//
//	r := reconciler.New(loader, store, store, nil, reconciler.Options{})
//	res, err := r.Update(ctx, reconciler.ModeNormal)
//	if err != nil {
//	    return fmt.Errorf("reconciliation failed: %w", err)
//	}
//
// Only one pass runs at a time. A second Update while one is running fails
// with ErrPassInProgress.
package reconciler
