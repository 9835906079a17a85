// Package recovery reacts to host lifecycle events.
//
// After every module reload the Controller runs a normal reconciliation
// pass. When a compile fails with unresolved-type errors, the defines that
// enabled the broken code are most likely stale, so the Controller runs a
// single reset pass that strips every dependency-managed define. It does
// not reset again until a normal pass has succeeded.
//
// With PersistFailedDefines set, the define set that was active when the
// errors arrived is remembered. If a later failure happens with exactly the
// same defines active, the reset is skipped so the project does not flip
// between adding and removing the same defines forever.
//
// Listener state lives in a StateStore. FileStateStore keeps it on disk so
// one-shot CLI invocations behave like a long-running listener.
package recovery
