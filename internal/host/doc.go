// Package host defines the boundary between ccu and the build host.
//
// The host owns the module loader, the compiler, and the persistent build
// configuration. ccu only consumes them through the interfaces declared here:
//
//   - ModuleLoader / Module: the loaded modules, their type metadata and
//     module-level attribute instances
//   - SymbolStore: the ';'-joined define symbol list per build-target group
//   - GroupSelector: which group is in scope, with an internal fallback
//   - Event / Diagnostic: compilation-finished and reload-complete signals
//
// File-backed implementations live in internal/modules and internal/store.
package host
