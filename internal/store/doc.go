// Package store provides file-backed implementations of the host's
// persistent surfaces: the project settings that hold each build-target
// group's symbol list, and the diagnostics report left by the last compile.
//
// Settings are YAML:
//
//	selectedBuildTargetGroup: Standalone
//	activeBuildTargetGroup: Standalone
//	scriptingDefineSymbols:
//	  Standalone: FOO;UNITY_CCU
//
// Writes go through WriteFileAtomic so a reader never sees a partial file.
package store
