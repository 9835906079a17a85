package reconciler

import (
	"time"

	"ccu/internal/harvest"
	"ccu/internal/host"
	"ccu/internal/markers"
)

// Mode selects how a pass treats dependency-managed defines.
type Mode int

const (
	// ModeNormal adds satisfied defines and removes unsatisfied ones.
	ModeNormal Mode = iota

	// ModeReset removes every dependency-managed define.
	ModeReset
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeReset:
		return "reset"
	default:
		return "unknown"
	}
}

// Options configures a Reconciler.
type Options struct {
	// Markers selects marker types; Markers.EnableSymbol is the symbol that
	// turns the system on and always heads the published defines.
	Markers markers.Options

	// Sources are harvested after module attributes.
	Sources []harvest.Source
}

// PassResult describes one completed pass.
type PassResult struct {
	PassID    string     `json:"passId" yaml:"passId"`
	Mode      string     `json:"mode" yaml:"mode"`
	Group     host.Group `json:"group" yaml:"group"`
	StartedAt time.Time  `json:"startedAt" yaml:"startedAt"`
	Duration  string     `json:"duration" yaml:"duration"`

	// Bootstrapped is set when the pass only added the enabling symbol.
	Bootstrapped bool `json:"bootstrapped" yaml:"bootstrapped"`

	// Wrote is set when the symbol list was written back.
	Wrote  bool   `json:"wrote" yaml:"wrote"`
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`

	Added   []string `json:"added,omitempty" yaml:"added,omitempty"`
	Removed []string `json:"removed,omitempty" yaml:"removed,omitempty"`

	// Defines is the active-defines set the pass published.
	Defines []string `json:"defines" yaml:"defines"`

	Records    []harvest.Record `json:"records,omitempty" yaml:"records,omitempty"`
	Resolved   []string         `json:"resolved,omitempty" yaml:"resolved,omitempty"`
	Unresolved []string         `json:"unresolved,omitempty" yaml:"unresolved,omitempty"`
	Malformed  []string         `json:"malformed,omitempty" yaml:"malformed,omitempty"`
}
