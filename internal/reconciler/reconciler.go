package reconciler

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ccu/internal/harvest"
	"ccu/internal/host"
	"ccu/internal/markers"
	"ccu/internal/modules"
	"ccu/internal/symbols"
	"ccu/pkg/logging"
)

// Reconciler runs reconciliation passes against the host.
//
// Each pass reads the symbol list of the group in scope, makes sure the
// enabling symbol is present, discovers marker types, harvests dependency
// records, resolves every dependent class against the loaded modules and
// writes the symbol list back only when it changed.
type Reconciler struct {
	loader host.ModuleLoader
	store  host.SymbolStore
	groups host.GroupSelector
	state  *State
	opts   Options

	now    func() time.Time
	passID func() string
}

// New creates a Reconciler. state receives the published output; a nil state
// gets a fresh one.
func New(loader host.ModuleLoader, store host.SymbolStore, groups host.GroupSelector, state *State, opts Options) *Reconciler {
	if state == nil {
		state = NewState()
	}
	if opts.Markers.EnableSymbol == "" {
		opts.Markers.EnableSymbol = markers.DefaultEnableSymbol
	}
	return &Reconciler{
		loader: loader,
		store:  store,
		groups: groups,
		state:  state,
		opts:   opts,
		now:    time.Now,
		passID: func() string { return uuid.New().String() },
	}
}

// State returns the published state.
func (r *Reconciler) State() *State {
	return r.state
}

// EnableSymbol returns the symbol that turns the system on.
func (r *Reconciler) EnableSymbol() string {
	return r.opts.Markers.EnableSymbol
}

// Group resolves the build-target group in scope. When the primary accessor
// reports an unknown group, the host-internal accessor is probed; if that is
// unknown too, the primary's answer is used as is.
func (r *Reconciler) Group() host.Group {
	g := r.groups.SelectedGroup()
	if !g.IsUnknown() {
		return g
	}
	if alt, ok := r.groups.ActiveGroupInternal(); ok && !alt.IsUnknown() {
		logging.Debug("Reconciler", "Selected group unknown, using active group %s", alt)
		return alt
	}
	return g
}

// Enabled reports whether the enabling symbol is in the current group's
// symbol list. It reads the store on every call.
func (r *Reconciler) Enabled() bool {
	joined, err := r.store.Symbols(r.Group())
	if err != nil {
		logging.Warn("Reconciler", "Could not read symbols: %v", err)
		return false
	}
	return symbols.Parse(joined).Contains(r.EnableSymbol())
}

// Update runs one pass. It returns ErrPassInProgress (wrapped) when called
// while another pass is running, and the context error when ctx is already
// done. A pass that has started always runs to completion.
func (r *Reconciler) Update(ctx context.Context, mode Mode) (PassResult, error) {
	if err := ctx.Err(); err != nil {
		return PassResult{}, err
	}

	begin := TriggerBeginPass
	if mode == ModeReset {
		begin = TriggerBeginReset
	}
	if err := r.state.fire(begin); err != nil {
		return PassResult{}, err
	}

	res, err := r.run(mode)
	switch {
	case err != nil:
		_ = r.state.fire(TriggerFailed)
		logging.Error("Reconciler", err, "Pass %s (%s) failed", res.PassID, mode)
		return res, err
	case res.Bootstrapped:
		_ = r.state.fire(TriggerBootstrapped)
	default:
		_ = r.state.fire(TriggerCompleted)
	}

	r.state.record(res)
	return res, nil
}

func (r *Reconciler) run(mode Mode) (res PassResult, err error) {
	start := r.now()
	enable := r.EnableSymbol()
	res = PassResult{
		PassID:    r.passID(),
		Mode:      mode.String(),
		Group:     r.Group(),
		StartedAt: start,
	}
	defer func() {
		res.Duration = r.now().Sub(start).String()
	}()

	original, err := r.store.Symbols(res.Group)
	if err != nil {
		return res, fmt.Errorf("failed to read symbols for group %s: %w", res.Group, err)
	}
	res.Before = original
	before := symbols.Parse(original)
	working := before.Clone()

	// The marker types only become visible after the host recompiles with the
	// enabling symbol, so a bootstrap pass stops right after writing it.
	if !working.Contains(enable) {
		working.Add(enable)
		if err := r.store.SetSymbols(res.Group, working.String()); err != nil {
			return res, fmt.Errorf("failed to write symbols for group %s: %w", res.Group, err)
		}
		res.Bootstrapped = true
		res.Wrote = true
		res.After = working.String()
		res.Added = []string{enable}
		res.Defines = []string{enable}
		r.state.publish(res.Defines)
		logging.Info("Reconciler", "Added %s to group %s; waiting for recompilation", enable, res.Group)
		return res, nil
	}

	discovered, err := markers.Discover(r.loader, r.opts.Markers)
	if err != nil {
		return res, err
	}
	for _, m := range discovered.Malformed {
		res.Malformed = append(res.Malformed, m.Error())
	}

	mapping, err := harvest.Harvest(r.loader, discovered, r.opts.Sources...)
	if err != nil {
		return res, err
	}
	res.Records = mapping.Records()

	active := symbols.Of(enable)
	for _, rec := range mapping.Records() {
		mod, _, ok := modules.ResolveType(r.loader, rec.DependentClass)
		if !ok {
			res.Unresolved = append(res.Unresolved, rec.DependentClass)
			continue
		}
		logging.Debug("Reconciler", "Resolved %s in %s, enabling %s", rec.DependentClass, mod.Name(), rec.Define)
		res.Resolved = append(res.Resolved, rec.DependentClass)
		working.Add(rec.Define)
		active.Add(rec.Define)
	}

	// The enabling symbol is never managed, even when a record names it.
	var managed []string
	for _, define := range mapping.Defines() {
		if !strings.EqualFold(define, enable) {
			managed = append(managed, define)
		}
	}
	for _, define := range managed {
		if !active.Contains(define) {
			working.Remove(define)
		}
	}

	if mode == ModeReset {
		for _, define := range managed {
			working.Remove(define)
		}
		active = symbols.Of(enable)
	}

	res.Defines = active.Items()
	r.state.publish(res.Defines)

	res.After = working.String()
	res.Added, res.Removed = diff(before, working)

	if res.After == original {
		logging.Debug("Reconciler", "Pass %s: symbols for %s unchanged", res.PassID, res.Group)
		return res, nil
	}

	if err := r.store.SetSymbols(res.Group, res.After); err != nil {
		return res, fmt.Errorf("failed to write symbols for group %s: %w", res.Group, err)
	}
	res.Wrote = true
	logging.Info("Reconciler", "Pass %s (%s): group %s symbols %q -> %q", res.PassID, mode, res.Group, original, res.After)
	return res, nil
}

// diff returns the symbols only in after and the symbols only in before.
func diff(before, after *symbols.List) (added, removed []string) {
	for _, s := range after.Items() {
		if !before.Contains(s) {
			added = append(added, s)
		}
	}
	for _, s := range before.Items() {
		if !after.Contains(s) {
			removed = append(removed, s)
		}
	}
	return added, removed
}
