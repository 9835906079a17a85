package recovery

import (
	"context"
	"errors"
	"strings"
	"time"

	"ccu/internal/host"
	"ccu/internal/reconciler"
	"ccu/internal/symbols"
	"ccu/pkg/logging"
)

// DefaultUnresolvedCodes are the compiler codes for a type or namespace that
// cannot be found.
var DefaultUnresolvedCodes = []string{"CS0246", "CS0234"}

// Updater runs reconciliation passes. *reconciler.Reconciler implements it.
type Updater interface {
	Update(ctx context.Context, mode reconciler.Mode) (reconciler.PassResult, error)
	State() *reconciler.State
}

// Options configures a Controller.
type Options struct {
	// UnresolvedCodes are the diagnostic codes that trigger a reset.
	UnresolvedCodes []string

	// PersistFailedDefines skips a reset when the active defines equal the
	// set that was active the last time unresolved-type errors arrived.
	PersistFailedDefines bool

	// ReloadPause blocks after a pass that wrote symbols.
	ReloadPause time.Duration
}

// Action is what a listener did with an event.
type Action string

const (
	ActionNone    Action = "none"
	ActionPass    Action = "pass"
	ActionReset   Action = "reset"
	ActionSkipped Action = "skipped"
)

// Outcome describes how one event was handled.
type Outcome struct {
	Action Action                 `json:"action" yaml:"action"`
	Reason string                 `json:"reason,omitempty" yaml:"reason,omitempty"`
	Result *reconciler.PassResult `json:"result,omitempty" yaml:"result,omitempty"`
	Err    error                  `json:"-" yaml:"-"`
}

// Controller turns host lifecycle events into reconciliation passes. It
// runs a normal pass after every module reload and a reset pass the first
// time unresolved-type errors appear after a successful pass.
//
// Listener methods never return errors; failures are logged and reported in
// the Outcome.
type Controller struct {
	updater Updater
	store   StateStore
	opts    Options

	codes map[string]struct{}
	sleep func(ctx context.Context, d time.Duration) error
}

// NewController creates a Controller. A nil store keeps state in memory.
func NewController(updater Updater, store StateStore, opts Options) *Controller {
	if store == nil {
		store = NewMemoryStateStore()
	}
	if len(opts.UnresolvedCodes) == 0 {
		opts.UnresolvedCodes = DefaultUnresolvedCodes
	}
	codes := make(map[string]struct{}, len(opts.UnresolvedCodes))
	for _, c := range opts.UnresolvedCodes {
		codes[strings.ToUpper(strings.TrimSpace(c))] = struct{}{}
	}
	return &Controller{
		updater: updater,
		store:   store,
		opts:    opts,
		codes:   codes,
		sleep:   sleepContext,
	}
}

// Handle dispatches a host event to its listener.
func (c *Controller) Handle(ctx context.Context, ev host.Event) Outcome {
	switch ev.Kind {
	case host.EventModuleReloadComplete:
		return c.OnModuleReloadComplete(ctx)
	case host.EventCompilationFinished:
		return c.OnCompilationFinished(ctx, ev.Diagnostics)
	default:
		logging.Debug("Recovery", "Ignoring event %q", ev.Kind)
		return Outcome{Action: ActionNone, Reason: "unknown event"}
	}
}

// OnModuleReloadComplete runs a normal pass, unless the reload was caused by
// a reset pass in this cycle.
func (c *Controller) OnModuleReloadComplete(ctx context.Context) Outcome {
	snap := c.load()

	if snap.ResetThisCycle {
		snap.ResetThisCycle = false
		c.save(snap)
		logging.Info("Recovery", "Skipping pass: reset already ran for this reload")
		return Outcome{Action: ActionSkipped, Reason: "reset already ran for this reload"}
	}

	res, err := c.updater.Update(ctx, reconciler.ModeNormal)
	if err != nil {
		logging.Error("Recovery", err, "Reconciliation after reload failed")
		return Outcome{Action: ActionPass, Err: err}
	}

	snap.ActiveDefines = res.Defines
	if !res.Bootstrapped {
		snap.ResetTriggered = false
	}
	c.save(snap)
	c.pause(ctx, res)
	return Outcome{Action: ActionPass, Result: &res}
}

// OnCompilationFinished runs a reset pass when diags contain unresolved-type
// errors and no reset has fired since the last successful pass.
func (c *Controller) OnCompilationFinished(ctx context.Context, diags []host.Diagnostic) Outcome {
	snap := c.load()

	codes := c.unresolved(diags)
	if len(codes) == 0 {
		// A clean compile right after a reset says nothing about the failing
		// set; only a clean compile with every failing define active does.
		if len(snap.FailedDefines) > 0 && containsAll(c.currentDefines(snap), snap.FailedDefines) {
			snap.FailedDefines = nil
			c.save(snap)
			logging.Debug("Recovery", "Compile clean with the failing defines active, cleared failed define set")
		}
		return Outcome{Action: ActionNone, Reason: "no unresolved-type errors"}
	}

	if snap.ResetTriggered {
		logging.Debug("Recovery", "Unresolved-type errors %v, reset already triggered", codes)
		return Outcome{Action: ActionSkipped, Reason: "reset already triggered since last successful pass"}
	}

	current := c.currentDefines(snap)
	if c.opts.PersistFailedDefines && len(snap.FailedDefines) > 0 && sameDefines(current, snap.FailedDefines) {
		logging.Warn("Recovery", "Defines %v failed to compile before; not resetting again", current)
		return Outcome{Action: ActionSkipped, Reason: "active defines match the failing set"}
	}

	if err := c.updater.State().RequestReset(); err != nil {
		logging.Warn("Recovery", "Could not request reset: %v", err)
		return Outcome{Action: ActionSkipped, Reason: "reset not possible now", Err: err}
	}

	logging.Info("Recovery", "Compile failed with %v, resetting dependency defines", codes)
	snap.ResetTriggered = true
	if c.opts.PersistFailedDefines {
		snap.FailedDefines = current
	}
	c.save(snap)

	res, err := c.updater.Update(ctx, reconciler.ModeReset)
	if err != nil {
		logging.Error("Recovery", err, "Reset pass failed")
		return Outcome{Action: ActionReset, Err: err}
	}

	snap.ActiveDefines = res.Defines
	snap.ResetThisCycle = res.Wrote
	c.save(snap)
	c.pause(ctx, res)
	return Outcome{Action: ActionReset, Result: &res}
}

// Reconcile runs a pass requested directly rather than by a host event and
// records it like a reload pass would: the published defines are persisted
// and a normal pass that did not bootstrap re-arms the reset trigger. An
// explicit reset also forgets the failing define set.
func (c *Controller) Reconcile(ctx context.Context, mode reconciler.Mode) (reconciler.PassResult, error) {
	res, err := c.updater.Update(ctx, mode)
	if err != nil {
		return res, err
	}

	snap := c.load()
	snap.ActiveDefines = res.Defines
	switch {
	case mode == reconciler.ModeReset:
		snap.FailedDefines = nil
	case !res.Bootstrapped:
		snap.ResetTriggered = false
	}
	c.save(snap)
	return res, nil
}

// Snapshot returns the persisted listener state.
func (c *Controller) Snapshot() (Snapshot, error) {
	return c.store.Load()
}

func (c *Controller) unresolved(diags []host.Diagnostic) []string {
	var out []string
	for _, d := range diags {
		if !d.IsError() {
			continue
		}
		code := strings.ToUpper(strings.TrimSpace(d.Code))
		if _, ok := c.codes[code]; ok {
			out = append(out, code)
		}
	}
	return out
}

// currentDefines prefers what this process published and falls back to the
// persisted set for one-shot invocations.
func (c *Controller) currentDefines(snap Snapshot) []string {
	if _, ok := c.updater.State().LastPass(); ok {
		return c.updater.State().Defines()
	}
	return append([]string(nil), snap.ActiveDefines...)
}

func (c *Controller) pause(ctx context.Context, res reconciler.PassResult) {
	if !res.Wrote || c.opts.ReloadPause <= 0 {
		return
	}
	if err := c.sleep(ctx, c.opts.ReloadPause); err != nil {
		logging.Debug("Recovery", "Reload pause interrupted: %v", err)
	}
}

func (c *Controller) load() Snapshot {
	snap, err := c.store.Load()
	if err != nil {
		logging.Warn("Recovery", "Could not load recovery state, starting fresh: %v", err)
		return Snapshot{}
	}
	return snap
}

func (c *Controller) save(snap Snapshot) {
	if err := c.store.Save(snap); err != nil {
		logging.Warn("Recovery", "Could not save recovery state: %v", err)
	}
}

// sameDefines compares two define sets ignoring order and case.
func sameDefines(a, b []string) bool {
	la, lb := symbols.Of(a...), symbols.Of(b...)
	if la.Len() != lb.Len() {
		return false
	}
	for _, s := range la.Items() {
		if !lb.Contains(s) {
			return false
		}
	}
	return true
}

// containsAll reports whether have holds every define in want, ignoring case.
func containsAll(have, want []string) bool {
	set := symbols.Of(have...)
	for _, s := range want {
		if !set.Contains(s) {
			return false
		}
	}
	return true
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// IsPassInProgress reports whether err means another pass was running.
func IsPassInProgress(err error) bool {
	return errors.Is(err, reconciler.ErrPassInProgress)
}
