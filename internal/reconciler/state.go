package reconciler

import (
	"sync"

	"ccu/pkg/logging"
)

// State is the published output of the reconciliation system. It is created
// once per host session, written only by the Reconciler, and safe to read
// from any goroutine.
type State struct {
	mu sync.RWMutex

	phase   Phase
	defines []string
	last    *PassResult
}

// NewState creates an idle state with nothing published.
func NewState() *State {
	return &State{phase: PhaseIdle}
}

// Defines returns the most recently published active-defines set: the
// enabling symbol first, then every satisfied dependency define.
func (s *State) Defines() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, len(s.defines))
	copy(out, s.defines)
	return out
}

// Phase returns the current lifecycle phase.
func (s *State) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// LastPass returns the result of the most recent pass, if any.
func (s *State) LastPass() (PassResult, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.last == nil {
		return PassResult{}, false
	}
	return *s.last, true
}

// RequestReset moves the state to PhaseResetPending. It fails with
// ErrPassInProgress while a pass is running.
func (s *State) RequestReset() error {
	return s.fire(TriggerRequestReset)
}

func (s *State) fire(t Trigger) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := nextPhase(s.phase, t)
	if err != nil {
		return err
	}
	if next != s.phase {
		logging.Debug("Reconciler", "Phase %s -> %s (%s)", s.phase, next, t)
	}
	s.phase = next
	return nil
}

func (s *State) publish(defines []string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.defines = append([]string(nil), defines...)
}

func (s *State) record(res PassResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &res
}
