package reconciler

import (
	"errors"
	"fmt"
)

// ErrPassInProgress is returned when a pass is requested while one is running.
var ErrPassInProgress = errors.New("reconciliation pass already in progress")

// Phase is the lifecycle phase of the reconciliation system.
type Phase string

const (
	// PhaseIdle means no pass is running and nothing is pending.
	PhaseIdle Phase = "Idle"

	// PhaseAwaitingBootstrapRecompile means the enabling symbol was just
	// written and marker types become visible only after the host recompiles.
	PhaseAwaitingBootstrapRecompile Phase = "AwaitingBootstrapRecompile"

	// PhaseReconciling means a pass is running.
	PhaseReconciling Phase = "Reconciling"

	// PhaseResetPending means compilation errors asked for a reset pass.
	PhaseResetPending Phase = "ResetPending"
)

// Trigger drives a phase transition.
type Trigger string

const (
	TriggerRequestReset Trigger = "RequestReset"
	TriggerBeginPass    Trigger = "BeginPass"
	TriggerBeginReset   Trigger = "BeginReset"
	TriggerBootstrapped Trigger = "Bootstrapped"
	TriggerCompleted    Trigger = "Completed"
	TriggerFailed       Trigger = "Failed"
)

var idleLike = map[Trigger]Phase{
	TriggerRequestReset: PhaseResetPending,
	TriggerBeginPass:    PhaseReconciling,
	TriggerBeginReset:   PhaseReconciling,
}

// transitions is the complete transition table. Anything absent is illegal.
var transitions = map[Phase]map[Trigger]Phase{
	PhaseIdle:                       idleLike,
	PhaseAwaitingBootstrapRecompile: idleLike,
	PhaseResetPending:               idleLike,
	PhaseReconciling: {
		TriggerBootstrapped: PhaseAwaitingBootstrapRecompile,
		TriggerCompleted:    PhaseIdle,
		TriggerFailed:       PhaseIdle,
	},
}

// nextPhase returns the phase reached from p on t.
func nextPhase(p Phase, t Trigger) (Phase, error) {
	next, ok := transitions[p][t]
	if ok {
		return next, nil
	}
	if p == PhaseReconciling {
		return p, fmt.Errorf("%w: cannot %s", ErrPassInProgress, t)
	}
	return p, fmt.Errorf("illegal transition %s from phase %s", t, p)
}
