package watcher

import (
	"context"

	"ccu/internal/host"
	"ccu/internal/recovery"
	"ccu/pkg/logging"
)

// Handler consumes host events. *recovery.Controller implements it.
type Handler interface {
	Handle(ctx context.Context, ev host.Event) recovery.Outcome
}

// Forward moves events from the detector channel into q until ctx is done
// or events is closed, then shuts q down.
func Forward(ctx context.Context, events <-chan host.Event, q *Queue) error {
	defer q.Shutdown()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			q.Add(ev)
		}
	}
}

// Serve hands queued events to h one at a time until the queue is shut down
// or ctx is done. Handling is strictly serial, so passes never overlap.
func Serve(ctx context.Context, q *Queue, h Handler) error {
	for {
		ev, ok := q.Get(ctx)
		if !ok {
			return nil
		}

		out := h.Handle(ctx, ev)
		switch {
		case recovery.IsPassInProgress(out.Err):
			logging.Debug("Watcher", "%s skipped, a pass is already running", ev.Kind)
		case out.Err != nil:
			logging.Warn("Watcher", "%s handled with errors: %v", ev.Kind, out.Err)
		case out.Reason != "":
			logging.Info("Watcher", "%s: %s (%s)", ev.Kind, out.Action, out.Reason)
		default:
			logging.Info("Watcher", "%s: %s", ev.Kind, out.Action)
		}
		q.Done(ev)
	}
}
