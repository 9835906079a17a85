package watcher

import (
	"context"
	"sync"

	"ccu/internal/host"
)

// Queue is a FIFO of host events with one slot per event kind. Adding an
// event whose kind is already queued replaces the queued one, so a burst of
// compiles is handled once with the latest diagnostics. An event added while
// one of the same kind is being handled is held until Done.
type Queue struct {
	mu sync.Mutex

	// queue holds events in FIFO order
	queue []host.Event

	// processing tracks kinds currently being handled
	processing map[host.EventKind]bool

	// dirty holds events that arrived while their kind was being handled
	dirty map[host.EventKind]host.Event

	// cond is used for blocking Get operations
	cond *sync.Cond

	// shuttingDown indicates the queue is stopping
	shuttingDown bool
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	q := &Queue{
		processing: make(map[host.EventKind]bool),
		dirty:      make(map[host.EventKind]host.Event),
	}
	q.cond = sync.NewCond(&q.mu)
	return q
}

// Add adds or replaces an event.
func (q *Queue) Add(ev host.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.shuttingDown {
		return
	}

	if q.processing[ev.Kind] {
		q.dirty[ev.Kind] = ev
		return
	}

	for i, existing := range q.queue {
		if existing.Kind == ev.Kind {
			q.queue[i] = ev
			return
		}
	}

	q.queue = append(q.queue, ev)
	q.cond.Signal()
}

// Get retrieves the next event, blocking until one is available. It returns
// false once ctx is done or the queue is shut down and drained.
func (q *Queue) Get(ctx context.Context) (host.Event, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for len(q.queue) == 0 && !q.shuttingDown {
		if ctx.Err() != nil {
			return host.Event{}, false
		}

		// Wake the waiter when ctx is cancelled. Closing done releases the
		// goroutine on a normal wakeup.
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				q.mu.Lock()
				q.cond.Broadcast()
				q.mu.Unlock()
			case <-done:
			}
		}()

		q.cond.Wait()
		close(done)

		if ctx.Err() != nil {
			return host.Event{}, false
		}
	}

	if len(q.queue) == 0 {
		return host.Event{}, false
	}

	ev := q.queue[0]
	q.queue = q.queue[1:]
	q.processing[ev.Kind] = true
	return ev, true
}

// Done marks an event's kind as handled, requeuing anything that arrived in
// the meantime.
func (q *Queue) Done(ev host.Event) {
	q.mu.Lock()
	defer q.mu.Unlock()

	delete(q.processing, ev.Kind)

	if next, ok := q.dirty[ev.Kind]; ok {
		delete(q.dirty, ev.Kind)
		q.queue = append(q.queue, next)
		q.cond.Signal()
	}
}

// Len returns the number of queued events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.queue)
}

// Shutdown stops the queue. Queued events can still be drained with Get.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.shuttingDown = true
	q.cond.Broadcast()
}
