// Package correlation implements the per-reservation reply mailbox as
// an in-process waiter table keyed by reservation id. The contract: a
// waiter registered before the triggering event is published receives
// exactly one outcome; resolving an id nobody waits on is a no-op, the
// persisted state transition being the source of truth in that case.
package correlation

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// Outcome is the inventory coordinator's answer for one reservation.
type Outcome struct {
	ReservationID uuid.UUID
	ItemUpdated   bool
}

type Registry struct {
	mu      sync.Mutex
	waiters map[uuid.UUID]chan Outcome
}

func NewRegistry() *Registry {
	return &Registry{
		waiters: make(map[uuid.UUID]chan Outcome),
	}
}

// Register provisions the reply channel for id. It must be called, and
// must have returned, before the event that will eventually produce the
// outcome is published. Registering an id twice replaces the previous
// waiter, which then never resolves; callers own uniqueness of ids.
func (r *Registry) Register(id uuid.UUID) <-chan Outcome {
	ch := make(chan Outcome, 1)
	r.mu.Lock()
	r.waiters[id] = ch
	r.mu.Unlock()
	return ch
}

// Resolve delivers the outcome to the registered waiter and removes it.
// Returns false when no waiter exists (process restart, or the outcome
// was consumed by another instance).
func (r *Registry) Resolve(o Outcome) bool {
	r.mu.Lock()
	ch, ok := r.waiters[o.ReservationID]
	if ok {
		delete(r.waiters, o.ReservationID)
	}
	r.mu.Unlock()
	if !ok {
		return false
	}
	ch <- o
	close(ch)
	return true
}

// Cancel discards the waiter for id, if any.
func (r *Registry) Cancel(id uuid.UUID) {
	r.mu.Lock()
	delete(r.waiters, id)
	r.mu.Unlock()
}

// Await blocks on ch until an outcome arrives or ctx expires. On ctx
// expiry the waiter for id is cancelled so the table does not leak.
func (r *Registry) Await(ctx context.Context, id uuid.UUID, ch <-chan Outcome) (Outcome, error) {
	select {
	case o, ok := <-ch:
		if !ok {
			return Outcome{}, context.Canceled
		}
		return o, nil
	case <-ctx.Done():
		r.Cancel(id)
		return Outcome{}, ctx.Err()
	}
}

// Len reports the number of outstanding waiters.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.waiters)
}
