// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package throttle enforces a minimum interval between requests to the same domain.
package throttle

import (
	"context"
	"sync"
	"time"
)

// Throttle spaces requests per domain. Concurrent callers for the same domain
// reserve consecutive slots under one lock, so no two callers can both observe
// a wait-free slot. Callers for different domains never delay each other; the
// lock is held only to reserve, never while waiting.
type Throttle struct {
	mu       sync.Mutex
	interval time.Duration
	next     map[string]time.Time

	// now is the clock. Tests substitute it.
	now func() time.Time
}

// New returns a Throttle enforcing the given same-domain interval.
// A non-positive interval disables waiting but still records slots.
func New(interval time.Duration) *Throttle {
	return &Throttle{
		interval: interval,
		next:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// Acquire blocks until the domain's next request slot arrives and returns how
// long it waited. The slot is reserved before waiting and stands even if ctx
// is canceled mid-wait; Acquire then returns ctx.Err().
func (t *Throttle) Acquire(ctx context.Context, domain string) (time.Duration, error) {
	t.mu.Lock()
	now := t.now()
	slot := now
	if last, ok := t.next[domain]; ok {
		if s := last.Add(t.interval); s.After(now) {
			slot = s
		}
	}
	t.next[domain] = slot
	t.mu.Unlock()

	wait := slot.Sub(now)
	if wait <= 0 {
		return 0, nil
	}

	select {
	case <-ctx.Done():
		return wait, ctx.Err()
	case <-time.After(wait):
		return wait, nil
	}
}

// Reset forgets all recorded request slots.
func (t *Throttle) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.next = make(map[string]time.Time)
}
