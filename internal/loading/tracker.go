// Package loading tracks a visual loading indicator that clears after a
// delay. Starting a new delay supersedes the pending one, so a stale timer
// never clears the indicator on behalf of a newer selection.
package loading

import (
	"context"
	"sync"
	"time"
)

// DefaultDelay matches the dashboard's simulated load time.
const DefaultDelay = 1200 * time.Millisecond

// Ticket identifies one Begin call.
type Ticket uint64

// Tracker owns the loading flag for one logical operation.
type Tracker struct {
	delay time.Duration

	mu      sync.Mutex
	gen     Ticket
	loading bool
	timer   *time.Timer
	settled chan struct{}
	onClear func(Ticket)
}

// New returns a tracker that clears the flag delay after each Begin. A
// non-positive delay uses DefaultDelay.
func New(delay time.Duration) *Tracker {
	if delay <= 0 {
		delay = DefaultDelay
	}
	t := &Tracker{delay: delay, settled: make(chan struct{})}
	close(t.settled)
	return t
}

// OnClear registers a callback run when the latest ticket clears the flag,
// before Wait returns. It is not run for superseded or cancelled tickets.
func (t *Tracker) OnClear(fn func(Ticket)) {
	t.mu.Lock()
	t.onClear = fn
	t.mu.Unlock()
}

// Begin sets the flag and schedules its clearing. Any pending ticket is
// superseded: its timer is stopped and, if it already fired, its
// completion is ignored.
func (t *Tracker) Begin() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
	}
	if !t.loading {
		t.settled = make(chan struct{})
	}
	t.gen++
	ticket := t.gen
	t.loading = true
	t.timer = time.AfterFunc(t.delay, func() { t.complete(ticket) })
	return ticket
}

func (t *Tracker) complete(ticket Ticket) {
	t.mu.Lock()
	if ticket != t.gen || !t.loading {
		t.mu.Unlock()
		return
	}
	t.loading = false
	t.timer = nil
	settled := t.settled
	fn := t.onClear
	t.mu.Unlock()

	// waiters are released only after the callback has run
	if fn != nil {
		fn(ticket)
	}
	close(settled)
}

// Cancel stops the pending ticket and clears the flag immediately.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	t.gen++
	if t.loading {
		t.loading = false
		close(t.settled)
	}
}

// Loading reports whether a ticket is pending.
func (t *Tracker) Loading() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.loading
}

// Current returns the latest ticket issued.
func (t *Tracker) Current() Ticket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.gen
}

// Wait blocks until no ticket is pending or ctx is done.
func (t *Tracker) Wait(ctx context.Context) error {
	for {
		t.mu.Lock()
		ch := t.settled
		t.mu.Unlock()

		select {
		case <-ch:
			if !t.Loading() {
				return nil
			}
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}
