// Package debounce provides a cancellable, reschedulable quiet-period timer.
//
// Each Schedule call replaces the pending callback and restarts the wait, so
// a burst of calls closer together than the interval runs the callback once,
// after the last call.
package debounce

import (
	"sync"
	"time"
)

// DefaultInterval is the quiet period used for search input.
const DefaultInterval = 500 * time.Millisecond

// Timer coalesces rapid calls into a single trailing callback.
type Timer struct {
	interval time.Duration

	mu      sync.Mutex
	timer   *time.Timer
	pending func()
	gen     uint64
	stopped bool
}

// New creates a timer with the given quiet period. A non-positive interval
// falls back to DefaultInterval.
func New(interval time.Duration) *Timer {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Timer{interval: interval}
}

// Interval returns the quiet period.
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Schedule cancels any pending callback and arranges for fn to run once the
// quiet period elapses without another Schedule call. fn runs on its own
// goroutine. Schedule is a no-op after Stop.
func (t *Timer) Schedule(fn func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stopped {
		return
	}

	t.gen++
	gen := t.gen
	t.pending = fn

	if t.timer != nil {
		t.timer.Stop()
	}
	t.timer = time.AfterFunc(t.interval, func() {
		t.fire(gen)
	})
}

// fire runs the pending callback if no later Schedule or Cancel superseded
// generation gen.
func (t *Timer) fire(gen uint64) {
	t.mu.Lock()
	if gen != t.gen || t.pending == nil {
		t.mu.Unlock()
		return
	}
	fn := t.pending
	t.pending = nil
	t.timer = nil
	t.mu.Unlock()

	fn()
}

// Cancel drops the pending callback, if any.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
}

func (t *Timer) cancelLocked() {
	t.gen++
	t.pending = nil
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

// Flush runs the pending callback immediately on the calling goroutine.
// It reports whether there was one.
func (t *Timer) Flush() bool {
	t.mu.Lock()
	fn := t.pending
	t.cancelLocked()
	t.mu.Unlock()

	if fn == nil {
		return false
	}
	fn()
	return true
}

// Pending reports whether a callback is waiting to run.
func (t *Timer) Pending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pending != nil
}

// Stop cancels the pending callback and disables future scheduling.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.cancelLocked()
	t.stopped = true
}
