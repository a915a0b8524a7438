package sched

import (
	"sync"
	"time"
)

// Throttle runs fn at most once per interval. A call that arrives inside the interval
// replaces any pending trailing call, which fires once the interval has elapsed.
type Throttle struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	ran     bool
	last    time.Time
	gen     uint64
	pending Timer
	stopped bool
}

// NewThrottle wraps fn with a throttle.
func NewThrottle(clock Clock, interval time.Duration, fn func()) *Throttle {
	return &Throttle{clock: clock, interval: interval, fn: fn}
}

// Call requests an execution of fn.
func (t *Throttle) Call() {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return
	}
	now := t.clock.Now()
	elapsed := now.Sub(t.last)
	if !t.ran || elapsed >= t.interval {
		t.cancelPendingLocked()
		t.ran = true
		t.last = now
		t.mu.Unlock()
		t.fn()
		return
	}

	t.cancelPendingLocked()
	gen := t.gen
	t.pending = t.clock.AfterFunc(t.interval-elapsed, func() { t.trailing(gen) })
	t.mu.Unlock()
}

func (t *Throttle) trailing(gen uint64) {
	t.mu.Lock()
	if t.stopped || gen != t.gen {
		t.mu.Unlock()
		return
	}
	t.pending = nil
	t.last = t.clock.Now()
	t.mu.Unlock()
	t.fn()
}

// Stop cancels any pending trailing call and ignores future calls.
func (t *Throttle) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.stopped = true
	t.cancelPendingLocked()
}

func (t *Throttle) cancelPendingLocked() {
	t.gen++
	if t.pending != nil {
		t.pending.Stop()
		t.pending = nil
	}
}

// Debounce runs fn once calls have stopped arriving for the interval.
type Debounce struct {
	clock    Clock
	interval time.Duration
	fn       func()

	mu      sync.Mutex
	gen     uint64
	pending Timer
	stopped bool
}

// NewDebounce wraps fn with a debounce.
func NewDebounce(clock Clock, interval time.Duration, fn func()) *Debounce {
	return &Debounce{clock: clock, interval: interval, fn: fn}
}

// Call restarts the quiet period.
func (d *Debounce) Call() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.gen++
	if d.pending != nil {
		d.pending.Stop()
	}
	gen := d.gen
	d.pending = d.clock.AfterFunc(d.interval, func() { d.fire(gen) })
}

func (d *Debounce) fire(gen uint64) {
	d.mu.Lock()
	if d.stopped || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()
	d.fn()
}

// Stop cancels a pending call and ignores future calls.
func (d *Debounce) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.stopped = true
	d.gen++
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
}
