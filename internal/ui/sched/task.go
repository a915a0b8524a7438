package sched

import (
	"context"
	"sync"
	"time"
)

// Task is a one-shot deferred callback with a cancellation token. The callback never
// runs once the task, or the context it was derived from, has been cancelled.
type Task struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu    sync.Mutex
	timer Timer
	fired bool
}

// After schedules fn to run after d unless ctx or the returned task is cancelled first.
func After(ctx context.Context, clock Clock, d time.Duration, fn func()) *Task {
	taskCtx, cancel := context.WithCancel(ctx)
	t := &Task{ctx: taskCtx, cancel: cancel}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.timer = clock.AfterFunc(d, func() {
		t.mu.Lock()
		if t.ctx.Err() != nil || t.fired {
			t.mu.Unlock()
			return
		}
		t.fired = true
		t.mu.Unlock()
		fn()
		t.cancel()
	})
	return t
}

// Cancel stops the task. It reports whether the callback was prevented from running.
func (t *Task) Cancel() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.fired || t.ctx.Err() != nil {
		t.cancel()
		return false
	}
	t.cancel()
	if t.timer != nil {
		t.timer.Stop()
	}
	return true
}

// Pending reports whether the callback is still due to run.
func (t *Task) Pending() bool {
	if t == nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.fired && t.ctx.Err() == nil
}

// Done is closed once the task has fired or been cancelled.
func (t *Task) Done() <-chan struct{} {
	return t.ctx.Done()
}

// Slot holds at most one pending task. Scheduling a new task cancels the previous one,
// so rapid repeated triggers cannot race each other.
type Slot struct {
	ctx   context.Context
	clock Clock

	mu   sync.Mutex
	task *Task
}

// NewSlot creates a slot whose tasks are derived from ctx.
func NewSlot(ctx context.Context, clock Clock) *Slot {
	return &Slot{ctx: ctx, clock: clock}
}

// Schedule replaces any pending task with fn after d.
func (s *Slot) Schedule(d time.Duration, fn func()) *Task {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.task.Cancel()
	s.task = After(s.ctx, s.clock, d, fn)
	return s.task
}

// Cancel cancels the pending task, if any. It reports whether a callback was prevented.
func (s *Slot) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	stopped := s.task.Cancel()
	s.task = nil
	return stopped
}

// Pending reports whether the slot holds a task that has yet to fire.
func (s *Slot) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.task.Pending()
}
