package schedule

import (
	"sync"
	"time"
)

// Loop is a wall-clock Scheduler bound to one owner thread.
//
// Timers fire on runtime goroutines; dispatch must hand the callback back to
// the owner thread, as fyne.Do or a channel drained by a main loop does. A
// callback that arrives after CancelAll is dropped.
type Loop struct {
	mu         sync.Mutex
	dispatch   func(func())
	generation uint64
	nextID     uint64
	timers     map[uint64]*time.Timer
}

// NewLoop creates a scheduler that delivers callbacks through dispatch.
func NewLoop(dispatch func(func())) *Loop {
	return &Loop{
		dispatch: dispatch,
		timers:   make(map[uint64]*time.Timer),
	}
}

// Now returns the wall-clock time.
func (loop *Loop) Now() time.Time {
	return time.Now()
}

// After arms a timer that dispatches fn once delay has elapsed.
func (loop *Loop) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}

	loop.mu.Lock()
	defer loop.mu.Unlock()
	loop.nextID++
	id := loop.nextID
	generation := loop.generation
	loop.timers[id] = time.AfterFunc(delay, func() {
		loop.dispatch(func() {
			if loop.release(id, generation) {
				fn()
			}
		})
	})
}

// CancelAll stops every armed timer and invalidates callbacks already queued
// on the owner thread.
func (loop *Loop) CancelAll() {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	loop.generation++
	for id, timer := range loop.timers {
		timer.Stop()
		delete(loop.timers, id)
	}
}

// Pending reports how many timers are armed.
func (loop *Loop) Pending() int {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	return len(loop.timers)
}

func (loop *Loop) release(id, generation uint64) bool {
	loop.mu.Lock()
	defer loop.mu.Unlock()
	if generation != loop.generation {
		return false
	}
	delete(loop.timers, id)
	return true
}
