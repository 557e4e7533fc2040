package schedule

import (
	"sort"
	"time"
)

type manualTask struct {
	due time.Time
	seq uint64
	fn  func()
}

// Manual is a virtual-clock Scheduler. Time only moves when Advance or
// AdvanceTo is called, which makes tick sequences deterministic in tests.
type Manual struct {
	now   time.Time
	seq   uint64
	tasks []manualTask
}

// NewManual creates a virtual scheduler whose clock starts at start.
func NewManual(start time.Time) *Manual {
	return &Manual{now: start}
}

// Now returns the virtual time.
func (manual *Manual) Now() time.Time {
	return manual.now
}

// After queues fn to run once the virtual clock reaches now+delay.
func (manual *Manual) After(delay time.Duration, fn func()) {
	if delay < 0 {
		delay = 0
	}
	manual.seq++
	manual.tasks = append(manual.tasks, manualTask{
		due: manual.now.Add(delay),
		seq: manual.seq,
		fn:  fn,
	})
}

// CancelAll drops every queued callback.
func (manual *Manual) CancelAll() {
	manual.tasks = nil
}

// Pending reports how many callbacks are queued.
func (manual *Manual) Pending() int {
	return len(manual.tasks)
}

// Advance moves the clock forward by delta, running due callbacks on the way.
func (manual *Manual) Advance(delta time.Duration) {
	manual.AdvanceTo(manual.now.Add(delta))
}

// AdvanceTo moves the clock to target. Each callback observes Now() equal to
// its own due time; callbacks queued while advancing run too if they fall due
// before target.
func (manual *Manual) AdvanceTo(target time.Time) {
	for {
		index := manual.nextDue(target)
		if index < 0 {
			break
		}
		task := manual.tasks[index]
		manual.tasks = append(manual.tasks[:index], manual.tasks[index+1:]...)
		if task.due.After(manual.now) {
			manual.now = task.due
		}
		task.fn()
	}
	if target.After(manual.now) {
		manual.now = target
	}
}

func (manual *Manual) nextDue(target time.Time) int {
	if len(manual.tasks) == 0 {
		return -1
	}
	sort.SliceStable(manual.tasks, func(i, j int) bool {
		if manual.tasks[i].due.Equal(manual.tasks[j].due) {
			return manual.tasks[i].seq < manual.tasks[j].seq
		}
		return manual.tasks[i].due.Before(manual.tasks[j].due)
	})
	if manual.tasks[0].due.After(target) {
		return -1
	}
	return 0
}
