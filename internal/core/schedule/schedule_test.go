package schedule

import (
	"sync"
	"testing"
	"time"
)

var epoch = time.UnixMilli(1_700_000_000_000)

func TestManualRunsInDueOrder(t *testing.T) {
	manual := NewManual(epoch)
	var order []string
	manual.After(300*time.Millisecond, func() { order = append(order, "c") })
	manual.After(100*time.Millisecond, func() { order = append(order, "a") })
	manual.After(100*time.Millisecond, func() { order = append(order, "b") })

	manual.Advance(time.Second)

	want := []string{"a", "b", "c"}
	if len(order) != len(want) {
		t.Fatalf("ran %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("ran %v, want %v", order, want)
		}
	}
	if !manual.Now().Equal(epoch.Add(time.Second)) {
		t.Errorf("Now() = %v, want %v", manual.Now(), epoch.Add(time.Second))
	}
}

func TestManualCallbackSeesDueTime(t *testing.T) {
	manual := NewManual(epoch)
	var seen []time.Duration
	var tick func()
	tick = func() {
		seen = append(seen, manual.Now().Sub(epoch))
		manual.After(time.Second, tick)
	}
	manual.After(time.Second, tick)

	manual.Advance(3500 * time.Millisecond)

	want := []time.Duration{time.Second, 2 * time.Second, 3 * time.Second}
	if len(seen) != len(want) {
		t.Fatalf("ticks at %v, want %v", seen, want)
	}
	for i := range want {
		if seen[i] != want[i] {
			t.Errorf("tick %d at %v, want %v", i, seen[i], want[i])
		}
	}
	if manual.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", manual.Pending())
	}
}

func TestManualDoesNotRunEarly(t *testing.T) {
	manual := NewManual(epoch)
	fired := false
	manual.After(time.Second, func() { fired = true })

	manual.Advance(999 * time.Millisecond)
	if fired {
		t.Fatal("callback ran before its delay")
	}
	manual.Advance(time.Millisecond)
	if !fired {
		t.Fatal("callback did not run at its delay")
	}
}

func TestManualCancelAll(t *testing.T) {
	manual := NewManual(epoch)
	fired := 0
	manual.After(time.Second, func() { fired++ })
	manual.After(2*time.Second, func() { fired++ })

	manual.CancelAll()
	manual.Advance(time.Minute)

	if fired != 0 {
		t.Errorf("fired %d callbacks after CancelAll", fired)
	}
}

func TestLoopDispatchesThroughOwner(t *testing.T) {
	queue := make(chan func(), 8)
	loop := NewLoop(func(fn func()) { queue <- fn })

	done := make(chan struct{})
	loop.After(5*time.Millisecond, func() { close(done) })

	select {
	case fn := <-queue:
		fn()
	case <-time.After(time.Second):
		t.Fatal("timer was never dispatched")
	}

	select {
	case <-done:
	default:
		t.Fatal("dispatched callback did not run")
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}

func TestLoopCancelAllDropsQueuedCallbacks(t *testing.T) {
	queue := make(chan func(), 8)
	loop := NewLoop(func(fn func()) { queue <- fn })

	var mu sync.Mutex
	fired := false
	loop.After(time.Millisecond, func() {
		mu.Lock()
		fired = true
		mu.Unlock()
	})

	var dispatched func()
	select {
	case dispatched = <-queue:
	case <-time.After(time.Second):
		t.Fatal("timer was never dispatched")
	}

	// The timer already fired; cancelling now must still drop it.
	loop.CancelAll()
	dispatched()

	mu.Lock()
	defer mu.Unlock()
	if fired {
		t.Error("callback ran after CancelAll")
	}
}

func TestLoopCancelAllStopsArmedTimers(t *testing.T) {
	queue := make(chan func(), 8)
	loop := NewLoop(func(fn func()) { queue <- fn })

	loop.After(20*time.Millisecond, func() {})
	loop.CancelAll()

	select {
	case <-queue:
		t.Fatal("cancelled timer was dispatched")
	case <-time.After(60 * time.Millisecond):
	}
	if loop.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", loop.Pending())
	}
}
