package progress

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"pulsatingtimer/internal/core/schedule"
)

var epoch = time.UnixMilli(1_700_000_000_000)

type recorder struct {
	events []string
}

func (rec *recorder) OnStart() { rec.events = append(rec.events, "start") }
func (rec *recorder) OnPause() { rec.events = append(rec.events, "pause") }
func (rec *recorder) OnUpdate(progress int) { rec.events = append(rec.events, fmt.Sprintf("update:%d", progress)) }
func (rec *recorder) OnEnd() { rec.events = append(rec.events, "end") }

func (rec *recorder) count(event string) int {
	total := 0
	for _, seen := range rec.events {
		if seen == event {
			total++
		}
	}
	return total
}

func newDriver(target, progress int) (*Driver, *schedule.Manual, *recorder) {
	manual := schedule.NewManual(epoch)
	driver := New(manual, target, progress, Config{})
	rec := &recorder{}
	driver.SetListener(rec)
	return driver, manual, rec
}

func TestCountsUpToTarget(t *testing.T) {
	driver, manual, rec := newDriver(3, 0)
	driver.Start()

	manual.Advance(999 * time.Millisecond)
	if len(rec.events) != 1 {
		t.Fatalf("events before first tick = %v", rec.events)
	}

	manual.Advance(time.Millisecond)
	manual.Advance(time.Second)
	manual.Advance(time.Second)
	want := []string{"start", "update:1", "update:2", "update:3"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events at 3s = %v, want %v", rec.events, want)
	}

	manual.Advance(time.Second)
	want = append(want, "end")
	if !reflect.DeepEqual(rec.events, want) {
		t.Fatalf("events at 4s = %v, want %v", rec.events, want)
	}
	if driver.Running() {
		t.Error("driver still running after end")
	}

	manual.Advance(time.Hour)
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events after end = %v, want %v", rec.events, want)
	}
	if manual.Pending() != 0 {
		t.Errorf("Pending() = %d after end", manual.Pending())
	}
}

func TestConvergesInEitherDirection(t *testing.T) {
	tests := []struct {
		progress int
		target   int
	}{
		{0, 5},
		{5, 0},
		{7, 7},
		{10, 13},
		{20, 12},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_to_%d", tt.progress, tt.target), func(t *testing.T) {
			driver, manual, rec := newDriver(tt.target, tt.progress)
			driver.Start()

			distance := tt.target - tt.progress
			if distance < 0 {
				distance = -distance
			}
			manual.Advance(time.Duration(distance+5) * time.Second)

			updates := rec.events[1 : len(rec.events)-1]
			if len(updates) != distance {
				t.Fatalf("got %d updates, want %d: %v", len(updates), distance, rec.events)
			}
			step := 1
			if tt.target < tt.progress {
				step = -1
			}
			for i, event := range updates {
				want := fmt.Sprintf("update:%d", tt.progress+step*(i+1))
				if event != want {
					t.Errorf("update %d = %s, want %s", i, event, want)
				}
			}
			if last := rec.events[len(rec.events)-1]; last != "end" {
				t.Errorf("last event = %s, want end", last)
			}
			if rec.count("end") != 1 {
				t.Errorf("end fired %d times", rec.count("end"))
			}
			if got := driver.State().Progress; got != tt.target {
				t.Errorf("progress = %d, want %d", got, tt.target)
			}
		})
	}
}

func TestStartAtTargetEndsAfterOneTick(t *testing.T) {
	driver, manual, rec := newDriver(4, 4)
	driver.Start()

	manual.Advance(999 * time.Millisecond)
	if rec.count("end") != 0 {
		t.Fatal("end fired before the first tick")
	}
	manual.Advance(time.Millisecond)

	want := []string{"start", "end"}
	if !reflect.DeepEqual(rec.events, want) {
		t.Errorf("events = %v, want %v", rec.events, want)
	}
}

func TestPauseIsIdempotent(t *testing.T) {
	driver, manual, rec := newDriver(100, 0)
	driver.Start()
	manual.Advance(2 * time.Second)

	driver.Pause()
	driver.Pause()
	manual.Advance(time.Minute)

	if rec.count("pause") != 1 {
		t.Errorf("pause fired %d times, want 1", rec.count("pause"))
	}
	if driver.Running() {
		t.Error("driver running after pause")
	}
	if got := driver.State().Progress; got != 2 {
		t.Errorf("progress = %d, want 2", got)
	}
}

func TestPauseWhenIdleIsSilent(t *testing.T) {
	driver, _, rec := newDriver(10, 0)
	driver.Pause()
	if len(rec.events) != 0 {
		t.Errorf("events = %v, want none", rec.events)
	}
}

func TestRestartReschedulesFromNow(t *testing.T) {
	driver, manual, rec := newDriver(10, 0)
	driver.Start()
	manual.Advance(700 * time.Millisecond)
	driver.Start()

	manual.Advance(700 * time.Millisecond)
	if rec.count("update:1") != 0 {
		t.Fatal("tick fired on the cancelled schedule")
	}
	manual.Advance(300 * time.Millisecond)
	if rec.count("update:1") != 1 {
		t.Fatalf("events = %v, want one update:1", rec.events)
	}
	if manual.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", manual.Pending())
	}
}

func TestTargetChangeReversesDirection(t *testing.T) {
	driver, manual, rec := newDriver(10, 5)
	driver.Start()
	manual.Advance(500 * time.Millisecond)

	driver.SetTarget(0)
	manual.Advance(500 * time.Millisecond)

	if got := rec.events[len(rec.events)-1]; got != "update:4" {
		t.Errorf("next event = %s, want update:4", got)
	}
}

func TestSetProgressDoesNotSchedule(t *testing.T) {
	manual := schedule.NewManual(epoch)
	changes := 0
	driver := New(manual, 10, 0, Config{OnChange: func() { changes++ }})

	driver.SetProgress(6)
	driver.SetTarget(8)

	if manual.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", manual.Pending())
	}
	if changes != 2 {
		t.Errorf("OnChange fired %d times, want 2", changes)
	}
	if state := driver.State(); state.Progress != 6 || state.Target != 8 || state.Running {
		t.Errorf("State() = %+v", state)
	}
}

func TestNegativeValuesAreClamped(t *testing.T) {
	driver, _, _ := newDriver(-5, -3)
	if state := driver.State(); state.Progress != 0 || state.Target != 0 {
		t.Errorf("State() = %+v, want zero counters", state)
	}
}

func TestListenerMayPauseFromUpdate(t *testing.T) {
	manual := schedule.NewManual(epoch)
	driver := New(manual, 10, 0, Config{})
	updates := 0
	driver.SetListener(ListenerFuncs{
		Update: func(progress int) {
			updates++
			if progress == 2 {
				driver.Pause()
			}
		},
	})

	driver.Start()
	manual.Advance(time.Minute)

	if updates != 2 {
		t.Errorf("updates = %d, want 2", updates)
	}
	if manual.Pending() != 0 {
		t.Errorf("Pending() = %d, want 0", manual.Pending())
	}
}

func TestListenerRestartDoesNotDoubleTick(t *testing.T) {
	manual := schedule.NewManual(epoch)
	driver := New(manual, 10, 0, Config{})
	driver.SetListener(ListenerFuncs{
		Update: func(progress int) {
			if progress == 1 {
				driver.Start()
			}
		},
	})

	driver.Start()
	manual.Advance(time.Second)

	if manual.Pending() != 1 {
		t.Errorf("Pending() = %d, want 1", manual.Pending())
	}
}
