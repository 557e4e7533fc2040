package progress

import (
	"io"
	"log/slog"
	"time"

	"pulsatingtimer/internal/core/schedule"
)

// DefaultTickInterval is the time between two progress steps.
const DefaultTickInterval = time.Second

// Config contains runtime options for a Driver.
type Config struct {
	TickInterval time.Duration
	Logger       *slog.Logger
	// OnChange is called whenever progress or target changes.
	OnChange func()
}

// State is a point-in-time view of the driver.
type State struct {
	Progress int
	Target   int
	Running  bool
}

// Driver moves progress one unit toward target on every tick.
//
// The driver is confined to the scheduler's owner thread. Start, Pause and
// completion cancel everything pending on the scheduler, so a pulsation
// ticker sharing the same scheduler stops with it.
type Driver struct {
	scheduler schedule.Scheduler
	options   Config
	logger    *slog.Logger
	listener  Listener
	progress  int
	target    int
	running   bool
	// arms counts Start/Pause/Halt calls so a tick can tell whether its
	// listener re-armed or stopped the driver.
	arms uint64
}

// New creates a stopped driver.
func New(scheduler schedule.Scheduler, target, progress int, options Config) *Driver {
	if options.TickInterval <= 0 {
		options.TickInterval = DefaultTickInterval
	}
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return &Driver{
		scheduler: scheduler,
		options:   options,
		logger:    logger,
		progress:  clampCount(progress),
		target:    clampCount(target),
	}
}

// SetListener replaces the lifecycle listener. Nil detaches it.
func (driver *Driver) SetListener(listener Listener) {
	driver.listener = listener
}

// Start (re)arms the tick from now and reports OnStart.
func (driver *Driver) Start() {
	driver.arms++
	driver.scheduler.CancelAll()
	driver.scheduler.After(driver.options.TickInterval, driver.tick)
	driver.running = true
	driver.logger.Debug("timer started", "progress", driver.progress, "target", driver.target)

	if driver.listener != nil {
		driver.listener.OnStart()
	}
}

// Pause cancels the pending tick. OnPause fires only when the driver was running.
func (driver *Driver) Pause() {
	driver.arms++
	driver.scheduler.CancelAll()
	if !driver.running {
		return
	}
	driver.running = false
	driver.logger.Debug("timer paused", "progress", driver.progress)

	if driver.listener != nil {
		driver.listener.OnPause()
	}
}

// Halt cancels pending work without notifying the listener.
func (driver *Driver) Halt() {
	driver.arms++
	driver.scheduler.CancelAll()
	driver.running = false
}

// SetTarget changes the target. A running driver heads for the new target on
// its next tick.
func (driver *Driver) SetTarget(target int) {
	driver.target = clampCount(target)
	driver.changed()
}

// SetProgress overwrites the current progress without rescheduling.
func (driver *Driver) SetProgress(progress int) {
	driver.progress = clampCount(progress)
	driver.changed()
}

// State returns the current counters and running flag.
func (driver *Driver) State() State {
	return State{
		Progress: driver.progress,
		Target:   driver.target,
		Running:  driver.running,
	}
}

// Arms returns a counter bumped by every Start, Pause and Halt. Callers
// compare values taken around a call to detect nested re-arming.
func (driver *Driver) Arms() uint64 {
	return driver.arms
}

// Running reports whether a tick is scheduled.
func (driver *Driver) Running() bool {
	return driver.running
}

func (driver *Driver) tick() {
	if driver.progress == driver.target {
		driver.scheduler.CancelAll()
		driver.running = false
		driver.logger.Debug("timer reached target", "target", driver.target)
		if driver.listener != nil {
			driver.listener.OnEnd()
		}
		return
	}

	if driver.progress < driver.target {
		driver.progress++
	} else {
		driver.progress--
	}
	driver.logger.Debug("timer tick", "progress", driver.progress, "target", driver.target)
	driver.changed()

	arms := driver.arms
	if driver.listener != nil {
		driver.listener.OnUpdate(driver.progress)
	}
	if driver.running && arms == driver.arms {
		driver.scheduler.After(driver.options.TickInterval, driver.tick)
	}
}

func (driver *Driver) changed() {
	if driver.options.OnChange != nil {
		driver.options.OnChange()
	}
}

func clampCount(value int) int {
	if value < 0 {
		return 0
	}
	return value
}
