// Package pulsating is the state engine behind the pulsating timer widget: a
// progress counter that walks toward a target once per tick, plus ripple
// rings emitted on their own cadence. Rendering surfaces bind to it through
// Frame and the redraw hook.
package pulsating

import (
	"io"
	"log/slog"
	"math"
	"time"

	"pulsatingtimer/internal/core/model"
	"pulsatingtimer/internal/core/progress"
	"pulsatingtimer/internal/core/pulse"
	"pulsatingtimer/internal/core/schedule"
)

// Options contains host bindings for a Timer.
type Options struct {
	Logger *slog.Logger
	// Redraw asks the host surface to repaint. It may be nil.
	Redraw func()
	// TickInterval overrides the one-second progress tick.
	TickInterval time.Duration
}

// Point is a position on the rendering surface.
type Point struct {
	X float32
	Y float32
}

// Frame is everything a surface needs to paint one frame.
type Frame struct {
	Progress   int
	Center     Point
	BaseRadius float32
	Pulsations []pulse.Ring
	Style      model.Style
}

// Timer is confined to the thread that owns its scheduler.
type Timer struct {
	scheduler schedule.Scheduler
	logger    *slog.Logger
	redraw    func()
	style     model.Style
	driver    *progress.Driver
	pulses    *pulse.Scheduler

	width        float32
	height       float32
	center       Point
	targetRadius float32
	frames       uint64
}

// New creates a stopped timer using config for its counters and style.
func New(scheduler schedule.Scheduler, config model.Config, options Options) *Timer {
	logger := options.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	timer := &Timer{
		scheduler: scheduler,
		logger:    logger,
		redraw:    options.Redraw,
		style:     config.Style,
	}
	timer.driver = progress.New(scheduler, config.Target, config.Progress, progress.Config{
		TickInterval: options.TickInterval,
		Logger:       logger,
		OnChange:     timer.requestRedraw,
	})
	timer.pulses = pulse.New(scheduler, pulseConfig(config.Style), timer.requestRedraw)
	return timer
}

// SetListener replaces the lifecycle listener.
func (timer *Timer) SetListener(listener progress.Listener) {
	timer.driver.SetListener(listener)
}

// Start begins ticking and emitting pulsations. Calling it while running
// restarts both cadences from now.
func (timer *Timer) Start() {
	arms := timer.driver.Arms()
	timer.driver.Start()
	// OnStart may have restarted or paused the timer; the nested call owns
	// the pulsation cadence then.
	if timer.driver.Running() && timer.driver.Arms() == arms+1 {
		timer.pulses.Start()
	}
}

// Pause stops both cadences. Live pulsations keep fading until they expire.
func (timer *Timer) Pause() {
	timer.driver.Pause()
}

// IsRunning reports whether progress ticks are scheduled.
func (timer *Timer) IsRunning() bool {
	return timer.driver.Running()
}

// Progress returns the current counter value.
func (timer *Timer) Progress() int {
	return timer.driver.State().Progress
}

// Target returns the value progress is heading for.
func (timer *Timer) Target() int {
	return timer.driver.State().Target
}

// State returns the counters and running flag.
func (timer *Timer) State() progress.State {
	return timer.driver.State()
}

// SetTarget changes the target; a running timer turns around on its next tick.
func (timer *Timer) SetTarget(target int) {
	timer.driver.SetTarget(target)
}

// SetProgress overwrites the counter without touching the schedule.
func (timer *Timer) SetProgress(value int) {
	timer.driver.SetProgress(value)
}

// Config returns the live counters and style, ready to persist or edit.
func (timer *Timer) Config() model.Config {
	state := timer.driver.State()
	return model.Config{
		Target:   state.Target,
		Progress: state.Progress,
		Style:    timer.style,
	}
}

// Style returns the current visual configuration.
func (timer *Timer) Style() model.Style {
	return timer.style
}

// SetStyle applies style and requests a redraw. New pulsation timing takes
// effect from the next pulsation tick.
func (timer *Timer) SetStyle(style model.Style) {
	timer.style = style
	timer.pulses.SetConfig(pulseConfig(style))
	timer.updateGeometry()
	timer.requestRedraw()
}

// UpdateStyle edits a copy of the current style and applies it.
func (timer *Timer) UpdateStyle(edit func(*model.Style)) {
	style := timer.style
	edit(&style)
	timer.SetStyle(style)
}

// SetSize records the surface size. Geometry is derived once per change.
func (timer *Timer) SetSize(width, height float32) {
	if width == timer.width && height == timer.height {
		return
	}
	timer.width = width
	timer.height = height
	timer.updateGeometry()
	timer.requestRedraw()
}

// BaseRadius returns the radius of the static circle.
func (timer *Timer) BaseRadius() float32 {
	if timer.style.CircleRadius >= 0 {
		return timer.style.CircleRadius
	}
	return min(timer.center.X, timer.center.Y)
}

// Frame evaluates the engine for a repaint at the scheduler's current time.
// Expired pulsations are dropped here, and another redraw is requested while
// any remain.
func (timer *Timer) Frame() Frame {
	timer.frames++
	base := timer.BaseRadius()
	rings := timer.pulses.Evaluate(timer.scheduler.Now(), pulse.Geometry{
		BaseRadius:   base,
		TargetRadius: timer.targetRadius,
	}, timer.style.PulsationAlpha)
	timer.logger.Debug("frame", "count", timer.frames, "pulsations", len(rings))

	return Frame{
		Progress:   timer.driver.State().Progress,
		Center:     timer.center,
		BaseRadius: base,
		Pulsations: rings,
		Style:      timer.style,
	}
}

// Capture returns the state to persist before the host suspends.
func (timer *Timer) Capture() model.Snapshot {
	starts := timer.pulses.StartTimes()
	millis := make([]int64, len(starts))
	for i, start := range starts {
		millis[i] = start.UnixMilli()
	}

	return model.Snapshot{
		Started:             timer.driver.Running(),
		Progress:            clampInt32(timer.driver.State().Progress),
		PulsationStartTimes: millis,
	}
}

// Restore rebuilds the engine from a snapshot. Pulsations keep their absolute
// start times, so ones that expired while suspended vanish on the next frame.
// A started snapshot resumes ticking from now.
func (timer *Timer) Restore(snapshot model.Snapshot) {
	if !snapshot.Started && timer.driver.Running() {
		timer.driver.Halt()
	}

	timer.driver.SetProgress(int(snapshot.Progress))
	starts := make([]time.Time, len(snapshot.PulsationStartTimes))
	for i, millis := range snapshot.PulsationStartTimes {
		starts[i] = time.UnixMilli(millis)
	}
	timer.pulses.Replace(starts)
	timer.logger.Debug("timer restored",
		"started", snapshot.Started,
		"progress", snapshot.Progress,
		"pulsations", len(starts),
	)
	timer.requestRedraw()

	if snapshot.Started {
		timer.Start()
	}
}

// Detach tears the engine down for good: pending callbacks are cancelled and
// the listener and redraw hook are released.
func (timer *Timer) Detach() {
	timer.driver.Halt()
	timer.driver.SetListener(nil)
	timer.pulses.SetRedraw(nil)
	timer.redraw = nil
	timer.logger.Debug("timer detached")
}

func (timer *Timer) requestRedraw() {
	if timer.redraw != nil {
		timer.redraw()
	}
}

func (timer *Timer) updateGeometry() {
	timer.center = Point{
		X: float32(math.Round(float64(timer.width) / 2)),
		Y: float32(math.Round(float64(timer.height) / 2)),
	}
	timer.targetRadius = min(timer.width, timer.height) / 2
}

func pulseConfig(style model.Style) pulse.Config {
	return pulse.Config{
		Interval: style.PulsationInterval,
		Duration: style.PulsationDuration,
		Curve:    style.Curve,
	}
}

func clampInt32(value int) int32 {
	if value > math.MaxInt32 {
		return math.MaxInt32
	}
	if value < math.MinInt32 {
		return math.MinInt32
	}
	return int32(value)
}
