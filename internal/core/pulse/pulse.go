package pulse

import (
	"math"
	"time"

	"pulsatingtimer/internal/core/animation"
	"pulsatingtimer/internal/core/schedule"
)

// Config contains pulsation timing.
type Config struct {
	Interval time.Duration
	Duration time.Duration
	Curve    animation.Curve
}

// Geometry describes the radii a ripple grows between.
type Geometry struct {
	BaseRadius   float32
	TargetRadius float32
}

// Ring is one ripple as it should be drawn this frame.
type Ring struct {
	Radius   float32
	Alpha    uint8
	Fraction float64
}

// Scheduler emits a new pulsation every Interval and ages the live ones on
// each render pass. Expired pulsations are pruned during Evaluate; there is
// no separate expiry timer.
type Scheduler struct {
	scheduler schedule.Scheduler
	config    Config
	redraw    func()
	starts    []time.Time
}

// New creates a pulsation scheduler. redraw may be nil.
func New(scheduler schedule.Scheduler, config Config, redraw func()) *Scheduler {
	return &Scheduler{
		scheduler: scheduler,
		config:    config,
		redraw:    redraw,
	}
}

// Start schedules the next pulsation one interval from now. A non-positive
// interval schedules nothing.
func (pulses *Scheduler) Start() {
	if pulses.config.Interval <= 0 {
		return
	}
	pulses.scheduler.After(pulses.config.Interval, pulses.tick)
}

// SetConfig replaces the timing. A new interval applies from the next tick.
func (pulses *Scheduler) SetConfig(config Config) {
	pulses.config = config
}

// SetRedraw replaces the redraw hook. Nil disables it.
func (pulses *Scheduler) SetRedraw(redraw func()) {
	pulses.redraw = redraw
}

// Len returns the number of live pulsations.
func (pulses *Scheduler) Len() int {
	return len(pulses.starts)
}

// StartTimes returns a copy of the live pulsation start times, oldest first.
func (pulses *Scheduler) StartTimes() []time.Time {
	return append([]time.Time(nil), pulses.starts...)
}

// Replace swaps the live set for starts. Expired entries and entries dated
// after now are pruned by the next Evaluate.
func (pulses *Scheduler) Replace(starts []time.Time) {
	pulses.starts = append(pulses.starts[:0:0], starts...)
}

// Evaluate ages every pulsation against now, drops the expired ones and
// returns the rings to draw. It requests another redraw while pulsations
// remain, which keeps the animation running until the set drains.
func (pulses *Scheduler) Evaluate(now time.Time, geometry Geometry, alpha float64) []Ring {
	duration := pulses.config.Duration
	alpha = clampUnit(alpha)

	rings := make([]Ring, 0, len(pulses.starts))
	live := pulses.starts[:0]
	for _, start := range pulses.starts {
		if duration <= 0 {
			continue
		}
		elapsed := now.Sub(start)
		// A start in the future only comes from a snapshot taken under a
		// different clock; it would sit frozen at full alpha.
		if elapsed < 0 || elapsed >= duration {
			continue
		}
		fraction := pulses.config.Curve.Interpolate(float64(elapsed) / float64(duration))
		if fraction >= 1 {
			continue
		}

		live = append(live, start)
		rings = append(rings, Ring{
			Radius:   geometry.BaseRadius + (geometry.TargetRadius-geometry.BaseRadius)*float32(fraction),
			Alpha:    fadeAlpha(alpha, fraction),
			Fraction: fraction,
		})
	}
	pulses.starts = live

	if len(pulses.starts) > 0 && pulses.redraw != nil {
		pulses.redraw()
	}
	return rings
}

func (pulses *Scheduler) tick() {
	pulses.starts = append(pulses.starts, truncateMillis(pulses.scheduler.Now()))
	if pulses.redraw != nil {
		pulses.redraw()
	}
	if pulses.config.Interval > 0 {
		pulses.scheduler.After(pulses.config.Interval, pulses.tick)
	}
}

func fadeAlpha(alpha, fraction float64) uint8 {
	value := math.Round(alpha * (1 - fraction) * 255)
	if value < 0 {
		return 0
	}
	if value > 255 {
		return 255
	}
	return uint8(value)
}

func clampUnit(value float64) float64 {
	if math.IsNaN(value) || value < 0 {
		return 0
	}
	if value > 1 {
		return 1
	}
	return value
}

// Start times are kept at millisecond precision so they survive a snapshot
// round trip unchanged.
func truncateMillis(value time.Time) time.Time {
	return time.UnixMilli(value.UnixMilli())
}
