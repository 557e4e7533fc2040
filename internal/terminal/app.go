// Package terminal runs the pulsating timer in a tcell screen. All engine
// calls happen on the goroutine executing Run; timer callbacks armed by a
// schedule.Loop are handed back to it through Dispatch.
package terminal

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"pulsatingtimer/internal/core/progress"
	"pulsatingtimer/internal/core/pulsating"

	"github.com/gdamore/tcell/v2"
)

// FrameInterval paces repaints (~60 FPS).
const FrameInterval = 16 * time.Millisecond

// TargetStep is how far the arrow keys move the target.
const TargetStep = 10

// App owns the screen and the main loop.
type App struct {
	screen   tcell.Screen
	renderer *Renderer
	logger   *slog.Logger
	timer    *pulsating.Timer

	tasks  chan func()
	done   chan struct{}
	dirty  bool
	status string
}

// NewApp creates an app drawing to an initialised screen.
func NewApp(screen tcell.Screen, logger *slog.Logger) *App {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &App{
		screen:   screen,
		renderer: NewRenderer(screen),
		logger:   logger,
		tasks:    make(chan func(), 64),
		done:     make(chan struct{}),
		status:   "paused",
	}
}

// Dispatch queues fn for the main loop. It is safe from any goroutine and
// drops fn once the loop has exited.
func (app *App) Dispatch(fn func()) {
	select {
	case app.tasks <- fn:
	case <-app.done:
	}
}

// Bind attaches the engine and sizes it to the screen.
func (app *App) Bind(timer *pulsating.Timer) {
	app.timer = timer
	timer.SetListener(progress.ListenerFuncs{
		Start: func() { app.setStatus("running") },
		Pause: func() { app.setStatus("paused") },
		End:   func() { app.setStatus("done") },
	})
	timer.SetSize(app.renderer.SurfaceSize())
	app.dirty = true
}

// RequestFrame marks the screen for repaint on the next frame tick.
func (app *App) RequestFrame() {
	app.dirty = true
}

// Status returns the footer state word.
func (app *App) Status() string {
	return app.status
}

// Run processes input, dispatched callbacks and repaints until the user quits.
func (app *App) Run() {
	defer close(app.done)

	ticker := time.NewTicker(FrameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := app.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-app.done:
				return
			}
		}
	}()

	app.draw()
	for {
		select {
		case ev := <-events:
			if !app.HandleEvent(ev) {
				app.logger.Debug("terminal loop stopped")
				return
			}
		case task := <-app.tasks:
			task()
		case <-ticker.C:
			if app.dirty {
				app.draw()
			}
		}
	}
}

// HandleEvent applies one input event and reports whether the loop continues.
func (app *App) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == ' ':
			app.toggle()
		case ev.Key() == tcell.KeyUp:
			app.shiftTarget(TargetStep)
		case ev.Key() == tcell.KeyDown:
			app.shiftTarget(-TargetStep)
		}

	case *tcell.EventResize:
		app.screen.Sync()
		if app.timer != nil {
			app.timer.SetSize(app.renderer.SurfaceSize())
		}
		app.dirty = true
	}
	return true
}

func (app *App) toggle() {
	if app.timer == nil {
		return
	}
	if app.timer.IsRunning() {
		app.timer.Pause()
		return
	}
	app.timer.Start()
}

func (app *App) shiftTarget(delta int) {
	if app.timer == nil {
		return
	}
	app.timer.SetTarget(app.timer.Target() + delta)
	app.dirty = true
}

func (app *App) setStatus(status string) {
	app.status = status
	app.logger.Info("timer state changed", "status", status)
	app.dirty = true
}

func (app *App) draw() {
	app.dirty = false
	if app.timer == nil {
		app.screen.Clear()
		app.screen.Show()
		return
	}
	app.renderer.Draw(app.timer.Frame(), app.footer())
}

func (app *App) footer() string {
	state := app.timer.State()
	return fmt.Sprintf(" %d → %d  %s  [space] start/pause  [↑/↓] target  [q] quit",
		state.Progress, state.Target, app.status)
}
