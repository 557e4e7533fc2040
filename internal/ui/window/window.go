package window

import (
	"fmt"
	"time"

	"pulsatingtimer/internal/ui/timerview"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Callbacks defines main window action handlers.
type Callbacks struct {
	OnStart       func()
	OnPause       func()
	OnPreferences func()
	OnClose       func()
}

// Window hosts the timer view and its controls.
type Window struct {
	window      fyne.Window
	view        *timerview.View
	status      *widget.Label
	startButton *widget.Button
	pauseButton *widget.Button
	callbacks   Callbacks
}

// New creates the main window around view.
func New(app fyne.App, title string, view *timerview.View, callbacks Callbacks) *Window {
	window := app.NewWindow(title)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	main := &Window{
		window:    window,
		view:      view,
		status:    widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{}),
		callbacks: callbacks,
	}

	main.startButton = widget.NewButton("Start", func() {
		if main.callbacks.OnStart != nil {
			main.callbacks.OnStart()
		}
	})
	main.pauseButton = widget.NewButton("Pause", func() {
		if main.callbacks.OnPause != nil {
			main.callbacks.OnPause()
		}
	})
	preferences := widget.NewButton("Style…", func() {
		if main.callbacks.OnPreferences != nil {
			main.callbacks.OnPreferences()
		}
	})

	buttons := container.NewHBox(main.startButton, main.pauseButton, layout.NewSpacer(), preferences)
	window.SetContent(container.NewBorder(nil, container.NewVBox(main.status, buttons), nil, nil, view))
	window.Resize(fyne.NewSize(360, 420))
	window.SetCloseIntercept(func() {
		if main.callbacks.OnClose != nil {
			main.callbacks.OnClose()
			return
		}
		window.Close()
	})

	main.SetRunning(false)
	return main
}

// Show displays the window.
func (main *Window) Show() {
	main.window.Show()
	main.window.RequestFocus()
}

// Hide hides the window; the timer keeps running.
func (main *Window) Hide() {
	main.window.Hide()
}

// SetOnClose replaces the close handler.
func (main *Window) SetOnClose(fn func()) {
	main.callbacks.OnClose = fn
}

// SetRunning toggles which of Start/Pause is enabled.
func (main *Window) SetRunning(running bool) {
	if running {
		main.startButton.Disable()
		main.pauseButton.Enable()
		return
	}
	main.startButton.Enable()
	main.pauseButton.Disable()
}

// SetStatus updates the status line.
func (main *Window) SetStatus(status string) {
	main.status.SetText(status)
}

// StatusText describes progress and the time left at one step per tick.
func StatusText(progress, target int, tick time.Duration) string {
	steps := target - progress
	if steps < 0 {
		steps = -steps
	}
	return fmt.Sprintf("%d → %d · %s left", progress, target, formatDuration(time.Duration(steps)*tick))
}

func formatDuration(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	seconds := int(value.Seconds())
	hours := seconds / 3600
	minutes := seconds / 60 % 60
	seconds = seconds % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}
