package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"pulsatingtimer/internal/core/model"
	"pulsatingtimer/internal/core/progress"
	"pulsatingtimer/internal/core/pulsating"
	"pulsatingtimer/internal/core/schedule"
	"pulsatingtimer/internal/platform"
	"pulsatingtimer/internal/storage"
	"pulsatingtimer/internal/ui/preferences"
	"pulsatingtimer/internal/ui/timerview"
	"pulsatingtimer/internal/ui/tray"
	"pulsatingtimer/internal/ui/window"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const (
	appName = "Pulsating Timer"
	appID   = "com.pulsatingtimer.app"
)

func main() {
	logger := platform.NewLogger(os.Stderr)

	lock, err := platform.AcquireInstanceLock(appName)
	if err != nil {
		if errors.Is(err, platform.ErrAlreadyRunning) {
			logger.Info("another instance is already running")
			return
		}
		logger.Error("single instance", "error", err)
		return
	}
	defer func() {
		_ = lock.Release()
	}()

	dir, err := platform.ConfigDir(appName)
	if err != nil {
		logger.Error("config directory", "error", err)
		return
	}
	store := storage.NewStore(dir)
	config, err := store.LoadConfig()
	if err != nil {
		logger.Warn("settings partially applied", "path", store.Dir(), "error", err)
	}

	fyneApp := app.NewWithID(appID)
	loop := schedule.NewLoop(fyne.Do)
	view := timerview.New()
	timer := pulsating.New(loop, config, pulsating.Options{
		Logger: logger,
		Redraw: view.RequestFrame,
	})
	view.Bind(timer)

	var trayManager *tray.Manager
	var mainWindow *window.Window
	refreshStatus := func() {
		state := timer.State()
		status := window.StatusText(state.Progress, state.Target, time.Second)
		mainWindow.SetStatus(status)
		mainWindow.SetRunning(state.Running)
		if trayManager != nil {
			trayManager.SetStatus(status)
			trayManager.SetRunning(state.Running)
		}
	}

	detached := false
	saveSnapshot := func() {
		if detached {
			return
		}
		if err := store.SaveSnapshot(timer.Capture()); err != nil {
			logger.Error("save snapshot", "error", err)
		}
	}

	quit := func() {
		saveSnapshot()
		timer.Detach()
		detached = true
		fyneApp.Quit()
	}

	prefsWindow := preferences.New(fyneApp, config, func(updated model.Config) {
		timer.SetTarget(updated.Target)
		timer.SetStyle(updated.Style)
		if err := store.SaveConfig(updated); err != nil {
			logger.Error("save settings", "error", err)
		}
		refreshStatus()
	})

	showPreferences := func() {
		prefsWindow.UpdateConfig(timer.Config())
		prefsWindow.Show()
	}

	mainWindow = window.New(fyneApp, appName, view, window.Callbacks{
		OnStart:       timer.Start,
		OnPause:       timer.Pause,
		OnPreferences: showPreferences,
	})

	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: mainWindow.Show,
			OnToggle: func() {
				if timer.IsRunning() {
					timer.Pause()
					return
				}
				timer.Start()
			},
			OnPreferences: showPreferences,
			OnQuit:        quit,
		})
		mainWindow.SetOnClose(mainWindow.Hide)
	} else {
		logger.Info("system tray unsupported on this platform")
		mainWindow.SetOnClose(quit)
	}

	timer.SetListener(progress.ListenerFuncs{
		Start:  refreshStatus,
		Pause:  refreshStatus,
		Update: func(int) { refreshStatus() },
		End: func() {
			refreshStatus()
			fyneApp.SendNotification(fyne.NewNotification(appName,
				fmt.Sprintf("Reached %d", timer.Target())))
		},
	})

	restoreSnapshot(logger, store, timer)
	refreshStatus()

	lifecycle := fyneApp.Lifecycle()
	lifecycle.SetOnExitedForeground(saveSnapshot)
	lifecycle.SetOnStopped(saveSnapshot)

	mainWindow.Show()
	fyneApp.Run()
}

func restoreSnapshot(logger *slog.Logger, store *storage.Store, timer *pulsating.Timer) {
	snapshot, ok, err := store.LoadSnapshot()
	if err != nil {
		logger.Warn("discarding saved snapshot", "error", err)
		return
	}
	if ok {
		timer.Restore(snapshot)
	}
}
