package main

import (
	"fmt"
	"os"
	"path/filepath"

	"pulsatingtimer/internal/core/pulsating"
	"pulsatingtimer/internal/core/schedule"
	"pulsatingtimer/internal/platform"
	"pulsatingtimer/internal/storage"
	"pulsatingtimer/internal/terminal"

	"github.com/gdamore/tcell/v2"
)

const appName = "pulsetty"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
}

func run() error {
	dir, err := platform.ConfigDir(appName)
	if err != nil {
		return err
	}
	store := storage.NewStore(dir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	// The screen owns stdout, so logs go to a file next to the settings.
	logFile, err := os.OpenFile(filepath.Join(dir, appName+".log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	logger := platform.NewLogger(logFile)

	config, err := store.LoadConfig()
	if err != nil {
		logger.Warn("settings partially applied", "path", store.Dir(), "error", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	app := terminal.NewApp(screen, logger)
	timer := pulsating.New(schedule.NewLoop(app.Dispatch), config, pulsating.Options{
		Logger: logger,
		Redraw: app.RequestFrame,
	})
	app.Bind(timer)

	snapshot, ok, err := store.LoadSnapshot()
	switch {
	case err != nil:
		logger.Warn("discarding saved snapshot", "error", err)
	case ok:
		timer.Restore(snapshot)
	}

	app.Run()

	err = store.SaveSnapshot(timer.Capture())
	timer.Detach()
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}
