package window

import (
	"testing"
	"time"

	"pulsatingtimer/internal/ui/timerview"

	"fyne.io/fyne/v2/test"
)

func TestStatusText(t *testing.T) {
	tests := []struct {
		progress int
		target   int
		want     string
	}{
		{0, 90, "0 → 90 · 01:30 left"},
		{90, 0, "90 → 0 · 01:30 left"},
		{5, 5, "5 → 5 · 00:00 left"},
		{0, 3725, "0 → 3725 · 1:02:05 left"},
	}
	for _, tt := range tests {
		if got := StatusText(tt.progress, tt.target, time.Second); got != tt.want {
			t.Errorf("StatusText(%d, %d) = %q, want %q", tt.progress, tt.target, got, tt.want)
		}
	}
}

func TestButtonsFollowRunningState(t *testing.T) {
	app := test.NewTempApp(t)
	started, paused := 0, 0
	main := New(app, "timer", timerview.New(), Callbacks{
		OnStart: func() { started++ },
		OnPause: func() { paused++ },
	})

	if main.startButton.Disabled() || !main.pauseButton.Disabled() {
		t.Fatal("idle window should only allow Start")
	}
	test.Tap(main.startButton)
	main.SetRunning(true)
	if !main.startButton.Disabled() || main.pauseButton.Disabled() {
		t.Fatal("running window should only allow Pause")
	}
	test.Tap(main.pauseButton)

	if started != 1 || paused != 1 {
		t.Errorf("started = %d, paused = %d, want 1 and 1", started, paused)
	}

	main.SetStatus("0 → 10")
	if main.status.Text != "0 → 10" {
		t.Errorf("status = %q", main.status.Text)
	}
}
