package tray

import "testing"

func TestStatusAndToggleLabels(t *testing.T) {
	toggles := 0
	manager := New(nil, Callbacks{OnToggle: func() { toggles++ }})

	if manager.Label() != "Status: idle" {
		t.Errorf("Label() = %q", manager.Label())
	}
	if manager.toggleItem.Label != "Start" {
		t.Errorf("toggle label = %q, want Start", manager.toggleItem.Label)
	}

	manager.SetRunning(true)
	manager.SetStatus("3 → 10")
	if manager.toggleItem.Label != "Pause" {
		t.Errorf("toggle label = %q, want Pause", manager.toggleItem.Label)
	}
	if manager.Label() != "Status: 3 → 10" {
		t.Errorf("Label() = %q", manager.Label())
	}

	manager.toggleItem.Action()
	if toggles != 1 {
		t.Errorf("toggles = %d, want 1", toggles)
	}
}
