package storage

import (
	"errors"
	"fmt"
	"os"

	"pulsatingtimer/internal/core/model"
)

// LoadSnapshot reads the last saved snapshot. ok is false when none exists.
func (store *Store) LoadSnapshot() (snapshot model.Snapshot, ok bool, err error) {
	rawData, err := os.ReadFile(store.path(snapshotFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.Snapshot{}, false, nil
		}
		return model.Snapshot{}, false, fmt.Errorf("read snapshot file: %w", err)
	}

	snapshot, err = DecodeSnapshot(rawData)
	if err != nil {
		return model.Snapshot{}, false, err
	}
	return snapshot, true, nil
}

// SaveSnapshot replaces the saved snapshot. The file is written next to the
// target and renamed so a crash never leaves a half-written snapshot.
func (store *Store) SaveSnapshot(snapshot model.Snapshot) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	target := store.path(snapshotFileName)
	temporary := target + ".tmp"
	if err := os.WriteFile(temporary, EncodeSnapshot(snapshot), 0o644); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := os.Rename(temporary, target); err != nil {
		return fmt.Errorf("replace snapshot file: %w", err)
	}
	return nil
}

// ClearSnapshot removes the saved snapshot, if any.
func (store *Store) ClearSnapshot() error {
	if err := os.Remove(store.path(snapshotFileName)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}
