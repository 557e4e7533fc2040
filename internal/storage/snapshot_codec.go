package storage

import (
	"encoding/binary"
	"errors"
	"fmt"

	"pulsatingtimer/internal/core/model"
)

var (
	// ErrSnapshotTruncated indicates the encoded snapshot ended early.
	ErrSnapshotTruncated = errors.New("snapshot truncated")
	// ErrSnapshotCorrupt indicates the encoded snapshot is structurally invalid.
	ErrSnapshotCorrupt = errors.New("snapshot corrupt")
)

// Layout, big-endian: started uint8, progress int32, count int32, then count
// int64 pulsation start times. Field order is part of the format.
const snapshotHeaderSize = 1 + 4 + 4

// EncodeSnapshot serializes a snapshot.
func EncodeSnapshot(snapshot model.Snapshot) []byte {
	buffer := make([]byte, 0, snapshotHeaderSize+8*len(snapshot.PulsationStartTimes))

	var started byte
	if snapshot.Started {
		started = 1
	}
	buffer = append(buffer, started)
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(snapshot.Progress))
	buffer = binary.BigEndian.AppendUint32(buffer, uint32(len(snapshot.PulsationStartTimes)))
	for _, start := range snapshot.PulsationStartTimes {
		buffer = binary.BigEndian.AppendUint64(buffer, uint64(start))
	}
	return buffer
}

// DecodeSnapshot parses data produced by EncodeSnapshot.
func DecodeSnapshot(data []byte) (model.Snapshot, error) {
	if len(data) < snapshotHeaderSize {
		return model.Snapshot{}, fmt.Errorf("decode snapshot header: %w", ErrSnapshotTruncated)
	}

	var snapshot model.Snapshot
	switch data[0] {
	case 0:
	case 1:
		snapshot.Started = true
	default:
		return model.Snapshot{}, fmt.Errorf("decode started flag %d: %w", data[0], ErrSnapshotCorrupt)
	}
	snapshot.Progress = int32(binary.BigEndian.Uint32(data[1:5]))

	count := int32(binary.BigEndian.Uint32(data[5:9]))
	if count < 0 {
		return model.Snapshot{}, fmt.Errorf("decode pulsation count %d: %w", count, ErrSnapshotCorrupt)
	}
	body := data[snapshotHeaderSize:]
	if int64(len(body)) < int64(count)*8 {
		return model.Snapshot{}, fmt.Errorf("decode %d pulsations: %w", count, ErrSnapshotTruncated)
	}
	if int64(len(body)) > int64(count)*8 {
		return model.Snapshot{}, fmt.Errorf("decode snapshot: %d trailing bytes: %w", int64(len(body))-int64(count)*8, ErrSnapshotCorrupt)
	}

	if count > 0 {
		snapshot.PulsationStartTimes = make([]int64, count)
		for i := range snapshot.PulsationStartTimes {
			snapshot.PulsationStartTimes[i] = int64(binary.BigEndian.Uint64(body[i*8:]))
		}
	}
	return snapshot, nil
}
