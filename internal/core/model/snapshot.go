package model

// Snapshot is the state persisted across a suspend/resume cycle.
// Field order matches the encoded layout.
type Snapshot struct {
	Started  bool
	Progress int32
	// PulsationStartTimes are Unix milliseconds, oldest first.
	PulsationStartTimes []int64
}
