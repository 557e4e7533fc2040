package schedule

import "time"

// Scheduler is a single-threaded delayed-callback facility.
//
// Callbacks run strictly after their delay, in the order their delays expire,
// and never concurrently with each other or with the owner's direct calls.
type Scheduler interface {
	// Now returns the current time as seen by the owner thread.
	Now() time.Time
	// After runs fn once delay has elapsed.
	After(delay time.Duration, fn func())
	// CancelAll drops every callback that has not run yet.
	CancelAll()
}
