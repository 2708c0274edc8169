// Package schedule provides cancelable delayed calls. The orchestrator uses it
// for the selection debounce and the score reveal delay.
package schedule

import "time"

// Cancel stops a scheduled call. It reports whether the call was prevented
// from running; calling it more than once is safe.
type Cancel func() bool

// Scheduler runs fn once after d unless the returned Cancel is invoked first.
type Scheduler interface {
	After(d time.Duration, fn func()) Cancel
}

type realScheduler struct{}

// New returns a Scheduler backed by the runtime timers.
func New() Scheduler {
	return realScheduler{}
}

func (realScheduler) After(d time.Duration, fn func()) Cancel {
	t := time.AfterFunc(d, fn)
	return t.Stop
}
