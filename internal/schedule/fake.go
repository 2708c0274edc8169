package schedule

import (
	"sort"
	"sync"
	"time"
)

// Fake is a manually advanced Scheduler for tests. Due callbacks run on the
// goroutine calling Advance, in deadline order.
type Fake struct {
	mu      sync.Mutex
	now     time.Duration
	seq     int
	pending []*fakeTimer
}

type fakeTimer struct {
	at  time.Duration
	seq int
	fn  func()
}

var _ Scheduler = (*Fake)(nil)

// NewFake creates a fake clock at time zero.
func NewFake() *Fake {
	return &Fake{}
}

func (f *Fake) After(d time.Duration, fn func()) Cancel {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.seq++
	t := &fakeTimer{at: f.now + d, seq: f.seq, fn: fn}
	f.pending = append(f.pending, t)
	return func() bool {
		f.mu.Lock()
		defer f.mu.Unlock()
		for i, p := range f.pending {
			if p == t {
				f.pending = append(f.pending[:i], f.pending[i+1:]...)
				return true
			}
		}
		return false
	}
}

// Advance moves the clock forward by d and runs every callback that falls due.
// Callbacks scheduled by a running callback fire too if they are due.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	target := f.now + d
	f.mu.Unlock()

	for {
		f.mu.Lock()
		sort.Slice(f.pending, func(i, j int) bool {
			if f.pending[i].at == f.pending[j].at {
				return f.pending[i].seq < f.pending[j].seq
			}
			return f.pending[i].at < f.pending[j].at
		})
		if len(f.pending) == 0 || f.pending[0].at > target {
			f.now = target
			f.mu.Unlock()
			return
		}
		next := f.pending[0]
		f.pending = f.pending[1:]
		f.now = next.at
		f.mu.Unlock()

		next.fn()
	}
}

// Pending returns the number of scheduled calls that have neither fired nor been canceled.
func (f *Fake) Pending() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.pending)
}

// Elapsed returns how far the fake clock has been advanced.
func (f *Fake) Elapsed() time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}
