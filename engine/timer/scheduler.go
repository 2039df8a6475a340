// Package timer schedules delayed callbacks against simulation time instead of wall-clock time,
// so fades and other timed transitions stay in lockstep with the tick loop and are deterministic
// under test.
package timer

import (
	"sort"
	"time"
)

// Scheduler runs callbacks once a given amount of simulation time has elapsed.
// It is not safe for concurrent use; it belongs to the tick goroutine.
type Scheduler interface {
	// After schedules fn to run once d of simulation time has elapsed.
	// A non-positive d runs fn on the next Advance.
	//
	// Parameters:
	//   - d: delay measured in simulation time
	//   - fn: the callback
	//
	// Returns:
	//   - func(): cancels the callback if it has not run yet; safe to call more than once
	After(d time.Duration, fn func()) func()

	// Advance moves simulation time forward by dt seconds and runs every due callback in due-time
	// order. Callbacks scheduled from inside a callback with a delay that is already due run in the
	// same Advance.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	//
	// Returns:
	//   - int: the number of callbacks that ran
	Advance(dt float32) int

	// Now returns the accumulated simulation time.
	//
	// Returns:
	//   - time.Duration: time since the scheduler was created
	Now() time.Duration

	// Pending returns the number of callbacks waiting to run.
	//
	// Returns:
	//   - int: the number of scheduled callbacks
	Pending() int
}

type entry struct {
	seq       uint64
	due       time.Duration
	fn        func()
	cancelled bool
}

type schedulerImpl struct {
	now     time.Duration
	seq     uint64
	entries []*entry
}

var _ Scheduler = &schedulerImpl{}

// NewScheduler creates a Scheduler with its clock at zero.
//
// Returns:
//   - Scheduler: the newly created scheduler
func NewScheduler() Scheduler {
	return &schedulerImpl{}
}

func (s *schedulerImpl) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	s.seq++
	e := &entry{seq: s.seq, due: s.now + d, fn: fn}
	s.entries = append(s.entries, e)
	return func() {
		e.cancelled = true
	}
}

func (s *schedulerImpl) Advance(dt float32) int {
	if dt > 0 {
		s.now += time.Duration(float64(dt) * float64(time.Second))
	}

	ran := 0
	for {
		next := s.popDue()
		if next == nil {
			return ran
		}
		next.fn()
		ran++
	}
}

// popDue removes and returns the earliest due, non-cancelled entry, or nil.
// Ties are broken by scheduling order.
func (s *schedulerImpl) popDue() *entry {
	live := s.entries[:0]
	for _, e := range s.entries {
		if !e.cancelled {
			live = append(live, e)
		}
	}
	s.entries = live
	if len(s.entries) == 0 {
		return nil
	}

	sort.SliceStable(s.entries, func(i, j int) bool {
		if s.entries[i].due != s.entries[j].due {
			return s.entries[i].due < s.entries[j].due
		}
		return s.entries[i].seq < s.entries[j].seq
	})

	head := s.entries[0]
	if head.due > s.now {
		return nil
	}
	s.entries = s.entries[1:]
	return head
}

func (s *schedulerImpl) Now() time.Duration {
	return s.now
}

func (s *schedulerImpl) Pending() int {
	n := 0
	for _, e := range s.entries {
		if !e.cancelled {
			n++
		}
	}
	return n
}
