// Package frame is a per-frame callback scheduler for single-threaded hosts.
//
// A host calls [Scheduler.Tick] once per displayed frame. Callbacks requested
// before a tick starts run during that tick, in request order; callbacks
// requested while a tick is running wait for the next one. [Loop] re-requests
// itself every frame and doubles as the cancellation token of whoever started
// it.
//
// Scheduler is not safe for concurrent use.
package frame

import "time"

type Callback func(now time.Duration)

// Handle identifies a pending callback. The zero Handle is never issued.
type Handle uint64

type Scheduler struct {
	next  Handle
	live  map[Handle]Callback
	order []Handle
	now   time.Duration
	ticks uint64
	epoch uint64
}

func NewScheduler() *Scheduler {
	return &Scheduler{live: make(map[Handle]Callback)}
}

// Request queues cb for the next tick.
func (s *Scheduler) Request(cb Callback) Handle {
	if cb == nil {
		return 0
	}
	s.next++
	s.live[s.next] = cb
	s.order = append(s.order, s.next)
	return s.next
}

// Cancel drops a pending callback and reports whether it was still pending.
// Cancelling from inside a tick also skips callbacks later in the same batch.
func (s *Scheduler) Cancel(h Handle) bool {
	if _, ok := s.live[h]; !ok {
		return false
	}
	delete(s.live, h)
	return true
}

// CancelAll drops every pending callback and returns how many were dropped.
func (s *Scheduler) CancelAll() int {
	n := len(s.live)
	s.live = make(map[Handle]Callback)
	s.order = nil
	s.epoch++
	return n
}

func (s *Scheduler) Pending() int { return len(s.live) }

func (s *Scheduler) pending(h Handle) bool {
	_, ok := s.live[h]
	return ok
}

// Now is the timestamp of the current or most recent tick.
func (s *Scheduler) Now() time.Duration { return s.now }

func (s *Scheduler) Ticks() uint64 { return s.ticks }

// Tick runs the callbacks pending at entry and returns how many ran.
func (s *Scheduler) Tick(now time.Duration) int {
	s.now = now
	s.ticks++

	batch := s.order
	s.order = nil
	ran := 0
	for _, h := range batch {
		cb, ok := s.live[h]
		if !ok {
			continue
		}
		delete(s.live, h)
		cb(now)
		ran++
	}
	return ran
}
