package frame

import "time"

// Loop runs fn once per tick until stopped.
type Loop struct {
	s       *Scheduler
	fn      Callback
	h       Handle
	epoch   uint64
	running bool
	calling bool
	frames  uint64
}

// Start requests fn for the next tick and keeps re-requesting it.
func (s *Scheduler) Start(fn Callback) *Loop {
	l := &Loop{s: s, fn: fn, running: true}
	l.arm()
	return l
}

func (l *Loop) arm() {
	l.epoch = l.s.epoch
	l.h = l.s.Request(l.run)
}

func (l *Loop) run(now time.Duration) {
	if !l.running {
		return
	}
	l.frames++
	l.calling = true
	l.fn(now)
	l.calling = false

	// a CancelAll issued from fn ends the loop too
	if l.running && l.epoch == l.s.epoch {
		l.arm()
		return
	}
	l.running = false
}

// Stop cancels the pending frame. It is safe to call more than once and from
// inside fn.
func (l *Loop) Stop() {
	if l == nil {
		return
	}
	if l.running && !l.calling {
		l.s.Cancel(l.h)
	}
	l.running = false
}

// Running reports whether the loop will run again. A loop whose pending frame
// was cancelled directly on the scheduler is no longer running.
func (l *Loop) Running() bool {
	if l == nil || !l.running {
		return false
	}
	if l.calling {
		return true
	}
	if !l.s.pending(l.h) {
		l.running = false
	}
	return l.running
}

// Frames counts how many times fn has run.
func (l *Loop) Frames() uint64 {
	if l == nil {
		return 0
	}
	return l.frames
}
