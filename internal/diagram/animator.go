package diagram

import (
	"time"

	"github.com/san-kum/molvib/internal/frame"
	"github.com/san-kum/molvib/internal/molecule"
)

type State int

const (
	Idle State = iota
	Active
)

func (s State) String() string {
	if s == Active {
		return "active"
	}
	return "idle"
}

// Animator applies one motion law to its diagram's molecule on every frame
// while Active, no more often than its interval allows.
type Animator struct {
	motion   molecule.Motion
	law      molecule.Law
	interval time.Duration
	state    State
	loop     *frame.Loop
	last     time.Duration
	fired    int
}

func newAnimator(m molecule.Motion, p molecule.MotionParams) *Animator {
	return &Animator{
		motion:   m,
		law:      molecule.NewLaw(m, p),
		interval: p.Interval(m),
	}
}

func (a *Animator) Motion() molecule.Motion { return a.motion }
func (a *Animator) State() State            { return a.state }
func (a *Animator) Law() molecule.Law       { return a.law }

// Fired counts how many times the law was applied since activation.
func (a *Animator) Fired() int { return a.fired }

// Loop is the cancellation token of the running frame loop, nil when Idle.
func (a *Animator) Loop() *frame.Loop { return a.loop }

// activate moves Idle to Active and starts the frame loop. It reports false
// when the animator was already Active.
func (a *Animator) activate(s *frame.Scheduler, step func(a *Animator, now time.Duration)) bool {
	if a.state == Active {
		return false
	}
	a.state = Active
	a.loop = s.Start(func(now time.Duration) { step(a, now) })
	return true
}

// due reports whether the law should fire at now and records the firing.
func (a *Animator) due(now time.Duration) bool {
	if a.interval > 0 && a.fired > 0 && now-a.last <= a.interval {
		return false
	}
	a.last = now
	a.fired++
	return true
}

// stop cancels the loop and returns every counter to its initial value.
func (a *Animator) stop() {
	a.loop.Stop()
	a.loop = nil
	a.state = Idle
	a.last = 0
	a.fired = 0
	a.law.Reset()
}
