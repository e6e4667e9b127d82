// Package lab is the engine behind every front end: one scene, one frame
// scheduler, one photon emitter and a diagram per species.
//
// Hosts call [Lab.Step] or [Lab.Tick] once per displayed frame and route
// user input to [Lab.Add], [Lab.Emit] and [Lab.Reset]. Nothing here is safe
// for concurrent use.
package lab

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/molvib/internal/config"
	"github.com/san-kum/molvib/internal/diagram"
	"github.com/san-kum/molvib/internal/frame"
	"github.com/san-kum/molvib/internal/molecule"
	"github.com/san-kum/molvib/internal/photon"
	"github.com/san-kum/molvib/internal/scene"
)

// Event is fired for every marker absorbed by a hit zone.
type Event struct {
	Frame     uint64
	Time      time.Duration
	Species   molecule.Species
	Marker    uuid.UUID
	Kind      photon.Kind
	X         float64
	Motion    molecule.Motion
	Activated bool
}

type Snapshot struct {
	Frame    uint64
	Time     time.Duration
	Species  molecule.Species
	Atoms    []scene.Point
	Bonds    []float64
	Rest     []float64
	Markers  int
	Absorbed int
	Active   []molecule.Motion
}

type Option func(*Lab)

func WithLogger(l Logger) Option {
	return func(lb *Lab) {
		if l != nil {
			lb.log = l
		}
	}
}

type Lab struct {
	cfg      *config.Config
	log      Logger
	scene    *scene.Scene
	sched    *frame.Scheduler
	emitter  *photon.Emitter
	diagrams map[molecule.Species]*diagram.Diagram
	current  molecule.Species
	main     *frame.Loop
	absorbed int
	resets   uint64
	observe  []func(Event)
}

// MotionParams converts the millisecond fields of cfg.
func MotionParams(cfg *config.Config) molecule.MotionParams {
	m := cfg.Motion
	return molecule.MotionParams{
		StretchStep:     m.StretchStep,
		StretchInterval: time.Duration(m.StretchIntervalMs) * time.Millisecond,
		RotationStep:    m.RotationStep,
		RotationLimit:   m.RotationLimit,
		BendAmplitude:   m.BendAmplitude,
		BendInterval:    time.Duration(m.BendIntervalMs) * time.Millisecond,
		BreatheStep:     m.BreatheStep,
		BreatheLimit:    m.BreatheLimit,
	}
}

func PhotonParams(cfg *config.Config) photon.Params {
	return photon.Params{
		Step:   cfg.Photon.Step,
		Y:      cfg.Photon.Y,
		Radius: cfg.Photon.Radius,
		Width:  cfg.Canvas.Width,
	}
}

// New validates cfg and returns a lab with every species registered in its
// empty form. A nil cfg means the defaults.
func New(cfg *config.Config, opts ...Option) (*Lab, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	l := &Lab{
		cfg:      cfg,
		log:      NoOpLogger{},
		scene:    scene.New(cfg.Canvas.Width, cfg.Canvas.Height),
		sched:    frame.NewScheduler(),
		emitter:  photon.NewEmitter(PhotonParams(cfg)),
		diagrams: make(map[molecule.Species]*diagram.Diagram, len(molecule.All)),
	}
	for _, opt := range opts {
		opt(l)
	}
	mp := MotionParams(cfg)
	for _, s := range molecule.All {
		l.diagrams[s] = diagram.New(s, l.sched, mp)
	}
	l.main = l.sched.Start(l.step)
	return l, nil
}

func (l *Lab) Config() *config.Config       { return l.cfg }
func (l *Lab) Scene() *scene.Scene          { return l.scene }
func (l *Lab) Scheduler() *frame.Scheduler  { return l.sched }
func (l *Lab) Current() molecule.Species    { return l.current }
func (l *Lab) Markers() []*photon.Marker    { return l.emitter.Markers() }
func (l *Lab) Absorbed() int                { return l.absorbed }
func (l *Lab) Frames() uint64               { return l.main.Frames() }
func (l *Lab) FrameDuration() time.Duration { return time.Second / time.Duration(l.cfg.FPS) }
func (l *Lab) Observe(fn func(Event))       { l.observe = append(l.observe, fn) }

func (l *Lab) Diagram(s molecule.Species) *diagram.Diagram { return l.diagrams[s] }

// Active is the diagram currently on screen, nil before the first Add.
func (l *Lab) Active() *diagram.Diagram {
	if l.current == "" {
		return nil
	}
	return l.diagrams[l.current]
}

// Add replaces whatever is on screen with species s. Live markers keep
// flying and are redrawn on top of the new molecule.
func (l *Lab) Add(s molecule.Species) error {
	d, ok := l.diagrams[s]
	if !ok {
		return fmt.Errorf("%w: %q", molecule.ErrUnknownSpecies, s)
	}
	for _, other := range l.diagrams {
		if other != d {
			other.Clear()
		}
	}
	l.scene.Clear()
	if err := d.Build(l.scene); err != nil {
		return err
	}
	for _, m := range l.emitter.Markers() {
		l.scene.Add(m.Shape())
	}
	l.current = s
	l.resets++
	l.log.Infof("add%s: %d atoms, %d bond lines", s, len(d.Molecule().Atoms), d.Molecule().Lines())
	return nil
}

// Emit launches a marker of kind k from the left edge. Before any species has
// been added there is nothing to hit and the call does nothing.
func (l *Lab) Emit(k photon.Kind) (*photon.Marker, bool) {
	if l.current == "" {
		l.log.Debugf("emitPhoton(%s) ignored: no molecule", k)
		return nil, false
	}
	m := l.emitter.Emit(k)
	l.scene.Add(m.Shape())
	l.log.Debugf("emitPhoton(%s) id=%s", m.Kind, m.ID)
	return m, true
}

// Tick runs one frame at now and returns how many callbacks ran.
func (l *Lab) Tick(now time.Duration) int {
	return l.sched.Tick(now)
}

// Step ticks one frame duration after the previous tick.
func (l *Lab) Step() int {
	return l.Tick(l.sched.Now() + l.FrameDuration())
}

// Reset stops every animation, drops all markers and empties the scene. The
// lab accepts Add and Emit again immediately afterwards.
func (l *Lab) Reset() {
	for _, d := range l.diagrams {
		d.Clear()
	}
	l.main.Stop()
	n := l.sched.CancelAll()
	l.scene.Clear()
	l.emitter.Reset()
	l.current = ""
	l.absorbed = 0
	l.resets++
	l.main = l.sched.Start(l.step)
	l.log.Infof("reset: cancelled %d pending callbacks", n)
}

func (l *Lab) step(now time.Duration) {
	l.emitter.Advance()
	d := l.Active()
	if d == nil {
		return
	}
	// an observer that resets the lab or swaps the species ends the batch
	gen := l.resets
	for _, h := range d.Collide(l.emitter.Markers()) {
		if l.resets != gen {
			return
		}
		l.emitter.Remove(h.Marker)
		l.scene.Remove(h.Marker.Shape())
		l.absorbed++
		ev := Event{
			Frame:     l.main.Frames(),
			Time:      now,
			Species:   l.current,
			Marker:    h.Marker.ID,
			Kind:      h.Marker.Kind,
			X:         h.Marker.X,
			Motion:    h.Zone.Motion,
			Activated: h.Activated,
		}
		l.log.Debugf("absorbed %s photon at x=%.0f: %s", ev.Kind, ev.X, ev.Motion)
		for _, fn := range l.observe {
			fn(ev)
		}
	}
}

func (l *Lab) Snapshot() Snapshot {
	snap := Snapshot{
		Frame:    l.main.Frames(),
		Time:     l.sched.Now(),
		Species:  l.current,
		Markers:  l.emitter.Len(),
		Absorbed: l.absorbed,
	}
	d := l.Active()
	if d == nil || !d.Built() {
		return snap
	}
	mol := d.Molecule()
	snap.Atoms = mol.Positions()
	for i := range mol.Bonds {
		snap.Bonds = append(snap.Bonds, mol.BondLength(i))
		snap.Rest = append(snap.Rest, mol.RestLength(i))
	}
	snap.Active = d.ActiveMotions()
	return snap
}
