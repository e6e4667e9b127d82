package molecule

import (
	"math"
	"time"

	"github.com/san-kum/molvib/internal/scene"
)

// Motion names a per-tick displacement rule.
type Motion int

const (
	Stretch Motion = iota
	Rotate
	Bend
	Breathe
)

func (m Motion) String() string {
	switch m {
	case Stretch:
		return "stretch"
	case Rotate:
		return "rotate"
	case Bend:
		return "bend"
	case Breathe:
		return "breathe"
	}
	return "unknown"
}

type MotionParams struct {
	StretchStep     float64
	StretchInterval time.Duration
	RotationStep    float64 // degrees per tick
	RotationLimit   float64 // degrees
	BendAmplitude   float64
	BendInterval    time.Duration
	BreatheStep     float64
	BreatheLimit    float64
}

func DefaultMotionParams() MotionParams {
	return MotionParams{
		StretchStep:     10,
		StretchInterval: 200 * time.Millisecond,
		RotationStep:    2,
		RotationLimit:   120,
		BendAmplitude:   10,
		BendInterval:    200 * time.Millisecond,
		BreatheStep:     1,
		BreatheLimit:    10,
	}
}

// Interval is the minimum frame time between two applications of m.
// Zero means every frame.
func (p MotionParams) Interval(m Motion) time.Duration {
	switch m {
	case Stretch:
		return p.StretchInterval
	case Bend:
		return p.BendInterval
	}
	return 0
}

// Law mutates a molecule's atoms in place, one step per call.
type Law interface {
	Apply(m *Molecule)
	Reset()
}

func NewLaw(m Motion, p MotionParams) Law {
	switch m {
	case Stretch:
		return &StretchLaw{Step: p.StretchStep, dir: 1}
	case Rotate:
		return &RotateLaw{Step: p.RotationStep, Limit: p.RotationLimit, speed: p.RotationStep}
	case Bend:
		return &BendLaw{Amplitude: p.BendAmplitude, dir: 1}
	case Breathe:
		return &BreatheLaw{Step: p.BreatheStep, Limit: p.BreatheLimit, speed: p.BreatheStep}
	}
	return nil
}

// StretchLaw moves the two atoms of the first bond apart by Step each, then
// back together on the next call.
type StretchLaw struct {
	Step float64
	dir  float64
}

func (l *StretchLaw) Apply(m *Molecule) {
	if len(m.Bonds) == 0 {
		return
	}
	b := m.Bonds[0]
	a, c := &m.Atoms[b.A], &m.Atoms[b.B]
	axis := c.Pos.Sub(a.Pos).Unit()
	if axis == (scene.Point{}) {
		axis = scene.Point{X: 1}
	}
	d := axis.Scale(l.dir * l.Step)
	c.Pos = c.Pos.Add(d)
	a.Pos = a.Pos.Sub(d)
	l.dir = -l.dir
}

func (l *StretchLaw) Reset() { l.dir = 1 }

// Direction is +1 when the next call expands the bond.
func (l *StretchLaw) Direction() float64 { return l.dir }

// RotateLaw swings the first bond around its midpoint, back and forth
// between -Limit and +Limit degrees.
type RotateLaw struct {
	Step  float64
	Limit float64
	angle float64
	speed float64
}

func (l *RotateLaw) Apply(m *Molecule) {
	if len(m.Bonds) == 0 {
		return
	}
	b := m.Bonds[0]
	a, c := &m.Atoms[b.A], &m.Atoms[b.B]
	mid := a.Pos.Mid(c.Pos)
	r := m.RestLength(0) / 2
	rad := l.angle * math.Pi / 180
	arm := scene.Point{X: math.Cos(rad), Y: math.Sin(rad)}.Scale(r)
	a.Pos = mid.Sub(arm)
	c.Pos = mid.Add(arm)

	l.angle += l.speed
	if l.angle >= l.Limit || l.angle <= -l.Limit {
		l.speed = -l.speed
	}
}

func (l *RotateLaw) Reset() {
	l.angle = 0
	l.speed = l.Step
}

// Angle is the angle in degrees the next call will draw.
func (l *RotateLaw) Angle() float64 { return l.angle }

// Speed is the signed step added after each call.
func (l *RotateLaw) Speed() float64 { return l.speed }

// BendLaw holds every non-anchor atom at its canonical horizontal offset
// from the anchor and moves it above or below the anchor by Amplitude,
// flipping side on each call.
type BendLaw struct {
	Amplitude float64
	dir       float64
}

func (l *BendLaw) Apply(m *Molecule) {
	anchor := m.Atoms[0].Pos
	base := m.Canonical(0)
	for i := 1; i < len(m.Atoms); i++ {
		dx := m.Canonical(i).X - base.X
		m.Atoms[i].Pos = scene.Point{X: anchor.X + dx, Y: anchor.Y + l.dir*l.Amplitude}
	}
	l.dir = -l.dir
}

func (l *BendLaw) Reset() { l.dir = 1 }

func (l *BendLaw) Direction() float64 { return l.dir }

// BreatheLaw pushes every non-anchor atom out along its bond by a factor
// that grows by Step per call and reverses once it passes ±Limit.
type BreatheLaw struct {
	Step   float64
	Limit  float64
	factor float64
	speed  float64
}

func (l *BreatheLaw) Apply(m *Molecule) {
	anchor := m.Atoms[0].Pos
	base := m.Canonical(0)
	for i := 1; i < len(m.Atoms); i++ {
		rest := m.Canonical(i).Sub(base)
		m.Atoms[i].Pos = anchor.Add(rest.Unit().Scale(rest.Len() + l.factor))
	}

	l.factor += l.speed
	if l.factor > l.Limit || l.factor < -l.Limit {
		l.speed = -l.speed
	}
}

func (l *BreatheLaw) Reset() {
	l.factor = 0
	l.speed = l.Step
}

func (l *BreatheLaw) Factor() float64 { return l.factor }
