package metrics

import (
	"math"

	"github.com/san-kum/molvib/internal/lab"
)

type Metric interface {
	Name() string
	Observe(s lab.Snapshot)
	Value() float64
	Reset()
}

// Defaults returns a fresh set of the standard run metrics.
func Defaults() []Metric {
	return []Metric{
		NewAbsorptions(),
		NewAmplitude(0),
		NewActiveFraction(),
	}
}

// Absorptions reports how many markers hit zones during the run.
type Absorptions struct {
	name  string
	count int
}

func NewAbsorptions() *Absorptions {
	return &Absorptions{name: "absorptions"}
}

func (a *Absorptions) Name() string { return a.name }

func (a *Absorptions) Observe(s lab.Snapshot) {
	if s.Absorbed > a.count {
		a.count = s.Absorbed
	}
}

func (a *Absorptions) Value() float64 { return float64(a.count) }

func (a *Absorptions) Reset() { a.count = 0 }

// Amplitude is the largest deviation of one bond's length from its
// canonical length.
type Amplitude struct {
	name string
	bond int
	max  float64
}

func NewAmplitude(bond int) *Amplitude {
	return &Amplitude{
		name: "amplitude",
		bond: bond,
	}
}

func (a *Amplitude) Name() string { return a.name }

func (a *Amplitude) Observe(s lab.Snapshot) {
	if a.bond >= len(s.Bonds) || a.bond >= len(s.Rest) {
		return
	}
	a.max = math.Max(a.max, math.Abs(s.Bonds[a.bond]-s.Rest[a.bond]))
}

func (a *Amplitude) Value() float64 { return a.max }

func (a *Amplitude) Reset() { a.max = 0 }

type ActiveFraction struct {
	name    string
	active  int
	samples int
}

func NewActiveFraction() *ActiveFraction {
	return &ActiveFraction{name: "active_fraction"}
}

func (f *ActiveFraction) Name() string {
	return f.name
}

func (f *ActiveFraction) Observe(s lab.Snapshot) {
	f.samples++
	if len(s.Active) > 0 {
		f.active++
	}
}

func (f *ActiveFraction) Value() float64 {
	if f.samples == 0 {
		return 0
	}
	return float64(f.active) / float64(f.samples)
}

func (f *ActiveFraction) Reset() {
	f.active = 0
	f.samples = 0
}
