package photon

import (
	"github.com/google/uuid"
	"github.com/san-kum/molvib/internal/scene"
)

const (
	DefaultStep   = 5.0
	DefaultY      = 300.0
	DefaultRadius = 5.0
)

type Marker struct {
	ID     uuid.UUID
	Kind   Kind
	X, Y   float64
	circle *scene.Circle
}

// Shape is the circle drawn for the marker. It follows X on every Advance.
func (m *Marker) Shape() *scene.Circle { return m.circle }

type Params struct {
	Step   float64
	Y      float64
	Radius float64
	Width  float64
}

func DefaultParams() Params {
	return Params{
		Step:   DefaultStep,
		Y:      DefaultY,
		Radius: DefaultRadius,
		Width:  scene.DefaultWidth,
	}
}

// Emitter owns the live marker list. Markers enter at x=0 and move right by
// Step on every Advance, wrapping back to 0 once they would pass Width.
type Emitter struct {
	params  Params
	markers []*Marker
}

func NewEmitter(p Params) *Emitter {
	def := DefaultParams()
	if p.Step <= 0 {
		p.Step = def.Step
	}
	if p.Radius <= 0 {
		p.Radius = def.Radius
	}
	if p.Width <= 0 {
		p.Width = def.Width
	}
	return &Emitter{params: p}
}

func (e *Emitter) Params() Params { return e.params }

func (e *Emitter) Emit(k Kind) *Marker {
	if k == "" {
		k = Broadband
	}
	m := &Marker{
		ID:   uuid.New(),
		Kind: k,
		X:    0,
		Y:    e.params.Y,
	}
	m.circle = &scene.Circle{
		Center: scene.Pt(m.X, m.Y),
		R:      e.params.Radius,
		Fill:   k.Color(),
	}
	e.markers = append(e.markers, m)
	return m
}

func (e *Emitter) Advance() {
	for _, m := range e.markers {
		m.X += e.params.Step
		if m.X > e.params.Width {
			m.X = 0
		}
		m.circle.Center.X = m.X
	}
}

// Remove drops m from the live set and reports whether it was live.
func (e *Emitter) Remove(m *Marker) bool {
	for i, cur := range e.markers {
		if cur == m {
			e.markers = append(e.markers[:i], e.markers[i+1:]...)
			return true
		}
	}
	return false
}

// Markers returns a copy of the live set in emission order.
func (e *Emitter) Markers() []*Marker {
	out := make([]*Marker, len(e.markers))
	copy(out, e.markers)
	return out
}

func (e *Emitter) Len() int { return len(e.markers) }

func (e *Emitter) Reset() { e.markers = nil }
