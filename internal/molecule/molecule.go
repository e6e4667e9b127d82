package molecule

import (
	"fmt"

	"github.com/san-kum/molvib/internal/scene"
)

type Atom struct {
	Element string
	Pos     scene.Point
	R       float64
	Color   scene.Color
}

type Bond struct {
	A, B    int
	Order   int
	Spacing float64
	Width   float64
	Color   scene.Color
}

// Segment is one drawn line of a bond.
type Segment struct {
	From, To scene.Point
}

// Segments returns the bond's parallel lines between the current atom
// positions. Lines are offset perpendicular to the bond axis and centred on it.
func (b Bond) Segments(atoms []Atom) []Segment {
	from, to := atoms[b.A].Pos, atoms[b.B].Pos
	normal := to.Sub(from).Unit().Perp()
	segs := make([]Segment, 0, b.Order)
	for i := 0; i < b.Order; i++ {
		off := normal.Scale((float64(i) - float64(b.Order-1)/2) * b.Spacing)
		segs = append(segs, Segment{From: from.Add(off), To: to.Add(off)})
	}
	return segs
}

type Molecule struct {
	Species Species
	Atoms   []Atom
	Bonds   []Bond
	layout  Layout
}

// Build lays out s at its canonical coordinates.
func Build(s Species) (*Molecule, error) {
	l, ok := LayoutOf(s)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSpecies, string(s))
	}
	m := &Molecule{
		Species: s,
		Atoms:   make([]Atom, len(l.Atoms)),
		Bonds:   make([]Bond, len(l.Bonds)),
		layout:  l,
	}
	for i, a := range l.Atoms {
		m.Atoms[i] = Atom{Element: a.Element, Pos: scene.Pt(a.X, a.Y), R: a.R, Color: a.Color}
	}
	for i, b := range l.Bonds {
		m.Bonds[i] = Bond{A: b.A, B: b.B, Order: b.Order, Spacing: b.Spacing, Width: b.Width, Color: b.Color}
	}
	return m, nil
}

func (m *Molecule) Layout() Layout { return m.layout }

// Canonical returns the layout position of atom i.
func (m *Molecule) Canonical(i int) scene.Point {
	a := m.layout.Atoms[i]
	return scene.Pt(a.X, a.Y)
}

// BondLength is the current distance between the atoms of bond i.
func (m *Molecule) BondLength(i int) float64 {
	b := m.Bonds[i]
	return m.Atoms[b.A].Pos.Dist(m.Atoms[b.B].Pos)
}

// RestLength is the canonical length of bond i.
func (m *Molecule) RestLength(i int) float64 {
	b := m.Bonds[i]
	return m.Canonical(b.A).Dist(m.Canonical(b.B))
}

func (m *Molecule) Positions() []scene.Point {
	out := make([]scene.Point, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = a.Pos
	}
	return out
}

func (m *Molecule) Lines() int {
	n := 0
	for _, b := range m.Bonds {
		n += b.Order
	}
	return n
}
